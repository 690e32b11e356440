package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/DonghunLouisLee/transaction-handler/internal/infrastructure/config"
)

func testConfig() *config.Config {
	return &config.Config{
		FetchTimeout:        time.Second,
		FetchMaxElapsedTime: time.Second,
	}
}

func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd(testConfig(), zerolog.Nop(), nil)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	// A nil slice would make cobra fall back to os.Args.
	cmd.SetArgs(append([]string{}, args...))

	err := cmd.Execute()

	return out.String(), err
}

func writeStatement(t *testing.T, statement string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "statement.csv")
	if err := os.WriteFile(path, []byte(statement), 0o600); err != nil {
		t.Fatalf("failed to write statement: %v", err)
	}

	return path
}

func TestProcessStatementFile(t *testing.T) {
	path := writeStatement(t, "type, client, tx, amount\n"+
		"deposit, 1, 1, 1.0\n"+
		"deposit, 2, 2, 2.0\n"+
		"deposit, 1, 3, 2.0\n"+
		"withdrawal, 1, 4, 1.5\n"+
		"withdrawal, 2, 5, 3.0\n")

	out, err := executeRoot(t, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := "client,available,held,total,locked\n" +
		"1,1.5000,0.0000,1.5000,false\n" +
		"2,2.0000,0.0000,2.0000,false\n"
	if out != expected {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestProcessStatementFile_DisputeLifecycle(t *testing.T) {
	path := writeStatement(t, "type, client, tx, amount\n"+
		"deposit, 1, 1, 10.0\n"+
		"dispute, 1, 1,\n"+
		"chargeback, 1, 1,\n"+
		"deposit, 1, 2, 5.0\n")

	out, err := executeRoot(t, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := "client,available,held,total,locked\n" +
		"1,0.0000,0.0000,0.0000,true\n"
	if out != expected {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestProcessStatementFile_Malformed(t *testing.T) {
	path := writeStatement(t, "type, client, tx, amount\n"+
		"deposit, 1, 1, 1.0\n"+
		"deposit, x, 2, 1.0\n")

	out, err := executeRoot(t, path)
	if err == nil {
		t.Fatal("expected an error")
	}
	if out != "" {
		t.Fatalf("expected no output for a rejected statement, got:\n%s", out)
	}
}

func TestProcessStatementFile_Missing(t *testing.T) {
	_, err := executeRoot(t, filepath.Join(t.TempDir(), "nope.csv"))
	if err == nil {
		t.Fatal("expected an error")
	}
}

func TestProcessStatementStdin(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}

	origStdin := os.Stdin
	os.Stdin = r
	defer func() { os.Stdin = origStdin }()

	go func() {
		_, _ = w.WriteString("type, client, tx, amount\ndeposit, 3, 1, 4.0\n")
		_ = w.Close()
	}()

	out, err := executeRoot(t, "-")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := "client,available,held,total,locked\n3,4.0000,0.0000,4.0000,false\n"
	if out != expected {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestProcessStatementRemoteURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "type, client, tx, amount\ndeposit, 4, 1, 1.5\n")
	}))
	defer srv.Close()

	out, err := executeRoot(t, srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := "client,available,held,total,locked\n4,1.5000,0.0000,1.5000,false\n"
	if out != expected {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestRootCommandRequiresStatementArg(t *testing.T) {
	_, err := executeRoot(t)
	if err == nil {
		t.Fatal("expected an error when no statement is given")
	}
}

func TestServeCommandRegistered(t *testing.T) {
	cmd := newRootCmd(testConfig(), zerolog.Nop(), nil)

	serve, _, err := cmd.Find([]string{"serve"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if serve.Name() != "serve" {
		t.Fatalf("expected serve command, got %s", serve.Name())
	}
}
