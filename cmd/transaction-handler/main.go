package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/DonghunLouisLee/transaction-handler/internal/adapter/csvio"
	"github.com/DonghunLouisLee/transaction-handler/internal/adapter/source"
	"github.com/DonghunLouisLee/transaction-handler/internal/engine"
	"github.com/DonghunLouisLee/transaction-handler/internal/infrastructure/config"
	"github.com/DonghunLouisLee/transaction-handler/internal/infrastructure/logger"
	"github.com/DonghunLouisLee/transaction-handler/internal/infrastructure/metrics"
)

func main() {
	// A .env file is optional.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load configuration:", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	m := metrics.New()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rootCmd := newRootCmd(cfg, log, m)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("run failed")
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config, log zerolog.Logger, m *metrics.Metrics) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transaction-handler <statement>",
		Short: "Process a CSV transaction statement",
		Long: `transaction-handler reads a statement of deposits, withdrawals and
disputes, folds it into per client accounts and prints the final
balances as CSV. The statement may be a local file path, "-" for stdin
or an http(s) URL.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProcess(cmd.Context(), cfg, log, m, args[0], cmd.OutOrStdout())
		},
	}

	cmd.AddCommand(newServeCmd(cfg, log, m))

	return cmd
}

func runProcess(ctx context.Context, cfg *config.Config, log zerolog.Logger, m *metrics.Metrics, location string, out io.Writer) error {
	runID := engine.NewULIDGenerator().Generate()
	runLog := log.With().Str("run_id", runID).Logger()

	fetcher := source.NewFetcher(source.FetcherConfig{
		Timeout:        cfg.FetchTimeout,
		MaxElapsedTime: cfg.FetchMaxElapsedTime,
	}, runLog, m)

	input, err := source.Open(ctx, location, fetcher)
	if err != nil {
		return fmt.Errorf("open statement: %w", err)
	}
	defer input.Close()

	eng := engine.New(runLog, m)
	snapshot, err := eng.Process(ctx, csvio.NewReader(input))
	if err != nil {
		return fmt.Errorf("process statement: %w", err)
	}

	return csvio.NewWriter(out).WriteSnapshot(snapshot)
}
