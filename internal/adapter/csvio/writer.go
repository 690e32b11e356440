package csvio

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/DonghunLouisLee/transaction-handler/internal/domain"
)

var outputHeader = []string{"client", "available", "held", "total", "locked"}

// Writer renders account snapshots as CSV with fixed four decimal place
// amounts.
type Writer struct {
	inner *csv.Writer
}

// NewWriter creates a Writer encoding to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{inner: csv.NewWriter(w)}
}

// WriteSnapshot writes the header row followed by one row per account.
func (w *Writer) WriteSnapshot(accounts []domain.AccountSnapshot) error {
	if err := w.inner.Write(outputHeader); err != nil {
		return err
	}

	for _, account := range accounts {
		record := []string{
			strconv.FormatUint(uint64(account.ClientID), 10),
			account.Available.StringFixed(domain.Precision),
			account.Held.StringFixed(domain.Precision),
			account.Total.StringFixed(domain.Precision),
			strconv.FormatBool(account.Locked),
		}
		if err := w.inner.Write(record); err != nil {
			return err
		}
	}

	w.inner.Flush()

	return w.inner.Error()
}
