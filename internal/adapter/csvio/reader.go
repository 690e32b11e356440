package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/DonghunLouisLee/transaction-handler/internal/domain"
)

// Reader decodes a transaction statement from CSV. Records look like
//
//	type,       client, tx, amount
//	deposit,    1,      1,  1.0
//	dispute,    1,      1,
//
// Whitespace around fields is ignored and the amount column is absent or
// empty for dispute, resolve and chargeback rows. The header row is
// skipped on the first read.
type Reader struct {
	inner      *csv.Reader
	headerRead bool
	row        int
}

// NewReader creates a Reader decoding from r.
func NewReader(r io.Reader) *Reader {
	inner := csv.NewReader(r)
	inner.TrimLeadingSpace = true
	inner.FieldsPerRecord = -1
	inner.ReuseRecord = true

	return &Reader{inner: inner}
}

// Next returns the next transaction from the statement. It returns io.EOF
// once the input is exhausted and a decode error otherwise.
func (r *Reader) Next() (*domain.Transaction, error) {
	if !r.headerRead {
		r.headerRead = true
		r.row++
		if _, err := r.inner.Read(); err != nil {
			return nil, err
		}
	}

	record, err := r.inner.Read()
	if err != nil {
		return nil, err
	}
	r.row++

	tx, err := decode(record)
	if err != nil {
		return nil, fmt.Errorf("row %d: %w", r.row, err)
	}

	return tx, nil
}

func decode(record []string) (*domain.Transaction, error) {
	keyword := field(record, 0)
	switch keyword {
	case "deposit", "withdrawal", "dispute", "resolve", "chargeback":
	default:
		return nil, domain.ErrUndefinedAction
	}

	clientID, err := strconv.ParseUint(field(record, 1), 10, 16)
	if err != nil {
		return nil, domain.ErrInvalidClientID
	}

	transactionID, err := strconv.ParseUint(field(record, 2), 10, 32)
	if err != nil {
		return nil, domain.ErrInvalidTransactionID
	}

	var action domain.Action
	switch keyword {
	case "deposit", "withdrawal":
		amount, err := decimal.NewFromString(field(record, 3))
		if err != nil {
			return nil, domain.ErrInvalidAmount
		}
		// Extra fractional digits are dropped, not rounded.
		amount = amount.Truncate(domain.Precision)

		if keyword == "deposit" {
			action = domain.Deposit{Amount: amount}
		} else {
			action = domain.Withdrawal{Amount: amount}
		}
	case "dispute":
		action = domain.Dispute{}
	case "resolve":
		action = domain.Resolve{}
	case "chargeback":
		action = domain.Chargeback{}
	}

	return &domain.Transaction{
		Action:   action,
		ClientID: domain.ClientID(clientID),
		ID:       domain.TransactionID(transactionID),
	}, nil
}

func field(record []string, i int) string {
	if i >= len(record) {
		return ""
	}

	return strings.TrimSpace(record[i])
}
