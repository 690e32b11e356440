package engine

import (
	"github.com/DonghunLouisLee/transaction-handler/internal/domain"
)

// TransactionSource yields decoded transactions in input order.
type TransactionSource interface {
	// Next returns the next transaction from the stream. It returns
	// io.EOF once the stream is exhausted and the decode or transport
	// error otherwise.
	Next() (*domain.Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}
