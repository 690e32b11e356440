package domain

import "errors"

var (
	// Decode errors
	ErrUndefinedAction      = errors.New("undefined action keyword")
	ErrInvalidClientID      = errors.New("client id is not a valid unsigned integer")
	ErrInvalidTransactionID = errors.New("transaction id is not a valid unsigned integer")
	ErrInvalidAmount        = errors.New("amount is not a valid decimal")

	// Account errors
	ErrLockedAccount            = errors.New("account is locked")
	ErrAccountBalanceNotEnough  = errors.New("account balance not enough")
	ErrDuplicatedTransactionID  = errors.New("transaction id already used for this client")
	ErrNonExistingTransactionID = errors.New("referenced transaction does not exist")
	ErrUndefinedBehaviour       = errors.New("dispute action against a non-deposit transaction")
	ErrNotUnderDispute          = errors.New("referenced transaction is not under dispute")
	ErrAlreadyUnderDispute      = errors.New("referenced transaction is already under dispute")
)
