package domain

import "github.com/shopspring/decimal"

// Action is the instruction carried by a transaction. Only the five variants
// in this file implement it; Deposit and Withdrawal are the monetary ones and
// are the only variants carrying an amount.
type Action interface {
	// String returns the wire keyword for the action.
	String() string

	isAction()
}

// Deposit credits the client's account with Amount.
type Deposit struct {
	Amount decimal.Decimal
}

// Withdrawal debits the client's account by Amount.
type Withdrawal struct {
	Amount decimal.Decimal
}

// Dispute opens a claim against a previously stored deposit, holding its
// funds until the claim is settled.
type Dispute struct{}

// Resolve settles an open dispute and releases the held funds.
type Resolve struct{}

// Chargeback settles an open dispute by reversing the deposit and locking
// the account.
type Chargeback struct{}

func (Deposit) String() string    { return "deposit" }
func (Withdrawal) String() string { return "withdrawal" }
func (Dispute) String() string    { return "dispute" }
func (Resolve) String() string    { return "resolve" }
func (Chargeback) String() string { return "chargeback" }

func (Deposit) isAction()    {}
func (Withdrawal) isAction() {}
func (Dispute) isAction()    {}
func (Resolve) isAction()    {}
func (Chargeback) isAction() {}
