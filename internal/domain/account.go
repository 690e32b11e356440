package domain

import "github.com/shopspring/decimal"

// Account is the per-client state machine. It owns the client's balances,
// the lock flag and the history of stored transactions that dispute-family
// actions may reference.
//
// Account is not safe for concurrent use; callers serialise access per
// client.
type Account struct {
	clientID  ClientID
	available decimal.Decimal
	held      decimal.Decimal
	total     decimal.Decimal
	locked    bool

	transactions map[TransactionID]*Transaction
}

// NewAccount returns an empty, unlocked account for the given client.
func NewAccount(clientID ClientID) *Account {
	return &Account{
		clientID:     clientID,
		available:    decimal.Zero,
		held:         decimal.Zero,
		total:        decimal.Zero,
		transactions: make(map[TransactionID]*Transaction),
	}
}

func (a *Account) ClientID() ClientID         { return a.clientID }
func (a *Account) Available() decimal.Decimal { return a.available }
func (a *Account) Held() decimal.Decimal      { return a.held }
func (a *Account) Total() decimal.Decimal     { return a.total }
func (a *Account) Locked() bool               { return a.locked }

// HandleTransaction applies a single transaction to the account and
// reports why it could not be applied. The account is left untouched on
// error. Once the account is locked every further transaction is rejected
// with ErrLockedAccount.
func (a *Account) HandleTransaction(tx *Transaction) error {
	if a.locked {
		return ErrLockedAccount
	}
	defer a.assertBalanced()

	switch action := tx.Action.(type) {
	case Deposit:
		if _, exists := a.transactions[tx.ID]; exists {
			return ErrDuplicatedTransactionID
		}
		a.transactions[tx.ID] = tx
		a.available = a.available.Add(action.Amount)
		a.total = a.total.Add(action.Amount)
		return nil

	case Withdrawal:
		if _, exists := a.transactions[tx.ID]; exists {
			return ErrDuplicatedTransactionID
		}
		if a.available.LessThan(action.Amount) {
			return ErrAccountBalanceNotEnough
		}
		a.transactions[tx.ID] = tx
		a.available = a.available.Sub(action.Amount)
		a.total = a.total.Sub(action.Amount)
		return nil

	case Dispute:
		amount, ref, err := a.referencedDeposit(tx.ID)
		if err != nil {
			return err
		}
		if ref.Status() != DisputeNone {
			return ErrAlreadyUnderDispute
		}
		ref.status = DisputeOpen
		a.available = a.available.Sub(amount)
		a.held = a.held.Add(amount)
		return nil

	case Resolve:
		amount, ref, err := a.referencedDeposit(tx.ID)
		if err != nil {
			return err
		}
		if !ref.Disputed() {
			return ErrNotUnderDispute
		}
		ref.status = DisputeNone
		a.held = a.held.Sub(amount)
		a.available = a.available.Add(amount)
		return nil

	case Chargeback:
		amount, ref, err := a.referencedDeposit(tx.ID)
		if err != nil {
			return err
		}
		if !ref.Disputed() {
			return ErrNotUnderDispute
		}
		ref.status = DisputeChargedBack
		a.held = a.held.Sub(amount)
		a.total = a.total.Sub(amount)
		a.locked = true
		return nil

	default:
		return ErrUndefinedAction
	}
}

// referencedDeposit resolves the stored deposit a dispute-family action
// points at. Only deposits can be disputed; a reference to a withdrawal is
// undefined behaviour for the stream.
func (a *Account) referencedDeposit(id TransactionID) (decimal.Decimal, *Transaction, error) {
	ref, ok := a.transactions[id]
	if !ok {
		return decimal.Zero, nil, ErrNonExistingTransactionID
	}
	deposit, isDeposit := ref.Action.(Deposit)
	if !isDeposit {
		return decimal.Zero, nil, ErrUndefinedBehaviour
	}
	return deposit.Amount, ref, nil
}

// assertBalanced panics when the books no longer add up. Every balance
// mutation moves funds in pairs, so a mismatch means account state is
// corrupted and the process must not keep going.
func (a *Account) assertBalanced() {
	if !a.total.Equal(a.available.Add(a.held)) {
		panic("account books out of balance: total != available + held")
	}
}

// AccountSnapshot is the externally visible state of one account at the
// end of a run.
type AccountSnapshot struct {
	ClientID  ClientID
	Available decimal.Decimal
	Held      decimal.Decimal
	Total     decimal.Decimal
	Locked    bool
}

// Snapshot captures the account's current balances.
func (a *Account) Snapshot() AccountSnapshot {
	return AccountSnapshot{
		ClientID:  a.clientID,
		Available: a.available,
		Held:      a.held,
		Total:     a.total,
		Locked:    a.locked,
	}
}
