package domain

// Precision is the number of fractional digits every monetary value keeps,
// both in storage and in rendered output.
const Precision = 4

// ClientID identifies an account. Stable for the duration of a run.
type ClientID uint16

// TransactionID identifies a transaction within a single client's history.
// Two different clients may reuse the same id without conflict.
type TransactionID uint32

// DisputeStatus tracks where a stored transaction is in the dispute
// lifecycle.
type DisputeStatus string

const (
	DisputeNone        DisputeStatus = "none"
	DisputeOpen        DisputeStatus = "open"
	DisputeChargedBack DisputeStatus = "charged_back"
)

// Transaction is one decoded input record. Deposits and withdrawals are
// retained in the owning account's history so later dispute-family actions
// can reference them; the dispute-family actions themselves are transient
// and never stored.
type Transaction struct {
	Action   Action
	ClientID ClientID
	ID       TransactionID

	status DisputeStatus
}

// Status returns the transaction's position in the dispute lifecycle.
func (t *Transaction) Status() DisputeStatus {
	if t.status == "" {
		return DisputeNone
	}
	return t.status
}

// Disputed reports whether the transaction currently has an open dispute.
func (t *Transaction) Disputed() bool {
	return t.status == DisputeOpen
}
