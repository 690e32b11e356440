package engine

import (
	"context"
	"errors"
	"io"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/DonghunLouisLee/transaction-handler/internal/domain"
	"github.com/DonghunLouisLee/transaction-handler/internal/infrastructure/metrics"
)

const (
	outcomeSucceeded = "succeeded"
	outcomeFailed    = "failed"
)

// Snapshot is the final state of every account touched by a run, ordered
// by client id.
type Snapshot []domain.AccountSnapshot

// Engine drains a transaction source and folds every record into the
// owning client's account. Accounts live for the duration of one engine
// instance; create a fresh engine per run.
type Engine struct {
	accounts map[domain.ClientID]*domain.Account
	logger   zerolog.Logger
	metrics  *metrics.Metrics
}

// New creates a new Engine. Metrics may be nil.
func New(logger zerolog.Logger, m *metrics.Metrics) *Engine {
	return &Engine{
		accounts: make(map[domain.ClientID]*domain.Account),
		logger:   logger,
		metrics:  m,
	}
}

// Process consumes the source until exhaustion and returns the resulting
// account snapshot.
//
// Transactions rejected by business rules are logged and skipped; the
// stream keeps going. Any other failure, a decode error from the source
// included, aborts the run and no snapshot is returned. A run that
// produced no output must not be mistaken for an empty ledger.
func (e *Engine) Process(ctx context.Context, src TransactionSource) (Snapshot, error) {
	start := time.Now()

	for {
		if err := ctx.Err(); err != nil {
			e.observeRun(outcomeFailed, start)
			return nil, err
		}

		tx, err := src.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			e.observeRun(outcomeFailed, start)
			return nil, err
		}

		account, ok := e.accounts[tx.ClientID]
		if !ok {
			account = domain.NewAccount(tx.ClientID)
			e.accounts[tx.ClientID] = account
		}

		if err := account.HandleTransaction(tx); err != nil {
			if !recoverable(err) {
				e.observeRun(outcomeFailed, start)
				return nil, err
			}
			e.skip(tx, err)
			continue
		}

		if e.metrics != nil {
			e.metrics.TransactionsProcessed.WithLabelValues(tx.Action.String()).Inc()
		}
	}

	snapshot := e.snapshot()

	e.observeRun(outcomeSucceeded, start)
	if e.metrics != nil {
		e.metrics.AccountsPerRun.Observe(float64(len(snapshot)))
	}

	return snapshot, nil
}

// recoverable reports whether a rejected transaction may be dropped while
// the rest of the stream keeps going. Anything not on this list aborts
// the run.
func recoverable(err error) bool {
	switch {
	case errors.Is(err, domain.ErrLockedAccount),
		errors.Is(err, domain.ErrAccountBalanceNotEnough),
		errors.Is(err, domain.ErrDuplicatedTransactionID),
		errors.Is(err, domain.ErrNonExistingTransactionID),
		errors.Is(err, domain.ErrUndefinedBehaviour),
		errors.Is(err, domain.ErrNotUnderDispute),
		errors.Is(err, domain.ErrAlreadyUnderDispute):
		return true
	}

	return false
}

func skipReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrLockedAccount):
		return "locked_account"
	case errors.Is(err, domain.ErrAccountBalanceNotEnough):
		return "insufficient_funds"
	case errors.Is(err, domain.ErrDuplicatedTransactionID):
		return "duplicated_id"
	case errors.Is(err, domain.ErrNonExistingTransactionID):
		return "unknown_transaction"
	case errors.Is(err, domain.ErrUndefinedBehaviour):
		return "undisputable"
	case errors.Is(err, domain.ErrNotUnderDispute):
		return "not_under_dispute"
	case errors.Is(err, domain.ErrAlreadyUnderDispute):
		return "already_under_dispute"
	default:
		return "other"
	}
}

func (e *Engine) skip(tx *domain.Transaction, err error) {
	e.logger.Warn().
		Err(err).
		Str("action", tx.Action.String()).
		Uint16("client_id", uint16(tx.ClientID)).
		Uint32("transaction_id", uint32(tx.ID)).
		Msg("transaction skipped")

	if e.metrics != nil {
		e.metrics.TransactionsSkipped.WithLabelValues(skipReason(err)).Inc()
	}
}

func (e *Engine) snapshot() Snapshot {
	snapshot := make(Snapshot, 0, len(e.accounts))
	for _, account := range e.accounts {
		snapshot = append(snapshot, account.Snapshot())
	}

	sort.Slice(snapshot, func(i, j int) bool {
		return snapshot[i].ClientID < snapshot[j].ClientID
	})

	return snapshot
}

func (e *Engine) observeRun(outcome string, start time.Time) {
	if e.metrics == nil {
		return
	}

	e.metrics.RunsCompleted.WithLabelValues(outcome).Inc()
	e.metrics.RunDuration.Observe(time.Since(start).Seconds())
}
