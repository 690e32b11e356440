package dto

import (
	"github.com/DonghunLouisLee/transaction-handler/internal/domain"
)

// AccountResponse represents one account in API responses. Amounts are
// rendered as fixed four decimal place strings.
type AccountResponse struct {
	Client    uint16 `json:"client"`
	Available string `json:"available"`
	Held      string `json:"held"`
	Total     string `json:"total"`
	Locked    bool   `json:"locked"`
}

// AccountFromSnapshot converts an account snapshot to a response.
func AccountFromSnapshot(s domain.AccountSnapshot) *AccountResponse {
	return &AccountResponse{
		Client:    uint16(s.ClientID),
		Available: s.Available.StringFixed(domain.Precision),
		Held:      s.Held.StringFixed(domain.Precision),
		Total:     s.Total.StringFixed(domain.Precision),
		Locked:    s.Locked,
	}
}

// StatementResponse represents the outcome of a processed statement.
type StatementResponse struct {
	RunID    string             `json:"run_id"`
	Accounts []*AccountResponse `json:"accounts"`
}

// StatementFromSnapshot converts a run's snapshot to a response.
func StatementFromSnapshot(runID string, accounts []domain.AccountSnapshot) *StatementResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromSnapshot(a)
	}

	return &StatementResponse{
		RunID:    runID,
		Accounts: result,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
