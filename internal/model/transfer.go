package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferDraft describes a funds movement between two accounts. A zero
// Date means "now"; an empty Description is filled in from the account
// names.
type TransferDraft struct {
	SourceAccountID string          `json:"sourceAccountId"`
	TargetAccountID string          `json:"targetAccountId"`
	Amount          decimal.Decimal `json:"amount"`
	Date            time.Time       `json:"date"`
	Description     string          `json:"description,omitempty"`
}
