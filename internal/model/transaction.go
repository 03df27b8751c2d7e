package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates the direction of a transaction's balance effect.
type TransactionType string

const (
	// TypeIncome increases the owning account's balance.
	TypeIncome TransactionType = "income"
	// TypeExpense decreases the owning account's balance.
	TypeExpense TransactionType = "expense"
)

// CategoryTransfer is the reserved category for transfer-generated
// transactions. Transfers are balance-neutral at the ledger level and are
// excluded from income/expense aggregates.
const CategoryTransfer = "Transfer"

// Transaction represents a single income or expense entry on an account.
// Amount is always positive; the sign is carried by Type.
type Transaction struct {
	ID          string          `json:"id"`
	AccountID   string          `json:"accountId"`
	Type        TransactionType `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description,omitempty"`
	Date        time.Time       `json:"date"`
	// BalanceAt is a display-only snapshot of the account balance
	// immediately after this transaction was applied.
	BalanceAt decimal.Decimal `json:"balanceAt"`
}

// TransactionDraft carries the user-supplied fields for a new or updated
// transaction. A zero Date means "now".
type TransactionDraft struct {
	AccountID   string
	Type        TransactionType
	Amount      decimal.Decimal
	Category    string
	Description string
	Date        time.Time
}

// Effect returns the signed balance delta this transaction applies to its
// account: +Amount for income, -Amount for expense.
func (t Transaction) Effect() decimal.Decimal {
	if t.Type == TypeIncome {
		return t.Amount
	}
	return t.Amount.Neg()
}

// Effect returns the signed balance delta the drafted transaction would
// apply to its account.
func (d TransactionDraft) Effect() decimal.Decimal {
	if d.Type == TypeIncome {
		return d.Amount
	}
	return d.Amount.Neg()
}
