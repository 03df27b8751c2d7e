package remote

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/citrushq/citrus-ledger/internal/model"
)

// Backend entities arrive with Mongo-style "_id" fields; older payloads and
// echoes of optimistic records may carry "id" instead. Normalization to a
// single canonical ID happens here so nothing downstream ever branches on
// which field was present.

type wireAccount struct {
	MongoID    string          `json:"_id"`
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Balance    decimal.Decimal `json:"balance"`
	Type       string          `json:"type"`
	CardNumber string          `json:"cardNumber"`
	CardHolder string          `json:"cardHolder"`
	Color      string          `json:"color"`
}

type wireTransaction struct {
	MongoID     string          `json:"_id"`
	ID          string          `json:"id"`
	AccountID   string          `json:"accountId"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	BalanceAt   decimal.Decimal `json:"balanceAt"`
}

type wireAccountType struct {
	MongoID string `json:"_id"`
	ID      string `json:"id"`
	Label   string `json:"label"`
	Theme   string `json:"theme"`
}

type wireLedger struct {
	Accounts     []wireAccount     `json:"accounts"`
	Transactions []wireTransaction `json:"transactions"`
	AccountTypes []wireAccountType `json:"accountTypes"`
}

func canonicalID(mongoID, id string) string {
	if mongoID != "" {
		return mongoID
	}
	return id
}

func (w wireAccount) toModel() model.Account {
	return model.Account{
		ID:         canonicalID(w.MongoID, w.ID),
		Name:       w.Name,
		Balance:    w.Balance,
		Type:       w.Type,
		CardNumber: w.CardNumber,
		CardHolder: w.CardHolder,
		Color:      w.Color,
	}
}

func (w wireTransaction) toModel() model.Transaction {
	return model.Transaction{
		ID:          canonicalID(w.MongoID, w.ID),
		AccountID:   w.AccountID,
		Type:        model.TransactionType(w.Type),
		Amount:      w.Amount,
		Category:    w.Category,
		Description: w.Description,
		Date:        w.Date,
		BalanceAt:   w.BalanceAt,
	}
}

func (w wireAccountType) toModel() model.AccountType {
	return model.AccountType{
		ID:    canonicalID(w.MongoID, w.ID),
		Label: w.Label,
		Theme: w.Theme,
	}
}

func (w wireLedger) toSnapshot() *model.Snapshot {
	snap := &model.Snapshot{
		Accounts:     make([]model.Account, 0, len(w.Accounts)),
		Transactions: make([]model.Transaction, 0, len(w.Transactions)),
		AccountTypes: make([]model.AccountType, 0, len(w.AccountTypes)),
	}
	for _, a := range w.Accounts {
		snap.Accounts = append(snap.Accounts, a.toModel())
	}
	for _, t := range w.Transactions {
		snap.Transactions = append(snap.Transactions, t.toModel())
	}
	for _, at := range w.AccountTypes {
		snap.AccountTypes = append(snap.AccountTypes, at.toModel())
	}
	return snap
}

// Request bodies.

type accountDraftBody struct {
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
	Type    string          `json:"type"`
}

type transactionDraftBody struct {
	AccountID   string          `json:"accountId"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
}

type accountTypeBody struct {
	Label string `json:"label"`
	Theme string `json:"theme"`
}

type bulkDeleteBody struct {
	IDs []string `json:"ids"`
}
