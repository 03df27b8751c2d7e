// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/citrushq/citrus-ledger/internal/model"
)

// RemoteLedger defines the contract with the ledger backend. Every method
// returns the server's canonical representation of the affected entities or
// a *common.RemoteError; implementations carry no business logic.
type RemoteLedger interface {
	// FetchLedger returns the full authoritative ledger for the current
	// identity.
	FetchLedger(ctx context.Context) (*model.Snapshot, error)

	// Account operations
	CreateAccount(ctx context.Context, draft model.AccountDraft) (*model.Account, error)
	UpdateAccount(ctx context.Context, id string, draft model.AccountDraft) (*model.Account, error)
	DeleteAccount(ctx context.Context, id string) error

	// Transaction operations
	CreateTransaction(ctx context.Context, draft model.TransactionDraft) (*model.Transaction, error)
	UpdateTransaction(ctx context.Context, id string, draft model.TransactionDraft) (*model.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
	BulkDeleteTransactions(ctx context.Context, ids []string) error
	DeleteAllTransactions(ctx context.Context) error

	// Domain operations
	Transfer(ctx context.Context, req model.TransferDraft) error
	SyncGuestData(ctx context.Context, snapshot model.Snapshot) error

	// Account type operations
	CreateAccountType(ctx context.Context, label, theme string) (*model.AccountType, error)
	DeleteAccountType(ctx context.Context, id string) error

	// ResetAll wipes all remote data for the current identity.
	ResetAll(ctx context.Context) error
}

// SnapshotStore persists the guest ledger and the display currency
// preference to durable local storage.
type SnapshotStore interface {
	// Load returns the last-persisted snapshot, or nil if none exists.
	Load(ctx context.Context) (*model.Snapshot, error)
	// Save overwrites the persisted snapshot.
	Save(ctx context.Context, snapshot model.Snapshot) error
	// Clear removes the persisted snapshot.
	Clear(ctx context.Context) error

	// Currency preference, persisted independent of identity state.
	Currency(ctx context.Context) (string, error)
	SetCurrency(ctx context.Context, code string) error

	Close() error
}
