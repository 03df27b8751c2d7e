// Package engine implements the reconciliation engine that keeps the
// in-memory ledger consistent across optimistic local mutation, remote
// persistence, and the guest snapshot store.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/citrushq/citrus-ledger/internal/common"
	"github.com/citrushq/citrus-ledger/internal/model"
	"github.com/citrushq/citrus-ledger/internal/service"
)

// State identifies the engine's identity context.
type State string

const (
	// StateUninitialized is the state before the first Activate call.
	StateUninitialized State = "uninitialized"
	// StateGuestActive serves the ledger from the local snapshot store.
	StateGuestActive State = "guest-active"
	// StateSyncing is the transient login state while guest data is pushed.
	StateSyncing State = "syncing-guest-to-account"
	// StateAccountActive serves the ledger from the remote backend.
	StateAccountActive State = "account-active"
)

// ErrNotActivated is returned when an operation is issued before Activate.
var ErrNotActivated = errors.New("engine not activated")

// Config holds configuration options for the reconciliation engine.
type Config struct {
	Clock func() time.Time
	Retry common.RetryOptions
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Clock: time.Now,
		Retry: common.RetryOptions{
			MaxAttempts:  3,
			InitialDelay: 100 * time.Millisecond,
			MaxDelay:     5 * time.Second,
		},
	}
}

// Engine owns the live ledger for the current identity session. Every
// in-memory transition happens as a single step under the mutex; remote
// calls always run outside it.
type Engine struct {
	remote    service.RemoteLedger
	snapshots service.SnapshotStore
	clock     func() time.Time
	retry     common.RetryOptions

	mu            sync.Mutex
	state         State
	user          *model.Identity
	accounts      []model.Account
	transactions  []model.Transaction
	accountTypes  []model.AccountType
	notifications []model.Notification
}

// New creates a reconciliation engine with the given dependencies.
func New(remote service.RemoteLedger, snapshots service.SnapshotStore) *Engine {
	return NewWithConfig(remote, snapshots, DefaultConfig())
}

// NewWithConfig creates a reconciliation engine with custom configuration.
func NewWithConfig(remote service.RemoteLedger, snapshots service.SnapshotStore, config Config) *Engine {
	clock := config.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Engine{
		remote:    remote,
		snapshots: snapshots,
		clock:     clock,
		retry:     config.Retry,
		state:     StateUninitialized,
	}
}

// Activate transitions the engine to the identity context for user. A nil
// user selects guest mode. Calling Activate with a user while a guest
// session is active runs the one-time guest-to-account sync handshake.
func (e *Engine) Activate(ctx context.Context, user *model.Identity) error {
	e.mu.Lock()
	fromGuest := e.state == StateGuestActive
	e.mu.Unlock()

	if user == nil {
		return e.activateGuest(ctx)
	}
	return e.activateAccount(ctx, user, fromGuest)
}

func (e *Engine) activateGuest(ctx context.Context) error {
	snap, err := e.snapshots.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load guest snapshot: %w", err)
	}

	e.mu.Lock()
	e.user = nil
	e.state = StateGuestActive
	if snap != nil {
		e.replaceLedgerLocked(snap)
	} else {
		e.accounts = nil
		e.transactions = nil
		e.accountTypes = model.DefaultAccountTypes()
	}
	e.notifications = nil
	e.pushNotificationLocked("Welcome, Guest", "Local Mode Active.", model.NotificationSuccess)
	e.mu.Unlock()

	slog.Info("Engine activated in guest mode", "had_snapshot", snap != nil)
	return nil
}

func (e *Engine) activateAccount(ctx context.Context, user *model.Identity, fromGuest bool) error {
	var syncErr error

	// Login transition from a live guest session pushes the snapshot
	// exactly once. The sync endpoint is not idempotent, so a failed push
	// is never retried; the snapshot is retained for the next login.
	if fromGuest {
		e.mu.Lock()
		e.state = StateSyncing
		e.mu.Unlock()

		snap, err := e.snapshots.Load(ctx)
		if err != nil {
			return fmt.Errorf("failed to load guest snapshot: %w", err)
		}
		if snap != nil {
			if err := e.remote.SyncGuestData(ctx, *snap); err != nil {
				slog.Error("Guest data sync failed, snapshot retained", "error", err)
				syncErr = fmt.Errorf("%w: %v", common.ErrSyncFailed, err)
			} else if err := e.snapshots.Clear(ctx); err != nil {
				slog.Error("Failed to clear synced guest snapshot", "error", err)
			} else {
				slog.Info("Guest data synced",
					"accounts", len(snap.Accounts),
					"transactions", len(snap.Transactions))
			}
		}
	}

	snap, err := e.fetchLedger(ctx)
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.user = user
	e.state = StateAccountActive
	e.replaceLedgerLocked(snap)
	e.notifications = nil
	e.pushNotificationLocked("Welcome, "+user.Name, "Connected to Citrus Cloud.", model.NotificationSuccess)
	e.mu.Unlock()

	slog.Info("Engine activated in account mode", "user", user.ID, "synced_from_guest", fromGuest)
	return syncErr
}

// fetchLedger retrieves the authoritative remote ledger. The fetch is a
// plain idempotent read, so it is the one remote call allowed to retry.
func (e *Engine) fetchLedger(ctx context.Context) (*model.Snapshot, error) {
	var snap *model.Snapshot
	err := common.WithRetry(ctx, func() error {
		fetched, fetchErr := e.remote.FetchLedger(ctx)
		if fetchErr != nil {
			return fetchErr
		}
		snap = fetched
		return nil
	}, e.retry)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ledger: %w", err)
	}
	return snap, nil
}

// resync discards local state and reloads ground truth from the backend.
// It is the uniform fallback for every failed remote mutation.
func (e *Engine) resync(ctx context.Context) {
	slog.Warn("Resyncing ledger to remote ground truth")

	snap, err := e.fetchLedger(ctx)
	if err != nil {
		slog.Error("Resync failed, ledger left as-is", "error", err)
		return
	}

	e.mu.Lock()
	e.replaceLedgerLocked(snap)
	e.mu.Unlock()
}

// replaceLedgerLocked swaps the ledger wholesale. Caller holds e.mu.
func (e *Engine) replaceLedgerLocked(snap *model.Snapshot) {
	e.accounts = make([]model.Account, len(snap.Accounts))
	copy(e.accounts, snap.Accounts)
	e.transactions = make([]model.Transaction, len(snap.Transactions))
	copy(e.transactions, snap.Transactions)

	// The backend's type list is authoritative once present; defaults are
	// only seeded when the payload carries no type list at all.
	if snap.AccountTypes != nil {
		e.accountTypes = make([]model.AccountType, len(snap.AccountTypes))
		copy(e.accountTypes, snap.AccountTypes)
	} else {
		e.accountTypes = model.DefaultAccountTypes()
	}

	for i := range e.accounts {
		if e.user != nil {
			e.accounts[i].CardHolder = model.HolderName(e.user.Name)
		} else if e.accounts[i].CardHolder == "" {
			e.accounts[i].CardHolder = "CITRUS"
		}
	}
}

// persistGuestLocked writes the current ledger to the snapshot store.
// Caller holds e.mu. Only guest sessions persist; the syncing window never
// writes, so the one-time sync read cannot race a save.
func (e *Engine) persistGuestLocked(ctx context.Context) {
	if e.state != StateGuestActive {
		return
	}
	snap := model.Snapshot{
		Accounts:     e.accounts,
		Transactions: e.transactions,
		AccountTypes: e.accountTypes,
	}
	if err := e.snapshots.Save(ctx, snap); err != nil {
		slog.Error("Failed to persist guest snapshot", "error", err)
	}
}

func (e *Engine) pushNotificationLocked(title, message string, typ model.NotificationType) {
	e.notifications = append([]model.Notification{{
		ID:      uuid.NewString(),
		Title:   title,
		Message: message,
		Time:    e.clock(),
		IsRead:  false,
		Type:    typ,
	}}, e.notifications...)
}

// State returns the current identity state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// CurrentUser returns the active identity, or nil in guest mode.
func (e *Engine) CurrentUser() *model.Identity {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.user == nil {
		return nil
	}
	u := *e.user
	return &u
}

// Accounts returns a copy of the current account set.
func (e *Engine) Accounts() []model.Account {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]model.Account, len(e.accounts))
	copy(out, e.accounts)
	return out
}

// Transactions returns a copy of the current transaction set, newest first.
func (e *Engine) Transactions() []model.Transaction {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]model.Transaction, len(e.transactions))
	copy(out, e.transactions)
	return out
}

// AccountTypes returns a copy of the current account type set.
func (e *Engine) AccountTypes() []model.AccountType {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]model.AccountType, len(e.accountTypes))
	copy(out, e.accountTypes)
	return out
}

// Notifications returns a copy of the session's notifications, newest first.
func (e *Engine) Notifications() []model.Notification {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]model.Notification, len(e.notifications))
	copy(out, e.notifications)
	return out
}

// MarkAllNotificationsRead flags every session notification as read.
func (e *Engine) MarkAllNotificationsRead() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.notifications {
		e.notifications[i].IsRead = true
	}
}

// Currency returns the preferred display currency code.
func (e *Engine) Currency(ctx context.Context) (string, error) {
	return e.snapshots.Currency(ctx)
}

// SetCurrency persists the preferred display currency code. The preference
// is independent of identity state.
func (e *Engine) SetCurrency(ctx context.Context, code string) error {
	return e.snapshots.SetCurrency(ctx, code)
}
