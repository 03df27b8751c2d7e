package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/citrushq/citrus-ledger/internal/common"
	"github.com/citrushq/citrus-ledger/internal/model"
)

// Every mutation shares one contract: apply optimistically to the in-memory
// ledger as a single atomic transition under the mutex, persist the guest
// snapshot when applicable, then (account mode only) issue the remote call
// and reconcile. Any remote failure triggers a full resync to ground truth
// rather than per-operation rollback.

func (e *Engine) findAccountLocked(id string) int {
	for i := range e.accounts {
		if e.accounts[i].ID == id {
			return i
		}
	}
	return -1
}

func (e *Engine) findTransactionLocked(id string) int {
	for i := range e.transactions {
		if e.transactions[i].ID == id {
			return i
		}
	}
	return -1
}

// AddTransaction appends a transaction optimistically, adjusting the target
// account's balance, and reconciles the temporary identity against the
// backend. The returned transaction reflects the settled entity.
func (e *Engine) AddTransaction(ctx context.Context, draft model.TransactionDraft) (*model.Transaction, error) {
	if draft.Date.IsZero() {
		draft.Date = e.clock()
	}

	e.mu.Lock()
	if e.state == StateUninitialized {
		e.mu.Unlock()
		return nil, ErrNotActivated
	}
	idx := e.findAccountLocked(draft.AccountID)
	if idx < 0 {
		e.mu.Unlock()
		return nil, common.NewValidationError(common.ErrAccountNotFound)
	}

	balanceAt := e.accounts[idx].Balance.Add(draft.Effect())
	txn := model.Transaction{
		ID:          model.NewTempTransactionID(),
		AccountID:   draft.AccountID,
		Type:        draft.Type,
		Amount:      draft.Amount,
		Category:    draft.Category,
		Description: draft.Description,
		Date:        draft.Date,
		BalanceAt:   balanceAt,
	}
	e.transactions = append([]model.Transaction{txn}, e.transactions...)
	e.accounts[idx].Balance = balanceAt
	accountMode := e.state == StateAccountActive
	e.persistGuestLocked(ctx)
	e.mu.Unlock()

	if !accountMode {
		return &txn, nil
	}

	saved, err := e.remote.CreateTransaction(ctx, draft)
	if err != nil {
		slog.Error("Add transaction failed", "error", err)
		e.resync(ctx)
		return &txn, nil
	}

	// Balance is already correct; only the identity needs substitution.
	e.mu.Lock()
	if i := e.findTransactionLocked(txn.ID); i >= 0 {
		e.transactions[i] = *saved
	}
	e.mu.Unlock()
	return saved, nil
}

// UpdateTransaction reverses the old transaction's effect on its old
// account and applies the new draft's effect on its new account as one
// atomic transition; account, amount, and type may all change.
func (e *Engine) UpdateTransaction(ctx context.Context, id string, draft model.TransactionDraft) error {
	e.mu.Lock()
	if e.state == StateUninitialized {
		e.mu.Unlock()
		return ErrNotActivated
	}
	idx := e.findTransactionLocked(id)
	if idx < 0 {
		e.mu.Unlock()
		return common.NewValidationError(common.ErrTransactionNotFound)
	}

	old := e.transactions[idx]
	if oldAcc := e.findAccountLocked(old.AccountID); oldAcc >= 0 {
		e.accounts[oldAcc].Balance = e.accounts[oldAcc].Balance.Sub(old.Effect())
	}
	if newAcc := e.findAccountLocked(draft.AccountID); newAcc >= 0 {
		e.accounts[newAcc].Balance = e.accounts[newAcc].Balance.Add(draft.Effect())
	}

	updated := old
	updated.AccountID = draft.AccountID
	updated.Type = draft.Type
	updated.Amount = draft.Amount
	updated.Category = draft.Category
	updated.Description = draft.Description
	if !draft.Date.IsZero() {
		updated.Date = draft.Date
	}
	e.transactions[idx] = updated
	accountMode := e.state == StateAccountActive
	e.persistGuestLocked(ctx)
	e.mu.Unlock()

	if !accountMode {
		return nil
	}

	draft.Date = updated.Date
	if _, err := e.remote.UpdateTransaction(ctx, id, draft); err != nil {
		slog.Error("Update transaction failed", "transaction", id, "error", err)
		e.resync(ctx)
	}
	return nil
}

// DeleteTransaction reverses the transaction's balance effect and removes it.
func (e *Engine) DeleteTransaction(ctx context.Context, id string) error {
	return e.deleteTransactions(ctx, []string{id}, func(ctx context.Context) error {
		return e.remote.DeleteTransaction(ctx, id)
	})
}

// BulkDeleteTransactions removes the given transactions, applying all
// balance reversals as one atomic batch before removal.
func (e *Engine) BulkDeleteTransactions(ctx context.Context, ids []string) error {
	return e.deleteTransactions(ctx, ids, func(ctx context.Context) error {
		return e.remote.BulkDeleteTransactions(ctx, ids)
	})
}

// DeleteAllTransactions removes every transaction after reversing each one's
// balance effect.
func (e *Engine) DeleteAllTransactions(ctx context.Context) error {
	e.mu.Lock()
	ids := make([]string, len(e.transactions))
	for i, txn := range e.transactions {
		ids[i] = txn.ID
	}
	e.mu.Unlock()

	return e.deleteTransactions(ctx, ids, e.remote.DeleteAllTransactions)
}

func (e *Engine) deleteTransactions(ctx context.Context, ids []string, remoteCall func(context.Context) error) error {
	if len(ids) == 0 {
		return nil
	}
	doomed := make(map[string]bool, len(ids))
	for _, id := range ids {
		doomed[id] = true
	}

	e.mu.Lock()
	if e.state == StateUninitialized {
		e.mu.Unlock()
		return ErrNotActivated
	}

	// Reverse the whole batch first, then remove the batch; interleaving
	// reversal with removal would make the result order-dependent.
	kept := e.transactions[:0:0]
	for _, txn := range e.transactions {
		if !doomed[txn.ID] {
			kept = append(kept, txn)
			continue
		}
		if idx := e.findAccountLocked(txn.AccountID); idx >= 0 {
			e.accounts[idx].Balance = e.accounts[idx].Balance.Sub(txn.Effect())
		}
	}
	e.transactions = kept
	accountMode := e.state == StateAccountActive
	e.persistGuestLocked(ctx)
	e.mu.Unlock()

	if !accountMode {
		return nil
	}

	if err := remoteCall(ctx); err != nil {
		slog.Error("Delete transactions failed", "count", len(ids), "error", err)
		e.resync(ctx)
	}
	return nil
}

// AddAccount inserts an account optimistically, synthesizing its display
// fields, and reconciles the temporary identity against the backend.
func (e *Engine) AddAccount(ctx context.Context, draft model.AccountDraft) (*model.Account, error) {
	e.mu.Lock()
	if e.state == StateUninitialized {
		e.mu.Unlock()
		return nil, ErrNotActivated
	}
	var holder string
	if e.user != nil {
		holder = e.user.Name
	}
	account := model.Account{
		ID:         model.NewTempAccountID(),
		Name:       draft.Name,
		Balance:    draft.Balance,
		Type:       draft.Type,
		CardNumber: model.NewCardNumberMask(),
		CardHolder: model.HolderName(holder),
	}
	e.accounts = append(e.accounts, account)
	accountMode := e.state == StateAccountActive
	e.persistGuestLocked(ctx)
	e.mu.Unlock()

	if !accountMode {
		return &account, nil
	}

	saved, err := e.remote.CreateAccount(ctx, draft)
	if err != nil {
		slog.Error("Add account failed", "error", err)
		e.resync(ctx)
		return &account, nil
	}

	e.mu.Lock()
	if i := e.findAccountLocked(account.ID); i >= 0 {
		// Adopt the canonical entity but keep the synthesized display
		// fields the backend does not store.
		reconciled := *saved
		if reconciled.CardNumber == "" {
			reconciled.CardNumber = account.CardNumber
		}
		if reconciled.CardHolder == "" {
			reconciled.CardHolder = account.CardHolder
		}
		e.accounts[i] = reconciled
		saved = &reconciled
	}
	e.mu.Unlock()
	return saved, nil
}

// UpdateAccount patches an account's name and type. Balance is only ever
// mutated by transaction side effects.
func (e *Engine) UpdateAccount(ctx context.Context, id string, draft model.AccountDraft) error {
	e.mu.Lock()
	if e.state == StateUninitialized {
		e.mu.Unlock()
		return ErrNotActivated
	}
	idx := e.findAccountLocked(id)
	if idx < 0 {
		e.mu.Unlock()
		return common.NewValidationError(common.ErrAccountNotFound)
	}
	if draft.Name != "" {
		e.accounts[idx].Name = draft.Name
	}
	if draft.Type != "" {
		e.accounts[idx].Type = draft.Type
	}
	accountMode := e.state == StateAccountActive
	e.persistGuestLocked(ctx)
	e.mu.Unlock()

	if !accountMode {
		return nil
	}

	if _, err := e.remote.UpdateAccount(ctx, id, draft); err != nil {
		slog.Error("Update account failed", "account", id, "error", err)
		e.resync(ctx)
	}
	return nil
}

// DeleteAccount removes the account and every transaction referencing it as
// one atomic transition.
func (e *Engine) DeleteAccount(ctx context.Context, id string) error {
	e.mu.Lock()
	if e.state == StateUninitialized {
		e.mu.Unlock()
		return ErrNotActivated
	}
	idx := e.findAccountLocked(id)
	if idx < 0 {
		e.mu.Unlock()
		return common.NewValidationError(common.ErrAccountNotFound)
	}
	e.accounts = append(e.accounts[:idx], e.accounts[idx+1:]...)
	kept := e.transactions[:0:0]
	for _, txn := range e.transactions {
		if txn.AccountID != id {
			kept = append(kept, txn)
		}
	}
	e.transactions = kept
	accountMode := e.state == StateAccountActive
	e.persistGuestLocked(ctx)
	e.mu.Unlock()

	if !accountMode {
		return nil
	}

	if err := e.remote.DeleteAccount(ctx, id); err != nil {
		slog.Error("Delete account failed", "account", id, "error", err)
		e.resync(ctx)
	}
	return nil
}

// TransferFunds moves funds between two accounts by synthesizing exactly
// two linked transactions in the reserved Transfer category. Preconditions
// fail with a ValidationError before any state is touched; a failed remote
// leg resyncs and surfaces the error to the caller.
func (e *Engine) TransferFunds(ctx context.Context, draft model.TransferDraft) error {
	if !draft.Amount.IsPositive() {
		return common.NewValidationError(common.ErrInvalidAmount)
	}
	if draft.SourceAccountID == draft.TargetAccountID {
		return common.NewValidationError(common.ErrSameAccount)
	}
	if draft.Date.IsZero() {
		draft.Date = e.clock()
	}

	e.mu.Lock()
	if e.state == StateUninitialized {
		e.mu.Unlock()
		return ErrNotActivated
	}
	srcIdx := e.findAccountLocked(draft.SourceAccountID)
	dstIdx := e.findAccountLocked(draft.TargetAccountID)
	if srcIdx < 0 || dstIdx < 0 {
		e.mu.Unlock()
		return common.NewValidationError(common.ErrAccountNotFound)
	}
	if e.accounts[srcIdx].Balance.LessThan(draft.Amount) {
		e.mu.Unlock()
		return common.NewValidationError(common.ErrInsufficientFunds)
	}

	newSourceBalance := e.accounts[srcIdx].Balance.Sub(draft.Amount)
	newTargetBalance := e.accounts[dstIdx].Balance.Add(draft.Amount)

	outDesc := draft.Description
	inDesc := draft.Description
	if outDesc == "" {
		outDesc = "Transfer to " + e.accounts[dstIdx].Name
		inDesc = "Transfer from " + e.accounts[srcIdx].Name
	}

	expense := model.Transaction{
		ID:          model.NewTempTransactionID(),
		AccountID:   draft.SourceAccountID,
		Type:        model.TypeExpense,
		Amount:      draft.Amount,
		Category:    model.CategoryTransfer,
		Description: outDesc,
		Date:        draft.Date,
		BalanceAt:   newSourceBalance,
	}
	income := model.Transaction{
		ID:          model.NewTempTransactionID(),
		AccountID:   draft.TargetAccountID,
		Type:        model.TypeIncome,
		Amount:      draft.Amount,
		Category:    model.CategoryTransfer,
		Description: inDesc,
		Date:        draft.Date,
		BalanceAt:   newTargetBalance,
	}

	e.transactions = append([]model.Transaction{expense, income}, e.transactions...)
	e.accounts[srcIdx].Balance = newSourceBalance
	e.accounts[dstIdx].Balance = newTargetBalance
	accountMode := e.state == StateAccountActive
	e.persistGuestLocked(ctx)
	e.mu.Unlock()

	if !accountMode {
		return nil
	}

	if err := e.remote.Transfer(ctx, draft); err != nil {
		slog.Error("Transfer failed", "error", err)
		e.resync(ctx)
		return fmt.Errorf("transfer failed: %w", err)
	}
	return nil
}

// AddAccountType appends a custom account type and reconciles its identity.
func (e *Engine) AddAccountType(ctx context.Context, label, theme string) (*model.AccountType, error) {
	e.mu.Lock()
	if e.state == StateUninitialized {
		e.mu.Unlock()
		return nil, ErrNotActivated
	}
	accountType := model.AccountType{
		ID:    model.NewTempAccountTypeID(),
		Label: label,
		Theme: theme,
	}
	e.accountTypes = append(e.accountTypes, accountType)
	accountMode := e.state == StateAccountActive
	e.persistGuestLocked(ctx)
	e.mu.Unlock()

	if !accountMode {
		return &accountType, nil
	}

	saved, err := e.remote.CreateAccountType(ctx, label, theme)
	if err != nil {
		slog.Error("Add account type failed", "error", err)
		e.resync(ctx)
		return &accountType, nil
	}

	e.mu.Lock()
	for i := range e.accountTypes {
		if e.accountTypes[i].ID == accountType.ID {
			e.accountTypes[i] = *saved
			break
		}
	}
	e.mu.Unlock()
	return saved, nil
}

// DeleteAccountType removes a custom account type. Deleting a built-in
// default is silently ignored; the defaults are immutable.
func (e *Engine) DeleteAccountType(ctx context.Context, id string) error {
	if model.IsDefaultAccountType(id) {
		return nil
	}

	e.mu.Lock()
	if e.state == StateUninitialized {
		e.mu.Unlock()
		return ErrNotActivated
	}
	kept := e.accountTypes[:0:0]
	for _, t := range e.accountTypes {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	e.accountTypes = kept
	accountMode := e.state == StateAccountActive
	e.persistGuestLocked(ctx)
	e.mu.Unlock()

	if !accountMode {
		return nil
	}

	if err := e.remote.DeleteAccountType(ctx, id); err != nil {
		slog.Error("Delete account type failed", "type", id, "error", err)
		e.resync(ctx)
	}
	return nil
}

// ResetData wipes the ledger. Authenticated sessions wipe remotely and
// refetch; guest sessions clear the local snapshot and empty the ledger.
func (e *Engine) ResetData(ctx context.Context) error {
	e.mu.Lock()
	state := e.state
	e.mu.Unlock()

	switch state {
	case StateAccountActive:
		if err := e.remote.ResetAll(ctx); err != nil {
			return fmt.Errorf("remote reset failed: %w", err)
		}
		snap, err := e.fetchLedger(ctx)
		if err != nil {
			return err
		}
		e.mu.Lock()
		e.replaceLedgerLocked(snap)
		e.mu.Unlock()
		return nil
	case StateGuestActive:
		if err := e.snapshots.Clear(ctx); err != nil {
			return fmt.Errorf("failed to clear guest snapshot: %w", err)
		}
		e.mu.Lock()
		e.accounts = nil
		e.transactions = nil
		e.accountTypes = nil
		e.mu.Unlock()
		return nil
	default:
		return ErrNotActivated
	}
}
