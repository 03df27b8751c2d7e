// Package remote implements the HTTP client for the citrus ledger backend.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/citrushq/citrus-ledger/internal/common"
	"github.com/citrushq/citrus-ledger/internal/model"
)

const defaultTimeout = 30 * time.Second

// Client talks JSON over HTTP(S) to the ledger backend. It is a pure
// request layer; reconciliation decisions belong to the engine.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a backend client. The token is attached as a bearer
// credential on every request; its lifecycle is owned by the auth provider.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// do issues a single request and decodes the response into out when out is
// non-nil. Any transport or status failure comes back as a *common.RemoteError.
func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return common.NewRemoteError(op, 0, fmt.Errorf("failed to encode request: %w", err))
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return common.NewRemoteError(op, 0, fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	slog.Debug("Calling ledger backend", "op", op, "method", method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return common.NewRemoteError(op, 0, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return common.NewRemoteError(op, resp.StatusCode,
			fmt.Errorf("unexpected response: %s", strings.TrimSpace(string(snippet))))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return common.NewRemoteError(op, resp.StatusCode, fmt.Errorf("failed to decode response: %w", err))
		}
	}

	return nil
}

// FetchLedger returns the full authoritative ledger for the current identity.
func (c *Client) FetchLedger(ctx context.Context) (*model.Snapshot, error) {
	var ledger wireLedger
	if err := c.do(ctx, "fetch ledger", http.MethodGet, "/finance/data", nil, &ledger); err != nil {
		return nil, err
	}
	return ledger.toSnapshot(), nil
}

// CreateAccount persists a new account and returns its canonical form.
func (c *Client) CreateAccount(ctx context.Context, draft model.AccountDraft) (*model.Account, error) {
	body := accountDraftBody{Name: draft.Name, Balance: draft.Balance, Type: draft.Type}
	var saved wireAccount
	if err := c.do(ctx, "create account", http.MethodPost, "/finance/accounts", body, &saved); err != nil {
		return nil, err
	}
	account := saved.toModel()
	return &account, nil
}

// UpdateAccount patches an existing account.
func (c *Client) UpdateAccount(ctx context.Context, id string, draft model.AccountDraft) (*model.Account, error) {
	body := accountDraftBody{Name: draft.Name, Balance: draft.Balance, Type: draft.Type}
	var saved wireAccount
	if err := c.do(ctx, "update account", http.MethodPut, "/finance/accounts/"+id, body, &saved); err != nil {
		return nil, err
	}
	account := saved.toModel()
	return &account, nil
}

// DeleteAccount removes an account; the backend cascades to its transactions.
func (c *Client) DeleteAccount(ctx context.Context, id string) error {
	return c.do(ctx, "delete account", http.MethodDelete, "/finance/accounts/"+id, nil, nil)
}

// CreateTransaction persists a new transaction and returns its canonical form.
func (c *Client) CreateTransaction(ctx context.Context, draft model.TransactionDraft) (*model.Transaction, error) {
	body := transactionDraftBody{
		AccountID:   draft.AccountID,
		Type:        string(draft.Type),
		Amount:      draft.Amount,
		Category:    draft.Category,
		Description: draft.Description,
		Date:        draft.Date,
	}
	var saved wireTransaction
	if err := c.do(ctx, "create transaction", http.MethodPost, "/finance/transactions", body, &saved); err != nil {
		return nil, err
	}
	txn := saved.toModel()
	return &txn, nil
}

// UpdateTransaction patches an existing transaction.
func (c *Client) UpdateTransaction(ctx context.Context, id string, draft model.TransactionDraft) (*model.Transaction, error) {
	body := transactionDraftBody{
		AccountID:   draft.AccountID,
		Type:        string(draft.Type),
		Amount:      draft.Amount,
		Category:    draft.Category,
		Description: draft.Description,
		Date:        draft.Date,
	}
	var saved wireTransaction
	if err := c.do(ctx, "update transaction", http.MethodPut, "/finance/transactions/"+id, body, &saved); err != nil {
		return nil, err
	}
	txn := saved.toModel()
	return &txn, nil
}

// DeleteTransaction removes a single transaction.
func (c *Client) DeleteTransaction(ctx context.Context, id string) error {
	return c.do(ctx, "delete transaction", http.MethodDelete, "/finance/transactions/"+id, nil, nil)
}

// BulkDeleteTransactions removes the given transactions in one call.
func (c *Client) BulkDeleteTransactions(ctx context.Context, ids []string) error {
	return c.do(ctx, "bulk delete transactions", http.MethodDelete, "/finance/transactions/bulk-delete", bulkDeleteBody{IDs: ids}, nil)
}

// DeleteAllTransactions wipes the identity's transaction history.
func (c *Client) DeleteAllTransactions(ctx context.Context) error {
	return c.do(ctx, "delete all transactions", http.MethodDelete, "/finance/transactions/delete-all", nil, nil)
}

// Transfer moves funds between two accounts server-side.
func (c *Client) Transfer(ctx context.Context, req model.TransferDraft) error {
	return c.do(ctx, "transfer", http.MethodPost, "/finance/transfer", req, nil)
}

// SyncGuestData pushes a guest snapshot into the authenticated account.
// The backend does not guarantee idempotence; callers must not retry.
func (c *Client) SyncGuestData(ctx context.Context, snapshot model.Snapshot) error {
	return c.do(ctx, "sync guest data", http.MethodPost, "/finance/sync", snapshot, nil)
}

// CreateAccountType persists a custom account type.
func (c *Client) CreateAccountType(ctx context.Context, label, theme string) (*model.AccountType, error) {
	var saved wireAccountType
	if err := c.do(ctx, "create account type", http.MethodPost, "/finance/account-types", accountTypeBody{Label: label, Theme: theme}, &saved); err != nil {
		return nil, err
	}
	accountType := saved.toModel()
	return &accountType, nil
}

// DeleteAccountType removes a custom account type.
func (c *Client) DeleteAccountType(ctx context.Context, id string) error {
	return c.do(ctx, "delete account type", http.MethodDelete, "/finance/account-types/"+id, nil, nil)
}

// ResetAll wipes all remote data for the current identity.
func (c *Client) ResetAll(ctx context.Context) error {
	return c.do(ctx, "reset", http.MethodDelete, "/finance/reset", nil, nil)
}
