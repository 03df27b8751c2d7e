package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/citrushq/citrus-ledger/internal/engine"
	"github.com/citrushq/citrus-ledger/internal/model"
	"github.com/citrushq/citrus-ledger/internal/remote"
	"github.com/citrushq/citrus-ledger/internal/snapshot"
)

func snapshotPath() (string, error) {
	if path := viper.GetString("database.path"); path != "" {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "citrus", "citrus.db"), nil
}

// identity returns the configured user, or nil when no API token is set.
// Token lifecycle belongs to the auth provider; here it is an opaque string.
func identity() *model.Identity {
	if viper.GetString("api.token") == "" {
		return nil
	}
	name := viper.GetString("user.name")
	if name == "" {
		name = "Citrus User"
	}
	return &model.Identity{ID: viper.GetString("user.id"), Name: name}
}

// buildEngine wires the engine against the configured backend and local
// snapshot store and activates it for the configured identity.
func buildEngine(ctx context.Context) (*engine.Engine, func(), error) {
	path, err := snapshotPath()
	if err != nil {
		return nil, nil, err
	}

	store, err := snapshot.NewStore(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open snapshot store: %w", err)
	}
	cleanup := func() {
		_ = store.Close()
	}

	client := remote.NewClient(viper.GetString("api.url"), viper.GetString("api.token"))
	eng := engine.New(client, store)

	if err := eng.Activate(ctx, identity()); err != nil {
		cleanup()
		return nil, nil, err
	}
	return eng, cleanup, nil
}

// formatMoney renders an amount in the preferred display currency.
func formatMoney(amount decimal.Decimal, code string) string {
	currency := money.GetCurrency(code)
	if currency == nil {
		currency = money.GetCurrency(snapshot.DefaultCurrency)
	}
	minor := amount.Shift(int32(currency.Fraction)).Round(0).IntPart()
	return money.New(minor, currency.Code).Display()
}
