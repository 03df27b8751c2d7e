// Package model defines the ledger entities shared across the application.
package model

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts travel as plain JSON numbers, matching the backend wire format.
	decimal.MarshalJSONWithoutQuotes = true
}

// Account represents a single vault holding a running balance.
type Account struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Balance    decimal.Decimal `json:"balance"`
	Type       string          `json:"type"`
	CardNumber string          `json:"cardNumber,omitempty"`
	CardHolder string          `json:"cardHolder,omitempty"`
	Color      string          `json:"color,omitempty"`
}

// AccountDraft carries the user-supplied fields for a new or updated account.
type AccountDraft struct {
	Name    string
	Balance decimal.Decimal
	Type    string
}

// NewCardNumberMask synthesizes a display-only masked card number.
func NewCardNumberMask() string {
	return fmt.Sprintf("**** **** **** %04d", 1000+rand.IntN(9000))
}

// HolderName formats an identity name for card display, falling back to a
// guest placeholder when no identity is present.
func HolderName(userName string) string {
	if userName == "" {
		return "GUEST USER"
	}
	return strings.ToUpper(userName)
}
