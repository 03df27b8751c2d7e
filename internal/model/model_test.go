package model

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionEffect(t *testing.T) {
	amount := decimal.RequireFromString("42.50")

	income := Transaction{Type: TypeIncome, Amount: amount}
	assert.True(t, income.Effect().Equal(amount))

	expense := Transaction{Type: TypeExpense, Amount: amount}
	assert.True(t, expense.Effect().Equal(amount.Neg()))
}

func TestDefaultAccountTypes(t *testing.T) {
	types := DefaultAccountTypes()
	require.Len(t, types, 4)
	assert.Equal(t, "type-1", types[0].ID)
	assert.Equal(t, "Family", types[0].Label)

	// Callers get a copy; mutating it must not poison the defaults.
	types[0].Label = "mutated"
	assert.Equal(t, "Family", DefaultAccountTypes()[0].Label)
}

func TestIsDefaultAccountType(t *testing.T) {
	for _, id := range []string{"type-1", "type-2", "type-3", "type-4"} {
		assert.True(t, IsDefaultAccountType(id), id)
	}
	assert.False(t, IsDefaultAccountType("type-5"))
	assert.False(t, IsDefaultAccountType(""))
	assert.False(t, IsDefaultAccountType("temp-type-x"))
}

func TestTempIDs(t *testing.T) {
	txnID := NewTempTransactionID()
	accID := NewTempAccountID()
	typeID := NewTempAccountTypeID()

	assert.True(t, strings.HasPrefix(txnID, "temp-"))
	assert.True(t, strings.HasPrefix(accID, "temp-acc-"))
	assert.True(t, strings.HasPrefix(typeID, "temp-type-"))

	for _, id := range []string{txnID, accID, typeID} {
		assert.True(t, IsTempID(id), id)
	}
	assert.False(t, IsTempID("65a1b2c3"))
	assert.False(t, IsTempID(""))

	assert.NotEqual(t, NewTempTransactionID(), NewTempTransactionID())
}

func TestHolderName(t *testing.T) {
	assert.Equal(t, "ADA LOVELACE", HolderName("Ada Lovelace"))
	assert.Equal(t, "GUEST USER", HolderName(""))
}

func TestNewCardNumberMask(t *testing.T) {
	mask := NewCardNumberMask()
	assert.Regexp(t, `^\*\*\*\* \*\*\*\* \*\*\*\* \d{4}$`, mask)
}

func TestAmountsMarshalAsNumbers(t *testing.T) {
	account := Account{ID: "a1", Name: "Wallet", Balance: decimal.RequireFromString("1000.50")}

	encoded, err := json.Marshal(account)
	require.NoError(t, err)
	assert.Contains(t, string(encoded), `"balance":1000.5`)
	assert.NotContains(t, string(encoded), `"balance":"`)

	// And unmarshal back without loss.
	var decoded Account
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.True(t, decoded.Balance.Equal(account.Balance))
}
