package model

import (
	"strings"

	"github.com/google/uuid"
)

// Snapshot is the full guest ledger as persisted to local storage and as
// pushed during the one-time guest-to-account sync.
type Snapshot struct {
	Accounts     []Account     `json:"accounts"`
	Transactions []Transaction `json:"transactions"`
	AccountTypes []AccountType `json:"accountTypes"`
}

// Temporary identity prefixes for optimistic inserts. Temp IDs are replaced
// by server-assigned identities once the remote leg confirms.
const (
	tempTransactionPrefix = "temp-"
	tempAccountPrefix     = "temp-acc-"
	tempTypePrefix        = "temp-type-"
)

// NewTempTransactionID generates a temporary transaction identity.
func NewTempTransactionID() string {
	return tempTransactionPrefix + uuid.NewString()
}

// NewTempAccountID generates a temporary account identity.
func NewTempAccountID() string {
	return tempAccountPrefix + uuid.NewString()
}

// NewTempAccountTypeID generates a temporary account type identity.
func NewTempAccountTypeID() string {
	return tempTypePrefix + uuid.NewString()
}

// IsTempID reports whether id was generated locally and has not yet been
// reconciled against a server identity.
func IsTempID(id string) bool {
	return strings.HasPrefix(id, tempTransactionPrefix)
}
