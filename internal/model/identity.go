package model

// Identity is the authenticated user as exposed by the auth provider. The
// provider itself is a black box; only the presence and name of an identity
// matter to the ledger.
type Identity struct {
	ID   string
	Name string
}
