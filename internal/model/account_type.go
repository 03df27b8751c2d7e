package model

// AccountType labels a vault with a visual theme. Themes are opaque tags
// consumed by the presentation layer.
type AccountType struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Theme string `json:"theme"`
}

// Built-in account types seeded for every fresh guest ledger. Once a user
// authenticates, the backend's type list is authoritative and fully
// replaces this set.
var defaultAccountTypes = []AccountType{
	{ID: "type-1", Label: "Family", Theme: "indigo"},
	{ID: "type-2", Label: "Salary", Theme: "emerald"},
	{ID: "type-3", Label: "Current", Theme: "blue"},
	{ID: "type-4", Label: "Savings", Theme: "orange"},
}

// DefaultAccountTypes returns a fresh copy of the built-in type set.
func DefaultAccountTypes() []AccountType {
	out := make([]AccountType, len(defaultAccountTypes))
	copy(out, defaultAccountTypes)
	return out
}

// IsDefaultAccountType reports whether id belongs to the built-in set.
// Defaults are immutable from the caller's perspective and are never sent
// for deletion.
func IsDefaultAccountType(id string) bool {
	for _, t := range defaultAccountTypes {
		if t.ID == id {
			return true
		}
	}
	return false
}
