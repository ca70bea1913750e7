package model

// AllModels returns every model object the schema migration needs.
// New tables only have to be added here, not in main.go.
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Shop{},
		&Item{},
		&Claim{},
		&ScanEvent{},
		&Wallet{},
		&LedgerEntry{},
	}
}
