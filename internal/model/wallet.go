package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet statuses
const (
	WalletStatusActive = "active"
	WalletStatusFrozen = "frozen"
)

// Wallet is the per-(owner, currency) reward account. Created lazily on the
// first credit attempt with zero balances.
type Wallet struct {
	ID              string          `gorm:"primaryKey;type:varchar(36)" json:"id"`
	OwnerID         uint64          `gorm:"not null;uniqueIndex:idx_owner_currency" json:"owner_id"`
	Currency        string          `gorm:"type:varchar(10);not null;uniqueIndex:idx_owner_currency" json:"currency"`
	AvailableAmount decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0" json:"available_amount"`
	PendingAmount   decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0" json:"pending_amount"`
	Status          string          `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Ledger entry types
const (
	EntryTypeCredit = "credit"
	EntryTypeDebit  = "debit"
)

// Ledger purposes
const (
	PurposeClaimCompleteCollector = "claim_complete_collector"
	PurposeClaimCompleteDonor     = "claim_complete_donor"
)

// LedgerEntry is one immutable ledger row. (wallet_id, purpose, reference) is
// globally unique and is the sole guard against double-crediting.
type LedgerEntry struct {
	ID           string          `gorm:"primaryKey;type:varchar(36)" json:"id"`
	WalletID     string          `gorm:"type:varchar(36);not null;index;uniqueIndex:idx_wallet_purpose_ref" json:"wallet_id"`
	Type         string          `gorm:"type:varchar(10);not null" json:"type"`
	Amount       decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"amount"`
	Currency     string          `gorm:"type:varchar(10);not null" json:"currency"`
	BalanceAfter decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"balance_after"`
	Purpose      string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_wallet_purpose_ref" json:"purpose"`
	Reference    string          `gorm:"type:varchar(64);not null;uniqueIndex:idx_wallet_purpose_ref" json:"reference"`
	CreatedAt    time.Time       `json:"created_at"`
}

func (Wallet) TableName() string      { return "wallets" }
func (LedgerEntry) TableName() string { return "ledger_entries" }
