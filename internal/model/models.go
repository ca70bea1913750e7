package model

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"recircle-core/pkg/auth"
)

// User statuses
const (
	UserStatusActive = "active"
	UserStatusFrozen = "frozen"
)

// User mirrors the identity service's view of an account. This service only
// reads it to verify the actor is known and active.
type User struct {
	ID        uint64         `gorm:"primaryKey;autoIncrement" json:"id"`
	Username  string         `gorm:"type:varchar(255);not null;unique" json:"username"`
	Email     string         `gorm:"type:varchar(255);not null;unique" json:"email"`
	Roles     string         `gorm:"type:varchar(255);not null;default:'customer'" json:"roles"` // comma separated role codes
	Status    string         `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// RoleSet parses the comma separated role column.
func (u *User) RoleSet() []auth.Role {
	parts := strings.Split(u.Roles, ",")
	roles := make([]auth.Role, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			roles = append(roles, auth.Role(p))
		}
	}
	return roles
}

// Shop is a physical drop-off/collection facility. IDs are external codes
// (printed on QR posters), compared case-insensitively.
type Shop struct {
	ID        string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Active    bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Pickup options
const (
	PickupDonate   = "donate"
	PickupExchange = "exchange"
	PickupRecycle  = "recycle"
)

// Item statuses
const (
	ItemStatusDraft              = "draft"
	ItemStatusActive             = "active"
	ItemStatusClaimed            = "claimed"
	ItemStatusPendingDropoff     = "pending_dropoff"
	ItemStatusAwaitingCollection = "awaiting_collection"
	ItemStatusRejected           = "rejected"
	ItemStatusPendingRecycle     = "pending_recycle"
	ItemStatusRecycleProcessing  = "pending_recycle_processing"
	ItemStatusRecycled           = "recycled"
	ItemStatusComplete           = "complete"
)

// InitialItemStatus derives the initial status from the pickup option.
func InitialItemStatus(pickupOption string) string {
	switch pickupOption {
	case PickupDonate:
		return ItemStatusPendingDropoff
	case PickupRecycle:
		return ItemStatusPendingRecycle
	default:
		return ItemStatusActive
	}
}

// ItemClaimable reports whether a new claim may be opened on the status.
func ItemClaimable(status string) bool {
	return status == ItemStatusActive || status == ItemStatusAwaitingCollection
}

// Item is a listed good moving through the donate/exchange/recycle lifecycle.
type Item struct {
	ID            string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	DonorID       uint64         `gorm:"not null;index" json:"donor_id"`
	Title         string         `gorm:"type:varchar(255);not null" json:"title"`
	PickupOption  string         `gorm:"type:varchar(20);not null" json:"pickup_option"`
	Status        string         `gorm:"type:varchar(40);not null;index" json:"status"`
	DropOffShopID *string        `gorm:"type:varchar(64)" json:"drop_off_shop_id,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// Claim statuses
const (
	ClaimStatusPendingApproval = "pending_approval"
	ClaimStatusApproved        = "approved"
	ClaimStatusRejected        = "rejected"
	ClaimStatusCancelled       = "cancelled"
	ClaimStatusComplete        = "complete"
)

// ClaimPriority ranks claim candidates for selection inside the completion
// engine: only one claim ever progresses past approved, but historical rows
// may coexist. Lower ranks first.
func ClaimPriority(status string) int {
	switch status {
	case ClaimStatusApproved:
		return 0
	case ClaimStatusComplete:
		return 1
	case ClaimStatusPendingApproval:
		return 2
	default:
		return 3
	}
}

// Claim is one collector's request on one item. (item_id, collector_id) is
// unique; enforcement of "one approved claim per item" is logical, inside the
// completion transaction, because migrated data may carry legacy duplicates.
type Claim struct {
	ID          string     `gorm:"primaryKey;type:varchar(36)" json:"id"`
	ItemID      string     `gorm:"type:varchar(36);not null;index;uniqueIndex:idx_item_collector" json:"item_id"`
	CollectorID uint64     `gorm:"not null;uniqueIndex:idx_item_collector" json:"collector_id"`
	Status      string     `gorm:"type:varchar(30);not null;index" json:"status"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Scan types
const (
	ScanItemView   = "ITEM_VIEW"
	ScanDropOffIn  = "DROP_OFF_IN"
	ScanClaimOut   = "CLAIM_OUT"
	ScanRecycleIn  = "RECYCLE_IN"
	ScanRecycleOut = "RECYCLE_OUT"
)

// ScanEvent is an immutable audit record of a lifecycle-relevant scan.
// Rows are only ever inserted.
type ScanEvent struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	ItemID    string    `gorm:"type:varchar(36);not null;index" json:"item_id"`
	ScanType  string    `gorm:"type:varchar(20);not null" json:"scan_type"`
	ShopID    *string   `gorm:"type:varchar(64)" json:"shop_id,omitempty"`
	ScannedAt time.Time `gorm:"not null;index" json:"scanned_at"`
}

// TableName overrides keep the table names stable across gorm versions.
func (User) TableName() string      { return "users" }
func (Shop) TableName() string      { return "shops" }
func (Item) TableName() string      { return "items" }
func (Claim) TableName() string     { return "claims" }
func (ScanEvent) TableName() string { return "scan_events" }
