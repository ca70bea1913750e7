package event

// Topics
const (
	TopicClaimCreated  = "market_events_claim_created"
	TopicClaimApproved = "market_events_claim_approved"
	TopicItemCollected = "market_events_item_collected"
	TopicRecycleStep   = "market_events_recycle"
)

// ClaimCreatedEvent notifies the donor that a collector wants the item.
type ClaimCreatedEvent struct {
	ClaimID     string `json:"claim_id"`
	ItemID      string `json:"item_id"`
	DonorID     uint64 `json:"donor_id"`
	CollectorID uint64 `json:"collector_id"`
}

// ClaimApprovedEvent notifies the collector that pickup is allowed.
type ClaimApprovedEvent struct {
	ClaimID     string `json:"claim_id"`
	ItemID      string `json:"item_id"`
	CollectorID uint64 `json:"collector_id"`
}

// ItemCollectedEvent fires after a successful claim completion.
type ItemCollectedEvent struct {
	ClaimID     string `json:"claim_id"`
	ItemID      string `json:"item_id"`
	DonorID     uint64 `json:"donor_id"`
	CollectorID uint64 `json:"collector_id"`
	ShopID      string `json:"shop_id,omitempty"`
}

// RecycleStepEvent fires on recycle intake/outtake scans.
type RecycleStepEvent struct {
	ItemID string `json:"item_id"`
	Step   string `json:"step"` // RECYCLE_IN or RECYCLE_OUT
	ShopID string `json:"shop_id"`
}
