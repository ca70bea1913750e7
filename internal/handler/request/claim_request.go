package request

// CreateClaimRequest opens a claim on an item.
type CreateClaimRequest struct {
	ItemID string `json:"item_id" binding:"required"`
}
