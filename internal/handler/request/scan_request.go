package request

// ScanRequest carries a physical scan: which item, at which facility.
type ScanRequest struct {
	ItemID string `json:"item_id" binding:"required"`
	ShopID string `json:"shop_id" binding:"required"`
}

// ManualCompleteRequest is the no-scanner completion path; the shop is
// optional here.
type ManualCompleteRequest struct {
	ShopID string `json:"shop_id"`
}
