package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"recircle-core/internal/handler/request"
	"recircle-core/internal/handler/response"
	"recircle-core/internal/service"
	"recircle-core/pkg/auth"
	"recircle-core/pkg/errno"
)

// ScanHandler exposes every scan-driven lifecycle transition: claim-out,
// drop-off, recycle intake/outtake, item views, and the manual completion
// fallback.
type ScanHandler struct {
	completion *service.CompletionService
	recycle    *service.RecycleService
	items      *service.ItemService
	scans      *service.ScanService
}

func NewScanHandler(completion *service.CompletionService, recycle *service.RecycleService, items *service.ItemService, scans *service.ScanService) *ScanHandler {
	return &ScanHandler{completion: completion, recycle: recycle, items: items, scans: scans}
}

// ClaimOut completes a claim from a QR scan
// @Summary QR claim-out scan
// @Tags Scans
// @Accept json
// @Produce json
// @Param request body request.ScanRequest true "Scan"
// @Success 200 {object} response.Response
// @Router /api/v1/scan/claim-out [post]
func (h *ScanHandler) ClaimOut(c *gin.Context) {
	var req request.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrBind)
		return
	}

	result, err := h.completion.CompleteClaim(c.Request.Context(), ActorFrom(c), req.ItemID, req.ShopID, service.EntryQR)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// CompleteManual completes a claim without a scanner
// @Summary Manual completion
// @Tags Scans
// @Accept json
// @Produce json
// @Param id path string true "Item ID"
// @Param request body request.ManualCompleteRequest false "Optional shop"
// @Success 200 {object} response.Response
// @Router /api/v1/items/{id}/complete [post]
func (h *ScanHandler) CompleteManual(c *gin.Context) {
	var req request.ManualCompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		response.Error(c, errno.ErrBind)
		return
	}

	result, err := h.completion.CompleteClaim(c.Request.Context(), ActorFrom(c), c.Param("id"), req.ShopID, service.EntryManual)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// DropOffIn accepts an item dropped off at a shop
// @Summary Drop-off intake scan
// @Tags Scans
// @Router /api/v1/scan/drop-off [post]
func (h *ScanHandler) DropOffIn(c *gin.Context) {
	var req request.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrBind)
		return
	}

	item, err := h.items.AcceptDropOff(c.Request.Context(), ActorFrom(c), req.ItemID, req.ShopID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, item)
}

// DropOffReject rejects an item at drop-off
// @Summary Drop-off rejection
// @Tags Scans
// @Router /api/v1/scan/drop-off/reject [post]
func (h *ScanHandler) DropOffReject(c *gin.Context) {
	var req request.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrBind)
		return
	}

	item, err := h.items.RejectDropOff(c.Request.Context(), ActorFrom(c), req.ItemID, req.ShopID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, item)
}

// RecycleIn records a recycle intake scan
// @Summary Recycle intake scan
// @Tags Scans
// @Router /api/v1/scan/recycle-in [post]
func (h *ScanHandler) RecycleIn(c *gin.Context) {
	h.recycleStep(c, h.recycle.In)
}

// RecycleOut records a recycle outtake scan
// @Summary Recycle outtake scan
// @Tags Scans
// @Router /api/v1/scan/recycle-out [post]
func (h *ScanHandler) RecycleOut(c *gin.Context) {
	h.recycleStep(c, h.recycle.Out)
}

func (h *ScanHandler) recycleStep(c *gin.Context, step func(ctx context.Context, actor *auth.ActorContext, itemID, shopID string) (*service.RecycleResult, error)) {
	var req request.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrBind)
		return
	}

	result, err := step(c.Request.Context(), ActorFrom(c), req.ItemID, req.ShopID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Trail returns the item's scan audit trail, newest first
// @Summary Scan audit trail
// @Tags Scans
// @Param id path string true "Item ID"
// @Router /api/v1/items/{id}/scans [get]
func (h *ScanHandler) Trail(c *gin.Context) {
	events, err := h.scans.Trail(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, events)
}

// ItemView records a view scan against an item
// @Summary Item view scan
// @Tags Scans
// @Router /api/v1/scan/item-view [post]
func (h *ScanHandler) ItemView(c *gin.Context) {
	var req struct {
		ItemID string  `json:"item_id" binding:"required"`
		ShopID *string `json:"shop_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrBind)
		return
	}

	ev, err := h.scans.RecordItemView(c.Request.Context(), req.ItemID, req.ShopID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, ev)
}
