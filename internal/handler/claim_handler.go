package handler

import (
	"github.com/gin-gonic/gin"

	"recircle-core/internal/handler/request"
	"recircle-core/internal/handler/response"
	"recircle-core/internal/service"
	"recircle-core/pkg/errno"
)

type ClaimHandler struct {
	claims *service.ClaimService
}

func NewClaimHandler(claims *service.ClaimService) *ClaimHandler {
	return &ClaimHandler{claims: claims}
}

// Create opens a claim on an item
// @Summary Create a claim
// @Description Collector requests an item; enters pending_approval
// @Tags Claims
// @Accept json
// @Produce json
// @Param request body request.CreateClaimRequest true "Claim Request"
// @Success 200 {object} response.Response
// @Router /api/v1/claims [post]
func (h *ClaimHandler) Create(c *gin.Context) {
	var req request.CreateClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrBind)
		return
	}

	claim, err := h.claims.Create(c.Request.Context(), ActorFrom(c), req.ItemID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, claim)
}

// Approve approves a pending claim
// @Summary Approve a claim
// @Description Item donor or admin approves a pending claim
// @Tags Claims
// @Produce json
// @Param id path string true "Claim ID"
// @Success 200 {object} response.Response
// @Router /api/v1/claims/{id}/approve [post]
func (h *ClaimHandler) Approve(c *gin.Context) {
	claim, err := h.claims.Approve(c.Request.Context(), ActorFrom(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, claim)
}
