package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"recircle-core/internal/handler/response"
	"recircle-core/internal/service"
	"recircle-core/pkg/errno"
)

type WalletHandler struct {
	rewards *service.RewardService
}

func NewWalletHandler(rewards *service.RewardService) *WalletHandler {
	return &WalletHandler{rewards: rewards}
}

// GetWallet returns the caller's reward wallet
// @Summary Get wallet
// @Tags Wallet
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/v1/wallet [get]
func (h *WalletHandler) GetWallet(c *gin.Context) {
	actor := ActorFrom(c)
	if actor == nil {
		response.Error(c, errno.ErrTokenInvalid)
		return
	}

	wallet, err := h.rewards.GetWallet(c.Request.Context(), actor.SubjectID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, wallet)
}

// GetLedger returns the caller's ledger entries, newest first
// @Summary Get ledger
// @Tags Wallet
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size (max 50)"
// @Success 200 {object} response.Response
// @Router /api/v1/wallet/ledger [get]
func (h *WalletHandler) GetLedger(c *gin.Context) {
	actor := ActorFrom(c)
	if actor == nil {
		response.Error(c, errno.ErrTokenInvalid)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	entries, err := h.rewards.GetLedger(c.Request.Context(), actor.SubjectID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, entries)
}
