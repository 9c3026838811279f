package public

import (
	"github.com/mallhub-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetLoyalty 获取会员积分概览
func (h *Handler) GetLoyalty(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	summary, err := h.LoyaltyService.Summary(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, summary)
}
