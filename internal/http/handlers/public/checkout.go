package public

import (
	"github.com/mallhub-next/internal/http/response"
	"github.com/mallhub-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CheckoutRequest 提交结算请求
type CheckoutRequest struct {
	ContactName  string `json:"contact_name" binding:"required"`
	ContactPhone string `json:"contact_phone" binding:"required"`
	Address      string `json:"address" binding:"required"`
	DeliveryTime string `json:"delivery_time"`
}

// GetCheckoutQuote 获取结算报价
func (h *Handler) GetCheckoutQuote(c *gin.Context) {
	sessionID, ok := getSessionID(c)
	if !ok {
		return
	}
	quote, err := h.CheckoutService.Quote(c.Request.Context(), sessionID)
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	response.Success(c, quote)
}

// SubmitCheckout 提交订单
func (h *Handler) SubmitCheckout(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	sessionID, ok := getSessionID(c)
	if !ok {
		return
	}
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	order, err := h.CheckoutService.Submit(c.Request.Context(), service.SubmitCheckoutInput{
		UserID:       uid,
		SessionID:    sessionID,
		ContactName:  req.ContactName,
		ContactPhone: req.ContactPhone,
		Address:      req.Address,
		DeliveryTime: req.DeliveryTime,
	})
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	response.Success(c, gin.H{"order": newOrderView(order)})
}
