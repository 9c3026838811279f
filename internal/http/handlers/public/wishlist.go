package public

import (
	"strconv"

	"github.com/mallhub-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// WishlistAddRequest 收藏请求
type WishlistAddRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// GetWishlist 获取收藏列表
func (h *Handler) GetWishlist(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	entries, err := h.WishlistService.List(uid)
	if err != nil {
		respondWishlistError(c, err)
		return
	}
	response.Success(c, gin.H{"items": entries})
}

// AddWishlistItem 加入收藏，重复加入直接成功
func (h *Handler) AddWishlistItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req WishlistAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := h.WishlistService.Add(uid, req.ProductID); err != nil {
		respondWishlistError(c, err)
		return
	}
	response.Success(c, gin.H{"added": true})
}

// RemoveWishlistItem 移除收藏，不存在时同样成功
func (h *Handler) RemoveWishlistItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	if err := h.WishlistService.Remove(uid, uint(productID)); err != nil {
		respondWishlistError(c, err)
		return
	}
	response.Success(c, gin.H{"removed": true})
}
