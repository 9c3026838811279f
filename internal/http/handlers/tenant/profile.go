package tenant

import (
	"github.com/mallhub-next/internal/http/response"
	"github.com/mallhub-next/internal/service"

	"github.com/gin-gonic/gin"
)

// UpdateProfileRequest 店铺资料更新请求
type UpdateProfileRequest struct {
	ShopName    string `json:"shop_name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Category    string `json:"category"`
}

// GetProfile 获取店铺资料，不存在时自动建档
func (h *Handler) GetProfile(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	tenant, err := h.TenantService.EnsureForUser(uid)
	if err != nil {
		respondTenantError(c, err)
		return
	}
	response.Success(c, gin.H{"tenant": tenant})
}

// UpdateProfile 更新店铺资料
func (h *Handler) UpdateProfile(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	tenant, err := h.TenantService.UpdateProfile(uid, service.UpdateProfileInput{
		ShopName:    req.ShopName,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
	})
	if err != nil {
		respondTenantError(c, err)
		return
	}
	response.Success(c, gin.H{"tenant": tenant})
}

// GetStats 获取店铺经营统计
func (h *Handler) GetStats(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	stats, err := h.TenantService.GetStats(uid)
	if err != nil {
		respondTenantError(c, err)
		return
	}
	response.Success(c, stats)
}
