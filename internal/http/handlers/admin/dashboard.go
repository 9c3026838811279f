package admin

import (
	"github.com/mallhub-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetOverview 获取商城总览统计
func (h *Handler) GetOverview(c *gin.Context) {
	overview, err := h.DashboardService.GetOverview()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, overview)
}

// GetShopRevenue 按营收列出店铺
func (h *Handler) GetShopRevenue(c *gin.Context) {
	entries, err := h.DashboardService.ListShopRevenue()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, gin.H{"shops": entries})
}

// GetMonthlyRevenue 按月统计已完成订单金额
func (h *Handler) GetMonthlyRevenue(c *gin.Context) {
	points, err := h.DashboardService.GetMonthlyRevenue()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, gin.H{"series": points})
}

// GetCategoryDistribution 店铺分类分布
func (h *Handler) GetCategoryDistribution(c *gin.Context) {
	points, err := h.DashboardService.GetCategoryDistribution()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, gin.H{"series": points})
}

// GetWeekdayTraffic 按星期统计订单数
func (h *Handler) GetWeekdayTraffic(c *gin.Context) {
	points, err := h.DashboardService.GetWeekdayTraffic()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, gin.H{"series": points})
}
