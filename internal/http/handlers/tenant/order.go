package tenant

import (
	"strconv"
	"strings"

	"github.com/mallhub-next/internal/constants"
	"github.com/mallhub-next/internal/http/response"
	"github.com/mallhub-next/internal/repository"
	"github.com/mallhub-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GetOrders 获取包含本店铺商品的订单列表
func (h *Handler) GetOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	tenant, err := h.TenantService.EnsureForUser(uid)
	if err != nil {
		respondTenantError(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	views, total, err := h.OrderService.ListForTenant(tenant.ID, repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   strings.TrimSpace(c.Query("status")),
	})
	if err != nil {
		respondTenantError(c, err)
		return
	}

	type orderView struct {
		service.TenantOrderView
		Status string `json:"status"`
	}
	items := make([]orderView, 0, len(views))
	for _, view := range views {
		items = append(items, orderView{TenantOrderView: view, Status: service.DisplayOrderStatus(view.Order.Status)})
	}

	totalPage := (total + int64(pageSize) - 1) / int64(pageSize)
	response.SuccessWithPage(c, gin.H{"orders": items}, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPage,
	})
}

// UpdateOrderStatusRequest 订单状态变更请求
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateOrderStatus 商户完成或取消订单，只能操作包含本店铺商品的订单
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	order, err := h.OrderService.UpdateStatus(uid, constants.RoleTenant, uint(orderID), req.Status)
	if err != nil {
		respondTenantError(c, err)
		return
	}
	response.Success(c, gin.H{
		"order_id": order.ID,
		"status":   service.DisplayOrderStatus(order.Status),
	})
}
