package public

import (
	"strconv"
	"strings"
	"time"

	"github.com/mallhub-next/internal/http/response"
	"github.com/mallhub-next/internal/models"
	"github.com/mallhub-next/internal/repository"
	"github.com/mallhub-next/internal/service"

	"github.com/gin-gonic/gin"
)

// OrderView 对外暴露的订单结构，状态展示为首字母大写形式
type OrderView struct {
	ID              uint               `json:"id"`
	OrderNo         string             `json:"order_no"`
	Status          string             `json:"status"`
	Contact         string             `json:"contact"`
	DeliveryAddress string             `json:"delivery_address"`
	DeliveryTime    *time.Time         `json:"delivery_time"`
	SubtotalAmount  models.Money       `json:"subtotal_amount"`
	SurchargeAmount models.Money       `json:"surcharge_amount"`
	TotalAmount     models.Money       `json:"total_amount"`
	Items           []models.OrderItem `json:"items"`
	CreatedAt       time.Time          `json:"created_at"`
	CompletedAt     *time.Time         `json:"completed_at,omitempty"`
	CancelledAt     *time.Time         `json:"cancelled_at,omitempty"`
}

func newOrderView(order *models.Order) OrderView {
	return OrderView{
		ID:              order.ID,
		OrderNo:         order.OrderNo,
		Status:          service.DisplayOrderStatus(order.Status),
		Contact:         order.Contact,
		DeliveryAddress: order.DeliveryAddress,
		DeliveryTime:    order.DeliveryTime,
		SubtotalAmount:  order.SubtotalAmount,
		SurchargeAmount: order.SurchargeAmount,
		TotalAmount:     order.TotalAmount,
		Items:           order.Items,
		CreatedAt:       order.CreatedAt,
		CompletedAt:     order.CompletedAt,
		CancelledAt:     order.CancelledAt,
	}
}

// GetOrders 获取当前用户订单列表
func (h *Handler) GetOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	orders, total, err := h.OrderService.ListForUser(repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   uid,
		Status:   strings.TrimSpace(c.Query("status")),
		OrderNo:  strings.TrimSpace(c.Query("order_no")),
	})
	if err != nil {
		respondOrderError(c, err)
		return
	}

	views := make([]OrderView, 0, len(orders))
	for i := range orders {
		views = append(views, newOrderView(&orders[i]))
	}

	totalPage := (total + int64(pageSize) - 1) / int64(pageSize)
	response.SuccessWithPage(c, gin.H{"orders": views}, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPage,
	})
}

// GetOrder 获取当前用户订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	order, err := h.OrderService.GetForUser(uint(orderID), uid)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	response.Success(c, gin.H{"order": newOrderView(order)})
}
