package service

import (
	"time"

	"github.com/mallhub-next/internal/constants"
	"github.com/mallhub-next/internal/logger"
	"github.com/mallhub-next/internal/models"
	"github.com/mallhub-next/internal/queue"
	"github.com/mallhub-next/internal/repository"
)

// OrderService 订单服务
type OrderService struct {
	orderRepo      repository.OrderRepository
	tenantRepo     repository.TenantRepository
	loyaltyService *LoyaltyService
	queueClient    *queue.Client
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository, tenantRepo repository.TenantRepository, loyaltyService *LoyaltyService, queueClient *queue.Client) *OrderService {
	return &OrderService{
		orderRepo:      orderRepo,
		tenantRepo:     tenantRepo,
		loyaltyService: loyaltyService,
		queueClient:    queueClient,
	}
}

// GetForUser 获取用户自己的订单详情
func (s *OrderService) GetForUser(orderID, userID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListForUser 获取用户订单列表
func (s *OrderService) ListForUser(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	filter.Status = NormalizeOrderStatus(filter.Status)
	return s.orderRepo.ListByUser(filter)
}

// TenantOrderView 商户视角的订单，只包含本店铺的订单项
type TenantOrderView struct {
	Order   models.Order `json:"order"`
	Revenue models.Money `json:"revenue"`
}

// ListForTenant 获取包含商户商品的订单，订单项按店铺过滤
func (s *OrderService) ListForTenant(tenantID uint, filter repository.OrderListFilter) ([]TenantOrderView, int64, error) {
	filter.TenantID = tenantID
	filter.Status = NormalizeOrderStatus(filter.Status)
	orders, total, err := s.orderRepo.ListByTenant(filter)
	if err != nil {
		return nil, 0, err
	}

	views := make([]TenantOrderView, 0, len(orders))
	for _, order := range orders {
		revenue := models.ZeroMoney()
		items := make([]models.OrderItem, 0, len(order.Items))
		for _, item := range order.Items {
			if item.TenantID != tenantID {
				continue
			}
			items = append(items, item)
			revenue = revenue.Add(item.TotalPrice)
		}
		order.Items = items
		views = append(views, TenantOrderView{Order: order, Revenue: revenue})
	}
	return views, total, nil
}

// UpdateStatus 变更订单状态，终态订单拒绝任何流转，
// 只有商户和管理员可以流转状态，商户只能操作包含本店铺商品的订单
func (s *OrderService) UpdateStatus(actorUserID uint, actorRole string, orderID uint, rawStatus string) (*models.Order, error) {
	target := NormalizeOrderStatus(rawStatus)
	if target == "" || target == constants.OrderStatusPending {
		return nil, ErrInvalidOrderStatus
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	switch actorRole {
	case constants.RoleAdmin:
	case constants.RoleTenant:
		tenant, err := s.tenantRepo.GetByUserID(actorUserID)
		if err != nil {
			return nil, err
		}
		if tenant == nil {
			return nil, ErrTenantNotFound
		}
		owned, err := s.orderRepo.BelongsToTenant(order.ID, tenant.ID)
		if err != nil {
			return nil, err
		}
		if !owned {
			return nil, ErrOrderNotFound
		}
	default:
		return nil, ErrOrderNotFound
	}

	if !CanTransition(order.Status, target) {
		return nil, NewInvalidTransitionError(DisplayOrderStatus(order.Status), DisplayOrderStatus(target))
	}

	now := time.Now()
	updates := map[string]interface{}{"updated_at": now}
	switch target {
	case constants.OrderStatusCompleted:
		updates["completed_at"] = now
	case constants.OrderStatusCancelled:
		updates["cancelled_at"] = now
	}
	if err := s.orderRepo.UpdateStatus(order.ID, target, updates); err != nil {
		return nil, err
	}

	if target == constants.OrderStatusCompleted {
		s.triggerLoyaltyCredit(order.ID)
	}

	return s.orderRepo.GetByID(order.ID)
}

// CancelOverdue 取消超期未处理的订单，仅作用于 pending 状态
func (s *OrderService) CancelOverdue(orderID uint) error {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order == nil || order.Status != constants.OrderStatusPending {
		return nil
	}
	now := time.Now()
	return s.orderRepo.UpdateStatus(order.ID, constants.OrderStatusCancelled, map[string]interface{}{
		"cancelled_at": now,
		"updated_at":   now,
	})
}

// triggerLoyaltyCredit 订单完成后入账会员积分，队列不可用时同步兜底
func (s *OrderService) triggerLoyaltyCredit(orderID uint) {
	if s.queueClient != nil {
		err := s.queueClient.EnqueueLoyaltyCredit(orderID)
		if err == nil {
			return
		}
		logger.Warnw("loyalty_credit_enqueue_failed", "error", err, "order_id", orderID)
	}
	if s.loyaltyService == nil {
		return
	}
	if err := s.loyaltyService.CreditOrder(orderID); err != nil {
		logger.Errorw("loyalty_credit_failed", "error", err, "order_id", orderID)
	}
}
