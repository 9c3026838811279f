package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/mallhub-next/internal/cart"
	"github.com/mallhub-next/internal/config"
	"github.com/mallhub-next/internal/constants"
	"github.com/mallhub-next/internal/logger"
	"github.com/mallhub-next/internal/models"
	"github.com/mallhub-next/internal/queue"
	"github.com/mallhub-next/internal/repository"

	"gorm.io/gorm"
)

// CheckoutService 结算服务，负责报价与下单
type CheckoutService struct {
	cfg         *config.Config
	cartService *CartService
	store       cart.Store
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	queueClient *queue.Client
}

// NewCheckoutService 创建结算服务
func NewCheckoutService(cfg *config.Config, cartService *CartService, store cart.Store, productRepo repository.ProductRepository, orderRepo repository.OrderRepository, queueClient *queue.Client) *CheckoutService {
	return &CheckoutService{
		cfg:         cfg,
		cartService: cartService,
		store:       store,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		queueClient: queueClient,
	}
}

// CheckoutQuote 结算报价
type CheckoutQuote struct {
	Lines     []CartLineDetail `json:"lines"`
	Subtotal  models.Money     `json:"subtotal"`
	Surcharge models.Money     `json:"surcharge"`
	Total     models.Money     `json:"total"`
}

// SubmitCheckoutInput 提交结算输入
type SubmitCheckoutInput struct {
	UserID       uint
	SessionID    string
	ContactName  string
	ContactPhone string
	Address      string
	DeliveryTime string
}

// Quote 返回当前购物车的结算报价，总价含 10% 服务费
func (s *CheckoutService) Quote(ctx context.Context, sessionID string) (*CheckoutQuote, error) {
	view, err := s.cartService.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return buildQuote(view), nil
}

func buildQuote(view *CartView) *CheckoutQuote {
	surcharge := view.Subtotal.MulPercent(constants.ServiceSurchargePercent)
	return &CheckoutQuote{
		Lines:     view.Lines,
		Subtotal:  view.Subtotal,
		Surcharge: surcharge,
		Total:     view.Subtotal.Add(surcharge),
	}
}

// Submit 提交订单，库存扣减与订单写入在同一事务内完成，
// 任一商品库存不足则整单失败，购物车与库存保持原状
func (s *CheckoutService) Submit(ctx context.Context, input SubmitCheckoutInput) (*models.Order, error) {
	contactName := strings.TrimSpace(input.ContactName)
	if contactName == "" {
		return nil, ErrContactNameRequired
	}
	contactPhone := strings.TrimSpace(input.ContactPhone)
	if contactPhone == "" {
		return nil, ErrContactPhoneRequired
	}
	address := strings.TrimSpace(input.Address)
	if address == "" {
		return nil, ErrAddressRequired
	}
	deliveryTime, err := parseDeliveryTime(input.DeliveryTime)
	if err != nil {
		return nil, err
	}

	view, err := s.cartService.Get(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	if len(view.Lines) == 0 {
		return nil, ErrCartEmpty
	}

	quote := buildQuote(view)
	order := &models.Order{
		OrderNo:         generateOrderNo(),
		UserID:          input.UserID,
		Status:          constants.OrderStatusPending,
		ContactName:     contactName,
		ContactPhone:    contactPhone,
		Contact:         fmt.Sprintf("%s (%s)", contactName, contactPhone),
		DeliveryAddress: address,
		DeliveryTime:    deliveryTime,
		SubtotalAmount:  quote.Subtotal,
		SurchargeAmount: quote.Surcharge,
		TotalAmount:     quote.Total,
	}

	err = s.productRepo.Transaction(func(tx *gorm.DB) error {
		txProductRepo := s.productRepo.WithTx(tx)
		items := make([]models.OrderItem, 0, len(view.Lines))
		for _, line := range view.Lines {
			product, err := txProductRepo.GetByID(line.ProductID)
			if err != nil {
				return err
			}
			if product == nil || !product.IsActive {
				return ErrProductNotFound
			}
			rows, err := txProductRepo.DecrementStock(product.ID, line.Quantity)
			if err != nil {
				return err
			}
			if rows == 0 {
				return NewInsufficientStockError(product.Name)
			}
			items = append(items, models.OrderItem{
				ProductID:   product.ID,
				TenantID:    product.TenantID,
				ProductName: product.Name,
				UnitPrice:   product.Price,
				Quantity:    line.Quantity,
				TotalPrice:  product.Price.MulInt(line.Quantity),
			})
		}
		return s.orderRepo.WithTx(tx).Create(order, items)
	})
	if err != nil {
		return nil, err
	}

	// 只有提交成功才清空购物车
	if err := s.store.Clear(ctx, input.SessionID); err != nil {
		logger.Warnw("checkout_cart_clear_failed", "error", err, "order_no", order.OrderNo)
	}

	s.scheduleOverdueCancel(order)

	created, err := s.orderRepo.GetByID(order.ID)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return order, nil
	}
	return created, nil
}

// scheduleOverdueCancel 约定了配送时间的订单超期未处理则自动取消
func (s *CheckoutService) scheduleOverdueCancel(order *models.Order) {
	if s.queueClient == nil || order.DeliveryTime == nil {
		return
	}
	grace := time.Duration(s.cfg.Order.OverdueGraceMinutes) * time.Minute
	processAt := order.DeliveryTime.Add(grace)
	if err := s.queueClient.EnqueueOrderOverdueCancel(order.ID, processAt); err != nil {
		logger.Warnw("order_overdue_cancel_enqueue_failed", "error", err, "order_id", order.ID)
	}
}

func parseDeliveryTime(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, ErrDeliveryTimeInvalid
	}
	if !t.After(time.Now()) {
		return nil, ErrDeliveryTimeInvalid
	}
	return &t, nil
}

// generateOrderNo 生成订单号：MH + 时间戳 + 6 位随机数
func generateOrderNo() string {
	timestamp := time.Now().Format("20060102150405")
	return "MH" + timestamp + randNumeric(6)
}

func randNumeric(n int) string {
	digits := make([]byte, n)
	for i := range digits {
		num, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			digits[i] = '0'
			continue
		}
		digits[i] = byte('0' + num.Int64())
	}
	return string(digits)
}
