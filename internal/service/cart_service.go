package service

import (
	"context"

	"github.com/mallhub-next/internal/cart"
	"github.com/mallhub-next/internal/models"
	"github.com/mallhub-next/internal/repository"
)

// CartLineDetail 购物车行详情（用于响应）
type CartLineDetail struct {
	ProductID uint         `json:"product_id"`
	Name      string       `json:"name"`
	ImageURL  string       `json:"image_url"`
	UnitPrice models.Money `json:"unit_price"`
	Quantity  int          `json:"quantity"`
	Stock     int          `json:"stock"`
	LineTotal models.Money `json:"line_total"`
}

// CartView 购物车视图，小计在每次读取时重新计算
type CartView struct {
	Lines    []CartLineDetail `json:"lines"`
	Subtotal models.Money     `json:"subtotal"`
}

// CartService 购物车服务
type CartService struct {
	store       cart.Store
	productRepo repository.ProductRepository
}

// NewCartService 创建购物车服务
func NewCartService(store cart.Store, productRepo repository.ProductRepository) *CartService {
	return &CartService{store: store, productRepo: productRepo}
}

// Get 获取购物车视图，失效商品会被剔除并回写
func (s *CartService) Get(ctx context.Context, sessionID string) (*CartView, error) {
	c, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	view, changed, err := s.buildView(ctx, c)
	if err != nil {
		return nil, err
	}
	if changed {
		if err := s.store.Save(ctx, sessionID, c); err != nil {
			return nil, err
		}
	}
	return view, nil
}

// AddItem 添加商品，已存在则数量累加，数量被夹取到 [1, 库存]
func (s *CartService) AddItem(ctx context.Context, sessionID string, productID uint, quantity int) (*CartView, error) {
	if productID == 0 || quantity <= 0 {
		return nil, ErrInvalidCartItem
	}
	product, err := s.loadAvailableProduct(productID)
	if err != nil {
		return nil, err
	}
	if product.Stock <= 0 {
		return nil, NewInsufficientStockError(product.Name)
	}

	c, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if idx := c.FindLine(productID); idx >= 0 {
		c.Lines[idx].Quantity = clampQuantity(c.Lines[idx].Quantity+quantity, product.Stock)
	} else {
		c.Lines = append(c.Lines, cart.Line{ProductID: productID, Quantity: clampQuantity(quantity, product.Stock)})
	}

	if err := s.store.Save(ctx, sessionID, c); err != nil {
		return nil, err
	}
	view, _, err := s.buildView(ctx, c)
	return view, err
}

// UpdateQuantity 设置商品数量，0 或负数等同移除
func (s *CartService) UpdateQuantity(ctx context.Context, sessionID string, productID uint, quantity int) (*CartView, error) {
	if productID == 0 {
		return nil, ErrInvalidCartItem
	}
	if quantity <= 0 {
		return s.RemoveItem(ctx, sessionID, productID)
	}

	product, err := s.loadAvailableProduct(productID)
	if err != nil {
		return nil, err
	}
	// 库存归零时数量夹取到 0，等同移除
	if product.Stock <= 0 {
		return s.RemoveItem(ctx, sessionID, productID)
	}

	c, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	idx := c.FindLine(productID)
	if idx < 0 {
		return nil, ErrInvalidCartItem
	}
	c.Lines[idx].Quantity = clampQuantity(quantity, product.Stock)

	if err := s.store.Save(ctx, sessionID, c); err != nil {
		return nil, err
	}
	view, _, err := s.buildView(ctx, c)
	return view, err
}

// RemoveItem 移除商品，商品不在购物车中时为幂等空操作
func (s *CartService) RemoveItem(ctx context.Context, sessionID string, productID uint) (*CartView, error) {
	c, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	c.RemoveLine(productID)
	if err := s.store.Save(ctx, sessionID, c); err != nil {
		return nil, err
	}
	view, _, err := s.buildView(ctx, c)
	return view, err
}

// Clear 清空购物车
func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	return s.store.Clear(ctx, sessionID)
}

func (s *CartService) loadAvailableProduct(productID uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// buildView 根据当前商品数据渲染购物车，返回购物车是否被修正
func (s *CartService) buildView(ctx context.Context, c *cart.Cart) (*CartView, bool, error) {
	view := &CartView{Lines: make([]CartLineDetail, 0, len(c.Lines)), Subtotal: models.ZeroMoney()}
	if c.IsEmpty() {
		return view, false, nil
	}

	ids := make([]uint, 0, len(c.Lines))
	for _, line := range c.Lines {
		ids = append(ids, line.ProductID)
	}
	products, err := s.productRepo.ListByIDs(ids)
	if err != nil {
		return nil, false, err
	}
	byID := make(map[uint]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	changed := false
	kept := c.Lines[:0]
	for _, line := range c.Lines {
		product, ok := byID[line.ProductID]
		if !ok || !product.IsActive || product.Stock <= 0 {
			changed = true
			continue
		}
		quantity := line.Quantity
		if quantity > product.Stock {
			quantity = product.Stock
			changed = true
		}
		line.Quantity = quantity
		kept = append(kept, line)

		lineTotal := product.Price.MulInt(quantity)
		view.Lines = append(view.Lines, CartLineDetail{
			ProductID: product.ID,
			Name:      product.Name,
			ImageURL:  product.ImageURL,
			UnitPrice: product.Price,
			Quantity:  quantity,
			Stock:     product.Stock,
			LineTotal: lineTotal,
		})
		view.Subtotal = view.Subtotal.Add(lineTotal)
	}
	c.Lines = kept
	return view, changed, nil
}

func clampQuantity(quantity, stock int) int {
	if quantity < 1 {
		return 1
	}
	if stock > 0 && quantity > stock {
		return stock
	}
	return quantity
}
