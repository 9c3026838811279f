package service

import (
	"github.com/mallhub-next/internal/models"
	"github.com/mallhub-next/internal/repository"
)

// WishlistEntry 收藏条目（含商品快照）
type WishlistEntry struct {
	ProductID uint            `json:"product_id"`
	Product   *models.Product `json:"product,omitempty"`
}

// WishlistService 收藏服务，加入与移除均为幂等操作
type WishlistService struct {
	wishlistRepo repository.WishlistRepository
	productRepo  repository.ProductRepository
}

// NewWishlistService 创建收藏服务
func NewWishlistService(wishlistRepo repository.WishlistRepository, productRepo repository.ProductRepository) *WishlistService {
	return &WishlistService{wishlistRepo: wishlistRepo, productRepo: productRepo}
}

// List 获取用户收藏列表，已下架商品不展示
func (s *WishlistService) List(userID uint) ([]WishlistEntry, error) {
	ids, err := s.wishlistRepo.ListProductIDs(userID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []WishlistEntry{}, nil
	}

	products, err := s.productRepo.ListByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	entries := make([]WishlistEntry, 0, len(ids))
	for _, id := range ids {
		product, ok := byID[id]
		if !ok || !product.IsActive {
			continue
		}
		entries = append(entries, WishlistEntry{ProductID: id, Product: product})
	}
	return entries, nil
}

// Add 加入收藏，商品必须存在且在售，重复加入直接成功
func (s *WishlistService) Add(userID, productID uint) error {
	if productID == 0 {
		return ErrProductNotFound
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil || !product.IsActive {
		return ErrProductNotFound
	}
	return s.wishlistRepo.Add(userID, productID)
}

// Remove 移除收藏，不在收藏中时同样成功
func (s *WishlistService) Remove(userID, productID uint) error {
	return s.wishlistRepo.Remove(userID, productID)
}

// Contains 判断商品是否在用户收藏中
func (s *WishlistService) Contains(userID, productID uint) (bool, error) {
	return s.wishlistRepo.Contains(userID, productID)
}
