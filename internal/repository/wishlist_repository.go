package repository

import (
	"github.com/mallhub-next/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WishlistRepository 收藏数据访问接口
type WishlistRepository interface {
	ListByUser(userID uint) ([]models.WishlistItem, error)
	ListProductIDs(userID uint) ([]uint, error)
	Add(userID, productID uint) error
	Remove(userID, productID uint) error
	Contains(userID, productID uint) (bool, error)
}

// GormWishlistRepository GORM 实现
type GormWishlistRepository struct {
	db *gorm.DB
}

// NewWishlistRepository 创建收藏仓库
func NewWishlistRepository(db *gorm.DB) *GormWishlistRepository {
	return &GormWishlistRepository{db: db}
}

// ListByUser 获取用户收藏列表
func (r *GormWishlistRepository) ListByUser(userID uint) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	if err := r.db.Where("user_id = ?", userID).Order("created_at desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ListProductIDs 获取用户收藏的商品 ID 列表
func (r *GormWishlistRepository) ListProductIDs(userID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.Model(&models.WishlistItem{}).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Pluck("product_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// Add 加入收藏，重复加入直接成功（唯一索引 + DO NOTHING 保证幂等）
func (r *GormWishlistRepository) Add(userID, productID uint) error {
	item := models.WishlistItem{UserID: userID, ProductID: productID}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&item).Error
}

// Remove 移除收藏，不存在时同样成功
func (r *GormWishlistRepository) Remove(userID, productID uint) error {
	return r.db.Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.WishlistItem{}).Error
}

// Contains 判断商品是否已被收藏
func (r *GormWishlistRepository) Contains(userID, productID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.WishlistItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
