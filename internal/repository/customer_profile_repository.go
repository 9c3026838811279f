package repository

import (
	"errors"

	"github.com/mallhub-next/internal/models"

	"gorm.io/gorm"
)

// CustomerProfileRepository 顾客资料数据访问接口
type CustomerProfileRepository interface {
	GetByUserID(userID uint) (*models.CustomerProfile, error)
	Create(profile *models.CustomerProfile) error
	AddPoints(userID uint, points int) error
	WithTx(tx *gorm.DB) *GormCustomerProfileRepository
}

// GormCustomerProfileRepository GORM 实现
type GormCustomerProfileRepository struct {
	db *gorm.DB
}

// NewCustomerProfileRepository 创建顾客资料仓库
func NewCustomerProfileRepository(db *gorm.DB) *GormCustomerProfileRepository {
	return &GormCustomerProfileRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCustomerProfileRepository) WithTx(tx *gorm.DB) *GormCustomerProfileRepository {
	if tx == nil {
		return r
	}
	return &GormCustomerProfileRepository{db: tx}
}

// GetByUserID 根据用户 ID 获取顾客资料
func (r *GormCustomerProfileRepository) GetByUserID(userID uint) (*models.CustomerProfile, error) {
	var profile models.CustomerProfile
	if err := r.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// Create 创建顾客资料
func (r *GormCustomerProfileRepository) Create(profile *models.CustomerProfile) error {
	return r.db.Create(profile).Error
}

// AddPoints 累加积分
func (r *GormCustomerProfileRepository) AddPoints(userID uint, points int) error {
	if userID == 0 || points <= 0 {
		return nil
	}
	return r.db.Model(&models.CustomerProfile{}).Where("user_id = ?", userID).
		Update("loyalty_points", gorm.Expr("loyalty_points + ?", points)).Error
}
