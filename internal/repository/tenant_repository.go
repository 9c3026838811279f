package repository

import (
	"errors"

	"github.com/mallhub-next/internal/models"

	"gorm.io/gorm"
)

// TenantRepository 商户数据访问接口
type TenantRepository interface {
	GetByID(id uint) (*models.Tenant, error)
	GetByUserID(userID uint) (*models.Tenant, error)
	ListByIDs(ids []uint) ([]models.Tenant, error)
	Create(tenant *models.Tenant) error
	Update(tenant *models.Tenant) error
	List(filter TenantListFilter) ([]models.Tenant, int64, error)
	SetApproved(id uint, approved bool) error
	CreditBalance(id uint, amount models.Money) error
	WithTx(tx *gorm.DB) *GormTenantRepository
}

// GormTenantRepository GORM 实现
type GormTenantRepository struct {
	db *gorm.DB
}

// NewTenantRepository 创建商户仓库
func NewTenantRepository(db *gorm.DB) *GormTenantRepository {
	return &GormTenantRepository{db: db}
}

// WithTx 绑定事务
func (r *GormTenantRepository) WithTx(tx *gorm.DB) *GormTenantRepository {
	if tx == nil {
		return r
	}
	return &GormTenantRepository{db: tx}
}

// GetByID 根据 ID 获取商户
func (r *GormTenantRepository) GetByID(id uint) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := r.db.First(&tenant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tenant, nil
}

// GetByUserID 根据用户 ID 获取商户
func (r *GormTenantRepository) GetByUserID(userID uint) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := r.db.Where("user_id = ?", userID).First(&tenant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tenant, nil
}

// ListByIDs 批量获取商户
func (r *GormTenantRepository) ListByIDs(ids []uint) ([]models.Tenant, error) {
	if len(ids) == 0 {
		return []models.Tenant{}, nil
	}
	var tenants []models.Tenant
	if err := r.db.Where("id IN ?", ids).Find(&tenants).Error; err != nil {
		return nil, err
	}
	return tenants, nil
}

// Create 创建商户
func (r *GormTenantRepository) Create(tenant *models.Tenant) error {
	return r.db.Create(tenant).Error
}

// Update 更新商户
func (r *GormTenantRepository) Update(tenant *models.Tenant) error {
	return r.db.Save(tenant).Error
}

// List 商户列表
func (r *GormTenantRepository) List(filter TenantListFilter) ([]models.Tenant, int64, error) {
	query := r.db.Model(&models.Tenant{})

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		query = query.Where("shop_name LIKE ?", "%"+filter.Search+"%")
	}
	if filter.OnlyApproved {
		query = query.Where("is_approved = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var tenants []models.Tenant
	if err := query.Order("id ASC").Find(&tenants).Error; err != nil {
		return nil, 0, err
	}
	return tenants, total, nil
}

// SetApproved 更新商户审核状态
func (r *GormTenantRepository) SetApproved(id uint, approved bool) error {
	return r.db.Model(&models.Tenant{}).Where("id = ?", id).Update("is_approved", approved).Error
}

// CreditBalance 累加商户营收
func (r *GormTenantRepository) CreditBalance(id uint, amount models.Money) error {
	if id == 0 || !amount.Decimal.IsPositive() {
		return nil
	}
	return r.db.Model(&models.Tenant{}).Where("id = ?", id).
		Update("account_balance", gorm.Expr("account_balance + ?", amount)).Error
}
