package repository

import (
	"github.com/mallhub-next/internal/constants"
	"github.com/mallhub-next/internal/models"

	"gorm.io/gorm"
)

// DashboardRepository 管理端聚合查询接口
// 说明：仅聚合统计数据，不承载业务规则。
type DashboardRepository interface {
	GetOverview() (DashboardOverviewRow, error)
	ListShopRevenue() ([]ShopRevenueRow, error)
	GetMonthlyRevenue() ([]MonthlyRevenueRow, error)
	GetCategoryDistribution() ([]CategoryCountRow, error)
	GetWeekdayOrderCounts() ([]WeekdayOrderRow, error)
}

// DashboardOverviewRow 总览原始统计结果
type DashboardOverviewRow struct {
	TotalUsers     int64
	TotalTenants   int64
	TotalCustomers int64
	TotalRevenue   float64
}

// ShopRevenueRow 店铺营收原始行
type ShopRevenueRow struct {
	TenantID uint
	ShopName string
	Category string
	Revenue  float64
}

// MonthlyRevenueRow 月度营收统计（Month 为 01..12）
type MonthlyRevenueRow struct {
	Month string
	Total float64
}

// CategoryCountRow 店铺分类分布
type CategoryCountRow struct {
	Category string
	Count    int64
}

// WeekdayOrderRow 按星期统计的订单数（Day 为 0..6，0 为周日）
type WeekdayOrderRow struct {
	Day   string
	Count int64
}

// GormDashboardRepository GORM 聚合实现
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository 创建仪表盘仓库
func NewDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

// GetOverview 获取总览统计
func (r *GormDashboardRepository) GetOverview() (DashboardOverviewRow, error) {
	result := DashboardOverviewRow{}

	if err := r.db.Model(&models.User{}).Count(&result.TotalUsers).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.User{}).
		Where("role = ?", constants.RoleTenant).
		Count(&result.TotalTenants).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.User{}).
		Where("role = ?", constants.RoleCustomer).
		Count(&result.TotalCustomers).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Tenant{}).
		Select("COALESCE(SUM(account_balance), 0)").
		Scan(&result.TotalRevenue).Error; err != nil {
		return result, err
	}
	return result, nil
}

// ListShopRevenue 按店铺列出营收
func (r *GormDashboardRepository) ListShopRevenue() ([]ShopRevenueRow, error) {
	var rows []ShopRevenueRow
	if err := r.db.Model(&models.Tenant{}).
		Select("id as tenant_id, shop_name, category, account_balance as revenue").
		Order("account_balance desc").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetMonthlyRevenue 按月聚合已完成订单金额
func (r *GormDashboardRepository) GetMonthlyRevenue() ([]MonthlyRevenueRow, error) {
	var rows []MonthlyRevenueRow
	monthCol := monthExpr(r.db, "created_at")
	if err := r.db.Model(&models.Order{}).
		Select(monthCol+" as month, COALESCE(SUM(total_amount), 0) as total").
		Where("status = ?", constants.OrderStatusCompleted).
		Group("month").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetCategoryDistribution 店铺分类分布
func (r *GormDashboardRepository) GetCategoryDistribution() ([]CategoryCountRow, error) {
	var rows []CategoryCountRow
	if err := r.db.Model(&models.Tenant{}).
		Select("category, COUNT(id) as count").
		Group("category").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetWeekdayOrderCounts 按星期聚合订单数
func (r *GormDashboardRepository) GetWeekdayOrderCounts() ([]WeekdayOrderRow, error) {
	var rows []WeekdayOrderRow
	dayCol := weekdayExpr(r.db, "created_at")
	if err := r.db.Model(&models.Order{}).
		Select(dayCol+" as day, COUNT(id) as count").
		Group("day").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
