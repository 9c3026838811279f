package service

import (
	"context"

	"github.com/mallhub-next/internal/cache"
	"github.com/mallhub-next/internal/constants"
	"github.com/mallhub-next/internal/logger"
	"github.com/mallhub-next/internal/models"
	"github.com/mallhub-next/internal/repository"
)

// monthLabels 月份展示顺序（1 月起）
var monthLabels = map[string]string{
	"01": "Jan", "02": "Feb", "03": "Mar", "04": "Apr",
	"05": "May", "06": "Jun", "07": "Jul", "08": "Aug",
	"09": "Sep", "10": "Oct", "11": "Nov", "12": "Dec",
}

var monthOrder = []string{"01", "02", "03", "04", "05", "06", "07", "08", "09", "10", "11", "12"}

// weekdayLabels 星期展示顺序（周一起，键为数据库的 0..6，0 为周日）
var weekdayLabels = map[string]string{
	"1": "Mon", "2": "Tue", "3": "Wed", "4": "Thu", "5": "Fri", "6": "Sat", "0": "Sun",
}

var weekdayOrder = []string{"1", "2", "3", "4", "5", "6", "0"}

// DashboardService 管理端仪表盘服务
type DashboardService struct {
	dashboardRepo repository.DashboardRepository
	tenantRepo    repository.TenantRepository
	userRepo      repository.UserRepository
}

// NewDashboardService 创建仪表盘服务
func NewDashboardService(dashboardRepo repository.DashboardRepository, tenantRepo repository.TenantRepository, userRepo repository.UserRepository) *DashboardService {
	return &DashboardService{
		dashboardRepo: dashboardRepo,
		tenantRepo:    tenantRepo,
		userRepo:      userRepo,
	}
}

// MallOverview 商城总览
type MallOverview struct {
	TotalUsers     int64   `json:"total_users"`
	TotalTenants   int64   `json:"total_tenants"`
	TotalCustomers int64   `json:"total_customers"`
	TotalRevenue   float64 `json:"total_revenue"`
}

// GetOverview 获取商城总览
func (s *DashboardService) GetOverview() (*MallOverview, error) {
	row, err := s.dashboardRepo.GetOverview()
	if err != nil {
		return nil, err
	}
	return &MallOverview{
		TotalUsers:     row.TotalUsers,
		TotalTenants:   row.TotalTenants,
		TotalCustomers: row.TotalCustomers,
		TotalRevenue:   row.TotalRevenue,
	}, nil
}

// ShopRevenueEntry 店铺营收条目
type ShopRevenueEntry struct {
	TenantID uint    `json:"tenant_id"`
	ShopName string  `json:"shop_name"`
	Category string  `json:"category"`
	Revenue  float64 `json:"revenue"`
}

// ListShopRevenue 按营收列出店铺
func (s *DashboardService) ListShopRevenue() ([]ShopRevenueEntry, error) {
	rows, err := s.dashboardRepo.ListShopRevenue()
	if err != nil {
		return nil, err
	}
	entries := make([]ShopRevenueEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, ShopRevenueEntry{
			TenantID: row.TenantID,
			ShopName: row.ShopName,
			Category: row.Category,
			Revenue:  row.Revenue,
		})
	}
	return entries, nil
}

// ChartPoint 图表数据点
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// GetMonthlyRevenue 按月统计已完成订单金额，缺失月份补零
func (s *DashboardService) GetMonthlyRevenue() ([]ChartPoint, error) {
	rows, err := s.dashboardRepo.GetMonthlyRevenue()
	if err != nil {
		return nil, err
	}
	totals := make(map[string]float64, len(rows))
	for _, row := range rows {
		totals[row.Month] = row.Total
	}
	points := make([]ChartPoint, 0, len(monthOrder))
	for _, month := range monthOrder {
		points = append(points, ChartPoint{Label: monthLabels[month], Value: totals[month]})
	}
	return points, nil
}

// GetCategoryDistribution 店铺分类分布
func (s *DashboardService) GetCategoryDistribution() ([]ChartPoint, error) {
	rows, err := s.dashboardRepo.GetCategoryDistribution()
	if err != nil {
		return nil, err
	}
	points := make([]ChartPoint, 0, len(rows))
	for _, row := range rows {
		category := row.Category
		if category == "" {
			category = "Uncategorized"
		}
		points = append(points, ChartPoint{Label: category, Value: float64(row.Count)})
	}
	return points, nil
}

// GetWeekdayTraffic 按星期统计订单数，周一开头，缺失补零
func (s *DashboardService) GetWeekdayTraffic() ([]ChartPoint, error) {
	rows, err := s.dashboardRepo.GetWeekdayOrderCounts()
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Day] = row.Count
	}
	points := make([]ChartPoint, 0, len(weekdayOrder))
	for _, day := range weekdayOrder {
		points = append(points, ChartPoint{Label: weekdayLabels[day], Value: float64(counts[day])})
	}
	return points, nil
}

// TenantAdminView 管理端商户视图
type TenantAdminView struct {
	models.Tenant
	Username string `json:"username"`
	Email    string `json:"email"`
}

// ListTenants 管理端商户列表
func (s *DashboardService) ListTenants(filter repository.TenantListFilter) ([]TenantAdminView, int64, error) {
	tenants, total, err := s.tenantRepo.List(filter)
	if err != nil {
		return nil, 0, err
	}
	views := make([]TenantAdminView, 0, len(tenants))
	for _, tenant := range tenants {
		view := TenantAdminView{Tenant: tenant}
		user, err := s.userRepo.GetByID(tenant.UserID)
		if err != nil {
			return nil, 0, err
		}
		if user != nil {
			view.Username = user.Username
			view.Email = user.Email
		}
		views = append(views, view)
	}
	return views, total, nil
}

// ToggleTenantApproval 切换商户审核状态
func (s *DashboardService) ToggleTenantApproval(tenantID uint) (*models.Tenant, error) {
	tenant, err := s.tenantRepo.GetByID(tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, ErrTenantNotFound
	}
	if err := s.tenantRepo.SetApproved(tenant.ID, !tenant.IsApproved); err != nil {
		return nil, err
	}
	tenant.IsApproved = !tenant.IsApproved
	s.invalidateShopDirectory()
	return tenant, nil
}

func (s *DashboardService) invalidateShopDirectory() {
	if err := cache.Del(context.Background(), constants.CacheKeyShopDirectory); err != nil {
		logger.Warnw("shop_directory_cache_del_failed", "error", err)
	}
}
