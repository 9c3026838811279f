package service

import (
	"context"
	"strings"
	"time"

	"github.com/mallhub-next/internal/cache"
	"github.com/mallhub-next/internal/constants"
	"github.com/mallhub-next/internal/logger"
	"github.com/mallhub-next/internal/models"
	"github.com/mallhub-next/internal/repository"
)

const shopDirectoryCacheTTL = 5 * time.Minute

// TenantService 商户服务
type TenantService struct {
	tenantRepo  repository.TenantRepository
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	userRepo    repository.UserRepository
}

// NewTenantService 创建商户服务
func NewTenantService(tenantRepo repository.TenantRepository, productRepo repository.ProductRepository, orderRepo repository.OrderRepository, userRepo repository.UserRepository) *TenantService {
	return &TenantService{
		tenantRepo:  tenantRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		userRepo:    userRepo,
	}
}

// EnsureForUser 获取用户的店铺，不存在时自动建档
func (s *TenantService) EnsureForUser(userID uint) (*models.Tenant, error) {
	tenant, err := s.tenantRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if tenant != nil {
		return tenant, nil
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Role != constants.RoleTenant {
		return nil, ErrTenantNotFound
	}

	tenant = &models.Tenant{
		UserID:   userID,
		ShopName: user.Username + "'s Shop",
		Category: constants.TenantCategoryDefault,
	}
	if err := s.tenantRepo.Create(tenant); err != nil {
		return nil, err
	}
	s.invalidateShopDirectory()
	return tenant, nil
}

// UpdateProfileInput 店铺资料更新输入
type UpdateProfileInput struct {
	ShopName    string
	Description string
	ImageURL    string
	Category    string
}

// UpdateProfile 更新店铺资料
func (s *TenantService) UpdateProfile(userID uint, input UpdateProfileInput) (*models.Tenant, error) {
	tenant, err := s.EnsureForUser(userID)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(input.ShopName); name != "" {
		tenant.ShopName = name
	}
	tenant.Description = strings.TrimSpace(input.Description)
	tenant.ImageURL = strings.TrimSpace(input.ImageURL)
	if category := strings.TrimSpace(input.Category); category != "" {
		tenant.Category = category
	}
	if err := s.tenantRepo.Update(tenant); err != nil {
		return nil, err
	}
	s.invalidateShopDirectory()
	return tenant, nil
}

// TenantStats 商户经营统计
type TenantStats struct {
	ProductCount   int64        `json:"product_count"`
	OrderCount     int64        `json:"order_count"`
	PendingCount   int64        `json:"pending_count"`
	CompletedCount int64        `json:"completed_count"`
	Revenue        models.Money `json:"revenue"`
	AccountBalance models.Money `json:"account_balance"`
}

// GetStats 获取店铺经营统计，营收只计已完成订单中本店铺的订单项
func (s *TenantService) GetStats(userID uint) (*TenantStats, error) {
	tenant, err := s.EnsureForUser(userID)
	if err != nil {
		return nil, err
	}

	stats := &TenantStats{Revenue: models.ZeroMoney(), AccountBalance: tenant.AccountBalance}

	stats.ProductCount, err = s.productRepo.CountByTenant(tenant.ID)
	if err != nil {
		return nil, err
	}

	orders, total, err := s.orderRepo.ListByTenant(repository.OrderListFilter{TenantID: tenant.ID, PageSize: -1})
	if err != nil {
		return nil, err
	}
	stats.OrderCount = total
	for _, order := range orders {
		switch order.Status {
		case constants.OrderStatusPending:
			stats.PendingCount++
		case constants.OrderStatusCompleted:
			stats.CompletedCount++
			for _, item := range order.Items {
				if item.TenantID == tenant.ID {
					stats.Revenue = stats.Revenue.Add(item.TotalPrice)
				}
			}
		}
	}
	return stats, nil
}

// ShopDirectoryEntry 店铺目录条目
type ShopDirectoryEntry struct {
	ID          uint   `json:"id"`
	ShopName    string `json:"shop_name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Category    string `json:"category"`
	ProductNum  int64  `json:"product_num"`
}

// ListShops 获取已审核店铺目录，结果带缓存
func (s *TenantService) ListShops(ctx context.Context) ([]ShopDirectoryEntry, error) {
	var entries []ShopDirectoryEntry
	if hit, err := cache.GetJSON(ctx, constants.CacheKeyShopDirectory, &entries); err != nil {
		logger.Warnw("shop_directory_cache_read_failed", "error", err)
	} else if hit {
		return entries, nil
	}

	tenants, _, err := s.tenantRepo.List(repository.TenantListFilter{OnlyApproved: true, PageSize: -1})
	if err != nil {
		return nil, err
	}

	entries = make([]ShopDirectoryEntry, 0, len(tenants))
	for _, tenant := range tenants {
		count, err := s.productRepo.CountByTenant(tenant.ID)
		if err != nil {
			return nil, err
		}
		entries = append(entries, ShopDirectoryEntry{
			ID:          tenant.ID,
			ShopName:    tenant.ShopName,
			Description: tenant.Description,
			ImageURL:    tenant.ImageURL,
			Category:    tenant.Category,
			ProductNum:  count,
		})
	}

	if err := cache.SetJSON(ctx, constants.CacheKeyShopDirectory, entries, shopDirectoryCacheTTL); err != nil {
		logger.Warnw("shop_directory_cache_write_failed", "error", err)
	}
	return entries, nil
}

func (s *TenantService) invalidateShopDirectory() {
	if err := cache.Del(context.Background(), constants.CacheKeyShopDirectory); err != nil {
		logger.Warnw("shop_directory_cache_del_failed", "error", err)
	}
}
