package service

import (
	"time"

	"github.com/mallhub-next/internal/constants"
	"github.com/mallhub-next/internal/loyalty"
	"github.com/mallhub-next/internal/models"
	"github.com/mallhub-next/internal/repository"

	"gorm.io/gorm"
)

// LoyaltySummary 会员积分概览，等级与进度每次读取时重新计算
type LoyaltySummary struct {
	Points       int     `json:"points"`
	Tier         string  `json:"tier"`
	Progress     float64 `json:"progress"`
	PointsToNext int     `json:"points_to_next"`
}

// LoyaltyService 会员积分服务
type LoyaltyService struct {
	profileRepo repository.CustomerProfileRepository
	orderRepo   repository.OrderRepository
	tenantRepo  repository.TenantRepository
}

// NewLoyaltyService 创建会员积分服务
func NewLoyaltyService(profileRepo repository.CustomerProfileRepository, orderRepo repository.OrderRepository, tenantRepo repository.TenantRepository) *LoyaltyService {
	return &LoyaltyService{
		profileRepo: profileRepo,
		orderRepo:   orderRepo,
		tenantRepo:  tenantRepo,
	}
}

// Summary 获取用户积分概览，档案不存在时自动建立
func (s *LoyaltyService) Summary(userID uint) (*LoyaltySummary, error) {
	profile, err := s.ensureProfile(s.profileRepo, userID)
	if err != nil {
		return nil, err
	}
	points := profile.LoyaltyPoints
	return &LoyaltySummary{
		Points:       points,
		Tier:         loyalty.TierOf(points),
		Progress:     loyalty.Progress(points),
		PointsToNext: loyalty.PointsToNext(points),
	}, nil
}

// CreditOrder 订单完成后入账积分并给相关店铺结算货款，
// 通过条件标记保证重复投递不会重复入账
func (s *LoyaltyService) CreditOrder(orderID uint) error {
	return models.DB.Transaction(func(tx *gorm.DB) error {
		txOrderRepo := s.orderRepo.WithTx(tx)
		order, err := txOrderRepo.GetByID(orderID)
		if err != nil {
			return err
		}
		if order == nil || order.Status != constants.OrderStatusCompleted {
			return nil
		}

		rows, err := txOrderRepo.MarkLoyaltyCredited(order.ID, time.Now())
		if err != nil {
			return err
		}
		if rows == 0 {
			// 已入账过
			return nil
		}

		points := int(order.TotalAmount.WholeUnits())
		if points > 0 {
			txProfileRepo := s.profileRepo.WithTx(tx)
			if _, err := s.ensureProfile(txProfileRepo, order.UserID); err != nil {
				return err
			}
			if err := txProfileRepo.AddPoints(order.UserID, points); err != nil {
				return err
			}
		}

		txTenantRepo := s.tenantRepo.WithTx(tx)
		revenueByTenant := make(map[uint]models.Money)
		for _, item := range order.Items {
			if item.TenantID == 0 {
				continue
			}
			revenueByTenant[item.TenantID] = revenueByTenant[item.TenantID].Add(item.TotalPrice)
		}
		for tenantID, revenue := range revenueByTenant {
			if err := txTenantRepo.CreditBalance(tenantID, revenue); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *LoyaltyService) ensureProfile(repo repository.CustomerProfileRepository, userID uint) (*models.CustomerProfile, error) {
	profile, err := repo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		return profile, nil
	}
	profile = &models.CustomerProfile{UserID: userID}
	if err := repo.Create(profile); err != nil {
		return nil, err
	}
	return profile, nil
}
