package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/mallhub-next/internal/constants"
	"github.com/mallhub-next/internal/models"
	"github.com/mallhub-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupLoyaltyServiceTest(t *testing.T) (*LoyaltyService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Tenant{}, &models.CustomerProfile{},
		&models.Order{}, &models.OrderItem{},
	); err != nil {
		t.Fatalf("migrate loyalty models failed: %v", err)
	}

	prev := models.DB
	models.DB = db
	t.Cleanup(func() { models.DB = prev })

	return NewLoyaltyService(
		repository.NewCustomerProfileRepository(db),
		repository.NewOrderRepository(db),
		repository.NewTenantRepository(db),
	), db
}

func TestCreditOrderIsIdempotent(t *testing.T) {
	svc, db := setupLoyaltyServiceTest(t)

	tenant := models.Tenant{UserID: 41, ShopName: "Credit Shop", Category: "Grocery", IsApproved: true}
	if err := db.Create(&tenant).Error; err != nil {
		t.Fatalf("create tenant failed: %v", err)
	}

	order := &models.Order{
		OrderNo: "MH-LOYAL-1", UserID: 7, Status: constants.OrderStatusCompleted,
		ContactName: "c", ContactPhone: "1", Contact: "c (1)", DeliveryAddress: "addr",
		TotalAmount: models.NewMoneyFromDecimal(decimal.RequireFromString("123.45")),
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	item := models.OrderItem{
		OrderID: order.ID, ProductID: 9, TenantID: tenant.ID,
		ProductName: "Basket", UnitPrice: models.NewMoneyFromDecimal(decimal.RequireFromString("112.23")),
		Quantity: 1, TotalPrice: models.NewMoneyFromDecimal(decimal.RequireFromString("112.23")),
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("create order item failed: %v", err)
	}

	// 重复投递只入账一次
	for i := 0; i < 2; i++ {
		if err := svc.CreditOrder(order.ID); err != nil {
			t.Fatalf("credit order run %d failed: %v", i, err)
		}
	}

	var profile models.CustomerProfile
	if err := db.Where("user_id = ?", 7).First(&profile).Error; err != nil {
		t.Fatalf("load profile failed: %v", err)
	}
	if profile.LoyaltyPoints != 123 {
		t.Fatalf("points want 123 got %d", profile.LoyaltyPoints)
	}

	var shop models.Tenant
	if err := db.First(&shop, tenant.ID).Error; err != nil {
		t.Fatalf("load tenant failed: %v", err)
	}
	if !shop.AccountBalance.Decimal.Equal(decimal.RequireFromString("112.23")) {
		t.Fatalf("balance want 112.23 got %s", shop.AccountBalance.Decimal)
	}
}

func TestCreditOrderSkipsNonCompletedOrders(t *testing.T) {
	svc, db := setupLoyaltyServiceTest(t)

	order := &models.Order{
		OrderNo: "MH-LOYAL-2", UserID: 8, Status: constants.OrderStatusPending,
		ContactName: "c", ContactPhone: "1", Contact: "c (1)", DeliveryAddress: "addr",
		TotalAmount: models.NewMoneyFromInt(500),
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	if err := svc.CreditOrder(order.ID); err != nil {
		t.Fatalf("credit pending order failed: %v", err)
	}
	if err := svc.CreditOrder(424242); err != nil {
		t.Fatalf("credit missing order failed: %v", err)
	}

	var count int64
	if err := db.Model(&models.CustomerProfile{}).Count(&count).Error; err != nil {
		t.Fatalf("count profiles failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("profiles want 0 got %d", count)
	}
}

func TestSummaryCreatesProfileAndComputesTier(t *testing.T) {
	svc, db := setupLoyaltyServiceTest(t)

	summary, err := svc.Summary(9)
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if summary.Points != 0 || summary.Tier != constants.TierBronze {
		t.Fatalf("fresh summary want 0 points Bronze got %+v", summary)
	}

	cases := []struct {
		points int
		tier   string
	}{
		{499, constants.TierBronze},
		{500, constants.TierSilver},
		{1499, constants.TierSilver},
		{1500, constants.TierGold},
	}
	for _, tc := range cases {
		if err := db.Model(&models.CustomerProfile{}).Where("user_id = ?", 9).
			Update("loyalty_points", tc.points).Error; err != nil {
			t.Fatalf("set points failed: %v", err)
		}
		summary, err = svc.Summary(9)
		if err != nil {
			t.Fatalf("summary at %d failed: %v", tc.points, err)
		}
		if summary.Tier != tc.tier {
			t.Fatalf("tier at %d want %s got %s", tc.points, tc.tier, summary.Tier)
		}
	}
}
