package service

import (
	"errors"
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

func setupOrderServiceTest(t *testing.T) (*OrderService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{}, &models.Tenant{}, &models.CustomerProfile{},
		&models.Order{}, &models.OrderItem{},
	); err != nil {
		t.Fatalf("migrate order models failed: %v", err)
	}

	// 积分入账走全局事务入口
	prev := models.DB
	models.DB = db
	t.Cleanup(func() { models.DB = prev })

	orderRepo := repository.NewOrderRepository(db)
	tenantRepo := repository.NewTenantRepository(db)
	loyaltyService := NewLoyaltyService(repository.NewCustomerProfileRepository(db), orderRepo, tenantRepo)
	return NewOrderService(orderRepo, tenantRepo, loyaltyService, nil), db
}

func createTestOrder(t *testing.T, db *gorm.DB, orderNo, status string, userID uint, total int64, items []models.OrderItem) *models.Order {
	t.Helper()
	order := &models.Order{
		OrderNo:         orderNo,
		UserID:          userID,
		Status:          status,
		ContactName:     "Bob",
		ContactPhone:    "555-0202",
		Contact:         "Bob (555-0202)",
		DeliveryAddress: "2 Harbor Road",
		TotalAmount:     models.NewMoneyFromDecimal(decimal.NewFromInt(total)),
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	for i := range items {
		items[i].OrderID = order.ID
	}
	if len(items) > 0 {
		if err := db.Create(&items).Error; err != nil {
			t.Fatalf("create order items failed: %v", err)
		}
	}
	return order
}

func TestUpdateStatusCompletesOrderAndCreditsLoyalty(t *testing.T) {
	svc, db := setupOrderServiceTest(t)

	tenants := []models.Tenant{
		{UserID: 11, ShopName: "Fresh Market", Category: "Grocery", IsApproved: true},
		{UserID: 12, ShopName: "Gadget Hub", Category: "Electronics", IsApproved: true},
	}
	for i := range tenants {
		if err := db.Create(&tenants[i]).Error; err != nil {
			t.Fatalf("create tenant failed: %v", err)
		}
	}

	order := createTestOrder(t, db, "MH-ORD-COMPLETE", constants.OrderStatusPending, 5, 150, []models.OrderItem{
		{ProductID: 1, TenantID: tenants[0].ID, ProductName: "Apples", UnitPrice: models.NewMoneyFromInt(50), Quantity: 2, TotalPrice: models.NewMoneyFromInt(100)},
		{ProductID: 2, TenantID: tenants[1].ID, ProductName: "Charger", UnitPrice: models.NewMoneyFromInt(50), Quantity: 1, TotalPrice: models.NewMoneyFromInt(50)},
	})

	// 状态大小写不敏感
	updated, err := svc.UpdateStatus(99, constants.RoleAdmin, order.ID, "Completed")
	if err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	if updated.Status != constants.OrderStatusCompleted {
		t.Fatalf("status want completed got %s", updated.Status)
	}
	if updated.CompletedAt == nil {
		t.Fatalf("completed_at should be set")
	}
	if updated.LoyaltyCreditedAt == nil {
		t.Fatalf("loyalty_credited_at should be set")
	}

	var profile models.CustomerProfile
	if err := db.Where("user_id = ?", 5).First(&profile).Error; err != nil {
		t.Fatalf("load profile failed: %v", err)
	}
	if profile.LoyaltyPoints != 150 {
		t.Fatalf("points want 150 got %d", profile.LoyaltyPoints)
	}

	var shop models.Tenant
	if err := db.First(&shop, tenants[0].ID).Error; err != nil {
		t.Fatalf("load tenant failed: %v", err)
	}
	if !shop.AccountBalance.Decimal.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("tenant balance want 100 got %s", shop.AccountBalance.Decimal)
	}
}

func TestUpdateStatusRejectsCustomerRole(t *testing.T) {
	svc, db := setupOrderServiceTest(t)

	order := createTestOrder(t, db, "MH-ORD-SELF", constants.OrderStatusPending, 5, 150, []models.OrderItem{
		{ProductID: 6, TenantID: 1, ProductName: "Cheese", UnitPrice: models.NewMoneyFromInt(150), Quantity: 1, TotalPrice: models.NewMoneyFromInt(150)},
	})

	// 顾客不能流转自己的订单，更不能借此给自己入账积分
	if _, err := svc.UpdateStatus(5, constants.RoleCustomer, order.ID, "completed"); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("customer transition want ErrOrderNotFound got %v", err)
	}
	if _, err := svc.UpdateStatus(5, "", order.ID, "cancelled"); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("empty role transition want ErrOrderNotFound got %v", err)
	}

	var got models.Order
	if err := db.First(&got, order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if got.Status != constants.OrderStatusPending {
		t.Fatalf("order should stay pending, got %s", got.Status)
	}

	var profiles int64
	if err := db.Model(&models.CustomerProfile{}).Count(&profiles).Error; err != nil {
		t.Fatalf("count profiles failed: %v", err)
	}
	if profiles != 0 {
		t.Fatalf("no loyalty credit expected, got %d profiles", profiles)
	}
}

func TestUpdateStatusRejectsTerminalStates(t *testing.T) {
	svc, db := setupOrderServiceTest(t)

	completed := createTestOrder(t, db, "MH-ORD-DONE", constants.OrderStatusCompleted, 5, 100, nil)
	_, err := svc.UpdateStatus(99, constants.RoleAdmin, completed.ID, "cancelled")
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("want ErrInvalidTransition got %v", err)
	}
	if got := err.Error(); got != "cannot change order status from Completed to Cancelled" {
		t.Fatalf("conflict message unexpected: %q", got)
	}

	cancelled := createTestOrder(t, db, "MH-ORD-VOID", constants.OrderStatusCancelled, 5, 100, nil)
	_, err = svc.UpdateStatus(99, constants.RoleAdmin, cancelled.ID, "completed")
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("want ErrInvalidTransition got %v", err)
	}
	if got := err.Error(); got != "cannot change order status from Cancelled to Completed" {
		t.Fatalf("conflict message unexpected: %q", got)
	}
}

func TestUpdateStatusRejectsBadTargets(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	order := createTestOrder(t, db, "MH-ORD-TARGET", constants.OrderStatusPending, 5, 100, nil)

	if _, err := svc.UpdateStatus(99, constants.RoleAdmin, order.ID, "pending"); !errors.Is(err, ErrInvalidOrderStatus) {
		t.Fatalf("pending target want ErrInvalidOrderStatus got %v", err)
	}
	if _, err := svc.UpdateStatus(99, constants.RoleAdmin, order.ID, "shipped"); !errors.Is(err, ErrInvalidOrderStatus) {
		t.Fatalf("unknown target want ErrInvalidOrderStatus got %v", err)
	}
}

func TestUpdateStatusMissingOrder(t *testing.T) {
	svc, _ := setupOrderServiceTest(t)

	if _, err := svc.UpdateStatus(99, constants.RoleAdmin, 12345, "completed"); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("want ErrOrderNotFound got %v", err)
	}
}

func TestUpdateStatusTenantMustOwnOrderItems(t *testing.T) {
	svc, db := setupOrderServiceTest(t)

	owner := models.Tenant{UserID: 21, ShopName: "Owner Shop", Category: "Grocery", IsApproved: true}
	outsider := models.Tenant{UserID: 22, ShopName: "Outsider Shop", Category: "Lifestyle", IsApproved: true}
	for _, tenant := range []*models.Tenant{&owner, &outsider} {
		if err := db.Create(tenant).Error; err != nil {
			t.Fatalf("create tenant failed: %v", err)
		}
	}

	order := createTestOrder(t, db, "MH-ORD-OWNED", constants.OrderStatusPending, 5, 60, []models.OrderItem{
		{ProductID: 3, TenantID: owner.ID, ProductName: "Bread", UnitPrice: models.NewMoneyFromInt(30), Quantity: 2, TotalPrice: models.NewMoneyFromInt(60)},
	})

	// 无关店铺看不到这笔订单
	if _, err := svc.UpdateStatus(outsider.UserID, constants.RoleTenant, order.ID, "cancelled"); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("outsider want ErrOrderNotFound got %v", err)
	}

	updated, err := svc.UpdateStatus(owner.UserID, constants.RoleTenant, order.ID, "cancelled")
	if err != nil {
		t.Fatalf("owner update failed: %v", err)
	}
	if updated.Status != constants.OrderStatusCancelled {
		t.Fatalf("status want cancelled got %s", updated.Status)
	}
	if updated.CancelledAt == nil {
		t.Fatalf("cancelled_at should be set")
	}
}

func TestCancelOverdueOnlyAffectsPending(t *testing.T) {
	svc, db := setupOrderServiceTest(t)

	pending := createTestOrder(t, db, "MH-ORD-LATE", constants.OrderStatusPending, 5, 100, nil)
	completed := createTestOrder(t, db, "MH-ORD-KEPT", constants.OrderStatusCompleted, 5, 100, nil)

	if err := svc.CancelOverdue(pending.ID); err != nil {
		t.Fatalf("cancel overdue failed: %v", err)
	}
	if err := svc.CancelOverdue(completed.ID); err != nil {
		t.Fatalf("cancel overdue on completed failed: %v", err)
	}
	if err := svc.CancelOverdue(98765); err != nil {
		t.Fatalf("cancel overdue on missing order failed: %v", err)
	}

	var got models.Order
	if err := db.First(&got, pending.ID).Error; err != nil {
		t.Fatalf("reload pending failed: %v", err)
	}
	if got.Status != constants.OrderStatusCancelled {
		t.Fatalf("pending order want cancelled got %s", got.Status)
	}

	var kept models.Order
	if err := db.First(&kept, completed.ID).Error; err != nil {
		t.Fatalf("reload completed failed: %v", err)
	}
	if kept.Status != constants.OrderStatusCompleted {
		t.Fatalf("completed order should stay completed, got %s", kept.Status)
	}
}

func TestListForTenantFiltersForeignItems(t *testing.T) {
	svc, db := setupOrderServiceTest(t)

	mine := models.Tenant{UserID: 31, ShopName: "Mine", Category: "Grocery", IsApproved: true}
	other := models.Tenant{UserID: 32, ShopName: "Other", Category: "Grocery", IsApproved: true}
	for _, tenant := range []*models.Tenant{&mine, &other} {
		if err := db.Create(tenant).Error; err != nil {
			t.Fatalf("create tenant failed: %v", err)
		}
	}

	createTestOrder(t, db, "MH-ORD-MIXED", constants.OrderStatusPending, 5, 70, []models.OrderItem{
		{ProductID: 4, TenantID: mine.ID, ProductName: "Milk", UnitPrice: models.NewMoneyFromInt(20), Quantity: 2, TotalPrice: models.NewMoneyFromInt(40)},
		{ProductID: 5, TenantID: other.ID, ProductName: "Soap", UnitPrice: models.NewMoneyFromInt(30), Quantity: 1, TotalPrice: models.NewMoneyFromInt(30)},
	})

	views, total, err := svc.ListForTenant(mine.ID, repository.OrderListFilter{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list for tenant failed: %v", err)
	}
	if total != 1 || len(views) != 1 {
		t.Fatalf("want 1 order got total=%d len=%d", total, len(views))
	}
	if len(views[0].Order.Items) != 1 || views[0].Order.Items[0].TenantID != mine.ID {
		t.Fatalf("foreign items leaked: %+v", views[0].Order.Items)
	}
	if !views[0].Revenue.Decimal.Equal(decimal.NewFromInt(40)) {
		t.Fatalf("revenue want 40 got %s", views[0].Revenue.Decimal)
	}
}

func TestNormalizeOrderStatusIsCaseInsensitive(t *testing.T) {
	cases := map[string]string{
		"Pending":     constants.OrderStatusPending,
		" COMPLETED ": constants.OrderStatusCompleted,
		"cancelled":   constants.OrderStatusCancelled,
		"shipped":     "",
		"":            "",
	}
	for raw, want := range cases {
		if got := NormalizeOrderStatus(raw); got != want {
			t.Fatalf("normalize %q want %q got %q", raw, want, got)
		}
	}
}

func TestDisplayOrderStatusCapitalizes(t *testing.T) {
	if got := DisplayOrderStatus(constants.OrderStatusPending); got != "Pending" {
		t.Fatalf("display pending want Pending got %s", got)
	}
	if got := DisplayOrderStatus(constants.OrderStatusCompleted); got != "Completed" {
		t.Fatalf("display completed want Completed got %s", got)
	}
	if got := DisplayOrderStatus("unknown"); got != "unknown" {
		t.Fatalf("display unknown should pass through, got %s", got)
	}
}
