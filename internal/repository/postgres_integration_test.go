//go:build integration
// +build integration

package repository

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/mallhub-next/internal/constants"
	"github.com/mallhub-next/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB 初始化 PostgreSQL 集成测试数据库。
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}

	cleanupModels := []interface{}{
		&models.OrderItem{},
		&models.Order{},
		&models.Product{},
		&models.Tenant{},
		&models.User{},
	}
	_ = db.Migrator().DropTable(cleanupModels...)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Tenant{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		t.Fatalf("migrate postgres models failed: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Migrator().DropTable(cleanupModels...)
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

func TestPostgresProductSearchCaseInsensitive(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	repo := NewProductRepository(db)

	product := &models.Product{
		TenantID: 1,
		Name:     "Rocket Booster Pack",
		Price:    models.NewMoneyFromDecimal(decimal.NewFromInt(99)),
		Stock:    10,
		IsActive: true,
	}
	if err := repo.Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	// postgres 分支走 ILIKE，大小写不敏感
	rows, total, err := repo.List(ProductListFilter{Page: 1, Search: "rocket"})
	if err != nil {
		t.Fatalf("product search lowercase failed: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("product search lowercase want 1 got total=%d len=%d", total, len(rows))
	}

	rows, total, err = repo.List(ProductListFilter{Page: 1, Search: "BOOSTER"})
	if err != nil {
		t.Fatalf("product search uppercase failed: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("product search uppercase want 1 got total=%d len=%d", total, len(rows))
	}
}

func TestPostgresDashboardQueries(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	repo := NewDashboardRepository(db)
	now := time.Now().UTC().Truncate(time.Second)

	order := &models.Order{
		OrderNo:         "PG-ORDER-001",
		UserID:          1,
		Status:          constants.OrderStatusCompleted,
		ContactName:     "pg tester",
		ContactPhone:    "100",
		Contact:         "pg tester (100)",
		DeliveryAddress: "1 Integration Way",
		SubtotalAmount:  models.NewMoneyFromDecimal(decimal.NewFromInt(120)),
		SurchargeAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(12)),
		TotalAmount:     models.NewMoneyFromDecimal(decimal.NewFromInt(132)),
		CreatedAt:       now,
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	monthly, err := repo.GetMonthlyRevenue()
	if err != nil {
		t.Fatalf("get monthly revenue failed: %v", err)
	}
	if len(monthly) != 1 {
		t.Fatalf("monthly rows want 1 got %d", len(monthly))
	}
	if monthly[0].Month != now.Format("01") {
		t.Fatalf("month want %s got %s", now.Format("01"), monthly[0].Month)
	}
	if monthly[0].Total != 132 {
		t.Fatalf("monthly total want 132 got %.2f", monthly[0].Total)
	}

	weekday, err := repo.GetWeekdayOrderCounts()
	if err != nil {
		t.Fatalf("get weekday order counts failed: %v", err)
	}
	if len(weekday) != 1 {
		t.Fatalf("weekday rows want 1 got %d", len(weekday))
	}
	if strings.TrimSpace(weekday[0].Day) == "" {
		t.Fatalf("weekday day should not be empty")
	}
	if weekday[0].Count != 1 {
		t.Fatalf("weekday count want 1 got %d", weekday[0].Count)
	}
}
