package repository

import (
	"fmt"
	"strings"
	"testing"

	"github.com/mallhub-next/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupProductRepositoryTest(t *testing.T) (*GormProductRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Tenant{}, &models.Product{}); err != nil {
		t.Fatalf("migrate product models failed: %v", err)
	}
	return NewProductRepository(db), db
}

func createTestProduct(t *testing.T, repo *GormProductRepository, tenantID uint, name string, stock int, active bool) *models.Product {
	t.Helper()
	product := &models.Product{
		TenantID: tenantID,
		Name:     name,
		Price:    models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		Stock:    stock,
		IsActive: active,
	}
	if err := repo.Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func TestDecrementStockConditional(t *testing.T) {
	repo, db := setupProductRepositoryTest(t)
	product := createTestProduct(t, repo, 1, "conditional-stock", 5, true)

	affected, err := repo.DecrementStock(product.ID, 3)
	if err != nil {
		t.Fatalf("decrement stock failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("decrement affected want 1 got %d", affected)
	}

	// 剩余 2，再扣 3 不应更新任何行
	affected, err = repo.DecrementStock(product.ID, 3)
	if err != nil {
		t.Fatalf("decrement over stock failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("decrement over stock affected want 0 got %d", affected)
	}

	var got models.Product
	if err := db.First(&got, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if got.Stock != 2 {
		t.Fatalf("stock want 2 got %d", got.Stock)
	}

	affected, err = repo.DecrementStock(product.ID, 2)
	if err != nil {
		t.Fatalf("decrement exact stock failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("decrement exact stock affected want 1 got %d", affected)
	}
}

func TestDecrementStockRejectsInvalidParams(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)

	if _, err := repo.DecrementStock(0, 1); err == nil {
		t.Fatalf("expected error for zero product id")
	}
	if _, err := repo.DecrementStock(1, 0); err == nil {
		t.Fatalf("expected error for non-positive quantity")
	}
}

func TestListFiltersByTenantActiveAndSearch(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)

	createTestProduct(t, repo, 1, "Green Apple", 10, true)
	createTestProduct(t, repo, 1, "Red Apple", 10, false)
	createTestProduct(t, repo, 2, "Apple Juice", 10, true)
	createTestProduct(t, repo, 2, "Banana", 10, true)

	products, total, err := repo.List(ProductListFilter{Page: 1, PageSize: 10, OnlyActive: true, Search: "apple"})
	if err != nil {
		t.Fatalf("list products failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("total want 2 got %d", total)
	}
	for _, item := range products {
		if !item.IsActive {
			t.Fatalf("inactive product leaked: %s", item.Name)
		}
	}

	products, total, err = repo.List(ProductListFilter{Page: 1, PageSize: 10, TenantID: 2})
	if err != nil {
		t.Fatalf("list by tenant failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("tenant total want 2 got %d", total)
	}
	for _, item := range products {
		if item.TenantID != 2 {
			t.Fatalf("foreign tenant product leaked: %s", item.Name)
		}
	}
}

func TestDeleteScopedToTenant(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)
	product := createTestProduct(t, repo, 1, "scoped-delete", 10, true)

	affected, err := repo.Delete(product.ID, 2)
	if err != nil {
		t.Fatalf("delete with wrong tenant failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("cross-tenant delete affected want 0 got %d", affected)
	}

	affected, err = repo.Delete(product.ID, 1)
	if err != nil {
		t.Fatalf("delete with owner tenant failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("owner delete affected want 1 got %d", affected)
	}

	got, err := repo.GetByID(product.ID)
	if err != nil {
		t.Fatalf("get deleted product failed: %v", err)
	}
	if got != nil {
		t.Fatalf("deleted product still visible")
	}
}
