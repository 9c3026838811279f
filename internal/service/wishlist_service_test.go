package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/mallhub-next/internal/models"
	"github.com/mallhub-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupWishlistServiceTest(t *testing.T) (*WishlistService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.WishlistItem{}); err != nil {
		t.Fatalf("migrate wishlist models failed: %v", err)
	}
	return NewWishlistService(repository.NewWishlistRepository(db), repository.NewProductRepository(db)), db
}

func createWishlistTestProduct(t *testing.T, db *gorm.DB, name string, active bool) *models.Product {
	t.Helper()
	product := &models.Product{
		TenantID: 1,
		Name:     name,
		Price:    models.NewMoneyFromDecimal(decimal.NewFromInt(15)),
		Stock:    5,
		IsActive: active,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func TestWishlistAddIsIdempotent(t *testing.T) {
	svc, db := setupWishlistServiceTest(t)
	product := createWishlistTestProduct(t, db, "fav", true)

	for i := 0; i < 2; i++ {
		if err := svc.Add(10, product.ID); err != nil {
			t.Fatalf("add run %d failed: %v", i, err)
		}
	}

	entries, err := svc.List(10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(entries) != 1 || entries[0].ProductID != product.ID {
		t.Fatalf("entries want single %d got %+v", product.ID, entries)
	}

	ok, err := svc.Contains(10, product.ID)
	if err != nil {
		t.Fatalf("contains failed: %v", err)
	}
	if !ok {
		t.Fatalf("contains want true")
	}
}

func TestWishlistRemoveIsIdempotent(t *testing.T) {
	svc, db := setupWishlistServiceTest(t)
	product := createWishlistTestProduct(t, db, "fleeting", true)

	if err := svc.Remove(10, product.ID); err != nil {
		t.Fatalf("remove absent item failed: %v", err)
	}
	if err := svc.Add(10, product.ID); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := svc.Remove(10, product.ID); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if err := svc.Remove(10, product.ID); err != nil {
		t.Fatalf("repeat remove failed: %v", err)
	}

	ok, err := svc.Contains(10, product.ID)
	if err != nil {
		t.Fatalf("contains failed: %v", err)
	}
	if ok {
		t.Fatalf("contains want false after remove")
	}
}

func TestWishlistAddRejectsUnavailableProduct(t *testing.T) {
	svc, db := setupWishlistServiceTest(t)
	inactive := createWishlistTestProduct(t, db, "shelved", false)

	if err := svc.Add(10, inactive.ID); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("inactive product want ErrProductNotFound got %v", err)
	}
	if err := svc.Add(10, 98765); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("missing product want ErrProductNotFound got %v", err)
	}
	if err := svc.Add(10, 0); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("zero product id want ErrProductNotFound got %v", err)
	}
}

func TestWishlistListHidesInactiveProducts(t *testing.T) {
	svc, db := setupWishlistServiceTest(t)
	visible := createWishlistTestProduct(t, db, "still-here", true)
	hidden := createWishlistTestProduct(t, db, "soon-gone", true)

	if err := svc.Add(10, visible.ID); err != nil {
		t.Fatalf("add visible failed: %v", err)
	}
	if err := svc.Add(10, hidden.ID); err != nil {
		t.Fatalf("add hidden failed: %v", err)
	}

	if err := db.Model(&models.Product{}).Where("id = ?", hidden.ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate product failed: %v", err)
	}

	entries, err := svc.List(10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(entries) != 1 || entries[0].ProductID != visible.ID {
		t.Fatalf("want only visible product got %+v", entries)
	}
}
