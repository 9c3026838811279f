package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/mallhub-next/internal/cart"
	"github.com/mallhub-next/internal/models"
	"github.com/mallhub-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupCartServiceTest(t *testing.T) (*CartService, cart.Store, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Tenant{}, &models.Product{}); err != nil {
		t.Fatalf("migrate cart models failed: %v", err)
	}
	store := cart.NewMemoryStore(time.Hour)
	return NewCartService(store, repository.NewProductRepository(db)), store, db
}

func createCartTestProduct(t *testing.T, db *gorm.DB, name string, price int64, stock int, active bool) *models.Product {
	t.Helper()
	product := &models.Product{
		TenantID: 1,
		Name:     name,
		Price:    models.NewMoneyFromDecimal(decimal.NewFromInt(price)),
		Stock:    stock,
		IsActive: active,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func TestAddItemClampsQuantityToStock(t *testing.T) {
	svc, _, db := setupCartServiceTest(t)
	ctx := context.Background()
	product := createCartTestProduct(t, db, "clamp-me", 10, 3, true)

	view, err := svc.AddItem(ctx, "sess-clamp", product.ID, 5)
	if err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	if len(view.Lines) != 1 {
		t.Fatalf("lines want 1 got %d", len(view.Lines))
	}
	if view.Lines[0].Quantity != 3 {
		t.Fatalf("quantity want 3 got %d", view.Lines[0].Quantity)
	}

	// 已顶到库存上限，继续加购不再增加
	view, err = svc.AddItem(ctx, "sess-clamp", product.ID, 1)
	if err != nil {
		t.Fatalf("add again failed: %v", err)
	}
	if view.Lines[0].Quantity != 3 {
		t.Fatalf("quantity after re-add want 3 got %d", view.Lines[0].Quantity)
	}
}

func TestAddItemAccumulatesExistingLine(t *testing.T) {
	svc, _, db := setupCartServiceTest(t)
	ctx := context.Background()
	product := createCartTestProduct(t, db, "stackable", 10, 10, true)

	if _, err := svc.AddItem(ctx, "sess-stack", product.ID, 1); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	view, err := svc.AddItem(ctx, "sess-stack", product.ID, 2)
	if err != nil {
		t.Fatalf("second add failed: %v", err)
	}
	if len(view.Lines) != 1 || view.Lines[0].Quantity != 3 {
		t.Fatalf("want single line qty 3 got %+v", view.Lines)
	}
}

func TestAddItemRejectsOutOfStockProduct(t *testing.T) {
	svc, _, db := setupCartServiceTest(t)
	product := createCartTestProduct(t, db, "sold-out", 10, 0, true)

	_, err := svc.AddItem(context.Background(), "sess-oos", product.ID, 1)
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("want insufficient stock error got %v", err)
	}
}

func TestAddItemRejectsInactiveProduct(t *testing.T) {
	svc, _, db := setupCartServiceTest(t)
	product := createCartTestProduct(t, db, "retired", 10, 5, false)

	_, err := svc.AddItem(context.Background(), "sess-inactive", product.ID, 1)
	if !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("want product not found got %v", err)
	}
}

func TestUpdateQuantityNonPositiveRemovesLine(t *testing.T) {
	svc, _, db := setupCartServiceTest(t)
	ctx := context.Background()
	product := createCartTestProduct(t, db, "removable", 10, 5, true)

	if _, err := svc.AddItem(ctx, "sess-rm", product.ID, 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	view, err := svc.UpdateQuantity(ctx, "sess-rm", product.ID, 0)
	if err != nil {
		t.Fatalf("update to zero failed: %v", err)
	}
	if len(view.Lines) != 0 {
		t.Fatalf("lines want 0 got %d", len(view.Lines))
	}
}

func TestUpdateQuantityZeroStockRemovesLine(t *testing.T) {
	svc, store, db := setupCartServiceTest(t)
	ctx := context.Background()
	product := createCartTestProduct(t, db, "drained", 10, 5, true)

	if _, err := svc.AddItem(ctx, "sess-drain", product.ID, 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if err := db.Model(&models.Product{}).Where("id = ?", product.ID).Update("stock", 0).Error; err != nil {
		t.Fatalf("drain stock failed: %v", err)
	}

	// 库存归零后数量夹取到 0，行被移除而不是报冲突
	view, err := svc.UpdateQuantity(ctx, "sess-drain", product.ID, 3)
	if err != nil {
		t.Fatalf("update on zero stock failed: %v", err)
	}
	if len(view.Lines) != 0 {
		t.Fatalf("lines want 0 got %+v", view.Lines)
	}

	raw, err := store.Get(ctx, "sess-drain")
	if err != nil {
		t.Fatalf("read store failed: %v", err)
	}
	if len(raw.Lines) != 0 {
		t.Fatalf("store should be empty, got %+v", raw.Lines)
	}
}

func TestGetDropsZeroStockLines(t *testing.T) {
	svc, store, db := setupCartServiceTest(t)
	ctx := context.Background()
	stocked := createCartTestProduct(t, db, "in-stock", 10, 5, true)
	soldOut := createCartTestProduct(t, db, "sells-out", 10, 5, true)

	if _, err := svc.AddItem(ctx, "sess-zero", stocked.ID, 1); err != nil {
		t.Fatalf("add stocked failed: %v", err)
	}
	if _, err := svc.AddItem(ctx, "sess-zero", soldOut.ID, 2); err != nil {
		t.Fatalf("add soldout failed: %v", err)
	}

	if err := db.Model(&models.Product{}).Where("id = ?", soldOut.ID).Update("stock", 0).Error; err != nil {
		t.Fatalf("drain stock failed: %v", err)
	}

	view, err := svc.Get(ctx, "sess-zero")
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if len(view.Lines) != 1 || view.Lines[0].ProductID != stocked.ID {
		t.Fatalf("zero stock line should be dropped, got %+v", view.Lines)
	}
	want := models.NewMoneyFromDecimal(decimal.NewFromInt(10))
	if !view.Subtotal.Decimal.Equal(want.Decimal) {
		t.Fatalf("subtotal want %s got %s", want.Decimal, view.Subtotal.Decimal)
	}

	raw, err := store.Get(ctx, "sess-zero")
	if err != nil {
		t.Fatalf("read store failed: %v", err)
	}
	if len(raw.Lines) != 1 || raw.Lines[0].ProductID != stocked.ID {
		t.Fatalf("store should drop zero stock line, got %+v", raw.Lines)
	}
}

func TestRemoveItemIsIdempotent(t *testing.T) {
	svc, _, db := setupCartServiceTest(t)
	ctx := context.Background()
	product := createCartTestProduct(t, db, "twice-removed", 10, 5, true)

	if _, err := svc.RemoveItem(ctx, "sess-idem", product.ID); err != nil {
		t.Fatalf("remove from empty cart failed: %v", err)
	}
	if _, err := svc.AddItem(ctx, "sess-idem", product.ID, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := svc.RemoveItem(ctx, "sess-idem", product.ID); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	view, err := svc.RemoveItem(ctx, "sess-idem", product.ID)
	if err != nil {
		t.Fatalf("repeat remove failed: %v", err)
	}
	if len(view.Lines) != 0 {
		t.Fatalf("lines want 0 got %d", len(view.Lines))
	}
}

func TestGetPrunesUnavailableProducts(t *testing.T) {
	svc, store, db := setupCartServiceTest(t)
	ctx := context.Background()
	keep := createCartTestProduct(t, db, "keeper", 10, 5, true)
	gone := createCartTestProduct(t, db, "goner", 10, 5, true)

	if _, err := svc.AddItem(ctx, "sess-prune", keep.ID, 1); err != nil {
		t.Fatalf("add keeper failed: %v", err)
	}
	if _, err := svc.AddItem(ctx, "sess-prune", gone.ID, 1); err != nil {
		t.Fatalf("add goner failed: %v", err)
	}

	if err := db.Model(&models.Product{}).Where("id = ?", gone.ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate product failed: %v", err)
	}

	view, err := svc.Get(ctx, "sess-prune")
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if len(view.Lines) != 1 || view.Lines[0].ProductID != keep.ID {
		t.Fatalf("want only keeper got %+v", view.Lines)
	}

	// 剔除结果应已回写存储
	raw, err := store.Get(ctx, "sess-prune")
	if err != nil {
		t.Fatalf("read store failed: %v", err)
	}
	if len(raw.Lines) != 1 || raw.Lines[0].ProductID != keep.ID {
		t.Fatalf("store want only keeper got %+v", raw.Lines)
	}
}

func TestSubtotalFollowsCurrentPrice(t *testing.T) {
	svc, _, db := setupCartServiceTest(t)
	ctx := context.Background()
	product := createCartTestProduct(t, db, "repriced", 10, 5, true)

	if _, err := svc.AddItem(ctx, "sess-price", product.ID, 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if err := db.Model(&models.Product{}).Where("id = ?", product.ID).
		Update("price", models.NewMoneyFromDecimal(decimal.NewFromInt(12))).Error; err != nil {
		t.Fatalf("reprice failed: %v", err)
	}

	view, err := svc.Get(ctx, "sess-price")
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	want := models.NewMoneyFromDecimal(decimal.NewFromInt(24))
	if !view.Subtotal.Decimal.Equal(want.Decimal) {
		t.Fatalf("subtotal want %s got %s", want.Decimal, view.Subtotal.Decimal)
	}
}
