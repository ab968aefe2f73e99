package repository

import (
	"context"
	"testing"
	"time"

	"github.com/vitrine-next/internal/cart"

	"github.com/shopspring/decimal"
)

func sampleLineItems() []cart.LineItem {
	product := cart.ProductSnapshot{
		ID:     7,
		Name:   "Linen Shirt",
		Price:  decimal.RequireFromString("24.90"),
		Sizes:  []cart.Variant{{ID: "M", Name: "Medium"}},
		Colors: []cart.Variant{{ID: "red", Name: "Red"}},
	}
	return []cart.LineItem{{
		ID:            "7-M-red",
		Product:       product,
		Quantity:      2,
		SelectedSize:  cart.Variant{ID: "M", Name: "Medium"},
		SelectedColor: cart.Variant{ID: "red", Name: "Red"},
		AddedAt:       time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}}
}

func TestCartRepositoryLoadMissingIsEmpty(t *testing.T) {
	repo := NewCartRepository(openTestDB(t))
	items, err := repo.Load(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", items)
	}
}

func TestCartRepositorySaveLoadOverwrite(t *testing.T) {
	repo := NewCartRepository(openTestDB(t))
	ctx := context.Background()

	if err := repo.Save(ctx, "owner-1", sampleLineItems()); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	items, err := repo.Load(ctx, "owner-1")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(items) != 1 || items[0].Quantity != 2 || !items[0].Product.Price.Equal(decimal.RequireFromString("24.9")) {
		t.Fatalf("unexpected items %+v", items)
	}
	if !items[0].AddedAt.Equal(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("added_at not preserved: %s", items[0].AddedAt)
	}

	if err := repo.Save(ctx, "owner-1", nil); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
	items, err = repo.Load(ctx, "owner-1")
	if err != nil {
		t.Fatalf("load after overwrite failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty cart after overwrite, got %d", len(items))
	}

	var count int64
	repo.db.Table("cart_snapshots").Where("owner = ?", "owner-1").Count(&count)
	if count != 1 {
		t.Fatalf("expected a single snapshot row, got %d", count)
	}
}

func TestCartRepositoryDelete(t *testing.T) {
	repo := NewCartRepository(openTestDB(t))
	ctx := context.Background()
	if err := repo.Save(ctx, "owner-2", sampleLineItems()); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := repo.Delete(ctx, "owner-2"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := repo.Delete(ctx, "owner-2"); err != nil {
		t.Fatalf("second delete should be a no-op: %v", err)
	}
	items, err := repo.Load(ctx, "owner-2")
	if err != nil || len(items) != 0 {
		t.Fatalf("expected empty cart after delete, got %v err=%v", items, err)
	}
}
