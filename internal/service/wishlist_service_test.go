package service

import (
	"context"
	"errors"
	"testing"

	"github.com/vitrine-next/internal/repository"
)

func TestWishlistToggleAndList(t *testing.T) {
	db := openServiceTestDB(t)
	a := seedServiceProduct(t, db, "a", "20", true)
	b := seedServiceProduct(t, db, "b", "30", true)
	cartService := newTestCartService(db, newMemoryCartStore(), nil, false)
	svc := NewWishlistService(repository.NewWishlistRepository(db), repository.NewProductRepository(db), cartService)

	in, err := svc.Toggle(testOwner, a.ID)
	if err != nil || !in {
		t.Fatalf("first toggle should add, in=%v err=%v", in, err)
	}
	if err := svc.Add(testOwner, b.ID); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := svc.Add(testOwner, b.ID); err != nil {
		t.Fatalf("duplicate add should be a no-op: %v", err)
	}
	items, err := svc.List(testOwner)
	if err != nil || len(items) != 2 {
		t.Fatalf("expected 2 wishlist items, got %d err=%v", len(items), err)
	}

	in, err = svc.Toggle(testOwner, a.ID)
	if err != nil || in {
		t.Fatalf("second toggle should remove, in=%v err=%v", in, err)
	}
	if ok, _ := svc.IsInWishlist(testOwner, a.ID); ok {
		t.Fatalf("product should be gone from wishlist")
	}
}

func TestWishlistRejectsUnknownOrHiddenProducts(t *testing.T) {
	db := openServiceTestDB(t)
	hidden := seedServiceProduct(t, db, "hidden", "20", false)
	svc := NewWishlistService(repository.NewWishlistRepository(db), repository.NewProductRepository(db), nil)

	if err := svc.Add(testOwner, 4242); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	if err := svc.Add(testOwner, hidden.ID); !errors.Is(err, ErrProductNotAvailable) {
		t.Fatalf("expected ErrProductNotAvailable, got %v", err)
	}
}

func TestWishlistMoveToCart(t *testing.T) {
	db := openServiceTestDB(t)
	product := seedServiceProduct(t, db, "dress", "55", true)
	cartService := newTestCartService(db, newMemoryCartStore(), nil, false)
	svc := NewWishlistService(repository.NewWishlistRepository(db), repository.NewProductRepository(db), cartService)
	ctx := context.Background()

	if _, _, err := svc.MoveToCart(ctx, testOwner, product.ID, "M", "red", 1); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("moving an item that is not saved should fail, got %v", err)
	}
	if err := svc.Add(testOwner, product.ID); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	view, moved, err := svc.MoveToCart(ctx, testOwner, product.ID, "XXL", "red", 1)
	if err != nil || moved || view.TotalItems != 0 {
		t.Fatalf("unknown size should leave both lists untouched, moved=%v err=%v", moved, err)
	}
	if ok, _ := svc.IsInWishlist(testOwner, product.ID); !ok {
		t.Fatalf("wishlist entry must stay when nothing was added")
	}

	view, moved, err = svc.MoveToCart(ctx, testOwner, product.ID, "M", "red", 1)
	if err != nil || !moved || view.TotalItems != 1 {
		t.Fatalf("expected move, moved=%v view=%+v err=%v", moved, view, err)
	}
	if ok, _ := svc.IsInWishlist(testOwner, product.ID); ok {
		t.Fatalf("wishlist entry should be removed after move")
	}
}
