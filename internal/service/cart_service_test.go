package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/vitrine-next/internal/cart"
	"github.com/vitrine-next/internal/repository"

	"github.com/shopspring/decimal"
)

const testOwner = "0b9f6c1e-6a4d-4c53-9a52-3c8d4b1e2f10"

func TestCartServiceAddMergesAndPersists(t *testing.T) {
	db := openServiceTestDB(t)
	product := seedServiceProduct(t, db, "linen-shirt", "20", true)
	store := newMemoryCartStore()
	svc := newTestCartService(db, store, nil, false)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, testOwner, product.ID, "M", "red", 1); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	view, err := svc.AddItem(ctx, testOwner, product.ID, "M", "red", 1)
	if err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	if len(view.Items) != 1 || view.TotalItems != 2 {
		t.Fatalf("expected merged line, got %d lines / %d items", len(view.Items), view.TotalItems)
	}
	if !view.TotalPrice.Equal(decimal.NewFromInt(40)) {
		t.Fatalf("expected total 40, got %s", view.TotalPrice.String())
	}
	if view.Items[0].Product.Image != "linen-shirt.jpg" || view.Items[0].SelectedSize.Name != "Medium" {
		t.Fatalf("unexpected snapshot %+v", view.Items[0])
	}

	reloaded, err := svc.Get(ctx, testOwner)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if reloaded.TotalItems != 2 || !reloaded.TotalPrice.Equal(decimal.NewFromInt(40)) {
		t.Fatalf("snapshot not restored: %+v", reloaded)
	}
}

func TestCartServiceUnknownVariantIsNoop(t *testing.T) {
	db := openServiceTestDB(t)
	product := seedServiceProduct(t, db, "tee", "10", true)
	store := newMemoryCartStore()
	drawer := newRecordingDrawer()
	svc := newTestCartService(db, store, drawer, true)

	view, err := svc.AddItem(context.Background(), testOwner, product.ID, "XXL", "red", 1)
	if err != nil {
		t.Fatalf("unknown size must not be an error: %v", err)
	}
	if len(view.Items) != 0 || view.TotalItems != 0 {
		t.Fatalf("cart should stay empty")
	}
	if store.saves != 0 {
		t.Fatalf("no-op must not persist, saves=%d", store.saves)
	}
	if drawer.openedCount(testOwner) != 0 {
		t.Fatalf("no-op must not open drawer")
	}
}

func TestCartServiceProductErrors(t *testing.T) {
	db := openServiceTestDB(t)
	hidden := seedServiceProduct(t, db, "hidden", "10", false)
	svc := newTestCartService(db, newMemoryCartStore(), nil, false)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, testOwner, 9999, "M", "red", 1); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	if _, err := svc.AddItem(ctx, testOwner, hidden.ID, "M", "red", 1); !errors.Is(err, ErrProductNotAvailable) {
		t.Fatalf("expected ErrProductNotAvailable, got %v", err)
	}
	if _, err := svc.Get(ctx, " "); !errors.Is(err, ErrOwnerRequired) {
		t.Fatalf("expected ErrOwnerRequired, got %v", err)
	}
}

func TestCartServiceNotifierToggle(t *testing.T) {
	db := openServiceTestDB(t)
	product := seedServiceProduct(t, db, "coat", "120", true)
	ctx := context.Background()

	drawer := newRecordingDrawer()
	svc := newTestCartService(db, newMemoryCartStore(), drawer, true)
	view, err := svc.AddItem(ctx, testOwner, product.ID, "L", "navy", 1)
	if err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	if !view.IsOpen || drawer.openedCount(testOwner) != 1 {
		t.Fatalf("expected drawer opened once, open=%v count=%d", view.IsOpen, drawer.openedCount(testOwner))
	}
	closed, err := svc.Close(ctx, testOwner)
	if err != nil || closed.IsOpen {
		t.Fatalf("expected drawer closed, view=%+v err=%v", closed, err)
	}

	quiet := newRecordingDrawer()
	svc = newTestCartService(db, newMemoryCartStore(), quiet, false)
	view, err = svc.AddItem(ctx, testOwner, product.ID, "L", "navy", 1)
	if err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	if view.IsOpen || quiet.openedCount(testOwner) != 0 {
		t.Fatalf("drawer must stay closed when open_on_add is off")
	}
}

func TestCartServiceUpdateRemoveClear(t *testing.T) {
	db := openServiceTestDB(t)
	a := seedServiceProduct(t, db, "a", "20", true)
	b := seedServiceProduct(t, db, "b", "12.25", true)
	svc := newTestCartService(db, newMemoryCartStore(), nil, false)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, testOwner, a.ID, "M", "red", 1); err != nil {
		t.Fatalf("add a failed: %v", err)
	}
	if _, err := svc.AddItem(ctx, testOwner, b.ID, "S", "navy", 2); err != nil {
		t.Fatalf("add b failed: %v", err)
	}
	lineA := cartLineID(a.ID, "M", "red")

	view, err := svc.UpdateQuantity(ctx, testOwner, lineA, 3)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if view.TotalItems != 5 || !view.TotalPrice.Equal(decimal.RequireFromString("84.5")) {
		t.Fatalf("unexpected totals %d / %s", view.TotalItems, view.TotalPrice.String())
	}

	view, err = svc.UpdateQuantity(ctx, testOwner, lineA, 0)
	if err != nil {
		t.Fatalf("update to zero failed: %v", err)
	}
	if len(view.Items) != 1 || view.TotalItems != 2 {
		t.Fatalf("quantity 0 should remove the line: %+v", view.Items)
	}

	view, err = svc.RemoveItem(ctx, testOwner, "nonexistent")
	if err != nil || view.TotalItems != 2 {
		t.Fatalf("removing unknown id must be a no-op, view=%+v err=%v", view, err)
	}

	view, err = svc.Clear(ctx, testOwner)
	if err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if len(view.Items) != 0 || view.TotalItems != 0 || !view.TotalPrice.IsZero() {
		t.Fatalf("clear did not reset cart: %+v", view)
	}
	if again, _ := svc.Get(ctx, testOwner); again.TotalItems != 0 {
		t.Fatalf("cleared cart came back after reload")
	}
}

func TestCartServicePersistFailureDoesNotFailMutation(t *testing.T) {
	db := openServiceTestDB(t)
	product := seedServiceProduct(t, db, "scarf", "15", true)
	store := newMemoryCartStore()
	store.saveErr = errStoreDown
	svc := newTestCartService(db, store, nil, false)

	view, err := svc.AddItem(context.Background(), testOwner, product.ID, "S", "red", 2)
	if err != nil {
		t.Fatalf("persist failure must not surface: %v", err)
	}
	if view.TotalItems != 2 || !view.TotalPrice.Equal(decimal.NewFromInt(30)) {
		t.Fatalf("in-memory result should reflect the mutation: %+v", view)
	}
	if store.saves != 1 {
		t.Fatalf("expected one save attempt, got %d", store.saves)
	}
}

func TestCartServiceLoadFailureIsReturned(t *testing.T) {
	db := openServiceTestDB(t)
	store := newMemoryCartStore()
	store.loadErr = errStoreDown
	svc := newTestCartService(db, store, nil, false)

	if _, err := svc.Get(context.Background(), testOwner); !errors.Is(err, ErrCartLoadFailed) {
		t.Fatalf("expected ErrCartLoadFailed, got %v", err)
	}
}

func TestCartServiceWithSQLStore(t *testing.T) {
	db := openServiceTestDB(t)
	product := seedServiceProduct(t, db, "boots", "89.99", true)
	svc := newTestCartService(db, repository.NewCartRepository(db), nil, false)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, testOwner, product.ID, "L", "red", 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	view, err := svc.Get(ctx, testOwner)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if view.TotalItems != 1 || !view.TotalPrice.Equal(decimal.RequireFromString("89.99")) {
		t.Fatalf("sql snapshot not restored: %+v", view)
	}
}

func cartLineID(productID uint, size, color string) string {
	return cart.Key{ProductID: productID, SizeID: size, ColorID: color}.String()
}

func TestCartServiceConcurrentAddsAreNotLost(t *testing.T) {
	db := openServiceTestDB(t)
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}
	product := seedServiceProduct(t, db, "linen-shirt", "20", true)
	store := newMemoryCartStore()
	svc := newTestCartService(db, store, nil, false)
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.AddItem(ctx, testOwner, product.ID, "M", "red", 1); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent add failed: %v", err)
	}

	view, err := svc.Get(ctx, testOwner)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if view.TotalItems != n || len(view.Items) != 1 {
		t.Fatalf("expected %d items on one line, got %d on %d lines", n, view.TotalItems, len(view.Items))
	}
}

func TestCartServiceRejectsQuantityAboveLineLimit(t *testing.T) {
	db := openServiceTestDB(t)
	product := seedServiceProduct(t, db, "linen-shirt", "20", true)
	store := newMemoryCartStore()
	svc := NewCartService(store, repository.NewProductRepository(db), CartServiceOptions{
		Ledger: []cart.Option{cart.WithMaxQuantity(5)},
	})
	ctx := context.Background()

	if svc.MaxLineQuantity() != 5 {
		t.Fatalf("expected line limit 5, got %d", svc.MaxLineQuantity())
	}
	if _, err := svc.AddItem(ctx, testOwner, product.ID, "M", "red", 6); !errors.Is(err, ErrCartQuantityExceeded) {
		t.Fatalf("expected ErrCartQuantityExceeded, got %v", err)
	}
	if store.saves != 0 {
		t.Fatalf("rejected add must not persist, saves=%d", store.saves)
	}

	view, err := svc.AddItem(ctx, testOwner, product.ID, "M", "red", 4)
	if err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	if view.MaxLineQuantity != 5 {
		t.Fatalf("view should report line limit, got %d", view.MaxLineQuantity)
	}
	view, err = svc.AddItem(ctx, testOwner, product.ID, "M", "red", 4)
	if err != nil {
		t.Fatalf("merging add failed: %v", err)
	}
	if view.Items[0].Quantity != 5 {
		t.Fatalf("merged line should stop at the limit, got %d", view.Items[0].Quantity)
	}

	lineID := view.Items[0].ID
	if _, err := svc.UpdateQuantity(ctx, testOwner, lineID, 6); !errors.Is(err, ErrCartQuantityExceeded) {
		t.Fatalf("expected ErrCartQuantityExceeded on update, got %v", err)
	}
	if view, err = svc.UpdateQuantity(ctx, testOwner, lineID, 2); err != nil || view.TotalItems != 2 {
		t.Fatalf("update within limit failed: %+v err=%v", view, err)
	}
}
