package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/vitrine-next/internal/cart"
	"github.com/vitrine-next/internal/models"
	"github.com/vitrine-next/internal/repository"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.Migrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func seedServiceProduct(t *testing.T, db *gorm.DB, slug, price string, active bool) *models.Product {
	t.Helper()
	product := &models.Product{
		Slug:     slug,
		Name:     "Product " + slug,
		Brand:    "Nordic",
		Category: "tops",
		Price:    models.NewMoneyFromString(price),
		Images:   models.StringArray{slug + ".jpg"},
		InStock:  true,
		IsActive: true,
		Sizes: []models.ProductSize{
			{Code: "S", Name: "Small", InStock: true, SortOrder: 1},
			{Code: "M", Name: "Medium", InStock: true, SortOrder: 2},
			{Code: "L", Name: "Large", InStock: true, SortOrder: 3},
		},
		Colors: []models.ProductColor{
			{Code: "red", Name: "Red", Hex: "#ff0000", SortOrder: 1},
			{Code: "navy", Name: "Navy", Hex: "#000080", SortOrder: 2},
		},
	}
	if err := repository.NewProductRepository(db).Create(product); err != nil {
		t.Fatalf("create product %s failed: %v", slug, err)
	}
	if !active {
		if err := db.Model(product).Update("is_active", false).Error; err != nil {
			t.Fatalf("deactivate product failed: %v", err)
		}
		product.IsActive = false
	}
	return product
}

// memoryCartStore 进程内快照存储，可注入读写错误
type memoryCartStore struct {
	mu      sync.Mutex
	data    map[string][]cart.LineItem
	saves   int
	loadErr error
	saveErr error
}

func newMemoryCartStore() *memoryCartStore {
	return &memoryCartStore{data: make(map[string][]cart.LineItem)}
}

func (s *memoryCartStore) Load(_ context.Context, owner string) ([]cart.LineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return append([]cart.LineItem(nil), s.data[owner]...), nil
}

func (s *memoryCartStore) Save(_ context.Context, owner string, items []cart.LineItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.data[owner] = append([]cart.LineItem(nil), items...)
	return nil
}

func (s *memoryCartStore) Delete(_ context.Context, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	delete(s.data, owner)
	return nil
}

// recordingDrawer 记录加购通知
type recordingDrawer struct {
	mu     sync.Mutex
	opened map[string]int
	open   map[string]bool
}

func newRecordingDrawer() *recordingDrawer {
	return &recordingDrawer{opened: make(map[string]int), open: make(map[string]bool)}
}

func (d *recordingDrawer) CartOpened(_ context.Context, owner string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.opened[owner]++
	d.open[owner] = true
}

func (d *recordingDrawer) IsOpen(_ context.Context, owner string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.open[owner], nil
}

func (d *recordingDrawer) Close(_ context.Context, owner string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.open[owner] = false
	return nil
}

func (d *recordingDrawer) openedCount(owner string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.opened[owner]
}

var errStoreDown = errors.New("store down")

var fixedTestTime = time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)

func newTestCartService(db *gorm.DB, store cart.Store, drawer CartDrawer, openOnAdd bool) *CartService {
	return NewCartService(store, repository.NewProductRepository(db), CartServiceOptions{
		Drawer:    drawer,
		OpenOnAdd: openOnAdd,
		Ledger: []cart.Option{
			cart.WithClock(func() time.Time { return fixedTestTime }),
			cart.WithLogger(zap.NewNop().Sugar()),
		},
	})
}
