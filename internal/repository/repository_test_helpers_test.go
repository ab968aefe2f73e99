package repository

import (
	"fmt"
	"strings"
	"testing"

	"github.com/vitrine-next/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
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

func createTestProduct(t *testing.T, repo *GormProductRepository, slug string, mutate func(p *models.Product)) *models.Product {
	t.Helper()
	product := &models.Product{
		Slug:     slug,
		Name:     "Product " + slug,
		Brand:    "Nordic",
		Category: "tops",
		Price:    models.NewMoneyFromString("20"),
		Images:   models.StringArray{slug + ".jpg"},
		InStock:  true,
		IsActive: true,
		Sizes: []models.ProductSize{
			{Code: "S", Name: "Small", InStock: true, SortOrder: 1},
			{Code: "M", Name: "Medium", InStock: true, SortOrder: 2},
		},
		Colors: []models.ProductColor{
			{Code: "red", Name: "Red", Hex: "#ff0000"},
		},
	}
	if mutate != nil {
		mutate(product)
	}
	if err := repo.Create(product); err != nil {
		t.Fatalf("create product %s failed: %v", slug, err)
	}
	if !product.IsActive {
		if err := repo.db.Model(product).Update("is_active", false).Error; err != nil {
			t.Fatalf("deactivate product failed: %v", err)
		}
	}
	return product
}
