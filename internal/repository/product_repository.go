package repository

import (
	"errors"
	"strings"

	"github.com/vitrine-next/internal/catalog"
	"github.com/vitrine-next/internal/models"

	"gorm.io/gorm"
)

// ProductRepository 商品数据访问接口
type ProductRepository interface {
	GetByID(id uint) (*models.Product, error)
	GetBySlug(slug string) (*models.Product, error)
	ListByIDs(ids []uint) ([]models.Product, error)
	List(filter catalog.Filter) ([]models.Product, int64, error)
	Create(product *models.Product) error
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// GetByID 根据 ID 获取商品，不存在时返回 nil
func (r *GormProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := withVariants(r.db).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// GetBySlug 根据 slug 获取上架商品
func (r *GormProductRepository) GetBySlug(slug string) (*models.Product, error) {
	var product models.Product
	if err := withVariants(r.db).
		Where("slug = ? AND is_active = ?", strings.TrimSpace(slug), true).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// ListByIDs 批量获取商品
func (r *GormProductRepository) ListByIDs(ids []uint) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}
	var products []models.Product
	if err := withVariants(r.db).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// List 按目录筛选条件分页查询上架商品
func (r *GormProductRepository) List(filter catalog.Filter) ([]models.Product, int64, error) {
	var total int64
	if err := r.filtered(filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := applyCatalogSort(r.filtered(filter), filter.Sort())
	query = applyPagination(query, filter.Page(), filter.PageSize())
	var products []models.Product
	if err := withVariants(query).Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// Create 创建商品（含尺码与颜色）
func (r *GormProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

func (r *GormProductRepository) filtered(filter catalog.Filter) *gorm.DB {
	query := r.db.Model(&models.Product{}).Where("products.is_active = ?", true)
	if category := filter.Category(); category != "" {
		query = query.Where("products.category = ?", category)
	}
	if brand := filter.Brand(); brand != "" {
		query = query.Where("products.brand = ?", brand)
	}
	if price := filter.Price(); !price.IsZero() {
		if price.Min != nil {
			query = query.Where("products.price >= ?", price.Min.InexactFloat64())
		}
		if price.Max != nil {
			query = query.Where("products.price <= ?", price.Max.InexactFloat64())
		}
	}
	if sizes := filter.Sizes(); len(sizes) > 0 {
		sub := r.db.Model(&models.ProductSize{}).Select("product_id").Where("code IN ?", sizes)
		query = query.Where("products.id IN (?)", sub)
	}
	if colors := filter.Colors(); len(colors) > 0 {
		sub := r.db.Model(&models.ProductColor{}).Select("product_id").Where("code IN ?", colors)
		query = query.Where("products.id IN (?)", sub)
	}
	if filter.InStockOnly() {
		query = query.Where("products.in_stock = ?", true)
	}
	if search := strings.ToLower(filter.Search()); search != "" {
		condition, argCount := buildSearchCondition(r.db,
			[]string{"products.name", "products.description", "products.brand"},
			[]string{"products.tags"},
		)
		query = query.Where(condition, repeatLikeArgs("%"+search+"%", argCount)...)
	}
	return query
}

func applyCatalogSort(query *gorm.DB, sort catalog.SortOrder) *gorm.DB {
	switch sort {
	case catalog.SortPriceAsc:
		return query.Order("products.price ASC").Order("products.id ASC")
	case catalog.SortPriceDesc:
		return query.Order("products.price DESC").Order("products.id ASC")
	case catalog.SortRating:
		return query.Order("products.rating DESC").Order("products.review_count DESC").Order("products.id ASC")
	case catalog.SortNewest:
		return query.Order("products.created_at DESC").Order("products.id DESC")
	default:
		return query.Order("products.sort_order DESC").Order("products.id ASC")
	}
}

func withVariants(query *gorm.DB) *gorm.DB {
	return query.
		Preload("Sizes", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		Preload("Colors", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		})
}
