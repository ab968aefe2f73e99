package repository

import (
	"errors"
	"time"

	"github.com/vitrine-next/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WishlistRepository 心愿单数据访问接口
type WishlistRepository interface {
	ListByOwner(owner string) ([]models.WishlistItem, error)
	Add(owner string, productID uint) error
	Remove(owner string, productID uint) error
	Exists(owner string, productID uint) (bool, error)
	ClearByOwner(owner string) error
}

// GormWishlistRepository GORM 实现
type GormWishlistRepository struct {
	db *gorm.DB
}

// NewWishlistRepository 创建心愿单仓库
func NewWishlistRepository(db *gorm.DB) *GormWishlistRepository {
	return &GormWishlistRepository{db: db}
}

// ListByOwner 获取心愿单，按加入时间倒序
func (r *GormWishlistRepository) ListByOwner(owner string) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	if err := r.db.Preload("Product").
		Preload("Product.Sizes", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC, id ASC") }).
		Preload("Product.Colors", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC, id ASC") }).
		Where("owner = ?", owner).
		Order("created_at DESC").Order("id DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Add 加入心愿单，已存在时不做任何改动
func (r *GormWishlistRepository) Add(owner string, productID uint) error {
	item := models.WishlistItem{Owner: owner, ProductID: productID, CreatedAt: time.Now()}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&item).Error
}

// Remove 移出心愿单
func (r *GormWishlistRepository) Remove(owner string, productID uint) error {
	return r.db.Where("owner = ? AND product_id = ?", owner, productID).Delete(&models.WishlistItem{}).Error
}

// Exists 判断是否在心愿单中
func (r *GormWishlistRepository) Exists(owner string, productID uint) (bool, error) {
	var item models.WishlistItem
	err := r.db.Select("id").Where("owner = ? AND product_id = ?", owner, productID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ClearByOwner 清空心愿单
func (r *GormWishlistRepository) ClearByOwner(owner string) error {
	return r.db.Where("owner = ?", owner).Delete(&models.WishlistItem{}).Error
}
