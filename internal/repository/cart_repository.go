package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/vitrine-next/internal/cart"
	"github.com/vitrine-next/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartRepository 购物车快照数据访问接口
type CartRepository interface {
	cart.Store
	WithTx(tx *gorm.DB) *GormCartRepository
}

// GormCartRepository GORM 实现，每个持有者一行快照
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) *GormCartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// Load 读取快照，不存在时返回空列表
func (r *GormCartRepository) Load(ctx context.Context, owner string) ([]cart.LineItem, error) {
	var snapshot models.CartSnapshot
	err := r.db.WithContext(ctx).Where("owner = ?", owner).First(&snapshot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []cart.LineItem{}, nil
	}
	if err != nil {
		return nil, err
	}
	var items []cart.LineItem
	if snapshot.ItemsJSON == "" {
		return []cart.LineItem{}, nil
	}
	if err := json.Unmarshal([]byte(snapshot.ItemsJSON), &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Save 覆盖写入快照
func (r *GormCartRepository) Save(ctx context.Context, owner string, items []cart.LineItem) error {
	if items == nil {
		items = []cart.LineItem{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return err
	}
	now := time.Now()
	snapshot := models.CartSnapshot{
		Owner:     owner,
		ItemsJSON: string(payload),
		CreatedAt: now,
		UpdatedAt: now,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "owner"}},
		DoUpdates: clause.AssignmentColumns([]string{"items", "updated_at"}),
	}).Create(&snapshot).Error
}

// Delete 删除快照
func (r *GormCartRepository) Delete(ctx context.Context, owner string) error {
	return r.db.WithContext(ctx).Where("owner = ?", owner).Delete(&models.CartSnapshot{}).Error
}
