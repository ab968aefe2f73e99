package repository

import (
	"errors"
	"time"

	"github.com/vitrine-next/internal/models"

	"gorm.io/gorm"
)

// OrderRepository 订单数据访问接口
type OrderRepository interface {
	Create(order *models.Order) error
	GetByOrderNo(orderNo string) (*models.Order, error)
	GetByOrderNoAndOwner(orderNo, owner string) (*models.Order, error)
	ListByOwner(owner string, page, pageSize int) ([]models.Order, int64, error)
	Transition(orderNo, from, to string, at time.Time) (bool, error)
	ListPendingBefore(cutoff time.Time, limit int) ([]string, error)
	WithTx(tx *gorm.DB) *GormOrderRepository
}

// GormOrderRepository GORM 实现
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓库
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// WithTx 绑定事务
func (r *GormOrderRepository) WithTx(tx *gorm.DB) *GormOrderRepository {
	if tx == nil {
		return r
	}
	return &GormOrderRepository{db: tx}
}

// Create 在同一事务内写入订单与订单项
func (r *GormOrderRepository) Create(order *models.Order) error {
	if order == nil {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
}

// GetByOrderNo 根据订单号获取订单
func (r *GormOrderRepository) GetByOrderNo(orderNo string) (*models.Order, error) {
	return r.first(r.db.Where("order_no = ?", orderNo))
}

// GetByOrderNoAndOwner 获取持有者自己的订单
func (r *GormOrderRepository) GetByOrderNoAndOwner(orderNo, owner string) (*models.Order, error) {
	return r.first(r.db.Where("order_no = ? AND owner = ?", orderNo, owner))
}

// ListByOwner 分页获取持有者订单
func (r *GormOrderRepository) ListByOwner(owner string, page, pageSize int) ([]models.Order, int64, error) {
	query := r.db.Model(&models.Order{}).Where("owner = ?", owner)
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var orders []models.Order
	listQuery := applyPagination(r.db.Where("owner = ?", owner).Order("created_at DESC").Order("id DESC"), page, pageSize)
	if err := listQuery.Preload("Items").Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// Transition 条件更新订单状态，只有当前状态为 from 时才会生效
func (r *GormOrderRepository) Transition(orderNo, from, to string, at time.Time) (bool, error) {
	updates := map[string]interface{}{
		"status":     to,
		"updated_at": at,
	}
	if to == models.OrderStatusConfirmed {
		updates["confirmed_at"] = at
	}
	result := r.db.Model(&models.Order{}).
		Where("order_no = ? AND status = ?", orderNo, from).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// ListPendingBefore 获取创建时间早于 cutoff 的待确认订单号
func (r *GormOrderRepository) ListPendingBefore(cutoff time.Time, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 100
	}
	var orderNos []string
	err := r.db.Model(&models.Order{}).
		Where("status = ? AND created_at < ?", models.OrderStatusPending, cutoff).
		Order("created_at asc").
		Limit(limit).
		Pluck("order_no", &orderNos).Error
	if err != nil {
		return nil, err
	}
	return orderNos, nil
}

func (r *GormOrderRepository) first(query *gorm.DB) (*models.Order, error) {
	var order models.Order
	if err := query.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}
