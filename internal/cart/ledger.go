// Package cart 实现购物车账本：行项目按组合键唯一，合计随每次变更整体重算。
//
// 账本是调用方独占的普通值，没有锁；持久化与展示通知通过 Store / Notifier 端口由外层注入。
package cart

import (
	"time"

	"github.com/vitrine-next/internal/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	// DefaultMaxQuantity 单行默认数量上限
	DefaultMaxQuantity = 99
	// QuantityCeiling 单行数量上限的最大可配置值
	QuantityCeiling = 999
)

// Ledger 购物车账本
type Ledger struct {
	items      []LineItem
	totalItems int
	totalPrice decimal.Decimal

	maxQuantity int
	now         func() time.Time
	log         *zap.SugaredLogger
}

// Option 账本选项
type Option func(*Ledger)

// WithClock 指定时钟（测试用）
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		if now != nil {
			l.now = now
		}
	}
}

// WithLogger 指定诊断日志
func WithLogger(log *zap.SugaredLogger) Option {
	return func(l *Ledger) {
		if log != nil {
			l.log = log
		}
	}
}

// WithMaxQuantity 指定单行数量上限，超出 [1, QuantityCeiling] 时取边界值
func WithMaxQuantity(max int) Option {
	return func(l *Ledger) {
		switch {
		case max < 1:
			l.maxQuantity = 1
		case max > QuantityCeiling:
			l.maxQuantity = QuantityCeiling
		default:
			l.maxQuantity = max
		}
	}
}

// NewLedger 创建空账本
func NewLedger(opts ...Option) *Ledger {
	l := &Ledger{
		totalPrice:  decimal.Zero,
		maxQuantity: DefaultMaxQuantity,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.log == nil {
		l.log = logger.Named("cart")
	}
	return l
}

// AddItem 加购。尺码或颜色不属于该商品时记录日志并忽略，返回 false。
// 相同组合键的行累加数量，否则追加新行。quantity 小于 1 时按 1 处理，
// 行数量封顶为 MaxQuantity，已到上限时不做改动。
func (l *Ledger) AddItem(product ProductSnapshot, sizeID, colorID string, quantity int) bool {
	size, ok := product.FindSize(sizeID)
	if !ok {
		l.log.Warnw("cart_add_item_size_not_found", "product_id", product.ID, "size_id", sizeID)
		return false
	}
	color, ok := product.FindColor(colorID)
	if !ok {
		l.log.Warnw("cart_add_item_color_not_found", "product_id", product.ID, "color_id", colorID)
		return false
	}
	if quantity < 1 {
		quantity = 1
	}

	key := Key{ProductID: product.ID, SizeID: size.ID, ColorID: color.ID}
	if idx := l.indexOfKey(key); idx >= 0 {
		current := l.items[idx].Quantity
		next := l.addCapped(current, quantity)
		if next == current {
			l.log.Warnw("cart_add_item_quantity_capped", "line_id", l.items[idx].ID, "max_quantity", l.maxQuantity)
			return false
		}
		l.items[idx].Quantity = next
	} else {
		l.items = append(l.items, LineItem{
			ID:            key.String(),
			Product:       product,
			Quantity:      l.addCapped(0, quantity),
			SelectedSize:  size,
			SelectedColor: color,
			AddedAt:       l.now(),
		})
	}
	l.recompute()
	return true
}

// RemoveItem 删除行，行不存在时不做任何改动
func (l *Ledger) RemoveItem(id string) bool {
	idx := l.indexOf(id)
	if idx < 0 {
		return false
	}
	l.items = append(l.items[:idx], l.items[idx+1:]...)
	l.recompute()
	return true
}

// UpdateQuantity 设置行数量，quantity <= 0 等同于删除，超过上限时按上限处理
func (l *Ledger) UpdateQuantity(id string, quantity int) bool {
	if quantity <= 0 {
		return l.RemoveItem(id)
	}
	if quantity > l.maxQuantity {
		quantity = l.maxQuantity
	}
	idx := l.indexOf(id)
	if idx < 0 {
		return false
	}
	if l.items[idx].Quantity == quantity {
		return false
	}
	l.items[idx].Quantity = quantity
	l.recompute()
	return true
}

// Clear 清空账本
func (l *Ledger) Clear() {
	l.items = nil
	l.recompute()
}

// Restore 用持久化的行数据重建账本：合并重复组合键，丢弃非正数量，数量封顶后重算合计
func (l *Ledger) Restore(items []LineItem) {
	l.items = make([]LineItem, 0, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			continue
		}
		item.ID = item.Key().String()
		if idx := l.indexOfKey(item.Key()); idx >= 0 {
			l.items[idx].Quantity = l.addCapped(l.items[idx].Quantity, item.Quantity)
			continue
		}
		item.Quantity = l.addCapped(0, item.Quantity)
		l.items = append(l.items, item)
	}
	l.recompute()
}

// Items 返回行副本，顺序与加入顺序一致
func (l *Ledger) Items() []LineItem {
	out := make([]LineItem, len(l.items))
	copy(out, l.items)
	return out
}

// Get 按行 ID 读取
func (l *Ledger) Get(id string) (LineItem, bool) {
	idx := l.indexOf(id)
	if idx < 0 {
		return LineItem{}, false
	}
	return l.items[idx], true
}

// Contains 判断组合键是否已在购物车中
func (l *Ledger) Contains(key Key) bool {
	return l.indexOfKey(key) >= 0
}

// MaxQuantity 单行数量上限
func (l *Ledger) MaxQuantity() int {
	return l.maxQuantity
}

// Len 行数
func (l *Ledger) Len() int {
	return len(l.items)
}

// TotalItems 商品件数合计
func (l *Ledger) TotalItems() int {
	return l.totalItems
}

// TotalPrice 金额合计
func (l *Ledger) TotalPrice() decimal.Decimal {
	return l.totalPrice
}

func (l *Ledger) indexOf(id string) int {
	for i := range l.items {
		if l.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (l *Ledger) indexOfKey(key Key) int {
	for i := range l.items {
		if l.items[i].Key() == key {
			return i
		}
	}
	return -1
}

// addCapped 返回 current + delta，结果不超过上限；比较前不做加法，避免溢出
func (l *Ledger) addCapped(current, delta int) int {
	if current >= l.maxQuantity || delta >= l.maxQuantity-current {
		return l.maxQuantity
	}
	return current + delta
}

func (l *Ledger) recompute() {
	count := 0
	total := decimal.Zero
	for _, item := range l.items {
		count += item.Quantity
		total = total.Add(item.Subtotal())
	}
	l.totalItems = count
	l.totalPrice = total
}
