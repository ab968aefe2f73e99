package cart

import "context"

// Store 购物车快照存储。只保存行数据，合计在恢复时重新计算。
type Store interface {
	Load(ctx context.Context, owner string) ([]LineItem, error)
	Save(ctx context.Context, owner string, items []LineItem) error
	Delete(ctx context.Context, owner string) error
}

// Notifier 购物车展示层通知（加购后展开抽屉）
type Notifier interface {
	CartOpened(ctx context.Context, owner string)
}

// NotifierFunc 函数适配器
type NotifierFunc func(ctx context.Context, owner string)

// CartOpened 实现 Notifier
func (f NotifierFunc) CartOpened(ctx context.Context, owner string) {
	if f != nil {
		f(ctx, owner)
	}
}
