package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/vitrine-next/internal/cart"
	"github.com/vitrine-next/internal/logger"
)

func cartSnapshotKey(owner string) string {
	return fmt.Sprintf("cart:snapshot:%s", owner)
}

func cartDrawerKey(owner string) string {
	return fmt.Sprintf("cart:drawer:%s", owner)
}

// CartStore 基于 Redis 的购物车快照存储
type CartStore struct {
	ttl time.Duration
}

var _ cart.Store = (*CartStore)(nil)

// NewCartStore 创建 Redis 快照存储，ttl 为 0 表示不过期
func NewCartStore(ttl time.Duration) *CartStore {
	return &CartStore{ttl: ttl}
}

// Load 读取快照，未命中时返回空列表
func (s *CartStore) Load(ctx context.Context, owner string) ([]cart.LineItem, error) {
	var items []cart.LineItem
	found, err := GetJSON(ctx, cartSnapshotKey(owner), &items)
	if err != nil {
		return nil, err
	}
	if !found || items == nil {
		return []cart.LineItem{}, nil
	}
	return items, nil
}

// Save 覆盖写入快照，每次写入刷新过期时间
func (s *CartStore) Save(ctx context.Context, owner string, items []cart.LineItem) error {
	if items == nil {
		items = []cart.LineItem{}
	}
	return SetJSON(ctx, cartSnapshotKey(owner), items, s.ttl)
}

// Delete 删除快照
func (s *CartStore) Delete(ctx context.Context, owner string) error {
	return Del(ctx, cartSnapshotKey(owner))
}

// DrawerState 购物车抽屉展开状态。Redis 未启用时退化为进程内存储。
type DrawerState struct {
	ttl   time.Duration
	mu    sync.Mutex
	local map[string]bool
}

var _ cart.Notifier = (*DrawerState)(nil)

// NewDrawerState 创建抽屉状态存储
func NewDrawerState(ttl time.Duration) *DrawerState {
	return &DrawerState{ttl: ttl, local: make(map[string]bool)}
}

// CartOpened 加购通知：展开抽屉
func (d *DrawerState) CartOpened(ctx context.Context, owner string) {
	if err := d.Open(ctx, owner); err != nil {
		logger.Warnw("cart_drawer_open_failed", "owner", owner, "error", err)
	}
}

// Open 展开抽屉
func (d *DrawerState) Open(ctx context.Context, owner string) error {
	if Enabled() {
		return SetJSON(ctx, cartDrawerKey(owner), true, d.ttl)
	}
	d.mu.Lock()
	d.local[owner] = true
	d.mu.Unlock()
	return nil
}

// Close 收起抽屉
func (d *DrawerState) Close(ctx context.Context, owner string) error {
	if Enabled() {
		return Del(ctx, cartDrawerKey(owner))
	}
	d.mu.Lock()
	delete(d.local, owner)
	d.mu.Unlock()
	return nil
}

// IsOpen 查询抽屉是否展开
func (d *DrawerState) IsOpen(ctx context.Context, owner string) (bool, error) {
	if Enabled() {
		var open bool
		found, err := GetJSON(ctx, cartDrawerKey(owner), &open)
		if err != nil {
			return false, err
		}
		return found && open, nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.local[owner], nil
}
