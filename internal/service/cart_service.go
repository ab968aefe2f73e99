package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/vitrine-next/internal/cart"
	"github.com/vitrine-next/internal/logger"
	"github.com/vitrine-next/internal/models"
	"github.com/vitrine-next/internal/repository"
)

// CartView 购物车响应
type CartView struct {
	Items      []cart.LineItem `json:"items"`
	TotalItems int             `json:"total_items"`
	TotalPrice models.Money    `json:"total_price"`
	IsOpen     bool            `json:"is_open"`
	// MaxLineQuantity 单行数量上限，累加超出时该行停在上限
	MaxLineQuantity int `json:"max_line_quantity"`
}

// CartDrawer 购物车抽屉状态：加购通知 + 展开查询
type CartDrawer interface {
	cart.Notifier
	IsOpen(ctx context.Context, owner string) (bool, error)
	Close(ctx context.Context, owner string) error
}

// CartServiceOptions 购物车服务可选项
type CartServiceOptions struct {
	Drawer    CartDrawer
	OpenOnAdd bool
	Ledger    []cart.Option
}

// CartService 购物车服务。每次调用从快照恢复账本、执行一次变更、再写回快照。
type CartService struct {
	store       cart.Store
	productRepo repository.ProductRepository
	drawer      CartDrawer
	openOnAdd   bool
	ledgerOpts  []cart.Option
	maxQuantity int

	locks *ownerLocks
}

// NewCartService 创建购物车服务
func NewCartService(store cart.Store, productRepo repository.ProductRepository, opts CartServiceOptions) *CartService {
	return &CartService{
		store:       store,
		productRepo: productRepo,
		drawer:      opts.Drawer,
		openOnAdd:   opts.OpenOnAdd,
		ledgerOpts:  opts.Ledger,
		maxQuantity: cart.NewLedger(opts.Ledger...).MaxQuantity(),
		locks:       newOwnerLocks(),
	}
}

// Get 获取购物车
func (s *CartService) Get(ctx context.Context, owner string) (*CartView, error) {
	unlock, err := s.lock(owner)
	if err != nil {
		return nil, err
	}
	defer unlock()

	ledger, err := s.load(ctx, owner)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, owner, ledger), nil
}

// MaxLineQuantity 单行数量上限
func (s *CartService) MaxLineQuantity() int {
	return s.maxQuantity
}

// AddItem 加购，尺码或颜色不匹配时购物车保持不变；单次数量超过上限返回 ErrCartQuantityExceeded
func (s *CartService) AddItem(ctx context.Context, owner string, productID uint, sizeID, colorID string, quantity int) (*CartView, error) {
	view, _, err := s.addItem(ctx, owner, productID, sizeID, colorID, quantity)
	return view, err
}

func (s *CartService) addItem(ctx context.Context, owner string, productID uint, sizeID, colorID string, quantity int) (*CartView, bool, error) {
	if quantity > s.maxQuantity {
		return nil, false, ErrCartQuantityExceeded
	}
	product, err := s.activeProduct(productID)
	if err != nil {
		return nil, false, err
	}
	snapshot := productSnapshot(product)
	view, changed, err := s.mutate(ctx, owner, func(l *cart.Ledger) bool {
		return l.AddItem(snapshot, strings.TrimSpace(sizeID), strings.TrimSpace(colorID), quantity)
	})
	if err != nil {
		return nil, false, err
	}
	if changed && s.openOnAdd && s.drawer != nil {
		s.drawer.CartOpened(ctx, owner)
		view.IsOpen = true
	}
	return view, changed, nil
}

// RemoveItem 删除行，行不存在时不做改动
func (s *CartService) RemoveItem(ctx context.Context, owner, lineID string) (*CartView, error) {
	view, _, err := s.mutate(ctx, owner, func(l *cart.Ledger) bool {
		return l.RemoveItem(lineID)
	})
	return view, err
}

// UpdateQuantity 设置行数量，quantity <= 0 时删除该行，超过上限返回 ErrCartQuantityExceeded
func (s *CartService) UpdateQuantity(ctx context.Context, owner, lineID string, quantity int) (*CartView, error) {
	if quantity > s.maxQuantity {
		return nil, ErrCartQuantityExceeded
	}
	view, _, err := s.mutate(ctx, owner, func(l *cart.Ledger) bool {
		return l.UpdateQuantity(lineID, quantity)
	})
	return view, err
}

// Clear 清空购物车
func (s *CartService) Clear(ctx context.Context, owner string) (*CartView, error) {
	unlock, err := s.lock(owner)
	if err != nil {
		return nil, err
	}
	defer unlock()
	return s.clearLocked(ctx, owner), nil
}

// Close 收起购物车抽屉
func (s *CartService) Close(ctx context.Context, owner string) (*CartView, error) {
	if s.drawer != nil {
		if err := s.drawer.Close(ctx, owner); err != nil {
			logger.Warnw("cart_drawer_close_failed", "owner", owner, "error", err)
		}
	}
	return s.Get(ctx, owner)
}

func (s *CartService) clearLocked(ctx context.Context, owner string) *CartView {
	ledger := cart.NewLedger(s.ledgerOpts...)
	if err := s.store.Delete(ctx, owner); err != nil {
		logger.Warnw("cart_persist_failed", "owner", owner, "op", "clear", "error", err)
	}
	return s.view(ctx, owner, ledger)
}

func (s *CartService) mutate(ctx context.Context, owner string, apply func(*cart.Ledger) bool) (*CartView, bool, error) {
	unlock, err := s.lock(owner)
	if err != nil {
		return nil, false, err
	}
	defer unlock()

	ledger, err := s.load(ctx, owner)
	if err != nil {
		return nil, false, err
	}
	changed := apply(ledger)
	if changed {
		s.persist(ctx, owner, ledger)
	}
	return s.view(ctx, owner, ledger), changed, nil
}

// load 从快照恢复账本，读取失败时返回错误而不是当作空购物车
func (s *CartService) load(ctx context.Context, owner string) (*cart.Ledger, error) {
	items, err := s.store.Load(ctx, owner)
	if err != nil {
		logger.Errorw("cart_load_failed", "owner", owner, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrCartLoadFailed, err)
	}
	ledger := cart.NewLedger(s.ledgerOpts...)
	ledger.Restore(items)
	return ledger, nil
}

// persist 写回快照，失败只记录日志，不影响本次结果
func (s *CartService) persist(ctx context.Context, owner string, ledger *cart.Ledger) {
	if err := s.store.Save(ctx, owner, ledger.Items()); err != nil {
		logger.Warnw("cart_persist_failed", "owner", owner, "op", "save", "error", err)
	}
}

func (s *CartService) view(ctx context.Context, owner string, ledger *cart.Ledger) *CartView {
	view := &CartView{
		Items:      ledger.Items(),
		TotalItems: ledger.TotalItems(),
		TotalPrice: models.NewMoneyFromDecimal(ledger.TotalPrice()),

		MaxLineQuantity: ledger.MaxQuantity(),
	}
	if s.drawer != nil {
		open, err := s.drawer.IsOpen(ctx, owner)
		if err != nil {
			logger.Warnw("cart_drawer_state_failed", "owner", owner, "error", err)
		}
		view.IsOpen = open
	}
	return view
}

func (s *CartService) activeProduct(productID uint) (*models.Product, error) {
	if productID == 0 {
		return nil, ErrProductNotFound
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if !product.IsActive {
		return nil, ErrProductNotAvailable
	}
	return product, nil
}

// lock 同一持有者的读改写串行执行
func (s *CartService) lock(owner string) (func(), error) {
	if strings.TrimSpace(owner) == "" {
		return nil, ErrOwnerRequired
	}
	return s.locks.acquire(owner), nil
}
