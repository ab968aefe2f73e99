package service

import (
	"context"
	"strings"

	"github.com/vitrine-next/internal/logger"
	"github.com/vitrine-next/internal/models"
	"github.com/vitrine-next/internal/repository"
)

// WishlistService 心愿单服务
type WishlistService struct {
	wishlistRepo repository.WishlistRepository
	productRepo  repository.ProductRepository
	cartService  *CartService
}

// NewWishlistService 创建心愿单服务
func NewWishlistService(wishlistRepo repository.WishlistRepository, productRepo repository.ProductRepository, cartService *CartService) *WishlistService {
	return &WishlistService{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
		cartService:  cartService,
	}
}

// List 获取心愿单，已下架商品不返回
func (s *WishlistService) List(owner string) ([]models.WishlistItem, error) {
	if strings.TrimSpace(owner) == "" {
		return nil, ErrOwnerRequired
	}
	items, err := s.wishlistRepo.ListByOwner(owner)
	if err != nil {
		return nil, err
	}
	result := make([]models.WishlistItem, 0, len(items))
	for _, item := range items {
		if item.Product == nil || !item.Product.IsActive {
			continue
		}
		result = append(result, item)
	}
	return result, nil
}

// Add 加入心愿单，重复加入无副作用
func (s *WishlistService) Add(owner string, productID uint) error {
	if strings.TrimSpace(owner) == "" {
		return ErrOwnerRequired
	}
	if _, err := s.activeProduct(productID); err != nil {
		return err
	}
	return s.wishlistRepo.Add(owner, productID)
}

// Remove 移出心愿单
func (s *WishlistService) Remove(owner string, productID uint) error {
	if strings.TrimSpace(owner) == "" {
		return ErrOwnerRequired
	}
	return s.wishlistRepo.Remove(owner, productID)
}

// IsInWishlist 判断是否已收藏
func (s *WishlistService) IsInWishlist(owner string, productID uint) (bool, error) {
	if strings.TrimSpace(owner) == "" {
		return false, ErrOwnerRequired
	}
	return s.wishlistRepo.Exists(owner, productID)
}

// Toggle 切换收藏状态，返回切换后的状态
func (s *WishlistService) Toggle(owner string, productID uint) (bool, error) {
	exists, err := s.IsInWishlist(owner, productID)
	if err != nil {
		return false, err
	}
	if exists {
		return false, s.Remove(owner, productID)
	}
	if err := s.Add(owner, productID); err != nil {
		return false, err
	}
	return true, nil
}

// MoveToCart 把收藏的商品按指定规格加入购物车，加购成功后移出心愿单
func (s *WishlistService) MoveToCart(ctx context.Context, owner string, productID uint, sizeID, colorID string, quantity int) (*CartView, bool, error) {
	exists, err := s.IsInWishlist(owner, productID)
	if err != nil {
		return nil, false, err
	}
	if !exists {
		return nil, false, ErrProductNotFound
	}
	view, added, err := s.cartService.addItem(ctx, owner, productID, sizeID, colorID, quantity)
	if err != nil {
		return nil, false, err
	}
	if !added {
		return view, false, nil
	}
	if err := s.wishlistRepo.Remove(owner, productID); err != nil {
		logger.Warnw("wishlist_remove_after_move_failed", "owner", owner, "product_id", productID, "error", err)
	}
	return view, true, nil
}

func (s *WishlistService) activeProduct(productID uint) (*models.Product, error) {
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
