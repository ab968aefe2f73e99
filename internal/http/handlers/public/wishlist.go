package public

import (
	"github.com/vitrine-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// WishlistItemRequest 收藏请求
type WishlistItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// MoveToCartRequest 收藏转购物车请求
type MoveToCartRequest struct {
	Size     string `json:"size" binding:"required"`
	Color    string `json:"color" binding:"required"`
	Quantity int    `json:"quantity"`
}

// GetWishlist 获取心愿单
func (h *Handler) GetWishlist(c *gin.Context) {
	owner, ok := getOwner(c)
	if !ok {
		return
	}
	items, err := h.WishlistService.List(owner)
	if err != nil {
		respondWithMappedError(c, err, ownerErrorRules, response.CodeInternal, "error.wishlist_fetch_failed")
		return
	}
	response.Success(c, gin.H{"items": items})
}

// AddWishlistItem 加入心愿单
func (h *Handler) AddWishlistItem(c *gin.Context) {
	owner, ok := getOwner(c)
	if !ok {
		return
	}
	var req WishlistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	if err := h.WishlistService.Add(owner, req.ProductID); err != nil {
		respondWishlistError(c, err)
		return
	}
	response.Success(c, gin.H{"product_id": req.ProductID, "in_wishlist": true})
}

// RemoveWishlistItem 移出心愿单
func (h *Handler) RemoveWishlistItem(c *gin.Context) {
	owner, ok := getOwner(c)
	if !ok {
		return
	}
	productID, ok := parseUintParam(c, "product_id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	if err := h.WishlistService.Remove(owner, productID); err != nil {
		respondWishlistError(c, err)
		return
	}
	response.Success(c, gin.H{"product_id": productID, "in_wishlist": false})
}

// ToggleWishlistItem 切换收藏状态
func (h *Handler) ToggleWishlistItem(c *gin.Context) {
	owner, ok := getOwner(c)
	if !ok {
		return
	}
	productID, ok := parseUintParam(c, "product_id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	inWishlist, err := h.WishlistService.Toggle(owner, productID)
	if err != nil {
		respondWishlistError(c, err)
		return
	}
	response.Success(c, gin.H{"product_id": productID, "in_wishlist": inWishlist})
}

// MoveWishlistItemToCart 收藏转入购物车
func (h *Handler) MoveWishlistItemToCart(c *gin.Context) {
	owner, ok := getOwner(c)
	if !ok {
		return
	}
	productID, ok := parseUintParam(c, "product_id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	var req MoveToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	view, moved, err := h.WishlistService.MoveToCart(c.Request.Context(), owner, productID, req.Size, req.Color, req.Quantity)
	if err != nil {
		respondWishlistError(c, err)
		return
	}
	response.Success(c, gin.H{"moved": moved, "cart": view})
}
