package public

import (
	"github.com/vitrine-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// AddCartItemRequest 加购请求，quantity 缺省为 1
type AddCartItemRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Size      string `json:"size" binding:"required"`
	Color     string `json:"color" binding:"required"`
	Quantity  int    `json:"quantity" binding:"max=999"`
}

// UpdateCartItemRequest 修改数量请求，quantity <= 0 删除该行
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required,max=999"`
}

// GetCart 获取购物车
func (h *Handler) GetCart(c *gin.Context) {
	owner, ok := getOwner(c)
	if !ok {
		return
	}
	view, err := h.CartService.Get(c.Request.Context(), owner)
	if err != nil {
		respondWithMappedError(c, err, ownerErrorRules, response.CodeInternal, "error.cart_fetch_failed")
		return
	}
	response.Success(c, view)
}

// AddCartItem 加购
func (h *Handler) AddCartItem(c *gin.Context) {
	owner, ok := getOwner(c)
	if !ok {
		return
	}
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	view, err := h.CartService.AddItem(c.Request.Context(), owner, req.ProductID, req.Size, req.Color, req.Quantity)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, view)
}

// UpdateCartItem 修改行数量
func (h *Handler) UpdateCartItem(c *gin.Context) {
	owner, ok := getOwner(c)
	if !ok {
		return
	}
	lineID := c.Param("id")
	if lineID == "" {
		respondError(c, response.CodeBadRequest, "error.cart_line_invalid", nil)
		return
	}
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Quantity == nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	view, err := h.CartService.UpdateQuantity(c.Request.Context(), owner, lineID, *req.Quantity)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, view)
}

// RemoveCartItem 删除行
func (h *Handler) RemoveCartItem(c *gin.Context) {
	owner, ok := getOwner(c)
	if !ok {
		return
	}
	view, err := h.CartService.RemoveItem(c.Request.Context(), owner, c.Param("id"))
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, view)
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	owner, ok := getOwner(c)
	if !ok {
		return
	}
	view, err := h.CartService.Clear(c.Request.Context(), owner)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, view)
}

// CloseCart 收起购物车抽屉
func (h *Handler) CloseCart(c *gin.Context) {
	owner, ok := getOwner(c)
	if !ok {
		return
	}
	view, err := h.CartService.Close(c.Request.Context(), owner)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, view)
}
