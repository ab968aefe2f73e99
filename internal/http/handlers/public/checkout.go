package public

import (
	"github.com/vitrine-next/internal/http/response"
	"github.com/vitrine-next/internal/service"

	"github.com/gin-gonic/gin"
)

// Checkout 提交订单
func (h *Handler) Checkout(c *gin.Context) {
	owner, ok := getOwner(c)
	if !ok {
		return
	}
	var req service.CheckoutInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	order, err := h.CheckoutService.Checkout(c.Request.Context(), owner, req)
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	response.Success(c, order)
}

// ListOrders 我的订单
func (h *Handler) ListOrders(c *gin.Context) {
	owner, ok := getOwner(c)
	if !ok {
		return
	}
	page, pageSize := parsePagination(c)
	orders, total, err := h.CheckoutService.ListOrders(owner, page, pageSize)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	response.Page(c, orders, page, pageSize, total)
}

// GetOrder 订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	owner, ok := getOwner(c)
	if !ok {
		return
	}
	order, err := h.CheckoutService.GetOrder(owner, c.Param("order_no"))
	if err != nil {
		respondOrderError(c, err)
		return
	}
	response.Success(c, order)
}
