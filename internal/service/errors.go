package service

import "errors"

// 业务错误，由 handler 通过 errors.Is 映射为响应码
var (
	ErrProductNotFound      = errors.New("product not found")
	ErrProductNotAvailable  = errors.New("product not available")
	ErrCartEmpty            = errors.New("cart is empty")
	ErrCartLoadFailed       = errors.New("cart load failed")
	ErrCartQuantityExceeded = errors.New("cart line quantity exceeds limit")
	ErrCheckoutInvalid      = errors.New("checkout input invalid")
	ErrOrderNotFound        = errors.New("order not found")
	ErrOrderStatusInvalid   = errors.New("order status invalid")
	ErrSessionInvalid       = errors.New("session token invalid")
	ErrSessionExpired       = errors.New("session token expired")
	ErrOwnerRequired        = errors.New("session owner required")
)
