package response

// 错误消息表，key 与 handler 中使用的错误键一致
var messages = map[string]string{
	"error.bad_request":             "invalid request",
	"error.unauthorized":            "session required",
	"error.session_invalid":         "session token is invalid",
	"error.session_expired":         "session token has expired",
	"error.session_issue_failed":    "failed to issue session",
	"error.not_found":               "resource not found",
	"error.internal":                "internal server error",
	"error.product_not_found":       "product not found",
	"error.product_not_available":   "product is not available",
	"error.product_fetch_failed":    "failed to load products",
	"error.catalog_filter_invalid":  "invalid catalog filter",
	"error.cart_line_invalid":       "invalid cart line",
	"error.cart_fetch_failed":       "failed to load cart",
	"error.cart_update_failed":      "failed to update cart",
	"error.cart_empty":              "cart is empty",
	"error.cart_quantity_exceeded":  "quantity exceeds the per-line limit",
	"error.wishlist_fetch_failed":   "failed to load wishlist",
	"error.wishlist_update_failed":  "failed to update wishlist",
	"error.checkout_invalid":        "checkout details are incomplete",
	"error.order_create_failed":     "failed to place order",
	"error.order_not_found":         "order not found",
	"error.order_fetch_failed":      "failed to load orders",
	"error.service_unavailable":     "service unavailable",
	"error.too_many_requests":       "too many requests",
	"error.route_not_found":         "route not found",
	"error.method_not_allowed":      "method not allowed",
	"error.request_panic_recovered": "internal server error",
}

// Message 返回错误键对应的消息，未登记的键原样返回
func Message(key string) string {
	if msg, ok := messages[key]; ok {
		return msg
	}
	return key
}
