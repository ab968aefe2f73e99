package public

import (
	"errors"

	"github.com/vitrine-next/internal/catalog"
	"github.com/vitrine-next/internal/http/response"
	"github.com/vitrine-next/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

var ownerErrorRules = []mappedHandlerError{
	{target: service.ErrOwnerRequired, code: response.CodeUnauthorized, key: "error.unauthorized"},
}

var productErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, code: response.CodeNotFound, key: "error.product_not_found"},
	{target: service.ErrProductNotAvailable, code: response.CodeBadRequest, key: "error.product_not_available"},
}

var catalogFilterErrorRules = []mappedHandlerError{
	{target: catalog.ErrInvalidSort, code: response.CodeBadRequest, key: "error.catalog_filter_invalid"},
	{target: catalog.ErrInvalidPriceRange, code: response.CodeBadRequest, key: "error.catalog_filter_invalid"},
	{target: catalog.ErrInvalidPage, code: response.CodeBadRequest, key: "error.catalog_filter_invalid"},
}

var cartErrorRules = concatMappedHandlerErrors(ownerErrorRules, productErrorRules, []mappedHandlerError{
	{target: service.ErrCartQuantityExceeded, code: response.CodeBadRequest, key: "error.cart_quantity_exceeded"},
})

var checkoutErrorRules = concatMappedHandlerErrors(ownerErrorRules, []mappedHandlerError{
	{target: service.ErrCheckoutInvalid, code: response.CodeBadRequest, key: "error.checkout_invalid"},
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, key: "error.cart_empty"},
})

var orderErrorRules = concatMappedHandlerErrors(ownerErrorRules, []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, key: "error.order_not_found"},
})

func respondCartError(c *gin.Context, err error) {
	respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.cart_update_failed")
}

func respondWishlistError(c *gin.Context, err error) {
	respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.wishlist_update_failed")
}

func respondCheckoutError(c *gin.Context, err error) {
	respondWithMappedError(c, err, checkoutErrorRules, response.CodeInternal, "error.order_create_failed")
}

func respondOrderError(c *gin.Context, err error) {
	respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, "error.order_fetch_failed")
}
