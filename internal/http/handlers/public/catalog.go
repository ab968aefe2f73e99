package public

import (
	"github.com/vitrine-next/internal/catalog"
	"github.com/vitrine-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ListProducts 商品列表，支持分类、品牌、价格区间、尺码、颜色、库存、关键词与排序筛选
func (h *Handler) ListProducts(c *gin.Context) {
	filter, err := catalog.FromQuery(c.Request.URL.Query())
	if err != nil {
		respondWithMappedError(c, err, catalogFilterErrorRules, response.CodeBadRequest, "error.catalog_filter_invalid")
		return
	}
	products, total, err := h.CatalogService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}
	response.Page(c, products, filter.Page(), filter.PageSize(), total)
}

// GetProduct 商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.CatalogService.GetBySlug(c.Param("slug"))
	if err != nil {
		respondWithMappedError(c, err, productErrorRules, response.CodeInternal, "error.product_fetch_failed")
		return
	}
	response.Success(c, product)
}
