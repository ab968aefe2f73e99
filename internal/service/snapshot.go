package service

import (
	"github.com/vitrine-next/internal/cart"
	"github.com/vitrine-next/internal/models"
)

// productSnapshot 把商品转换为账本使用的只读快照
func productSnapshot(product *models.Product) cart.ProductSnapshot {
	snapshot := cart.ProductSnapshot{
		ID:    product.ID,
		Slug:  product.Slug,
		Name:  product.Name,
		Price: product.Price.Decimal,
		Image: product.Images.First(),
	}
	if len(product.Sizes) > 0 {
		snapshot.Sizes = make([]cart.Variant, 0, len(product.Sizes))
		for _, size := range product.Sizes {
			snapshot.Sizes = append(snapshot.Sizes, cart.Variant{ID: size.Code, Name: size.Name})
		}
	}
	if len(product.Colors) > 0 {
		snapshot.Colors = make([]cart.Variant, 0, len(product.Colors))
		for _, color := range product.Colors {
			snapshot.Colors = append(snapshot.Colors, cart.Variant{ID: color.Code, Name: color.Name})
		}
	}
	return snapshot
}
