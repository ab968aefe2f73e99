package cart

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Key 购物车行的组合键：商品 + 尺码 + 颜色
type Key struct {
	ProductID uint   `json:"product_id"`
	SizeID    string `json:"size_id"`
	ColorID   string `json:"color_id"`
}

// String 返回行 ID，格式为 "<商品ID>-<尺码>-<颜色>"。
// 尺码与颜色中字母、数字、"." 与 "_" 以外的字节写作 "~XX"（大写十六进制），
// 行 ID 只含 URL 非保留字符，放进路径参数后解码前后一致。
func (k Key) String() string {
	var b strings.Builder
	b.WriteString(strconv.FormatUint(uint64(k.ProductID), 10))
	b.WriteByte('-')
	writeKeyPart(&b, k.SizeID)
	b.WriteByte('-')
	writeKeyPart(&b, k.ColorID)
	return b.String()
}

const upperHex = "0123456789ABCDEF"

func writeKeyPart(b *strings.Builder, part string) {
	for i := 0; i < len(part); i++ {
		c := part[i]
		if isKeyPartByte(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('~')
		b.WriteByte(upperHex[c>>4])
		b.WriteByte(upperHex[c&0x0F])
	}
}

func isKeyPartByte(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '.' || c == '_':
		return true
	}
	return false
}

// Variant 规格项（尺码或颜色）
type Variant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ProductSnapshot 加购时的商品只读副本，账本不会回查目录
type ProductSnapshot struct {
	ID     uint            `json:"id"`
	Slug   string          `json:"slug,omitempty"`
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
	Image  string          `json:"image,omitempty"`
	Sizes  []Variant       `json:"sizes,omitempty"`
	Colors []Variant       `json:"colors,omitempty"`
}

// FindSize 按 ID 查找尺码
func (p ProductSnapshot) FindSize(id string) (Variant, bool) {
	return findVariant(p.Sizes, id)
}

// FindColor 按 ID 查找颜色
func (p ProductSnapshot) FindColor(id string) (Variant, bool) {
	return findVariant(p.Colors, id)
}

func findVariant(list []Variant, id string) (Variant, bool) {
	for _, v := range list {
		if v.ID == id {
			return v, true
		}
	}
	return Variant{}, false
}

// LineItem 购物车行
type LineItem struct {
	ID            string          `json:"id"`
	Product       ProductSnapshot `json:"product"`
	Quantity      int             `json:"quantity"`
	SelectedSize  Variant         `json:"selected_size"`
	SelectedColor Variant         `json:"selected_color"`
	AddedAt       time.Time       `json:"added_at"`
}

// Key 返回行的组合键
func (i LineItem) Key() Key {
	return Key{ProductID: i.Product.ID, SizeID: i.SelectedSize.ID, ColorID: i.SelectedColor.ID}
}

// Subtotal 行小计
func (i LineItem) Subtotal() decimal.Decimal {
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
