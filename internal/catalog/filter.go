// Package catalog 定义商品目录的筛选条件。
//
// 每个筛选维度都有独立的类型和 setter，调用方不能以任意键值对修改筛选器。
package catalog

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// SortOrder 排序方式
type SortOrder string

const (
	SortFeatured  SortOrder = "featured"
	SortPriceAsc  SortOrder = "price_asc"
	SortPriceDesc SortOrder = "price_desc"
	SortRating    SortOrder = "rating"
	SortNewest    SortOrder = "newest"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

var (
	ErrInvalidSort       = errors.New("invalid sort order")
	ErrInvalidPriceRange = errors.New("invalid price range")
	ErrInvalidPage       = errors.New("invalid page")
)

// PriceRange 价格区间，nil 端表示不限
type PriceRange struct {
	Min *decimal.Decimal
	Max *decimal.Decimal
}

// IsZero 是否未设置
func (r PriceRange) IsZero() bool {
	return r.Min == nil && r.Max == nil
}

// Filter 目录筛选条件
type Filter struct {
	category    string
	brand       string
	price       PriceRange
	sizes       []string
	colors      []string
	inStockOnly bool
	search      string
	sort        SortOrder
	page        int
	pageSize    int
}

// NewFilter 创建默认筛选条件
func NewFilter() Filter {
	return Filter{sort: SortFeatured, page: 1, pageSize: defaultPageSize}
}

// SetCategory 设置分类，空串表示全部
func (f *Filter) SetCategory(category string) {
	f.category = strings.TrimSpace(category)
}

// SetBrand 设置品牌，空串表示全部
func (f *Filter) SetBrand(brand string) {
	f.brand = strings.TrimSpace(brand)
}

// SetPriceRange 设置价格区间
func (f *Filter) SetPriceRange(r PriceRange) error {
	if r.Min != nil && r.Min.IsNegative() {
		return ErrInvalidPriceRange
	}
	if r.Max != nil && r.Max.IsNegative() {
		return ErrInvalidPriceRange
	}
	if r.Min != nil && r.Max != nil && r.Min.GreaterThan(*r.Max) {
		return ErrInvalidPriceRange
	}
	f.price = r
	return nil
}

// SetSizes 设置尺码集合
func (f *Filter) SetSizes(sizes []string) {
	f.sizes = normalizeCodes(sizes)
}

// SetColors 设置颜色集合
func (f *Filter) SetColors(colors []string) {
	f.colors = normalizeCodes(colors)
}

// SetInStockOnly 仅显示有货
func (f *Filter) SetInStockOnly(only bool) {
	f.inStockOnly = only
}

// SetSearch 设置搜索词
func (f *Filter) SetSearch(search string) {
	f.search = strings.TrimSpace(search)
}

// SetSort 设置排序
func (f *Filter) SetSort(sort SortOrder) error {
	switch sort {
	case SortFeatured, SortPriceAsc, SortPriceDesc, SortRating, SortNewest:
		f.sort = sort
		return nil
	case "":
		f.sort = SortFeatured
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrInvalidSort, sort)
	}
}

// SetPage 设置分页
func (f *Filter) SetPage(page, pageSize int) error {
	if page < 1 || pageSize < 0 {
		return ErrInvalidPage
	}
	if pageSize == 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	f.page = page
	f.pageSize = pageSize
	return nil
}

func (f Filter) Category() string  { return f.category }
func (f Filter) Brand() string     { return f.brand }
func (f Filter) Price() PriceRange { return f.price }
func (f Filter) Sizes() []string   { return append([]string(nil), f.sizes...) }
func (f Filter) Colors() []string  { return append([]string(nil), f.colors...) }
func (f Filter) InStockOnly() bool { return f.inStockOnly }
func (f Filter) Search() string    { return f.search }
func (f Filter) Sort() SortOrder   { return f.sort }
func (f Filter) Page() int         { return f.page }
func (f Filter) PageSize() int     { return f.pageSize }

// FromQuery 从 URL 查询参数解析筛选条件
//
//	category, brand, min_price, max_price, sizes=S,M, colors=red, in_stock=true,
//	q, sort, page, page_size
func FromQuery(values url.Values) (Filter, error) {
	f := NewFilter()
	f.SetCategory(values.Get("category"))
	f.SetBrand(values.Get("brand"))
	f.SetSearch(values.Get("q"))
	f.SetSizes(splitList(values["sizes"]))
	f.SetColors(splitList(values["colors"]))

	if raw := strings.TrimSpace(values.Get("in_stock")); raw != "" {
		only, err := strconv.ParseBool(raw)
		if err != nil {
			return f, fmt.Errorf("invalid in_stock: %w", err)
		}
		f.SetInStockOnly(only)
	}

	var r PriceRange
	for key, target := range map[string]**decimal.Decimal{"min_price": &r.Min, "max_price": &r.Max} {
		raw := strings.TrimSpace(values.Get(key))
		if raw == "" {
			continue
		}
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return f, fmt.Errorf("%w: %s", ErrInvalidPriceRange, key)
		}
		*target = &d
	}
	if err := f.SetPriceRange(r); err != nil {
		return f, err
	}

	if err := f.SetSort(SortOrder(strings.ToLower(strings.TrimSpace(values.Get("sort"))))); err != nil {
		return f, err
	}

	page, pageSize := 1, 0
	if raw := strings.TrimSpace(values.Get("page")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return f, ErrInvalidPage
		}
		page = n
	}
	if raw := strings.TrimSpace(values.Get("page_size")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return f, ErrInvalidPage
		}
		pageSize = n
	}
	if err := f.SetPage(page, pageSize); err != nil {
		return f, err
	}
	return f, nil
}

func splitList(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		out = append(out, strings.Split(item, ",")...)
	}
	return out
}

func normalizeCodes(codes []string) []string {
	seen := make(map[string]struct{}, len(codes))
	out := make([]string, 0, len(codes))
	for _, code := range codes {
		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		out = append(out, code)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
