package catalog

import (
	"errors"
	"net/url"
	"testing"

	"github.com/shopspring/decimal"
)

func TestFromQueryParsesAllFields(t *testing.T) {
	values := url.Values{
		"category":  {" outerwear "},
		"brand":     {"Nordic"},
		"min_price": {"10"},
		"max_price": {"99.5"},
		"sizes":     {"S,M", "M"},
		"colors":    {"red"},
		"in_stock":  {"true"},
		"q":         {"linen"},
		"sort":      {"PRICE_DESC"},
		"page":      {"2"},
		"page_size": {"500"},
	}

	f, err := FromQuery(values)
	if err != nil {
		t.Fatalf("parse filter failed: %v", err)
	}
	if f.Category() != "outerwear" || f.Brand() != "Nordic" || f.Search() != "linen" {
		t.Fatalf("unexpected text fields: %q %q %q", f.Category(), f.Brand(), f.Search())
	}
	if got := f.Sizes(); len(got) != 2 || got[0] != "S" || got[1] != "M" {
		t.Fatalf("unexpected sizes %v", got)
	}
	if got := f.Colors(); len(got) != 1 || got[0] != "red" {
		t.Fatalf("unexpected colors %v", got)
	}
	if !f.InStockOnly() {
		t.Fatalf("expected in stock only")
	}
	price := f.Price()
	if price.Min == nil || !price.Min.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("unexpected min price %v", price.Min)
	}
	if price.Max == nil || !price.Max.Equal(decimal.RequireFromString("99.5")) {
		t.Fatalf("unexpected max price %v", price.Max)
	}
	if f.Sort() != SortPriceDesc {
		t.Fatalf("unexpected sort %s", f.Sort())
	}
	if f.Page() != 2 || f.PageSize() != maxPageSize {
		t.Fatalf("unexpected paging %d/%d", f.Page(), f.PageSize())
	}
}

func TestFromQueryDefaults(t *testing.T) {
	f, err := FromQuery(url.Values{})
	if err != nil {
		t.Fatalf("parse empty filter failed: %v", err)
	}
	if f.Sort() != SortFeatured || f.Page() != 1 || f.PageSize() != defaultPageSize {
		t.Fatalf("unexpected defaults: %+v", f)
	}
	if !f.Price().IsZero() || f.Sizes() != nil {
		t.Fatalf("expected empty criteria")
	}
}

func TestFromQueryRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name   string
		values url.Values
		want   error
	}{
		{name: "sort", values: url.Values{"sort": {"cheapest"}}, want: ErrInvalidSort},
		{name: "inverted range", values: url.Values{"min_price": {"50"}, "max_price": {"10"}}, want: ErrInvalidPriceRange},
		{name: "negative price", values: url.Values{"min_price": {"-1"}}, want: ErrInvalidPriceRange},
		{name: "bad number", values: url.Values{"max_price": {"ten"}}, want: ErrInvalidPriceRange},
		{name: "page", values: url.Values{"page": {"0"}}, want: ErrInvalidPage},
	}
	for _, tc := range cases {
		if _, err := FromQuery(tc.values); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestSetSizesDropsBlanksAndDuplicates(t *testing.T) {
	f := NewFilter()
	f.SetSizes([]string{" ", "M", "M", "L "})
	if got := f.Sizes(); len(got) != 2 || got[0] != "M" || got[1] != "L" {
		t.Fatalf("unexpected sizes %v", got)
	}
	f.SetSizes(nil)
	if f.Sizes() != nil {
		t.Fatalf("expected sizes cleared")
	}
}
