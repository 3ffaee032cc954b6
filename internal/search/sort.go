package search

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"padelmania/internal/models"
)

const (
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortNameAsc   = "name_asc"
	SortNameDesc  = "name_desc"
)

// Sort orders products in place by key. Unknown or empty keys keep the
// catalog order. Ties keep their relative order.
func Sort(products []models.Product, key string) {
	switch key {
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price < products[j].Price })
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price > products[j].Price })
	case SortNameAsc, SortNameDesc:
		col := collate.New(language.Spanish, collate.IgnoreCase)
		desc := key == SortNameDesc
		sort.SliceStable(products, func(i, j int) bool {
			c := col.CompareString(products[i].Title, products[j].Title)
			if desc {
				return c > 0
			}
			return c < 0
		})
	}
}

func IsSortKey(key string) bool {
	switch key {
	case "", SortPriceAsc, SortPriceDesc, SortNameAsc, SortNameDesc:
		return true
	}
	return false
}
