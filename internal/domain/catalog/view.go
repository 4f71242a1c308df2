package catalog

import (
	"math"
	"sort"
	"strings"
)

type SortField string

const (
	SortByPrice SortField = "price"
	SortByName  SortField = "name"
	SortByStock SortField = "stock"
)

type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// Criteria narrows and orders a catalog snapshot. The zero value selects
// every enabled item in price order.
type Criteria struct {
	Categories []Category
	// PriceMin is floored and PriceMax is ceiled to whole currency units, so
	// a fractional user-entered bound always becomes the more permissive one.
	PriceMin    *float64
	PriceMax    *float64
	Search      string
	InStockOnly bool
	SortBy      SortField
	Order       SortOrder
}

// View filters and orders a snapshot. It is pure: the input slice is never
// modified and items are not copied, so callers must pass cloned snapshots.
// Disabled items never appear in a view.
func View(items []*Item, c Criteria) []*Item {
	var (
		hasMin, hasMax bool
		min, max       int64
	)
	if c.PriceMin != nil {
		hasMin, min = true, int64(math.Floor(*c.PriceMin))
	}
	if c.PriceMax != nil {
		hasMax, max = true, int64(math.Ceil(*c.PriceMax))
	}

	var categories map[Category]struct{}
	if len(c.Categories) > 0 {
		categories = make(map[Category]struct{}, len(c.Categories))
		for _, cat := range c.Categories {
			categories[cat] = struct{}{}
		}
	}
	needle := strings.ToLower(c.Search)

	out := make([]*Item, 0, len(items))
	for _, item := range items {
		if item == nil || item.Disabled {
			continue
		}
		if categories != nil {
			if _, ok := categories[item.Category]; !ok {
				continue
			}
		}
		if hasMin && item.BasePrice < min {
			continue
		}
		if hasMax && item.BasePrice > max {
			continue
		}
		if c.InStockOnly && item.Stock <= 0 {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(item.Name), needle) &&
			!strings.Contains(strings.ToLower(item.Description), needle) {
			continue
		}
		out = append(out, item)
	}

	sortItems(out, c.SortBy, c.Order)
	return out
}

func sortItems(items []*Item, field SortField, order SortOrder) {
	desc := order == OrderDesc
	sort.SliceStable(items, func(a, b int) bool {
		var cmp int
		switch field {
		case SortByName:
			cmp = strings.Compare(items[a].Name, items[b].Name)
		case SortByStock:
			cmp = compareInt(items[a].Stock, items[b].Stock)
		default:
			cmp = compareInt64(items[a].BasePrice, items[b].BasePrice)
		}
		if cmp == 0 {
			// Ties always break by id ascending for deterministic paging.
			return items[a].ID < items[b].ID
		}
		if desc {
			return cmp > 0
		}
		return cmp < 0
	})
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
