package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fp(v float64) *float64 { return &v }

func testItems() []*Item {
	return []*Item{
		{ID: "blista", Name: "Blista Compact", Description: "cheap hatchback", Category: "compact", BasePrice: 999, Stock: 8},
		{ID: "bison", Name: "Bison", Description: "workhorse pickup", Category: "truck", BasePrice: 1001, Stock: 0},
		{ID: "sultan", Name: "Sultan RS", Description: "rally sedan", Category: "sports", BasePrice: 1000, Stock: 3},
		{ID: "futo", Name: "Futo", Description: "drift coupe", Category: "sports", BasePrice: 1000, Stock: 2},
	}
}

func ids(items []*Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestView(t *testing.T) {
	t.Parallel()

	t.Run("zero criteria returns everything price ordered", func(t *testing.T) {
		got := View(testItems(), Criteria{})
		assert.Equal(t, []string{"blista", "futo", "sultan", "bison"}, ids(got))
	})

	t.Run("fractional min bound floors", func(t *testing.T) {
		got := View(testItems(), Criteria{PriceMin: fp(999.4)})
		// effective floor 999 keeps the 999-priced item
		assert.Contains(t, ids(got), "blista")
	})

	t.Run("fractional max bound ceils", func(t *testing.T) {
		got := View(testItems(), Criteria{PriceMax: fp(1000.1)})
		// effective ceiling 1001 keeps the 1001-priced item
		assert.Contains(t, ids(got), "bison")
	})

	t.Run("category filter is set membership", func(t *testing.T) {
		got := View(testItems(), Criteria{Categories: []Category{"sports"}})
		assert.Equal(t, []string{"futo", "sultan"}, ids(got))
	})

	t.Run("search is case-insensitive over name and description", func(t *testing.T) {
		got := View(testItems(), Criteria{Search: "SULTAN"})
		assert.Equal(t, []string{"sultan"}, ids(got))

		got = View(testItems(), Criteria{Search: "pickup"})
		assert.Equal(t, []string{"bison"}, ids(got))
	})

	t.Run("in-stock filter hides empty listings", func(t *testing.T) {
		got := View(testItems(), Criteria{InStockOnly: true})
		assert.NotContains(t, ids(got), "bison")
	})

	t.Run("equal prices tie-break by id ascending deterministically", func(t *testing.T) {
		first := ids(View(testItems(), Criteria{SortBy: SortByPrice, Order: OrderAsc}))
		for i := 0; i < 10; i++ {
			again := ids(View(testItems(), Criteria{SortBy: SortByPrice, Order: OrderAsc}))
			assert.Equal(t, first, again)
		}
		// futo before sultan at the shared price point
		assert.Equal(t, []string{"blista", "futo", "sultan", "bison"}, first)
	})

	t.Run("descending sort keeps id-ascending ties", func(t *testing.T) {
		got := View(testItems(), Criteria{SortBy: SortByPrice, Order: OrderDesc})
		assert.Equal(t, []string{"bison", "futo", "sultan", "blista"}, ids(got))
	})

	t.Run("sort by stock", func(t *testing.T) {
		got := View(testItems(), Criteria{SortBy: SortByStock, Order: OrderDesc})
		assert.Equal(t, "blista", got[0].ID)
	})

	t.Run("disabled items never appear", func(t *testing.T) {
		items := testItems()
		items[0].Disabled = true
		got := View(items, Criteria{})
		assert.NotContains(t, ids(got), "blista")
	})

	t.Run("input order is left untouched", func(t *testing.T) {
		items := testItems()
		_ = View(items, Criteria{SortBy: SortByName, Order: OrderDesc})
		assert.Equal(t, []string{"blista", "bison", "sultan", "futo"}, ids(items))
	})
}
