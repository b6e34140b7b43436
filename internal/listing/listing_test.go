package listing

import (
	"strings"
	"testing"

	"daurulang/internal/model"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() []model.CatalogItem {
	plastik := model.Category{ID: "plastik", Name: "Plastik"}
	kertas := model.Category{ID: "kertas", Name: "Kertas"}
	logam := model.Category{ID: "logam", Name: "Logam"}

	return []model.CatalogItem{
		{ID: "1", Name: "Botol Plastik", Description: "Botol PET bekas minuman", Category: plastik, Price: model.PriceRange{Min: 1000, Max: 3000}, Unit: "kg"},
		{ID: "2", Name: "Kardus", Description: "Kardus bekas kemasan", Category: kertas, Price: model.PriceRange{Min: 800, Max: 1500}, Unit: "kg"},
		{ID: "3", Name: "Kaleng Aluminium", Description: "Kaleng minuman", Category: logam, Price: model.PriceRange{Min: 12000, Max: 15000}, Unit: "kg"},
		{ID: "4", Name: "Gelas Plastik", Description: "Gelas air mineral, bukan botol", Category: plastik, Price: model.PriceRange{Min: 1000, Max: 2500}, Unit: "kg"},
		{ID: "5", Name: "Koran", Description: "Kertas koran bekas", Category: kertas, Price: model.PriceRange{Min: 1500, Max: 2000}, Unit: "kg"},
	}
}

func ids(items []model.CatalogItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestApply_TextSearchAllCategories(t *testing.T) {
	got := Apply(testCatalog(), model.FilterState{Search: "Botol", Category: model.AllCategories, Sort: model.SortNameAsc})

	// "Gelas Plastik" matches through its description.
	assert.Equal(t, []string{"1", "4"}, ids(got))
	for _, it := range got {
		assert.True(t, containsFold(it.Name, "botol") || containsFold(it.Description, "botol"))
	}
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		category string
		expected []string
	}{
		{name: "Empty query and all sentinel keeps everything", query: "", category: model.AllCategories, expected: []string{"1", "2", "3", "4", "5"}},
		{name: "Empty category is treated as all", query: "", category: "", expected: []string{"1", "2", "3", "4", "5"}},
		{name: "Case-insensitive name match", query: "KARDUS", category: model.AllCategories, expected: []string{"2"}},
		{name: "Description match", query: "minuman", category: model.AllCategories, expected: []string{"1", "3"}},
		{name: "Category only", query: "", category: "kertas", expected: []string{"2", "5"}},
		{name: "Both predicates", query: "plastik", category: "plastik", expected: []string{"1", "4"}},
		{name: "Predicates disagree", query: "kaleng", category: "kertas", expected: []string{}},
		{name: "Unknown category", query: "", category: "kaca", expected: []string{}},
		{name: "Whitespace around query is ignored", query: "  koran ", category: model.AllCategories, expected: []string{"5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(testCatalog(), tt.query, tt.category)
			if diff := cmp.Diff(tt.expected, ids(got)); diff != "" {
				t.Errorf("Filter() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilter_SubsetAndExactExclusion(t *testing.T) {
	items := testCatalog()
	queries := []string{"", "a", "plastik", "bekas", "zzz"}
	categories := []string{model.AllCategories, "plastik", "kertas", "logam", "kaca"}

	for _, q := range queries {
		for _, c := range categories {
			got := Filter(items, q, c)
			kept := make(map[string]bool, len(got))
			for _, it := range got {
				kept[it.ID] = true
			}

			for _, it := range items {
				textOK := q == "" || containsFold(it.Name, q) || containsFold(it.Description, q)
				catOK := c == model.AllCategories || it.Category.ID == c
				assert.Equal(t, textOK && catOK, kept[it.ID], "query=%q category=%q item=%s", q, c, it.ID)
			}
			assert.LessOrEqual(t, len(got), len(items))
		}
	}
}

func TestSort_PriceAscending(t *testing.T) {
	items := []model.CatalogItem{
		{ID: "a", Name: "A", Price: model.PriceRange{Min: 1000}},
		{ID: "b", Name: "B", Price: model.PriceRange{Min: 800}},
		{ID: "c", Name: "C", Price: model.PriceRange{Min: 12000}},
	}

	got := Sort(items, model.SortPriceAsc)

	mins := []float64{got[0].Price.Min, got[1].Price.Min, got[2].Price.Min}
	assert.Equal(t, []float64{800, 1000, 12000}, mins)
}

func TestSort_Keys(t *testing.T) {
	tests := []struct {
		name     string
		key      model.SortKey
		expected []string
	}{
		{name: "Name ascending", key: model.SortNameAsc, expected: []string{"1", "4", "3", "2", "5"}},
		{name: "Name descending", key: model.SortNameDesc, expected: []string{"5", "2", "3", "4", "1"}},
		// "1" and "4" share a minimum price and keep their input order.
		{name: "Price ascending is stable", key: model.SortPriceAsc, expected: []string{"2", "1", "4", "5", "3"}},
		{name: "Price descending is stable", key: model.SortPriceDesc, expected: []string{"3", "5", "1", "4", "2"}},
		{name: "Unknown key falls back to name ascending", key: "rating", expected: []string{"1", "4", "3", "2", "5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sort(testCatalog(), tt.key)
			assert.Equal(t, tt.expected, ids(got))
		})
	}
}

func TestSort_EqualNamesKeepInputOrder(t *testing.T) {
	items := []model.CatalogItem{
		{ID: "a", Name: "Kardus"},
		{ID: "b", Name: "Botol"},
		{ID: "c", Name: "Kardus"},
		{ID: "d", Name: "Aluminium"},
		{ID: "e", Name: "Kardus"},
	}

	tests := []struct {
		name     string
		key      model.SortKey
		expected []string
	}{
		{name: "Name ascending", key: model.SortNameAsc, expected: []string{"d", "b", "a", "c", "e"}},
		{name: "Name descending", key: model.SortNameDesc, expected: []string{"a", "c", "e", "b", "d"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ids(Sort(items, tt.key)))
		})
	}
}

func TestSort_Idempotent(t *testing.T) {
	for _, key := range []model.SortKey{model.SortNameAsc, model.SortNameDesc, model.SortPriceAsc, model.SortPriceDesc} {
		once := Sort(testCatalog(), key)
		twice := Sort(once, key)
		assert.Equal(t, ids(once), ids(twice), "key=%s", key)
	}
}

func TestSort_LocaleAwareNames(t *testing.T) {
	items := []model.CatalogItem{
		{ID: "1", Name: "besi"},
		{ID: "2", Name: "Aluminium"},
		{ID: "3", Name: "Ban bekas"},
	}

	got := Sort(items, model.SortNameAsc)

	// A byte-wise comparison would put "besi" after every capitalised name.
	assert.Equal(t, []string{"2", "3", "1"}, ids(got))
}

func TestSort_UnpricedItemsLast(t *testing.T) {
	investment := func(v float64) *float64 { return &v }
	items := []model.BusinessOpportunity{
		{ID: "none", Title: "Tanpa modal"},
		{ID: "big", Title: "Pabrik pelet", Investment: investment(50_000_000)},
		{ID: "small", Title: "Kerajinan", Investment: investment(500_000)},
	}

	asc := Sort(items, model.SortPriceAsc)
	desc := Sort(items, model.SortPriceDesc)

	assert.Equal(t, []string{"small", "big", "none"}, []string{asc[0].ID, asc[1].ID, asc[2].ID})
	assert.Equal(t, []string{"big", "small", "none"}, []string{desc[0].ID, desc[1].ID, desc[2].ID})
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	items := testCatalog()
	before := ids(items)

	got := Apply(items, model.FilterState{Sort: model.SortPriceDesc})
	require.Len(t, got, len(items))

	assert.Equal(t, before, ids(items))
	got[0].Name = "changed"
	assert.NotEqual(t, "changed", items[2].Name)
}

func TestApply_EmptyInput(t *testing.T) {
	got := Apply([]model.CatalogItem(nil), model.DefaultFilterState())

	require.NotNil(t, got)
	assert.Empty(t, got)
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
