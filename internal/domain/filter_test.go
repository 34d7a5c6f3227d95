package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleProducts() []Product {
	return []Product{
		{ID: 1, Title: "Radiant Glow Serum", Description: "Vitamin C brightening serum", Price: 4800},
		{ID: 2, Title: "Nourishing Face Cream", Description: "Rich moisturizer with shea butter", Price: 3600},
		{ID: 3, Title: "Hydrating Body Lotion", Description: "Lightweight lotion with aloe vera", Price: 2800},
	}
}

// ============================================================================
// Category / subcategory transitions
// ============================================================================

func TestSelectCategory_ClearsSubcategories(t *testing.T) {
	f := NewFilterCriteria(10000)
	f.SelectCategory(1)
	f.ToggleSubcategory(10)
	f.ToggleSubcategory(11)
	assert.Equal(t, []int{10, 11}, f.SubcategoryIDs)

	f.SelectCategory(2)
	assert.Equal(t, 2, f.CategoryID)
	assert.Empty(t, f.SubcategoryIDs)
}

func TestToggleSubcategory_AddAndRemove(t *testing.T) {
	f := NewFilterCriteria(10000)
	f.SelectCategory(1)

	f.ToggleSubcategory(10)
	assert.Equal(t, []int{10}, f.SubcategoryIDs)

	f.ToggleSubcategory(10)
	assert.Empty(t, f.SubcategoryIDs)
}

func TestToggleSubcategory_IgnoredWithoutCategory(t *testing.T) {
	f := NewFilterCriteria(10000)
	f.ToggleSubcategory(10)
	assert.Empty(t, f.SubcategoryIDs)
}

// ============================================================================
// Price range clamping
// ============================================================================

func TestSetMinPrice_ClampsMaxUp(t *testing.T) {
	f := NewFilterCriteria(5000)
	f.SetMinPrice(7000)

	assert.Equal(t, int64(7000), f.MinPrice)
	assert.Equal(t, int64(7000), f.MaxPrice)
}

func TestSetMaxPrice_ClampsMinDown(t *testing.T) {
	f := NewFilterCriteria(10000)
	f.SetMinPrice(4000)
	f.SetMaxPrice(2000)

	assert.Equal(t, int64(2000), f.MinPrice)
	assert.Equal(t, int64(2000), f.MaxPrice)
}

func TestSetMinPrice_NegativeClampsToZero(t *testing.T) {
	f := NewFilterCriteria(10000)
	f.SetMinPrice(-100)
	assert.Equal(t, int64(0), f.MinPrice)
}

func TestSetPrices_OrderedBoundsUntouched(t *testing.T) {
	f := NewFilterCriteria(10000)
	f.SetMinPrice(2000)
	f.SetMaxPrice(8000)

	assert.Equal(t, int64(2000), f.MinPrice)
	assert.Equal(t, int64(8000), f.MaxPrice)
}

// ============================================================================
// Reset
// ============================================================================

func TestReset_ClearsEverythingAtOnce(t *testing.T) {
	f := NewFilterCriteria(10000)
	f.SelectCategory(1)
	f.ToggleSubcategory(10)
	f.SetMinPrice(2000)
	f.SetMaxPrice(4000)
	f.Query = "serum"

	f.Reset(10000)

	assert.Equal(t, 0, f.CategoryID)
	assert.Empty(t, f.SubcategoryIDs)
	assert.Equal(t, int64(0), f.MinPrice)
	assert.Equal(t, int64(10000), f.MaxPrice)
	assert.Empty(t, f.Query)
}

// ============================================================================
// Residual predicate
// ============================================================================

func TestMatches_PriceRangeInclusive(t *testing.T) {
	f := NewFilterCriteria(10000)
	f.SetMinPrice(2800)
	f.SetMaxPrice(4800)

	lower := Product{Price: 2800}
	upper := Product{Price: 4800}
	outside := Product{Price: 4801}

	assert.True(t, f.Matches(&lower))
	assert.True(t, f.Matches(&upper))
	assert.False(t, f.Matches(&outside))
}

func TestMatches_QueryCaseInsensitive(t *testing.T) {
	f := NewFilterCriteria(10000)
	f.Query = "SERUM"

	byTitle := Product{Title: "Radiant Glow Serum", Price: 100}
	byDescription := Product{Title: "Face Cream", Description: "pairs well with a serum", Price: 100}
	noMatch := Product{Title: "Body Lotion", Description: "aloe vera", Price: 100}

	assert.True(t, f.Matches(&byTitle))
	assert.True(t, f.Matches(&byDescription))
	assert.False(t, f.Matches(&noMatch))
}

func TestApply_FiltersSubset(t *testing.T) {
	f := NewFilterCriteria(10000)
	f.SetMinPrice(3000)

	got := f.Apply(sampleProducts())

	assert.Len(t, got, 2)
	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, 2, got[1].ID)
}

func TestApply_EmptyResultIsNotNil(t *testing.T) {
	f := NewFilterCriteria(10000)
	f.Query = "no such product"

	got := f.Apply(sampleProducts())

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestApply_NilInput(t *testing.T) {
	f := NewFilterCriteria(10000)
	got := f.Apply(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

// ============================================================================
// Purchasability
// ============================================================================

func TestPurchasable(t *testing.T) {
	tests := []struct {
		name      string
		available bool
		stockIn   int
		want      bool
	}{
		{"available with stock", true, 5, true},
		{"available without stock", true, 0, false},
		{"unavailable with stock", false, 5, false},
		{"unavailable without stock", false, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Product{Available: tt.available, StockIn: tt.stockIn}
			assert.Equal(t, tt.want, p.Purchasable())
		})
	}
}

func TestCardImagePath(t *testing.T) {
	withCard := Product{Image: ProductImage{URL: "/media/orig.jpg", Sizes: ImageSizes{Card: ImageSize{URL: "/media/card.jpg"}}}}
	assert.Equal(t, "/media/card.jpg", withCard.CardImagePath())

	withoutCard := Product{Image: ProductImage{URL: "/media/orig.jpg"}}
	assert.Equal(t, "/media/orig.jpg", withoutCard.CardImagePath())
}
