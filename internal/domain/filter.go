package domain

import (
	"slices"
	"strings"
)

// FilterCriteria holds the full browse filter state: the server-side scope
// (category/subcategories, passed through to the catalog) and the residual
// client-side predicates (price range and free-text search) applied to the
// fetched result set.
type FilterCriteria struct {
	CategoryID     int    `json:"category_id,omitempty"`
	SubcategoryIDs []int  `json:"subcategory_ids,omitempty"`
	MinPrice       int64  `json:"min_price"`
	MaxPrice       int64  `json:"max_price"`
	Query          string `json:"query,omitempty"`
}

// NewFilterCriteria returns criteria with no category scope, an open price
// range of [0, maxPrice], and no search text.
func NewFilterCriteria(maxPrice int64) FilterCriteria {
	return FilterCriteria{
		MinPrice: 0,
		MaxPrice: maxPrice,
	}
}

// SelectCategory sets the category scope and clears any selected
// subcategories. Subcategories are only meaningful relative to a category, so
// every category selection starts from a clean subcategory slate.
func (f *FilterCriteria) SelectCategory(id int) {
	f.CategoryID = id
	f.SubcategoryIDs = nil
}

// ToggleSubcategory adds the subcategory to the selection, or removes it if
// already selected. Ignored when no category is selected.
func (f *FilterCriteria) ToggleSubcategory(id int) {
	if f.CategoryID == 0 {
		return
	}
	if i := slices.Index(f.SubcategoryIDs, id); i >= 0 {
		f.SubcategoryIDs = slices.Delete(f.SubcategoryIDs, i, i+1)
		return
	}
	f.SubcategoryIDs = append(f.SubcategoryIDs, id)
}

// SetMinPrice sets the lower price bound. Moving the lower bound above the
// current upper bound drags the upper bound up to keep the range ordered.
func (f *FilterCriteria) SetMinPrice(v int64) {
	if v < 0 {
		v = 0
	}
	f.MinPrice = v
	if f.MaxPrice < v {
		f.MaxPrice = v
	}
}

// SetMaxPrice sets the upper price bound. Moving the upper bound below the
// current lower bound drags the lower bound down to keep the range ordered.
func (f *FilterCriteria) SetMaxPrice(v int64) {
	if v < 0 {
		v = 0
	}
	f.MaxPrice = v
	if f.MinPrice > v {
		f.MinPrice = v
	}
}

// Reset clears all filters in one update: no category, no subcategories,
// price range back to [0, maxPrice], empty search text.
func (f *FilterCriteria) Reset(maxPrice int64) {
	*f = NewFilterCriteria(maxPrice)
}

// Matches reports whether the product passes the residual predicates: price
// within [MinPrice, MaxPrice] (both inclusive) and, when a query is set, a
// case-insensitive substring match against the title or description.
func (f *FilterCriteria) Matches(p *Product) bool {
	if p.Price < f.MinPrice || p.Price > f.MaxPrice {
		return false
	}

	if f.Query == "" {
		return true
	}

	q := strings.ToLower(f.Query)
	return strings.Contains(strings.ToLower(p.Title), q) ||
		strings.Contains(strings.ToLower(p.Description), q)
}

// Apply returns the subset of products passing the residual predicates.
// The result is never nil; an empty filtered set is a valid state.
func (f *FilterCriteria) Apply(products []Product) []Product {
	filtered := make([]Product, 0, len(products))
	for i := range products {
		if f.Matches(&products[i]) {
			filtered = append(filtered, products[i])
		}
	}
	return filtered
}
