package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/utafrali/storefront/internal/catalog"
	"github.com/utafrali/storefront/internal/domain"
	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/pagination"
)

// CatalogBrowser is the catalog surface the product service depends on.
// Satisfied by catalog.Client.
type CatalogBrowser interface {
	ListProducts(ctx context.Context, q catalog.ProductQuery) (*catalog.ProductPage, error)
	GetProduct(ctx context.Context, id int) (*domain.Product, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetCategory(ctx context.Context, id int) (*domain.Category, error)
	ListSubCategories(ctx context.Context, categoryID int) ([]domain.SubCategory, error)
}

// FetchSequencer hands out monotonically increasing sequence numbers for
// product fetches and rejects completions that have been superseded by a
// newer fetch. Concurrent fetches may finish out of order; only the newest
// one is allowed to publish its result.
type FetchSequencer struct {
	mu        sync.Mutex
	next      uint64
	committed uint64
}

// Begin reserves the next fetch sequence number.
func (s *FetchSequencer) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	return s.next
}

// Commit reports whether the fetch with the given sequence is still the
// newest. A stale commit, one older than a sequence already committed, is
// rejected and must be discarded by the caller.
func (s *FetchSequencer) Commit(seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq <= s.committed {
		return false
	}
	s.committed = seq
	return true
}

// BrowseInput holds the full set of browse constraints: the server-side
// category scope plus the residual price and search predicates.
type BrowseInput struct {
	CategoryID     int
	SubcategoryIDs []int
	MinPrice       int64
	MaxPrice       int64
	Query          string
	Page           int
	Limit          int
}

// ProductListing is the outcome of a browse: the filtered products plus the
// catalog's pagination counters for the unfiltered scope.
type ProductListing = pagination.Result[domain.Product]

// CategoryDetail is a category together with its subcategories.
type CategoryDetail struct {
	Category      domain.Category      `json:"category"`
	SubCategories []domain.SubCategory `json:"sub_categories"`
}

// ProductService implements product and category browsing against the
// remote catalog.
type ProductService struct {
	catalog        CatalogBrowser
	sequencer      FetchSequencer
	logger         *slog.Logger
	maxFilterPrice int64

	mu     sync.RWMutex
	latest *ProductListing
}

// NewProductService creates a new product service. maxFilterPrice is the
// upper bound used when a browse request leaves the price range open.
func NewProductService(catalogClient CatalogBrowser, logger *slog.Logger, maxFilterPrice int64) *ProductService {
	return &ProductService{
		catalog:        catalogClient,
		logger:         logger,
		maxFilterPrice: maxFilterPrice,
	}
}

// Browse fetches the server-scoped product page and applies the residual
// price and search predicates. When the catalog is unreachable and an
// earlier browse has succeeded, the last published listing is served
// instead of an error so the storefront keeps rendering something.
func (s *ProductService) Browse(ctx context.Context, input BrowseInput) (*ProductListing, error) {
	criteria := s.buildCriteria(input)
	seq := s.sequencer.Begin()

	page, err := s.catalog.ListProducts(ctx, catalog.ProductQuery{
		CategoryID:     criteria.CategoryID,
		SubcategoryIDs: criteria.SubcategoryIDs,
		Page:           input.Page,
		Limit:          input.Limit,
	})
	if err != nil {
		if cached := s.LatestListing(); cached != nil && ctx.Err() == nil {
			s.logger.WarnContext(ctx, "catalog fetch failed, serving last published listing",
				slog.String("error", err.Error()),
			)
			return cached, nil
		}
		return nil, fmt.Errorf("list products: %w", err)
	}

	listing := &ProductListing{
		Data:       criteria.Apply(page.Items),
		TotalCount: page.TotalCount,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: page.TotalPages,
		HasNext:    page.HasNextPage,
		HasPrev:    page.Page > 1,
	}

	if s.sequencer.Commit(seq) {
		s.mu.Lock()
		s.latest = listing
		s.mu.Unlock()
	} else {
		s.logger.DebugContext(ctx, "discarded stale product fetch",
			slog.Uint64("sequence", seq),
		)
	}

	return listing, nil
}

// LatestListing returns the most recently published browse result, or nil
// when no browse has completed yet. Stale fetches never appear here.
func (s *ProductService) LatestListing() *ProductListing {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}

// GetProduct fetches a single product by ID.
func (s *ProductService) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	if id <= 0 {
		return nil, apperrors.InvalidInput("product id must be a positive integer")
	}

	product, err := s.catalog.GetProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return product, nil
}

// ListCategories fetches all visible categories.
func (s *ProductService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.catalog.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// GetCategory fetches a category and its subcategories.
func (s *ProductService) GetCategory(ctx context.Context, id int) (*CategoryDetail, error) {
	if id <= 0 {
		return nil, apperrors.InvalidInput("category id must be a positive integer")
	}

	category, err := s.catalog.GetCategory(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}

	subs, err := s.catalog.ListSubCategories(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list subcategories: %w", err)
	}

	return &CategoryDetail{
		Category:      *category,
		SubCategories: subs,
	}, nil
}

// buildCriteria normalizes browse input into filter criteria. Subcategory
// selections are only honored together with a category, repeated subcategory
// IDs count once, and an open price range defaults to [0, maxFilterPrice].
func (s *ProductService) buildCriteria(input BrowseInput) domain.FilterCriteria {
	criteria := domain.NewFilterCriteria(s.maxFilterPrice)
	if input.CategoryID > 0 {
		criteria.SelectCategory(input.CategoryID)
		seen := make(map[int]struct{}, len(input.SubcategoryIDs))
		for _, id := range input.SubcategoryIDs {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			criteria.ToggleSubcategory(id)
		}
	}
	if input.MinPrice > 0 {
		criteria.SetMinPrice(input.MinPrice)
	}
	if input.MaxPrice > 0 {
		criteria.SetMaxPrice(input.MaxPrice)
	}
	criteria.Query = input.Query
	return criteria
}
