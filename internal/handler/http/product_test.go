package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/internal/catalog"
	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/service"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// ============================================================================
// Mock CatalogBrowser
// ============================================================================

type mockBrowser struct {
	mock.Mock
}

func (m *mockBrowser) ListProducts(ctx context.Context, q catalog.ProductQuery) (*catalog.ProductPage, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ProductPage), args.Error(1)
}

func (m *mockBrowser) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockBrowser) ListCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *mockBrowser) GetCategory(ctx context.Context, id int) (*domain.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *mockBrowser) ListSubCategories(ctx context.Context, categoryID int) ([]domain.SubCategory, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SubCategory), args.Error(1)
}

func setupBrowseRouter(browser *mockBrowser) *chi.Mux {
	svc := service.NewProductService(browser, testLogger(), 100000)
	productHandler := NewProductHandler(svc, testLogger())
	categoryHandler := NewCategoryHandler(svc, testLogger())

	r := chi.NewRouter()
	r.Get("/api/v1/products", productHandler.ListProducts)
	r.Get("/api/v1/products/{id}", productHandler.GetProduct)
	r.Get("/api/v1/categories", categoryHandler.ListCategories)
	r.Get("/api/v1/categories/{id}", categoryHandler.GetCategory)
	return r
}

func catalogPage() *catalog.ProductPage {
	return &catalog.ProductPage{
		Items: []domain.Product{
			{ID: 1, Title: "Radiant Glow Serum", Description: "Vitamin C", Price: 4800},
			{ID: 2, Title: "Face Cream", Description: "Shea butter", Price: 3600},
		},
		TotalCount:  2,
		Page:        1,
		Limit:       12,
		TotalPages:  1,
		HasNextPage: false,
	}
}

// ============================================================================
// ListProducts
// ============================================================================

func TestListProducts_Success(t *testing.T) {
	browser := new(mockBrowser)
	router := setupBrowseRouter(browser)

	browser.On("ListProducts", mock.Anything, mock.AnythingOfType("catalog.ProductQuery")).Return(catalogPage(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Data service.ProductListing `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Len(t, got.Data.Data, 2)
	assert.Equal(t, 2, got.Data.TotalCount)
}

func TestListProducts_QueryParamsForwarded(t *testing.T) {
	browser := new(mockBrowser)
	router := setupBrowseRouter(browser)

	var gotQuery catalog.ProductQuery
	browser.On("ListProducts", mock.Anything, mock.AnythingOfType("catalog.ProductQuery")).
		Run(func(args mock.Arguments) {
			gotQuery = args.Get(1).(catalog.ProductQuery)
		}).
		Return(catalogPage(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?category=4&subcategories=9,11&page=2&limit=24", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 4, gotQuery.CategoryID)
	assert.Equal(t, []int{9, 11}, gotQuery.SubcategoryIDs)
	assert.Equal(t, 2, gotQuery.Page)
	assert.Equal(t, 24, gotQuery.Limit)
}

func TestListProducts_RepeatedSubcategoryParamCountsOnce(t *testing.T) {
	browser := new(mockBrowser)
	router := setupBrowseRouter(browser)

	var gotQuery catalog.ProductQuery
	browser.On("ListProducts", mock.Anything, mock.AnythingOfType("catalog.ProductQuery")).
		Run(func(args mock.Arguments) {
			gotQuery = args.Get(1).(catalog.ProductQuery)
		}).
		Return(catalogPage(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?category=4&subcategories=5,5", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []int{5}, gotQuery.SubcategoryIDs)
}

func TestListProducts_ResidualFilterApplied(t *testing.T) {
	browser := new(mockBrowser)
	router := setupBrowseRouter(browser)

	browser.On("ListProducts", mock.Anything, mock.AnythingOfType("catalog.ProductQuery")).Return(catalogPage(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?q=serum&min_price=4000", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Data service.ProductListing `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.Len(t, got.Data.Data, 1)
	assert.Equal(t, 1, got.Data.Data[0].ID)
}

func TestListProducts_UpstreamFailure(t *testing.T) {
	browser := new(mockBrowser)
	router := setupBrowseRouter(browser)

	browser.On("ListProducts", mock.Anything, mock.AnythingOfType("catalog.ProductQuery")).
		Return(nil, apperrors.Upstream("catalog", 502, "bad gateway"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

// ============================================================================
// GetProduct
// ============================================================================

func TestGetProduct_Success(t *testing.T) {
	browser := new(mockBrowser)
	router := setupBrowseRouter(browser)

	browser.On("GetProduct", mock.Anything, 7).Return(availableProduct(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/7", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Data domain.Product `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, 7, got.Data.ID)
}

func TestGetProduct_NotFound(t *testing.T) {
	browser := new(mockBrowser)
	router := setupBrowseRouter(browser)

	browser.On("GetProduct", mock.Anything, 999).Return(nil, apperrors.NotFound("product", "999"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/999", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetProduct_InvalidIDParam(t *testing.T) {
	router := setupBrowseRouter(new(mockBrowser))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ============================================================================
// Categories
// ============================================================================

func TestListCategories_Success(t *testing.T) {
	browser := new(mockBrowser)
	router := setupBrowseRouter(browser)

	browser.On("ListCategories", mock.Anything).
		Return([]domain.Category{{ID: 1, Title: "Skin Care", Visible: true}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Data []domain.Category `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.Len(t, got.Data, 1)
	assert.Equal(t, "Skin Care", got.Data[0].Title)
}

func TestGetCategory_WithSubcategories(t *testing.T) {
	browser := new(mockBrowser)
	router := setupBrowseRouter(browser)

	browser.On("GetCategory", mock.Anything, 1).Return(&domain.Category{ID: 1, Title: "Skin Care"}, nil)
	browser.On("ListSubCategories", mock.Anything, 1).
		Return([]domain.SubCategory{{ID: 3, Title: "Serums"}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/categories/1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Data service.CategoryDetail `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, 1, got.Data.Category.ID)
	require.Len(t, got.Data.SubCategories, 1)
}

func TestGetCategory_NotFound(t *testing.T) {
	browser := new(mockBrowser)
	router := setupBrowseRouter(browser)

	browser.On("GetCategory", mock.Anything, 99).Return(nil, apperrors.NotFound("category", "99"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/categories/99", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
