package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/pkg/httpclient"
)

// HTTPDoer is the interface for executing HTTP requests. Both
// httpclient.Client and httpclient.CircuitBreakerClient satisfy this.
type HTTPDoer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// Client talks to the remote catalog CMS over its REST API. The catalog owns
// products and categories; the storefront only reads them.
type Client struct {
	httpClient HTTPDoer
	baseURL    string
	images     *ImageResolver
	logger     *slog.Logger
}

// NewClient creates a catalog client.
func NewClient(httpClient HTTPDoer, baseURL string, images *ImageResolver, logger *slog.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		images:     images,
		logger:     logger,
	}
}

// ProductQuery scopes a product listing. Category and subcategory constraints
// are evaluated server side; zero values mean unconstrained.
type ProductQuery struct {
	CategoryID     int
	SubcategoryIDs []int
	Page           int
	Limit          int
}

// ProductPage is one page of a product listing.
type ProductPage struct {
	Items       []domain.Product
	TotalCount  int
	Page        int
	Limit       int
	TotalPages  int
	HasNextPage bool
}

// encodeWhere builds the catalog's bracketed filter expression. Each
// constraint is one clause under where[and]; clause indices are assigned in
// the order constraints are present.
func encodeWhere(q ProductQuery) url.Values {
	params := url.Values{}

	clause := 0
	if q.CategoryID > 0 {
		key := fmt.Sprintf("where[and][%d][subCategory.category.id][equals]", clause)
		params.Set(key, strconv.Itoa(q.CategoryID))
		clause++
	}
	if len(q.SubcategoryIDs) > 0 {
		for i, id := range q.SubcategoryIDs {
			key := fmt.Sprintf("where[and][%d][subCategory.id][in][%d]", clause, i)
			params.Set(key, strconv.Itoa(id))
		}
		clause++
	}

	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	return params
}

// ListProducts fetches a page of products matching the query.
func (c *Client) ListProducts(ctx context.Context, q ProductQuery) (*ProductPage, error) {
	endpoint := c.baseURL + "/api/products"
	if params := encodeWhere(q); len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var envelope listEnvelope[productDoc]
	if err := c.getJSON(ctx, endpoint, &envelope); err != nil {
		return nil, err
	}

	items := make([]domain.Product, len(envelope.Docs))
	for i, doc := range envelope.Docs {
		items[i] = doc.toDomain(c.images)
	}

	return &ProductPage{
		Items:       items,
		TotalCount:  envelope.TotalDocs,
		Page:        envelope.Page,
		Limit:       envelope.Limit,
		TotalPages:  envelope.TotalPages,
		HasNextPage: envelope.HasNextPage,
	}, nil
}

// GetProduct fetches a single product by ID.
func (c *Client) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	var doc productDoc
	if err := c.getJSON(ctx, fmt.Sprintf("%s/api/products/%d", c.baseURL, id), &doc); err != nil {
		return nil, err
	}
	product := doc.toDomain(c.images)
	return &product, nil
}

// ListCategories fetches all visible categories.
func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var envelope listEnvelope[categoryDoc]
	if err := c.getJSON(ctx, c.baseURL+"/api/categories?limit=100", &envelope); err != nil {
		return nil, err
	}

	categories := make([]domain.Category, 0, len(envelope.Docs))
	for _, doc := range envelope.Docs {
		if doc.Visible {
			categories = append(categories, doc.toDomain())
		}
	}
	return categories, nil
}

// GetCategory fetches a single category by ID.
func (c *Client) GetCategory(ctx context.Context, id int) (*domain.Category, error) {
	var doc categoryDoc
	if err := c.getJSON(ctx, fmt.Sprintf("%s/api/categories/%d", c.baseURL, id), &doc); err != nil {
		return nil, err
	}
	category := doc.toDomain()
	return &category, nil
}

// ListSubCategories fetches the subcategories belonging to a category.
func (c *Client) ListSubCategories(ctx context.Context, categoryID int) ([]domain.SubCategory, error) {
	endpoint := fmt.Sprintf("%s/api/sub-categories?where[category][equals]=%d&limit=100", c.baseURL, categoryID)

	var envelope listEnvelope[subCategoryDoc]
	if err := c.getJSON(ctx, endpoint, &envelope); err != nil {
		return nil, err
	}

	subs := make([]domain.SubCategory, len(envelope.Docs))
	for i, doc := range envelope.Docs {
		subs[i] = doc.toDomain()
	}
	return subs, nil
}

// SubmitOrder posts a new order to the catalog's orders collection.
func (c *Client) SubmitOrder(ctx context.Context, order *CreateOrderRequest) (*OrderReceipt, error) {
	body, err := json.Marshal(order)
	if err != nil {
		return nil, fmt.Errorf("marshal order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("call catalog service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, httpclient.ParseResponseError(resp, "catalog")
	}

	var receipt OrderReceipt
	if err := json.NewDecoder(resp.Body).Decode(&receipt); err != nil {
		return nil, fmt.Errorf("decode order response: %w", err)
	}
	return &receipt, nil
}

// getJSON issues a GET and decodes the response body into out.
func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("call catalog service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.WarnContext(ctx, "catalog request failed",
			slog.String("endpoint", endpoint),
			slog.Int("status", resp.StatusCode),
		)
		return httpclient.ParseResponseError(resp, "catalog")
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode catalog response: %w", err)
	}
	return nil
}
