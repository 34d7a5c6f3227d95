package catalog

import (
	"math"
	"time"

	"github.com/utafrali/storefront/internal/domain"
)

// listEnvelope is the paginated collection envelope the catalog CMS wraps
// every list response in.
type listEnvelope[T any] struct {
	Docs          []T  `json:"docs"`
	TotalDocs     int  `json:"totalDocs"`
	Limit         int  `json:"limit"`
	TotalPages    int  `json:"totalPages"`
	Page          int  `json:"page"`
	HasPrevPage   bool `json:"hasPrevPage"`
	HasNextPage   bool `json:"hasNextPage"`
	PrevPage      *int `json:"prevPage"`
	NextPage      *int `json:"nextPage"`
	PagingCounter int  `json:"pagingCounter"`
}

type categoryDoc struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Visible     bool   `json:"visible"`
}

type subCategoryDoc struct {
	ID          int         `json:"id"`
	Title       string      `json:"title"`
	Slug        string      `json:"slug"`
	Description string      `json:"description"`
	Category    categoryDoc `json:"category"`
}

type imageSizeDoc struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type mediaDoc struct {
	URL   string `json:"url"`
	Sizes struct {
		Thumbnail imageSizeDoc `json:"thumbnail"`
		Card      imageSizeDoc `json:"card"`
	} `json:"sizes"`
}

// productDoc is the catalog's product record. Prices come back as float
// dollars and are converted to integer cents on ingestion.
type productDoc struct {
	ID               int            `json:"id"`
	Title            string         `json:"title"`
	Slug             string         `json:"slug"`
	Description      string         `json:"description"`
	Price            float64        `json:"price"`
	SubCategory      subCategoryDoc `json:"subCategory"`
	PreOrder         bool           `json:"preOrder"`
	PreOrderTime     int            `json:"preOrderTime"`
	PreOrderTimeUnit string         `json:"preOrderTimeUnit"`
	Available        bool           `json:"available"`
	StockIn          int            `json:"stockIn"`
	StockOut         int            `json:"stockOut"`
	Image            mediaDoc       `json:"image"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
}

func dollarsToCents(v float64) int64 {
	return int64(math.Round(v * 100))
}

func (d categoryDoc) toDomain() domain.Category {
	return domain.Category{
		ID:          d.ID,
		Title:       d.Title,
		Slug:        d.Slug,
		Description: d.Description,
		Visible:     d.Visible,
	}
}

func (d subCategoryDoc) toDomain() domain.SubCategory {
	return domain.SubCategory{
		ID:          d.ID,
		Title:       d.Title,
		Slug:        d.Slug,
		Description: d.Description,
		Category:    d.Category.toDomain(),
	}
}

func (d productDoc) toDomain(images *ImageResolver) domain.Product {
	return domain.Product{
		ID:               d.ID,
		Title:            d.Title,
		Slug:             d.Slug,
		Description:      d.Description,
		Price:            dollarsToCents(d.Price),
		SubCategory:      d.SubCategory.toDomain(),
		PreOrder:         d.PreOrder,
		PreOrderTime:     d.PreOrderTime,
		PreOrderTimeUnit: d.PreOrderTimeUnit,
		Available:        d.Available,
		StockIn:          d.StockIn,
		StockOut:         d.StockOut,
		Image: domain.ProductImage{
			URL:          images.Resolve(d.Image.URL),
			ThumbnailURL: images.Resolve(d.Image.Sizes.Thumbnail.URL),
			Sizes: domain.ImageSizes{
				Thumbnail: domain.ImageSize{
					URL:    images.Resolve(d.Image.Sizes.Thumbnail.URL),
					Width:  d.Image.Sizes.Thumbnail.Width,
					Height: d.Image.Sizes.Thumbnail.Height,
				},
				Card: domain.ImageSize{
					URL:    images.Resolve(d.Image.Sizes.Card.URL),
					Width:  d.Image.Sizes.Card.Width,
					Height: d.Image.Sizes.Card.Height,
				},
			},
		},
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
