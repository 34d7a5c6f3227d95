package domain

import "time"

// Category represents a top-level product category.
type Category struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	Visible     bool   `json:"visible"`
}

// SubCategory represents a subcategory nested under a category.
type SubCategory struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Description string   `json:"description,omitempty"`
	Category    Category `json:"category"`
}

// ImageSize is a single pre-rendered resolution of a product image.
type ImageSize struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// ImageSizes holds the pre-rendered resolutions the media service produces.
type ImageSizes struct {
	Thumbnail ImageSize `json:"thumbnail"`
	Card      ImageSize `json:"card"`
}

// ProductImage is the image reference attached to a product. URLs may be
// relative to the catalog's media origin.
type ProductImage struct {
	URL          string     `json:"url"`
	ThumbnailURL string     `json:"thumbnail_url,omitempty"`
	Sizes        ImageSizes `json:"sizes"`
}

// Product represents a catalog product. Products are owned by the remote
// catalog service; the storefront never mutates them.
type Product struct {
	ID               int          `json:"id"`
	Title            string       `json:"title"`
	Slug             string       `json:"slug"`
	Description      string       `json:"description"`
	Price            int64        `json:"price"`
	SubCategory      SubCategory  `json:"sub_category"`
	PreOrder         bool         `json:"pre_order"`
	PreOrderTime     int          `json:"pre_order_time,omitempty"`
	PreOrderTimeUnit string       `json:"pre_order_time_unit,omitempty"`
	Available        bool         `json:"available"`
	StockIn          int          `json:"stock_in"`
	StockOut         int          `json:"stock_out"`
	Image            ProductImage `json:"image"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

// Purchasable reports whether the product can be added to a cart: it must be
// flagged available and have remaining stock.
func (p *Product) Purchasable() bool {
	return p.Available && p.StockIn > 0
}

// CardImagePath returns the preferred image path for product listings: the
// card-sized rendition when present, otherwise the original upload.
func (p *Product) CardImagePath() string {
	if p.Image.Sizes.Card.URL != "" {
		return p.Image.Sizes.Card.URL
	}
	return p.Image.URL
}
