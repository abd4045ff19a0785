// internal/content/content.go
//
// Read-only accessors onto the host content framework: page identity, site
// identity, posts, products, reviews. The pipeline never writes through
// these interfaces.
package content

import (
	"context"
	"time"
)

// PageType classifies what the host is currently rendering.
type PageType string

const (
	PageTypeFront   PageType = "front"
	PageTypePage    PageType = "page"
	PageTypePost    PageType = "post"
	PageTypeProduct PageType = "product"
	PageTypeOther   PageType = "other"
)

// Page is the identity of the render in progress.
type Page struct {
	ID         int64
	Type       PageType
	URL        string
	IsSingular bool
	IsRevision bool
	IsSearch   bool
	IsNotFound bool
	IsFeed     bool
}

// IsFrontPage reports whether this render is the site's designated front page.
func (p Page) IsFrontPage() bool {
	return p.Type == PageTypeFront
}

// Image is a resolved image with intrinsic dimensions when known.
type Image struct {
	URL    string
	Width  int
	Height int
}

// Site is the site identity snapshot.
type Site struct {
	Name       string
	HomeURL    string
	AdminEmail string
	// Icon is the square site icon at canonical size, preferred for logos.
	Icon *Image
	// Logo is the theme-configured logo, the fallback when no icon exists.
	Logo *Image
}

// Author identifies a post author.
type Author struct {
	Name string
	URL  string
}

// Post is a blog-post snapshot for one render.
type Post struct {
	ID          int64
	URL         string
	Title       string
	Excerpt     string
	Body        string // rendered HTML
	PublishedAt time.Time
	ModifiedAt  time.Time
	Author      Author
	Categories  []string
	HeroImage   string
}

// AttributeValue is one resolved variation attribute.
type AttributeValue struct {
	Name  string
	Value string
}

// Variation is one purchasable variant of a product.
type Variation struct {
	SKU        string
	Price      float64
	InStock    bool
	URL        string
	Attributes []AttributeValue
}

// DisplayName joins attribute values into the variant's shown name.
func (v Variation) DisplayName() string {
	name := ""
	for _, attr := range v.Attributes {
		if attr.Value == "" {
			continue
		}
		if name != "" {
			name += " / "
		}
		name += attr.Value
	}
	return name
}

// Product is the commerce entity being rendered.
type Product struct {
	ID         int64
	SKU        string
	Name       string
	Price      float64
	Currency   string
	InStock    bool
	URL        string
	Variations []Variation
	// Specifics is the raw "Label: Value" item-specifics block, empty when
	// the product has none.
	Specifics string
}

// IsVariable reports whether the product has purchasable variations.
func (p Product) IsVariable() bool {
	return len(p.Variations) > 0
}

// Review is one approved product review.
type Review struct {
	Rating   int
	Author   string
	Text     string
	Date     time.Time
	Verified bool
}

// SiteSource resolves the site identity.
type SiteSource interface {
	Site(ctx context.Context) (Site, error)
}

// PageSource resolves page URLs by id (for policy links).
type PageSource interface {
	PageURL(ctx context.Context, pageID int64) (string, error)
}

// PostSource resolves the post behind a singular post render.
type PostSource interface {
	Post(ctx context.Context, postID int64) (Post, error)
}

// PageBodySource returns the fully rendered HTML body of a page.
type PageBodySource interface {
	RenderedBody(ctx context.Context, pageID int64) (string, error)
}

// ReviewSource exposes approved reviews.
type ReviewSource interface {
	// ForProduct returns up to limit approved reviews for a product, newest
	// first.
	ForProduct(ctx context.Context, productID int64, limit int) ([]Review, error)
	// Ratings returns every numeric rating across approved reviews
	// store-wide, for the aggregate store rating.
	Ratings(ctx context.Context) ([]float64, error)
}
