// internal/builders/article/builder.go
package article

import (
	"context"
	"fmt"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"schema-engine/internal/common/logger"
	"schema-engine/internal/content"
	"schema-engine/internal/render"
	"schema-engine/internal/schema"
	"schema-engine/internal/settings"
	"schema-engine/internal/textutil"
)

const DocumentType = "article"

// Builder emits a BlogPosting document on singular blog posts. Revisions,
// search results, 404s and feeds never match, and the whole builder sits
// behind the article feature switch.
type Builder struct {
	config   *Config
	settings *settings.Settings
	site     content.SiteSource
	posts    content.PostSource
	strip    *bluemonday.Policy
	logger   logger.Logger
}

func NewBuilder(config *Config, st *settings.Settings, site content.SiteSource, posts content.PostSource, log logger.Logger) *Builder {
	return &Builder{
		config:   config,
		settings: st,
		site:     site,
		posts:    posts,
		strip:    bluemonday.StrictPolicy(),
		logger:   log.WithFields(map[string]interface{}{"builder": DocumentType}),
	}
}

func (b *Builder) Name() string { return DocumentType }

func (b *Builder) Matches(ctx context.Context, page content.Page) bool {
	if page.Type != content.PageTypePost || !page.IsSingular {
		return false
	}
	if page.IsRevision || page.IsSearch || page.IsNotFound || page.IsFeed {
		return false
	}
	toggles, err := b.settings.Toggles(ctx)
	if err != nil {
		b.logger.WithError(err).Warn("toggles unavailable", nil)
		return false
	}
	return toggles.ArticleSchemaEnabled
}

func (b *Builder) Build(ctx context.Context, rc *render.Context) ([]*schema.Node, error) {
	post, err := b.posts.Post(ctx, rc.Page.ID)
	if err != nil {
		return nil, fmt.Errorf("load post %d: %w", rc.Page.ID, err)
	}
	site, err := b.site.Site(ctx)
	if err != nil {
		return nil, fmt.Errorf("load site identity: %w", err)
	}

	doc := schema.NewDocument(schema.TypeBlogPosting)
	if post.URL != "" {
		doc.Set("mainEntityOfPage", schema.NewNode(schema.TypeWebPage).
			Set("@id", post.URL))
	}
	doc.SetString("headline", textutil.Truncate(post.Title, b.config.HeadlineMax))
	doc.SetString("description", b.description(post))
	doc.SetString("image", post.HeroImage)

	if !post.PublishedAt.IsZero() {
		doc.Set("datePublished", post.PublishedAt.Format(time.RFC3339))
	}
	if !post.ModifiedAt.IsZero() {
		doc.Set("dateModified", post.ModifiedAt.Format(time.RFC3339))
	}

	if post.Author.Name != "" {
		author := schema.NewNode(schema.TypePerson).Set("name", post.Author.Name)
		author.SetString("url", post.Author.URL)
		doc.Set("author", author)
	}

	if site.Name != "" {
		publisher := schema.NewNode(schema.TypeOrganization).Set("name", site.Name)
		if logo := publisherLogo(site); logo != nil {
			publisher.Set("logo", logo)
		}
		doc.Set("publisher", publisher)
	}

	if len(post.Categories) > 0 {
		doc.Set("articleSection", joinSections(post.Categories))
	}

	return []*schema.Node{doc}, nil
}

// description prefers the hand-written excerpt; without one the rendered body
// is flattened to text and truncated.
func (b *Builder) description(post content.Post) string {
	text := post.Excerpt
	if text == "" {
		text = b.strip.Sanitize(post.Body)
	}
	return textutil.Truncate(textutil.CollapseWhitespace(text), b.config.DescriptionMax)
}

func publisherLogo(site content.Site) *schema.Node {
	img := site.Icon
	if img == nil || img.URL == "" {
		img = site.Logo
	}
	if img == nil || img.URL == "" {
		return nil
	}
	n := schema.NewNode(schema.TypeImageObject).Set("url", img.URL)
	if img.Width > 0 {
		n.Set("width", img.Width)
	}
	if img.Height > 0 {
		n.Set("height", img.Height)
	}
	return n
}

func joinSections(sections []string) string {
	out := ""
	for _, s := range sections {
		if s == "" {
			continue
		}
		if out != "" {
			out += ", "
		}
		out += s
	}
	return out
}
