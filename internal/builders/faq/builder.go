// internal/builders/faq/builder.go
package faq

import (
	"context"
	"fmt"

	"schema-engine/internal/common/logger"
	"schema-engine/internal/content"
	"schema-engine/internal/faqextract"
	"schema-engine/internal/render"
	"schema-engine/internal/schema"
	"schema-engine/internal/settings"
)

const DocumentType = "faq"

// Builder emits an FAQPage document on the bound FAQ page. Admin-entered
// question/answer pairs are the primary source; when none exist the builder
// falls back to extracting pairs from the page's rendered markup.
type Builder struct {
	config    *Config
	settings  *settings.Settings
	extractor *faqextract.Extractor
	logger    logger.Logger
}

func NewBuilder(config *Config, st *settings.Settings, extractor *faqextract.Extractor, log logger.Logger) *Builder {
	return &Builder{
		config:    config,
		settings:  st,
		extractor: extractor,
		logger:    log.WithFields(map[string]interface{}{"builder": DocumentType}),
	}
}

func (b *Builder) Name() string { return DocumentType }

// Matches fires only when this render is the bound FAQ page.
func (b *Builder) Matches(ctx context.Context, page content.Page) bool {
	if page.ID == 0 || !page.IsSingular || page.IsRevision {
		return false
	}
	bindings, err := b.settings.PolicyPages(ctx)
	if err != nil {
		b.logger.WithError(err).Warn("page bindings unavailable", nil)
		return false
	}
	return bindings.FAQPageID != 0 && bindings.FAQPageID == page.ID
}

func (b *Builder) Build(ctx context.Context, rc *render.Context) ([]*schema.Node, error) {
	pairs, err := b.pairs(ctx, rc.Page.ID)
	if err != nil {
		return nil, err
	}
	if len(pairs) == 0 {
		rc.Log.Debug("no question/answer pairs, emitting nothing", nil)
		return nil, nil
	}
	if len(pairs) > b.config.MaxItems {
		pairs = pairs[:b.config.MaxItems]
	}

	entities := make([]*schema.Node, 0, len(pairs))
	for _, qa := range pairs {
		entities = append(entities, schema.NewNode(schema.TypeQuestion).
			Set("name", qa.Question).
			Set("acceptedAnswer", schema.NewNode(schema.TypeAnswer).
				Set("text", qa.Answer)))
	}

	doc := schema.NewDocument(schema.TypeFAQPage)
	doc.Set("mainEntity", entities)
	return []*schema.Node{doc}, nil
}

// pairs returns form items when any exist, otherwise extracted ones.
func (b *Builder) pairs(ctx context.Context, pageID int64) ([]faqextract.QA, error) {
	items, err := b.settings.FAQItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("load faq items: %w", err)
	}

	var pairs []faqextract.QA
	for _, item := range items {
		if item.Question == "" || item.Answer == "" {
			continue
		}
		pairs = append(pairs, faqextract.QA{Question: item.Question, Answer: item.Answer})
	}
	if len(pairs) > 0 || b.extractor == nil {
		return pairs, nil
	}

	pairs, err = b.extractor.Pairs(ctx, pageID)
	if err != nil {
		return nil, fmt.Errorf("extract faq pairs: %w", err)
	}
	return pairs, nil
}
