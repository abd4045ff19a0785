// internal/builders/policypages/shipping.go
package policypages

import (
	"context"
	"fmt"

	"schema-engine/internal/common/logger"
	"schema-engine/internal/content"
	"schema-engine/internal/policy"
	"schema-engine/internal/render"
	"schema-engine/internal/schema"
	"schema-engine/internal/settings"
)

const ShippingDocumentType = "shipping-page"

// ShippingBuilder emits one OfferShippingDetails document per configured
// shipping profile on the bound shipping page. Profiles carrying no
// information at all produce nothing.
type ShippingBuilder struct {
	config   *Config
	settings *settings.Settings
	logger   logger.Logger
}

func NewShippingBuilder(config *Config, st *settings.Settings, log logger.Logger) *ShippingBuilder {
	return &ShippingBuilder{
		config:   config,
		settings: st,
		logger:   log.WithFields(map[string]interface{}{"builder": ShippingDocumentType}),
	}
}

func (b *ShippingBuilder) Name() string { return ShippingDocumentType }

func (b *ShippingBuilder) Matches(ctx context.Context, page content.Page) bool {
	return matchesBoundPage(ctx, b.settings, b.logger, page, func(bind settings.PolicyPageBindings) int64 {
		return bind.ShippingPageID
	})
}

func (b *ShippingBuilder) Build(ctx context.Context, rc *render.Context) ([]*schema.Node, error) {
	recs, err := b.settings.ShippingProfiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("load shipping profiles: %w", err)
	}

	var docs []*schema.Node
	for _, rec := range recs {
		p := policy.NormalizeShippingProfile(rec)
		if p.IsDegenerate() {
			continue
		}
		docs = append(docs, p.Fill(schema.NewDocument(schema.TypeOfferShippingDetails)))
	}
	if len(docs) == 0 {
		rc.Log.Debug("no usable shipping profiles, emitting nothing", nil)
	}
	return docs, nil
}
