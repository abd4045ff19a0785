// internal/builders/policypages/returns.go
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

const ReturnsDocumentType = "returns-page"

// ReturnsBuilder emits one MerchantReturnPolicy document per configured
// policy on the bound returns page. The policy list is the primary source;
// when the list is empty the single domestic group serves as fallback.
type ReturnsBuilder struct {
	config   *Config
	settings *settings.Settings
	logger   logger.Logger
}

func NewReturnsBuilder(config *Config, st *settings.Settings, log logger.Logger) *ReturnsBuilder {
	return &ReturnsBuilder{
		config:   config,
		settings: st,
		logger:   log.WithFields(map[string]interface{}{"builder": ReturnsDocumentType}),
	}
}

func (b *ReturnsBuilder) Name() string { return ReturnsDocumentType }

func (b *ReturnsBuilder) Matches(ctx context.Context, page content.Page) bool {
	return matchesBoundPage(ctx, b.settings, b.logger, page, func(bind settings.PolicyPageBindings) int64 {
		return bind.ReturnsPageID
	})
}

func (b *ReturnsBuilder) Build(ctx context.Context, rc *render.Context) ([]*schema.Node, error) {
	recs, err := b.settings.ReturnPolicyList(ctx)
	if err != nil {
		return nil, fmt.Errorf("load return policy list: %w", err)
	}
	if len(recs) == 0 {
		rec, err := b.settings.DomesticReturns(ctx)
		if err != nil {
			return nil, fmt.Errorf("load domestic returns: %w", err)
		}
		recs = []settings.ReturnPolicyRecord{rec}
	}

	fallback := b.fallbackCountry(ctx)

	var docs []*schema.Node
	for _, rec := range recs {
		p, ok := policy.NormalizeReturnPolicy(rec, fallback)
		if !ok {
			continue
		}
		docs = append(docs, p.Fill(schema.NewDocument(schema.TypeMerchantReturnPolicy)))
	}
	if len(docs) == 0 {
		rc.Log.Debug("no configured return policies, emitting nothing", nil)
	}
	return docs, nil
}

func (b *ReturnsBuilder) fallbackCountry(ctx context.Context) string {
	rec, err := b.settings.Organization(ctx)
	if err != nil {
		b.logger.WithError(err).Debug("organization settings unavailable", nil)
		return ""
	}
	return policy.NormalizeOrganization(rec).FallbackCountry()
}

// matchesBoundPage is the shared page-binding gate: the builder fires only on
// the singular render of its bound page.
func matchesBoundPage(ctx context.Context, st *settings.Settings, log logger.Logger, page content.Page, pick func(settings.PolicyPageBindings) int64) bool {
	if page.ID == 0 || !page.IsSingular || page.IsRevision {
		return false
	}
	bindings, err := st.PolicyPages(ctx)
	if err != nil {
		log.WithError(err).Warn("page bindings unavailable", nil)
		return false
	}
	bound := pick(bindings)
	return bound != 0 && bound == page.ID
}
