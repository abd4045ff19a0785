// internal/builders/organization/builder.go
package organization

import (
	"context"
	"fmt"
	"strings"

	"schema-engine/internal/common/logger"
	"schema-engine/internal/content"
	"schema-engine/internal/policy"
	"schema-engine/internal/ratings"
	"schema-engine/internal/render"
	"schema-engine/internal/schema"
	"schema-engine/internal/settings"
)

const DocumentType = "organization"

// Builder emits the site-identity document on the front page: one
// Organization, OnlineStore or LocalBusiness node anchored at <home>#org,
// carrying the merchant's return policies and service area.
type Builder struct {
	config   *Config
	settings *settings.Settings
	site     content.SiteSource
	pages    content.PageSource
	rating   *ratings.Service
	logger   logger.Logger
}

func NewBuilder(config *Config, st *settings.Settings, site content.SiteSource, pages content.PageSource, rating *ratings.Service, log logger.Logger) *Builder {
	return &Builder{
		config:   config,
		settings: st,
		site:     site,
		pages:    pages,
		rating:   rating,
		logger:   log.WithFields(map[string]interface{}{"builder": DocumentType}),
	}
}

func (b *Builder) Name() string { return DocumentType }

// Matches fires on the designated front page only.
func (b *Builder) Matches(_ context.Context, page content.Page) bool {
	return page.IsFrontPage()
}

func (b *Builder) Build(ctx context.Context, rc *render.Context) ([]*schema.Node, error) {
	site, err := b.site.Site(ctx)
	if err != nil {
		return nil, fmt.Errorf("load site identity: %w", err)
	}
	if site.HomeURL == "" {
		rc.Log.Warn("no home URL, skipping organization document", nil)
		return nil, nil
	}

	rec, err := b.settings.Organization(ctx)
	if err != nil {
		return nil, fmt.Errorf("load organization settings: %w", err)
	}
	profile := policy.NormalizeOrganization(rec)

	name := profile.Name
	if name == "" {
		name = site.Name
	}

	doc := schema.NewDocument(profile.Type.TypeName())
	doc.Set("@id", site.HomeURL+b.config.AnchorFragment)
	doc.SetString("name", name)
	doc.Set("url", site.HomeURL)

	if logo := pickLogo(site); logo != nil {
		doc.Set("logo", logo)
	}

	if len(profile.SocialLinks) > 0 {
		doc.Set("sameAs", profile.SocialLinks)
	}
	doc.SetString("foundingDate", profile.FoundingDate)
	doc.SetString("telephone", profile.Telephone)
	doc.SetString("email", profile.Email)

	if !profile.Address.IsEmpty() {
		doc.Set("address", addressNode(profile.Address))
	}
	if profile.Email != "" {
		doc.Set("contactPoint", schema.NewNode(schema.TypeContactPoint).
			Set("contactType", "customer service").
			Set("email", profile.Email))
	}

	if methods := paymentMethodValues(profile.PaymentMethods); len(methods) > 0 {
		doc.Set("acceptedPaymentMethod", methods)
	}
	if profile.EmitPriceRange() {
		doc.Set("priceRange", profile.PriceRange)
	}

	policies, countries := b.returnPolicies(ctx, profile)
	if len(countries) > 0 {
		served := make([]*schema.Node, 0, len(countries))
		for _, c := range countries {
			served = append(served, schema.CountryNode(c))
		}
		doc.Set("areaServed", served)
	}
	if len(policies) > 0 {
		doc.Set("hasMerchantReturnPolicy", policies)
	}

	if b.rating != nil {
		agg, err := b.rating.StoreRating(ctx)
		if err != nil {
			rc.Log.WithError(err).Warn("store rating unavailable", nil)
		} else if agg.HasReviews() {
			doc.Set("aggregateRating", schema.NewNode(schema.TypeAggregateRating).
				Set("ratingValue", agg.Value).
				Set("reviewCount", agg.Count))
		}
	}

	return []*schema.Node{doc}, nil
}

// returnPolicies normalizes the domestic and international groups and collects
// the ordered union of their countries for areaServed.
func (b *Builder) returnPolicies(ctx context.Context, profile policy.OrganizationProfile) ([]*schema.Node, []string) {
	var nodes []*schema.Node
	var countries []string
	seen := make(map[string]bool)

	returnsURL := b.returnsPageURL(ctx)
	fallback := profile.FallbackCountry()

	for _, load := range []func(context.Context) (settings.ReturnPolicyRecord, error){
		b.settings.DomesticReturns,
		b.settings.InternationalReturns,
	} {
		rec, err := load(ctx)
		if err != nil {
			b.logger.WithError(err).Warn("return policy group unavailable", nil)
			continue
		}
		p, ok := policy.NormalizeReturnPolicy(rec, fallback)
		if !ok {
			continue
		}
		p.URL = returnsURL
		nodes = append(nodes, p.Node())
		for _, c := range p.Countries {
			if !seen[c] {
				seen[c] = true
				countries = append(countries, c)
			}
		}
	}
	return nodes, countries
}

func (b *Builder) returnsPageURL(ctx context.Context) string {
	bindings, err := b.settings.PolicyPages(ctx)
	if err != nil || bindings.ReturnsPageID == 0 {
		return ""
	}
	url, err := b.pages.PageURL(ctx, bindings.ReturnsPageID)
	if err != nil {
		b.logger.WithError(err).Debug("returns page URL unresolved", nil)
		return ""
	}
	return url
}

// pickLogo prefers the square site icon over the theme logo.
func pickLogo(site content.Site) *schema.Node {
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

func addressNode(a policy.PostalAddress) *schema.Node {
	n := schema.NewNode(schema.TypePostalAddress)
	n.SetString("streetAddress", a.Street)
	n.SetString("addressLocality", a.Locality)
	n.SetString("addressRegion", a.Region)
	n.SetString("postalCode", a.PostalCode)
	n.SetString("addressCountry", a.Country)
	return n
}

// paymentMethodValues mixes well-known URI strings with PaymentService nodes
// for named services.
func paymentMethodValues(methods []policy.PaymentMethod) []interface{} {
	out := make([]interface{}, 0, len(methods))
	for _, m := range methods {
		switch {
		case m.URI != "":
			out = append(out, m.URI)
		case strings.TrimSpace(m.ServiceName) != "":
			out = append(out, schema.NewNode(schema.TypePaymentService).
				Set("name", m.ServiceName))
		}
	}
	return out
}
