// internal/builders/product/augmenter.go
package product

import (
	"context"
	"fmt"
	"time"

	"schema-engine/internal/common/logger"
	"schema-engine/internal/content"
	"schema-engine/internal/policy"
	"schema-engine/internal/schema"
	"schema-engine/internal/settings"
	"schema-engine/internal/specifics"
)

const DocumentType = "product"

// Augmenter decorates the host's own product markup instead of emitting a
// document of its own. The host hands over its generated Product object as a
// generic map; the augmenter layers offer condition, price validity, return
// policy, shipping details, rating bounds, rebuilt reviews and item specifics
// on top and hands it back. A markup shape it does not recognize is returned
// untouched.
type Augmenter struct {
	config   *Config
	settings *settings.Settings
	pages    content.PageSource
	reviews  content.ReviewSource
	logger   logger.Logger

	now func() time.Time
}

func NewAugmenter(config *Config, st *settings.Settings, pages content.PageSource, reviews content.ReviewSource, log logger.Logger) *Augmenter {
	return &Augmenter{
		config:   config,
		settings: st,
		pages:    pages,
		reviews:  reviews,
		logger:   log.WithFields(map[string]interface{}{"builder": DocumentType}),
		now:      time.Now,
	}
}

// Augment decorates markup in place and returns it.
func (a *Augmenter) Augment(ctx context.Context, markup map[string]interface{}, prod content.Product) map[string]interface{} {
	if markup == nil {
		return nil
	}

	a.augmentOffers(ctx, markup, prod)
	a.augmentRating(markup)
	a.augmentReviews(ctx, markup, prod)
	a.augmentSpecifics(markup, prod)
	return markup
}

func (a *Augmenter) augmentOffers(ctx context.Context, markup map[string]interface{}, prod content.Product) {
	offers, ok := markup["offers"].([]interface{})
	if !ok || len(offers) == 0 {
		return
	}

	returnPolicy := a.returnPolicyNode(ctx)
	shipping := a.shippingNodes(ctx)

	if prod.IsVariable() {
		offers[0] = a.aggregateOffer(prod, returnPolicy, shipping)
		markup["offers"] = offers
		return
	}

	offer, ok := offers[0].(map[string]interface{})
	if !ok {
		return
	}
	offer["itemCondition"] = schema.URINewCondition
	offer["priceValidUntil"] = a.priceValidUntil()
	if returnPolicy != nil {
		offer["hasMerchantReturnPolicy"] = returnPolicy
	}
	if len(shipping) > 0 {
		offer["shippingDetails"] = shipping
	}
	delete(offer, "seller")
}

// aggregateOffer replaces the host's single offer with an AggregateOffer
// spanning every purchasable variation.
func (a *Augmenter) aggregateOffer(prod content.Product, returnPolicy *schema.Node, shipping []*schema.Node) *schema.Node {
	low, high := prod.Variations[0].Price, prod.Variations[0].Price
	variants := make([]*schema.Node, 0, len(prod.Variations))
	for _, v := range prod.Variations {
		if v.Price < low {
			low = v.Price
		}
		if v.Price > high {
			high = v.Price
		}

		availability := schema.URIOutOfStock
		if v.InStock {
			availability = schema.URIInStock
		}
		variant := schema.NewNode(schema.TypeOffer)
		variant.SetString("name", v.DisplayName())
		variant.Set("price", v.Price)
		variant.SetString("priceCurrency", prod.Currency)
		variant.Set("availability", availability)
		variant.SetString("url", v.URL)
		variant.SetString("sku", v.SKU)
		variants = append(variants, variant)
	}

	agg := schema.NewNode(schema.TypeAggregateOffer)
	agg.Set("lowPrice", low)
	agg.Set("highPrice", high)
	agg.SetString("priceCurrency", prod.Currency)
	agg.Set("offerCount", len(prod.Variations))
	agg.Set("offers", variants)
	agg.Set("itemCondition", schema.URINewCondition)
	agg.Set("priceValidUntil", a.priceValidUntil())
	if returnPolicy != nil {
		agg.Set("hasMerchantReturnPolicy", returnPolicy)
	}
	if len(shipping) > 0 {
		agg.Set("shippingDetails", shipping)
	}
	return agg
}

// priceValidUntil is the last day of the following calendar year, a rolling
// horizon that keeps the field valid without per-product dates.
func (a *Augmenter) priceValidUntil() string {
	return fmt.Sprintf("%d-12-31", a.now().UTC().Year()+1)
}

func (a *Augmenter) returnPolicyNode(ctx context.Context) *schema.Node {
	rec, err := a.settings.DomesticReturns(ctx)
	if err != nil {
		a.logger.WithError(err).Warn("domestic returns unavailable", nil)
		return nil
	}
	org, err := a.settings.Organization(ctx)
	if err != nil {
		a.logger.WithError(err).Debug("organization settings unavailable", nil)
	}
	p, ok := policy.NormalizeReturnPolicy(rec, policy.NormalizeOrganization(org).FallbackCountry())
	if !ok {
		return nil
	}
	p.URL = a.boundPageURL(ctx, func(b settings.PolicyPageBindings) int64 { return b.ReturnsPageID })
	return p.Node()
}

func (a *Augmenter) shippingNodes(ctx context.Context) []*schema.Node {
	recs, err := a.settings.ShippingProfiles(ctx)
	if err != nil {
		a.logger.WithError(err).Warn("shipping profiles unavailable", nil)
		return nil
	}
	link := a.boundPageURL(ctx, func(b settings.PolicyPageBindings) int64 { return b.ShippingPageID })

	var nodes []*schema.Node
	for _, rec := range recs {
		p := policy.NormalizeShippingProfile(rec)
		if p.IsDegenerate() {
			continue
		}
		n := p.Node()
		n.SetString("shippingSettingsLink", link)
		nodes = append(nodes, n)
	}
	return nodes
}

func (a *Augmenter) boundPageURL(ctx context.Context, pick func(settings.PolicyPageBindings) int64) string {
	bindings, err := a.settings.PolicyPages(ctx)
	if err != nil {
		return ""
	}
	id := pick(bindings)
	if id == 0 {
		return ""
	}
	url, err := a.pages.PageURL(ctx, id)
	if err != nil {
		a.logger.WithError(err).Debug("bound page URL unresolved", nil)
		return ""
	}
	return url
}

// augmentRating pins explicit bounds onto the host's aggregateRating so the
// scale is unambiguous.
func (a *Augmenter) augmentRating(markup map[string]interface{}) {
	rating, ok := markup["aggregateRating"].(map[string]interface{})
	if !ok {
		return
	}
	rating["worstRating"] = 1
	rating["bestRating"] = 5
}

// augmentReviews replaces the host's review list with one rebuilt from the
// approved reviews, or strips it entirely when rebuilding is switched off.
func (a *Augmenter) augmentReviews(ctx context.Context, markup map[string]interface{}, prod content.Product) {
	toggles, err := a.settings.Toggles(ctx)
	if err != nil {
		a.logger.WithError(err).Warn("toggles unavailable, leaving reviews as-is", nil)
		return
	}
	if !toggles.RebuildReviews {
		delete(markup, "review")
		return
	}
	if a.reviews == nil {
		return
	}

	list, err := a.reviews.ForProduct(ctx, prod.ID, a.config.MaxReviews)
	if err != nil {
		a.logger.WithError(err).Warn("reviews unavailable, leaving markup as-is", nil)
		return
	}

	var nodes []*schema.Node
	for _, r := range list {
		if r.Rating <= 0 {
			continue
		}
		nodes = append(nodes, reviewNode(r))
	}
	if len(nodes) == 0 {
		delete(markup, "review")
		return
	}
	markup["review"] = nodes
}

func reviewNode(r content.Review) *schema.Node {
	name := r.Author
	if r.Verified {
		name += " (verified owner)"
	}
	n := schema.NewNode(schema.TypeReview)
	if !r.Date.IsZero() {
		n.Set("datePublished", r.Date.Format("2006-01-02"))
	}
	n.SetString("description", r.Text)
	n.Set("reviewRating", schema.NewNode(schema.TypeRating).
		Set("ratingValue", r.Rating).
		Set("bestRating", 5).
		Set("worstRating", 1))
	n.Set("author", schema.NewNode(schema.TypePerson).Set("name", name))
	return n
}

func (a *Augmenter) augmentSpecifics(markup map[string]interface{}, prod content.Product) {
	pairs := specifics.Parse(prod.Specifics)
	nodes := specifics.PropertyNodes(pairs)
	if len(nodes) > 0 {
		markup["additionalProperty"] = nodes
	}
}
