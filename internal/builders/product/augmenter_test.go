// internal/builders/product/augmenter_test.go
package product

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schema-engine/internal/common/logger"
	"schema-engine/internal/content"
	"schema-engine/internal/schema"
	"schema-engine/internal/settings"
)

type stubPages struct {
	urls map[int64]string
}

func (s stubPages) PageURL(_ context.Context, id int64) (string, error) {
	return s.urls[id], nil
}

type stubReviews struct {
	reviews []content.Review
	calls   int
}

func (s *stubReviews) ForProduct(_ context.Context, _ int64, limit int) ([]content.Review, error) {
	s.calls++
	if len(s.reviews) > limit {
		return s.reviews[:limit], nil
	}
	return s.reviews, nil
}

func (s *stubReviews) Ratings(context.Context) ([]float64, error) { return nil, nil }

func fixedNow() time.Time {
	return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
}

func newTestAugmenter(t *testing.T, st *settings.Settings, reviews *stubReviews) *Augmenter {
	t.Helper()
	pages := stubPages{urls: map[int64]string{
		42: "https://shop.example/returns",
		43: "https://shop.example/shipping",
	}}
	var src content.ReviewSource
	if reviews != nil {
		src = reviews
	}
	a := NewAugmenter(LoadConfig(), st, pages, src, logger.NewTestLogger(t))
	a.now = fixedNow
	return a
}

func simpleMarkup() map[string]interface{} {
	return map[string]interface{}{
		"@type": "Product",
		"name":  "Widget",
		"offers": []interface{}{
			map[string]interface{}{
				"@type":         "Offer",
				"price":         "19.99",
				"priceCurrency": "USD",
				"seller":        map[string]interface{}{"@type": "Organization", "name": "Acme"},
			},
		},
	}
}

func simpleProduct() content.Product {
	return content.Product{ID: 7, SKU: "W-1", Name: "Widget", Price: 19.99, Currency: "USD", InStock: true}
}

func TestAugmentNilMarkup(t *testing.T) {
	st := settings.New(settings.NewMemoryStore())
	a := newTestAugmenter(t, st, nil)
	assert.Nil(t, a.Augment(context.Background(), nil, simpleProduct()))
}

func TestAugmentSimpleOffer(t *testing.T) {
	ctx := context.Background()
	st := settings.New(settings.NewMemoryStore())
	require.NoError(t, st.SaveDomesticReturns(ctx, settings.ReturnPolicyRecord{
		Name: "Standard", Category: "FiniteReturnWindow", Days: 30, Countries: "US",
	}))
	require.NoError(t, st.SaveShippingProfiles(ctx, []settings.ShippingProfileRecord{
		{Rate: 5, Countries: "US"},
	}))
	require.NoError(t, st.SavePolicyPages(ctx, settings.PolicyPageBindings{ReturnsPageID: 42, ShippingPageID: 43}))

	a := newTestAugmenter(t, st, nil)
	markup := a.Augment(ctx, simpleMarkup(), simpleProduct())

	offer := markup["offers"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, schema.URINewCondition, offer["itemCondition"])
	assert.Equal(t, "2025-12-31", offer["priceValidUntil"])
	assert.NotContains(t, offer, "seller")

	rp := offer["hasMerchantReturnPolicy"].(*schema.Node)
	assert.Equal(t, schema.TypeMerchantReturnPolicy, rp.Type())
	rpURL, _ := rp.Get("url")
	assert.Equal(t, "https://shop.example/returns", rpURL)
	days, _ := rp.Get("merchantReturnDays")
	assert.Equal(t, 30, days)

	shipping := offer["shippingDetails"].([]*schema.Node)
	require.Len(t, shipping, 1)
	link, _ := shipping[0].Get("shippingSettingsLink")
	assert.Equal(t, "https://shop.example/shipping", link)
}

func TestAugmentNoOffersIsANoOp(t *testing.T) {
	ctx := context.Background()
	st := settings.New(settings.NewMemoryStore())
	a := newTestAugmenter(t, st, nil)

	markup := map[string]interface{}{"@type": "Product", "name": "Widget"}
	out := a.Augment(ctx, markup, simpleProduct())
	assert.NotContains(t, out, "offers")
	assert.NotContains(t, out, "additionalProperty")
}

func TestAugmentVariableProductAggregateOffer(t *testing.T) {
	ctx := context.Background()
	st := settings.New(settings.NewMemoryStore())

	prod := simpleProduct()
	prod.Variations = []content.Variation{
		{
			SKU:     "W-1-S",
			Price:   15,
			InStock: true,
			URL:     "https://shop.example/widget?size=s",
			Attributes: []content.AttributeValue{
				{Name: "Size", Value: "Small"},
				{Name: "Color", Value: "Red"},
			},
		},
		{
			SKU:        "W-1-L",
			Price:      25,
			InStock:    false,
			URL:        "https://shop.example/widget?size=l",
			Attributes: []content.AttributeValue{{Name: "Size", Value: "Large"}},
		},
	}

	a := newTestAugmenter(t, st, nil)
	markup := a.Augment(ctx, simpleMarkup(), prod)

	agg := markup["offers"].([]interface{})[0].(*schema.Node)
	assert.Equal(t, schema.TypeAggregateOffer, agg.Type())

	low, _ := agg.Get("lowPrice")
	assert.Equal(t, 15.0, low)
	high, _ := agg.Get("highPrice")
	assert.Equal(t, 25.0, high)
	count, _ := agg.Get("offerCount")
	assert.Equal(t, 2, count)
	cond, _ := agg.Get("itemCondition")
	assert.Equal(t, schema.URINewCondition, cond)
	until, _ := agg.Get("priceValidUntil")
	assert.Equal(t, "2025-12-31", until)

	offersVal, _ := agg.Get("offers")
	variants := offersVal.([]*schema.Node)
	require.Len(t, variants, 2)

	name, _ := variants[0].Get("name")
	assert.Equal(t, "Small / Red", name)
	avail, _ := variants[0].Get("availability")
	assert.Equal(t, schema.URIInStock, avail)
	avail2, _ := variants[1].Get("availability")
	assert.Equal(t, schema.URIOutOfStock, avail2)
	sku, _ := variants[1].Get("sku")
	assert.Equal(t, "W-1-L", sku)
}

func TestAugmentRatingBounds(t *testing.T) {
	ctx := context.Background()
	st := settings.New(settings.NewMemoryStore())
	a := newTestAugmenter(t, st, nil)

	markup := simpleMarkup()
	markup["aggregateRating"] = map[string]interface{}{
		"@type":       "AggregateRating",
		"ratingValue": "4.2",
		"reviewCount": 12,
	}
	out := a.Augment(ctx, markup, simpleProduct())

	rating := out["aggregateRating"].(map[string]interface{})
	assert.Equal(t, 1, rating["worstRating"])
	assert.Equal(t, 5, rating["bestRating"])
	assert.Equal(t, "4.2", rating["ratingValue"])
}

func TestAugmentRebuildsReviews(t *testing.T) {
	ctx := context.Background()
	st := settings.New(settings.NewMemoryStore())
	reviews := &stubReviews{reviews: []content.Review{
		{Rating: 5, Author: "Pat", Text: "Great.", Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), Verified: true},
		{Rating: 0, Author: "Spam", Text: "unrated"},
		{Rating: 3, Author: "Sam", Text: "Okay."},
	}}

	a := newTestAugmenter(t, st, reviews)
	markup := simpleMarkup()
	markup["review"] = []interface{}{map[string]interface{}{"@type": "Review"}}
	out := a.Augment(ctx, markup, simpleProduct())

	nodes := out["review"].([]*schema.Node)
	require.Len(t, nodes, 2, "zero-rated review dropped")

	authorVal, _ := nodes[0].Get("author")
	name, _ := authorVal.(*schema.Node).Get("name")
	assert.Equal(t, "Pat (verified owner)", name)
	date, _ := nodes[0].Get("datePublished")
	assert.Equal(t, "2024-02-01", date)
	rr, _ := nodes[0].Get("reviewRating")
	rv, _ := rr.(*schema.Node).Get("ratingValue")
	assert.Equal(t, 5, rv)

	author2, _ := nodes[1].Get("author")
	name2, _ := author2.(*schema.Node).Get("name")
	assert.Equal(t, "Sam", name2)
}

func TestAugmentStripsReviewsWhenRebuildOff(t *testing.T) {
	ctx := context.Background()
	st := settings.New(settings.NewMemoryStore())
	require.NoError(t, st.SaveToggles(ctx, settings.GeneralToggles{ArticleSchemaEnabled: true, RebuildReviews: false}))

	reviews := &stubReviews{reviews: []content.Review{{Rating: 5, Author: "Pat"}}}
	a := newTestAugmenter(t, st, reviews)

	markup := simpleMarkup()
	markup["review"] = []interface{}{map[string]interface{}{"@type": "Review"}}
	out := a.Augment(ctx, markup, simpleProduct())

	assert.NotContains(t, out, "review")
	assert.Zero(t, reviews.calls, "no review query when rebuilding is off")
}

func TestAugmentItemSpecifics(t *testing.T) {
	ctx := context.Background()
	st := settings.New(settings.NewMemoryStore())
	a := newTestAugmenter(t, st, nil)

	prod := simpleProduct()
	prod.Specifics = "Material: Steel\nRatio: 2:1"
	out := a.Augment(ctx, simpleMarkup(), prod)

	props := out["additionalProperty"].([]*schema.Node)
	require.Len(t, props, 2)
	n0, _ := props[0].Get("name")
	assert.Equal(t, "Material", n0)
	v1, _ := props[1].Get("value")
	assert.Equal(t, "2:1", v1)
}
