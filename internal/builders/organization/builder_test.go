// internal/builders/organization/builder_test.go
package organization

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schema-engine/internal/common/logger"
	"schema-engine/internal/content"
	"schema-engine/internal/ratings"
	"schema-engine/internal/render"
	"schema-engine/internal/schema"
	"schema-engine/internal/settings"
)

type stubSite struct {
	site content.Site
}

func (s stubSite) Site(context.Context) (content.Site, error) { return s.site, nil }

type stubPages struct {
	urls map[int64]string
}

func (s stubPages) PageURL(_ context.Context, id int64) (string, error) {
	return s.urls[id], nil
}

type stubReviews struct {
	ratings []float64
}

func (s stubReviews) ForProduct(context.Context, int64, int) ([]content.Review, error) {
	return nil, nil
}

func (s stubReviews) Ratings(context.Context) ([]float64, error) {
	return s.ratings, nil
}

func frontPage() content.Page {
	return content.Page{ID: 1, Type: content.PageTypeFront, URL: "https://shop.example/", IsSingular: true}
}

func newTestBuilder(t *testing.T, st *settings.Settings, site content.Site, reviewRatings []float64) *Builder {
	t.Helper()
	log := logger.NewTestLogger(t)
	var rating *ratings.Service
	if reviewRatings != nil {
		rating = ratings.NewService(stubReviews{ratings: reviewRatings}, nil, 0, log)
	}
	pages := stubPages{urls: map[int64]string{42: "https://shop.example/returns"}}
	return NewBuilder(LoadConfig(), st, stubSite{site: site}, pages, rating, log)
}

func TestMatchesFrontPageOnly(t *testing.T) {
	st := settings.New(settings.NewMemoryStore())
	b := newTestBuilder(t, st, content.Site{HomeURL: "https://shop.example"}, nil)

	assert.True(t, b.Matches(context.Background(), frontPage()))
	assert.False(t, b.Matches(context.Background(), content.Page{ID: 7, Type: content.PageTypePage, IsSingular: true}))
	assert.False(t, b.Matches(context.Background(), content.Page{ID: 9, Type: content.PageTypePost, IsSingular: true}))
}

func TestBuildMinimalSiteIdentity(t *testing.T) {
	ctx := context.Background()
	st := settings.New(settings.NewMemoryStore())
	b := newTestBuilder(t, st, content.Site{Name: "Acme Parts", HomeURL: "https://shop.example"}, nil)

	rc := render.NewContext(frontPage(), logger.NewTestLogger(t))
	nodes, err := b.Build(ctx, rc)
	require.NoError(t, err)
	require.Len(t, nodes, 1)

	doc := nodes[0]
	assert.Equal(t, schema.TypeOnlineStore, doc.Type())

	id, _ := doc.Get("@id")
	assert.Equal(t, "https://shop.example#org", id)
	name, _ := doc.Get("name")
	assert.Equal(t, "Acme Parts", name)
	url, _ := doc.Get("url")
	assert.Equal(t, "https://shop.example", url)

	for _, absent := range []string{"telephone", "email", "address", "sameAs", "logo", "aggregateRating", "hasMerchantReturnPolicy", "areaServed", "priceRange", "acceptedPaymentMethod"} {
		_, ok := doc.Get(absent)
		assert.Falsef(t, ok, "field %q must be omitted, not null", absent)
	}
}

func TestBuildSettingsNameWinsOverSiteName(t *testing.T) {
	ctx := context.Background()
	st := settings.New(settings.NewMemoryStore())
	require.NoError(t, st.SaveOrganization(ctx, settings.OrganizationRecord{Name: "Acme GmbH"}))

	b := newTestBuilder(t, st, content.Site{Name: "Acme Parts", HomeURL: "https://shop.example"}, nil)
	nodes, err := b.Build(ctx, render.NewContext(frontPage(), logger.NewTestLogger(t)))
	require.NoError(t, err)
	require.Len(t, nodes, 1)

	name, _ := nodes[0].Get("name")
	assert.Equal(t, "Acme GmbH", name)
}

func TestBuildFullProfile(t *testing.T) {
	ctx := context.Background()
	st := settings.New(settings.NewMemoryStore())
	require.NoError(t, st.SaveOrganization(ctx, settings.OrganizationRecord{
		OrgType:      "LocalBusiness",
		Name:         "Acme Store",
		FoundingDate: "2009-04-01",
		Email:        "help@shop.example",
		Telephone:    "+1-555-0101",
		Address: settings.AddressRecord{
			Street:     "1 Main St",
			Locality:   "Springfield",
			Region:     "IL",
			PostalCode: "62701",
			Country:    "us",
		},
		SocialLinks:    []string{"https://x.example/acme", "https://social.example/acme"},
		PaymentMethods: []string{"CreditCard", "Klarna"},
		PriceRange:     "$$",
	}))
	require.NoError(t, st.SaveDomesticReturns(ctx, settings.ReturnPolicyRecord{
		Name:     "US returns",
		Category: "FiniteReturnWindow",
		Days:     30,
	}))
	require.NoError(t, st.SaveInternationalReturns(ctx, settings.ReturnPolicyRecord{
		Name:      "International returns",
		Category:  "NotPermitted",
		Countries: "CA\nGB",
	}))
	require.NoError(t, st.SavePolicyPages(ctx, settings.PolicyPageBindings{ReturnsPageID: 42}))

	site := content.Site{
		Name:    "Acme Parts",
		HomeURL: "https://shop.example",
		Icon:    &content.Image{URL: "https://shop.example/icon.png", Width: 512, Height: 512},
		Logo:    &content.Image{URL: "https://shop.example/logo.png", Width: 300, Height: 80},
	}
	b := newTestBuilder(t, st, site, []float64{5, 4})

	nodes, err := b.Build(ctx, render.NewContext(frontPage(), logger.NewTestLogger(t)))
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	doc := nodes[0]

	assert.Equal(t, schema.TypeLocalBusiness, doc.Type())

	pr, ok := doc.Get("priceRange")
	require.True(t, ok)
	assert.Equal(t, "$$", pr)

	logoVal, ok := doc.Get("logo")
	require.True(t, ok)
	logo := logoVal.(*schema.Node)
	lurl, _ := logo.Get("url")
	assert.Equal(t, "https://shop.example/icon.png", lurl, "square icon preferred over theme logo")
	w, _ := logo.Get("width")
	assert.Equal(t, 512, w)

	addrVal, ok := doc.Get("address")
	require.True(t, ok)
	country, _ := addrVal.(*schema.Node).Get("addressCountry")
	assert.Equal(t, "US", country, "country code upper-cased")

	pay, ok := doc.Get("acceptedPaymentMethod")
	require.True(t, ok)
	values := pay.([]interface{})
	require.Len(t, values, 2)
	assert.Equal(t, "https://schema.org/CreditCard", values[0])
	svc := values[1].(*schema.Node)
	assert.Equal(t, schema.TypePaymentService, svc.Type())
	svcName, _ := svc.Get("name")
	assert.Equal(t, "Klarna", svcName)

	cp, ok := doc.Get("contactPoint")
	require.True(t, ok)
	cpEmail, _ := cp.(*schema.Node).Get("email")
	assert.Equal(t, "help@shop.example", cpEmail)

	policiesVal, ok := doc.Get("hasMerchantReturnPolicy")
	require.True(t, ok)
	policies := policiesVal.([]*schema.Node)
	require.Len(t, policies, 2)

	// Domestic has no countries of its own and falls back to the
	// organization country; its URL comes from the bound returns page.
	domURL, _ := policies[0].Get("url")
	assert.Equal(t, "https://shop.example/returns", domURL)
	domCountry, _ := policies[0].Get("applicableCountry")
	assert.Equal(t, "US", domCountry)
	days, _ := policies[0].Get("merchantReturnDays")
	assert.Equal(t, 30, days)

	// International is NotPermitted: no fees, refund or methods.
	for _, absent := range []string{"returnFees", "refundType", "returnMethod", "merchantReturnDays"} {
		_, ok := policies[1].Get(absent)
		assert.Falsef(t, ok, "NotPermitted policy must omit %q", absent)
	}

	servedVal, ok := doc.Get("areaServed")
	require.True(t, ok)
	served := servedVal.([]*schema.Node)
	require.Len(t, served, 3)
	first, _ := served[0].Get("name")
	assert.Equal(t, "United States", first)
	second, _ := served[1].Get("name")
	assert.Equal(t, "Canada", second)

	aggVal, ok := doc.Get("aggregateRating")
	require.True(t, ok)
	rv, _ := aggVal.(*schema.Node).Get("ratingValue")
	assert.Equal(t, "4.5", rv)
	rcnt, _ := aggVal.(*schema.Node).Get("reviewCount")
	assert.Equal(t, 2, rcnt)
}

func TestBuildNoHomeURLEmitsNothing(t *testing.T) {
	ctx := context.Background()
	st := settings.New(settings.NewMemoryStore())
	b := newTestBuilder(t, st, content.Site{Name: "Acme"}, nil)

	nodes, err := b.Build(ctx, render.NewContext(frontPage(), logger.NewTestLogger(t)))
	require.NoError(t, err)
	assert.Empty(t, nodes)
}

func TestBuildZeroReviewsOmitsAggregateRating(t *testing.T) {
	ctx := context.Background()
	st := settings.New(settings.NewMemoryStore())
	b := newTestBuilder(t, st, content.Site{Name: "Acme", HomeURL: "https://shop.example"}, []float64{})

	nodes, err := b.Build(ctx, render.NewContext(frontPage(), logger.NewTestLogger(t)))
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	_, ok := nodes[0].Get("aggregateRating")
	assert.False(t, ok)
}
