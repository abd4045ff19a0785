// internal/builders/policypages/returns_test.go
package policypages

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schema-engine/internal/common/logger"
	"schema-engine/internal/content"
	"schema-engine/internal/render"
	"schema-engine/internal/schema"
	"schema-engine/internal/settings"
)

func boundPage(id int64) content.Page {
	return content.Page{ID: id, Type: content.PageTypePage, IsSingular: true}
}

func TestReturnsMatchesBoundPage(t *testing.T) {
	ctx := context.Background()
	st := settings.New(settings.NewMemoryStore())
	b := NewReturnsBuilder(LoadConfig(), st, logger.NewTestLogger(t))

	assert.False(t, b.Matches(ctx, boundPage(20)))

	require.NoError(t, st.SavePolicyPages(ctx, settings.PolicyPageBindings{ReturnsPageID: 20}))
	assert.True(t, b.Matches(ctx, boundPage(20)))
	assert.False(t, b.Matches(ctx, boundPage(21)))
	assert.False(t, b.Matches(ctx, content.Page{ID: 20, Type: content.PageTypePage, IsSingular: true, IsRevision: true}))
}

func TestReturnsOneDocumentPerPolicy(t *testing.T) {
	ctx := context.Background()
	st := settings.New(settings.NewMemoryStore())
	require.NoError(t, st.SavePolicyPages(ctx, settings.PolicyPageBindings{ReturnsPageID: 20}))
	require.NoError(t, st.SaveReturnPolicyList(ctx, []settings.ReturnPolicyRecord{
		{Name: "Standard", Category: "FiniteReturnWindow", Days: 30, Countries: "US"},
		{Name: "EU", Category: "UnlimitedWindow", Countries: "DE\nFR\nIT"},
		{Name: "Final sale", Category: "NotPermitted", Countries: "US"},
	}))

	b := NewReturnsBuilder(LoadConfig(), st, logger.NewTestLogger(t))
	docs, err := b.Build(ctx, render.NewContext(boundPage(20), logger.NewTestLogger(t)))
	require.NoError(t, err)
	require.Len(t, docs, 3)

	for _, doc := range docs {
		assert.Equal(t, schema.TypeMerchantReturnPolicy, doc.Type())
		c, ok := doc.Get("@context")
		require.True(t, ok)
		assert.Equal(t, "https://schema.org", c)
	}

	// A single country serializes as a bare string, several as an array.
	single, _ := docs[0].Get("applicableCountry")
	assert.Equal(t, "US", single)
	many, _ := docs[1].Get("applicableCountry")
	assert.Equal(t, []string{"DE", "FR", "IT"}, many)

	days, ok := docs[0].Get("merchantReturnDays")
	require.True(t, ok)
	assert.Equal(t, 30, days)
	_, ok = docs[1].Get("merchantReturnDays")
	assert.False(t, ok, "unlimited window carries no day count")

	method, ok := docs[0].Get("returnMethod")
	require.True(t, ok)
	assert.Equal(t, "https://schema.org/ReturnByMail", method, "methods default to mail")

	// NotPermitted: category only, gated fields suppressed.
	cat, _ := docs[2].Get("returnPolicyCategory")
	assert.Equal(t, "https://schema.org/MerchantReturnNotPermitted", cat)
	for _, absent := range []string{"returnFees", "refundType", "returnMethod", "merchantReturnDays"} {
		_, ok := docs[2].Get(absent)
		assert.Falsef(t, ok, "NotPermitted must omit %q", absent)
	}
}

func TestReturnsZeroDayWindowStillEmitsDays(t *testing.T) {
	ctx := context.Background()
	st := settings.New(settings.NewMemoryStore())
	require.NoError(t, st.SavePolicyPages(ctx, settings.PolicyPageBindings{ReturnsPageID: 20}))
	require.NoError(t, st.SaveReturnPolicyList(ctx, []settings.ReturnPolicyRecord{
		{Name: "Same day only", Category: "FiniteReturnWindow", Days: 0, Countries: "US"},
	}))

	b := NewReturnsBuilder(LoadConfig(), st, logger.NewTestLogger(t))
	docs, err := b.Build(ctx, render.NewContext(boundPage(20), logger.NewTestLogger(t)))
	require.NoError(t, err)
	require.Len(t, docs, 1)

	days, ok := docs[0].Get("merchantReturnDays")
	require.True(t, ok, "finite window always carries merchantReturnDays, even 0")
	assert.Equal(t, 0, days)
}

func TestReturnsFallsBackToDomesticGroup(t *testing.T) {
	ctx := context.Background()
	st := settings.New(settings.NewMemoryStore())
	require.NoError(t, st.SavePolicyPages(ctx, settings.PolicyPageBindings{ReturnsPageID: 20}))
	require.NoError(t, st.SaveOrganization(ctx, settings.OrganizationRecord{
		Name:    "Acme",
		Address: settings.AddressRecord{Country: "US"},
	}))
	require.NoError(t, st.SaveDomesticReturns(ctx, settings.ReturnPolicyRecord{
		Name: "House policy", Category: "FiniteReturnWindow", Days: 14,
	}))

	b := NewReturnsBuilder(LoadConfig(), st, logger.NewTestLogger(t))
	docs, err := b.Build(ctx, render.NewContext(boundPage(20), logger.NewTestLogger(t)))
	require.NoError(t, err)
	require.Len(t, docs, 1)

	country, _ := docs[0].Get("applicableCountry")
	assert.Equal(t, "US", country, "organization country used when the policy has none")
}

func TestReturnsNothingConfiguredEmitsNothing(t *testing.T) {
	ctx := context.Background()
	st := settings.New(settings.NewMemoryStore())
	require.NoError(t, st.SavePolicyPages(ctx, settings.PolicyPageBindings{ReturnsPageID: 20}))

	b := NewReturnsBuilder(LoadConfig(), st, logger.NewTestLogger(t))
	docs, err := b.Build(ctx, render.NewContext(boundPage(20), logger.NewTestLogger(t)))
	require.NoError(t, err)
	assert.Empty(t, docs)
}
