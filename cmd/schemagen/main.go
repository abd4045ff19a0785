// cmd/schemagen/main.go
//
// schemagen renders the structured-data blocks for a set of representative
// pages and prints them, which is the quickest way to eyeball what the
// configured settings produce. With Postgres/Redis reachable it runs against
// the real stores; otherwise it falls back to an in-memory store seeded with
// demo settings.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"schema-engine/internal/builders/article"
	"schema-engine/internal/builders/faq"
	"schema-engine/internal/builders/organization"
	"schema-engine/internal/builders/policypages"
	"schema-engine/internal/builders/product"
	"schema-engine/internal/common/config"
	"schema-engine/internal/common/database"
	"schema-engine/internal/common/logger"
	"schema-engine/internal/content"
	"schema-engine/internal/faqextract"
	"schema-engine/internal/ratings"
	"schema-engine/internal/render"
	"schema-engine/internal/settings"
)

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog = logger.New(cfg.Logging.Level, cfg.Logging.Format)
	log := logger.NewZapAdapter(zapLog)

	ctx := context.Background()

	store, cleanup := openStore(ctx, cfg, zapLog)
	defer cleanup()
	st := settings.New(store)

	rdb := openRedis(ctx, cfg, zapLog)
	if rdb != nil {
		defer rdb.Close()
	}

	if cfg.Metrics.Enabled {
		go serveMetrics(cfg.Metrics.Address, zapLog)
	}

	site := demoSite()
	pages := demoPages{}
	body := demoBody{}
	reviews := demoReviews{}
	posts := demoPosts{}

	rating := ratings.NewService(reviews, rdb,
		time.Duration(cfg.Caches.AggregateRatingTTLHours)*time.Hour, log)
	extractor := faqextract.New(body, rdb,
		time.Duration(cfg.Caches.FAQExtractionTTLHours)*time.Hour, cfg.Schema.MaxFAQItems, log)

	engine := render.NewEngine(log, cfg.Schema.ValidateOutput,
		organization.NewBuilder(organization.LoadConfig(), st, site, pages, rating, log),
		faq.NewBuilder(faq.LoadConfig(), st, extractor, log),
		policypages.NewReturnsBuilder(policypages.LoadConfig(), st, log),
		policypages.NewShippingBuilder(policypages.LoadConfig(), st, log),
		article.NewBuilder(article.LoadConfig(), st, site, posts, log),
	)

	for _, page := range demoRenders() {
		rc := engine.Render(ctx, page)
		fmt.Printf("--- %s (page %d) ---\n", page.Type, page.ID)
		if out := rc.Output(); out != "" {
			fmt.Print(out)
		} else {
			fmt.Println("(no documents)")
		}
	}

	printProductAugmentation(ctx, cfg, st, pages, reviews, log)
}

// openStore connects to Postgres, falling back to a seeded in-memory store
// when the database is unreachable.
func openStore(ctx context.Context, cfg *config.Config, zapLog *zap.Logger) (settings.Store, func()) {
	pg, err := database.NewPostgres(cfg.Database.Postgres)
	if err == nil {
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err = pg.Ping(pingCtx); err == nil {
			zapLog.Info("using postgres settings store")
			return settings.NewPostgresStore(pg.DB), func() { pg.Close() }
		}
		pg.Close()
	}
	zapLog.Warn("postgres unavailable, using seeded in-memory settings", zap.Error(err))

	mem := settings.NewMemoryStore()
	if err := seedDemoSettings(ctx, settings.New(mem)); err != nil {
		zapLog.Fatal("seed demo settings failed", zap.Error(err))
	}
	return mem, func() {}
}

func openRedis(ctx context.Context, cfg *config.Config, zapLog *zap.Logger) *redis.Client {
	rc, err := database.NewRedis(cfg.Database.Redis)
	if err != nil {
		zapLog.Warn("redis client init failed, caches disabled", zap.Error(err))
		return nil
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rc.Ping(pingCtx); err != nil {
		zapLog.Warn("redis unavailable, caches disabled", zap.Error(err))
		rc.Close()
		return nil
	}
	return rc.Client
}

func serveMetrics(addr string, zapLog *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	zapLog.Info("metrics listening", zap.String("address", addr))
	if err := http.ListenAndServe(addr, mux); err != nil {
		zapLog.Error("metrics server stopped", zap.Error(err))
	}
}

func printProductAugmentation(ctx context.Context, cfg *config.Config, st *settings.Settings, pages content.PageSource, reviews content.ReviewSource, log logger.Logger) {
	augCfg := product.LoadConfig()
	if cfg.Schema.MaxReviews > 0 {
		augCfg.MaxReviews = cfg.Schema.MaxReviews
	}
	aug := product.NewAugmenter(augCfg, st, pages, reviews, log)

	markup := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "Product",
		"name":     "Demo Widget",
		"sku":      "DW-100",
		"offers": []interface{}{
			map[string]interface{}{
				"@type":         "Offer",
				"price":         "19.99",
				"priceCurrency": "USD",
				"availability":  "https://schema.org/InStock",
				"seller":        map[string]interface{}{"@type": "Organization", "name": "Demo Store"},
			},
		},
		"aggregateRating": map[string]interface{}{
			"@type":       "AggregateRating",
			"ratingValue": "4.6",
			"reviewCount": 17,
		},
	}
	prod := content.Product{
		ID:        900,
		SKU:       "DW-100",
		Name:      "Demo Widget",
		Price:     19.99,
		Currency:  "USD",
		InStock:   true,
		URL:       "https://demo.example/product/widget",
		Specifics: "Material: Steel\nWeight: 1.2 kg",
	}

	out, err := json.MarshalIndent(aug.Augment(ctx, markup, prod), "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, "product markup:", err)
		return
	}
	fmt.Println("--- product (augmented markup) ---")
	fmt.Println(string(out))
}

// --- demo fixtures ---

const (
	demoFAQPageID      = 11
	demoReturnsPageID  = 12
	demoShippingPageID = 13
	demoPostID         = 21
)

func seedDemoSettings(ctx context.Context, st *settings.Settings) error {
	if err := st.SaveOrganization(ctx, settings.OrganizationRecord{
		OrgType:      "OnlineStore",
		Name:         "Demo Store",
		FoundingDate: "2015-06-01",
		Email:        "support@demo.example",
		Telephone:    "+1-555-0100",
		Address: settings.AddressRecord{
			Street:     "500 Commerce Way",
			Locality:   "Portland",
			Region:     "OR",
			PostalCode: "97201",
			Country:    "US",
		},
		SocialLinks:    []string{"https://social.example/demostore"},
		PaymentMethods: []string{"CreditCard", "PayPal"},
	}); err != nil {
		return err
	}
	if err := st.SaveDomesticReturns(ctx, settings.ReturnPolicyRecord{
		Name:     "Standard returns",
		Category: "FiniteReturnWindow",
		Days:     30,
		Fees:     "FreeReturn",
	}); err != nil {
		return err
	}
	if err := st.SaveInternationalReturns(ctx, settings.ReturnPolicyRecord{
		Name:      "International returns",
		Category:  "FiniteReturnWindow",
		Days:      60,
		Fees:      "CustomerResponsibility",
		Countries: "CA\nGB\nDE",
	}); err != nil {
		return err
	}
	if err := st.SaveShippingProfiles(ctx, []settings.ShippingProfileRecord{{
		Rate:        4.99,
		Currency:    "USD",
		HandlingMin: 1,
		HandlingMax: 2,
		TransitMin:  3,
		TransitMax:  7,
		Description: "Standard ground shipping",
		Countries:   "US",
	}}); err != nil {
		return err
	}
	if err := st.SaveFAQItems(ctx, []settings.FAQItemRecord{
		{Question: "Do you ship internationally?", Answer: "Yes, to Canada, the UK and Germany."},
		{Question: "How long do returns take?", Answer: "Refunds post within 5 business days of receipt."},
	}); err != nil {
		return err
	}
	return st.SavePolicyPages(ctx, settings.PolicyPageBindings{
		FAQPageID:      demoFAQPageID,
		ReturnsPageID:  demoReturnsPageID,
		ShippingPageID: demoShippingPageID,
	})
}

func demoRenders() []content.Page {
	return []content.Page{
		{ID: 1, Type: content.PageTypeFront, URL: "https://demo.example/", IsSingular: true},
		{ID: demoFAQPageID, Type: content.PageTypePage, URL: "https://demo.example/faq", IsSingular: true},
		{ID: demoReturnsPageID, Type: content.PageTypePage, URL: "https://demo.example/returns", IsSingular: true},
		{ID: demoShippingPageID, Type: content.PageTypePage, URL: "https://demo.example/shipping", IsSingular: true},
		{ID: demoPostID, Type: content.PageTypePost, URL: "https://demo.example/blog/care-guide", IsSingular: true},
	}
}

type demoSiteSource struct {
	site content.Site
}

func demoSite() demoSiteSource {
	return demoSiteSource{site: content.Site{
		Name:       "Demo Store",
		HomeURL:    "https://demo.example",
		AdminEmail: "admin@demo.example",
		Icon:       &content.Image{URL: "https://demo.example/icon.png", Width: 512, Height: 512},
	}}
}

func (d demoSiteSource) Site(context.Context) (content.Site, error) {
	return d.site, nil
}

type demoPages struct{}

func (demoPages) PageURL(_ context.Context, id int64) (string, error) {
	switch id {
	case demoFAQPageID:
		return "https://demo.example/faq", nil
	case demoReturnsPageID:
		return "https://demo.example/returns", nil
	case demoShippingPageID:
		return "https://demo.example/shipping", nil
	}
	return "", fmt.Errorf("unknown page %d", id)
}

type demoBody struct{}

func (demoBody) RenderedBody(context.Context, int64) (string, error) {
	return `<div class="faq-item">
  <h3 class="faq-question">Can I change my order?</h3>
  <div class="faq-answer">Within one hour of placing it, yes.</div>
</div>`, nil
}

type demoReviews struct{}

func (demoReviews) ForProduct(context.Context, int64, int) ([]content.Review, error) {
	return []content.Review{
		{Rating: 5, Author: "Jordan", Text: "Solid build, fast shipping.", Date: time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC), Verified: true},
		{Rating: 4, Author: "Riley", Text: "Does what it says.", Date: time.Date(2024, 4, 18, 0, 0, 0, 0, time.UTC)},
	}, nil
}

func (demoReviews) Ratings(context.Context) ([]float64, error) {
	return []float64{5, 4, 5, 4, 5}, nil
}

type demoPosts struct{}

func (demoPosts) Post(_ context.Context, id int64) (content.Post, error) {
	return content.Post{
		ID:          id,
		URL:         "https://demo.example/blog/care-guide",
		Title:       "Care Guide for Steel Widgets",
		Body:        "<p>Wipe with a dry cloth. Avoid abrasives.</p>",
		PublishedAt: time.Date(2024, 5, 20, 8, 0, 0, 0, time.UTC),
		ModifiedAt:  time.Date(2024, 5, 22, 10, 0, 0, 0, time.UTC),
		Author:      content.Author{Name: "Demo Author", URL: "https://demo.example/author/demo"},
		Categories:  []string{"Guides"},
	}, nil
}
