// internal/faqextract/extractor.go
//
// Extracts question/answer pairs from free-text-authored FAQ pages. The page
// markup contract is the .faq-item container with a .faq-question (optionally
// wrapping a .faq-text node) and a .faq-answer block.
package faqextract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/redis/go-redis/v9"

	"schema-engine/internal/common/logger"
	"schema-engine/internal/common/metrics"
	"schema-engine/internal/content"
	"schema-engine/internal/textutil"
)

// QA is one extracted pair, already cleaned.
type QA struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Extractor parses rendered page bodies and caches the result per page.
type Extractor struct {
	body  content.PageBodySource
	redis *redis.Client
	ttl   time.Duration
	max   int
	log   logger.Logger
}

func New(body content.PageBodySource, rdb *redis.Client, ttl time.Duration, maxItems int, log logger.Logger) *Extractor {
	return &Extractor{
		body:  body,
		redis: rdb,
		ttl:   ttl,
		max:   maxItems,
		log:   log,
	}
}

func cacheKey(pageID int64) string {
	return fmt.Sprintf("schema:faq:%d", pageID)
}

// Pairs returns the extracted Q/A pairs for the page, from cache when fresh.
func (e *Extractor) Pairs(ctx context.Context, pageID int64) ([]QA, error) {
	if e.redis != nil {
		if val, err := e.redis.Get(ctx, cacheKey(pageID)).Result(); err == nil {
			var pairs []QA
			if err := json.Unmarshal([]byte(val), &pairs); err == nil {
				metrics.CacheLookups.WithLabelValues("faq", "hit").Inc()
				return pairs, nil
			}
		}
		metrics.CacheLookups.WithLabelValues("faq", "miss").Inc()
	}

	html, err := e.body.RenderedBody(ctx, pageID)
	if err != nil {
		return nil, fmt.Errorf("load page body %d: %w", pageID, err)
	}
	pairs, err := e.extract(html)
	if err != nil {
		return nil, err
	}

	if e.redis != nil {
		data, _ := json.Marshal(pairs)
		if err := e.redis.Set(ctx, cacheKey(pageID), data, e.ttl).Err(); err != nil {
			e.log.WithError(err).Debug("faq cache write failed", map[string]interface{}{
				"pageId": pageID,
			})
		}
	}
	return pairs, nil
}

// InvalidateOnSave drops the cached pairs when the page itself is saved.
// Revisions never invalidate.
func (e *Extractor) InvalidateOnSave(ctx context.Context, savedPageID, faqPageID int64, isRevision bool) error {
	if isRevision || e.redis == nil {
		return nil
	}
	if faqPageID == 0 || savedPageID != faqPageID {
		return nil
	}
	return e.redis.Del(ctx, cacheKey(faqPageID)).Err()
}

func (e *Extractor) extract(html string) ([]QA, error) {
	if strings.TrimSpace(html) == "" {
		return nil, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse FAQ page HTML: %w", err)
	}

	// Non-content nodes would pollute the extracted text.
	doc.Find("script, style, pre, code").Remove()

	var pairs []QA
	seen := make(map[string]bool)

	doc.Find(".faq-item").Each(func(_ int, item *goquery.Selection) {
		if len(pairs) >= e.max {
			return
		}

		// Prefer the inner .faq-text node, fall back to the question
		// container's own text.
		qSel := item.Find(".faq-question .faq-text")
		if qSel.Length() == 0 {
			qSel = item.Find(".faq-question")
		}
		aSel := item.Find(".faq-answer")
		if qSel.Length() == 0 || aSel.Length() == 0 {
			return
		}

		question := textutil.CollapseWhitespace(qSel.First().Text())
		answer := textutil.CollapseWhitespace(aSel.First().Text())
		if question == "" || answer == "" {
			return
		}
		if seen[question] {
			return
		}
		seen[question] = true

		pairs = append(pairs, QA{Question: question, Answer: answer})
	})

	return pairs, nil
}
