// internal/render/engine.go
package render

import (
	"context"
	"time"

	"schema-engine/internal/common/logger"
	"schema-engine/internal/common/metrics"
	"schema-engine/internal/content"
	"schema-engine/internal/schema"
)

// Builder produces zero or more documents for one render. Matches is the
// page-identity half of the emission gate; the once-per-render half lives in
// the engine.
type Builder interface {
	Name() string
	Matches(ctx context.Context, page content.Page) bool
	Build(ctx context.Context, rc *Context) ([]*schema.Node, error)
}

// Engine runs gated builders for a render and collects their script blocks.
type Engine struct {
	builders []Builder
	validate bool
	log      logger.Logger
}

func NewEngine(log logger.Logger, validate bool, builders ...Builder) *Engine {
	return &Engine{
		builders: builders,
		validate: validate,
		log:      log,
	}
}

// Render runs every registered builder for this page. Builder failures are
// logged and swallowed: the worst case is no structured data for this
// render, never a broken page.
func (e *Engine) Render(ctx context.Context, page content.Page) *Context {
	rc := NewContext(page, e.log)
	for _, b := range e.builders {
		e.Run(ctx, rc, b)
	}
	return rc
}

// Run executes one builder against the render context, applying the gate,
// the once-per-render guard and degenerate-document suppression. Safe to
// call repeatedly: the second call for the same builder is a no-op.
func (e *Engine) Run(ctx context.Context, rc *Context, b Builder) {
	name := b.Name()

	if !b.Matches(ctx, rc.Page) {
		metrics.DocumentsSuppressed.WithLabelValues(name, "gate").Inc()
		return
	}
	if !rc.Once(name) {
		return
	}

	start := time.Now()
	nodes, err := b.Build(ctx, rc)
	metrics.BuildDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	if err != nil {
		rc.Log.WithError(err).Warn("builder failed, emitting nothing", map[string]interface{}{
			"builder": name,
		})
		metrics.DocumentsSuppressed.WithLabelValues(name, "error").Inc()
		return
	}

	for _, node := range nodes {
		if node == nil || node.IsDegenerate() {
			metrics.DocumentsSuppressed.WithLabelValues(name, "degenerate").Inc()
			continue
		}
		block, err := schema.ScriptBlock(node)
		if err != nil {
			rc.Log.WithError(err).Error("document serialization failed", map[string]interface{}{
				"builder": name,
			})
			metrics.DocumentsSuppressed.WithLabelValues(name, "serialize").Inc()
			continue
		}
		if e.validate {
			body, serr := schema.Serialize(node)
			if serr == nil {
				if verr := schema.ValidateDocument(body); verr != nil {
					rc.Log.WithError(verr).Warn("document failed envelope validation", map[string]interface{}{
						"builder": name,
					})
				}
			}
		}
		rc.Append(name, block)
		metrics.DocumentsEmitted.WithLabelValues(name).Inc()
	}
}
