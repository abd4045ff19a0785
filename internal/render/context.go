// internal/render/context.go
package render

import (
	"github.com/google/uuid"

	"schema-engine/internal/common/logger"
	"schema-engine/internal/content"
)

// Block is one emitted script element.
type Block struct {
	DocumentType string
	HTML         string
}

// Context carries the state of a single page render. Each render gets a
// fresh Context; the once-per-builder guard lives here and never crosses
// requests.
type Context struct {
	RenderID string
	Page     content.Page
	Log      logger.Logger

	emitted map[string]bool
	blocks  []Block
}

// NewContext starts a render for the given page.
func NewContext(page content.Page, log logger.Logger) *Context {
	id := uuid.NewString()
	return &Context{
		RenderID: id,
		Page:     page,
		Log: log.WithFields(map[string]interface{}{
			"renderId": id,
			"pageId":   page.ID,
			"pageType": string(page.Type),
		}),
		emitted: make(map[string]bool),
	}
}

// Once reports whether name has not run yet this render, and marks it run.
func (c *Context) Once(name string) bool {
	if c.emitted[name] {
		return false
	}
	c.emitted[name] = true
	return true
}

// Append records one emitted document block.
func (c *Context) Append(docType, html string) {
	c.blocks = append(c.blocks, Block{DocumentType: docType, HTML: html})
}

// Blocks returns the emitted script elements in emission order.
func (c *Context) Blocks() []Block {
	return c.blocks
}

// Output concatenates the blocks for injection into page output.
func (c *Context) Output() string {
	out := ""
	for _, b := range c.blocks {
		out += b.HTML + "\n"
	}
	return out
}
