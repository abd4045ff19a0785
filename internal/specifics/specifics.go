// internal/specifics/specifics.go
//
// Per-product "item specifics": free-text blocks of "Label: Value" lines
// maintained by the admin, surfaced both as a table model for templating and
// as PropertyValue nodes on product markup.
package specifics

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"schema-engine/internal/schema"
	"schema-engine/internal/textutil"
)

// Pair is one parsed label/value row. Value may carry a safe HTML subset.
type Pair struct {
	Label string
	Value string
}

var valuePolicy = bluemonday.UGCPolicy()

// Parse splits "Label: Value" lines into pairs. Lines without a colon, or
// with an empty side after trimming, are skipped. Values are sanitized to a
// safe HTML subset.
func Parse(content string) []Pair {
	var out []Pair
	for _, line := range textutil.SplitLines(content) {
		label, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		label = strings.TrimSpace(label)
		value = strings.TrimSpace(valuePolicy.Sanitize(value))
		if label == "" || value == "" {
			continue
		}
		out = append(out, Pair{Label: label, Value: value})
	}
	return out
}

// PropertyNodes converts pairs to schema.org PropertyValue nodes for the
// product's additionalProperty field. HTML in values is flattened to text.
var textPolicy = bluemonday.StrictPolicy()

func PropertyNodes(pairs []Pair) []*schema.Node {
	if len(pairs) == 0 {
		return nil
	}
	nodes := make([]*schema.Node, 0, len(pairs))
	for _, p := range pairs {
		nodes = append(nodes, schema.NewNode(schema.TypePropertyValue).
			Set("name", p.Label).
			Set("value", textutil.CollapseWhitespace(textPolicy.Sanitize(p.Value))))
	}
	return nodes
}
