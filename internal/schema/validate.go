// internal/schema/validate.go
package schema

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// envelopeSchema is the minimal shape every emitted document must satisfy.
// This is a diagnostic net, not a full schema.org validator.
const envelopeSchema = `{
	"type": "object",
	"properties": {
		"@context": {"type": "string", "enum": ["https://schema.org"]},
		"@type": {"type": "string", "minLength": 1}
	},
	"required": ["@context", "@type"]
}`

var envelopeLoader = gojsonschema.NewStringLoader(envelopeSchema)

// ValidateDocument checks the serialized document against the envelope
// schema. It returns a joined description of all violations, or nil.
func ValidateDocument(jsonText string) error {
	result, err := gojsonschema.Validate(envelopeLoader, gojsonschema.NewStringLoader(jsonText))
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		msgs = append(msgs, desc.String())
	}
	return fmt.Errorf("document failed envelope check: %s", strings.Join(msgs, "; "))
}
