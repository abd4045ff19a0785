// internal/schema/serializer.go
package schema

import (
	"fmt"
	"strings"
)

// Serialize renders one document to JSON-LD text. Slashes and non-ASCII
// characters stay verbatim; only the </script> close sequence is neutralized
// so the text can sit inside a script element.
func Serialize(doc *Node) (string, error) {
	data, err := doc.MarshalJSON()
	if err != nil {
		return "", fmt.Errorf("serialize %s document: %w", doc.Type(), err)
	}
	out := string(data)
	// A literal </script> inside a string value would close the surrounding
	// tag early. Escaping the slash keeps the JSON equivalent.
	out = strings.ReplaceAll(out, "</script", "<\\/script")
	return out, nil
}

// ScriptBlock wraps the serialized document in its script element.
func ScriptBlock(doc *Node) (string, error) {
	body, err := Serialize(doc)
	if err != nil {
		return "", err
	}
	return `<script type="application/ld+json">` + body + `</script>`, nil
}
