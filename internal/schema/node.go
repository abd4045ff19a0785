// internal/schema/node.go
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Node is one JSON-LD object with insertion-ordered keys. Ordering matters
// for stable output: documents serialize identically across renders.
type Node struct {
	keys []string
	vals map[string]interface{}
}

// NewNode creates a node with its @type set.
func NewNode(typ string) *Node {
	n := &Node{vals: make(map[string]interface{})}
	n.Set("@type", typ)
	return n
}

// NewDocument creates a top-level node carrying @context and @type.
func NewDocument(typ string) *Node {
	n := &Node{vals: make(map[string]interface{})}
	n.Set("@context", ContextURL)
	n.Set("@type", typ)
	return n
}

// Set stores a key, keeping first-insertion order on re-set.
func (n *Node) Set(key string, value interface{}) *Node {
	if _, ok := n.vals[key]; !ok {
		n.keys = append(n.keys, key)
	}
	n.vals[key] = value
	return n
}

// SetString stores the key only when the string is non-empty. Omission, not
// null, is the contract for every optional field.
func (n *Node) SetString(key, value string) *Node {
	if value != "" {
		n.Set(key, value)
	}
	return n
}

// Get returns the stored value for key.
func (n *Node) Get(key string) (interface{}, bool) {
	v, ok := n.vals[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (n *Node) Keys() []string {
	out := make([]string, len(n.keys))
	copy(out, n.keys)
	return out
}

// Type returns the node's @type, empty when unset.
func (n *Node) Type() string {
	if v, ok := n.vals["@type"]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// IsDegenerate reports whether the node carries nothing beyond the required
// @context/@type/@id markers. Degenerate documents must not be emitted.
func (n *Node) IsDegenerate() bool {
	for _, k := range n.keys {
		switch k {
		case "@context", "@type", "@id":
		default:
			return false
		}
	}
	return true
}

// MarshalJSON writes keys in insertion order without HTML escaping.
func (n *Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range n.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyJSON, err := encodeValue(k)
		if err != nil {
			return nil, err
		}
		buf.Write(keyJSON)
		buf.WriteByte(':')
		valJSON, err := encodeValue(n.vals[k])
		if err != nil {
			return nil, fmt.Errorf("marshal key %q: %w", k, err)
		}
		buf.Write(valJSON)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// encodeValue marshals a single value with SetEscapeHTML(false) so slashes
// and non-ASCII text survive verbatim.
func encodeValue(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
