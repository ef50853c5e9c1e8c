package model

import (
	"time"

	"github.com/goccy/go-json"
)

// ProductIDField is the key under which a product's identifier is exposed.
const ProductIDField = "id"

// Product is a schema-less catalog record.
// Fields holds whatever the caller supplied; ID is assigned by the store.
type Product struct {
	ID        string
	Fields    map[string]any
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MarshalJSON flattens the product into a single object with the id alongside its fields.
func (p Product) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(p.Fields)+1)
	for k, v := range p.Fields {
		out[k] = v
	}
	out[ProductIDField] = p.ID
	return json.Marshal(out)
}

// ProductFields copies caller input, dropping the reserved id key.
// The store-assigned identifier is authoritative.
func ProductFields(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		if k == ProductIDField {
			continue
		}
		out[k] = v
	}
	return out
}
