// Package jsonschema holds the minimal JSON Schema representation used to
// describe version wire shapes.
package jsonschema

// Schema is a minimal JSON Schema representation used for export.
type Schema struct {
	// Core
	Schema      string `json:"$schema,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type,omitempty"`
	Format      string `json:"format,omitempty"`
	Default     any    `json:"default,omitempty"`

	// String
	Pattern string `json:"pattern,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty"`

	// Array
	Items    *Schema `json:"items,omitempty"`
	MinItems *int    `json:"minItems,omitempty"`
	MaxItems *int    `json:"maxItems,omitempty"`

	// Union
	OneOf []*Schema `json:"oneOf,omitempty"`
}

// Draft is the dialect URI stamped on root schemas.
const Draft = "https://json-schema.org/draft/2020-12/schema"

// Int returns a pointer to n, for MinItems and MaxItems.
func Int(n int) *int { return &n }
