// Package archimate builds the target ArchiMate model from a parsed graph
// and renders it as exchange-format XML.
package archimate

import "strings"

// Layer is the coarse architecture category an element belongs to, used to
// group output sections.
type Layer string

const (
	LayerBusiness    Layer = "business"
	LayerApplication Layer = "application"
	LayerTechnology  Layer = "technology"
)

// layerOrder is the fixed section order of the exchange document.
var layerOrder = []Layer{LayerBusiness, LayerApplication, LayerTechnology}

// DeriveLayer maps a kebab-case target type to its layer by prefix.
// Unprefixed types land in the application layer.
func DeriveLayer(targetType string) Layer {
	switch {
	case strings.HasPrefix(targetType, "business-"):
		return LayerBusiness
	case strings.HasPrefix(targetType, "technology-"):
		return LayerTechnology
	default:
		return LayerApplication
	}
}

// Property is a carried key/value attribute emitted on an element or
// relationship.
type Property struct {
	Key   string
	Value string
}

// Element is one model vertex.
type Element struct {
	ID            string
	Name          string
	Type          string // kebab-case target type, e.g. application-component
	Layer         Layer
	Documentation string
	Properties    []Property
}

// Relationship connects two elements by id.
type Relationship struct {
	ID         string
	Source     string
	Target     string
	Type       string
	Name       string
	Properties []Property
}

// Model is the assembled conversion output. Slices keep insertion order;
// the serializer must not reorder them beyond layer grouping.
type Model struct {
	Name          string
	Elements      []Element
	Relationships []Relationship
}

// TypeName converts a kebab-case target type to the exchange format's
// PascalCase xsi:type (application-component -> ApplicationComponent).
func TypeName(targetType string) string {
	parts := strings.Split(targetType, "-")
	var b strings.Builder
	for _, part := range parts {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}
