package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dot2archimate/converter/internal/classify"
	"github.com/dot2archimate/converter/internal/dot"
)

func node(id string, attrs map[string]string) *dot.Node {
	if attrs == nil {
		attrs = map[string]string{}
	}
	return &dot.Node{ID: id, Attrs: attrs}
}

func edge(attrs map[string]string) *dot.Edge {
	if attrs == nil {
		attrs = map[string]string{}
	}
	return &dot.Edge{Source: "a", Target: "b", Directed: true, Attrs: attrs}
}

func TestResolveNode(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("family rule wins over generic type attribute", func(t *testing.T) {
		n := node("aws_instance.web", map[string]string{"type": "application", "label": "Web"})
		res := ResolveNode(n, classify.Classify(n.ID), cfg)
		assert.Equal(t, "technology-node", res.Type)
	})

	t.Run("explicit type attribute matches a rule key", func(t *testing.T) {
		n := node("billing", map[string]string{"type": "business", "label": "Billing"})
		res := ResolveNode(n, classify.Classify(n.ID), cfg)
		assert.Equal(t, "business-actor", res.Type)
	})

	t.Run("generic layer keyword works without a rule entry", func(t *testing.T) {
		bare := &Config{
			DefaultNodeType:         "application-component",
			DefaultRelationshipType: "serving-relationship",
		}
		n := node("x", map[string]string{"type": "technology"})
		res := ResolveNode(n, classify.Classify(n.ID), bare)
		assert.Equal(t, "technology-node", res.Type)
	})

	t.Run("unknown node falls back to the default type", func(t *testing.T) {
		n := node("custom_widget", nil)
		res := ResolveNode(n, classify.Classify(n.ID), cfg)
		assert.Equal(t, cfg.DefaultNodeType, res.Type)
	})

	t.Run("only listed attributes are carried", func(t *testing.T) {
		n := node("aws_instance.web", map[string]string{
			"label":       "Web",
			"description": "front end",
			"shape":       "box",
			"color":       "red",
		})
		res := ResolveNode(n, classify.Classify(n.ID), cfg)
		assert.Equal(t, map[string]string{"label": "Web", "description": "front end"}, res.Carried)
	})
}

func TestResolveEdge(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("exact label match", func(t *testing.T) {
		res := ResolveEdge(edge(map[string]string{"label": "uses"}), cfg)
		assert.Equal(t, "serving-relationship", res.Type)
	})

	t.Run("label match is case-insensitive", func(t *testing.T) {
		res := ResolveEdge(edge(map[string]string{"label": "Uses"}), cfg)
		assert.Equal(t, "serving-relationship", res.Type)
	})

	t.Run("substring match", func(t *testing.T) {
		res := ResolveEdge(edge(map[string]string{"label": "reads and uses data"}), cfg)
		assert.Equal(t, "serving-relationship", res.Type)
	})

	// Pins the fixed keyword priority: when a label contains several
	// keywords, the first entry of RelationshipKeywords found in the label
	// wins, regardless of position in the label.
	t.Run("label with several keywords", func(t *testing.T) {
		require.Equal(t,
			[]string{"uses", "flows", "depends", "creates", "triggers", "composition", "access"},
			RelationshipKeywords)

		res := ResolveEdge(edge(map[string]string{"label": "flows then uses"}), cfg)
		assert.Equal(t, "serving-relationship", res.Type, "uses outranks flows")

		res = ResolveEdge(edge(map[string]string{"label": "triggers and flows"}), cfg)
		assert.Equal(t, "flow-relationship", res.Type, "flows outranks triggers")
	})

	t.Run("keyword without a rule entry is skipped", func(t *testing.T) {
		cfg := &Config{
			RelationshipRules: []RelationshipRule{
				{Key: "flows", Type: "flow-relationship", Attributes: []string{"label"}},
			},
			DefaultNodeType:         "application-component",
			DefaultRelationshipType: "serving-relationship",
		}
		res := ResolveEdge(edge(map[string]string{"label": "uses flows"}), cfg)
		assert.Equal(t, "flow-relationship", res.Type)
	})

	t.Run("missing label falls back to the default type", func(t *testing.T) {
		res := ResolveEdge(edge(nil), cfg)
		assert.Equal(t, cfg.DefaultRelationshipType, res.Type)
	})

	t.Run("unmatched label falls back and is still carried", func(t *testing.T) {
		res := ResolveEdge(edge(map[string]string{"label": "mystery"}), cfg)
		assert.Equal(t, cfg.DefaultRelationshipType, res.Type)
		assert.Equal(t, "mystery", res.Carried["label"])
	})
}
