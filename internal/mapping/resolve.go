package mapping

import (
	"strings"

	"github.com/dot2archimate/converter/internal/classify"
	"github.com/dot2archimate/converter/internal/dot"
)

// RelationshipKeywords is the fixed substring-match order for edge labels
// that match no rule key exactly. The first keyword contained in the label
// wins when several are present.
var RelationshipKeywords = []string{
	"uses", "flows", "depends", "creates", "triggers", "composition", "access",
}

// Generic layer keywords accepted in a node's type attribute even when the
// active configuration carries no rule for them.
var genericNodeTypes = map[string]string{
	"business":    "business-actor",
	"application": "application-component",
	"technology":  "technology-node",
}

// fallbackCarried is what the generic and default resolution paths carry:
// the display name and the documentation source.
var fallbackCarried = []string{"label", "description"}

// Resolution is the outcome of resolving one node or edge: the target type
// and the attributes the matched rule allows through. Everything else is
// dropped so source-notation metadata never leaks into the model.
type Resolution struct {
	Type    string
	Carried map[string]string
}

// ResolveNode maps a classified node to an element type. Resolution order:
// family rule, explicit type-attribute rule, generic layer keyword,
// configured default. Pure and safe for concurrent use with a shared Config.
func ResolveNode(node *dot.Node, cls classify.Classification, cfg *Config) Resolution {
	if cls.Family != "" {
		if rule, ok := cfg.NodeRule(cls.Family); ok {
			return Resolution{Type: rule.Type, Carried: carried(node.Attrs, rule.Attributes)}
		}
	}
	if typ := strings.ToLower(node.Attr("type")); typ != "" {
		if rule, ok := cfg.NodeRule(typ); ok {
			return Resolution{Type: rule.Type, Carried: carried(node.Attrs, rule.Attributes)}
		}
		if generic, ok := genericNodeTypes[typ]; ok {
			return Resolution{Type: generic, Carried: carried(node.Attrs, fallbackCarried)}
		}
	}
	return Resolution{Type: cfg.DefaultNodeType, Carried: carried(node.Attrs, fallbackCarried)}
}

// ResolveEdge maps an edge to a relationship type. Resolution order: exact
// label rule, first RelationshipKeywords entry contained in the label that
// has a rule, configured default.
func ResolveEdge(edge *dot.Edge, cfg *Config) Resolution {
	label := strings.ToLower(edge.Attr("label"))
	if label != "" {
		if rule, ok := cfg.RelationshipRule(label); ok {
			return Resolution{Type: rule.Type, Carried: carried(edge.Attrs, rule.Attributes)}
		}
		for _, kw := range RelationshipKeywords {
			if !strings.Contains(label, kw) {
				continue
			}
			if rule, ok := cfg.RelationshipRule(kw); ok {
				return Resolution{Type: rule.Type, Carried: carried(edge.Attrs, rule.Attributes)}
			}
		}
	}
	return Resolution{Type: cfg.DefaultRelationshipType, Carried: carried(edge.Attrs, []string{"label"})}
}

func carried(attrs map[string]string, names []string) map[string]string {
	out := make(map[string]string, len(names))
	for _, name := range names {
		if v, ok := attrs[name]; ok {
			out[name] = v
		}
	}
	return out
}
