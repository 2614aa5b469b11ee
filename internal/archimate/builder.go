package archimate

import (
	"fmt"
	"hash/fnv"
	"sort"
	"strings"

	"github.com/dot2archimate/converter/internal/classify"
	"github.com/dot2archimate/converter/internal/dot"
	"github.com/dot2archimate/converter/internal/mapping"
	"github.com/dot2archimate/converter/internal/result"
)

const (
	// Module containers use the generic component type; containment links
	// between a container and its contents are compositions.
	containerType   = "application-component"
	containmentType = "composition-relationship"

	// idSalt scopes identifier hashing to this converter, so reruns on the
	// same input reproduce the same ids.
	idSalt = "dot2archimate"
)

// ElementID derives the deterministic identifier for a named entity of the
// given kind ("node", "edge", "module", "model").
func ElementID(kind, name string) string {
	h := fnv.New64a()
	h.Write([]byte(idSalt))
	h.Write([]byte{0})
	h.Write([]byte(kind))
	h.Write([]byte{0})
	h.Write([]byte(name))
	return fmt.Sprintf("id-%016x", h.Sum64())
}

// Build assembles a Model from a parsed graph and the active rule config.
// It never fails: individually invalid relationships are dropped and
// reported as warnings, and output is produced best-effort.
func Build(g *dot.Graph, cfg *mapping.Config) (*Model, []result.Warning) {
	b := &builder{
		cfg:        cfg,
		elementIDs: make(map[string]string, len(g.Nodes)),
		containers: make(map[string]string),
	}
	return b.build(g)
}

type builder struct {
	cfg        *mapping.Config
	model      *Model
	elementIDs map[string]string // node id -> element id
	containers map[string]string // module path -> element id, per-build cache
	warnings   []result.Warning
}

func (b *builder) build(g *dot.Graph) (*Model, []result.Warning) {
	b.model = &Model{Name: modelName(g)}

	for i := range g.Nodes {
		b.addNode(&g.Nodes[i])
	}

	pairSeen := make(map[string]int, len(g.Edges))
	for i := range g.Edges {
		b.addEdge(&g.Edges[i], pairSeen)
	}

	b.dropDangling()
	return b.model, b.warnings
}

func (b *builder) addNode(node *dot.Node) {
	cls := classify.Classify(node.ID)
	res := mapping.ResolveNode(node, cls, b.cfg)

	id := ElementID("node", node.ID)
	b.elementIDs[node.ID] = id

	name := res.Carried["label"]
	if name == "" {
		name = node.ID
	}
	b.model.Elements = append(b.model.Elements, Element{
		ID:            id,
		Name:          name,
		Type:          res.Type,
		Layer:         DeriveLayer(res.Type),
		Documentation: res.Carried["description"],
		Properties:    properties(res.Carried, "label", "description"),
	})

	if parent := b.ensureContainers(cls.ModulePath); parent != "" {
		b.addContainment(parent, id)
	}
}

// ensureContainers materializes one container element per module path
// prefix, chained by containment links, and returns the deepest container's
// element id. The cache is scoped to this build only.
func (b *builder) ensureContainers(path []string) string {
	parent := ""
	for i := range path {
		key := strings.Join(path[:i+1], "/")
		id, ok := b.containers[key]
		if !ok {
			id = ElementID("module", key)
			b.containers[key] = id
			b.model.Elements = append(b.model.Elements, Element{
				ID:    id,
				Name:  path[i],
				Type:  containerType,
				Layer: DeriveLayer(containerType),
			})
			if parent != "" {
				b.addContainment(parent, id)
			}
		}
		parent = id
	}
	return parent
}

func (b *builder) addContainment(parentID, childID string) {
	b.model.Relationships = append(b.model.Relationships, Relationship{
		ID:     ElementID("containment", parentID+">"+childID),
		Source: parentID,
		Target: childID,
		Type:   containmentType,
	})
}

func (b *builder) addEdge(edge *dot.Edge, pairSeen map[string]int) {
	pair := edge.Source + "\x00" + edge.Target
	ordinal := pairSeen[pair]
	pairSeen[pair] = ordinal + 1

	srcID, srcOK := b.elementIDs[edge.Source]
	tgtID, tgtOK := b.elementIDs[edge.Target]
	if !srcOK || !tgtOK {
		missing := edge.Source
		if srcOK {
			missing = edge.Target
		}
		b.warnf(missing, "relationship %s -> %s references unknown node %q",
			edge.Source, edge.Target, missing)
		return
	}

	res := mapping.ResolveEdge(edge, b.cfg)
	b.model.Relationships = append(b.model.Relationships, Relationship{
		ID:         ElementID("edge", fmt.Sprintf("%s>%s#%d", edge.Source, edge.Target, ordinal)),
		Source:     srcID,
		Target:     tgtID,
		Type:       res.Type,
		Name:       res.Carried["label"],
		Properties: properties(res.Carried, "label"),
	})
}

// dropDangling removes relationships whose endpoints are not in the model.
// Normal builds cannot produce these, but graphs assembled programmatically
// can, and the invariant must hold either way.
func (b *builder) dropDangling() {
	known := make(map[string]bool, len(b.model.Elements))
	for i := range b.model.Elements {
		known[b.model.Elements[i].ID] = true
	}
	kept := b.model.Relationships[:0]
	for _, rel := range b.model.Relationships {
		if known[rel.Source] && known[rel.Target] {
			kept = append(kept, rel)
			continue
		}
		b.warnf("", "relationship %s references a missing element", rel.ID)
	}
	b.model.Relationships = kept
}

func (b *builder) warnf(nodeID, format string, args ...any) {
	b.warnings = append(b.warnings, result.Warning{
		Type:       "dangling_reference",
		Severity:   "warning",
		NodeID:     nodeID,
		Message:    fmt.Sprintf(format, args...),
		Suggestion: "Declare the referenced node or remove the edge",
	})
}

func modelName(g *dot.Graph) string {
	if g.Name != "" {
		return g.Name
	}
	if label := g.Attrs["label"]; label != "" {
		return label
	}
	return "Architecture"
}

// properties turns the carried attributes that have no dedicated field into
// key/value pairs, in sorted key order for deterministic output.
func properties(carried map[string]string, consumed ...string) []Property {
	skip := make(map[string]bool, len(consumed))
	for _, k := range consumed {
		skip[k] = true
	}
	keys := make([]string, 0, len(carried))
	for k := range carried {
		if !skip[k] {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return nil
	}
	sort.Strings(keys)
	out := make([]Property, 0, len(keys))
	for _, k := range keys {
		out = append(out, Property{Key: k, Value: carried[k]})
	}
	return out
}
