// Package dot parses graph-description (DOT) text into a flat in-memory graph.
package dot

import "fmt"

// SubgraphAttr is the synthetic attribute recording the slash-joined path of
// named subgraphs a node was declared in. Subgraphs are flattened; the
// downstream pipeline works on a flat node/edge list.
const SubgraphAttr = "subgraph"

// Graph is the parsed document: ordered nodes and edges with attributes.
type Graph struct {
	Name     string
	Directed bool
	Strict   bool
	Attrs    map[string]string
	Nodes    []Node
	Edges    []Edge
}

// Node is a graph vertex. Redeclaring a node merges attributes
// last-write-wins while keeping the first-seen position.
type Node struct {
	ID    string
	Attrs map[string]string
}

// Edge connects two nodes. Parallel edges between the same pair are kept
// as distinct entries in declaration order.
type Edge struct {
	Source   string
	Target   string
	Directed bool
	Attrs    map[string]string
}

// Attr returns a node attribute, or "" when absent.
func (n *Node) Attr(key string) string {
	return n.Attrs[key]
}

// Attr returns an edge attribute, or "" when absent.
func (e *Edge) Attr(key string) string {
	return e.Attrs[key]
}

// NodeByID returns the node with the given id, or nil.
func (g *Graph) NodeByID(id string) *Node {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i]
		}
	}
	return nil
}

// ParseError reports malformed DOT input with a 1-based source position.
type ParseError struct {
	Line    int
	Column  int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Message)
}
