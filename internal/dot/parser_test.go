package dot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("simple digraph", func(t *testing.T) {
		g, err := Parse(`
			digraph G {
				node1 [label="Application 1", type="application"];
				node2 [label="Application 2", type="application"];
				node1 -> node2 [label="uses"];
			}
		`)
		require.NoError(t, err)
		assert.Equal(t, "G", g.Name)
		assert.True(t, g.Directed)
		require.Len(t, g.Nodes, 2)
		assert.Equal(t, "node1", g.Nodes[0].ID)
		assert.Equal(t, "Application 1", g.Nodes[0].Attr("label"))
		assert.Equal(t, "application", g.Nodes[0].Attr("type"))
		require.Len(t, g.Edges, 1)
		assert.Equal(t, "node1", g.Edges[0].Source)
		assert.Equal(t, "node2", g.Edges[0].Target)
		assert.Equal(t, "uses", g.Edges[0].Attr("label"))
	})

	t.Run("empty input is an empty graph", func(t *testing.T) {
		for _, src := range []string{"", "   \n\t  ", "// nothing\n/* here */\n# at all"} {
			g, err := Parse(src)
			require.NoError(t, err)
			assert.Empty(t, g.Nodes)
			assert.Empty(t, g.Edges)
		}
	})

	t.Run("comments are ignored", func(t *testing.T) {
		g, err := Parse(`
			digraph {
				// line comment
				a; # hash comment
				/* block
				   comment */ b;
			}
		`)
		require.NoError(t, err)
		require.Len(t, g.Nodes, 2)
	})

	t.Run("chained edges expand pairwise", func(t *testing.T) {
		g, err := Parse(`digraph { a -> b -> c [label="flows"]; }`)
		require.NoError(t, err)
		require.Len(t, g.Nodes, 3)
		require.Len(t, g.Edges, 2)
		assert.Equal(t, "a", g.Edges[0].Source)
		assert.Equal(t, "b", g.Edges[0].Target)
		assert.Equal(t, "b", g.Edges[1].Source)
		assert.Equal(t, "c", g.Edges[1].Target)
		assert.Equal(t, "flows", g.Edges[0].Attr("label"))
		assert.Equal(t, "flows", g.Edges[1].Attr("label"))
	})

	t.Run("quoted identifiers with escapes", func(t *testing.T) {
		g, err := Parse(`digraph { "web \"app\"" [label="say \"hi\""]; }`)
		require.NoError(t, err)
		require.Len(t, g.Nodes, 1)
		assert.Equal(t, `web "app"`, g.Nodes[0].ID)
		assert.Equal(t, `say "hi"`, g.Nodes[0].Attr("label"))
	})

	t.Run("undirected edges", func(t *testing.T) {
		g, err := Parse(`graph { a -- b; }`)
		require.NoError(t, err)
		assert.False(t, g.Directed)
		require.Len(t, g.Edges, 1)
		assert.False(t, g.Edges[0].Directed)
	})

	t.Run("parallel edges are preserved distinctly", func(t *testing.T) {
		g, err := Parse(`digraph { a -> b [label="uses"]; a -> b [label="flows"]; }`)
		require.NoError(t, err)
		require.Len(t, g.Edges, 2)
		assert.Equal(t, "uses", g.Edges[0].Attr("label"))
		assert.Equal(t, "flows", g.Edges[1].Attr("label"))
	})

	t.Run("node redeclaration merges last-write-wins", func(t *testing.T) {
		g, err := Parse(`digraph {
			a [label="one", color="red"];
			b;
			a [label="two"];
		}`)
		require.NoError(t, err)
		require.Len(t, g.Nodes, 2)
		assert.Equal(t, "a", g.Nodes[0].ID, "first-seen position is kept")
		assert.Equal(t, "two", g.Nodes[0].Attr("label"))
		assert.Equal(t, "red", g.Nodes[0].Attr("color"))
	})

	t.Run("default attribute blocks", func(t *testing.T) {
		g, err := Parse(`digraph {
			node [shape="box"];
			edge [style="dashed"];
			a;
			b [shape="circle"];
			a -> b;
		}`)
		require.NoError(t, err)
		assert.Equal(t, "box", g.Nodes[0].Attr("shape"))
		assert.Equal(t, "circle", g.Nodes[1].Attr("shape"), "local attribute overrides default")
		assert.Equal(t, "dashed", g.Edges[0].Attr("style"))
	})

	t.Run("defaults do not leak out of subgraphs", func(t *testing.T) {
		g, err := Parse(`digraph {
			subgraph inner {
				node [shape="box"];
				a;
			}
			b;
		}`)
		require.NoError(t, err)
		assert.Equal(t, "box", g.NodeByID("a").Attr("shape"))
		assert.Equal(t, "", g.NodeByID("b").Attr("shape"))
	})

	t.Run("subgraphs are flattened with membership attribute", func(t *testing.T) {
		g, err := Parse(`digraph {
			subgraph cluster_web {
				a;
				subgraph cluster_db {
					b;
				}
			}
			c;
		}`)
		require.NoError(t, err)
		require.Len(t, g.Nodes, 3)
		assert.Equal(t, "cluster_web", g.NodeByID("a").Attr(SubgraphAttr))
		assert.Equal(t, "cluster_web/cluster_db", g.NodeByID("b").Attr(SubgraphAttr))
		assert.Equal(t, "", g.NodeByID("c").Attr(SubgraphAttr))
	})

	t.Run("graph attributes", func(t *testing.T) {
		g, err := Parse(`digraph {
			rankdir = LR;
			graph [label="My System"];
		}`)
		require.NoError(t, err)
		assert.Equal(t, "LR", g.Attrs["rankdir"])
		assert.Equal(t, "My System", g.Attrs["label"])
	})

	t.Run("value-less attribute keeps its name as value", func(t *testing.T) {
		g, err := Parse(`digraph { a [standalone]; }`)
		require.NoError(t, err)
		assert.Equal(t, "standalone", g.Nodes[0].Attr("standalone"))
	})

	t.Run("edge nodes are materialized with defaults in force", func(t *testing.T) {
		g, err := Parse(`digraph {
			node [tier="web"];
			a -> b;
		}`)
		require.NoError(t, err)
		require.Len(t, g.Nodes, 2)
		assert.Equal(t, "web", g.Nodes[1].Attr("tier"))
	})
}

func TestParseErrors(t *testing.T) {
	t.Run("unterminated quoted string", func(t *testing.T) {
		_, err := Parse("digraph {\n  a [label=\"boom]\n}")
		var perr *ParseError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, 2, perr.Line)
		assert.Contains(t, perr.Message, "unterminated quoted string")
	})

	t.Run("unbalanced braces", func(t *testing.T) {
		_, err := Parse("digraph { a -> b ")
		var perr *ParseError
		require.ErrorAs(t, err, &perr)
		assert.Contains(t, perr.Message, "expected '}'")
	})

	t.Run("malformed attribute list", func(t *testing.T) {
		_, err := Parse("digraph { a [label=]; }")
		var perr *ParseError
		require.ErrorAs(t, err, &perr)
		assert.Contains(t, perr.Message, "malformed attribute list")
	})

	t.Run("missing graph keyword", func(t *testing.T) {
		_, err := Parse("flowchart { a -> b }")
		var perr *ParseError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, 1, perr.Line)
		assert.Contains(t, perr.Message, "expected 'graph' or 'digraph'")
	})

	t.Run("unterminated block comment", func(t *testing.T) {
		_, err := Parse("digraph { /* never closed ")
		var perr *ParseError
		require.ErrorAs(t, err, &perr)
		assert.Contains(t, perr.Message, "unterminated block comment")
	})

	t.Run("subgraph edge endpoint", func(t *testing.T) {
		_, err := Parse("digraph { a -> { b c } }")
		var perr *ParseError
		require.ErrorAs(t, err, &perr)
		assert.Contains(t, perr.Message, "subgraph edge endpoints")
	})

	t.Run("content after closing brace", func(t *testing.T) {
		_, err := Parse("digraph { a } b")
		var perr *ParseError
		require.ErrorAs(t, err, &perr)
		assert.Contains(t, perr.Message, "unexpected content")
	})
}
