package dot

import (
	"fmt"
	"strings"
)

// Parse turns DOT text into a Graph. Malformed input yields a *ParseError
// with a 1-based line/column. Empty or comment-only input is a valid empty
// graph, not an error.
func Parse(src string) (*Graph, error) {
	toks, lerr := newLexer(src).tokens()
	if lerr != nil {
		return nil, lerr
	}
	p := &parser{
		toks:      toks,
		g:         &Graph{Attrs: map[string]string{}},
		nodeIndex: map[string]int{},
	}
	if err := p.parseDocument(); err != nil {
		return nil, err
	}
	return p.g, nil
}

type parser struct {
	toks      []token
	pos       int
	g         *Graph
	nodeIndex map[string]int
}

// scope carries the default-attribute state for one brace level. Entering a
// subgraph copies the parent scope so defaults set inside do not leak out.
type scope struct {
	nodeDefaults map[string]string
	edgeDefaults map[string]string
	path         []string
}

func (s *scope) child(name string) *scope {
	c := &scope{
		nodeDefaults: copyAttrs(s.nodeDefaults),
		edgeDefaults: copyAttrs(s.edgeDefaults),
		path:         s.path,
	}
	if name != "" {
		c.path = append(append([]string(nil), s.path...), name)
	}
	return c
}

func (p *parser) cur() token  { return p.toks[p.pos] }
func (p *parser) next() token { t := p.toks[p.pos]; p.pos++; return t }

func (p *parser) errf(t token, format string, args ...any) *ParseError {
	return &ParseError{Line: t.line, Column: t.col, Message: fmt.Sprintf(format, args...)}
}

func (p *parser) parseDocument() *ParseError {
	if p.cur().kind == tkEOF {
		return nil
	}
	t := p.next()
	if t.kind != tkIdent {
		return p.errf(t, "expected 'graph' or 'digraph', got %q", t.text)
	}
	if !t.quoted && strings.EqualFold(t.text, "strict") {
		p.g.Strict = true
		t = p.next()
		if t.kind != tkIdent {
			return p.errf(t, "expected 'graph' or 'digraph' after 'strict'")
		}
	}
	switch {
	case !t.quoted && strings.EqualFold(t.text, "digraph"):
		p.g.Directed = true
	case !t.quoted && strings.EqualFold(t.text, "graph"):
		p.g.Directed = false
	default:
		return p.errf(t, "expected 'graph' or 'digraph', got %q", t.text)
	}
	if p.cur().kind == tkIdent {
		p.g.Name = p.next().text
	}
	if open := p.next(); open.kind != tkLBrace {
		return p.errf(open, "expected '{' to open the graph body")
	}
	root := &scope{nodeDefaults: map[string]string{}, edgeDefaults: map[string]string{}}
	if err := p.parseStatements(root); err != nil {
		return err
	}
	if closing := p.next(); closing.kind != tkRBrace {
		return p.errf(closing, "expected '}' to close the graph body")
	}
	if extra := p.cur(); extra.kind != tkEOF {
		return p.errf(extra, "unexpected content after closing '}'")
	}
	return nil
}

func (p *parser) parseStatements(sc *scope) *ParseError {
	for {
		switch t := p.cur(); t.kind {
		case tkRBrace, tkEOF:
			return nil
		case tkSemi:
			p.next()
		case tkLBrace:
			p.next()
			if err := p.parseStatements(sc.child("")); err != nil {
				return err
			}
			if closing := p.next(); closing.kind != tkRBrace {
				return p.errf(closing, "expected '}' to close subgraph")
			}
		case tkIdent:
			if err := p.parseIdentStatement(sc); err != nil {
				return err
			}
		default:
			return p.errf(t, "unexpected %q", t.text)
		}
	}
}

func (p *parser) parseIdentStatement(sc *scope) *ParseError {
	t := p.next()
	if !t.quoted {
		switch strings.ToLower(t.text) {
		case "node":
			attrs, err := p.parseAttrLists()
			if err != nil {
				return err
			}
			mergeAttrs(sc.nodeDefaults, attrs)
			return nil
		case "edge":
			attrs, err := p.parseAttrLists()
			if err != nil {
				return err
			}
			mergeAttrs(sc.edgeDefaults, attrs)
			return nil
		case "graph":
			attrs, err := p.parseAttrLists()
			if err != nil {
				return err
			}
			mergeAttrs(p.g.Attrs, attrs)
			return nil
		case "subgraph":
			return p.parseSubgraph(sc)
		}
	}

	// key = value at statement level sets a graph attribute.
	if p.cur().kind == tkEq {
		p.next()
		v := p.next()
		if v.kind != tkIdent {
			return p.errf(v, "expected value after '='")
		}
		p.g.Attrs[t.text] = v.text
		return nil
	}

	// Node statement or edge chain starting at t.
	endpoints := []token{t}
	var directed []bool
	for p.cur().kind == tkArrow || p.cur().kind == tkUndirop {
		op := p.next()
		directed = append(directed, op.kind == tkArrow)
		ep := p.next()
		if ep.kind == tkLBrace || (ep.kind == tkIdent && !ep.quoted && strings.EqualFold(ep.text, "subgraph")) {
			return p.errf(ep, "subgraph edge endpoints are not supported")
		}
		if ep.kind != tkIdent {
			return p.errf(ep, "expected node identifier after %q", op.text)
		}
		endpoints = append(endpoints, ep)
	}

	attrs, err := p.parseAttrLists()
	if err != nil {
		return err
	}

	if len(endpoints) == 1 {
		p.declareNode(t.text, attrs, sc)
		return nil
	}
	for _, ep := range endpoints {
		p.ensureNode(ep.text, sc)
	}
	// Chains expand pairwise; every pair gets the statement's attributes
	// over the edge defaults in force.
	for i := 0; i+1 < len(endpoints); i++ {
		edgeAttrs := copyAttrs(sc.edgeDefaults)
		mergeAttrs(edgeAttrs, attrs)
		p.g.Edges = append(p.g.Edges, Edge{
			Source:   endpoints[i].text,
			Target:   endpoints[i+1].text,
			Directed: directed[i],
			Attrs:    edgeAttrs,
		})
	}
	return nil
}

func (p *parser) parseSubgraph(sc *scope) *ParseError {
	name := ""
	if p.cur().kind == tkIdent {
		name = p.next().text
	}
	open := p.next()
	if open.kind != tkLBrace {
		return p.errf(open, "expected '{' after subgraph")
	}
	if err := p.parseStatements(sc.child(name)); err != nil {
		return err
	}
	if closing := p.next(); closing.kind != tkRBrace {
		return p.errf(closing, "expected '}' to close subgraph")
	}
	if op := p.cur(); op.kind == tkArrow || op.kind == tkUndirop {
		return p.errf(op, "subgraph edge endpoints are not supported")
	}
	return nil
}

// parseAttrLists consumes zero or more bracketed attribute lists
// ([k=v, k2="v"]; DOT allows several in a row) and merges them in order.
func (p *parser) parseAttrLists() (map[string]string, *ParseError) {
	var attrs map[string]string
	for p.cur().kind == tkLBracket {
		p.next()
		if attrs == nil {
			attrs = map[string]string{}
		}
		for {
			t := p.cur()
			if t.kind == tkRBracket {
				p.next()
				break
			}
			if t.kind != tkIdent {
				return nil, p.errf(t, "malformed attribute list: expected attribute name")
			}
			key := p.next().text
			value := key // value-less attributes keep their own name as value
			if p.cur().kind == tkEq {
				p.next()
				v := p.next()
				if v.kind != tkIdent {
					return nil, p.errf(v, "malformed attribute list: expected value for %q", key)
				}
				value = v.text
			}
			attrs[key] = value
			for p.cur().kind == tkComma || p.cur().kind == tkSemi {
				p.next()
			}
		}
	}
	return attrs, nil
}

func (p *parser) declareNode(id string, attrs map[string]string, sc *scope) {
	if i, ok := p.nodeIndex[id]; ok {
		mergeAttrs(p.g.Nodes[i].Attrs, attrs)
		p.recordSubgraph(&p.g.Nodes[i], sc)
		return
	}
	node := Node{ID: id, Attrs: copyAttrs(sc.nodeDefaults)}
	mergeAttrs(node.Attrs, attrs)
	p.nodeIndex[id] = len(p.g.Nodes)
	p.g.Nodes = append(p.g.Nodes, node)
	p.recordSubgraph(&p.g.Nodes[len(p.g.Nodes)-1], sc)
}

func (p *parser) ensureNode(id string, sc *scope) {
	if _, ok := p.nodeIndex[id]; ok {
		return
	}
	p.declareNode(id, nil, sc)
}

func (p *parser) recordSubgraph(n *Node, sc *scope) {
	if len(sc.path) == 0 {
		return
	}
	if _, ok := n.Attrs[SubgraphAttr]; !ok {
		n.Attrs[SubgraphAttr] = strings.Join(sc.path, "/")
	}
}

func copyAttrs(src map[string]string) map[string]string {
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

func mergeAttrs(dst, src map[string]string) {
	for k, v := range src {
		dst[k] = v
	}
}
