// Copyright ©2026 The PFP-baselines Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ontology

import (
	"fmt"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/formats/rdf"
	"gonum.org/v1/gonum/graph/iterator"

	"github.com/kortschak/gogo"

	"github.com/atoffano/PFP-baselines/internal/obo"
)

// MarshalClosure returns a DOT encoding of the given terms and all their
// structural ancestors in the subgraph. The given terms are highlighted.
// Terms not in the subgraph are ignored.
func (s *Subgraph) MarshalClosure(name string, terms []string) ([]byte, error) {
	g := &closureGraph{
		Graph: s.g,
		sub:   s,
		keep:  make(map[int64]bool),
		seeds: make(map[int64]bool),
	}
	c := NewClosure(s)
	for _, id := range terms {
		t, ok := s.termFor(id)
		if !ok {
			continue
		}
		g.keep[t.ID()] = true
		g.seeds[t.ID()] = true
		anc, _ := c.Ancestors(id)
		for _, a := range anc {
			t, ok := s.termFor(a)
			if !ok {
				return nil, fmt.Errorf("ontology: ancestor %s of %s not in subgraph", a, id)
			}
			g.keep[t.ID()] = true
		}
	}
	return dot.MarshalMulti(g, name, "", "\t")
}

// closureGraph is a view of a subgraph restricted to a set of kept
// terms and the structural relations between them.
type closureGraph struct {
	*gogo.Graph

	sub   *Subgraph
	keep  map[int64]bool
	seeds map[int64]bool
}

func (g *closureGraph) DOTAttributers() (graph, node, edge encoding.Attributer) {
	return attr{{Key: "rankdir", Value: "BT"}}, attr{{Key: "shape", Value: "box"}}, attr{}
}

type attr []encoding.Attribute

func (a attr) Attributes() []encoding.Attribute {
	return a
}

func (g *closureGraph) Nodes() graph.Nodes {
	return g.filtered(g.Graph.Nodes())
}

func (g *closureGraph) From(uid int64) graph.Nodes {
	return g.filtered(g.Graph.From(uid))
}

func (g *closureGraph) filtered(it graph.Nodes) graph.Nodes {
	var dotNodes []graph.Node
	for it.Next() {
		term := it.Node().(rdf.Term)
		if !g.keep[term.ID()] {
			continue
		}
		id := obo.ID(term.Value)
		dotNodes = append(dotNodes, termNode{
			Term:  term,
			id:    id,
			label: g.sub.Label(id),
			seed:  g.seeds[term.ID()],
		})
	}
	if len(dotNodes) == 0 {
		return graph.Empty
	}
	return iterator.NewOrderedNodes(dotNodes)
}

func (g *closureGraph) Lines(uid, vid int64) graph.Lines {
	it := g.Graph.Lines(uid, vid)
	lines := make([]graph.Line, 0, it.Len())
	for it.Next() {
		l := it.Line().(*rdf.Statement)
		if !structural(l) {
			continue
		}
		name, _ := obo.RelationName(l.Predicate.Value)
		lines = append(lines, dotLine{
			Statement: l,
			attrs:     []encoding.Attribute{{Key: "label", Value: name}},
		})
	}
	if len(lines) == 0 {
		return graph.Empty
	}
	return iterator.NewOrderedLines(lines)
}

// termNode implements graph.Node and dot.Node to allow the
// OBO identifier to be given to the DOT encoder.
type termNode struct {
	rdf.Term
	id    string
	label string
	seed  bool
}

func (n termNode) DOTID() string { return n.id }
func (n termNode) Attributes() []encoding.Attribute {
	a := []encoding.Attribute{
		{Key: "label", Value: fmt.Sprintf("%s\n%s", n.id, n.label)},
	}
	if n.seed {
		a = append(a, encoding.Attribute{Key: "style", Value: "filled"})
	}
	return a
}

// dotLine implements graph.Line and encoding.Attributer to
// allow the relation name to be given to the DOT encoder.
//
// The graph is directed and no lines are reversed, so
// ReversedLine is never called.
type dotLine struct {
	*rdf.Statement
	attrs []encoding.Attribute
}

func (l dotLine) From() graph.Node                 { return l.Subject }
func (l dotLine) To() graph.Node                   { return l.Object }
func (l dotLine) Attributes() []encoding.Attribute { return l.attrs }
