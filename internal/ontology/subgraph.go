// Copyright ©2026 The PFP-baselines Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ontology

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/formats/rdf"
	"gonum.org/v1/gonum/graph/traverse"

	"github.com/kortschak/gogo"

	"github.com/atoffano/PFP-baselines/internal/obo"
)

// Subgraph is the induced subgraph of an ontology over the terms of a
// single aspect. Term indexes are positions in the sorted term list and
// are stable for the lifetime of the Subgraph.
type Subgraph struct {
	aspect Aspect
	g      *gogo.Graph

	terms []string
	index map[string]int
	info  map[string]*termInfo
}

// Partition returns the aspect subgraphs of g. Each subgraph holds every
// term in the aspect's namespace, including obsolete terms, and the
// relations between them. It is an error for an aspect to have no terms
// or to lack its root term.
func Partition(g *Graph) (map[Aspect]*Subgraph, error) {
	subs := make(map[Aspect]*Subgraph)
	for _, a := range Aspects() {
		subs[a] = &Subgraph{
			aspect: a,
			g:      gogo.NewGraph(),
			index:  make(map[string]int),
			info:   g.terms,
		}
	}
	for _, id := range g.ids {
		a, ok := g.Aspect(id)
		if !ok {
			continue
		}
		s := subs[a]
		s.index[id] = len(s.terms)
		s.terms = append(s.terms, id)
	}
	for _, a := range Aspects() {
		s := subs[a]
		if len(s.terms) == 0 {
			return nil, fmt.Errorf("ontology: no terms in %s aspect", a)
		}
		if !s.Has(a.Root()) {
			return nil, fmt.Errorf("ontology: %s aspect is missing root term %s", a, a.Root())
		}
	}

	it := g.g.AllStatements()
	for it.Next() {
		s := it.Statement()
		subj := obo.ID(s.Subject.Value)
		a, ok := g.Aspect(subj)
		if !ok {
			continue
		}
		dst := subs[a]
		switch {
		case s.Predicate.Value == obo.Namespace:
			// Keep every term of the aspect as a node
			// even when it has no relations.
		case isRelation(s):
			if !dst.Has(obo.ID(s.Object.Value)) {
				continue
			}
		default:
			continue
		}
		dst.g.AddStatement(s)
	}
	return subs, nil
}

func isRelation(s *rdf.Statement) bool {
	_, ok := obo.RelationName(s.Predicate.Value)
	return ok
}

// Aspect returns the aspect of the subgraph.
func (s *Subgraph) Aspect() Aspect { return s.aspect }

// Root returns the root term of the subgraph.
func (s *Subgraph) Root() string { return s.aspect.Root() }

// Terms returns the sorted terms of the subgraph. The returned slice
// must not be modified.
func (s *Subgraph) Terms() []string { return s.terms }

// Len returns the number of terms in the subgraph.
func (s *Subgraph) Len() int { return len(s.terms) }

// Index returns the position of the term in the subgraph's term list.
func (s *Subgraph) Index(id string) (int, bool) {
	i, ok := s.index[id]
	return i, ok
}

// Has returns whether the term is part of the subgraph.
func (s *Subgraph) Has(id string) bool {
	_, ok := s.index[id]
	return ok
}

// Label returns the name of the term.
func (s *Subgraph) Label(id string) string {
	t, ok := s.info[id]
	if !ok {
		return ""
	}
	return t.label
}

func (s *Subgraph) termFor(id string) (rdf.Term, bool) {
	if !s.Has(id) {
		return rdf.Term{}, false
	}
	return s.g.TermFor(obo.IRI(id))
}

// Parents returns the sorted immediate structural parents of the term.
func (s *Subgraph) Parents(id string) []string {
	t, ok := s.termFor(id)
	if !ok {
		return nil
	}
	return ids(s.g.Query(t).Out(structural).Unique().Result())
}

// Ancestors returns the sorted set of terms reachable from the term by
// following is_a and part_of relations towards the aspect root. The term
// itself is not included. If the term is not in the subgraph, Ancestors
// returns false.
func (s *Subgraph) Ancestors(id string) ([]string, bool) {
	var df traverse.DepthFirst
	return s.ancestors(&df, id)
}

func (s *Subgraph) ancestors(df *traverse.DepthFirst, id string) ([]string, bool) {
	t, ok := s.termFor(id)
	if !ok {
		return nil, false
	}
	df.Traverse = isStructural
	df.Reset()
	var anc []string
	df.Walk(s.g, t, func(n graph.Node) bool {
		if n.ID() != t.ID() {
			anc = append(anc, obo.ID(n.(rdf.Term).Value))
		}
		return false
	})
	sort.Strings(anc)
	return anc, true
}

// isStructural is a traverse edge filter. It accepts statements where
//
//  <obo:GO_* -- <rdfs:subClassOf>|<obo:BFO_0000050> -> <obo:GO_*
//
// for out queries from a term.
func isStructural(e graph.Edge) bool {
	return gogo.ConnectedByAny(e, structural)
}

func ids(terms []rdf.Term) []string {
	if len(terms) == 0 {
		return nil
	}
	s := make([]string, len(terms))
	for i, t := range terms {
		s[i] = obo.ID(t.Value)
	}
	sort.Strings(s)
	return s
}
