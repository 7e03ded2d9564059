// Copyright ©2026 The PFP-baselines Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ontology provides the Gene Ontology term graph, its partition
// into aspects and the structural closure of terms.
//
// Packages and tests importing ontology must be built with the safe build
// tag, go test -tags safe ./..., so that gonum's graph iterators avoid
// unsafe map iteration that is not valid on current Go runtimes.
package ontology

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"gonum.org/v1/gonum/graph/formats/rdf"

	"github.com/kortschak/gogo"

	"github.com/atoffano/PFP-baselines/internal/obo"
)

// ErrMalformedOntology is returned when a term lacks a required attribute
// or a relation refers to a term that is not defined.
var ErrMalformedOntology = errors.New("malformed ontology")

// Graph is an ontology term graph. A Graph is not mutated after it is
// returned by Load or Clean and may be shared between goroutines.
type Graph struct {
	g      *gogo.Graph
	header obo.Header

	// terms holds the attributes of each
	// declared term keyed by OBO ID. It is
	// shared read-only between graphs derived
	// from the same Load.
	terms map[string]*termInfo
	ids   []string
}

type termInfo struct {
	label      string
	namespace  string
	obsolete   bool
	replacedBy []string
}

// Relation is a typed edge from a term to a parent term.
type Relation struct {
	Type   string
	Target string
}

// Load returns the ontology graph encoded as OBO in r. All relations,
// including non-structural relationships, are retained; use Clean to
// remove them.
func Load(r io.Reader) (*Graph, error) {
	dec, err := obo.NewDecoder(r)
	if err != nil {
		return nil, err
	}
	g := &Graph{
		g:      gogo.NewGraph(),
		header: dec.Header(),
		terms:  make(map[string]*termInfo),
	}
	var relations []*rdf.Statement
	for {
		s, err := dec.Unmarshal()
		if err != nil {
			if err != io.EOF {
				return nil, err
			}
			break
		}
		g.g.AddStatement(s)

		id := obo.ID(s.Subject.Value)
		switch s.Predicate.Value {
		case obo.Type:
			if s.Object.Value == obo.Class && g.terms[id] == nil {
				g.terms[id] = &termInfo{}
				g.ids = append(g.ids, id)
			}
		case obo.Label:
			g.info(id).label = literal(s.Object)
		case obo.Namespace:
			g.info(id).namespace = literal(s.Object)
		case obo.Deprecated:
			g.info(id).obsolete = literal(s.Object) == "true"
		case obo.ReplacedBy:
			t := g.info(id)
			t.replacedBy = append(t.replacedBy, obo.ID(s.Object.Value))
		default:
			if _, ok := obo.RelationName(s.Predicate.Value); ok {
				relations = append(relations, s)
			}
		}
	}
	sort.Strings(g.ids)

	for _, id := range g.ids {
		if g.terms[id].namespace == "" {
			return nil, fmt.Errorf("%w: term %s has no namespace", ErrMalformedOntology, id)
		}
	}
	for _, s := range relations {
		target := obo.ID(s.Object.Value)
		if g.terms[target] == nil {
			name, _ := obo.RelationName(s.Predicate.Value)
			return nil, fmt.Errorf("%w: %s %s refers to undefined term %s",
				ErrMalformedOntology, obo.ID(s.Subject.Value), name, target)
		}
	}
	return g, nil
}

// info returns the attributes for id, creating them if id has not been
// declared yet. Tags always follow the id within an OBO stanza, so
// this only happens for malformed input.
func (g *Graph) info(id string) *termInfo {
	t, ok := g.terms[id]
	if !ok {
		t = &termInfo{}
		g.terms[id] = t
		g.ids = append(g.ids, id)
	}
	return t
}

// literal returns the text of an RDF literal term.
func literal(t rdf.Term) string {
	text, _, kind, err := t.Parts()
	if err != nil {
		panic(fmt.Errorf("invalid term in graph: %w", err))
	}
	if kind != rdf.Literal {
		return ""
	}
	return text
}

// Header returns the OBO header of the ontology source. The
// DataVersion field identifies the ontology release.
func (g *Graph) Header() obo.Header { return g.header }

// Terms returns the sorted IDs of all declared terms. The returned
// slice must not be modified.
func (g *Graph) Terms() []string { return g.ids }

// Len returns the number of declared terms.
func (g *Graph) Len() int { return len(g.ids) }

// Namespace returns the OBO namespace of the term.
func (g *Graph) Namespace(id string) (string, bool) {
	t, ok := g.terms[id]
	if !ok {
		return "", false
	}
	return t.namespace, true
}

// Aspect returns the ontology aspect of the term.
func (g *Graph) Aspect(id string) (Aspect, bool) {
	ns, ok := g.Namespace(id)
	if !ok {
		return "", false
	}
	return AspectOf(ns)
}

// Label returns the name of the term.
func (g *Graph) Label(id string) string {
	t, ok := g.terms[id]
	if !ok {
		return ""
	}
	return t.label
}

// IsObsolete returns whether the term is marked obsolete.
func (g *Graph) IsObsolete(id string) bool {
	t, ok := g.terms[id]
	return ok && t.obsolete
}

// Relations returns the relations from the term to its parents, sorted
// by relation type and target.
func (g *Graph) Relations(id string) []Relation {
	t, ok := g.g.TermFor(obo.IRI(id))
	if !ok {
		return nil
	}
	var rels []Relation
	to := g.g.From(t.ID())
	for to.Next() {
		lines := g.g.Lines(t.ID(), to.Node().ID())
		for lines.Next() {
			s := lines.Line().(*rdf.Statement)
			name, ok := obo.RelationName(s.Predicate.Value)
			if !ok {
				continue
			}
			rels = append(rels, Relation{Type: name, Target: obo.ID(s.Object.Value)})
		}
	}
	sort.Slice(rels, func(i, j int) bool {
		if rels[i].Type != rels[j].Type {
			return rels[i].Type < rels[j].Type
		}
		return rels[i].Target < rels[j].Target
	})
	return rels
}

// Clean returns a copy of g holding only is_a and part_of relations
// between terms of the same namespace. The number of cross-namespace
// relations that were removed is also returned; the ontology is not
// expected to have any, so a non-zero value should be reported.
func Clean(g *Graph) (*Graph, int) {
	c := &Graph{
		g:      gogo.NewGraph(),
		header: g.header,
		terms:  g.terms,
		ids:    g.ids,
	}
	var crossed int
	it := g.g.AllStatements()
	for it.Next() {
		s := it.Statement()
		if _, ok := obo.RelationName(s.Predicate.Value); ok {
			if !structural(s) {
				continue
			}
			subj, _ := g.Namespace(obo.ID(s.Subject.Value))
			obj, _ := g.Namespace(obo.ID(s.Object.Value))
			if subj != obj {
				crossed++
				continue
			}
		}
		c.g.AddStatement(s)
	}
	return c, crossed
}

// FindObsolete returns the set of obsolete terms that have no replacement
// and a mapping from replaceable terms to their first replacement. The
// mapping is not applied to the graph.
func FindObsolete(g *Graph) (obsolete map[string]bool, replacements map[string]string) {
	obsolete = make(map[string]bool)
	replacements = make(map[string]string)
	for _, id := range g.ids {
		t := g.terms[id]
		if len(t.replacedBy) != 0 {
			replacements[id] = t.replacedBy[0]
			continue
		}
		if t.obsolete {
			obsolete[id] = true
		}
	}
	return obsolete, replacements
}

// structural returns whether s is an is_a or part_of relation.
func structural(s *rdf.Statement) bool {
	return s.Predicate.Value == obo.SubClassOf || s.Predicate.Value == obo.PartOf
}
