// Copyright ©2026 The PFP-baselines Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package annotation provides protein to ontology term annotation tables
// and their propagation over the ontology structure.
package annotation

import (
	"fmt"
	"strings"

	"github.com/atoffano/PFP-baselines/internal/ontology"
)

// Entry is a single protein term annotation.
type Entry struct {
	Protein string
	Term    string
	Aspect  ontology.Aspect
}

func (e Entry) String() string {
	return fmt.Sprintf("%s\t%s\t%s", e.Protein, e.Term, e.Aspect)
}

// Dedup returns entries with repeated protein, term and aspect triples
// removed. The first occurrence of each triple is retained in order.
func Dedup(entries []Entry) []Entry {
	seen := make(map[Entry]bool, len(entries))
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	return out
}

// Select returns the entries annotated to aspect. It is an error for
// any entry to have no aspect; use Resolve to fill missing aspects
// before selecting.
func Select(entries []Entry, aspect ontology.Aspect) ([]Entry, error) {
	var sel []Entry
	for _, e := range entries {
		if e.Aspect == "" {
			return nil, fmt.Errorf("annotation: %s %s has no aspect", e.Protein, e.Term)
		}
		if e.Aspect == aspect {
			sel = append(sel, e)
		}
	}
	return sel, nil
}

// ByAspect groups entries by their aspect, retaining input order
// within each group.
func ByAspect(entries []Entry) map[ontology.Aspect][]Entry {
	groups := make(map[ontology.Aspect][]Entry)
	for _, e := range entries {
		groups[e.Aspect] = append(groups[e.Aspect], e)
	}
	return groups
}

// Proteins returns the distinct proteins of entries in first
// appearance order.
func Proteins(entries []Entry) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, e := range entries {
		if seen[e.Protein] {
			continue
		}
		seen[e.Protein] = true
		ids = append(ids, e.Protein)
	}
	return ids
}

// Exclude returns entries whose protein is not in the ids set.
func Exclude(entries []Entry, ids map[string]bool) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if ids[e.Protein] {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Resolve fills in missing entry aspects from the term namespaces in g.
// Entries whose term is not declared in g, or whose term is in a
// namespace outside the ontology aspects, are returned in unknown and
// are not included in resolved.
func Resolve(entries []Entry, g *ontology.Graph) (resolved, unknown []Entry) {
	resolved = make([]Entry, 0, len(entries))
	for _, e := range entries {
		a, ok := g.Aspect(e.Term)
		if !ok {
			unknown = append(unknown, e)
			continue
		}
		if e.Aspect == "" {
			e.Aspect = a
		}
		resolved = append(resolved, e)
	}
	return resolved, unknown
}

// Policy is an obsolete term handling policy.
type Policy int

const (
	// Keep retains obsolete terms as annotated.
	Keep Policy = iota
	// Remap replaces obsolete terms that have a replacement
	// with their first replacement.
	Remap
	// Strict remaps replaceable terms and drops obsolete
	// terms that have no replacement.
	Strict
)

func (p Policy) String() string {
	switch p {
	case Keep:
		return "keep"
	case Remap:
		return "remap"
	case Strict:
		return "strict"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// ParsePolicy returns the policy named by s.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(s) {
	case "", "keep":
		return Keep, nil
	case "remap":
		return Remap, nil
	case "strict":
		return Strict, nil
	}
	return 0, fmt.Errorf("annotation: unknown obsolete policy %q", s)
}

// CountObsolete returns the number of entries in each aspect whose term
// is obsolete in g, whether or not it has a replacement.
func CountObsolete(entries []Entry, g *ontology.Graph) map[ontology.Aspect]int {
	counts := make(map[ontology.Aspect]int)
	obsolete, replacements := ontology.FindObsolete(g)
	for _, e := range entries {
		_, replaceable := replacements[e.Term]
		if replaceable || obsolete[e.Term] {
			counts[e.Aspect]++
		}
	}
	return counts
}

// ApplyPolicy applies the obsolete term policy to entries using the
// obsolete terms of g. Remapped entries take the aspect of their
// replacement term. The number of entries that were changed or dropped
// is returned along with the resulting entries.
func ApplyPolicy(entries []Entry, g *ontology.Graph, policy Policy) ([]Entry, int) {
	if policy == Keep {
		return entries, 0
	}
	obsolete, replacements := ontology.FindObsolete(g)
	out := make([]Entry, 0, len(entries))
	var n int
	for _, e := range entries {
		if r, ok := replacements[e.Term]; ok {
			e.Term = r
			if a, ok := g.Aspect(r); ok {
				e.Aspect = a
			}
			n++
		} else if policy == Strict && obsolete[e.Term] {
			n++
			continue
		}
		out = append(out, e)
	}
	return out, n
}
