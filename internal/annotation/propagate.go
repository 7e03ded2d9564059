// Copyright ©2026 The PFP-baselines Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package annotation

import (
	"sort"
	"sync"

	"github.com/atoffano/PFP-baselines/internal/ontology"
)

type group struct {
	protein string
	aspect  ontology.Aspect
}

// Propagate returns the closure of entries over the structural
// relations of the aspect subgraphs. For each protein and aspect the
// result holds the union of every annotated term and its ancestors.
// Groups are emitted in order of first appearance in entries with the
// terms of each group sorted, so propagating a propagated set returns
// an identical sequence.
//
// Entries whose term is not in the subgraph of its aspect, or whose
// aspect has no subgraph, are returned in unmapped in input order.
func Propagate(entries []Entry, subgraphs map[ontology.Aspect]*ontology.Subgraph) (propagated, unmapped []Entry) {
	var order []group
	seen := make(map[group]bool)
	work := make(map[ontology.Aspect][]int)
	for i, e := range entries {
		k := group{protein: e.Protein, aspect: e.Aspect}
		if !seen[k] {
			seen[k] = true
			order = append(order, k)
		}
		work[e.Aspect] = append(work[e.Aspect], i)
	}

	missing := make([]bool, len(entries))
	closed := make(map[ontology.Aspect]map[string][]string, len(work))
	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for aspect, idx := range work {
		sub, ok := subgraphs[aspect]
		if !ok {
			for _, i := range idx {
				missing[i] = true
			}
			continue
		}
		aspect := aspect
		idx := idx
		wg.Add(1)
		go func() {
			defer wg.Done()
			c := ontology.NewClosure(sub)
			sets := make(map[string]map[string]bool)
			for _, i := range idx {
				e := entries[i]
				anc, ok := c.Ancestors(e.Term)
				if !ok {
					missing[i] = true
					continue
				}
				set, ok := sets[e.Protein]
				if !ok {
					set = make(map[string]bool)
					sets[e.Protein] = set
				}
				set[e.Term] = true
				for _, a := range anc {
					set[a] = true
				}
			}
			terms := make(map[string][]string, len(sets))
			for p, set := range sets {
				t := make([]string, 0, len(set))
				for term := range set {
					t = append(t, term)
				}
				sort.Strings(t)
				terms[p] = t
			}
			mu.Lock()
			closed[aspect] = terms
			mu.Unlock()
		}()
	}
	wg.Wait()

	for _, k := range order {
		for _, t := range closed[k.aspect][k.protein] {
			propagated = append(propagated, Entry{Protein: k.protein, Term: t, Aspect: k.aspect})
		}
	}
	for i, m := range missing {
		if m {
			unmapped = append(unmapped, entries[i])
		}
	}
	return propagated, unmapped
}
