// Copyright ©2026 The PFP-baselines Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ia computes the information accretion of ontology terms from
// the empirical co-occurrence of terms and their parents in a protein
// annotation set.
package ia

import (
	"fmt"
	"math"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/atoffano/PFP-baselines/internal/ontology"
)

// Value is the information accretion of a term.
type Value struct {
	Term   string
	Aspect ontology.Aspect
	IA     float64
}

// Accretion returns the information accretion of term given the counts
// in m and the structure of sub. With n_term the number of rows of m
// having the term and n_parents the number of rows having every
// immediate parent of the term, the accretion is -log2(n_term/n_parents),
// and exactly zero when the two counts are equal. A term with no parents
// treats every row as having all of its parents, so a root term carried
// by every protein has zero accretion.
func Accretion(term string, m *CountMatrix, sub *ontology.Subgraph) (float64, error) {
	j, ok := m.Column(term)
	if !ok {
		return 0, fmt.Errorf("ia: term %s is not in the count matrix", term)
	}
	parents := sub.Parents(term)
	cols := make([][]int, len(parents))
	for k, p := range parents {
		pj, ok := m.Column(p)
		if !ok {
			return 0, fmt.Errorf("ia: parent %s of %s is not in the count matrix", p, term)
		}
		cols[k] = m.rows(pj)
	}

	nTerm := len(m.rows(j))
	var nParents int
	if len(cols) == 0 {
		nParents, _ = m.Dims()
	} else {
		nParents = len(intersect(cols))
	}
	if nTerm == nParents {
		return 0, nil
	}
	return -math.Log2(float64(nTerm) / float64(nParents)), nil
}

// intersect returns the values common to all the sorted sets.
func intersect(sets [][]int) []int {
	sort.Slice(sets, func(i, j int) bool { return len(sets[i]) < len(sets[j]) })
	common := append([]int(nil), sets[0]...)
	for _, s := range sets[1:] {
		var (
			n    int
			k, l int
		)
		for k < len(common) && l < len(s) {
			switch {
			case common[k] < s[l]:
				k++
			case common[k] > s[l]:
				l++
			default:
				common[n] = common[k]
				n++
				k++
				l++
			}
		}
		common = common[:n]
	}
	return common
}

// Result holds the information accretion of every term of an aspect
// in column order.
type Result struct {
	Aspect ontology.Aspect
	Values []Value
}

// Warning returns a *VersionMismatchWarning listing every term with a
// negative accretion. It returns nil if there are no such terms.
func (r Result) Warning() *VersionMismatchWarning {
	var neg []Value
	for _, v := range r.Values {
		if v.IA < 0 {
			neg = append(neg, v)
		}
	}
	if len(neg) == 0 {
		return nil
	}
	return &VersionMismatchWarning{Aspect: r.Aspect, Terms: neg}
}

// VersionMismatchWarning reports negative information accretion values.
// These arise when annotations were propagated with a different ontology
// release than the one used to compute accretion.
type VersionMismatchWarning struct {
	Aspect ontology.Aspect
	Terms  []Value
}

func (w *VersionMismatchWarning) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "ia: %d terms in %s have negative information accretion: ontology version mismatch?", len(w.Terms), w.Aspect)
	for _, v := range w.Terms {
		fmt.Fprintf(&buf, "\n\t%s\t%v", v.Term, v.IA)
	}
	return buf.String()
}

// Compute returns the information accretion of every term of m using
// the structure of sub. Columns are computed in parallel by up to
// workers goroutines. If workers is less than one, GOMAXPROCS is used.
// Negative values are retained; use Result.Warning to report them.
func Compute(m *CountMatrix, sub *ontology.Subgraph, workers int) (Result, error) {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	terms := m.Terms()
	values := make([]Value, len(terms))

	chunk := (len(terms) + workers - 1) / workers
	if chunk < 1 {
		chunk = 1
	}
	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < len(terms); start += chunk {
		start := start
		end := start + chunk
		if end > len(terms) {
			end = len(terms)
		}
		g.Go(func() error {
			for j := start; j < end; j++ {
				v, err := Accretion(terms[j], m, sub)
				if err != nil {
					return err
				}
				values[j] = Value{Term: terms[j], Aspect: sub.Aspect(), IA: v}
			}
			return nil
		})
	}
	err := g.Wait()
	if err != nil {
		return Result{}, err
	}
	return Result{Aspect: sub.Aspect(), Values: values}, nil
}
