// Copyright ©2026 The PFP-baselines Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package transfer implements similarity based transfer of ontology
// term annotations from reference proteins to query proteins.
package transfer

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/atoffano/PFP-baselines/internal/annotation"
)

// Prediction is a scored term prediction for a protein.
type Prediction struct {
	Protein string
	Term    string
	Score   float64
}

// Reference holds the distinct terms annotated to each reference
// protein in first appearance order.
type Reference map[string][]string

// NewReference returns the reference annotation set for entries.
func NewReference(entries []annotation.Entry) Reference {
	ref := make(Reference)
	seen := make(map[[2]string]bool)
	for _, e := range entries {
		k := [2]string{e.Protein, e.Term}
		if seen[k] {
			continue
		}
		seen[k] = true
		ref[e.Protein] = append(ref[e.Protein], e.Term)
	}
	return ref
}

// Proteins returns the set of reference proteins with at least
// one term.
func (r Reference) Proteins() map[string]bool {
	p := make(map[string]bool, len(r))
	for id, terms := range r {
		if len(terms) != 0 {
			p[id] = true
		}
	}
	return p
}

// Options holds parameters for Transfer.
type Options struct {
	// K is the set of neighbourhood sizes for
	// k-nearest neighbour transfer.
	K []int

	// LeakageGuard specifies that a hit with a
	// subject in the query set is an error.
	LeakageGuard bool
}

// Result holds the predictions of each transfer method.
type Result struct {
	// Unaligned is the list of queries with
	// no usable alignment hits.
	Unaligned []string

	BestHit   []Prediction
	Aggregate []Prediction

	// KNN holds the k-nearest neighbour
	// predictions keyed by k.
	KNN map[int][]Prediction

	// Degenerate lists the queries whose hits
	// all have a zero bit score. They are also
	// listed in Unaligned.
	Degenerate []string
}

// ErrLeakage is the error matched by a *LeakageError.
var ErrLeakage = errors.New("annotation leakage between reference and query sets")

// LeakageError is returned by Transfer when a query's hits include
// subjects that are themselves queries.
type LeakageError struct {
	Query    string
	Subjects []string
}

func (e *LeakageError) Error() string {
	return fmt.Sprintf("transfer: %v: query %s has hits to queries %s", ErrLeakage, e.Query, strings.Join(e.Subjects, ", "))
}

// Is allows errors.Is(err, ErrLeakage) to match a *LeakageError.
func (e *LeakageError) Is(target error) bool { return target == ErrLeakage }

// Transfer returns the predictions for queries obtained by transferring
// reference annotations across alignment hits. Hits that are self hits
// or that have a subject without reference annotations are ignored.
// Queries without remaining hits are recorded in Result.Unaligned.
//
// The best hit method gives a score of one to every term of the subject
// of the first hit with the greatest percent identity. The aggregate
// method scores each term by the sum of the bit scores of the hits whose
// subject carries the term, divided by the sum of all bit scores of the
// query's hits. The k-nearest neighbour method applies the aggregate
// method to the k hits with the highest bit scores, taking earlier hits
// first on ties. Repeated neighbourhood sizes in opts.K are ignored.
//
// Queries whose hits have a zero total bit score carry no usable
// evidence. They are recorded in Result.Unaligned and Result.Degenerate
// and receive no predictions from any method.
//
// If opts.LeakageGuard is true and any usable hit has a subject that is
// a query, Transfer returns a *LeakageError and no result.
func Transfer(hits []Hit, ref Reference, queries []string, opts Options) (*Result, error) {
	for _, k := range opts.K {
		if k < 1 {
			return nil, fmt.Errorf("transfer: invalid neighbourhood size: %d", k)
		}
	}

	isQuery := make(map[string]bool, len(queries))
	for _, q := range queries {
		isQuery[q] = true
	}
	groups := make(map[string][]Hit)
	for _, h := range hits {
		if h.Query == h.Subject || len(ref[h.Subject]) == 0 || !isQuery[h.Query] {
			continue
		}
		groups[h.Query] = append(groups[h.Query], h)
	}

	k := distinct(opts.K)
	res := &Result{KNN: make(map[int][]Prediction)}
	done := make(map[string]bool, len(queries))
	for _, q := range queries {
		if done[q] {
			continue
		}
		done[q] = true

		group, ok := groups[q]
		if !ok {
			res.Unaligned = append(res.Unaligned, q)
			continue
		}
		if opts.LeakageGuard {
			var leaks []string
			for _, h := range group {
				if isQuery[h.Subject] {
					leaks = append(leaks, h.Subject)
				}
			}
			if len(leaks) != 0 {
				return nil, &LeakageError{Query: q, Subjects: leaks}
			}
		}

		if !(totalBitScore(group) > 0) {
			res.Unaligned = append(res.Unaligned, q)
			res.Degenerate = append(res.Degenerate, q)
			continue
		}

		res.BestHit = append(res.BestHit, bestHit(q, group, ref)...)
		res.Aggregate = append(res.Aggregate, vote(q, group, ref)...)

		if len(k) == 0 {
			continue
		}
		ranked := make([]Hit, len(group))
		copy(ranked, group)
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].BitScore > ranked[j].BitScore
		})
		for _, n := range k {
			top := ranked
			if n < len(top) {
				top = top[:n]
			}
			res.KNN[n] = append(res.KNN[n], vote(q, top, ref)...)
		}
	}
	return res, nil
}

// bestHit returns the terms of the subject of the first hit with the
// greatest percent identity, each with a score of one.
func bestHit(query string, hits []Hit, ref Reference) []Prediction {
	best := 0
	for i, h := range hits[1:] {
		if h.Identity > hits[best].Identity {
			best = i + 1
		}
	}
	terms := ref[hits[best].Subject]
	preds := make([]Prediction, len(terms))
	for i, t := range terms {
		preds[i] = Prediction{Protein: query, Term: t, Score: 1}
	}
	return preds
}

// vote returns the bit score weighted vote of the hits for each term
// carried by their subjects, normalised by the total bit score of the
// hits. Terms are returned in order of first appearance. The total bit
// score of hits must be positive.
func vote(query string, hits []Hit, ref Reference) []Prediction {
	// Sums are accumulated in hit order so that a partial
	// sum can never exceed the total.
	total := totalBitScore(hits)
	var terms []string
	sums := make(map[string]float64)
	for _, h := range hits {
		for _, t := range ref[h.Subject] {
			if _, ok := sums[t]; !ok {
				terms = append(terms, t)
			}
			sums[t] += h.BitScore
		}
	}
	preds := make([]Prediction, len(terms))
	for i, t := range terms {
		preds[i] = Prediction{Protein: query, Term: t, Score: sums[t] / total}
	}
	return preds
}

func totalBitScore(hits []Hit) float64 {
	var total float64
	for _, h := range hits {
		total += h.BitScore
	}
	return total
}

// distinct returns the values of k with repeats removed, retaining
// the first occurrence of each.
func distinct(k []int) []int {
	if len(k) == 0 {
		return nil
	}
	seen := make(map[int]bool, len(k))
	d := make([]int, 0, len(k))
	for _, v := range k {
		if !seen[v] {
			seen[v] = true
			d = append(d, v)
		}
	}
	return d
}
