// Copyright ©2026 The PFP-baselines Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transfer

import "sort"

// Naive returns the term frequency baseline predictions for queries.
// Each term is scored by the fraction of reference proteins annotated
// with it, and every query receives every term. Terms are ordered by
// decreasing score and then by term.
func Naive(ref Reference, queries []string) []Prediction {
	var n int
	counts := make(map[string]int)
	for _, terms := range ref {
		if len(terms) == 0 {
			continue
		}
		n++
		for _, t := range terms {
			counts[t]++
		}
	}
	if n == 0 {
		return nil
	}
	terms := make([]string, 0, len(counts))
	for t := range counts {
		terms = append(terms, t)
	}
	sort.Slice(terms, func(i, j int) bool {
		ci, cj := counts[terms[i]], counts[terms[j]]
		if ci != cj {
			return ci > cj
		}
		return terms[i] < terms[j]
	})

	seen := make(map[string]bool, len(queries))
	var preds []Prediction
	for _, q := range queries {
		if seen[q] {
			continue
		}
		seen[q] = true
		for _, t := range terms {
			preds = append(preds, Prediction{Protein: q, Term: t, Score: float64(counts[t]) / float64(n)})
		}
	}
	return preds
}
