// Copyright ©2026 The PFP-baselines Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"io"

	"github.com/atoffano/PFP-baselines/internal/annotation"
	"github.com/atoffano/PFP-baselines/internal/ia"
	"github.com/atoffano/PFP-baselines/internal/ontology"
	"github.com/atoffano/PFP-baselines/internal/report"
	"github.com/atoffano/PFP-baselines/internal/tabular"
)

func loadOntology(path string) (g *ontology.Graph, err error) {
	err = tabular.ReadFile(path, func(r io.Reader) error {
		g, err = ontology.Load(r)
		return err
	})
	return g, err
}

func readAnnotations(path string) (entries []annotation.Entry, err error) {
	err = tabular.ReadFile(path, func(r io.Reader) error {
		entries, err = annotation.ReadTSV(r)
		return err
	})
	return entries, err
}

func readIDs(path string) (ids []string, err error) {
	err = tabular.ReadFile(path, func(r io.Reader) error {
		ids, err = annotation.ReadIDs(r)
		return err
	})
	return ids, err
}

func writeTable(path string, values []ia.Value) error {
	return tabular.WriteFile(path, func(w io.Writer) error {
		return ia.WriteTable(w, values)
	})
}

func writeSummary(path string, s *report.Summary) error {
	return tabular.WriteFile(path, func(w io.Writer) error {
		return report.WriteJSON(w, s)
	})
}

// inSubgraphs returns the entries whose term is in the subgraph of
// their aspect and those that are not.
func inSubgraphs(entries []annotation.Entry, subgraphs map[ontology.Aspect]*ontology.Subgraph) (in, out []annotation.Entry) {
	for _, e := range entries {
		sub, ok := subgraphs[e.Aspect]
		if ok && sub.Has(e.Term) {
			in = append(in, e)
		} else {
			out = append(out, e)
		}
	}
	return in, out
}

func set(ids []string) map[string]bool {
	s := make(map[string]bool, len(ids))
	for _, id := range ids {
		s[id] = true
	}
	return s
}

func termsOf(entries []annotation.Entry) []string {
	terms := make([]string, len(entries))
	for i, e := range entries {
		terms[i] = e.Term
	}
	return terms
}

// positive returns the values in x greater than zero.
func positive(x []float64) []float64 {
	var p []float64
	for _, v := range x {
		if v > 0 {
			p = append(p, v)
		}
	}
	return p
}
