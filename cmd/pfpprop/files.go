// Copyright ©2026 The PFP-baselines Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/atoffano/PFP-baselines/internal/annotation"
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

func writeAnnotations(path string, entries []annotation.Entry) error {
	return tabular.WriteFile(path, func(w io.Writer) error {
		return annotation.WriteTSV(w, entries)
	})
}

func writeSummary(path string, s *report.Summary) error {
	return tabular.WriteFile(path, func(w io.Writer) error {
		return report.WriteJSON(w, s)
	})
}

var unsafe = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// writeDOT writes the propagation DAG of the directly annotated terms
// of protein for each aspect to <protein>_<aspect>.dot.
func writeDOT(protein string, entries []annotation.Entry, subgraphs map[ontology.Aspect]*ontology.Subgraph) error {
	var found bool
	for a, terms := range termsByAspect(protein, entries) {
		sub, ok := subgraphs[a]
		if !ok {
			continue
		}
		found = true
		b, err := sub.MarshalClosure(protein, terms)
		if err != nil {
			return err
		}
		path := fmt.Sprintf("%s_%s.dot", unsafe.ReplaceAllString(protein, "_"), a)
		err = os.WriteFile(path, b, 0o644)
		if err != nil {
			return err
		}
	}
	if !found {
		return fmt.Errorf("no annotations for %s", protein)
	}
	return nil
}

func termsByAspect(protein string, entries []annotation.Entry) map[ontology.Aspect][]string {
	terms := make(map[ontology.Aspect][]string)
	for _, e := range entries {
		if e.Protein == protein {
			terms[e.Aspect] = append(terms[e.Aspect], e.Term)
		}
	}
	return terms
}

func termsOf(entries []annotation.Entry) []string {
	terms := make([]string, len(entries))
	for i, e := range entries {
		terms[i] = e.Term
	}
	return terms
}

// selectEntries resolves the aspects of entries using g and, if only
// is not empty, returns the resolved entries in that aspect. Unknown
// entries labelled with another aspect are not returned.
func selectEntries(entries []annotation.Entry, g *ontology.Graph, only ontology.Aspect) (selected, unknown []annotation.Entry, err error) {
	selected, unknown = annotation.Resolve(entries, g)
	if only == "" {
		return selected, unknown, nil
	}
	selected, err = annotation.Select(selected, only)
	if err != nil {
		return nil, nil, err
	}
	n := 0
	for _, e := range unknown {
		if e.Aspect == "" || e.Aspect == only {
			unknown[n] = e
			n++
		}
	}
	return selected, unknown[:n], nil
}
