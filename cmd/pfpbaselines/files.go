// Copyright ©2026 The PFP-baselines Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/atoffano/PFP-baselines/internal/annotation"
	"github.com/atoffano/PFP-baselines/internal/ontology"
	"github.com/atoffano/PFP-baselines/internal/report"
	"github.com/atoffano/PFP-baselines/internal/tabular"
	"github.com/atoffano/PFP-baselines/internal/transfer"
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

func readHits(path string) (hits []transfer.Hit, err error) {
	err = tabular.ReadFile(path, func(r io.Reader) error {
		hits, err = transfer.ReadHits(r)
		return err
	})
	return hits, err
}

func writePredictions(path string, preds []transfer.Prediction) error {
	err := os.MkdirAll(filepath.Dir(path), 0o755)
	if err != nil {
		return err
	}
	return tabular.WriteFile(path, func(w io.Writer) error {
		return transfer.WritePredictions(w, preds)
	})
}

func writeIDs(path string, ids []string) error {
	err := os.MkdirAll(filepath.Dir(path), 0o755)
	if err != nil {
		return err
	}
	return tabular.WriteFile(path, func(w io.Writer) error {
		return transfer.WriteIDs(w, ids)
	})
}

func writeSummary(path string, s *report.Summary) error {
	return tabular.WriteFile(path, func(w io.Writer) error {
		return report.WriteJSON(w, s)
	})
}

func writeWorkbook(path string, s *report.Summary, tables ...report.Table) error {
	return tabular.WriteFile(path, func(w io.Writer) error {
		return report.WriteWorkbook(w, s, tables...)
	})
}

// output is the set of predictions made by a single method.
type output struct {
	name       string
	k          int
	preds      []transfer.Prediction
	degenerate []string
}

func (o output) label() string {
	if o.k == 0 {
		return o.name
	}
	return fmt.Sprintf("%s k=%d", o.name, o.k)
}

func (o output) path() string {
	if o.k == 0 {
		return filepath.Join("predictions", o.name, "predictions.tsv")
	}
	return filepath.Join("predictions", o.name, fmt.Sprintf("k%d", o.k), "predictions.tsv")
}

func (o output) summary() (*report.Method, error) {
	scores := make([]float64, len(o.preds))
	proteins := make([]string, len(o.preds))
	for i, p := range o.preds {
		scores[i] = p.Score
		proteins[i] = p.Protein
	}
	dist, err := report.Describe(scores)
	if err != nil {
		return nil, err
	}
	return &report.Method{
		Name:        o.name,
		K:           o.k,
		Proteins:    len(report.Distinct(proteins)),
		Predictions: len(o.preds),
		Degenerate:  o.degenerate,
		Scores:      dist,
	}, nil
}

// restrict returns the entries in the aspect only, or all entries if
// only is empty. Every entry must carry an aspect, either from the
// annotation table or resolved from an ontology.
func restrict(entries []annotation.Entry, only ontology.Aspect) ([]annotation.Entry, error) {
	if only == "" {
		return entries, nil
	}
	sel, err := annotation.Select(entries, only)
	if err != nil {
		return nil, fmt.Errorf("%w: provide an ontology or an aspect column", err)
	}
	return sel, nil
}

func unalignedTable(ids []string) report.Table {
	t := report.Table{Name: "unaligned", Header: []string{"EntryID"}}
	for _, id := range ids {
		t.Rows = append(t.Rows, []interface{}{id})
	}
	return t
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
