// Copyright ©2026 The PFP-baselines Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report provides run summaries for the annotation propagation,
// information accretion and transfer tools.
package report

import (
	"encoding/json"
	"io"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
)

// Summary is the summary of a single tool run. It is written as JSON
// by WriteJSON and as a workbook by WriteWorkbook.
type Summary struct {
	// RunID uniquely identifies the run.
	RunID string

	// Tool is the name of the tool
	// that performed the run.
	Tool string

	// Start is the time the run started.
	Start time.Time

	// OntologyVersion is the data-version
	// of the ontology used for the run.
	OntologyVersion string

	// CrossNamespace is the number of relations
	// between terms of different aspects that were
	// removed from the ontology.
	CrossNamespace int

	// Unknown lists annotation terms that are
	// not defined by the ontology.
	Unknown []string `json:",omitempty"`

	// Aspects holds per-aspect summaries.
	Aspects []*Aspect `json:",omitempty"`

	// Unaligned lists the queries with no
	// alignment evidence.
	Unaligned []string `json:",omitempty"`

	// Methods holds per-method prediction
	// summaries.
	Methods []*Method `json:",omitempty"`
}

// Aspect is the summary of the annotations and information accretion
// for a single ontology aspect.
type Aspect struct {
	Aspect string

	// Proteins and Annotations are the number of
	// distinct proteins and the number of annotation
	// entries after propagation. Terms is the
	// number of terms in the aspect.
	Proteins, Annotations, Terms int

	// Unmapped lists the distinct terms that
	// were not found in the aspect.
	Unmapped []string `json:",omitempty"`

	// Obsolete is the number of entries
	// annotated to an obsolete term, counted
	// before any obsolete term policy is applied.
	Obsolete int

	// NegativeIA lists the terms with negative
	// information accretion.
	NegativeIA []string `json:",omitempty"`

	// IA describes the distribution of
	// information accretion values.
	IA *Distribution `json:",omitempty"`
}

// Method is the summary of the predictions of a single transfer method.
type Method struct {
	// Name is the name of the method and K
	// is the neighbourhood size for k-nearest
	// neighbour methods.
	Name string
	K    int `json:",omitempty"`

	// Proteins and Predictions are the number
	// of proteins with predictions and the
	// total number of predictions.
	Proteins, Predictions int

	// Degenerate lists the proteins reported
	// as unaligned because the total bit score
	// of their hits was zero.
	Degenerate []string `json:",omitempty"`

	// Scores describes the distribution of
	// prediction scores.
	Scores *Distribution `json:",omitempty"`
}

// Distribution is a summary of a sample of values. Quartiles are
// calculated by the nearest rank method.
type Distribution struct {
	N                    int
	Sum                  float64
	Min, Max             float64
	Mean, Median         float64
	Quartile1, Quartile3 float64
}

// New returns a new Summary for the named tool with a new run ID.
func New(tool string) *Summary {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return &Summary{
		RunID: id.String(),
		Tool:  tool,
		Start: time.Now().UTC(),
	}
}

// Describe returns a summary of the distribution of x. An empty sample
// has a zero Distribution.
func Describe(x []float64) (*Distribution, error) {
	if len(x) == 0 {
		return &Distribution{}, nil
	}
	d := &Distribution{N: len(x), Sum: floats.Sum(x)}
	var err error
	d.Min, err = stats.Min(x)
	if err != nil {
		return nil, err
	}
	d.Max, err = stats.Max(x)
	if err != nil {
		return nil, err
	}
	d.Mean, err = stats.Mean(x)
	if err != nil {
		return nil, err
	}
	d.Median, err = stats.Median(x)
	if err != nil {
		return nil, err
	}
	d.Quartile1, err = stats.PercentileNearestRank(x, 25)
	if err != nil {
		return nil, err
	}
	d.Quartile3, err = stats.PercentileNearestRank(x, 75)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// Distinct returns the sorted distinct values of s.
func Distinct(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(s))
	var d []string
	for _, v := range s {
		if seen[v] {
			continue
		}
		seen[v] = true
		d = append(d, v)
	}
	sort.Strings(d)
	return d
}

// WriteJSON writes the summary to w as indented JSON.
func WriteJSON(w io.Writer, s *Summary) error {
	b, err := json.MarshalIndent(s, "", "\t")
	if err != nil {
		return err
	}
	_, err = w.Write(append(b, '\n'))
	return err
}

// ReadJSON reads a summary written by WriteJSON.
func ReadJSON(r io.Reader) (*Summary, error) {
	var s Summary
	err := json.NewDecoder(r).Decode(&s)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
