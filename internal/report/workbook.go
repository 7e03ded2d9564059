// Copyright ©2026 The PFP-baselines Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Table is an additional workbook sheet.
type Table struct {
	Name   string
	Header []string
	Rows   [][]interface{}
}

// WriteWorkbook writes the summary to w as an xlsx workbook with a run
// sheet, an aspects sheet, a methods sheet and a sheet for each of the
// provided tables.
func WriteWorkbook(w io.Writer, s *Summary, tables ...Table) error {
	f := excelize.NewFile()
	defer f.Close()

	sheets := []Table{
		{
			Name:   "run",
			Header: []string{"field", "value"},
			Rows: [][]interface{}{
				{"run_id", s.RunID},
				{"tool", s.Tool},
				{"start", s.Start.Format(time.RFC3339)},
				{"ontology_version", s.OntologyVersion},
				{"cross_namespace_relations", s.CrossNamespace},
				{"unknown_terms", len(s.Unknown)},
				{"unaligned_proteins", len(s.Unaligned)},
			},
		},
		aspectTable(s.Aspects),
		methodTable(s.Methods),
	}
	sheets = append(sheets, tables...)

	for i, t := range sheets {
		if i == 0 {
			err := f.SetSheetName("Sheet1", t.Name)
			if err != nil {
				return err
			}
		} else {
			_, err := f.NewSheet(t.Name)
			if err != nil {
				return fmt.Errorf("report: sheet %q: %w", t.Name, err)
			}
		}
		err := writeTable(f, t)
		if err != nil {
			return fmt.Errorf("report: sheet %q: %w", t.Name, err)
		}
	}
	f.SetActiveSheet(0)
	_, err := f.WriteTo(w)
	return err
}

func writeTable(f *excelize.File, t Table) error {
	header := make([]interface{}, len(t.Header))
	for i, h := range t.Header {
		header[i] = h
	}
	err := f.SetSheetRow(t.Name, "A1", &header)
	if err != nil {
		return err
	}
	for i, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := row
		err = f.SetSheetRow(t.Name, cell, &row)
		if err != nil {
			return err
		}
	}
	return nil
}

var distributionHeader = []string{"n", "sum", "min", "max", "mean", "median", "q1", "q3"}

func distributionRow(d *Distribution) []interface{} {
	if d == nil {
		d = &Distribution{}
	}
	return []interface{}{d.N, d.Sum, d.Min, d.Max, d.Mean, d.Median, d.Quartile1, d.Quartile3}
}

func aspectTable(aspects []*Aspect) Table {
	t := Table{
		Name: "aspects",
		Header: append([]string{
			"aspect", "proteins", "annotations", "terms", "unmapped", "obsolete", "negative_ia",
		}, distributionHeader...),
	}
	for _, a := range aspects {
		row := []interface{}{
			a.Aspect, a.Proteins, a.Annotations, a.Terms,
			len(a.Unmapped), a.Obsolete, strings.Join(a.NegativeIA, " "),
		}
		t.Rows = append(t.Rows, append(row, distributionRow(a.IA)...))
	}
	return t
}

func methodTable(methods []*Method) Table {
	t := Table{
		Name: "methods",
		Header: append([]string{
			"method", "k", "proteins", "predictions", "degenerate",
		}, distributionHeader...),
	}
	for _, m := range methods {
		row := []interface{}{m.Name, m.K, m.Proteins, m.Predictions, len(m.Degenerate)}
		t.Rows = append(t.Rows, append(row, distributionRow(m.Scores)...))
	}
	return t
}
