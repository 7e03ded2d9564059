// Copyright ©2026 The PFP-baselines Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package annotation

import (
	"fmt"
	"io"
	"strings"

	"github.com/atoffano/PFP-baselines/internal/ontology"
	"github.com/atoffano/PFP-baselines/internal/tabular"
)

// Column names of annotation tables.
const (
	ProteinColumn = "EntryID"
	TermColumn    = "term"
	AspectColumn  = "aspect"
)

// ReadTSV returns the annotation entries held in the tab separated table
// in r. The table must have a header with EntryID and term columns and
// may have an aspect column. Multiple terms in a single term field may
// be joined with ';' and are split into one entry per term. Entries
// without an aspect column have an empty Aspect; use Resolve to fill it.
func ReadTSV(r io.Reader) ([]Entry, error) {
	c := tabular.NewReader(r)
	labels, err := tabular.Header(c)
	if err != nil {
		return nil, err
	}
	col, err := tabular.Columns(labels, []string{ProteinColumn, TermColumn}, []string{AspectColumn})
	if err != nil {
		return nil, fmt.Errorf("annotation: %w", err)
	}

	var entries []Entry
	c.ReuseRecord = true
	for {
		rec, err := c.Read()
		if err != nil {
			if err != io.EOF {
				return nil, err
			}
			break
		}
		line, _ := c.FieldPos(0)
		if len(rec) <= col[ProteinColumn] || len(rec) <= col[TermColumn] {
			return nil, fmt.Errorf("annotation: line %d: too few fields", line)
		}
		protein := strings.TrimSpace(rec[col[ProteinColumn]])
		var aspect ontology.Aspect
		if i := col[AspectColumn]; i >= 0 && i < len(rec) && rec[i] != "" {
			aspect, err = ontology.ParseAspect(rec[i])
			if err != nil {
				return nil, fmt.Errorf("annotation: line %d: %w", line, err)
			}
		}
		for _, term := range strings.Split(rec[col[TermColumn]], ";") {
			term = strings.TrimSpace(term)
			if term == "" {
				continue
			}
			entries = append(entries, Entry{Protein: protein, Term: term, Aspect: aspect})
		}
	}
	return entries, nil
}

// WriteTSV writes entries to w as a tab separated table with a header.
func WriteTSV(w io.Writer, entries []Entry) error {
	c := tabular.NewWriter(w)
	c.Write([]string{ProteinColumn, TermColumn, AspectColumn})
	for _, e := range entries {
		c.Write([]string{e.Protein, e.Term, string(e.Aspect)})
	}
	c.Flush()
	return c.Error()
}

// ReadIDs returns the distinct protein identifiers held in r in first
// appearance order. If the first record has an EntryID column, that
// column is used and the record is treated as a header, otherwise the
// first field of every record is used.
func ReadIDs(r io.Reader) ([]string, error) {
	c := tabular.NewReader(r)
	c.ReuseRecord = true
	col := 0
	first := true
	seen := make(map[string]bool)
	var ids []string
	for {
		rec, err := c.Read()
		if err != nil {
			if err != io.EOF {
				return nil, err
			}
			break
		}
		if first {
			first = false
			if i := indexOf(rec, ProteinColumn); i >= 0 {
				col = i
				continue
			}
		}
		if col >= len(rec) {
			line, _ := c.FieldPos(0)
			return nil, fmt.Errorf("annotation: line %d: too few fields", line)
		}
		id := strings.TrimSpace(rec[col])
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids, nil
}

func indexOf(s []string, v string) int {
	for i, e := range s {
		if strings.TrimSpace(e) == v {
			return i
		}
	}
	return -1
}
