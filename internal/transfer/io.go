// Copyright ©2026 The PFP-baselines Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transfer

import (
	"fmt"
	"io"
	"strconv"

	"github.com/atoffano/PFP-baselines/internal/tabular"
)

// WritePredictions writes preds to w as a tab separated table with a
// target_ID, term_ID and score header.
func WritePredictions(w io.Writer, preds []Prediction) error {
	c := tabular.NewWriter(w)
	c.Write([]string{"target_ID", "term_ID", "score"})
	for _, p := range preds {
		c.Write([]string{p.Protein, p.Term, strconv.FormatFloat(p.Score, 'g', -1, 64)})
	}
	c.Flush()
	return c.Error()
}

// ReadPredictions reads predictions written by WritePredictions.
func ReadPredictions(r io.Reader) ([]Prediction, error) {
	c := tabular.NewReader(r)
	labels, err := tabular.Header(c)
	if err != nil {
		return nil, err
	}
	col, err := tabular.Columns(labels, []string{"target_ID", "term_ID", "score"}, nil)
	if err != nil {
		return nil, fmt.Errorf("transfer: %w", err)
	}
	c.ReuseRecord = true
	var preds []Prediction
	for {
		rec, err := c.Read()
		if err != nil {
			if err != io.EOF {
				return nil, err
			}
			break
		}
		line, _ := c.FieldPos(0)
		if len(rec) < len(labels) {
			return nil, fmt.Errorf("transfer: line %d: too few fields", line)
		}
		s, err := strconv.ParseFloat(rec[col["score"]], 64)
		if err != nil {
			return nil, fmt.Errorf("transfer: line %d: invalid score: %v", line, err)
		}
		preds = append(preds, Prediction{Protein: rec[col["target_ID"]], Term: rec[col["term_ID"]], Score: s})
	}
	return preds, nil
}

// WriteIDs writes ids to w, one per line.
func WriteIDs(w io.Writer, ids []string) error {
	for _, id := range ids {
		_, err := fmt.Fprintln(w, id)
		if err != nil {
			return err
		}
	}
	return nil
}
