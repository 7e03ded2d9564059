// Copyright ©2026 The PFP-baselines Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ia

import (
	"fmt"
	"io"
	"strconv"

	"github.com/atoffano/PFP-baselines/internal/ontology"
	"github.com/atoffano/PFP-baselines/internal/tabular"
)

// WriteTable writes the values to w as headerless tab separated
// term, ic and aspect columns.
func WriteTable(w io.Writer, values []Value) error {
	c := tabular.NewWriter(w)
	for _, v := range values {
		c.Write([]string{v.Term, strconv.FormatFloat(v.IA, 'g', -1, 64), string(v.Aspect)})
	}
	c.Flush()
	return c.Error()
}

// ReadTable reads values written by WriteTable. The aspect column is
// optional.
func ReadTable(r io.Reader) ([]Value, error) {
	c := tabular.NewReader(r)
	c.ReuseRecord = true
	var values []Value
	for {
		rec, err := c.Read()
		if err != nil {
			if err != io.EOF {
				return nil, err
			}
			break
		}
		line, _ := c.FieldPos(0)
		if len(rec) < 2 {
			return nil, fmt.Errorf("ia: line %d: too few fields", line)
		}
		v, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, fmt.Errorf("ia: line %d: error parsing value for %q: %v", line, rec[0], err)
		}
		var aspect ontology.Aspect
		if len(rec) > 2 && rec[2] != "" {
			aspect, err = ontology.ParseAspect(rec[2])
			if err != nil {
				return nil, fmt.Errorf("ia: line %d: %w", line, err)
			}
		}
		values = append(values, Value{Term: rec[0], Aspect: aspect, IA: v})
	}
	return values, nil
}
