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

// Hit is a pairwise alignment hit in BLAST tabular (outfmt 6) form.
type Hit struct {
	Query    string
	Subject  string
	Identity float64 // percent identity

	Length     int
	Mismatches int
	GapOpens   int
	QueryStart int
	QueryEnd   int
	SubjStart  int
	SubjEnd    int

	EValue   float64
	BitScore float64
}

// ReadHits returns the alignment hits held in the headerless 12 column
// tab separated table in r, as written by diamond or blast with the
// default outfmt 6 columns.
func ReadHits(r io.Reader) ([]Hit, error) {
	c := tabular.NewReader(r)
	c.FieldsPerRecord = 12
	c.ReuseRecord = true
	var hits []Hit
	for {
		rec, err := c.Read()
		if err != nil {
			if err != io.EOF {
				return nil, err
			}
			break
		}
		var (
			h Hit
			p parser
		)
		h.Query = rec[0]
		h.Subject = rec[1]
		h.Identity = p.parseFloat(rec[2], "pident")
		h.Length = p.parseInt(rec[3], "length")
		h.Mismatches = p.parseInt(rec[4], "mismatch")
		h.GapOpens = p.parseInt(rec[5], "gapopen")
		h.QueryStart = p.parseInt(rec[6], "qstart")
		h.QueryEnd = p.parseInt(rec[7], "qend")
		h.SubjStart = p.parseInt(rec[8], "sstart")
		h.SubjEnd = p.parseInt(rec[9], "send")
		h.EValue = p.parseFloat(rec[10], "evalue")
		h.BitScore = p.parseFloat(rec[11], "bitscore")
		if p.err != nil {
			line, _ := c.FieldPos(0)
			return nil, fmt.Errorf("transfer: line %d: %w", line, p.err)
		}
		hits = append(hits, h)
	}
	return hits, nil
}

// parser retains the first parse error.
type parser struct {
	err error
}

func (p *parser) parseFloat(s, field string) float64 {
	if p.err != nil {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		p.err = fmt.Errorf("invalid %s: %v", field, err)
	}
	return v
}

func (p *parser) parseInt(s, field string) int {
	if p.err != nil {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		p.err = fmt.Errorf("invalid %s: %v", field, err)
	}
	return v
}

// FilterOptions specifies the hits removed by FilterHits.
type FilterOptions struct {
	// MaxEValue is the largest e-value retained.
	// Zero or negative values retain all hits.
	MaxEValue float64

	// Queries and Reference restrict the retained
	// hits to queries and subjects in the sets
	// when they are not nil.
	Queries   map[string]bool
	Reference map[string]bool

	// DropQuerySubjects removes hits whose subject
	// is itself a query.
	DropQuerySubjects bool
}

// FilterHits returns the hits that are not self hits and that satisfy
// opts, retaining input order. The number of removed hits is also
// returned.
func FilterHits(hits []Hit, opts FilterOptions) ([]Hit, int) {
	out := make([]Hit, 0, len(hits))
	for _, h := range hits {
		switch {
		case h.Query == h.Subject:
		case opts.MaxEValue > 0 && h.EValue > opts.MaxEValue:
		case opts.Queries != nil && !opts.Queries[h.Query]:
		case opts.Reference != nil && !opts.Reference[h.Subject]:
		case opts.DropQuerySubjects && opts.Queries[h.Subject]:
		default:
			out = append(out, h)
		}
	}
	return out, len(hits) - len(out)
}
