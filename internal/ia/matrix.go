// Copyright ©2026 The PFP-baselines Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ia

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/atoffano/PFP-baselines/internal/annotation"
)

// CountMatrix is a sparse protein by term count matrix held in compressed
// sparse column form. The last row is a synthetic protein annotated once
// with every term so that no column is empty.
//
// CountMatrix implements mat.Matrix.
type CountMatrix struct {
	// proteins and terms label the
	// rows and columns of the matrix.
	// The dummy row has no label.
	proteins []string
	terms    []string
	index    map[string]int

	// colPtr[j]:colPtr[j+1] spans the
	// row indices and values of column
	// j in rowIdx and data. Row indices
	// are strictly increasing within
	// each column.
	colPtr []int
	rowIdx []int
	data   []float64
}

var _ mat.Matrix = (*CountMatrix)(nil)

// Build returns the count matrix for entries over the given terms, which
// define the matrix columns in order. Rows are the distinct proteins of
// entries in first appearance order followed by the dummy row. Repeated
// entries accumulate counts. It is an error for an entry to have a term
// that is not in terms.
func Build(entries []annotation.Entry, terms []string) (*CountMatrix, error) {
	m := &CountMatrix{
		terms: terms,
		index: make(map[string]int, len(terms)),
	}
	for j, t := range terms {
		if _, ok := m.index[t]; ok {
			return nil, fmt.Errorf("ia: duplicate term %s in column index", t)
		}
		m.index[t] = j
	}

	rows := make(map[string]int)
	cols := make([][]int, len(terms))
	for _, e := range entries {
		j, ok := m.index[e.Term]
		if !ok {
			return nil, fmt.Errorf("ia: term %s for %s is not in the column index", e.Term, e.Protein)
		}
		i, ok := rows[e.Protein]
		if !ok {
			i = len(m.proteins)
			rows[e.Protein] = i
			m.proteins = append(m.proteins, e.Protein)
		}
		cols[j] = append(cols[j], i)
	}

	dummy := len(m.proteins)
	m.colPtr = make([]int, 1, len(terms)+1)
	for _, c := range cols {
		sort.Ints(c)
		for k, i := range c {
			if k != 0 && c[k-1] == i {
				m.data[len(m.data)-1]++
				continue
			}
			m.rowIdx = append(m.rowIdx, i)
			m.data = append(m.data, 1)
		}
		m.rowIdx = append(m.rowIdx, dummy)
		m.data = append(m.data, 1)
		m.colPtr = append(m.colPtr, len(m.rowIdx))
	}
	return m, nil
}

// Dims returns the dimensions of the matrix, including the dummy row.
func (m *CountMatrix) Dims() (r, c int) { return len(m.proteins) + 1, len(m.terms) }

// At returns the count at row i and column j.
func (m *CountMatrix) At(i, j int) float64 {
	r, c := m.Dims()
	if uint(i) >= uint(r) {
		panic(mat.ErrRowAccess)
	}
	if uint(j) >= uint(c) {
		panic(mat.ErrColAccess)
	}
	rows := m.rowIdx[m.colPtr[j]:m.colPtr[j+1]]
	k := sort.SearchInts(rows, i)
	if k < len(rows) && rows[k] == i {
		return m.data[m.colPtr[j]+k]
	}
	return 0
}

// T returns the transpose of the matrix.
func (m *CountMatrix) T() mat.Matrix { return mat.Transpose{Matrix: m} }

// NNZ returns the number of stored non-zero elements, including
// the elements of the dummy row.
func (m *CountMatrix) NNZ() int { return len(m.rowIdx) }

// Proteins returns the row labels of the matrix excluding the
// dummy row.
func (m *CountMatrix) Proteins() []string { return m.proteins }

// Terms returns the column labels of the matrix.
func (m *CountMatrix) Terms() []string { return m.terms }

// Column returns the column index for the term.
func (m *CountMatrix) Column(term string) (int, bool) {
	j, ok := m.index[term]
	return j, ok
}

// rows returns the sorted indices of rows with a non-zero count in
// column j. The returned slice must not be modified.
func (m *CountMatrix) rows(j int) []int {
	return m.rowIdx[m.colPtr[j]:m.colPtr[j+1]]
}
