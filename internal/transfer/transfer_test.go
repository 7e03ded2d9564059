// Copyright ©2026 The PFP-baselines Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transfer

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atoffano/PFP-baselines/internal/annotation"
)

func hit(query, subject string, identity, bitScore float64) Hit {
	return Hit{Query: query, Subject: subject, Identity: identity, BitScore: bitScore, EValue: 1e-10}
}

func scores(preds []Prediction) map[string]float64 {
	m := make(map[string]float64)
	for _, p := range preds {
		m[p.Protein+" "+p.Term] = p.Score
	}
	return m
}

func TestTransferExample(t *testing.T) {
	ref := Reference{
		"S1": {"T1"},
		"S2": {"T1", "T2"},
	}
	hits := []Hit{
		hit("Q", "S1", 80, 10),
		hit("Q", "S2", 90, 5),
	}
	res, err := Transfer(hits, ref, []string{"Q"}, Options{K: []int{1, 5}, LeakageGuard: true})
	require.NoError(t, err)

	t.Run("aggregate", func(t *testing.T) {
		got := scores(res.Aggregate)
		assert.Len(t, got, 2)
		assert.Equal(t, 1.0, got["Q T1"])
		assert.InDelta(t, 1.0/3, got["Q T2"], 1e-12)
	})

	t.Run("k=1", func(t *testing.T) {
		assert.Equal(t, []Prediction{{Protein: "Q", Term: "T1", Score: 1}}, res.KNN[1])
	})

	t.Run("k larger than group", func(t *testing.T) {
		assert.Equal(t, scores(res.Aggregate), scores(res.KNN[5]))
	})

	t.Run("best hit", func(t *testing.T) {
		assert.Equal(t, []Prediction{
			{Protein: "Q", Term: "T1", Score: 1},
			{Protein: "Q", Term: "T2", Score: 1},
		}, res.BestHit)
	})

	assert.Empty(t, res.Unaligned)
	assert.Empty(t, res.Degenerate)
}

func TestTransferTies(t *testing.T) {
	ref := Reference{
		"S1": {"T1"},
		"S2": {"T2"},
		"S3": {"T3"},
	}
	hits := []Hit{
		hit("Q", "S1", 70, 10),
		hit("Q", "S2", 90, 20),
		hit("Q", "S3", 90, 20),
	}
	res, err := Transfer(hits, ref, []string{"Q"}, Options{K: []int{1, 2}})
	require.NoError(t, err)

	// First maximum percent identity wins.
	assert.Equal(t, []Prediction{{Protein: "Q", Term: "T2", Score: 1}}, res.BestHit)
	// Equal bit scores are taken in input order.
	assert.Equal(t, []Prediction{{Protein: "Q", Term: "T2", Score: 1}}, res.KNN[1])
	assert.Equal(t, []Prediction{
		{Protein: "Q", Term: "T2", Score: 0.5},
		{Protein: "Q", Term: "T3", Score: 0.5},
	}, res.KNN[2])
}

func TestTransferFiltersAndCoverage(t *testing.T) {
	ref := Reference{
		"S1": {"T1", "T2"},
		"S2": {"T2"},
		"S3": nil,
	}
	queries := []string{"Q1", "Q2", "Q3", "Q4", "Q1"}
	hits := []Hit{
		hit("Q1", "S1", 50, 30),
		hit("Q1", "Q1", 100, 500), // self hit
		hit("Q2", "S3", 60, 40),   // unannotated subject
		hit("Q2", "SX", 60, 40),   // unknown subject
		hit("Q3", "S2", 40, 12),
		hit("Q3", "S1", 45, 4),
		hit("QX", "S1", 99, 99), // not a query
	}
	res, err := Transfer(hits, ref, queries, Options{K: []int{1}, LeakageGuard: true})
	require.NoError(t, err)

	assert.Equal(t, []string{"Q2", "Q4"}, res.Unaligned)

	predicted := make(map[string]bool)
	for _, p := range res.Aggregate {
		predicted[p.Protein] = true
	}
	for _, u := range res.Unaligned {
		assert.False(t, predicted[u], "unaligned query %s has predictions", u)
		predicted[u] = true
	}
	assert.Len(t, predicted, 4, "aggregate predictions and unaligned queries must cover the query set")

	for name, preds := range map[string][]Prediction{
		"best hit":  res.BestHit,
		"aggregate": res.Aggregate,
		"knn":       res.KNN[1],
	} {
		for _, p := range preds {
			assert.True(t, p.Score >= 0 && p.Score <= 1, "%s score out of range: %+v", name, p)
			assert.NotEqual(t, "QX", p.Protein)
		}
	}

	got := scores(res.Aggregate)
	assert.Equal(t, 1.0, got["Q1 T1"])
	assert.Equal(t, 1.0, got["Q1 T2"])
	assert.Equal(t, 1.0, got["Q3 T2"])
	assert.Equal(t, 0.25, got["Q3 T1"])
}

func TestTransferScoreBounds(t *testing.T) {
	// Awkward bit scores that do not sum exactly.
	bits := []float64{0.1, 0.2, 0.3, 1e-17, 7.000000000000001, 3.3333333333333335}
	ref := make(Reference)
	var hits []Hit
	for i, b := range bits {
		s := fmt.Sprintf("S%d", i)
		ref[s] = []string{"T", fmt.Sprintf("T%d", i)}
		hits = append(hits, hit("Q", s, float64(i), b))
	}
	res, err := Transfer(hits, ref, []string{"Q"}, Options{K: []int{1, 2, 3, 6}})
	require.NoError(t, err)

	all := append([]Prediction(nil), res.Aggregate...)
	for _, preds := range res.KNN {
		all = append(all, preds...)
	}
	for _, p := range all {
		assert.True(t, p.Score >= 0 && p.Score <= 1, "score out of range: %+v", p)
	}
	assert.Equal(t, 1.0, scores(res.Aggregate)["Q T"])
}

func TestTransferDegenerate(t *testing.T) {
	ref := Reference{"S1": {"T1"}, "S2": {"T2"}}
	hits := []Hit{
		hit("Q1", "S1", 50, 0),
		hit("Q1", "S2", 40, 10),
		hit("Q2", "S1", 50, 0),
	}
	res, err := Transfer(hits, ref, []string{"Q1", "Q2"}, Options{K: []int{1, 2}})
	require.NoError(t, err)

	// Q1's top hit by bit score is S2.
	assert.Equal(t, []Prediction{{Protein: "Q1", Term: "T2", Score: 1}}, res.KNN[1])
	assert.Equal(t, []Prediction{
		{Protein: "Q1", Term: "T1", Score: 0},
		{Protein: "Q1", Term: "T2", Score: 1},
	}, res.KNN[2])

	// Q2 has only zero weight evidence.
	assert.Equal(t, []string{"Q2"}, res.Unaligned)
	assert.Equal(t, []string{"Q2"}, res.Degenerate)
	all := append(append([]Prediction(nil), res.BestHit...), res.Aggregate...)
	for _, preds := range res.KNN {
		all = append(all, preds...)
	}
	predicted := make(map[string]bool)
	for _, p := range all {
		assert.NotEqual(t, "Q2", p.Protein)
		predicted[p.Protein] = true
	}
	for _, u := range res.Unaligned {
		predicted[u] = true
	}
	assert.Len(t, predicted, 2, "predictions and unaligned queries must cover the query set")

	_, err = Transfer(hits, ref, []string{"Q1"}, Options{K: []int{0}})
	assert.Error(t, err)
}

func TestTransferRepeatedK(t *testing.T) {
	ref := Reference{"S1": {"T1"}, "S2": {"T1", "T2"}}
	hits := []Hit{
		hit("Q", "S1", 90, 10),
		hit("Q", "S2", 80, 5),
	}
	res, err := Transfer(hits, ref, []string{"Q"}, Options{K: []int{1, 1, 2, 1}})
	require.NoError(t, err)

	assert.Len(t, res.KNN, 2)
	assert.Equal(t, []Prediction{{Protein: "Q", Term: "T1", Score: 1}}, res.KNN[1])
	assert.Len(t, res.KNN[2], 2)
}

func TestTransferLeakage(t *testing.T) {
	ref := Reference{"S1": {"T1"}, "Q2": {"T2"}}
	hits := []Hit{
		hit("Q1", "S1", 50, 10),
		hit("Q1", "Q2", 60, 10),
	}
	queries := []string{"Q1", "Q2"}

	_, err := Transfer(hits, ref, queries, Options{LeakageGuard: true})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLeakage))
	var leak *LeakageError
	require.True(t, errors.As(err, &leak))
	assert.Equal(t, "Q1", leak.Query)
	assert.Equal(t, []string{"Q2"}, leak.Subjects)

	res, err := Transfer(hits, ref, queries, Options{LeakageGuard: false})
	require.NoError(t, err)
	assert.Equal(t, []string{"Q2"}, res.Unaligned)
}

func TestNaive(t *testing.T) {
	ref := NewReference([]annotation.Entry{
		{Protein: "P1", Term: "T1"},
		{Protein: "P1", Term: "T1"},
		{Protein: "P1", Term: "T2"},
		{Protein: "P2", Term: "T1"},
		{Protein: "P3", Term: "T3"},
		{Protein: "P4", Term: "T1"},
	})
	got := Naive(ref, []string{"Q1", "Q2", "Q1"})
	want := []Prediction{
		{Protein: "Q1", Term: "T1", Score: 0.75},
		{Protein: "Q1", Term: "T2", Score: 0.25},
		{Protein: "Q1", Term: "T3", Score: 0.25},
		{Protein: "Q2", Term: "T1", Score: 0.75},
		{Protein: "Q2", Term: "T2", Score: 0.25},
		{Protein: "Q2", Term: "T3", Score: 0.25},
	}
	assert.Equal(t, want, got)
	assert.Nil(t, Naive(Reference{}, []string{"Q1"}))
}

const outfmt6 = `Q1	S1	85.5	120	10	2	1	120	5	124	1.2e-50	210.3
Q1	S2	40.1	80	40	3	10	90	1	80	0.01	35.0
Q1	Q1	100	120	0	0	1	120	1	120	0	250
Q2	S1	55	100	45	1	1	100	1	100	1e-20	90
`

func TestHits(t *testing.T) {
	hits, err := ReadHits(strings.NewReader(outfmt6))
	require.NoError(t, err)
	require.Len(t, hits, 4)
	assert.Equal(t, Hit{
		Query: "Q1", Subject: "S1", Identity: 85.5,
		Length: 120, Mismatches: 10, GapOpens: 2,
		QueryStart: 1, QueryEnd: 120, SubjStart: 5, SubjEnd: 124,
		EValue: 1.2e-50, BitScore: 210.3,
	}, hits[0])

	filtered, n := FilterHits(hits, FilterOptions{MaxEValue: 1e-3})
	assert.Equal(t, 2, n)
	assert.Equal(t, []Hit{hits[0], hits[3]}, filtered)

	filtered, n = FilterHits(hits, FilterOptions{
		Queries:   map[string]bool{"Q1": true},
		Reference: map[string]bool{"S2": true},
	})
	assert.Equal(t, 3, n)
	assert.Equal(t, []Hit{hits[1]}, filtered)

	leaky := append(hits, hit("Q2", "Q1", 99, 200))
	filtered, _ = FilterHits(leaky, FilterOptions{
		Queries:           map[string]bool{"Q1": true, "Q2": true},
		DropQuerySubjects: true,
	})
	assert.Equal(t, []Hit{hits[0], hits[1], hits[3]}, filtered)

	_, err = ReadHits(strings.NewReader("Q1\tS1\tx\t1\t1\t1\t1\t1\t1\t1\t1\t1\n"))
	assert.ErrorContains(t, err, "line 1: invalid pident")
	_, err = ReadHits(strings.NewReader("Q1\tS1\t1\n"))
	assert.Error(t, err)
}

func TestPredictionsIO(t *testing.T) {
	preds := []Prediction{
		{Protein: "Q1", Term: "GO:0008150", Score: 1},
		{Protein: "Q1", Term: "GO:0003674", Score: 1.0 / 3},
	}
	var buf bytes.Buffer
	require.NoError(t, WritePredictions(&buf, preds))
	assert.True(t, strings.HasPrefix(buf.String(), "target_ID\tterm_ID\tscore\nQ1\tGO:0008150\t1\n"))

	got, err := ReadPredictions(&buf)
	require.NoError(t, err)
	assert.Equal(t, preds, got)

	buf.Reset()
	require.NoError(t, WriteIDs(&buf, []string{"Q2", "Q4"}))
	assert.Equal(t, "Q2\nQ4\n", buf.String())
}
