// Copyright ©2026 The PFP-baselines Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ontology

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

const fixture = `format-version: 1.2
data-version: releases/2024-01-17
ontology: go

[Term]
id: GO:0008150
name: biological_process
namespace: biological_process

[Term]
id: GO:0009987
name: cellular process
namespace: biological_process
is_a: GO:0008150 ! biological_process

[Term]
id: GO:0050789
name: regulation of biological process
namespace: biological_process
is_a: GO:0008150 ! biological_process
relationship: regulates GO:0009987 ! cellular process

[Term]
id: GO:0005575
name: cellular_component
namespace: cellular_component

[Term]
id: GO:0005623
name: cell
namespace: cellular_component
is_a: GO:0005575 ! cellular_component

[Term]
id: GO:0005737
name: cytoplasm
namespace: cellular_component
is_a: GO:0005575 ! cellular_component
relationship: part_of GO:0005623 ! cell

[Term]
id: GO:0003674
name: molecular_function
namespace: molecular_function

[Term]
id: GO:0003824
name: catalytic activity
namespace: molecular_function
is_a: GO:0003674 ! molecular_function
relationship: part_of GO:0008150 ! biological_process

[Term]
id: GO:0000001
name: mitochondrion inheritance
namespace: biological_process
is_obsolete: true
replaced_by: GO:0009987

[Term]
id: GO:0000002
name: mitochondrial genome maintenance
namespace: molecular_function
is_obsolete: true

[Typedef]
id: part_of
name: part of
`

func mustLoad(t *testing.T, src string) *Graph {
	t.Helper()
	g, err := Load(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error loading ontology: %v", err)
	}
	return g
}

func TestLoad(t *testing.T) {
	g := mustLoad(t, fixture)

	if got := g.Header().DataVersion; got != "releases/2024-01-17" {
		t.Errorf("unexpected data version: got:%q", got)
	}
	if g.Len() != 10 {
		t.Errorf("unexpected number of terms: got:%d want:10", g.Len())
	}
	if got, _ := g.Aspect("GO:0005737"); got != CCO {
		t.Errorf("unexpected aspect for GO:0005737: got:%s want:%s", got, CCO)
	}
	if got := g.Label("GO:0003824"); got != "catalytic activity" {
		t.Errorf("unexpected label for GO:0003824: got:%q", got)
	}
	if !g.IsObsolete("GO:0000002") || g.IsObsolete("GO:0009987") {
		t.Errorf("unexpected obsolete status")
	}

	var relationTests = []struct {
		term string
		want []Relation
	}{
		{term: "GO:0008150", want: nil},
		{term: "GO:0050789", want: []Relation{
			{Type: "is_a", Target: "GO:0008150"},
			{Type: "regulates", Target: "GO:0009987"},
		}},
		{term: "GO:0005737", want: []Relation{
			{Type: "is_a", Target: "GO:0005575"},
			{Type: "part_of", Target: "GO:0005623"},
		}},
		{term: "GO:9999999", want: nil},
	}
	for _, test := range relationTests {
		got := g.Relations(test.term)
		if !reflect.DeepEqual(got, test.want) {
			t.Errorf("unexpected relations for %s: got:%v want:%v", test.term, got, test.want)
		}
	}
}

var malformedTests = []struct {
	name string
	in   string
	want string
}{
	{
		name: "missing namespace",
		in:   "[Term]\nid: GO:0008150\nname: biological_process\n",
		want: "term GO:0008150 has no namespace",
	},
	{
		name: "undefined target",
		in:   "[Term]\nid: GO:0009987\nnamespace: biological_process\nis_a: GO:0008150\n",
		want: "GO:0009987 is_a refers to undefined term GO:0008150",
	},
}

func TestLoadMalformed(t *testing.T) {
	for _, test := range malformedTests {
		_, err := Load(strings.NewReader(test.in))
		if !errors.Is(err, ErrMalformedOntology) {
			t.Errorf("expected malformed ontology error for %q: got:%v", test.name, err)
			continue
		}
		if !strings.Contains(err.Error(), test.want) {
			t.Errorf("unexpected error for %q: got:%q want:%q", test.name, err, test.want)
		}
	}
}

func TestClean(t *testing.T) {
	g := mustLoad(t, fixture)
	c, crossed := Clean(g)
	if crossed != 1 {
		t.Errorf("unexpected number of cross-namespace relations: got:%d want:1", crossed)
	}
	for term, want := range map[string][]Relation{
		"GO:0050789": {{Type: "is_a", Target: "GO:0008150"}},
		"GO:0003824": {{Type: "is_a", Target: "GO:0003674"}},
		"GO:0005737": {{Type: "is_a", Target: "GO:0005575"}, {Type: "part_of", Target: "GO:0005623"}},
	} {
		got := c.Relations(term)
		if !reflect.DeepEqual(got, want) {
			t.Errorf("unexpected relations for %s after clean: got:%v want:%v", term, got, want)
		}
	}

	// The source graph is not altered.
	if got := len(g.Relations("GO:0050789")); got != 2 {
		t.Errorf("unexpected mutation of source graph: got %d relations", got)
	}
	if c.Label("GO:0005623") != "cell" {
		t.Errorf("term attributes lost by clean")
	}
}

func TestPartition(t *testing.T) {
	g, _ := Clean(mustLoad(t, fixture))
	subs, err := Partition(g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[Aspect][]string{
		BPO: {"GO:0000001", "GO:0008150", "GO:0009987", "GO:0050789"},
		CCO: {"GO:0005575", "GO:0005623", "GO:0005737"},
		MFO: {"GO:0000002", "GO:0003674", "GO:0003824"},
	}
	for a, terms := range want {
		s := subs[a]
		if s.Aspect() != a {
			t.Errorf("unexpected aspect: got:%s want:%s", s.Aspect(), a)
		}
		if !reflect.DeepEqual(s.Terms(), terms) {
			t.Errorf("unexpected terms for %s: got:%v want:%v", a, s.Terms(), terms)
		}
		for i, id := range terms {
			if got, ok := s.Index(id); !ok || got != i {
				t.Errorf("unexpected index for %s in %s: got:%d want:%d", id, a, got, i)
			}
		}
	}
	if subs[MFO].Has("GO:0008150") {
		t.Errorf("foreign term in MFO subgraph")
	}
}

func TestPartitionMissingRoot(t *testing.T) {
	src := strings.Replace(fixture, "id: GO:0003674\n", "id: GO:0003675\n", 1)
	src = strings.ReplaceAll(src, "is_a: GO:0003674", "is_a: GO:0003675")
	_, err := Partition(mustLoad(t, src))
	if err == nil || !strings.Contains(err.Error(), "missing root term GO:0003674") {
		t.Errorf("unexpected error for missing root: %v", err)
	}

	src = "[Term]\nid: GO:0008150\nnamespace: biological_process\n"
	_, err = Partition(mustLoad(t, src))
	if err == nil || !strings.Contains(err.Error(), "no terms") {
		t.Errorf("unexpected error for empty aspect: %v", err)
	}
}

var ancestorTests = []struct {
	aspect Aspect
	term   string
	want   []string
	ok     bool
}{
	{aspect: BPO, term: "GO:0008150", want: nil, ok: true},
	{aspect: BPO, term: "GO:0009987", want: []string{"GO:0008150"}, ok: true},
	{aspect: BPO, term: "GO:0050789", want: []string{"GO:0008150"}, ok: true},
	{aspect: BPO, term: "GO:0000001", want: nil, ok: true},
	{aspect: CCO, term: "GO:0005737", want: []string{"GO:0005575", "GO:0005623"}, ok: true},
	{aspect: MFO, term: "GO:0003824", want: []string{"GO:0003674"}, ok: true},
	{aspect: MFO, term: "GO:0008150", want: nil, ok: false},
	{aspect: CCO, term: "GO:9999999", want: nil, ok: false},
}

func TestAncestors(t *testing.T) {
	// Non-structural relations must not be followed even
	// when the graph has not been cleaned.
	for _, clean := range []bool{false, true} {
		g := mustLoad(t, fixture)
		if clean {
			g, _ = Clean(g)
		}
		subs, err := Partition(g)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		closures := make(map[Aspect]*Closure)
		for a, s := range subs {
			closures[a] = NewClosure(s)
		}
		for _, test := range ancestorTests {
			got, ok := subs[test.aspect].Ancestors(test.term)
			if ok != test.ok || !reflect.DeepEqual(got, test.want) {
				t.Errorf("unexpected ancestors for %s in %s (clean=%t): got:%v,%t want:%v,%t",
					test.term, test.aspect, clean, got, ok, test.want, test.ok)
			}
			// Query twice to exercise the cache.
			for i := 0; i < 2; i++ {
				got, ok = closures[test.aspect].Ancestors(test.term)
				if ok != test.ok || !reflect.DeepEqual(got, test.want) {
					t.Errorf("unexpected cached ancestors for %s in %s (clean=%t): got:%v,%t want:%v,%t",
						test.term, test.aspect, clean, got, ok, test.want, test.ok)
				}
			}
		}
	}
}

func TestParents(t *testing.T) {
	g, _ := Clean(mustLoad(t, fixture))
	subs, err := Partition(g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for term, want := range map[string][]string{
		"GO:0005737": {"GO:0005575", "GO:0005623"},
		"GO:0005623": {"GO:0005575"},
		"GO:0005575": nil,
	} {
		got := subs[CCO].Parents(term)
		if !reflect.DeepEqual(got, want) {
			t.Errorf("unexpected parents for %s: got:%v want:%v", term, got, want)
		}
	}
}

func TestFindObsolete(t *testing.T) {
	g := mustLoad(t, fixture)
	obsolete, replacements := FindObsolete(g)
	if want := map[string]bool{"GO:0000002": true}; !reflect.DeepEqual(obsolete, want) {
		t.Errorf("unexpected obsolete terms: got:%v want:%v", obsolete, want)
	}
	if want := map[string]string{"GO:0000001": "GO:0009987"}; !reflect.DeepEqual(replacements, want) {
		t.Errorf("unexpected replacements: got:%v want:%v", replacements, want)
	}
}

func TestMarshalClosure(t *testing.T) {
	g, _ := Clean(mustLoad(t, fixture))
	subs, err := Partition(g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := subs[CCO].MarshalClosure("P1", []string{"GO:0005737", "GO:9999999"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := string(b)
	for _, want := range []string{
		"digraph P1 {",
		"rankdir=BT",
		`"GO:0005737" -> "GO:0005575" [label=is_a];`,
		`"GO:0005737" -> "GO:0005623" [label=part_of];`,
		`"GO:0005623" -> "GO:0005575" [label=is_a];`,
		"style=filled",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in DOT output:\n%s", want, got)
		}
	}
	if strings.Contains(got, "GO:9999999") || strings.Contains(got, `"biological_process"`) {
		t.Errorf("unexpected node in DOT output:\n%s", got)
	}
}

func TestParseAspect(t *testing.T) {
	for in, want := range map[string]Aspect{
		"BPO": BPO, "cc": CCO, "F": MFO, "molecular_function": MFO, " bp ": BPO,
	} {
		got, err := ParseAspect(in)
		if err != nil || got != want {
			t.Errorf("unexpected aspect for %q: got:%s err:%v want:%s", in, got, err, want)
		}
	}
	if _, err := ParseAspect("xx"); err == nil {
		t.Errorf("expected error for unknown aspect")
	}
	for _, a := range Aspects() {
		got, ok := AspectOf(a.Namespace())
		if !ok || got != a {
			t.Errorf("unexpected namespace round trip for %s: got:%s", a, got)
		}
	}
}
