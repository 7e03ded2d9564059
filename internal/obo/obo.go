// Copyright ©2026 The PFP-baselines Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package obo

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"gonum.org/v1/gonum/graph/formats/rdf"
)

// Term values of the predicates and objects emitted by the Decoder.
// Namespaces are not expanded to full IRI namespaces.
const (
	Type       = "<rdf:type>"
	Class      = "<owl:Class>"
	Label      = "<rdfs:label>"
	Namespace  = "<oboInOwl:hasOBONamespace>"
	SubClassOf = "<rdfs:subClassOf>"
	PartOf     = "<obo:BFO_0000050>"
	Deprecated = "<owl:deprecated>"
	ReplacedBy = "<obo:IAO_0100001>"
)

// relations maps OBO relationship names to the predicates used for them
// in the GO OWL release. Unknown relationships are placed in the obo:go#
// namespace.
var relations = map[string]string{
	"is_a":                 SubClassOf,
	"part_of":              PartOf,
	"has_part":             "<obo:BFO_0000051>",
	"occurs_in":            "<obo:BFO_0000066>",
	"happens_during":       "<obo:RO_0002092>",
	"ends_during":          "<obo:RO_0002093>",
	"regulates":            "<obo:RO_0002211>",
	"negatively_regulates": "<obo:RO_0002212>",
	"positively_regulates": "<obo:RO_0002213>",
}

var relationNames = func() map[string]string {
	m := make(map[string]string, len(relations))
	for name, pred := range relations {
		m[pred] = name
	}
	return m
}()

const localRelation = "obo:go#"

// Relation returns the predicate term value for the named OBO relationship.
func Relation(name string) string {
	pred, ok := relations[name]
	if ok {
		return pred
	}
	return "<" + localRelation + name + ">"
}

// RelationName returns the OBO relationship name for the predicate term
// value pred. It returns false if pred is not a relationship predicate.
func RelationName(pred string) (name string, ok bool) {
	name, ok = relationNames[pred]
	if ok {
		return name, true
	}
	if strings.HasPrefix(pred, "<"+localRelation) && strings.HasSuffix(pred, ">") {
		return strip(pred, "<"+localRelation, ">"), true
	}
	return "", false
}

// IRI returns the local RDF term value for the OBO identifier id,
// GO:0008150 becoming <obo:GO_0008150>.
func IRI(id string) string {
	return "<obo:" + strings.Replace(id, ":", "_", 1) + ">"
}

// ID returns the OBO identifier for the local RDF term value v. It is
// the inverse of IRI.
func ID(v string) string {
	return strings.Replace(strip(v, "<obo:", ">"), "_", ":", 1)
}

// Header holds the OBO document header tags used by clients.
type Header struct {
	FormatVersion    string
	DataVersion      string
	Ontology         string

	// DefaultNamespace is applied to term
	// stanzas without a namespace tag.
	DefaultNamespace string
}

const scannerBufferSize = 1 << 20

// Decoder is an OBO decoder. rdf.Statements returned by calls to the
// Unmarshal method have their Terms' UID fields set so that unique terms
// will have unique IDs and so can be used directly in a graph.Multi.
// IDs created by the decoder all exist within a single namespace and so
// Terms can be uniquely identified by their UID. Term UIDs are based
// from 1 to allow RDF-aware client graphs to assign ID if no ID has been
// assigned.
type Decoder struct {
	scanner *bufio.Scanner
	line    int
	header  Header

	// pending holds a stanza header
	// read while scanning the previous
	// stanza.
	pending string

	strings store
	ids     map[string]int64

	curr int
	buf  []*rdf.Statement
	seen map[[3]int64]bool
}

// NewDecoder returns a new Decoder that takes input from r. The OBO
// header is read before NewDecoder returns.
func NewDecoder(r io.Reader) (*Decoder, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, scannerBufferSize), scannerBufferSize)
	dec := &Decoder{
		scanner: sc,
		strings: make(store),
		ids:     make(map[string]int64),
		seen:    make(map[[3]int64]bool),
	}
	for dec.scanner.Scan() {
		dec.line++
		line := strings.TrimSpace(dec.scanner.Text())
		if line == "" || line[0] == '!' {
			continue
		}
		if line[0] == '[' {
			dec.pending = line
			break
		}
		key, val, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("obo: line %d: malformed header line %q", dec.line, line)
		}
		val = strings.TrimSpace(val)
		switch key {
		case "format-version":
			dec.header.FormatVersion = val
		case "data-version":
			dec.header.DataVersion = val
		case "ontology":
			dec.header.Ontology = val
		case "default-namespace":
			dec.header.DefaultNamespace = identifier(val)
		}
	}
	return dec, dec.scanner.Err()
}

// Header returns the OBO header read by NewDecoder.
func (dec *Decoder) Header() Header {
	return dec.header
}

// Unmarshal returns the next unique statement from the input stream.
func (dec *Decoder) Unmarshal() (*rdf.Statement, error) {
	for {
		for len(dec.buf[dec.curr:]) == 0 {
			err := dec.fillBuffer()
			if err != nil {
				return nil, err
			}
		}
		s := dec.buf[dec.curr]
		dec.buf[dec.curr] = nil
		dec.curr++
		if len(dec.buf[dec.curr:]) == 0 {
			dec.curr = 0
			dec.buf = dec.buf[:0]
		}
		s.Subject.Value = dec.strings.intern(s.Subject.Value)
		s.Predicate.Value = dec.strings.intern(s.Predicate.Value)
		s.Object.Value = dec.strings.intern(s.Object.Value)
		s.Subject.UID = dec.idFor(s.Subject.Value)
		s.Object.UID = dec.idFor(s.Object.Value)
		s.Predicate.UID = dec.idFor(s.Predicate.Value)
		triple := [3]int64{s.Subject.UID, s.Predicate.UID, s.Object.UID}
		if !dec.seen[triple] {
			dec.seen[triple] = true
			return s, nil
		}
	}
}

func (dec *Decoder) idFor(s string) int64 {
	id, ok := dec.ids[s]
	if ok {
		return id
	}
	id = int64(len(dec.ids)) + 1
	dec.ids[s] = id
	return id
}

// fillBuffer reads the next stanza from the input and appends the
// statements it describes to the buffer. Stanzas other than [Term]
// are consumed without adding statements.
func (dec *Decoder) fillBuffer() (err error) {
	defer func() {
		r := recover()
		switch r := r.(type) {
		case nil:
			return
		case error:
			err = fmt.Errorf("obo: line %d: %w", dec.line, r)
		default:
			panic(r)
		}
	}()

	kind := dec.pending
	dec.pending = ""
	for kind == "" {
		if !dec.scanner.Scan() {
			err = dec.scanner.Err()
			if err == nil {
				err = io.EOF
				dec.strings = nil
			}
			return err
		}
		dec.line++
		line := strings.TrimSpace(dec.scanner.Text())
		if strings.HasPrefix(line, "[") {
			kind = line
		}
	}

	var t term
	start := dec.line
	for dec.scanner.Scan() {
		dec.line++
		line := strings.TrimSpace(dec.scanner.Text())
		if line == "" {
			break
		}
		if line[0] == '[' {
			dec.pending = line
			break
		}
		if line[0] == '!' || kind != "[Term]" {
			continue
		}
		key, val, ok := strings.Cut(line, ":")
		if !ok {
			return fmt.Errorf("obo: line %d: malformed tag-value pair %q", dec.line, line)
		}
		err = t.set(key, strings.TrimSpace(val))
		if err != nil {
			return fmt.Errorf("obo: line %d: %w", dec.line, err)
		}
	}
	if err := dec.scanner.Err(); err != nil {
		return err
	}
	if kind != "[Term]" {
		return nil
	}
	if t.id == "" {
		return fmt.Errorf("obo: line %d: term stanza without id", start)
	}
	if t.namespace == "" {
		t.namespace = dec.header.DefaultNamespace
	}
	dec.buf = t.collect(dec.buf)
	return nil
}

// term holds the decoded tags of a [Term] stanza.
type term struct {
	id         string
	name       string
	namespace  string
	obsolete   bool
	isA        []string
	relations  [][2]string
	replacedBy []string
}

func (t *term) set(key, val string) error {
	switch key {
	case "id":
		t.id = identifier(val)
	case "name":
		t.name = val
	case "namespace":
		t.namespace = identifier(val)
	case "is_obsolete":
		t.obsolete = val == "true"
	case "is_a":
		t.isA = append(t.isA, identifier(val))
	case "relationship":
		f := strings.Fields(identifier(val))
		if len(f) < 2 {
			return fmt.Errorf("malformed relationship %q", val)
		}
		t.relations = append(t.relations, [2]string{f[0], f[1]})
	case "replaced_by":
		t.replacedBy = append(t.replacedBy, identifier(val))
	}
	return nil
}

func (t *term) collect(dst []*rdf.Statement) []*rdf.Statement {
	subj := mustTerm(rdf.NewIRITerm(local(t.id)))
	dst = append(dst, &rdf.Statement{Subject: subj, Predicate: rdf.Term{Value: Type}, Object: rdf.Term{Value: Class}})
	if t.name != "" {
		obj := mustTerm(rdf.NewLiteralTerm(t.name, ""))
		dst = append(dst, &rdf.Statement{Subject: subj, Predicate: rdf.Term{Value: Label}, Object: obj})
	}
	if t.namespace != "" {
		obj := mustTerm(rdf.NewLiteralTerm(t.namespace, ""))
		dst = append(dst, &rdf.Statement{Subject: subj, Predicate: rdf.Term{Value: Namespace}, Object: obj})
	}
	for _, p := range t.isA {
		obj := mustTerm(rdf.NewIRITerm(local(p)))
		dst = append(dst, &rdf.Statement{Subject: subj, Predicate: rdf.Term{Value: SubClassOf}, Object: obj})
	}
	for _, r := range t.relations {
		pred := Relation(r[0])
		if _, ok := relations[r[0]]; !ok {
			pred = mustTerm(rdf.NewIRITerm(localRelation + r[0])).Value
		}
		obj := mustTerm(rdf.NewIRITerm(local(r[1])))
		dst = append(dst, &rdf.Statement{Subject: subj, Predicate: rdf.Term{Value: pred}, Object: obj})
	}
	if t.obsolete {
		obj := mustTerm(rdf.NewLiteralTerm("true", "xsd:boolean"))
		dst = append(dst, &rdf.Statement{Subject: subj, Predicate: rdf.Term{Value: Deprecated}, Object: obj})
	}
	for _, r := range t.replacedBy {
		obj := mustTerm(rdf.NewIRITerm(local(r)))
		dst = append(dst, &rdf.Statement{Subject: subj, Predicate: rdf.Term{Value: ReplacedBy}, Object: obj})
	}
	return dst
}

// identifier returns val with any trailing comment and
// qualifier block removed.
//
//  GO:0000001 {source="x"} ! mitochondrion inheritance
func identifier(val string) string {
	val, _, _ = strings.Cut(val, " !")
	val, _, _ = strings.Cut(val, " {")
	return strings.TrimSpace(val)
}

func local(id string) string {
	return strip(IRI(id), "<", ">")
}

func strip(s, prefix, suffix string) string {
	return strings.TrimSuffix(strings.TrimPrefix(s, prefix), suffix)
}

// store is a string internment implementation.
type store map[string]string

// intern returns an interned version of the parameter.
func (is store) intern(s string) string {
	if s == "" {
		return ""
	}
	t, ok := is[s]
	if ok {
		return t
	}
	is[s] = s
	return s
}

func mustTerm(t rdf.Term, err error) rdf.Term {
	if err != nil {
		panic(err)
	}
	return t
}
