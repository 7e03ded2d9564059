// Copyright ©2026 The PFP-baselines Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ontology

import (
	"fmt"
	"strings"
)

// Aspect is one of the three disjoint Gene Ontology sub-ontologies.
type Aspect string

const (
	BPO Aspect = "BPO"
	CCO Aspect = "CCO"
	MFO Aspect = "MFO"
)

// Aspects returns the ontology aspects in canonical order.
func Aspects() []Aspect {
	return []Aspect{BPO, CCO, MFO}
}

type aspectInfo struct {
	namespace string
	root      string
	label     string
}

var aspectTable = map[Aspect]aspectInfo{
	BPO: {namespace: "biological_process", root: "GO:0008150", label: "Biological Process"},
	CCO: {namespace: "cellular_component", root: "GO:0005575", label: "Cellular Component"},
	MFO: {namespace: "molecular_function", root: "GO:0003674", label: "Molecular Function"},
}

// Namespace returns the OBO namespace of the aspect.
func (a Aspect) Namespace() string { return aspectTable[a].namespace }

// Root returns the root term of the aspect.
func (a Aspect) Root() string { return aspectTable[a].root }

// Label returns a human readable name of the aspect.
func (a Aspect) Label() string { return aspectTable[a].label }

// AspectOf returns the aspect for an OBO namespace.
func AspectOf(namespace string) (Aspect, bool) {
	for a, info := range aspectTable {
		if info.namespace == namespace {
			return a, true
		}
	}
	return "", false
}

// ParseAspect returns the aspect named by s. Aspect codes, short GAF
// codes and namespaces are accepted case-insensitively.
func ParseAspect(s string) (Aspect, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bpo", "bp", "p", "biological_process":
		return BPO, nil
	case "cco", "cc", "c", "cellular_component":
		return CCO, nil
	case "mfo", "mf", "f", "molecular_function":
		return MFO, nil
	}
	return "", fmt.Errorf("ontology: unknown aspect %q", s)
}
