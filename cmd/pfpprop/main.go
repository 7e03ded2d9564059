// Copyright ©2026 The PFP-baselines Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// pfpprop propagates protein GO term annotations to every ancestor of the
// annotated terms within each ontology aspect and writes the propagated
// annotations to a tsv table. Annotations whose terms are not found in the
// ontology, or not in the aspect they are labelled with, are logged to
// stderr and omitted from the output.
//
// The ontology is required to be in OBO format, optionally gzip compressed.
// The file can be obtained from http://purl.obolibrary.org/obo/go/go-basic.obo.
//
// The annotation table is a tab-delimited file with a header row holding
// the columns EntryID, term and aspect. The term column may hold a single
// GO term or a semicolon separated list of terms. Aspects are given as
// BPO, CCO or MFO.
//
// The command must be built with the safe build tag, for example
// go build -tags safe ./cmd/pfpprop, since the graph iterators of the gonum
// version in use depend on map internals of earlier Go runtimes.
//
// Flag defaults may be set in the environment or in a .env file in the
// working directory using the flag name in upper case with a PFP_ prefix,
// for example PFP_ONTOLOGY=go-basic.obo.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/atoffano/PFP-baselines/internal/annotation"
	"github.com/atoffano/PFP-baselines/internal/config"
	"github.com/atoffano/PFP-baselines/internal/ontology"
	"github.com/atoffano/PFP-baselines/internal/report"
)

func main() {
	err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	var (
		ontopath = flag.String("ontology", config.String("ontology", ""), "specify the GO file (.obo/.obo.gz - required)")
		in       = flag.String("annot", config.String("annot", ""), "specify the annotation table (.tsv/.tsv.gz - required)")
		out      = flag.String("out", config.String("out", ""), "specify the propagated annotation output (.tsv/.tsv.gz - required)")
		aspect   = flag.String("aspect", config.String("aspect", ""), "only propagate annotations in this aspect (BPO, CCO or MFO)")
		policy   = flag.String("obsolete", config.String("obsolete", "keep"), "obsolete term policy (keep, remap or strict)")
		clean    = flag.Bool("clean", config.Bool("clean", true), "only use is_a and part_of relations within an aspect")
		dotID    = flag.String("dot", config.String("dot", ""), "write the propagation DAG of this protein in DOT format")
		summary  = flag.String("summary", config.String("summary", ""), "specify the summary output file (.json)")
		help     = flag.Bool("help", false, "print help text")
	)
	flag.Parse()

	if *help {
		flag.Usage()
		fmt.Fprintf(os.Stderr, `
%s propagates protein GO term annotations to every ancestor of the
annotated terms within each ontology aspect and writes the propagated
annotations to a tsv table. Annotations whose terms are not found in the
ontology, or not in the aspect they are labelled with, are logged to
stderr and omitted from the output.

The ontology is required to be in OBO format, optionally gzip compressed.
The file can be obtained from http://purl.obolibrary.org/obo/go/go-basic.obo.

The annotation table is a tab-delimited file with a header row holding
the columns EntryID, term and aspect. The term column may hold a single
GO term or a semicolon separated list of terms. Aspects are given as
BPO, CCO or MFO.

Output files with a .gz suffix are gzip compressed.

%[1]s must be built with the safe build tag, go build -tags safe.

Flag defaults may be set in the environment or in a .env file in the
working directory using the flag name in upper case with a PFP_ prefix,
for example PFP_ONTOLOGY=go-basic.obo.

Copyright ©2026 The PFP-baselines Authors. All rights reserved.

`, filepath.Base(os.Args[0]))
		os.Exit(0)
	}

	if *ontopath == "" || *in == "" || *out == "" {
		flag.Usage()
		os.Exit(2)
	}
	p, err := annotation.ParsePolicy(*policy)
	if err != nil {
		log.Fatal(err)
	}
	var only ontology.Aspect
	if *aspect != "" {
		only, err = ontology.ParseAspect(*aspect)
		if err != nil {
			log.Fatal(err)
		}
	}

	log.Println(os.Args)
	sum := report.New(filepath.Base(os.Args[0]))

	log.Println("[loading ontology]")
	g, err := loadOntology(*ontopath)
	if err != nil {
		log.Fatalf("failed to load ontology: %v", err)
	}
	sum.OntologyVersion = g.Header().DataVersion
	if *clean {
		var crossed int
		g, crossed = ontology.Clean(g)
		sum.CrossNamespace = crossed
		if crossed != 0 {
			log.Printf("removed %d cross-aspect relations", crossed)
		}
	}
	subgraphs, err := ontology.Partition(g)
	if err != nil {
		log.Fatalf("failed to partition ontology: %v", err)
	}
	if only != "" {
		subgraphs = map[ontology.Aspect]*ontology.Subgraph{only: subgraphs[only]}
	}

	log.Println("[loading annotations]")
	entries, err := readAnnotations(*in)
	if err != nil {
		log.Fatalf("failed to load annotations: %v", err)
	}
	entries, unknown, err := selectEntries(entries, g, only)
	if err != nil {
		log.Fatalf("failed to select annotations: %v", err)
	}
	for _, e := range unknown {
		log.Printf("unknown term: %s", e)
	}
	sum.Unknown = report.Distinct(termsOf(unknown))
	obsolete := annotation.CountObsolete(entries, g)
	for _, a := range ontology.Aspects() {
		if obsolete[a] != 0 {
			log.Printf("found %d annotations to obsolete terms in %s", obsolete[a], a)
		}
	}
	entries, n := annotation.ApplyPolicy(entries, g, p)
	if n != 0 {
		log.Printf("applied %s obsolete term policy to %d annotations", p, n)
	}

	log.Println("[propagating annotations]")
	propagated, unmapped := annotation.Propagate(entries, subgraphs)
	for _, e := range unmapped {
		log.Printf("term not in aspect: %s", e)
	}

	log.Println("[writing propagated annotations]")
	err = writeAnnotations(*out, propagated)
	if err != nil {
		log.Fatalf("failed to write annotations: %v", err)
	}

	if *dotID != "" {
		log.Println("[writing propagation graph]")
		err = writeDOT(*dotID, entries, subgraphs)
		if err != nil {
			log.Fatalf("failed to write propagation graph: %v", err)
		}
	}

	if *summary != "" {
		byAspect := annotation.ByAspect(propagated)
		missed := annotation.ByAspect(unmapped)
		for _, a := range ontology.Aspects() {
			sub, ok := subgraphs[a]
			if !ok {
				continue
			}
			sum.Aspects = append(sum.Aspects, &report.Aspect{
				Aspect:      string(a),
				Proteins:    len(annotation.Proteins(byAspect[a])),
				Annotations: len(byAspect[a]),
				Terms:       sub.Len(),
				Unmapped:    report.Distinct(termsOf(missed[a])),
				Obsolete:    obsolete[a],
			})
		}
		err = writeSummary(*summary, sum)
		if err != nil {
			log.Fatalf("failed to write summary: %v", err)
		}
	}
}
