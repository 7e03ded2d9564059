// Copyright ©2026 The PFP-baselines Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// pfpia calculates the information accretion of every GO term from a
// protein annotation table and writes the values to a headerless tsv
// table of term, information accretion in bits and aspect.
//
// The information accretion of a term is the negative base 2 logarithm
// of the fraction of proteins annotated with all of the term's parents
// that are also annotated with the term. Terms with negative information
// accretion indicate that the annotations were propagated with a
// different ontology release; they are logged to stderr.
//
// The ontology is required to be in OBO format, optionally gzip compressed.
// The annotation table is a tab-delimited file with a header row holding
// the columns EntryID, term and aspect. Unless the -prop flag is set the
// annotations are expected to have been propagated already.
//
// The command must be built with the safe build tag, for example
// go build -tags safe ./cmd/pfpia, since the graph iterators of the gonum
// version in use depend on map internals of earlier Go runtimes.
//
// Flag defaults may be set in the environment or in a .env file in the
// working directory using the flag name in upper case with a PFP_ prefix,
// for example PFP_WORKERS=8.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/atoffano/PFP-baselines/internal/annotation"
	"github.com/atoffano/PFP-baselines/internal/config"
	"github.com/atoffano/PFP-baselines/internal/ia"
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
		out      = flag.String("out", config.String("out", ""), "specify the information accretion output (.tsv/.tsv.gz - required)")
		exclude  = flag.String("exclude", config.String("exclude", ""), "specify a table of protein IDs to exclude from the counts")
		prop     = flag.Bool("prop", config.Bool("prop", false), "propagate annotations before counting")
		aspect   = flag.String("aspect", config.String("aspect", ""), "only calculate values for this aspect (BPO, CCO or MFO)")
		policy   = flag.String("obsolete", config.String("obsolete", "keep"), "obsolete term policy (keep, remap or strict)")
		workers  = flag.Int("workers", config.Int("workers", 0), "number of concurrent workers (0 uses all CPUs)")
		plots    = flag.String("plots", config.String("plots", ""), "specify a directory for information accretion histograms")
		bins     = flag.Int("bins", config.Int("bins", 50), "number of histogram bins")
		summary  = flag.String("summary", config.String("summary", ""), "specify the summary output file (.json)")
		help     = flag.Bool("help", false, "print help text")
	)
	flag.Parse()

	if *help {
		flag.Usage()
		fmt.Fprintf(os.Stderr, `
%s calculates the information accretion of every GO term from a
protein annotation table and writes the values to a headerless tsv
table of term, information accretion in bits and aspect.

The information accretion of a term is the negative base 2 logarithm
of the fraction of proteins annotated with all of the term's parents
that are also annotated with the term. Terms with negative information
accretion indicate that the annotations were propagated with a
different ontology release; they are logged to stderr.

The ontology is required to be in OBO format, optionally gzip compressed.
The annotation table is a tab-delimited file with a header row holding
the columns EntryID, term and aspect. Unless the -prop flag is set the
annotations are expected to have been propagated already.

The exclude table holds protein IDs in its first column or in a column
labelled EntryID. Proteins in the table are not counted, so that
evaluation proteins do not contribute to the values.

%[1]s must be built with the safe build tag, go build -tags safe.

Flag defaults may be set in the environment or in a .env file in the
working directory using the flag name in upper case with a PFP_ prefix,
for example PFP_WORKERS=8.

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
	aspects := ontology.Aspects()
	if *aspect != "" {
		a, err := ontology.ParseAspect(*aspect)
		if err != nil {
			log.Fatal(err)
		}
		aspects = []ontology.Aspect{a}
	}

	log.Println(os.Args)
	sum := report.New(filepath.Base(os.Args[0]))
	if *plots != "" {
		err = os.MkdirAll(*plots, 0o755)
		if err != nil {
			log.Fatal(err)
		}
	}

	log.Println("[loading ontology]")
	g, err := loadOntology(*ontopath)
	if err != nil {
		log.Fatalf("failed to load ontology: %v", err)
	}
	sum.OntologyVersion = g.Header().DataVersion
	g, crossed := ontology.Clean(g)
	sum.CrossNamespace = crossed
	if crossed != 0 {
		log.Printf("removed %d cross-aspect relations", crossed)
	}
	subgraphs, err := ontology.Partition(g)
	if err != nil {
		log.Fatalf("failed to partition ontology: %v", err)
	}

	log.Println("[loading annotations]")
	entries, err := readAnnotations(*in)
	if err != nil {
		log.Fatalf("failed to load annotations: %v", err)
	}
	if *exclude != "" {
		ids, err := readIDs(*exclude)
		if err != nil {
			log.Fatalf("failed to load excluded proteins: %v", err)
		}
		n := len(entries)
		entries = annotation.Exclude(entries, set(ids))
		log.Printf("excluded %d annotations of %d proteins", n-len(entries), len(ids))
	}
	entries, unknown := annotation.Resolve(entries, g)
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

	var unmapped []annotation.Entry
	if *prop {
		log.Println("[propagating annotations]")
		entries, unmapped = annotation.Propagate(entries, subgraphs)
	} else {
		entries, unmapped = inSubgraphs(annotation.Dedup(entries), subgraphs)
	}
	for _, e := range unmapped {
		log.Printf("term not in aspect: %s", e)
	}
	byAspect := annotation.ByAspect(entries)
	missed := annotation.ByAspect(unmapped)

	var values []ia.Value
	for _, a := range aspects {
		log.Printf("[calculating %s information accretion]", a)
		sub := subgraphs[a]
		m, err := ia.Build(byAspect[a], sub.Terms())
		if err != nil {
			log.Fatalf("failed to build %s count matrix: %v", a, err)
		}
		r, err := ia.Compute(m, sub, *workers)
		if err != nil {
			log.Fatalf("failed to calculate %s information accretion: %v", a, err)
		}
		warn := r.Warning()
		if warn != nil {
			log.Println(warn)
		}
		values = append(values, r.Values...)

		x := make([]float64, len(r.Values))
		for i, v := range r.Values {
			x[i] = v.IA
		}
		dist, err := report.Describe(x)
		if err != nil {
			log.Fatal(err)
		}
		s := &report.Aspect{
			Aspect:      string(a),
			Proteins:    len(m.Proteins()),
			Annotations: len(byAspect[a]),
			Terms:       sub.Len(),
			Unmapped:    report.Distinct(termsOf(missed[a])),
			Obsolete:    obsolete[a],
			IA:          dist,
		}
		if warn != nil {
			for _, v := range warn.Terms {
				s.NegativeIA = append(s.NegativeIA, v.Term)
			}
		}
		sum.Aspects = append(sum.Aspects, s)

		if *plots != "" {
			err = report.PlotHistogram(
				filepath.Join(*plots, fmt.Sprintf("ia_%s.png", a)),
				fmt.Sprintf("%s information accretion", a.Label()), "IA (bits)",
				positive(x), *bins, true,
			)
			if err != nil {
				log.Printf("failed to plot %s histogram: %v", a, err)
			}
		}
	}

	log.Println("[writing information accretion]")
	err = writeTable(*out, values)
	if err != nil {
		log.Fatalf("failed to write information accretion: %v", err)
	}

	if *summary != "" {
		err = writeSummary(*summary, sum)
		if err != nil {
			log.Fatalf("failed to write summary: %v", err)
		}
	}
}
