// Copyright ©2026 The PFP-baselines Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// pfpbaselines predicts GO terms for a set of query proteins by transferring
// the annotations of reference proteins across sequence alignment hits.
// Four baseline methods are written to the output directory:
//
//  predictions/IDScore/predictions.tsv         terms of the hit with the greatest identity
//  predictions/AlignmentScore/predictions.tsv  bit score weighted vote over all hits
//  predictions/BlastKNN/k<k>/predictions.tsv   bit score weighted vote over the k best hits
//  predictions/NaiveBaseline/predictions.tsv   reference term frequencies (-naive only)
//
// Query proteins without usable alignment hits are listed in unaligned.txt.
//
// The reference annotation table is a tab-delimited file with a header row
// holding the columns EntryID, term and optionally aspect. The query table
// holds protein IDs in its first column or in a column labelled EntryID.
// Alignments are expected in the 12 column BLAST tabular format written by
// DIAMOND with --outfmt 6.
//
// Unless -one-vs-all is set, query proteins are removed from the reference
// annotations and from alignment subjects, and any remaining hit between
// two query proteins is reported as annotation leakage.
//
// The command must be built with the safe build tag, for example
// go build -tags safe ./cmd/pfpbaselines, since the graph iterators of the gonum
// version in use depend on map internals of earlier Go runtimes.
//
// Flag defaults may be set in the environment or in a .env file in the
// working directory using the flag name in upper case with a PFP_ prefix,
// for example PFP_K=1,3,5.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/atoffano/PFP-baselines/internal/annotation"
	"github.com/atoffano/PFP-baselines/internal/config"
	"github.com/atoffano/PFP-baselines/internal/ontology"
	"github.com/atoffano/PFP-baselines/internal/report"
	"github.com/atoffano/PFP-baselines/internal/transfer"
)

func main() {
	err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	var (
		trainpath = flag.String("train", config.String("train", ""), "specify the reference annotation table (.tsv/.tsv.gz - required)")
		testpath  = flag.String("test", config.String("test", ""), "specify the query protein table (.tsv/.tsv.gz - required)")
		alignpath = flag.String("align", config.String("align", ""), "specify the alignment hits (.tsv/.tsv.gz - required)")
		out       = flag.String("out", config.String("out", ""), "specify the output directory (required)")
		ontopath  = flag.String("ontology", config.String("ontology", ""), "specify the GO file used to propagate reference annotations (.obo/.obo.gz)")
		aspect    = flag.String("aspect", config.String("aspect", ""), "only use reference annotations in this aspect (BPO, CCO or MFO)")
		kvals     = flag.String("k", config.Ints("k", "1,3,5"), "comma separated neighbourhood sizes for k-nearest neighbour transfer")
		oneVsAll  = flag.Bool("one-vs-all", config.Bool("one-vs-all", false), "allow query proteins to be reference proteins")
		evalue    = flag.Float64("evalue", config.Float("evalue", 1e-3), "maximum alignment e-value (0 retains all hits)")
		naive     = flag.Bool("naive", config.Bool("naive", false), "write naive baseline predictions")
		summary   = flag.String("summary", config.String("summary", ""), "specify the summary output file (.json)")
		xlsx      = flag.String("xlsx", config.String("xlsx", ""), "specify the summary workbook output file (.xlsx)")
		help      = flag.Bool("help", false, "print help text")
	)
	flag.Parse()

	if *help {
		flag.Usage()
		fmt.Fprintf(os.Stderr, `
%s predicts GO terms for a set of query proteins by transferring
the annotations of reference proteins across sequence alignment hits.
Four baseline methods are written to the output directory:

 predictions/IDScore/predictions.tsv         terms of the hit with the greatest identity
 predictions/AlignmentScore/predictions.tsv  bit score weighted vote over all hits
 predictions/BlastKNN/k<k>/predictions.tsv   bit score weighted vote over the k best hits
 predictions/NaiveBaseline/predictions.tsv   reference term frequencies (-naive only)

Query proteins without usable alignment hits are listed in unaligned.txt.

The reference annotation table is a tab-delimited file with a header row
holding the columns EntryID, term and optionally aspect. The query table
holds protein IDs in its first column or in a column labelled EntryID.
Alignments are expected in the 12 column BLAST tabular format written by
DIAMOND with --outfmt 6.

Unless -one-vs-all is set, query proteins are removed from the reference
annotations and from alignment subjects, and any remaining hit between
two query proteins is reported as annotation leakage.

If an ontology is provided, reference annotations are propagated to all
ancestor terms before transfer.

%[1]s must be built with the safe build tag, go build -tags safe.

Flag defaults may be set in the environment or in a .env file in the
working directory using the flag name in upper case with a PFP_ prefix,
for example PFP_K=1,3,5.

Copyright ©2026 The PFP-baselines Authors. All rights reserved.

`, filepath.Base(os.Args[0]))
		os.Exit(0)
	}

	if *trainpath == "" || *testpath == "" || *alignpath == "" || *out == "" {
		flag.Usage()
		os.Exit(2)
	}
	k, err := config.ParseInts(*kvals)
	if err != nil {
		log.Fatalf("invalid neighbourhood sizes: %v", err)
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

	log.Println("[loading data]")
	var (
		train   []annotation.Entry
		queries []string
		hits    []transfer.Hit
		g       *ontology.Graph
	)
	var grp errgroup.Group
	grp.Go(func() (err error) {
		train, err = readAnnotations(*trainpath)
		if err != nil {
			return fmt.Errorf("failed to load reference annotations: %w", err)
		}
		return nil
	})
	grp.Go(func() (err error) {
		queries, err = readIDs(*testpath)
		if err != nil {
			return fmt.Errorf("failed to load query proteins: %w", err)
		}
		return nil
	})
	grp.Go(func() (err error) {
		hits, err = readHits(*alignpath)
		if err != nil {
			return fmt.Errorf("failed to load alignments: %w", err)
		}
		return nil
	})
	if *ontopath != "" {
		grp.Go(func() (err error) {
			g, err = loadOntology(*ontopath)
			if err != nil {
				return fmt.Errorf("failed to load ontology: %w", err)
			}
			return nil
		})
	}
	err = grp.Wait()
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("loaded %d reference annotations, %d query proteins and %d alignments", len(train), len(queries), len(hits))

	querySet := set(queries)
	if !*oneVsAll {
		n := len(train)
		train = annotation.Exclude(train, querySet)
		if n != len(train) {
			log.Printf("removed %d reference annotations of query proteins", n-len(train))
		}
	}

	if g != nil {
		log.Println("[propagating reference annotations]")
		sum.OntologyVersion = g.Header().DataVersion
		var crossed int
		g, crossed = ontology.Clean(g)
		sum.CrossNamespace = crossed
		if crossed != 0 {
			log.Printf("removed %d cross-aspect relations", crossed)
		}
		subgraphs, err := ontology.Partition(g)
		if err != nil {
			log.Fatalf("failed to partition ontology: %v", err)
		}
		var unknown []annotation.Entry
		train, unknown = annotation.Resolve(train, g)
		for _, e := range unknown {
			log.Printf("unknown term: %s", e)
		}
		sum.Unknown = report.Distinct(termsOf(unknown))
		obsolete := annotation.CountObsolete(train, g)
		for _, a := range ontology.Aspects() {
			if obsolete[a] != 0 {
				log.Printf("found %d annotations to obsolete terms in %s", obsolete[a], a)
			}
		}
		var unmapped []annotation.Entry
		train, unmapped = annotation.Propagate(train, subgraphs)
		for _, e := range unmapped {
			log.Printf("term not in aspect: %s", e)
		}
		byAspect := annotation.ByAspect(train)
		missed := annotation.ByAspect(unmapped)
		for _, a := range ontology.Aspects() {
			sum.Aspects = append(sum.Aspects, &report.Aspect{
				Aspect:      string(a),
				Proteins:    len(annotation.Proteins(byAspect[a])),
				Annotations: len(byAspect[a]),
				Terms:       subgraphs[a].Len(),
				Unmapped:    report.Distinct(termsOf(missed[a])),
				Obsolete:    obsolete[a],
			})
		}
	}
	train, err = restrict(train, only)
	if err != nil {
		log.Fatalf("failed to select reference annotations: %v", err)
	}
	ref := transfer.NewReference(train)

	log.Println("[filtering alignments]")
	hits, removed := transfer.FilterHits(hits, transfer.FilterOptions{
		MaxEValue:         *evalue,
		Queries:           querySet,
		Reference:         ref.Proteins(),
		DropQuerySubjects: !*oneVsAll,
	})
	log.Printf("removed %d alignments, %d remaining", removed, len(hits))

	log.Println("[transferring annotations]")
	res, err := transfer.Transfer(hits, ref, queries, transfer.Options{
		K:            k,
		LeakageGuard: !*oneVsAll,
	})
	if err != nil {
		var leak *transfer.LeakageError
		if errors.As(err, &leak) {
			log.Printf("leakage for %s: hits to %v", leak.Query, leak.Subjects)
		}
		log.Fatalf("failed to transfer annotations: %v", err)
	}
	log.Printf("found %d unaligned query proteins", len(res.Unaligned))
	for _, id := range res.Degenerate {
		log.Printf("unaligned %s: zero total bit score", id)
	}
	sum.Unaligned = res.Unaligned

	log.Println("[writing predictions]")
	outputs := []output{
		{name: "IDScore", preds: res.BestHit},
		{name: "AlignmentScore", preds: res.Aggregate, degenerate: res.Degenerate},
	}
	for _, n := range k {
		outputs = append(outputs, output{
			name:       "BlastKNN",
			k:          n,
			preds:      res.KNN[n],
			degenerate: res.Degenerate,
		})
	}
	if *naive {
		outputs = append(outputs, output{name: "NaiveBaseline", preds: transfer.Naive(ref, queries)})
	}
	for _, o := range outputs {
		if len(o.preds) == 0 {
			log.Printf("no %s predictions were made", o.label())
		}
		err = writePredictions(filepath.Join(*out, o.path()), o.preds)
		if err != nil {
			log.Fatalf("failed to write %s predictions: %v", o.label(), err)
		}
		m, err := o.summary()
		if err != nil {
			log.Fatal(err)
		}
		sum.Methods = append(sum.Methods, m)
	}
	err = writeIDs(filepath.Join(*out, "unaligned.txt"), res.Unaligned)
	if err != nil {
		log.Fatalf("failed to write unaligned proteins: %v", err)
	}

	if *summary != "" {
		err = writeSummary(*summary, sum)
		if err != nil {
			log.Fatalf("failed to write summary: %v", err)
		}
	}
	if *xlsx != "" {
		err = writeWorkbook(*xlsx, sum, unalignedTable(res.Unaligned))
		if err != nil {
			log.Fatalf("failed to write summary workbook: %v", err)
		}
	}
}
