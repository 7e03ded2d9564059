// Copyright ©2026 The PFP-baselines Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package obo implements decoding the OBO flat file encoding of a Gene
// Ontology dataset into RDF statements. It is not a complete OBO 1.4
// parser implementation; only [Term] stanzas and the tags needed to
// reconstruct the term graph and its namespaces are decoded.
package obo
