// Copyright ©2026 The PFP-baselines Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ontology

import "gonum.org/v1/gonum/graph/traverse"

// Closure is a memoising ancestor lookup for a single subgraph. The
// cache is populated lazily and grows at most to the size of the
// subgraph's term vocabulary plus the number of distinct unknown terms
// queried. A Closure is not safe for concurrent use; use one Closure
// per goroutine.
type Closure struct {
	sub *Subgraph
	df  traverse.DepthFirst

	cache map[string]closed
}

type closed struct {
	ancestors []string
	ok        bool
}

// NewClosure returns a new Closure for the subgraph.
func NewClosure(sub *Subgraph) *Closure {
	return &Closure{sub: sub, cache: make(map[string]closed)}
}

// Subgraph returns the subgraph the closure is computed over.
func (c *Closure) Subgraph() *Subgraph { return c.sub }

// Ancestors returns the structural ancestors of the term as described
// by Subgraph.Ancestors. The returned slice is shared between calls and
// must not be modified.
func (c *Closure) Ancestors(id string) ([]string, bool) {
	e, ok := c.cache[id]
	if ok {
		return e.ancestors, e.ok
	}
	e.ancestors, e.ok = c.sub.ancestors(&c.df, id)
	c.cache[id] = e
	return e.ancestors, e.ok
}
