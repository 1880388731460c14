// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package emit

// OverpassQL, for readers coming from a general-purpose language:
//
// The only values are named sets of map objects (ways, nodes, areas,
// relations) and the scalars appearing inside filters. Statements populate
// sets: a locator like way["highway"](area.city) evaluates to a set, and
// (expr;) -> .name binds it. The default set is named _.
//
// Iteration exists solely as foreach.set->.slot(...), which runs its block
// once per element, binding each element as a singleton set. There is no
// conditional statement, no loop exit, and no boolean variable. The compiler
// therefore encodes control flow in set emptiness: relation(2186646) is an
// arbitrary existing relation used as a guaranteed non-empty singleton, a
// condition is applied with per-type (if: ...) filters, and a foreach over
// the result runs its block exactly zero or one times. Filtering any
// relation set for ways yields the empty set, which is how a live flag is
// extinguished.
//
// Everything this package emits reduces to those few forms.
