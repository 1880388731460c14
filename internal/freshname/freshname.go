// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package freshname generates compiler-reserved identifiers of the form
// <prefix><nonce>, where every prefix starts with "tmp". Uniqueness is only
// required within one compilation, so each compilation owns a Generator.
package freshname

import (
	"strconv"

	"github.com/google/uuid"
)

// Generator produces fresh identifiers.
type Generator struct {
	next func() uint32
}

// New returns a Generator backed by a monotonic counter starting at 1.
// Output is reproducible, which golden tests rely on.
func New() *Generator {
	var n uint32
	return &Generator{next: func() uint32 {
		n++
		return n
	}}
}

// NewRandom returns a Generator backed by random 32-bit nonces.
func NewRandom() *Generator {
	return &Generator{next: func() uint32 {
		return uuid.New().ID()
	}}
}

// Fresh returns prefix followed by the next nonce.
func (g *Generator) Fresh(prefix string) string {
	return prefix + strconv.FormatUint(uint64(g.next()), 10)
}
