// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package syncset implements a string set that can be safely accessed
// concurrently. The compile command uses it to process each input file once
// even when targets overlap.
package syncset

import "sync"

// New returns a new, empty set.
func New() *Set {
	return &Set{set: make(map[string]struct{})}
}

// Set is a set of strings.
type Set struct {
	mu  sync.Mutex
	set map[string]struct{}
}

// Add adds v to the set and reports whether it was absent before.
func (s *Set) Add(v string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.set[v]; ok {
		return false
	}
	s.set[v] = struct{}{}
	return true
}

// Len returns the number of elements added so far.
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.set)
}
