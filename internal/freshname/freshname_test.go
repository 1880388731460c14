// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package freshname

import (
	"strings"
	"testing"
)

func TestFreshIsDeterministic(t *testing.T) {
	g := New()
	want := []string{"tmpif1", "tmpfor2", "tmpif3"}
	got := []string{g.Fresh("tmpif"), g.Fresh("tmpfor"), g.Fresh("tmpif")}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Fresh() #%d = %s, want %s", i+1, got[i], want[i])
		}
	}
}

func TestGeneratorsAreIndependent(t *testing.T) {
	a, b := New(), New()
	if got, want := a.Fresh("tmpif"), b.Fresh("tmpif"); got != want {
		t.Errorf("fresh generators diverged: %s vs %s", got, want)
	}
}

func TestRandomKeepsPrefix(t *testing.T) {
	g := NewRandom()
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		name := g.Fresh("tmpbreak")
		if !strings.HasPrefix(name, "tmpbreak") {
			t.Fatalf("Fresh() = %s, want tmpbreak prefix", name)
		}
		seen[name] = true
	}
	if len(seen) < 95 {
		t.Errorf("100 random names produced only %d distinct values", len(seen))
	}
}
