// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transform

import (
	"github.com/LivInTheLookingGlass/overpassify/ast"
)

// OverpassQL has no loop-exit primitive. Break and continue are lowered to a
// flag set that is non-empty while the loop is live: every statement of the
// loop body is gated behind a for-each over the flag, and break/continue
// extinguish the flag by filtering a relation set for ways, which always
// yields the empty set.

// lowerBreak rewrites a loop containing break. The flag is initialized once,
// before the loop, so an extinguished flag stays extinguished for the
// remaining iterations.
func (p *Pass) lowerBreak(s *ast.For) []ast.Stmt {
	flag := p.names.Fresh("tmpbreak")
	loop := &ast.For{
		Target: s.Target,
		Iter:   s.Iter,
		Body:   p.gateStmts(s.Body, flag, isBreak),
	}
	out := []ast.Stmt{flagInit(flag)}
	if len(s.Else) == 0 {
		return append(out, loop)
	}
	// The else clause runs only when the loop was not broken out of. A
	// second flag carries that fact across the two dependent gate loops.
	// Whether Overpass preserves these semantics is an open question; see
	// DESIGN.md.
	elseFlag := flag + "else"
	return append(out,
		flagInit(elseFlag),
		loop,
		&ast.For{
			Target: ast.NewName("tmp_"),
			Iter:   ast.NewName(flag),
			Body:   []ast.Stmt{extinguish(elseFlag)},
		},
		&ast.For{
			Target: ast.NewName("tmp_"),
			Iter:   ast.NewName(elseFlag),
			Body:   s.Else,
		},
	)
}

// lowerContinue rewrites a loop containing continue. Unlike break, the flag
// is re-initialized at the top of every iteration.
func (p *Pass) lowerContinue(s *ast.For) []ast.Stmt {
	flag := p.names.Fresh("tmpcontinue")
	body := append([]ast.Stmt{flagInit(flag)}, p.gateStmts(s.Body, flag, isContinue)...)
	return []ast.Stmt{&ast.For{Target: s.Target, Iter: s.Iter, Body: body, Else: s.Else}}
}

// gateStmts wraps each statement in a for-each over the flag so that it runs
// only while the flag is live. A matching exit statement becomes the flag
// extinguisher; if statements are rewritten recursively, both branches, with
// the same flag.
func (p *Pass) gateStmts(body []ast.Stmt, flag string, exit func(ast.Stmt) bool) []ast.Stmt {
	var out []ast.Stmt
	for _, s := range body {
		switch {
		case exit(s):
			s = extinguish(flag)
		default:
			if ifStmt, ok := s.(*ast.If); ok {
				s = &ast.If{
					Cond: ifStmt.Cond,
					Body: p.gateStmts(ifStmt.Body, flag, exit),
					Else: p.gateStmts(ifStmt.Else, flag, exit),
				}
			}
		}
		out = append(out, &ast.For{
			Target: ast.NewName("tmp_"),
			Iter:   ast.NewName(flag),
			Body:   []ast.Stmt{s},
		})
	}
	return out
}

func isBreak(s ast.Stmt) bool {
	_, ok := s.(*ast.Break)
	return ok
}

func isContinue(s ast.Stmt) bool {
	_, ok := s.(*ast.Continue)
	return ok
}

// flagInit materializes the dummy relation as a non-empty flag set.
func flagInit(flag string) ast.Stmt {
	return &ast.Assign{Target: ast.NewName(flag), Value: relationCall()}
}

// extinguish empties the flag: filtering a relation set for ways yields the
// empty set.
func extinguish(flag string) ast.Stmt {
	return &ast.Assign{
		Target: ast.NewName(flag),
		Value: &ast.Call{
			Fun:  &ast.Attribute{X: ast.NewName("Way"), Attr: "filter"},
			Args: []ast.Expr{ast.NewName(flag)},
		},
	}
}
