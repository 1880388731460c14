// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package transform desugars the query AST into the shape the emitter
// supports: simple assignments, for-each over a named set, and calls whose
// first positional argument is a name or a number.
//
// The pass applies single-step rewrites to the topmost statement of each list
// and repeats until nothing changes. Every rewrite strictly reduces the
// number of if statements, break/continue statements, non-name loop
// iterators, or complex call arguments, so the fixed point is reached in a
// linear number of iterations.
package transform

import (
	log "github.com/golang/glog"
	"github.com/kylelemons/godebug/diff"

	"github.com/LivInTheLookingGlass/overpassify/ast"
	"github.com/LivInTheLookingGlass/overpassify/internal/freshname"
)

// The dummy relation is an arbitrary existing OSM relation, used purely as a
// non-empty singleton set for conditional-execution scaffolding.
const dummyRelation = "2186646"

// Pass is one desugaring run. Fresh names are unique per Pass.
type Pass struct {
	names *freshname.Generator
}

// New returns a Pass with a deterministic fresh-name generator.
func New() *Pass {
	return &Pass{names: freshname.New()}
}

// NewWithNames returns a Pass drawing fresh names from g.
func NewWithNames(g *freshname.Generator) *Pass {
	return &Pass{names: g}
}

// Desugar rewrites body with a fresh Pass. See Pass.Desugar.
func Desugar(body []ast.Stmt) []ast.Stmt {
	return New().Desugar(body)
}

// Desugar repeatedly rewrites body until a fixed point is reached and
// returns the resulting statement list. The result contains no If, Break or
// Continue statements, and every For iterates over a plain name.
func (p *Pass) Desugar(body []ast.Stmt) []ast.Stmt {
	for round := 1; ; round++ {
		out, changed := p.step(body)
		if !changed {
			log.V(1).Infof("desugar: fixed point after %d rounds", round)
			return out
		}
		if log.V(2) {
			log.Infof("desugar round %d changed:\n%s", round, diff.Diff(ast.Dump(body), ast.Dump(out)))
		}
		body = out
	}
}

// step applies one rewrite round to the topmost statement of each list.
func (p *Pass) step(body []ast.Stmt) ([]ast.Stmt, bool) {
	var out []ast.Stmt
	changed := false
	for _, s := range body {
		if p.stmt(s, &out) {
			changed = true
		}
	}
	return out, changed
}

// stmt appends the (possibly rewritten) form of s to out and reports whether
// a rewrite fired.
func (p *Pass) stmt(s ast.Stmt, out *[]ast.Stmt) bool {
	switch s := s.(type) {
	case *ast.If:
		p.lowerIf(s, out)
		return true
	case *ast.For:
		return p.forStmt(s, out)
	case *ast.Assign:
		if call, ok := s.Value.(*ast.Call); ok && needsHoist(call) {
			hoisted, tmp := p.hoistArg(call)
			*out = append(*out, hoisted, &ast.Assign{Target: s.Target, Value: tmp})
			return true
		}
	case *ast.ExprStmt:
		if call, ok := s.X.(*ast.Call); ok && needsHoist(call) {
			hoisted, tmp := p.hoistArg(call)
			*out = append(*out, hoisted, &ast.ExprStmt{X: tmp})
			return true
		}
	}
	*out = append(*out, s)
	return false
}

func (p *Pass) forStmt(s *ast.For, out *[]ast.Stmt) bool {
	switch {
	case ast.Contains[*ast.Break](s.Body):
		*out = append(*out, p.lowerBreak(s)...)
		return true
	case ast.Contains[*ast.Continue](s.Body):
		*out = append(*out, p.lowerContinue(s)...)
		return true
	}
	if _, ok := s.Iter.(*ast.Name); !ok {
		tmp := p.names.Fresh("tmpfor")
		*out = append(*out,
			&ast.Assign{Target: ast.NewName(tmp), Value: s.Iter},
			&ast.For{Target: s.Target, Iter: ast.NewName(tmp), Body: s.Body, Else: s.Else},
		)
		return true
	}
	if newBody, changed := p.step(s.Body); changed {
		*out = append(*out, &ast.For{Target: s.Target, Iter: s.Iter, Body: newBody, Else: s.Else})
		return true
	}
	*out = append(*out, s)
	return false
}

// lowerIf turns an if statement into set scaffolding: materialize the dummy
// singleton, reduce it to singleton-or-empty with a conditional expression,
// then run the branch body zero or one times with a for-each.
func (p *Pass) lowerIf(s *ast.If, out *[]ast.Stmt) {
	name := p.names.Fresh("tmpif")
	singleton := name + "r"
	*out = append(*out,
		&ast.Assign{Target: ast.NewName(singleton), Value: relationCall()},
		&ast.Assign{Target: ast.NewName(name), Value: &ast.CondExpr{
			Cond: s.Cond,
			Then: ast.NewName(singleton),
			Else: emptySet(),
		}},
		&ast.For{Target: ast.NewName("tmp_"), Iter: ast.NewName(name), Body: s.Body},
	)
	if len(s.Else) > 0 {
		*out = append(*out,
			&ast.Assign{Target: ast.NewName(name), Value: &ast.CondExpr{
				Cond: &ast.Unary{Op: ast.Not, X: ast.CloneExpr(s.Cond)},
				Then: ast.NewName(singleton),
				Else: emptySet(),
			}},
			&ast.For{Target: ast.NewName("tmp_"), Iter: ast.NewName(name), Body: s.Else},
		)
	}
}

// needsHoist reports whether the first positional argument of call must be
// bound to a temporary before the call can be emitted. Around, Regex and
// NotRegex arguments stay in place: they are syntactic markers consumed by
// constructor emission, not values.
func needsHoist(call *ast.Call) bool {
	if len(call.Args) == 0 {
		return false
	}
	switch arg := call.Args[0].(type) {
	case *ast.Name, *ast.Num:
		return false
	case *ast.Call:
		if fn, ok := arg.Fun.(*ast.Name); ok {
			switch fn.ID {
			case "Around", "Regex", "NotRegex":
				return false
			}
		}
	}
	return true
}

// hoistArg binds call's first positional argument to a tmpcall name and
// returns the binding together with the call rewritten to use it.
func (p *Pass) hoistArg(call *ast.Call) (ast.Stmt, *ast.Call) {
	tmp := p.names.Fresh("tmpcall")
	args := append([]ast.Expr{ast.NewName(tmp)}, call.Args[1:]...)
	return &ast.Assign{Target: ast.NewName(tmp), Value: call.Args[0]},
		&ast.Call{Fun: call.Fun, Args: args, Keywords: call.Keywords}
}

func relationCall() *ast.Call {
	return &ast.Call{
		Fun:  ast.NewName("Relation"),
		Args: []ast.Expr{&ast.Num{Lit: dummyRelation}},
	}
}

func emptySet() *ast.Call {
	return &ast.Call{Fun: ast.NewName("Set")}
}
