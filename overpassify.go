// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package overpassify compiles a restricted query language into OverpassQL,
// the query language of the Overpass API over OpenStreetMap data.
//
// Queries are written with variable bindings, arithmetic, comparisons,
// conditional expressions, for-each loops and constructor calls; the
// compiler rewrites that control flow into OverpassQL's foreach and
// set-assignment primitives. See the ast, transform and emit packages for
// the individual stages; Overpassify wires them together.
package overpassify

import (
	"fmt"
	"io"

	"github.com/dave/dst"

	"github.com/LivInTheLookingGlass/overpassify/ast"
	"github.com/LivInTheLookingGlass/overpassify/emit"
	"github.com/LivInTheLookingGlass/overpassify/internal/errutil"
	"github.com/LivInTheLookingGlass/overpassify/internal/hostsrc"
	"github.com/LivInTheLookingGlass/overpassify/transform"
)

// Sourcer provides query source text. It is the hook for inputs that carry
// their source around, such as embedded or generated queries.
type Sourcer interface {
	Source() (string, error)
}

// UnsupportedInputError reports an Overpassify input of an unrecognized
// shape.
type UnsupportedInputError struct {
	Input any
}

func (e *UnsupportedInputError) Error() string {
	return fmt.Sprintf("overpassify does not support %T", e.Input)
}

// Overpassify translates a query into an OverpassQL script. The query may be
// a statement list or *ast.Module, query source as string, []byte or
// io.Reader, a Sourcer, or an already-parsed *dst.FuncDecl.
func Overpassify(query any) (string, error) {
	switch q := query.(type) {
	case []ast.Stmt:
		return Compile(q)
	case *ast.Module:
		return Compile(q.Body)
	case string:
		body, err := hostsrc.Parse(q)
		if err != nil {
			return "", err
		}
		return Compile(body)
	case []byte:
		return Overpassify(string(q))
	case io.Reader:
		src, err := io.ReadAll(q)
		if err != nil {
			return "", fmt.Errorf("overpassify: %v", err)
		}
		return Overpassify(string(src))
	case Sourcer:
		src, err := q.Source()
		if err != nil {
			return "", fmt.Errorf("overpassify: %v", err)
		}
		return Overpassify(src)
	case *dst.FuncDecl:
		body, err := hostsrc.FromFunc(q)
		if err != nil {
			return "", err
		}
		return Compile(body)
	}
	return "", &UnsupportedInputError{Input: query}
}

// Compile desugars body and emits it as OverpassQL.
func Compile(body []ast.Stmt) (out string, err error) {
	defer errutil.Annotatef(&err, "overpassify")
	// The rewriter has a history of dropping the final statement. A
	// trailing noop() keeps user statements off that edge; it emits
	// nothing.
	terminated := make([]ast.Stmt, len(body), len(body)+1)
	copy(terminated, body)
	terminated = append(terminated, &ast.ExprStmt{X: &ast.Call{Fun: ast.NewName("noop")}})
	return emit.Emit(transform.Desugar(terminated))
}
