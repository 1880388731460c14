// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package emit translates a desugared query AST into OverpassQL text.
//
// Emit assumes the transform pass has run: it rejects if, break and continue
// statements, expects every for-each iterator to be a plain name, and emits
// conditional expressions only at assignment level.
package emit

import (
	"fmt"
	"strings"

	"github.com/LivInTheLookingGlass/overpassify/ast"
)

// Emit renders body as an OverpassQL script. If the first statement is a
// Settings(...) call, its keywords become [key:value] header lines.
func Emit(body []ast.Stmt) (string, error) {
	header, body, err := settingsHeader(body)
	if err != nil {
		return "", err
	}
	var lines []string
	for _, s := range body {
		frag, err := stmt(s)
		if err != nil {
			return "", err
		}
		if frag == "" {
			continue
		}
		lines = append(lines, frag)
	}
	return header + strings.Join(lines, "\n"), nil
}

// settingsHeader extracts a leading Settings(...) call into header lines.
// String values are dequoted; everything else is interpolated verbatim.
func settingsHeader(body []ast.Stmt) (string, []ast.Stmt, error) {
	if len(body) == 0 {
		return "", body, nil
	}
	es, ok := body[0].(*ast.ExprStmt)
	if !ok {
		return "", body, nil
	}
	call, ok := es.X.(*ast.Call)
	if !ok {
		return "", body, nil
	}
	if fn, ok := call.Fun.(*ast.Name); !ok || fn.ID != "Settings" {
		return "", body, nil
	}
	var b strings.Builder
	for _, kw := range call.Keywords {
		value, err := expr(kw.Value)
		if err != nil {
			return "", nil, err
		}
		if strings.HasPrefix(value, `"`) {
			value = strings.Trim(value, `"`)
		}
		fmt.Fprintf(&b, "[%s:%s]\n", kw.Arg, value)
	}
	return b.String(), body[1:], nil
}

func stmt(s ast.Stmt) (string, error) {
	switch s := s.(type) {
	case *ast.Assign:
		return assign(s)
	case *ast.ExprStmt:
		if cond, ok := s.X.(*ast.CondExpr); ok {
			return condExpr(cond, "._")
		}
		frag, err := expr(s.X)
		if err != nil {
			return "", err
		}
		if frag != "" && !strings.HasSuffix(frag, ";") && !strings.HasSuffix(frag, "\n") {
			frag += ";"
		}
		return frag, nil
	case *ast.For:
		return forEach(s)
	case *ast.If:
		return "", &SyntaxError{Msg: "if statement reached the emitter; run the transform pass first"}
	case *ast.Break, *ast.Continue:
		return "", &SyntaxError{Msg: "loop exit reached the emitter; run the transform pass first"}
	}
	return "", fmt.Errorf("emit: unknown statement %T", s)
}

func assign(s *ast.Assign) (string, error) {
	target := "." + s.Target.ID
	if cond, ok := s.Value.(*ast.CondExpr); ok {
		return condExpr(cond, target)
	}
	value, err := expr(s.Value)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("(%s;) -> %s;", value, target), nil
}

func forEach(s *ast.For) (string, error) {
	if len(s.Else) > 0 {
		return "", &SyntaxError{Msg: "overpassify does not yet support for-each-if"}
	}
	iter, ok := s.Iter.(*ast.Name)
	if !ok {
		return "", &SyntaxError{Msg: "for-each iterator must be a name; run the transform pass first"}
	}
	var lines []string
	for _, inner := range s.Body {
		frag, err := stmt(inner)
		if err != nil {
			return "", err
		}
		if frag == "" {
			continue
		}
		lines = append(lines, indent(frag, "    "))
	}
	return fmt.Sprintf("foreach.%s->.%s(\n%s\n);", iter.ID, s.Target.ID, strings.Join(lines, "\n")), nil
}

// condExpr emits a conditional expression bound to target. The then-branch
// value is filtered by the condition across all four object types; a
// non-empty else-branch lands in a companion tmp set that is unioned in
// under the negated condition. An else-branch that is a bare type name
// (way, area, node or relation) instead filters the then-branch value by
// that one type, with no companion set.
func condExpr(cond *ast.CondExpr, target string) (string, error) {
	test, err := expr(cond.Cond)
	if err != nil {
		return "", err
	}
	then, err := expr(cond.Then)
	if err != nil {
		return "", err
	}
	orelse, err := expr(cond.Else)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "(%s;) -> %s;\n", then, target)
	switch {
	case orelse == "()":
		fmt.Fprintf(&b, "(%s;) -> %s;",
			typeFilters(target, test), target)
	case orelse == "way" || orelse == "area" || orelse == "node" || orelse == "relation":
		fmt.Fprintf(&b, "%s%s(if: %s) -> %s;", orelse, target, test, target)
	default:
		companion := ".tmp" + strings.TrimPrefix(target, ".")
		fmt.Fprintf(&b, "(%s;) -> %s;\n", typeFilters(target, test), target)
		fmt.Fprintf(&b, "(%s;) -> %s;\n", orelse, companion)
		fmt.Fprintf(&b, "(%s; %s;) -> %s;",
			target, typeFilters(companion, "!("+test+")"), target)
	}
	return b.String(), nil
}

// typeFilters builds the four-type conditional filter over a named set.
func typeFilters(name, test string) string {
	parts := make([]string, 0, 4)
	for _, typ := range [...]string{"way", "area", "node", "relation"} {
		parts = append(parts, fmt.Sprintf("%s%s(if: %s)", typ, name, test))
	}
	return strings.Join(parts, "; ")
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = prefix + l
		}
	}
	return strings.Join(lines, "\n")
}
