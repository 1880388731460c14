// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hostsrc parses query source written in Go syntax into the compiler
// AST.
//
// A query is the body of the first function declaration in the source. The
// accepted surface is the compiler's statement subset spelled in Go:
//
//	func query() {
//		Settings(Tags{"timeout": 25})
//		city := Area(3600062594)
//		for street := range Way(city, Tags{"highway": Ellipsis}) {
//			if street.length > 100 {
//				out(street, "geom")
//			}
//		}
//	}
//
// Keyword arguments are spelled as a trailing Tags{...} composite literal;
// string arguments to out become output channels; cond(t, a, b) is the
// conditional expression; Ellipsis and nil are the existence and absence
// tag markers.
package hostsrc

import (
	"fmt"
	"go/token"
	"strconv"
	"strings"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"

	"github.com/LivInTheLookingGlass/overpassify/ast"
)

// Parse extracts the query function from src and maps its body onto the
// compiler AST. A bare function declaration without a package clause is
// accepted.
func Parse(src string) ([]ast.Stmt, error) {
	file, err := decorator.Parse(src)
	if err != nil {
		wrapped, werr := decorator.Parse("package query\n\n" + src)
		if werr != nil {
			return nil, fmt.Errorf("hostsrc: %v", err)
		}
		file = wrapped
	}
	for _, decl := range file.Decls {
		if fn, ok := decl.(*dst.FuncDecl); ok {
			return FromFunc(fn)
		}
	}
	return nil, fmt.Errorf("hostsrc: source contains no function declaration")
}

// FromFunc maps the body of an already-parsed function declaration.
func FromFunc(fn *dst.FuncDecl) ([]ast.Stmt, error) {
	if fn.Body == nil {
		return nil, fmt.Errorf("hostsrc: %s has no body", fn.Name.Name)
	}
	return mapStmts(fn.Body.List)
}

func mapStmts(list []dst.Stmt) ([]ast.Stmt, error) {
	out := make([]ast.Stmt, 0, len(list))
	for _, s := range list {
		mapped, err := mapStmt(s)
		if err != nil {
			return nil, err
		}
		out = append(out, mapped)
	}
	return out, nil
}

func mapStmt(s dst.Stmt) (ast.Stmt, error) {
	switch s := s.(type) {
	case *dst.AssignStmt:
		if s.Tok != token.ASSIGN && s.Tok != token.DEFINE {
			return nil, fmt.Errorf("hostsrc: %s assignments are not supported", s.Tok)
		}
		if len(s.Lhs) != 1 || len(s.Rhs) != 1 {
			return nil, fmt.Errorf("hostsrc: only single assignments are supported")
		}
		target, ok := s.Lhs[0].(*dst.Ident)
		if !ok {
			return nil, fmt.Errorf("hostsrc: assignment target must be an identifier")
		}
		if strings.HasPrefix(target.Name, "tmp") {
			return nil, fmt.Errorf("hostsrc: the tmp name prefix is reserved, cannot assign to %s", target.Name)
		}
		value, err := mapExpr(s.Rhs[0])
		if err != nil {
			return nil, err
		}
		return &ast.Assign{Target: ast.NewName(target.Name), Value: value}, nil
	case *dst.ExprStmt:
		x, err := mapExpr(s.X)
		if err != nil {
			return nil, err
		}
		return &ast.ExprStmt{X: x}, nil
	case *dst.IfStmt:
		return mapIf(s)
	case *dst.RangeStmt:
		return mapRange(s)
	case *dst.BranchStmt:
		switch s.Tok {
		case token.BREAK:
			return &ast.Break{}, nil
		case token.CONTINUE:
			return &ast.Continue{}, nil
		}
		return nil, fmt.Errorf("hostsrc: %s is not supported", s.Tok)
	}
	return nil, fmt.Errorf("hostsrc: unsupported statement %T", s)
}

func mapIf(s *dst.IfStmt) (ast.Stmt, error) {
	if s.Init != nil {
		return nil, fmt.Errorf("hostsrc: if statements with init clauses are not supported")
	}
	cond, err := mapExpr(s.Cond)
	if err != nil {
		return nil, err
	}
	body, err := mapStmts(s.Body.List)
	if err != nil {
		return nil, err
	}
	var orelse []ast.Stmt
	switch e := s.Else.(type) {
	case nil:
	case *dst.BlockStmt:
		if orelse, err = mapStmts(e.List); err != nil {
			return nil, err
		}
	case *dst.IfStmt:
		chained, err := mapIf(e)
		if err != nil {
			return nil, err
		}
		orelse = []ast.Stmt{chained}
	default:
		return nil, fmt.Errorf("hostsrc: unsupported else clause %T", s.Else)
	}
	return &ast.If{Cond: cond, Body: body, Else: orelse}, nil
}

func mapRange(s *dst.RangeStmt) (ast.Stmt, error) {
	key, ok := s.Key.(*dst.Ident)
	if !ok || s.Value != nil {
		return nil, fmt.Errorf("hostsrc: range loops must bind exactly one variable")
	}
	iter, err := mapExpr(s.X)
	if err != nil {
		return nil, err
	}
	body, err := mapStmts(s.Body.List)
	if err != nil {
		return nil, err
	}
	return &ast.For{Target: ast.NewName(key.Name), Iter: iter, Body: body}, nil
}

var binaryOps = map[token.Token]ast.Op{
	token.ADD:  ast.Add,
	token.SUB:  ast.Sub,
	token.MUL:  ast.Mult,
	token.QUO:  ast.Div,
	token.LAND: ast.And,
	token.LOR:  ast.Or,
	token.EQL:  ast.Eq,
	token.NEQ:  ast.NotEq,
	token.LSS:  ast.Lt,
	token.LEQ:  ast.LtE,
	token.GTR:  ast.Gt,
	token.GEQ:  ast.GtE,
}

func mapExpr(e dst.Expr) (ast.Expr, error) {
	switch e := e.(type) {
	case *dst.Ident:
		switch e.Name {
		case "Ellipsis":
			return &ast.EllipsisLit{}, nil
		case "true":
			return &ast.NameConst{Value: ast.True}, nil
		case "false":
			return &ast.NameConst{Value: ast.False}, nil
		case "nil":
			return &ast.NameConst{Value: ast.Null}, nil
		}
		return ast.NewName(e.Name), nil
	case *dst.BasicLit:
		switch e.Kind {
		case token.INT, token.FLOAT:
			return &ast.Num{Lit: e.Value}, nil
		case token.STRING:
			s, err := strconv.Unquote(e.Value)
			if err != nil {
				return nil, fmt.Errorf("hostsrc: bad string literal %s: %v", e.Value, err)
			}
			return &ast.Str{Value: s}, nil
		}
		return nil, fmt.Errorf("hostsrc: unsupported literal %s", e.Value)
	case *dst.SelectorExpr:
		x, err := mapExpr(e.X)
		if err != nil {
			return nil, err
		}
		return &ast.Attribute{X: x, Attr: e.Sel.Name}, nil
	case *dst.IndexExpr:
		x, err := mapExpr(e.X)
		if err != nil {
			return nil, err
		}
		index, err := mapExpr(e.Index)
		if err != nil {
			return nil, err
		}
		return &ast.Subscript{X: x, Index: index}, nil
	case *dst.BinaryExpr:
		op, ok := binaryOps[e.Op]
		if !ok {
			return nil, fmt.Errorf("hostsrc: operator %s is not supported", e.Op)
		}
		left, err := mapExpr(e.X)
		if err != nil {
			return nil, err
		}
		right, err := mapExpr(e.Y)
		if err != nil {
			return nil, err
		}
		return &ast.Binary{Op: op, Left: left, Right: right}, nil
	case *dst.UnaryExpr:
		x, err := mapExpr(e.X)
		if err != nil {
			return nil, err
		}
		switch e.Op {
		case token.SUB:
			return &ast.Unary{Op: ast.USub, X: x}, nil
		case token.NOT:
			return &ast.Unary{Op: ast.Not, X: x}, nil
		}
		return nil, fmt.Errorf("hostsrc: operator %s is not supported", e.Op)
	case *dst.ParenExpr:
		return mapExpr(e.X)
	case *dst.CallExpr:
		return mapCall(e)
	}
	return nil, fmt.Errorf("hostsrc: unsupported expression %T", e)
}

func mapCall(e *dst.CallExpr) (ast.Expr, error) {
	if fn, ok := e.Fun.(*dst.Ident); ok && fn.Name == "cond" {
		if len(e.Args) != 3 {
			return nil, fmt.Errorf("hostsrc: cond takes exactly 3 arguments")
		}
		test, err := mapExpr(e.Args[0])
		if err != nil {
			return nil, err
		}
		then, err := mapExpr(e.Args[1])
		if err != nil {
			return nil, err
		}
		orelse, err := mapExpr(e.Args[2])
		if err != nil {
			return nil, err
		}
		return &ast.CondExpr{Cond: test, Then: then, Else: orelse}, nil
	}
	fun, err := mapExpr(e.Fun)
	if err != nil {
		return nil, err
	}
	call := &ast.Call{Fun: fun}
	isOut := false
	if fn, ok := fun.(*ast.Name); ok && fn.ID == "out" {
		isOut = true
	}
	for _, arg := range e.Args {
		if lit, ok := arg.(*dst.CompositeLit); ok && isTags(lit) {
			kws, err := mapTags(lit)
			if err != nil {
				return nil, err
			}
			call.Keywords = append(call.Keywords, kws...)
			continue
		}
		if lit, ok := arg.(*dst.BasicLit); ok && isOut && lit.Kind == token.STRING {
			channel, err := strconv.Unquote(lit.Value)
			if err != nil {
				return nil, fmt.Errorf("hostsrc: bad channel literal %s: %v", lit.Value, err)
			}
			call.Keywords = append(call.Keywords, &ast.Keyword{
				Arg:   channel,
				Value: &ast.NameConst{Value: ast.True},
			})
			continue
		}
		mapped, err := mapExpr(arg)
		if err != nil {
			return nil, err
		}
		call.Args = append(call.Args, mapped)
	}
	return call, nil
}

func isTags(lit *dst.CompositeLit) bool {
	ident, ok := lit.Type.(*dst.Ident)
	return ok && ident.Name == "Tags"
}

// mapTags converts a Tags{...} literal into keyword arguments, preserving
// entry order.
func mapTags(lit *dst.CompositeLit) ([]*ast.Keyword, error) {
	var out []*ast.Keyword
	for _, elt := range lit.Elts {
		kv, ok := elt.(*dst.KeyValueExpr)
		if !ok {
			return nil, fmt.Errorf("hostsrc: Tags entries must be key: value pairs")
		}
		var key string
		switch k := kv.Key.(type) {
		case *dst.BasicLit:
			if k.Kind != token.STRING {
				return nil, fmt.Errorf("hostsrc: Tags keys must be strings, got %s", k.Value)
			}
			unquoted, err := strconv.Unquote(k.Value)
			if err != nil {
				return nil, fmt.Errorf("hostsrc: bad Tags key %s: %v", k.Value, err)
			}
			key = unquoted
		case *dst.Ident:
			key = k.Name
		default:
			return nil, fmt.Errorf("hostsrc: unsupported Tags key %T", kv.Key)
		}
		value, err := mapExpr(kv.Value)
		if err != nil {
			return nil, err
		}
		out = append(out, &ast.Keyword{Arg: key, Value: value})
	}
	return out, nil
}
