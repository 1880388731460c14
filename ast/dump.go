// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ast

import (
	"fmt"
	"strings"
)

// Dump renders a statement list as an indented s-expression, one statement
// per line. The form is stable and intended for logs and test failure
// messages, not for parsing.
func Dump(body []Stmt) string {
	var b strings.Builder
	dumpStmts(&b, body, 0)
	return b.String()
}

func dumpStmts(b *strings.Builder, body []Stmt, depth int) {
	for _, s := range body {
		dumpStmt(b, s, depth)
	}
}

func dumpStmt(b *strings.Builder, s Stmt, depth int) {
	indent := strings.Repeat("  ", depth)
	switch s := s.(type) {
	case *Assign:
		fmt.Fprintf(b, "%s(assign %s %s)\n", indent, s.Target.ID, DumpExpr(s.Value))
	case *ExprStmt:
		fmt.Fprintf(b, "%s(expr %s)\n", indent, DumpExpr(s.X))
	case *If:
		fmt.Fprintf(b, "%s(if %s\n", indent, DumpExpr(s.Cond))
		dumpStmts(b, s.Body, depth+1)
		if len(s.Else) > 0 {
			fmt.Fprintf(b, "%s else\n", indent)
			dumpStmts(b, s.Else, depth+1)
		}
		fmt.Fprintf(b, "%s)\n", indent)
	case *For:
		fmt.Fprintf(b, "%s(for %s in %s\n", indent, s.Target.ID, DumpExpr(s.Iter))
		dumpStmts(b, s.Body, depth+1)
		if len(s.Else) > 0 {
			fmt.Fprintf(b, "%s else\n", indent)
			dumpStmts(b, s.Else, depth+1)
		}
		fmt.Fprintf(b, "%s)\n", indent)
	case *Break:
		fmt.Fprintf(b, "%s(break)\n", indent)
	case *Continue:
		fmt.Fprintf(b, "%s(continue)\n", indent)
	default:
		fmt.Fprintf(b, "%s(?%T)\n", indent, s)
	}
}

// DumpExpr renders a single expression in the same s-expression form.
func DumpExpr(e Expr) string {
	switch e := e.(type) {
	case nil:
		return "<nil>"
	case *Name:
		return e.ID
	case *Attribute:
		return DumpExpr(e.X) + "." + e.Attr
	case *Num:
		return e.Lit
	case *Str:
		return fmt.Sprintf("%q", e.Value)
	case *NameConst:
		switch e.Value {
		case True:
			return "true"
		case False:
			return "false"
		}
		return "null"
	case *EllipsisLit:
		return "..."
	case *Subscript:
		return fmt.Sprintf("%s[%s]", DumpExpr(e.X), DumpExpr(e.Index))
	case *Binary:
		return fmt.Sprintf("(%s %s %s)", e.Op.Token(), DumpExpr(e.Left), DumpExpr(e.Right))
	case *Unary:
		return fmt.Sprintf("(%s %s)", e.Op.Token(), DumpExpr(e.X))
	case *CondExpr:
		return fmt.Sprintf("(cond %s %s %s)", DumpExpr(e.Cond), DumpExpr(e.Then), DumpExpr(e.Else))
	case *Call:
		parts := []string{DumpExpr(e.Fun)}
		for _, a := range e.Args {
			parts = append(parts, DumpExpr(a))
		}
		for _, kw := range e.Keywords {
			parts = append(parts, kw.Arg+"="+DumpExpr(kw.Value))
		}
		return "(call " + strings.Join(parts, " ") + ")"
	}
	return fmt.Sprintf("(?%T)", e)
}
