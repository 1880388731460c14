// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ast

// CloneStmts deep-copies a statement list.
func CloneStmts(body []Stmt) []Stmt {
	if body == nil {
		return nil
	}
	out := make([]Stmt, len(body))
	for i, s := range body {
		out[i] = CloneStmt(s)
	}
	return out
}

// CloneStmt deep-copies a statement.
func CloneStmt(s Stmt) Stmt {
	switch s := s.(type) {
	case *Assign:
		return &Assign{Target: cloneName(s.Target), Value: CloneExpr(s.Value)}
	case *ExprStmt:
		return &ExprStmt{X: CloneExpr(s.X)}
	case *If:
		return &If{Cond: CloneExpr(s.Cond), Body: CloneStmts(s.Body), Else: CloneStmts(s.Else)}
	case *For:
		return &For{Target: cloneName(s.Target), Iter: CloneExpr(s.Iter), Body: CloneStmts(s.Body), Else: CloneStmts(s.Else)}
	case *Break:
		return &Break{}
	case *Continue:
		return &Continue{}
	}
	panic("ast: unknown statement kind")
}

// CloneExpr deep-copies an expression.
func CloneExpr(e Expr) Expr {
	switch e := e.(type) {
	case nil:
		return nil
	case *Name:
		return &Name{ID: e.ID}
	case *Attribute:
		return &Attribute{X: CloneExpr(e.X), Attr: e.Attr}
	case *Num:
		return &Num{Lit: e.Lit}
	case *Str:
		return &Str{Value: e.Value}
	case *NameConst:
		return &NameConst{Value: e.Value}
	case *EllipsisLit:
		return &EllipsisLit{}
	case *Subscript:
		return &Subscript{X: CloneExpr(e.X), Index: CloneExpr(e.Index)}
	case *Binary:
		return &Binary{Op: e.Op, Left: CloneExpr(e.Left), Right: CloneExpr(e.Right)}
	case *Unary:
		return &Unary{Op: e.Op, X: CloneExpr(e.X)}
	case *CondExpr:
		return &CondExpr{Cond: CloneExpr(e.Cond), Then: CloneExpr(e.Then), Else: CloneExpr(e.Else)}
	case *Call:
		c := &Call{Fun: CloneExpr(e.Fun)}
		for _, a := range e.Args {
			c.Args = append(c.Args, CloneExpr(a))
		}
		for _, kw := range e.Keywords {
			c.Keywords = append(c.Keywords, &Keyword{Arg: kw.Arg, Value: CloneExpr(kw.Value)})
		}
		return c
	}
	panic("ast: unknown expression kind")
}

func cloneName(n *Name) *Name {
	if n == nil {
		return nil
	}
	return &Name{ID: n.ID}
}
