// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package overpassify

import (
	"errors"
	"strings"
	"testing"

	"github.com/kylelemons/godebug/diff"

	"github.com/LivInTheLookingGlass/overpassify/ast"
)

// normalize collapses whitespace runs so golden comparisons are insensitive
// to indentation and line breaks.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func checkScript(t *testing.T, query any, want string) {
	t.Helper()
	got, err := Overpassify(query)
	if err != nil {
		t.Fatalf("Overpassify() failed: %v", err)
	}
	if normalize(got) != normalize(want) {
		t.Errorf("Overpassify() mismatch:\n%s", diff.Diff(normalize(want), normalize(got)))
	}
}

func num(lit string) *ast.Num { return &ast.Num{Lit: lit} }

func call(name string, args ...ast.Expr) *ast.Call {
	return &ast.Call{Fun: ast.NewName(name), Args: args}
}

func TestSimpleAssignAndOut(t *testing.T) {
	body := []ast.Stmt{
		&ast.Assign{Target: ast.NewName("x"), Value: call("Node", num("1"))},
		&ast.ExprStmt{X: call("out", ast.NewName("x"))},
	}
	checkScript(t, body, "(node(1);) -> .x;\n.x out ;")
}

func TestTagFilters(t *testing.T) {
	body := []ast.Stmt{
		&ast.Assign{Target: ast.NewName("x"), Value: &ast.Call{
			Fun: ast.NewName("Way"),
			Keywords: []*ast.Keyword{
				{Arg: "highway", Value: &ast.EllipsisLit{}},
				{Arg: "name", Value: &ast.Str{Value: "Main"}},
			},
		}},
	}
	checkScript(t, body, `(way["highway"]["name"="Main"];) -> .x;`)
}

func TestConditionalExpressionEmptyElse(t *testing.T) {
	body := []ast.Stmt{
		&ast.Assign{Target: ast.NewName("x"), Value: &ast.CondExpr{
			Cond: &ast.Binary{Op: ast.Eq, Left: ast.NewName("a"), Right: num("1")},
			Then: call("Node", num("1")),
			Else: call("Set"),
		}},
	}
	checkScript(t, body,
		"(node(1);) -> .x;\n"+
			"(way.x(if: .a == 1); area.x(if: .a == 1); node.x(if: .a == 1); relation.x(if: .a == 1);) -> .x;")
}

func TestIfStatementLowering(t *testing.T) {
	body := []ast.Stmt{
		&ast.If{
			Cond: &ast.Binary{Op: ast.Eq, Left: ast.NewName("a"), Right: num("1")},
			Body: []ast.Stmt{&ast.ExprStmt{X: call("out", ast.NewName("x"))}},
		},
	}
	checkScript(t, body,
		"(relation(2186646);) -> .tmpif1r;\n"+
			"(.tmpif1r;) -> .tmpif1;\n"+
			"(way.tmpif1(if: .a == 1); area.tmpif1(if: .a == 1); node.tmpif1(if: .a == 1); relation.tmpif1(if: .a == 1);) -> .tmpif1;\n"+
			"foreach.tmpif1->.tmp_(\n    .x out ;\n);")
}

func TestOutWithCount(t *testing.T) {
	body := []ast.Stmt{
		&ast.ExprStmt{X: &ast.Call{
			Fun:  ast.NewName("out"),
			Args: []ast.Expr{ast.NewName("x")},
			Keywords: []*ast.Keyword{
				{Arg: "count", Value: &ast.NameConst{Value: ast.True}},
				{Arg: "ids", Value: &ast.NameConst{Value: ast.True}},
			},
		}},
	}
	checkScript(t, body, ".x out count;\n.x out ids;")
}

func TestSetUnion(t *testing.T) {
	body := []ast.Stmt{
		&ast.Assign{Target: ast.NewName("z"), Value: &ast.Binary{
			Op:    ast.Add,
			Left:  call("Node", num("1")),
			Right: call("Way", num("2")),
		}},
	}
	checkScript(t, body, "((node(1); way(2));) -> .z;")
}

func TestSettingsHeader(t *testing.T) {
	body := []ast.Stmt{
		&ast.ExprStmt{X: &ast.Call{
			Fun: ast.NewName("Settings"),
			Keywords: []*ast.Keyword{
				{Arg: "timeout", Value: num("25")},
				{Arg: "out", Value: &ast.Str{Value: "json"}},
			},
		}},
		&ast.Assign{Target: ast.NewName("x"), Value: call("Node", num("1"))},
	}
	checkScript(t, body, "[timeout:25]\n[out:json]\n(node(1);) -> .x;")
}

func TestModuleInput(t *testing.T) {
	m := &ast.Module{Body: []ast.Stmt{
		&ast.Assign{Target: ast.NewName("x"), Value: call("Node", num("1"))},
	}}
	checkScript(t, m, "(node(1);) -> .x;")
}

func TestSourceInput(t *testing.T) {
	const src = `func query() {
	x := Node(1)
	out(x)
}`
	checkScript(t, src, "(node(1);) -> .x;\n.x out ;")
	checkScript(t, []byte(src), "(node(1);) -> .x;\n.x out ;")
	checkScript(t, strings.NewReader(src), "(node(1);) -> .x;\n.x out ;")
}

func TestSourceInputWithControlFlow(t *testing.T) {
	const src = `package query

func pubs() {
	Settings(Tags{"timeout": 25})
	city := Area(3600062594)
	for street := range Way(city, Tags{"highway": Ellipsis}) {
		out(street, "geom")
	}
}`
	got, err := Overpassify(src)
	if err != nil {
		t.Fatalf("Overpassify() failed: %v", err)
	}
	for _, want := range []string{
		"[timeout:25]",
		"(area(3600062594);) -> .city;",
		`(way["highway"](area.city);) -> .tmpfor1;`,
		"foreach.tmpfor1->.street(",
		".street out geom;",
	} {
		if !strings.Contains(normalize(got), normalize(want)) {
			t.Errorf("Overpassify() output missing %q:\n%s", want, got)
		}
	}
}

type querySource struct {
	src string
	err error
}

func (q querySource) Source() (string, error) { return q.src, q.err }

func TestSourcerInput(t *testing.T) {
	q := querySource{src: "func f() {\n\tx := Node(1)\n}"}
	checkScript(t, q, "(node(1);) -> .x;")
}

func TestSourcerError(t *testing.T) {
	q := querySource{err: errors.New("no source")}
	if _, err := Overpassify(q); err == nil {
		t.Error("Overpassify() succeeded for a failing Sourcer")
	}
}

func TestUnsupportedInput(t *testing.T) {
	_, err := Overpassify(42)
	var unsupported *UnsupportedInputError
	if !errors.As(err, &unsupported) {
		t.Fatalf("Overpassify(42) = %v, want UnsupportedInputError", err)
	}
}

func TestBreakLoweringEndToEnd(t *testing.T) {
	body := []ast.Stmt{
		&ast.For{
			Target: ast.NewName("w"),
			Iter:   ast.NewName("ways"),
			Body: []ast.Stmt{
				&ast.ExprStmt{X: call("out", ast.NewName("w"))},
				&ast.Break{},
			},
		},
	}
	got, err := Overpassify(body)
	if err != nil {
		t.Fatalf("Overpassify() failed: %v", err)
	}
	for _, want := range []string{
		"(relation(2186646);) -> .tmpbreak1;",
		"foreach.ways->.w(",
		"foreach.tmpbreak1->.tmp_(",
		"(way.tmpbreak1;) -> .tmpbreak1;",
	} {
		if !strings.Contains(normalize(got), normalize(want)) {
			t.Errorf("Overpassify() output missing %q:\n%s", want, got)
		}
	}
}

func TestLastStatementSurvives(t *testing.T) {
	// The trailing noop() terminator keeps the final user statement off the
	// dropped-last-statement edge; the statement must appear in the output.
	body := []ast.Stmt{
		&ast.Assign{Target: ast.NewName("x"), Value: call("Node", num("1"))},
		&ast.ExprStmt{X: call("out", ast.NewName("x"))},
	}
	got, err := Overpassify(body)
	if err != nil {
		t.Fatalf("Overpassify() failed: %v", err)
	}
	if !strings.Contains(got, ".x out ;") {
		t.Errorf("final statement missing from output:\n%s", got)
	}
	if strings.Contains(got, "noop") {
		t.Errorf("noop terminator leaked into output:\n%s", got)
	}
}
