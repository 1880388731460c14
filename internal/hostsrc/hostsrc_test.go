// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hostsrc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LivInTheLookingGlass/overpassify/ast"
)

func TestParseAssignAndCall(t *testing.T) {
	body, err := Parse(`func q() {
	x := Node(1)
	out(x)
}`)
	require.NoError(t, err)
	require.Len(t, body, 2)

	assign := body[0].(*ast.Assign)
	assert.Equal(t, "x", assign.Target.ID)
	call := assign.Value.(*ast.Call)
	assert.Equal(t, "Node", call.Fun.(*ast.Name).ID)
	require.Len(t, call.Args, 1)
	assert.Equal(t, "1", call.Args[0].(*ast.Num).Lit)

	stmt := body[1].(*ast.ExprStmt)
	assert.Equal(t, "out", stmt.X.(*ast.Call).Fun.(*ast.Name).ID)
}

func TestParseAcceptsPackageClause(t *testing.T) {
	body, err := Parse(`package query

func q() {
	x := Node(1)
}`)
	require.NoError(t, err)
	assert.Len(t, body, 1)
}

func TestParseTagsLiteral(t *testing.T) {
	body, err := Parse(`func q() {
	x := Way(Tags{"highway": Ellipsis, "name": "Main", "oneway": nil})
}`)
	require.NoError(t, err)
	call := body[0].(*ast.Assign).Value.(*ast.Call)
	assert.Empty(t, call.Args)
	require.Len(t, call.Keywords, 3)
	assert.Equal(t, "highway", call.Keywords[0].Arg)
	assert.IsType(t, &ast.EllipsisLit{}, call.Keywords[0].Value)
	assert.Equal(t, "Main", call.Keywords[1].Value.(*ast.Str).Value)
	assert.Equal(t, ast.Null, call.Keywords[2].Value.(*ast.NameConst).Value)
}

func TestParseOutChannels(t *testing.T) {
	body, err := Parse(`func q() {
	out(x, "count", "ids")
}`)
	require.NoError(t, err)
	call := body[0].(*ast.ExprStmt).X.(*ast.Call)
	require.Len(t, call.Args, 1)
	require.Len(t, call.Keywords, 2)
	assert.Equal(t, "count", call.Keywords[0].Arg)
	assert.Equal(t, "ids", call.Keywords[1].Arg)
}

func TestParseControlFlow(t *testing.T) {
	body, err := Parse(`func q() {
	for w := range ways {
		if w.length > 100 {
			out(w)
		} else {
			continue
		}
		break
	}
}`)
	require.NoError(t, err)
	loop := body[0].(*ast.For)
	assert.Equal(t, "w", loop.Target.ID)
	assert.Equal(t, "ways", loop.Iter.(*ast.Name).ID)
	require.Len(t, loop.Body, 2)

	cond := loop.Body[0].(*ast.If)
	cmp := cond.Cond.(*ast.Binary)
	assert.Equal(t, ast.Gt, cmp.Op)
	assert.Equal(t, "length", cmp.Left.(*ast.Attribute).Attr)
	require.Len(t, cond.Else, 1)
	assert.IsType(t, &ast.Continue{}, cond.Else[0])
	assert.IsType(t, &ast.Break{}, loop.Body[1])
}

func TestParseCond(t *testing.T) {
	body, err := Parse(`func q() {
	x = cond(a == 1, Node(1), Set())
}`)
	require.NoError(t, err)
	ce := body[0].(*ast.Assign).Value.(*ast.CondExpr)
	assert.Equal(t, ast.Eq, ce.Cond.(*ast.Binary).Op)
	assert.Equal(t, "Node", ce.Then.(*ast.Call).Fun.(*ast.Name).ID)
	assert.Equal(t, "Set", ce.Else.(*ast.Call).Fun.(*ast.Name).ID)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"no function", `package query; var x = 1`},
		{"reserved prefix", "func q() {\n\ttmpx := Node(1)\n}"},
		{"multi assign", "func q() {\n\tx, y := a, b\n}"},
		{"three-clause for", "func q() {\n\tfor i := 0; i < 3; i++ {\n\t}\n}"},
		{"go statement", "func q() {\n\tgo out(x)\n}"},
		{"bitwise operator", "func q() {\n\tx := a & b\n}"},
		{"cond arity", "func q() {\n\tx := cond(a, b)\n}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.src)
			assert.Error(t, err)
		})
	}
}
