// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package emit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/LivInTheLookingGlass/overpassify/ast"
)

func expr(e ast.Expr) (string, error) {
	switch e := e.(type) {
	case *ast.Name:
		return "." + e.ID, nil
	case *ast.Attribute:
		x, err := expr(e.X)
		if err != nil {
			return "", err
		}
		return x + "." + e.Attr, nil
	case *ast.Num:
		return e.Lit, nil
	case *ast.Str:
		return `"` + e.Value + `"`, nil
	case *ast.NameConst:
		switch e.Value {
		case ast.True:
			return "true", nil
		case ast.False:
			return "false", nil
		}
		return "null", nil
	case *ast.EllipsisLit:
		return "...", nil
	case *ast.Subscript:
		x, err := expr(e.X)
		if err != nil {
			return "", err
		}
		index, err := expr(e.Index)
		if err != nil {
			return "", err
		}
		return strings.TrimPrefix(x, ".") + "[" + index + "]", nil
	case *ast.Binary:
		return binary(e)
	case *ast.Unary:
		x, err := expr(e.X)
		if err != nil {
			return "", err
		}
		return e.Op.Token() + x, nil
	case *ast.CondExpr:
		return "", &SyntaxError{Msg: "conditional expressions are only supported as the value of an assignment"}
	case *ast.Call:
		return call(e)
	}
	return "", fmt.Errorf("emit: unknown expression %T", e)
}

// binary dispatches on the operator. Addition and subtraction double as set
// union and difference; whether an operand is a scalar is decided by parsing
// the emitted fragment as a number, mirroring how Overpass itself sees the
// text.
func binary(e *ast.Binary) (string, error) {
	left, err := expr(e.Left)
	if err != nil {
		return "", err
	}
	right, err := expr(e.Right)
	if err != nil {
		return "", err
	}
	switch e.Op {
	case ast.Add:
		switch {
		case isNumeric(left) && isNumeric(right):
			return left + " + " + right, nil
		case !isNumeric(left) && !isNumeric(right):
			return "(" + left + "; " + right + ")", nil
		case isNumeric(left):
			return "", &OperatorTypeError{Msg: "You cannot add a number to a set"}
		default:
			return "", &OperatorTypeError{Msg: "You cannot add a set to a number"}
		}
	case ast.Sub:
		switch {
		case isNumeric(left) && isNumeric(right):
			return left + " - " + right, nil
		case !isNumeric(left) && !isNumeric(right):
			return "(" + left + "; - " + right + ")", nil
		case isNumeric(left):
			return "", &OperatorTypeError{Msg: "You cannot subtract a set from a number"}
		default:
			return "", &OperatorTypeError{Msg: "You cannot subtract a number from a set"}
		}
	case ast.Mult, ast.Div, ast.And, ast.Or, ast.Eq, ast.NotEq, ast.Lt, ast.LtE, ast.Gt, ast.GtE:
		return left + " " + e.Op.Token() + " " + right, nil
	}
	return "", &OperatorError{Op: e.Op}
}

func isNumeric(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
