// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package emit

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/LivInTheLookingGlass/overpassify/ast"
)

// call classifies an invocation by the dotted name of its callee. Dotted
// names are object-style operations on a named set; bare names are the
// global builtins and the locator constructors.
func call(c *ast.Call) (string, error) {
	fn, err := expr(c.Fun)
	if err != nil {
		return "", err
	}
	name := strings.TrimPrefix(fn, ".")
	if strings.Contains(name, ".") {
		return objectCall(c, name)
	}
	switch name {
	case "noop":
		return "", nil
	case "Set":
		parts, err := exprList(c.Args)
		if err != nil {
			return "", err
		}
		return "(" + strings.Join(parts, "; ") + ")", nil
	case "Way", "Node", "Area", "Relation":
		return constructor(c, name)
	case "Regex", "NotRegex":
		if len(c.Args) != 1 {
			return "", &ArityError{Msg: name + " takes exactly 1 positional argument"}
		}
		arg, err := expr(c.Args[0])
		if err != nil {
			return "", err
		}
		return name + "(" + arg + ")", nil
	case "is_in":
		return isIn(c)
	case "Around":
		return around(c)
	case "out":
		return out(c)
	}
	return "", &NameError{Name: name}
}

func objectCall(c *ast.Call, name string) (string, error) {
	set, method, _ := strings.Cut(name, ".")
	switch method {
	case "intersect":
		// WaySet.intersect(a, b) selects the ways common to .a and .b.
		typ := strings.TrimSuffix(strings.ToLower(set), "set")
		parts, err := exprList(c.Args)
		if err != nil {
			return "", err
		}
		return typ + strings.Join(parts, ""), nil
	case "filter":
		if len(c.Args) != 1 {
			return "", &ArityError{Msg: name + " takes exactly 1 positional argument"}
		}
		arg, err := expr(c.Args[0])
		if err != nil {
			return "", err
		}
		return strings.ToLower(set) + arg, nil
	case "recurse_up":
		return "." + set + " <", nil
	case "recurse_down":
		return "." + set + " >", nil
	case "recurse_up_relations":
		return "." + set + " <<", nil
	case "recurse_down_relations":
		return "." + set + " >>", nil
	}
	return "", &NameError{Name: name}
}

// constructor emits a locator: a type name, the tag filters built from the
// keyword arguments, and at most one positional argument naming an id, an
// area set, or an around clause.
func constructor(c *ast.Call, name string) (string, error) {
	typ := strings.ToLower(name)
	var tags strings.Builder
	for _, kw := range c.Keywords {
		filter, err := tagFilter(kw)
		if err != nil {
			return "", err
		}
		tags.WriteString(filter)
	}
	switch len(c.Args) {
	case 0:
		return typ + tags.String(), nil
	case 1:
		arg, err := expr(c.Args[0])
		if err != nil {
			return "", err
		}
		switch {
		case strings.HasPrefix(arg, "around"):
			return fmt.Sprintf("%s%s(around%s)", typ, tags.String(), strings.TrimPrefix(arg, "around")), nil
		case isNumeric(arg):
			return fmt.Sprintf("%s%s(%s)", typ, tags.String(), arg), nil
		default:
			return fmt.Sprintf("%s%s(area%s)", typ, tags.String(), arg), nil
		}
	}
	return "", &ArityError{Msg: "Calls to locators do not support multiple positional arguments"}
}

// tagFilter builds one bracketed key/value predicate. Classification is on
// the value's node kind: null negates existence, ellipsis asks for existence
// only, Regex/NotRegex match by pattern, anything else by equality.
func tagFilter(kw *ast.Keyword) (string, error) {
	switch v := kw.Value.(type) {
	case *ast.NameConst:
		if v.Value == ast.Null {
			return fmt.Sprintf("[!%q]", kw.Arg), nil
		}
	case *ast.EllipsisLit:
		return fmt.Sprintf("[%q]", kw.Arg), nil
	case *ast.Str:
		return fmt.Sprintf("[%q=%q]", kw.Arg, v.Value), nil
	case *ast.Call:
		if fn, ok := v.Fun.(*ast.Name); ok && (fn.ID == "Regex" || fn.ID == "NotRegex") {
			pattern, err := expr(v.Args[0])
			if err != nil {
				return "", err
			}
			op := "~"
			if fn.ID == "NotRegex" {
				op = "!~"
			}
			return fmt.Sprintf("[%q%s%s]", kw.Arg, op, pattern), nil
		}
	}
	value, err := expr(kw.Value)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("[%q=%q]", kw.Arg, value), nil
}

func isIn(c *ast.Call) (string, error) {
	args, err := exprList(c.Args)
	if err != nil {
		return "", err
	}
	switch len(args) {
	case 0:
		return "is_in", nil
	case 1:
		return args[0] + " is_in", nil
	case 2:
		return fmt.Sprintf("is_in(%s, %s)", args[0], args[1]), nil
	}
	return "", &ArityError{Msg: "is_in supports at most 2 positional arguments"}
}

func around(c *ast.Call) (string, error) {
	args, err := exprList(c.Args)
	if err != nil {
		return "", err
	}
	switch len(args) {
	case 1:
		return "around:" + args[0], nil
	case 2:
		return fmt.Sprintf("around%s:%s", args[0], args[1]), nil
	case 3:
		return fmt.Sprintf("around:%s,%s,%s", args[0], args[1], args[2]), nil
	}
	return "", &ArityError{Msg: "Around takes 1 to 3 positional arguments"}
}

// out emits an out statement listing the requested channels, space-joined.
// Channel names come from the keyword names; values are ignored. A count
// channel gets its own statement, first.
func out(c *ast.Call) (string, error) {
	element := "._"
	if len(c.Args) > 0 {
		var err error
		element, err = expr(c.Args[0])
		if err != nil {
			return "", err
		}
	}
	var channels []string
	for _, kw := range c.Keywords {
		if !slices.Contains(channels, kw.Arg) {
			channels = append(channels, kw.Arg)
		}
	}
	var b strings.Builder
	if i := slices.Index(channels, "count"); i >= 0 {
		b.WriteString(element + " out count;\n")
		channels = slices.Delete(channels, i, i+1)
		if len(channels) == 0 {
			return b.String(), nil
		}
	}
	fmt.Fprintf(&b, "%s out %s;", element, strings.Join(channels, " "))
	return b.String(), nil
}

func exprList(args []ast.Expr) ([]string, error) {
	out := make([]string, 0, len(args))
	for _, a := range args {
		frag, err := expr(a)
		if err != nil {
			return nil, err
		}
		out = append(out, frag)
	}
	return out, nil
}
