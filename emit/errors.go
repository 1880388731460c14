// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package emit

import "github.com/LivInTheLookingGlass/overpassify/ast"

// NameError reports a call to a name outside the recognized Overpass
// vocabulary.
type NameError struct {
	Name string
}

func (e *NameError) Error() string {
	return e.Name + " is not the name of a valid Overpass type"
}

// OperatorTypeError reports mixing a scalar and a set operand under + or -.
type OperatorTypeError struct {
	Msg string
}

func (e *OperatorTypeError) Error() string { return e.Msg }

// OperatorError reports an operator OverpassQL has no rendering for.
type OperatorError struct {
	Op ast.Op
}

func (e *OperatorError) Error() string {
	return "the " + e.Op.Token() + " operator is not supported by OverpassQL"
}

// ArityError reports a builtin or locator called with an unsupported number
// of positional arguments.
type ArityError struct {
	Msg string
}

func (e *ArityError) Error() string { return e.Msg }

// SyntaxError reports a construct the emitter cannot express, such as a
// for-each with an else clause.
type SyntaxError struct {
	Msg string
}

func (e *SyntaxError) Error() string { return e.Msg }
