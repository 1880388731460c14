// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ast

// Contains reports whether body contains a statement of kind T. The scan
// descends into both branches of If statements; every other statement is
// inspected at a single level. Loop bodies are deliberately not entered: a
// break or continue inside a nested For belongs to that loop, not to the one
// under inspection.
func Contains[T Stmt](body []Stmt) bool {
	for _, s := range body {
		if _, ok := s.(T); ok {
			return true
		}
		if ifStmt, ok := s.(*If); ok {
			if Contains[T](ifStmt.Body) || Contains[T](ifStmt.Else) {
				return true
			}
		}
	}
	return false
}
