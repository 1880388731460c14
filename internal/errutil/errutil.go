// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errutil provides utilities for easily annotating Go errors.
package errutil

import "fmt"

// Annotatef annotates a non-nil error with the given message.
//
// It's designed to be used in a defer, for example:
//
//	func compile(path string) (err error) {
//	   defer errutil.Annotatef(&err, "compile(%s)", path)
//	   return errors.New("my error")
//	}
//
// Calling compile("a.go") will result in the error message:
//
//	compile(a.go): my error
func Annotatef(err *error, format string, a ...any) {
	if *err != nil {
		*err = fmt.Errorf("%s: %v", fmt.Sprintf(format, a...), *err)
	}
}
