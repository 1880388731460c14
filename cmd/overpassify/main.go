// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The program overpassify compiles query source files into OverpassQL
// scripts for the Overpass API.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"

	"flag"
	log "github.com/golang/glog"
	"github.com/google/subcommands"

	"github.com/LivInTheLookingGlass/overpassify/internal/cli/compile"
	"github.com/LivInTheLookingGlass/overpassify/internal/cli/version"
)

const groupOther = "working with this tool"

func main() {
	ctx := context.Background()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	// Prepend general documentation before the regular help output.
	defaultExplain := commander.Explain
	commander.Explain = func(w io.Writer) {
		fmt.Fprintf(w, "The overpassify tool compiles query source files into OverpassQL scripts.\n\n")
		defaultExplain(w)
	}

	// Comes last in the help output (alphabetically)
	commander.Register(commander.HelpCommand(), groupOther)
	commander.Register(commander.FlagsCommand(), groupOther)
	commander.Register(version.Command(), groupOther)

	// Comes first in the help output (alphabetically)
	const groupCompile = "compiling queries"
	commander.Register(compile.Command(), groupCompile)

	flag.Usage = func() {
		commander.HelpCommand().Execute(ctx, flag.CommandLine)
	}

	flag.Parse()

	code := int(commander.Execute(ctx))
	log.Flush()
	os.Exit(code)
}
