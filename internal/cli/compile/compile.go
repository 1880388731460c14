// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package compile implements the compile subcommand of the overpassify tool:
// translating query source files into OverpassQL scripts.
package compile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"flag"
	log "github.com/golang/glog"
	"github.com/google/subcommands"
	"github.com/mattn/go-isatty"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/LivInTheLookingGlass/overpassify"
	"github.com/LivInTheLookingGlass/overpassify/internal/errutil"
	"github.com/LivInTheLookingGlass/overpassify/internal/syncset"
)

// Cmd implements the compile subcommand of the overpassify tool.
type Cmd struct {
	output       string
	settingsFile string
	parallelJobs int
	stdout       bool
}

// Name implements subcommand.Command.
func (*Cmd) Name() string { return "compile" }

// Synopsis implements subcommand.Command.
func (*Cmd) Synopsis() string { return "Compile query source files to OverpassQL." }

// Usage implements subcommand.Command.
func (*Cmd) Usage() string {
	return `Usage: overpassify compile [-stdout] [-settings file.yaml] <file> [<file>...]

Each input file must contain a query function; the compiled script is written
next to it with the .overpassql extension, or to stdout with -stdout.

Command-line flag documentation follows:
`
}

// SetFlags implements subcommand.Command.
func (cmd *Cmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&cmd.output, "output_dir", "", "Directory to write compiled scripts to. Defaults to the directory of each input file.")
	f.StringVar(&cmd.settingsFile, "settings", "", "YAML file with key/value pairs emitted as [key:value] header lines.")
	f.IntVar(&cmd.parallelJobs, "parallel_jobs", 4, "Maximum number of files to compile concurrently.")
	f.BoolVar(&cmd.stdout, "stdout", false, "Write compiled scripts to stdout instead of files.")
}

// Execute implements subcommand.Command.
func (cmd *Cmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "compile: no input files")
		return subcommands.ExitUsageError
	}
	if err := cmd.compileAll(ctx, f.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "compile: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (cmd *Cmd) compileAll(ctx context.Context, targets []string) (err error) {
	defer errutil.Annotatef(&err, "compileAll(%s)", strings.Join(targets, ", "))
	header, err := settingsHeader(cmd.settingsFile)
	if err != nil {
		return err
	}
	progress := isatty.IsTerminal(os.Stderr.Fd()) && !cmd.stdout

	processed := syncset.New()
	eg, _ := errgroup.WithContext(ctx)
	eg.SetLimit(cmd.parallelJobs)
	for _, target := range targets {
		abs, err := filepath.Abs(target)
		if err != nil {
			return err
		}
		if !processed.Add(abs) {
			log.Infof("skipping %s: already processed", target)
			continue
		}
		eg.Go(func() error {
			if progress {
				fmt.Fprintf(os.Stderr, "compiling %s\n", target)
			}
			return cmd.compileOne(target, header)
		})
	}
	return eg.Wait()
}

func (cmd *Cmd) compileOne(path, header string) (err error) {
	defer errutil.Annotatef(&err, "compile(%s)", path)
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	script, err := overpassify.Overpassify(string(src))
	if err != nil {
		return err
	}
	script = header + script
	if cmd.stdout {
		_, err := fmt.Println(script)
		return err
	}
	out := strings.TrimSuffix(path, filepath.Ext(path)) + ".overpassql"
	if cmd.output != "" {
		out = filepath.Join(cmd.output, filepath.Base(out))
	}
	log.V(1).Infof("writing %s", out)
	return os.WriteFile(out, []byte(script+"\n"), 0o644)
}

// settingsHeader loads the YAML settings map and renders it as [key:value]
// header lines, keys sorted.
func settingsHeader(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	settings := map[string]string{}
	if err := yaml.Unmarshal(raw, &settings); err != nil {
		return "", fmt.Errorf("parsing %s: %v", path, err)
	}
	keys := maps.Keys(settings)
	slices.Sort(keys)
	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "[%s:%s]\n", k, settings[k])
	}
	return b.String(), nil
}

// Command returns an initialized Cmd for registration with the subcommands
// package.
func Command() *Cmd {
	return &Cmd{}
}
