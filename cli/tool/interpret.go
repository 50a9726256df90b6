/*
 * RPAL
 *
 * Copyright 2020 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

/*
Package tool implements the batch and interactive command line drivers
for the RPAL interpreter, modeled on ecal/cli/tool/interpret.go trimmed
to the operations spec.md section 6 names: no console symbol browser,
no debugger, no packer, no formatter - those are ECAL-specific.
*/
package tool

import (
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"strings"

	"devt.de/krotik/rpal/config"
	"devt.de/krotik/rpal/cse"
	"devt.de/krotik/rpal/parser"
	"devt.de/krotik/rpal/standardizer"
	"devt.de/krotik/rpal/util"
)

/*
Options holds the parsed command line flags.
*/
type Options struct {
	Echo        bool
	DumpAST     bool
	DumpST      bool
	Color       bool
	Interactive bool
	LogLevel    string
	File        string
}

/*
ParseArgs parses a command line argument vector (excluding argv[0])
into Options.
*/
func ParseArgs(args []string) (*Options, error) {
	fs := flag.NewFlagSet("rpal", flag.ContinueOnError)
	opts := &Options{}

	fs.BoolVar(&opts.Echo, "l", false, "echo the source file before processing it")
	fs.BoolVar(&opts.DumpAST, "ast", false, "print the abstract syntax tree and skip evaluation")
	fs.BoolVar(&opts.DumpST, "st", false, "print the standardized tree and skip evaluation")
	fs.BoolVar(&opts.Color, "color", config.Bool(config.ColorOutput), "render -ast/-st dumps as a pterm tree instead of plain dot-indented lines")
	fs.BoolVar(&opts.Interactive, "i", false, "start an interactive read-eval-print loop instead of reading a file")
	fs.StringVar(&opts.LogLevel, "loglevel", config.Str(config.LogLevel), "logging level (debug, info, error)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		opts.File = fs.Arg(0)
	}

	return opts, nil
}

/*
Run is the entry point used by cmd/rpal/main.go. It returns the process
exit code.
*/
func Run(args []string, stdout, stderr io.Writer) int {
	opts, err := ParseArgs(args)
	if err != nil {
		return 1
	}

	logger, err := util.NewLogLevelLogger(util.NewStdOutLogger(), opts.LogLevel)
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}

	if opts.Interactive {
		return RunREPL(stdout, stderr, logger)
	}

	if opts.File == "" {
		fmt.Fprintln(stderr, "Error: no input file given")
		return 1
	}

	source, err := ioutil.ReadFile(opts.File)
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}

	return RunSource(opts, opts.File, string(source), stdout, stderr, logger)
}

/*
RunSource parses, optionally dumps, and (unless -l, -ast or -st
suppresses it) evaluates one RPAL program. It is the shared core between batch
mode and each line of the interactive REPL.
*/
func RunSource(opts *Options, name, source string, stdout, stderr io.Writer, logger util.Logger) int {
	if opts.Echo {
		fmt.Fprintln(stdout, source)
		fmt.Fprintln(stdout)
	}

	logger.LogDebug("parsing ", name)
	ast, err := parser.Parse(name, source)
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}

	if opts.DumpAST {
		writeTree(stdout, ast, "Abstract syntax tree", opts.Color)
		fmt.Fprintln(stdout)
	}

	logger.LogDebug("standardizing ", name)
	st := standardizer.Standardize(ast)

	if opts.DumpST {
		writeTree(stdout, st, "Standardized tree", opts.Color)
		fmt.Fprintln(stdout)
	}

	// Per spec.md section 6, any of -l, -ast, -st suppresses evaluation.
	if opts.Echo || opts.DumpAST || opts.DumpST {
		return 0
	}

	logger.LogDebug("running ", name)
	cs := cse.Flatten(st)
	machine := cse.NewMachine(name, cs, stdout, logger)

	result, printed, err := machine.Run()
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}

	if !printed {
		fmt.Fprintln(stdout, cse.Format(result))
	}

	return 0
}

func writeTree(out io.Writer, root *parser.ASTNode, title string, color bool) {
	if color {
		writeColorTree(out, root, title)
		return
	}
	fmt.Fprintln(out, strings.TrimRight(parser.DumpPreorder(root), "\n"))
}
