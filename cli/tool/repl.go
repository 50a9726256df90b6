/*
 * RPAL
 *
 * Copyright 2020 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package tool

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"devt.de/krotik/rpal/config"
	"devt.de/krotik/rpal/util"
)

/*
RunREPL drops into a line-oriented read-eval-print loop backed by
chzyer/readline. Each line is standardized and run against a fresh
environment - RPAL has no cross-line session semantics, so carrying
state between lines would invent behavior the language doesn't define.
*/
func RunREPL(stdout, stderr io.Writer, logger util.Logger) int {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "rpal> ",
		HistoryFile:     "",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		Stdout:          stdout,
		Stderr:          stderr,
	})
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	defer rl.Close()

	fmt.Fprintf(stdout, "RPAL %v - type 'exit', 'quit' or Ctrl-D to leave\n", config.ProductVersion)

	opts := &Options{}

	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF on Ctrl-D, readline.ErrInterrupt on Ctrl-C
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}

		RunSource(opts, "console input", line, stdout, stderr, logger)
	}

	return 0
}
