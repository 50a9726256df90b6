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
Package config holds the interpreter's global tunables. There is
deliberately little here: the interpreter is single-threaded and
synchronous (spec.md section 5), so there is no worker pool or
concurrency knob to expose.
*/
package config

import (
	"fmt"
	"strconv"

	"devt.de/krotik/common/errorutil"
)

// Global variables
// ================

/*
ProductVersion is the current version of the interpreter.
*/
const ProductVersion = "1.0.0"

/*
Known configuration options.
*/
const (
	// LogLevel controls the verbosity of diagnostic logging (debug, info, error).
	LogLevel = "LogLevel"

	// MaxEnvironments is a diagnostic soft cap: once the environment array
	// grows past this size a warning is logged, since environments are
	// never reclaimed during a run (spec.md section 5). It never aborts
	// evaluation - it exists purely to flag runaway recursive programs
	// during development.
	MaxEnvironments = "MaxEnvironments"

	// ColorOutput is the default for the -color flag: whether -ast/-st
	// dumps render as a pterm tree instead of plain dot-indented lines.
	ColorOutput = "ColorOutput"
)

/*
DefaultConfig is the default configuration.
*/
var DefaultConfig = map[string]interface{}{
	LogLevel:        "error",
	MaxEnvironments: 100000,
	ColorOutput:     false,
}

/*
Config is the actual config which is used
*/
var Config map[string]interface{}

/*
Initialise the config
*/
func init() {
	data := make(map[string]interface{})
	for k, v := range DefaultConfig {
		data[k] = v
	}

	Config = data
}

// Helper functions
// ================

/*
Str reads a config value as a string value.
*/
func Str(key string) string {
	return fmt.Sprint(Config[key])
}

/*
Int reads a config value as an int value.
*/
func Int(key string) int {
	ret, err := strconv.ParseInt(fmt.Sprint(Config[key]), 10, 64)

	errorutil.AssertTrue(err == nil,
		fmt.Sprintf("Could not parse config key %v: %v", key, err))

	return int(ret)
}

/*
Bool reads a config value as a boolean value.
*/
func Bool(key string) bool {
	ret, err := strconv.ParseBool(fmt.Sprint(Config[key]))

	errorutil.AssertTrue(err == nil,
		fmt.Sprintf("Could not parse config key %v: %v", key, err))

	return ret
}
