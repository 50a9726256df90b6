/*
 * RPAL
 *
 * Copyright 2020 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package main

import (
	"os"

	"devt.de/krotik/rpal/cli/tool"
)

func main() {
	os.Exit(tool.Run(os.Args[1:], os.Stdout, os.Stderr))
}
