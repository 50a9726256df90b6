/*
 * RPAL
 *
 * Copyright 2020 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package cse

import (
	"strconv"
	"strings"
)

/*
Format renders a final CSE result the way the reference implementation
prints it: booleans lowercase, strings unquoted, tuples recursively
formatted and comma-joined with the one-element case dropping its
trailing comma, residual closures via their String method.
*/
func Format(v Value) string {
	switch val := v.(type) {

	case bool:
		if val {
			return "true"
		}
		return "false"

	case int64:
		return strconv.FormatInt(val, 10)

	case string:
		return val

	case Tuple:
		parts := make([]string, len(val))
		for i, e := range val {
			parts[i] = Format(e)
		}
		return "(" + strings.Join(parts, ", ") + ")"

	case *Closure:
		return val.String()

	case *Eta:
		return (&Closure{Index: val.Index, Bound: val.Bound, Env: val.Env}).String()

	case BuiltinRef:
		return string(val)

	case Dummy:
		return "dummy"

	case YStar:
		return "Y*"
	}

	return ""
}
