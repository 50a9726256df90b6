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
	"fmt"
	"sort"
	"strconv"
	"strings"

	"devt.de/krotik/rpal/util"
)

/*
builtinNames is the set of identifiers that name a built-in procedure
rather than a bound program variable. An identifier is only looked up
in the environment once it fails this check (spec.md section 4.6).
*/
var builtinNames = map[string]bool{
	"Order":        true,
	"Print":        true,
	"print":        true,
	"Conc":         true,
	"Stern":        true,
	"Stem":         true,
	"Isinteger":    true,
	"Istruthvalue": true,
	"Isstring":     true,
	"Istuple":      true,
	"Isfunction":   true,
	"Isdummy":      true,
	"ItoS":         true,
}

/*
IsBuiltinName reports whether name refers to a built-in procedure.
*/
func IsBuiltinName(name string) bool {
	return builtinNames[name]
}

/*
applyBuiltin runs the named built-in with the given argument and pushes
its result. Conc is the one two-argument procedure; its first call
pushes a *ConcPartial rather than a result, and the gamma dispatch in
machine.go resolves the second call against it directly instead of the
reference implementation's trick of reaching past the current gamma
into the operand and control stacks.
*/
func (m *Machine) applyBuiltin(name string, arg Value) error {
	switch name {

	case "Order":
		t, ok := tupleOf(arg)
		if !ok {
			return m.runtimeError(util.ErrWrongType, "Order requires a tuple argument")
		}
		m.pushOperand(int64(len(t)))

	case "Print", "print":
		m.printUsed = true
		out := arg
		if s, ok := strOf(arg); ok {
			s = strings.ReplaceAll(s, `\n`, "\n")
			s = strings.ReplaceAll(s, `\t`, "\t")
			out = s
		}
		fmt.Fprint(m.out, Format(out))
		m.pushOperand(arg)

	case "Conc":
		s, ok := strOf(arg)
		if !ok {
			return m.runtimeError(util.ErrWrongType, "Conc requires a string argument")
		}
		m.pushOperand(&ConcPartial{A: s})

	case "Stern":
		s, ok := strOf(arg)
		if !ok || len(s) == 0 {
			return m.runtimeError(util.ErrWrongType, "Stern requires a non-empty string argument")
		}
		m.pushOperand(s[1:])

	case "Stem":
		s, ok := strOf(arg)
		if !ok || len(s) == 0 {
			return m.runtimeError(util.ErrWrongType, "Stem requires a non-empty string argument")
		}
		m.pushOperand(s[:1])

	case "Isinteger":
		_, ok := intOf(arg)
		m.pushOperand(ok)

	case "Istruthvalue":
		_, ok := boolOf(arg)
		m.pushOperand(ok)

	case "Isstring":
		_, ok := strOf(arg)
		m.pushOperand(ok)

	case "Istuple":
		_, ok := tupleOf(arg)
		m.pushOperand(ok)

	case "Isdummy":
		_, ok := arg.(Dummy)
		m.pushOperand(ok)

	case "Isfunction":
		// The reference implementation forgets to push a result here,
		// leaving Isfunction silently a no-op; a function predicate
		// that never answers is not useful, so this pushes true for
		// closures, etas, a partially applied Conc, builtin references
		// and Y*, false otherwise.
		switch arg.(type) {
		case *Closure, *Eta, *ConcPartial, BuiltinRef, YStar:
			m.pushOperand(true)
		default:
			m.pushOperand(false)
		}

	case "ItoS":
		i, ok := intOf(arg)
		if !ok {
			return m.runtimeError(util.ErrWrongType, "ItoS requires an integer argument")
		}
		m.pushOperand(strconv.FormatInt(i, 10))

	default:
		return m.runtimeError(util.ErrUnknownRator, name)
	}

	return nil
}

/*
builtinNameList returns the known built-in names sorted for diagnostic
output (e.g. "unbound identifier, did you mean one of: ..." hints).
*/
func builtinNameList() string {
	names := make([]string, 0, len(builtinNames))
	for n := range builtinNames {
		names = append(names, n)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
