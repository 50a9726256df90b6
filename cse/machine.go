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
Package cse implements the Control-Stack-Environment abstract machine
that evaluates a Standardized Tree: control-structure flattening
(control.go), the environment array (environment.go), runtime values
(value.go), the thirteen numbered reduction rules (this file), the
built-in procedures (builtins.go) and the result formatter (format.go).
*/
package cse

import (
	"fmt"
	"io"
	"strings"

	"devt.de/krotik/common/errorutil"

	"devt.de/krotik/rpal/config"
	"devt.de/krotik/rpal/util"
)

var binaryOps = map[string]bool{
	"+": true, "-": true, "*": true, "/": true, "**": true,
	"gr": true, "ge": true, "ls": true, "le": true, "eq": true, "ne": true,
	"or": true, "&": true, "aug": true,
}

var unaryOps = map[string]bool{"not": true, "neg": true}

/*
Machine is one run of the CSE abstract machine over a fixed family of
control structures.
*/
type Machine struct {
	source  string
	cs      ControlStructures
	control []Instr
	operand []Value
	envs    *environments
	cur     int
	curLine int
	logger  util.Logger

	printUsed bool
	out       io.Writer
}

/*
NewMachine creates a machine ready to run the given control structures.
out receives the output of the Print/print built-in; logger receives
diagnostics (an environment-count warning if the soft cap in the
MaxEnvironments config key is exceeded).
*/
func NewMachine(source string, cs ControlStructures, out io.Writer, logger util.Logger) *Machine {
	if logger == nil {
		logger = util.NewNullLogger()
	}
	return &Machine{
		source: source,
		cs:     cs,
		envs:   newEnvironments(),
		out:    out,
		logger: logger,
	}
}

/*
Run executes the machine to completion and returns the final value on
the operand stack together with whether the Print/print built-in was
used during the run (the caller needs this to decide whether to print
the result itself: the CLI prints it only when Print was not used).
*/
func (m *Machine) Run() (Value, bool, error) {
	m.control = append(m.control, EnvMarker(0))
	m.control = append(m.control, m.cs[0]...)
	m.operand = append(m.operand, EnvMarker(0))

	for len(m.control) > 0 {
		instr := m.popControl()
		if err := m.step(instr); err != nil {
			return nil, m.printUsed, err
		}
	}

	if len(m.operand) == 0 {
		return nil, m.printUsed, m.runtimeError(util.ErrStackUnderflow, "operand stack empty at halt")
	}

	return m.operand[len(m.operand)-1], m.printUsed, nil
}

func (m *Machine) step(instr Instr) error {
	switch v := instr.(type) {

	case *LambdaI:
		// Rule 2
		m.pushOperand(&Closure{Index: v.Index, Bound: v.Bound, Env: m.cur})

	case *DeltaI:
		// Delta descriptors are only ever consumed directly by beta's
		// own popDeltaControl calls (see applyBeta); one reaching the
		// main dispatch loop means a Delta went missing under a beta.
		return m.runtimeError(util.ErrUnknownInstr, "stray Delta descriptor outside beta")

	case *AtomI:
		// Rule 1
		m.curLine = v.Line
		val, err := m.lookup(v.Label)
		if err != nil {
			return err
		}
		m.pushOperand(val)

	case *TauI:
		// Rule 9 - the Tau instruction is appended before its children
		// (see control.go), so the control stack pops the children last
		// element first and their values are pushed in reverse source
		// order; the first element's value ends up on top, and popping
		// N operands yields the elements in source order.
		t := make(Tuple, v.N)
		for i := 0; i < v.N; i++ {
			val, err := m.popOperand()
			if err != nil {
				return err
			}
			t[i] = val
		}
		m.pushOperand(t)

	case EnvMarker:
		return m.popEnvironmentMarker()

	case string:
		return m.stepString(v)

	default:
		return m.runtimeError(util.ErrUnknownInstr, fmt.Sprintf("%T", instr))
	}

	return nil
}

func (m *Machine) stepString(label string) error {
	switch {

	case label == "gamma":
		return m.applyGamma()

	case label == "beta":
		return m.applyBeta()

	case binaryOps[label]:
		return m.applyBinary(label)

	case unaryOps[label]:
		return m.applyUnary(label)
	}

	return m.runtimeError(util.ErrUnknownInstr, label)
}

// Rule 1
// ======

func (m *Machine) lookup(label string) (Value, error) {
	inner := label[1 : len(label)-1]

	switch {
	case inner == "true":
		return true, nil
	case inner == "false":
		return false, nil
	case inner == "nil":
		return Tuple{}, nil
	case inner == "dummy":
		return Dummy{}, nil
	case inner == "Y*":
		return YStar{}, nil
	}

	parts := strings.SplitN(inner, ":", 2)
	if len(parts) != 2 {
		return nil, m.runtimeError(util.ErrUnknownInstr, label)
	}
	kind, val := parts[0], parts[1]

	switch kind {
	case "INT":
		var n int64
		if _, err := fmt.Sscanf(val, "%d", &n); err != nil {
			return nil, m.runtimeError(util.ErrWrongType, fmt.Sprintf("malformed integer literal %q", val))
		}
		return n, nil

	case "STR":
		return strings.Trim(val, "'"), nil

	case "ID":
		if IsBuiltinName(val) {
			return BuiltinRef(val), nil
		}
		v, ok := m.envs.lookup(m.cur, val)
		if !ok {
			return nil, m.runtimeError(util.ErrUnboundIdent,
				fmt.Sprintf("%s (did you mean one of: %s)", val, builtinNameList()))
		}
		return v, nil
	}

	return nil, m.runtimeError(util.ErrUnknownInstr, label)
}

// Rule 3: gamma
// =============

func (m *Machine) applyGamma() error {
	rator, err := m.popOperand()
	if err != nil {
		return err
	}
	rand, err := m.popOperand()
	if err != nil {
		return err
	}

	switch r := rator.(type) {

	case *Closure:
		return m.applyClosure(r, rand)

	case Tuple:
		idx, ok := intOf(rand)
		if !ok {
			return m.runtimeError(util.ErrWrongType, "tuple index must be an integer")
		}
		if idx < 1 || int(idx) > len(r) {
			return m.runtimeError(util.ErrWrongType, "tuple index out of range")
		}
		m.pushOperand(r[idx-1])
		return nil

	case YStar:
		c, ok := rand.(*Closure)
		if !ok {
			return m.runtimeError(util.ErrWrongType, "Y* can only be applied to a closure")
		}
		m.pushOperand(&Eta{Index: c.Index, Bound: c.Bound, Env: c.Env})
		return nil

	case *Eta:
		lambda := &Closure{Index: r.Index, Bound: r.Bound, Env: r.Env}
		m.pushControl("gamma")
		m.pushControl("gamma")
		m.pushOperand(rand)
		m.pushOperand(r)
		m.pushOperand(lambda)
		return nil

	case *ConcPartial:
		b, ok := strOf(rand)
		if !ok {
			return m.runtimeError(util.ErrWrongType, "Conc's second argument must be a string")
		}
		m.pushOperand(r.A + b)
		return nil

	case BuiltinRef:
		return m.applyBuiltin(string(r), rand)
	}

	return m.runtimeError(util.ErrUnknownRator, fmt.Sprintf("%T", rator))
}

func (m *Machine) applyClosure(c *Closure, rand Value) error {
	errorutil.AssertTrue(c.Index < len(m.cs),
		fmt.Sprintf("closure references control structure %d out of %d", c.Index, len(m.cs)))

	idx := m.envs.new(c.Env)
	m.cur = idx

	if len(c.Bound) > 1 {
		t, ok := tupleOf(rand)
		if !ok || len(t) != len(c.Bound) {
			return m.runtimeError(util.ErrArityMismatch,
				fmt.Sprintf("expected a %d-tuple argument", len(c.Bound)))
		}
		for i, name := range c.Bound {
			m.envs.bind(idx, name, t[i])
		}
	} else {
		m.envs.bind(idx, c.Bound[0], rand)
	}

	if max := config.Int(config.MaxEnvironments); m.envs.count() > max {
		m.logger.LogError(fmt.Sprintf("environment count %d exceeds MaxEnvironments=%d", m.envs.count(), max))
	}

	marker := EnvMarker(idx)
	m.pushOperand(marker)
	m.pushControl(marker)
	m.pushControl(m.cs[c.Index]...)
	return nil
}

// Rule 4: environment marker popped from control
// ===============================================

func (m *Machine) popEnvironmentMarker() error {
	result, err := m.popOperand()
	if err != nil {
		return err
	}
	if _, err := m.popOperand(); err != nil { // the matching e_k marker
		return err
	}

	if m.cur != 0 {
		m.cur = 0
		for i := len(m.operand) - 1; i >= 0; i-- {
			if marker, ok := m.operand[i].(EnvMarker); ok {
				m.cur = int(marker)
				break
			}
		}
	}

	m.pushOperand(result)
	return nil
}

// Rule 5: binary operators
// =========================

/*
applyBinary dispatches a binary operator over the top two operand-stack
values. Arithmetic is handled by rt_arithmetic.go, comparisons/logical
operators/aug by rt_boolean.go - the same split the teacher keeps
between rt_arithmetic.go and rt_boolean.go, minus the per-node Runtime
object wrapping, which has no equivalent once the tree has been
flattened into control structures.
*/
func (m *Machine) applyBinary(op string) error {
	a, err := m.popOperand()
	if err != nil {
		return err
	}
	b, err := m.popOperand()
	if err != nil {
		return err
	}

	if arithmeticOps[op] {
		return m.arithmeticOp(op, a, b)
	}
	return m.booleanOp(op, a, b)
}

// Rule 6: unary operators
// ========================

func (m *Machine) applyUnary(op string) error {
	a, err := m.popOperand()
	if err != nil {
		return err
	}

	if op == "neg" {
		i, ok := intOf(a)
		if !ok {
			return m.runtimeError(util.ErrWrongType, "neg requires an integer operand")
		}
		m.pushOperand(-i)
		return nil
	}

	return m.applyNot(a)
}

// Rule 7: beta
// ============

func (m *Machine) applyBeta() error {
	cond, err := m.popOperand()
	if err != nil {
		return err
	}
	b, ok := boolOf(cond)
	if !ok {
		return m.runtimeError(util.ErrWrongType, "-> condition must be a boolean")
	}

	elseDelta, err := m.popDeltaControl()
	if err != nil {
		return err
	}
	thenDelta, err := m.popDeltaControl()
	if err != nil {
		return err
	}

	if b {
		m.pushControl(m.cs[thenDelta.Index]...)
	} else {
		m.pushControl(m.cs[elseDelta.Index]...)
	}
	return nil
}

func (m *Machine) popDeltaControl() (*DeltaI, error) {
	instr := m.popControl()
	d, ok := instr.(*DeltaI)
	if !ok {
		return nil, m.runtimeError(util.ErrUnknownInstr, "expected a Delta descriptor before beta")
	}
	return d, nil
}

// Stack helpers
// =============

func (m *Machine) pushControl(instrs ...Instr) {
	m.control = append(m.control, instrs...)
}

func (m *Machine) popControl() Instr {
	n := len(m.control) - 1
	v := m.control[n]
	m.control = m.control[:n]
	return v
}

func (m *Machine) pushOperand(v Value) {
	m.operand = append(m.operand, v)
}

func (m *Machine) popOperand() (Value, error) {
	if len(m.operand) == 0 {
		return nil, m.runtimeError(util.ErrStackUnderflow, "operand stack is empty")
	}
	n := len(m.operand) - 1
	v := m.operand[n]
	m.operand = m.operand[:n]
	return v, nil
}

func (m *Machine) runtimeError(t error, detail string) error {
	return util.NewRuntimeError(m.source, t, detail, m.curLine)
}
