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
	"errors"
	"strings"

	"devt.de/krotik/rpal/util"
)

/*
booleanOp evaluates a comparison, a logical connective or aug. a and b
arrive in rule 5's left/right order.
*/
func (m *Machine) booleanOp(op string, a, b Value) error {
	switch op {
	case "aug":
		return m.applyAug(a, b)
	case "or", "&":
		return m.applyLogical(op, a, b)
	}

	if op == "eq" || op == "ne" {
		eq, err := valuesEqual(a, b)
		if err != nil {
			return m.runtimeError(util.ErrWrongType, err.Error())
		}
		if op == "eq" {
			m.pushOperand(eq)
		} else {
			m.pushOperand(!eq)
		}
		return nil
	}

	if as, aok := strOf(a); aok {
		bs, bok := strOf(b)
		if !bok {
			return m.runtimeError(util.ErrWrongType, op+" requires operands of the same type")
		}
		return m.pushOrderingResult(op, strings.Compare(as, bs))
	}

	ai, aok := intOf(a)
	bi, bok := intOf(b)
	if !aok || !bok {
		return m.runtimeError(util.ErrWrongType, op+" requires integer or string operands")
	}

	switch {
	case ai < bi:
		return m.pushOrderingResult(op, -1)
	case ai > bi:
		return m.pushOrderingResult(op, 1)
	default:
		return m.pushOrderingResult(op, 0)
	}
}

/*
pushOrderingResult turns the sign of a three-way comparison into the
gr/ge/ls/le result for op.
*/
func (m *Machine) pushOrderingResult(op string, cmp int) error {
	switch op {
	case "gr":
		m.pushOperand(cmp > 0)
	case "ge":
		m.pushOperand(cmp >= 0)
	case "ls":
		m.pushOperand(cmp < 0)
	case "le":
		m.pushOperand(cmp <= 0)
	default:
		return m.runtimeError(util.ErrUnknownInstr, op)
	}
	return nil
}

/*
valuesEqual compares two equal-typed RPAL values for eq/ne, matching
the reference implementation's polymorphic "==" (csemachine.py's
built_in dispatch), which works on integers, strings and truth values
alike rather than restricting comparison to one type.
*/
func valuesEqual(a, b Value) (bool, error) {
	if ai, aok := intOf(a); aok {
		bi, bok := intOf(b)
		if !bok {
			return false, errors.New("eq/ne requires operands of the same type")
		}
		return ai == bi, nil
	}
	if as, aok := strOf(a); aok {
		bs, bok := strOf(b)
		if !bok {
			return false, errors.New("eq/ne requires operands of the same type")
		}
		return as == bs, nil
	}
	if ab, aok := boolOf(a); aok {
		bb, bok := boolOf(b)
		if !bok {
			return false, errors.New("eq/ne requires operands of the same type")
		}
		return ab == bb, nil
	}
	return false, errors.New("eq/ne requires integer, string or truth value operands")
}

func (m *Machine) applyLogical(op string, a, b Value) error {
	ab, ok1 := boolOf(a)
	bb, ok2 := boolOf(b)
	if !ok1 || !ok2 {
		return m.runtimeError(util.ErrWrongType, op+" requires boolean operands")
	}
	if op == "or" {
		m.pushOperand(ab || bb)
	} else {
		m.pushOperand(ab && bb)
	}
	return nil
}

/*
applyAug implements tuple augmentation: aug(t, x) appends x to t, or
concatenates two tuples when x is itself a tuple (spec.md section 9:
aug(aug(nil, a), b) equals the two-element tuple (a, b)).
*/
func (m *Machine) applyAug(a, b Value) error {
	at, ok := tupleOf(a)
	if !ok {
		return m.runtimeError(util.ErrWrongType, "aug's left operand must be a tuple")
	}
	if t, ok := tupleOf(b); ok {
		m.pushOperand(append(append(Tuple{}, at...), t...))
		return nil
	}
	m.pushOperand(append(append(Tuple{}, at...), b))
	return nil
}

/*
applyNot implements the "not" unary operator.
*/
func (m *Machine) applyNot(a Value) error {
	b, ok := boolOf(a)
	if !ok {
		return m.runtimeError(util.ErrWrongType, "not requires a boolean operand")
	}
	m.pushOperand(!b)
	return nil
}
