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
	"bytes"
	"errors"
	"testing"

	"devt.de/krotik/rpal/parser"
	"devt.de/krotik/rpal/standardizer"
	"devt.de/krotik/rpal/util"
)

/*
runProgram parses, standardizes and runs an RPAL program, returning the
machine's formatted output stream and its final result.
*/
func runProgram(t *testing.T, source string) (string, Value, bool) {
	t.Helper()

	ast, err := parser.Parse("test", source)
	if err != nil {
		t.Fatalf("parse error for %q: %v", source, err)
	}
	st := standardizer.Standardize(ast)
	cs := Flatten(st)

	var out bytes.Buffer
	m := NewMachine("test", cs, &out, util.NewNullLogger())
	result, printed, err := m.Run()
	if err != nil {
		t.Fatalf("run error for %q: %v", source, err)
	}
	return out.String(), result, printed
}

func runProgramExpectError(t *testing.T, source string) error {
	t.Helper()

	ast, err := parser.Parse("test", source)
	if err != nil {
		t.Fatalf("parse error for %q: %v", source, err)
	}
	st := standardizer.Standardize(ast)
	cs := Flatten(st)

	var out bytes.Buffer
	m := NewMachine("test", cs, &out, util.NewNullLogger())
	_, _, err = m.Run()
	if err == nil {
		t.Fatalf("expected a runtime error for %q", source)
	}
	return err
}

func TestNestedLet(t *testing.T) {
	_, result, _ := runProgram(t, `let x = 1 in let y = x in y`)
	if result != int64(1) {
		t.Errorf("got %v, want 1", result)
	}
}

func TestPrintHello(t *testing.T) {
	out, _, printed := runProgram(t, `Print ('HELLO')`)
	if !printed {
		t.Error("expected printed=true")
	}
	if out != "HELLO" {
		t.Errorf("got output %q, want %q", out, "HELLO")
	}
}

func TestPrintEscapes(t *testing.T) {
	out, _, _ := runProgram(t, `Print ('a\nb\tc')`)
	if out != "a\nb\tc" {
		t.Errorf("got output %q, want escapes expanded", out)
	}
}

func TestRecursiveSum(t *testing.T) {
	src := `let rec sum n = n eq 0 -> 0 | n + sum (n - 1)
             in sum 5`
	_, result, _ := runProgram(t, src)
	if result != int64(15) {
		t.Errorf("got %v, want 15", result)
	}
}

func TestFactorialViaRec(t *testing.T) {
	src := `let rec fact n = n eq 0 -> 1 | n * fact (n - 1)
             in fact 5`
	_, result, _ := runProgram(t, src)
	if result != int64(120) {
		t.Errorf("got %v, want 120", result)
	}
}

func TestTupleIndexing(t *testing.T) {
	_, result, _ := runProgram(t, `let t = 1, 2, 3 in t 2`)
	if result != int64(2) {
		t.Errorf("got %v, want 2", result)
	}
}

func TestBooleanAnd(t *testing.T) {
	_, result, _ := runProgram(t, `true & false`)
	if result != false {
		t.Errorf("got %v, want false", result)
	}
}

func TestConcBuiltin(t *testing.T) {
	_, result, _ := runProgram(t, `Conc 'foo' 'bar'`)
	if result != "foobar" {
		t.Errorf("got %v, want foobar", result)
	}
}

func TestTupleParamDestructuring(t *testing.T) {
	_, result, _ := runProgram(t, `let f (a, b) = a + b in f (3, 4)`)
	if result != int64(7) {
		t.Errorf("got %v, want 7", result)
	}
}

func TestIsfunctionPredicate(t *testing.T) {
	_, result, _ := runProgram(t, `Isfunction (fn x . x)`)
	if result != true {
		t.Errorf("got %v, want true", result)
	}

	_, result, _ = runProgram(t, `Isfunction 1`)
	if result != false {
		t.Errorf("got %v, want false", result)
	}
}

func TestIsdummyPredicate(t *testing.T) {
	_, result, _ := runProgram(t, `Isdummy dummy`)
	if result != true {
		t.Errorf("got %v, want true", result)
	}
}

func TestOrderAndPredicates(t *testing.T) {
	_, result, _ := runProgram(t, `Order (1, 2, 3)`)
	if result != int64(3) {
		t.Errorf("got %v, want 3", result)
	}

	_, result, _ = runProgram(t, `Isinteger 5`)
	if result != true {
		t.Errorf("got %v, want true", result)
	}

	_, result, _ = runProgram(t, `Istuple (1, 2)`)
	if result != true {
		t.Errorf("got %v, want true", result)
	}
}

func TestSternStemAndItoS(t *testing.T) {
	_, result, _ := runProgram(t, `Stem 'hello'`)
	if result != "h" {
		t.Errorf("got %v, want h", result)
	}

	_, result, _ = runProgram(t, `Stern 'hello'`)
	if result != "ello" {
		t.Errorf("got %v, want ello", result)
	}

	_, result, _ = runProgram(t, `ItoS 42`)
	if result != "42" {
		t.Errorf("got %v, want 42", result)
	}
}

func TestWithinBinding(t *testing.T) {
	src := `let a = 1 within b = a + 1 in b`
	_, result, _ := runProgram(t, src)
	if result != int64(2) {
		t.Errorf("got %v, want 2", result)
	}
}

func TestAndSimultaneousBinding(t *testing.T) {
	src := `let a = 1 and b = 2 in a + b`
	_, result, _ := runProgram(t, src)
	if result != int64(3) {
		t.Errorf("got %v, want 3", result)
	}
}

func TestAnonymousFunctionApplication(t *testing.T) {
	_, result, _ := runProgram(t, `(fn x y . x + y) 3 4`)
	if result != int64(7) {
		t.Errorf("got %v, want 7", result)
	}
}

func TestConditionalExpression(t *testing.T) {
	_, result, _ := runProgram(t, `1 gr 2 -> 10 | 20`)
	if result != int64(20) {
		t.Errorf("got %v, want 20", result)
	}
}

func TestFormatTupleResult(t *testing.T) {
	_, result, _ := runProgram(t, `1, 2, 3`)
	if Format(result) != "(1, 2, 3)" {
		t.Errorf("got %q, want %q", Format(result), "(1, 2, 3)")
	}
}

func TestFormatSingletonTuple(t *testing.T) {
	tup := Tuple{int64(5)}
	if got := Format(tup); got != "(5)" {
		t.Errorf("got %q, want %q", got, "(5)")
	}
}

func TestUnboundIdentifierError(t *testing.T) {
	err := runProgramExpectError(t, `unbound_name`)
	if !errors.Is(err, util.ErrUnboundIdent) {
		t.Errorf("expected ErrUnboundIdent, got %v", err)
	}
}

func TestDivisionByZeroError(t *testing.T) {
	err := runProgramExpectError(t, `1 / 0`)
	if !errors.Is(err, util.ErrWrongType) {
		t.Errorf("expected ErrWrongType, got %v", err)
	}
}

func TestArityMismatchError(t *testing.T) {
	err := runProgramExpectError(t, `let f (a, b) = a + b in f 1`)
	if !errors.Is(err, util.ErrArityMismatch) {
		t.Errorf("expected ErrArityMismatch, got %v", err)
	}
}

func TestFloorDivisionRoundsTowardNegativeInfinity(t *testing.T) {
	_, result, _ := runProgram(t, `(0 - 7) / 2`)
	if result != int64(-4) {
		t.Errorf("got %v, want -4 (floor of -3.5)", result)
	}
}

func TestPowerOperator(t *testing.T) {
	_, result, _ := runProgram(t, `2 ** 10`)
	if result != int64(1024) {
		t.Errorf("got %v, want 1024", result)
	}
}

func TestStringEqualityComparison(t *testing.T) {
	_, result, _ := runProgram(t, `let s = 'done' in s eq 'done' -> 1 | 2`)
	if result != int64(1) {
		t.Errorf("got %v, want 1", result)
	}
}

func TestStringInequalityComparison(t *testing.T) {
	_, result, _ := runProgram(t, `'abc' ne 'xyz' -> 1 | 2`)
	if result != int64(1) {
		t.Errorf("got %v, want 1", result)
	}
}

func TestBooleanEqualityComparison(t *testing.T) {
	_, result, _ := runProgram(t, `true eq false -> 1 | 2`)
	if result != int64(2) {
		t.Errorf("got %v, want 2", result)
	}
}

func TestStringLexicographicOrdering(t *testing.T) {
	_, result, _ := runProgram(t, `'abc' ls 'abd' -> 1 | 2`)
	if result != int64(1) {
		t.Errorf("got %v, want 1", result)
	}
}

func TestMismatchedTypeComparisonIsWrongType(t *testing.T) {
	err := runProgramExpectError(t, `1 eq 'one'`)
	if !errors.Is(err, util.ErrWrongType) {
		t.Errorf("expected ErrWrongType, got %v", err)
	}
}
