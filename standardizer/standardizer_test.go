/*
 * RPAL
 *
 * Copyright 2020 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package standardizer

import (
	"testing"

	"devt.de/krotik/rpal/parser"
)

func id(name string) *parser.ASTNode {
	return &parser.ASTNode{Label: "<ID:" + name + ">"}
}

func integer(v string) *parser.ASTNode {
	return &parser.ASTNode{Label: "<INT:" + v + ">"}
}

func checkEqual(t *testing.T, got, want *parser.ASTNode) {
	t.Helper()
	if ok, msg := got.Equals(want); !ok {
		t.Errorf("Unexpected ST:\n%v\nexpected:\n%v\nmismatch: %v", got, want, msg)
	}
}

func TestStandardizeLet(t *testing.T) {
	// let(=(x,1), x) -> gamma(lambda(x,x), 1)
	root := parser.NewNode("let",
		parser.NewNode("=", id("x"), integer("1")),
		id("x"))

	got := Standardize(root)
	want := parser.NewNode("gamma",
		parser.NewNode("lambda", id("x"), id("x")),
		integer("1"))

	checkEqual(t, got, want)
}

func TestStandardizeWhere(t *testing.T) {
	// where(x, =(x,1)) -> gamma(lambda(x,x), 1)
	root := parser.NewNode("where",
		id("x"),
		parser.NewNode("=", id("x"), integer("1")))

	got := Standardize(root)
	want := parser.NewNode("gamma",
		parser.NewNode("lambda", id("x"), id("x")),
		integer("1"))

	checkEqual(t, got, want)
}

func TestStandardizeFunctionForm(t *testing.T) {
	// function_form(f, x, y, +(x,y)) -> =(f, lambda(x, lambda(y, +(x,y))))
	root := parser.NewNode("function_form",
		id("f"), id("x"), id("y"),
		parser.NewNode("+", id("x"), id("y")))

	got := Standardize(root)
	want := parser.NewNode("=", id("f"),
		parser.NewNode("lambda", id("x"),
			parser.NewNode("lambda", id("y"),
				parser.NewNode("+", id("x"), id("y")))))

	checkEqual(t, got, want)
}

func TestStandardizeGammaCurry(t *testing.T) {
	// gamma(f, x, y) -> gamma(gamma(f,x),y)
	root := parser.NewNode("gamma", id("f"), id("x"), id("y"))

	got := Standardize(root)
	want := parser.NewNode("gamma",
		parser.NewNode("gamma", id("f"), id("x")),
		id("y"))

	checkEqual(t, got, want)
}

func TestStandardizeLambdaCurry(t *testing.T) {
	// lambda(x, y, +(x,y)) -> lambda(x, lambda(y, +(x,y)))
	root := parser.NewNode("lambda", id("x"), id("y"),
		parser.NewNode("+", id("x"), id("y")))

	got := Standardize(root)
	want := parser.NewNode("lambda", id("x"),
		parser.NewNode("lambda", id("y"),
			parser.NewNode("+", id("x"), id("y"))))

	checkEqual(t, got, want)
}

func TestStandardizeWithin(t *testing.T) {
	// within(=(x1,e1), =(x2,e2)) -> =(x2, gamma(lambda(x1,e2), e1))
	root := parser.NewNode("within",
		parser.NewNode("=", id("x1"), id("e1")),
		parser.NewNode("=", id("x2"), id("e2")))

	got := Standardize(root)
	want := parser.NewNode("=", id("x2"),
		parser.NewNode("gamma",
			parser.NewNode("lambda", id("x1"), id("e2")),
			id("e1")))

	checkEqual(t, got, want)
}

func TestStandardizeAt(t *testing.T) {
	// @(e1, n, e2) -> gamma(gamma(n,e1), e2)
	root := parser.NewNode("@", id("e1"), id("n"), id("e2"))

	got := Standardize(root)
	want := parser.NewNode("gamma",
		parser.NewNode("gamma", id("n"), id("e1")),
		id("e2"))

	checkEqual(t, got, want)
}

func TestStandardizeAnd(t *testing.T) {
	// and(=(x1,e1), =(x2,e2)) -> =(,(x1,x2), tau(e1,e2))
	root := parser.NewNode("and",
		parser.NewNode("=", id("x1"), id("e1")),
		parser.NewNode("=", id("x2"), id("e2")))

	got := Standardize(root)
	want := parser.NewNode("=",
		parser.NewNode(",", id("x1"), id("x2")),
		parser.NewNode("tau", id("e1"), id("e2")))

	checkEqual(t, got, want)
}

func TestStandardizeRec(t *testing.T) {
	// rec(=(x,e)) -> =(x, gamma(<Y*>, lambda(x,e)))
	root := parser.NewNode("rec",
		parser.NewNode("=", id("x"), id("e")))

	got := Standardize(root)
	want := parser.NewNode("=", id("x"),
		parser.NewNode("gamma",
			&parser.ASTNode{Label: "<Y*>"},
			parser.NewNode("lambda", id("x"), id("e"))))

	checkEqual(t, got, want)
}

func TestStandardizeBottomUp(t *testing.T) {
	// let(=(x,1), let(=(y,x), y)) should have both lets rewritten
	root := parser.NewNode("let",
		parser.NewNode("=", id("x"), integer("1")),
		parser.NewNode("let",
			parser.NewNode("=", id("y"), id("x")),
			id("y")))

	got := Standardize(root)
	want := parser.NewNode("gamma",
		parser.NewNode("lambda", id("x"),
			parser.NewNode("gamma",
				parser.NewNode("lambda", id("y"), id("y")),
				id("x"))),
		integer("1"))

	checkEqual(t, got, want)
}

func TestStandardizeFromSource(t *testing.T) {
	ast, err := parser.Parse("test", `let rec f x = x within g y = y in f`)
	if err != nil {
		t.Fatal(err)
	}

	got := Standardize(ast)

	// let(within(rec(function_form(f,x,x)), function_form(g,y,y)), f)
	//
	// function_form(f,x,x)   -> =(f, lambda(x,x))
	// rec(=(f,lambda(x,x)))  -> =(f, gamma(<Y*>, lambda(f, lambda(x,x))))
	// function_form(g,y,y)   -> =(g, lambda(y,y))
	// within(=(f,...), =(g,lambda(y,y))) -> =(g, gamma(lambda(f, lambda(y,y)), gamma(<Y*>, lambda(f, lambda(x,x)))))
	// let(=(g,...), f) -> gamma(lambda(g, f), gamma(lambda(f, lambda(y,y)), gamma(<Y*>, lambda(f, lambda(x,x)))))

	innerRec := parser.NewNode("gamma",
		&parser.ASTNode{Label: "<Y*>"},
		parser.NewNode("lambda", id("f"), parser.NewNode("lambda", id("x"), id("x"))))

	within := parser.NewNode("gamma",
		parser.NewNode("lambda", id("f"), parser.NewNode("lambda", id("y"), id("y"))),
		innerRec)

	want := parser.NewNode("gamma",
		parser.NewNode("lambda", id("g"), id("f")),
		within)

	checkEqual(t, got, want)
}
