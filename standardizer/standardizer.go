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
Package standardizer rewrites a parsed AST into the Standardized Tree
(ST) the CSE machine executes. The rewrite is a fixed set of algebraic
rules applied bottom-up: children are standardized first, then exactly
one rule - chosen by the node's own label - rewrites the node in place.
Because children are already in their final form by the time a parent
rule fires, a rule never needs to look further than its direct
children.
*/
package standardizer

import "devt.de/krotik/rpal/parser"

/*
Standardize rewrites root into its Standardized Tree in place and
returns it. root is consumed; callers should not continue to use the
original AST afterwards.
*/
func Standardize(root *parser.ASTNode) *parser.ASTNode {
	for _, c := range root.Children {
		Standardize(c)
	}

	switch root.Label {

	case "let":
		standardizeLet(root)

	case "where":
		standardizeWhere(root)

	case "function_form":
		standardizeFunctionForm(root)

	case "gamma":
		if len(root.Children) > 2 {
			curryLeftAssoc(root, "gamma")
		}

	case "lambda":
		if len(root.Children) > 2 {
			curryBinder(root)
		}

	case "within":
		standardizeWithin(root)

	case "@":
		standardizeAt(root)

	case "and":
		standardizeAnd(root)

	case "rec":
		standardizeRec(root)
	}

	return root
}

/*
let(=(X,E1), P) -> gamma(lambda(X,P), E1)
*/
func standardizeLet(root *parser.ASTNode) {
	assign := root.Children[0]
	if assign.Label != "=" {
		return
	}
	p := root.Children[1]
	x, e1 := assign.Children[0], assign.Children[1]

	lambda := parser.NewNode("lambda", x, p)
	*root = *parser.NewNode("gamma", lambda, e1)
}

/*
where(P, =(X,E1)) -> gamma(lambda(X,P), E1)
*/
func standardizeWhere(root *parser.ASTNode) {
	assign := root.Children[1]
	if assign.Label != "=" {
		return
	}
	p := root.Children[0]
	x, e1 := assign.Children[0], assign.Children[1]

	lambda := parser.NewNode("lambda", x, p)
	*root = *parser.NewNode("gamma", lambda, e1)
}

/*
function_form(F, V1..Vn, E) -> =(F, lambda(V1, lambda(V2, ... lambda(Vn, E))))
*/
func standardizeFunctionForm(root *parser.ASTNode) {
	n := len(root.Children)
	f := root.Children[0]
	params := root.Children[1 : n-1]
	e := root.Children[n-1]

	body := e
	for i := len(params) - 1; i >= 0; i-- {
		body = parser.NewNode("lambda", params[i], body)
	}

	*root = *parser.NewNode("=", f, body)
}

/*
curryLeftAssoc folds an n-ary node (n>2) with the given label into a
left-leaning chain of binary nodes of the same label:

	label(A, B, C, D) -> label(label(label(A,B),C),D)
*/
func curryLeftAssoc(root *parser.ASTNode, label string) {
	acc := parser.NewNode(label, root.Children[0], root.Children[1])
	for _, c := range root.Children[2:] {
		acc = parser.NewNode(label, acc, c)
	}
	*root = *acc
}

/*
curryBinder rewrites a raw multi-parameter lambda, produced directly by
"fn V1 V2 ... Vn . E", into nested single-parameter lambdas:

	lambda(V1,...,Vn,E) -> lambda(V1, lambda(V2, ... lambda(Vn, E)))

This mirrors the function_form curry rule above and restores the ST
invariant that every lambda has exactly two children; the AST produced
by the parser deliberately keeps the flat, uncurried shape so that the
-ast dump shows the parameters the way they were written.
*/
func curryBinder(root *parser.ASTNode) {
	n := len(root.Children)
	params := root.Children[:n-1]
	e := root.Children[n-1]

	body := e
	for i := len(params) - 1; i >= 0; i-- {
		body = parser.NewNode("lambda", params[i], body)
	}

	*root = *body
}

/*
within(=(X1,E1), =(X2,E2)) -> =(X2, gamma(lambda(X1,E2), E1))
*/
func standardizeWithin(root *parser.ASTNode) {
	a1, a2 := root.Children[0], root.Children[1]
	if a1.Label != "=" || a2.Label != "=" {
		return
	}
	x1, e1 := a1.Children[0], a1.Children[1]
	x2, e2 := a2.Children[0], a2.Children[1]

	lambda := parser.NewNode("lambda", x1, e2)
	gamma := parser.NewNode("gamma", lambda, e1)
	*root = *parser.NewNode("=", x2, gamma)
}

/*
@(E1, N, E2) -> gamma(gamma(N, E1), E2)
*/
func standardizeAt(root *parser.ASTNode) {
	e1, n, e2 := root.Children[0], root.Children[1], root.Children[2]
	inner := parser.NewNode("gamma", n, e1)
	*root = *parser.NewNode("gamma", inner, e2)
}

/*
and(=(X1,E1),...,=(Xn,En)) -> =(,(X1,...,Xn), tau(E1,...,En))
*/
func standardizeAnd(root *parser.ASTNode) {
	var xs, es []*parser.ASTNode
	for _, c := range root.Children {
		xs = append(xs, c.Children[0])
		es = append(es, c.Children[1])
	}
	*root = *parser.NewNode("=", parser.NewNode(",", xs...), parser.NewNode("tau", es...))
}

/*
rec(=(X,E)) -> =(X, gamma(<Y*>, lambda(X,E)))
*/
func standardizeRec(root *parser.ASTNode) {
	assign := root.Children[0]
	x, e := assign.Children[0], assign.Children[1]

	lambda := parser.NewNode("lambda", x, e)
	ystar := &parser.ASTNode{Label: "<Y*>"}
	gamma := parser.NewNode("gamma", ystar, lambda)
	*root = *parser.NewNode("=", x, gamma)
}
