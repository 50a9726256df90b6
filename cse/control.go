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
	"strings"

	"devt.de/krotik/rpal/parser"
)

/*
Instr is one control instruction. Lambda, Delta, Tau and leaf atoms
carry their own descriptor type; every other control instruction
(operators, "gamma", "beta") is simply its ST label string.
*/
type Instr interface{}

/*
LambdaI is the control instruction emitted for a lambda node: it carries
the index of the control structure holding the lambda's body and the
names the body binds when applied.
*/
type LambdaI struct {
	Index int
	Bound []string
}

/*
DeltaI is the control instruction emitted for one arm ('->' then/else
branch) of a conditional.
*/
type DeltaI struct {
	Index int
}

/*
TauI is the control instruction that builds an n-tuple from the top n
values of the operand stack.
*/
type TauI struct {
	N int
}

/*
AtomI is the control instruction emitted for a leaf atom - an
identifier, literal or fixed constant (Rule 1). It carries the
originating source line so a lookup failure at this atom (an unbound
identifier, say) can report where in the program it happened.
*/
type AtomI struct {
	Label string
	Line  int
}

/*
ControlStructures is the indexed family of flat instruction sequences
produced by Flatten. Index 0 is the main program.
*/
type ControlStructures [][]Instr

/*
Flatten walks a Standardized Tree and produces its control-structure
family, per spec.md section 4.5. The tree must already be in ST form
(Standardize having run).
*/
func Flatten(root *parser.ASTNode) ControlStructures {
	cs := ControlStructures{}
	next := 1
	flattenInto(root, 0, &cs, &next)
	return cs
}

func ensureIndex(cs *ControlStructures, i int) {
	for len(*cs) <= i {
		*cs = append(*cs, nil)
	}
}

func flattenInto(n *parser.ASTNode, i int, cs *ControlStructures, next *int) {
	ensureIndex(cs, i)

	switch n.Label {

	case "lambda":
		k := *next
		*next++
		(*cs)[i] = append((*cs)[i], &LambdaI{Index: k, Bound: bindingNames(n.Children[0])})
		flattenInto(n.Children[1], k, cs, next)

	case "->":
		k1 := *next
		*next++
		(*cs)[i] = append((*cs)[i], &DeltaI{Index: k1})
		flattenInto(n.Children[1], k1, cs, next)

		k2 := *next
		*next++
		(*cs)[i] = append((*cs)[i], &DeltaI{Index: k2})
		flattenInto(n.Children[2], k2, cs, next)

		(*cs)[i] = append((*cs)[i], "beta")
		flattenInto(n.Children[0], i, cs, next)

	case "tau":
		(*cs)[i] = append((*cs)[i], &TauI{N: len(n.Children)})
		for _, c := range n.Children {
			flattenInto(c, i, cs, next)
		}

	default:
		if n.IsLeafAtom() {
			(*cs)[i] = append((*cs)[i], &AtomI{Label: n.Label, Line: n.Line()})
		} else {
			(*cs)[i] = append((*cs)[i], n.Label)
		}
		for _, c := range n.Children {
			flattenInto(c, i, cs, next)
		}
	}
}

/*
bindingNames extracts the parameter name(s) a lambda binder stands for:
a single identifier, a comma-node of identifiers (tuple destructuring),
or the nameless "()" binder (bound to a single throwaway name).
*/
func bindingNames(binder *parser.ASTNode) []string {
	if binder.Label == "," {
		names := make([]string, 0, len(binder.Children))
		for _, c := range binder.Children {
			names = append(names, identName(c.Label))
		}
		return names
	}
	if binder.Label == "()" {
		return []string{""}
	}
	return []string{identName(binder.Label)}
}

/*
identName strips the "<ID:...>" wrapper off an identifier leaf label.
*/
func identName(label string) string {
	if strings.HasPrefix(label, "<ID:") && strings.HasSuffix(label, ">") {
		return label[4 : len(label)-1]
	}
	return label
}
