/*
 * RPAL
 *
 * Copyright 2020 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package parser

import (
	"bytes"
	"fmt"

	"devt.de/krotik/common/stringutil"
)

/*
ASTNode models a node in the AST or, after standardization, the ST. The
Label is either a fixed tag ("let", "gamma", "lambda", ...) or a
bracketed atom ("<ID:x>", "<INT:5>", "<STR:'hi'>", "<true>", "<false>",
"<nil>", "<dummy>", "<Y*>"). This bracketed wire form is the same one
the reference implementation's preorder dumps use, and it survives
standardization unchanged - it is the stable form carried by leaf nodes
all the way into the CSE machine's control structures.
*/
type ASTNode struct {
	Label    string
	Token    *LexToken // Originating token, nil for constructed internal nodes
	Children []*ASTNode
}

/*
NewNode creates an internal (non-leaf) AST node.
*/
func NewNode(label string, children ...*ASTNode) *ASTNode {
	return &ASTNode{Label: label, Children: children}
}

/*
NewIdentifier creates a leaf node for an identifier.
*/
func NewIdentifier(tok *LexToken) *ASTNode {
	return &ASTNode{Label: fmt.Sprintf("<ID:%s>", tok.Val), Token: tok}
}

/*
NewInteger creates a leaf node for an integer literal.
*/
func NewInteger(tok *LexToken) *ASTNode {
	return &ASTNode{Label: fmt.Sprintf("<INT:%s>", tok.Val), Token: tok}
}

/*
NewString creates a leaf node for a string literal. The bracketed form
keeps the surrounding single quotes, matching the reference oracle.
*/
func NewString(tok *LexToken) *ASTNode {
	return &ASTNode{Label: fmt.Sprintf("<STR:'%s'>", tok.Val), Token: tok}
}

/*
NewConst creates a leaf node for one of the fixed constant tokens
(true, false, nil, dummy) or for the fixed-point combinator <Y*>.
*/
func NewConst(label string, tok *LexToken) *ASTNode {
	return &ASTNode{Label: label, Token: tok}
}

/*
IsLeafAtom reports whether this node is a bracketed atom leaf, i.e. it
carries no children by construction (identifiers, literals, constants).
*/
func (n *ASTNode) IsLeafAtom() bool {
	return len(n.Label) > 0 && n.Label[0] == '<'
}

/*
Line returns the source line of this node, or 0 if it has no token of its
own (constructed nodes inherit nothing - callers needing a line number
should look at a descendant).
*/
func (n *ASTNode) Line() int {
	if n.Token != nil {
		return n.Token.Line
	}
	return 0
}

/*
String renders a compact indented debug dump of the subtree rooted at n,
used by tests and error messages. For the stable, line-oriented dump
format required on the command line (flags -ast/-st) see DumpPreorder.
*/
func (n *ASTNode) String() string {
	var buf bytes.Buffer
	n.writeIndented(&buf, 0)
	return buf.String()
}

func (n *ASTNode) writeIndented(buf *bytes.Buffer, depth int) {
	buf.WriteString(stringutil.GenerateRollingString(" ", depth*2))
	buf.WriteString(n.Label)
	buf.WriteString("\n")
	for _, c := range n.Children {
		c.writeIndented(buf, depth+1)
	}
}

/*
DumpPreorder renders the subtree rooted at n in the preorder, dot-indented
form specified for the -ast and -st command line flags: one node per
line, with a prefix of "." repeated once per depth level (no separator
between the prefix and the label, and the root has no prefix).
*/
func DumpPreorder(n *ASTNode) string {
	var buf bytes.Buffer
	dumpPreorder(n, 0, &buf)
	return buf.String()
}

func dumpPreorder(n *ASTNode, depth int, buf *bytes.Buffer) {
	buf.WriteString(stringutil.GenerateRollingString(".", depth))
	buf.WriteString(n.Label)
	buf.WriteByte('\n')
	for _, c := range n.Children {
		dumpPreorder(c, depth+1, buf)
	}
}

/*
Equals compares two ASTNode trees structurally, ignoring token position
information. Used by the standardizer tests to compare against
expected trees built with NewNode/NewIdentifier and friends.
*/
func (n *ASTNode) Equals(other *ASTNode) (bool, string) {
	if n == nil || other == nil {
		if n == other {
			return true, ""
		}
		return false, "one side is nil"
	}

	if n.Label != other.Label {
		return false, fmt.Sprintf("label mismatch: %q vs %q", n.Label, other.Label)
	}

	if len(n.Children) != len(other.Children) {
		return false, fmt.Sprintf("%v: child count mismatch: %d vs %d",
			n.Label, len(n.Children), len(other.Children))
	}

	for i, c := range n.Children {
		if ok, msg := c.Equals(other.Children[i]); !ok {
			return false, fmt.Sprintf("%v > %v", n.Label, msg)
		}
	}

	return true, ""
}
