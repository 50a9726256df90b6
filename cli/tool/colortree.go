/*
 * RPAL
 *
 * Copyright 2020 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package tool

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"

	"devt.de/krotik/rpal/parser"
)

/*
writeColorTree renders an AST/ST as a pterm tree, the -color
alternative to the plain dot-indented dump spec.md section 6 requires.
*/
func writeColorTree(out io.Writer, root *parser.ASTNode, title string) {
	fmt.Fprintln(out, title)

	node := astTreeNode(root)
	pterm.DefaultTree.WithRoot(node).WithWriter(out).Render()
}

func astTreeNode(n *parser.ASTNode) pterm.TreeNode {
	node := pterm.TreeNode{Text: n.Label}
	for _, c := range n.Children {
		node.Children = append(node.Children, astTreeNode(c))
	}
	return node
}
