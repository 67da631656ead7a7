package output

import (
	"sort"
	"strings"
)

const (
	// Tree characters
	treeEdge  = "├── "
	treeLast  = "└── "
	treeVert  = "│   "
	treeSpace = "    "

	// Description alignment column
	descriptionColumn = 30
)

// TreeNode represents a node in the scope tree.
type TreeNode struct {
	Name        string
	Description string
	IsScope     bool
	Children    []*TreeNode
}

// RenderTree renders a scope tree rooted at rootName, with per-node
// descriptions aligned at a fixed column. Scope nodes get a trailing slash.
func RenderTree(rootName string, root *TreeNode) string {
	if root == nil || len(root.Children) == 0 {
		return ""
	}

	display := &TreeNode{
		Name:     rootName,
		IsScope:  true,
		Children: root.Children,
	}
	sortTree(display)

	var sb strings.Builder
	renderNode(&sb, display, "", true, true)
	return sb.String()
}

// sortTree recursively sorts tree nodes (scopes first, then alphabetically).
func sortTree(node *TreeNode) {
	if len(node.Children) == 0 {
		return
	}

	sort.Slice(node.Children, func(i, j int) bool {
		if node.Children[i].IsScope != node.Children[j].IsScope {
			return node.Children[i].IsScope
		}
		return node.Children[i].Name < node.Children[j].Name
	})

	for _, child := range node.Children {
		sortTree(child)
	}
}

// renderNode recursively renders a tree node with proper indentation and styling.
func renderNode(sb *strings.Builder, node *TreeNode, prefix string, isRoot, isLast bool) {
	styles := GetStyles()

	if isRoot {
		name := node.Name + "/"
		sb.WriteString(styles.Bold.Render(name))
		sb.WriteString("\n")
	} else {
		connector := treeEdge
		if isLast {
			connector = treeLast
		}

		name := node.Name
		if node.IsScope {
			name += "/"
		}

		line := prefix + connector + name

		// Description aligned to a fixed column, muted.
		if node.Description != "" {
			padding := descriptionColumn - len(line)
			if padding < 2 {
				padding = 2
			}
			line += strings.Repeat(" ", padding)
			line += styles.Muted.Render(node.Description)
		}

		sb.WriteString(line)
		sb.WriteString("\n")
	}

	for i, child := range node.Children {
		childIsLast := i == len(node.Children)-1

		var childPrefix string
		if isRoot {
			childPrefix = ""
		} else {
			if isLast {
				childPrefix = prefix + treeSpace
			} else {
				childPrefix = prefix + treeVert
			}
		}

		renderNode(sb, child, childPrefix, false, childIsLast)
	}
}
