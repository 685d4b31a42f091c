package models

import "strings"

// NodeKind distinguishes directories from files in a scanned notes tree
type NodeKind string

const (
	NodeDir  NodeKind = "dir"
	NodeFile NodeKind = "file"
)

// TreeNode is one entry of a scanned notes directory.
// RelPath is slash-separated and relative to the notes root, without a "./" prefix.
// For files, Name is the base name without its extension.
type TreeNode struct {
	Kind     NodeKind
	Name     string
	RelPath  string
	Ext      string
	Children []*TreeNode
}

// IsDir reports whether the node is a directory
func (n *TreeNode) IsDir() bool {
	return n.Kind == NodeDir
}

// Segments returns the number of path segments in RelPath
func (n *TreeNode) Segments() int {
	if n.RelPath == "" {
		return 0
	}
	return strings.Count(n.RelPath, "/") + 1
}

// ParentPath returns the slash-separated path of the containing directory,
// or "" for entries directly under the notes root.
func (n *TreeNode) ParentPath() string {
	idx := strings.LastIndex(n.RelPath, "/")
	if idx < 0 {
		return ""
	}
	return n.RelPath[:idx]
}

// CountFiles returns the number of file nodes in the given subtree list
func CountFiles(nodes []*TreeNode) int {
	total := 0
	Walk(nodes, func(n *TreeNode) {
		if !n.IsDir() {
			total++
		}
	})
	return total
}

// Walk visits nodes depth-first in tree order, directories before their children.
func Walk(nodes []*TreeNode, fn func(n *TreeNode)) {
	for _, n := range nodes {
		fn(n)
		if n.IsDir() {
			Walk(n.Children, fn)
		}
	}
}
