package display

import (
	"github.com/disiqueira/gotree/v3"

	"github.com/harrison/sidebarsync/internal/models"
)

// MissingPrefix marks tree entries that the outline does not list yet
const MissingPrefix = "+ "

// RenderTree draws nodes below rootLabel as an ASCII tree. Nodes whose
// RelPath is in missing get MissingPrefix. Files are shown with their
// extension.
func RenderTree(rootLabel string, nodes []*models.TreeNode, missing map[string]bool) string {
	root := gotree.New(rootLabel)
	addNodes(root, nodes, missing)
	return root.Print()
}

func addNodes(parent gotree.Tree, nodes []*models.TreeNode, missing map[string]bool) {
	for _, n := range nodes {
		label := n.Name + n.Ext
		if n.IsDir() {
			label = n.Name + "/"
		}
		if missing[n.RelPath] {
			label = MissingPrefix + label
		}
		child := parent.Add(label)
		if n.IsDir() {
			addNodes(child, n.Children, missing)
		}
	}
}
