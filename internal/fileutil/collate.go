package fileutil

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/harrison/sidebarsync/internal/models"
)

// Collator orders names the way a Chinese reader expects (pinyin for Han
// characters, natural order for Latin text). It is not safe for concurrent use.
type Collator struct {
	c *collate.Collator
}

// NewCollator returns a collator for the Chinese locale
func NewCollator() *Collator {
	return &Collator{c: collate.New(language.Chinese)}
}

// Compare returns -1, 0 or 1 comparing a and b
func (c *Collator) Compare(a, b string) int {
	return c.c.CompareString(a, b)
}

// SortNodes sorts nodes by Name; equal names fall back to RelPath so the
// order is deterministic.
func (c *Collator) SortNodes(nodes []*models.TreeNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		if cmp := c.Compare(nodes[i].Name, nodes[j].Name); cmp != 0 {
			return cmp < 0
		}
		return nodes[i].RelPath < nodes[j].RelPath
	})
}
