// Package merge splices entries for newly scanned files and directories into
// an existing outline. It only ever inserts lines: existing entries, manual
// edits and links to files that no longer exist are left untouched.
package merge

import (
	"strings"

	"github.com/harrison/sidebarsync/internal/models"
	"github.com/harrison/sidebarsync/internal/parser"
)

// Result summarizes what a merge added to the outline
type Result struct {
	// AddedDirs are the relative paths of directories that received a heading
	AddedDirs []string
	// AddedFiles are the relative paths of files that received a link line
	AddedFiles []string
	// Lines are the synthesized lines in insertion order
	Lines []string
	// Stale are link targets whose files no longer exist (filled by FindStale)
	Stale []string
}

// Added returns the number of headings and links inserted
func (r *Result) Added() int {
	return len(r.AddedDirs) + len(r.AddedFiles)
}

// Changed reports whether the outline buffer was modified
func (r *Result) Changed() bool {
	return r.Added() > 0
}

type engine struct {
	doc    *models.Outline
	base   int
	result *Result

	// file lines waiting for their directory headings, keyed by parent path
	pending      map[string][]models.OutlineLine
	pendingOrder []string
}

// Merge inserts every missing directory heading and file link for tree into
// doc. Directories are materialized first, in tree order; file links are
// collected per parent directory and spliced in at the end of that
// directory's block once all headings exist.
func Merge(tree []*models.TreeNode, doc *models.Outline) *Result {
	e := &engine{
		doc:     doc,
		base:    baseDepth(doc.Variant),
		result:  &Result{},
		pending: make(map[string][]models.OutlineLine),
	}

	e.walk(tree)
	e.flush()

	return e.result
}

// baseDepth is the depth of top-level entries: the sidebar nests them under
// the root item, the toc variant lists them directly under its heading.
func baseDepth(v models.Variant) int {
	if v == models.VariantTOC {
		return 0
	}
	return 1
}

func (e *engine) walk(nodes []*models.TreeNode) {
	for _, n := range nodes {
		if n.IsDir() {
			e.ensureHeading(n)
			e.walk(n.Children)
			continue
		}
		e.queueFile(n)
	}
}

// ensureHeading inserts "- <name>" for a directory unless its parent's block
// already has an item with that text at the right depth.
func (e *engine) ensureHeading(n *models.TreeNode) {
	if e.headingIndex(n.RelPath) >= 0 {
		return
	}

	at := e.doc.AnchorEnd()
	if parent := n.ParentPath(); parent != "" {
		if idx := e.headingIndex(parent); idx >= 0 {
			at = e.doc.BlockEnd(idx)
		}
	}

	depth := e.base + n.Segments() - 1
	text := strings.Repeat(e.doc.Unit, depth) + "- " + n.Name
	e.doc.Insert(at, models.ClassifyLine(text, e.doc.Unit))

	e.result.AddedDirs = append(e.result.AddedDirs, n.RelPath)
	e.result.Lines = append(e.result.Lines, text)
}

func (e *engine) queueFile(n *models.TreeNode) {
	raw := parser.LinkTarget(n.RelPath)
	escaped := parser.EscapeLinkPath(n.RelPath)
	if e.doc.HasLink(raw) || e.doc.HasLink(escaped) {
		return
	}

	depth := e.base + n.Segments() - 1
	text := strings.Repeat(e.doc.Unit, depth) + "- [" + parser.EscapeLinkLabel(n.Name) + "](" + escaped + ")"

	parent := n.ParentPath()
	if _, ok := e.pending[parent]; !ok {
		e.pendingOrder = append(e.pendingOrder, parent)
	}
	e.pending[parent] = append(e.pending[parent], models.ClassifyLine(text, e.doc.Unit))

	e.doc.AddLink(raw)
	e.doc.AddLink(escaped)
	e.result.AddedFiles = append(e.result.AddedFiles, n.RelPath)
	e.result.Lines = append(e.result.Lines, text)
}

// flush splices each pending batch at the end of its directory's block.
// Block ends are recomputed per batch, so earlier insertions never leave
// stale positions behind.
func (e *engine) flush() {
	for _, parent := range e.pendingOrder {
		at := e.doc.AnchorEnd()
		if parent != "" {
			if idx := e.headingIndex(parent); idx >= 0 {
				at = e.doc.BlockEnd(idx)
			}
		}
		e.doc.Insert(at, e.pending[parent]...)
	}
	e.pending = make(map[string][]models.OutlineLine)
	e.pendingOrder = nil
}

// headingIndex follows relPath segment by segment, each lookup scoped to the
// block of the previous heading. Top-level headings are looked up across the
// whole sidebar document, or within the anchor section for the toc variant.
// Returns -1 when any segment is missing.
func (e *engine) headingIndex(relPath string) int {
	from, to := 0, len(e.doc.Lines)
	if e.doc.Variant == models.VariantTOC && e.doc.Anchor >= 0 {
		from, to = e.doc.Anchor+1, e.doc.AnchorEnd()
	}

	idx := -1
	for k, seg := range strings.Split(relPath, "/") {
		idx = e.doc.FindItem(e.base+k, seg, from, to)
		if idx < 0 {
			return -1
		}
		from, to = idx+1, e.doc.BlockEnd(idx)
	}
	return idx
}
