package merge

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/sidebarsync/internal/models"
	"github.com/harrison/sidebarsync/internal/parser"
)

func sidebarParser() *parser.OutlineParser {
	return parser.NewOutlineParser(parser.OutlineOptions{
		Variant:   models.VariantSidebar,
		RootTitle: "Notes",
		RootLink:  "./README.md",
		Indent:    "    ",
	})
}

func tocParser() *parser.OutlineParser {
	return parser.NewOutlineParser(parser.OutlineOptions{
		Variant:    models.VariantTOC,
		TOCHeading: "## 目录",
		Indent:     "    ",
	})
}

func file(rel string) *models.TreeNode {
	name := rel[strings.LastIndex(rel, "/")+1:]
	ext := ""
	if i := strings.LastIndex(name, "."); i > 0 {
		ext = name[i:]
		name = name[:i]
	}
	return &models.TreeNode{Kind: models.NodeFile, Name: name, RelPath: rel, Ext: ext}
}

func dir(rel string, children ...*models.TreeNode) *models.TreeNode {
	return &models.TreeNode{
		Kind:     models.NodeDir,
		Name:     rel[strings.LastIndex(rel, "/")+1:],
		RelPath:  rel,
		Children: children,
	}
}

func lines(text ...string) string {
	return strings.Join(text, "\n")
}

func TestMergeEmptyOutline(t *testing.T) {
	doc := sidebarParser().ParseString("")
	tree := []*models.TreeNode{
		dir("sub", file("sub/b.md")),
		file("a.md"),
	}

	result := Merge(tree, doc)

	assert.Equal(t, []string{
		"- [Notes](./README.md)",
		"    - sub",
		"        - [b](./sub/b.md)",
		"    - [a](./a.md)",
	}, doc.Strings())
	assert.Equal(t, []string{"sub"}, result.AddedDirs)
	assert.Equal(t, []string{"sub/b.md", "a.md"}, result.AddedFiles)
	assert.Equal(t, 3, result.Added())
	assert.True(t, result.Changed())
}

func TestMergeIsIdempotent(t *testing.T) {
	tree := []*models.TreeNode{
		dir("sub", dir("sub/deep", file("sub/deep/c.md")), file("sub/b.md")),
		file("a.md"),
		file("my note.md"),
		file("笔记.md"),
	}

	doc := sidebarParser().ParseString("")
	first := Merge(tree, doc)
	require.True(t, first.Changed())
	content := strings.Join(doc.Strings(), "\n")

	again := sidebarParser().ParseString(content)
	second := Merge(tree, again)

	assert.False(t, second.Changed())
	assert.Equal(t, 0, second.Added())
	assert.Equal(t, doc.Strings(), again.Strings())
}

func TestMergeIsIdempotentForMarkdownSignificantNames(t *testing.T) {
	names := []string{
		"my note",
		"a(1)",
		"[draft]",
		"a](b",
		"see [x](y)",
		"foo ",
		"trailing\t",
		"#tag",
		"- dash",
		"*star*",
		"笔记",
		"メモ 1",
	}
	parsers := map[string]func() *parser.OutlineParser{
		"sidebar": sidebarParser,
		"toc":     tocParser,
	}

	for variant, newParser := range parsers {
		for _, name := range names {
			t.Run(variant+"/"+name, func(t *testing.T) {
				tree := []*models.TreeNode{
					dir(name, file(name+"/n.md"), dir(name+"/"+name, file(name+"/"+name+"/"+name+".md"))),
					file(name + ".md"),
				}

				doc := newParser().ParseString("")
				first := Merge(tree, doc)
				require.Equal(t, 5, first.Added(), "first run adds two headings and three links")
				content := strings.Join(doc.Strings(), "\n") + "\n"

				again := newParser().ParseString(content)
				second := Merge(tree, again)

				assert.Empty(t, second.Lines, "second run must add nothing:\n%s", content)
				assert.Equal(t, doc.Strings(), again.Strings())
			})
		}
	}
}

func TestMergeEscapesLinkLabels(t *testing.T) {
	doc := sidebarParser().ParseString("")

	Merge([]*models.TreeNode{file("a](b.md"), file("[draft].md")}, doc)

	assert.Equal(t, []string{
		"- [Notes](./README.md)",
		`    - [a\](b](./a%5D%28b.md)`,
		`    - [\[draft\]](./%5Bdraft%5D.md)`,
	}, doc.Strings())
}

func TestMergeFindsHeadingsWrittenWithTrailingSpace(t *testing.T) {
	content := lines(
		"- [Notes](./README.md)",
		"    - foo ",
		"        - [n](./foo%20/n.md)",
		"    - see [x](y)",
	)
	doc := sidebarParser().ParseString(content)
	tree := []*models.TreeNode{
		dir("foo ", file("foo /n.md")),
		dir("see [x](y)", file("see [x](y)/m.md")),
	}

	result := Merge(tree, doc)

	assert.Empty(t, result.AddedDirs)
	assert.Equal(t, []string{"see [x](y)/m.md"}, result.AddedFiles)
	assert.Equal(t, "        - [m](./see%20%5Bx%5D%28y%29/m.md)", doc.Lines[4].Text)
}

func TestMergeOnlyInserts(t *testing.T) {
	content := lines(
		"# Handwritten title",
		"",
		"- [Notes](./README.md)",
		"    - [Custom label](./a.md)",
		"    - [Gone](./gone.md)",
		"",
		"Footer text",
	)
	doc := sidebarParser().ParseString(content)
	original := doc.Strings()

	Merge([]*models.TreeNode{file("a.md"), file("b.md")}, doc)

	got := doc.Strings()
	require.Len(t, got, len(original)+1)

	// every original line survives in order
	j := 0
	for _, l := range got {
		if j < len(original) && l == original[j] {
			j++
		}
	}
	assert.Equal(t, len(original), j)
	assert.Equal(t, "    - [b](./b.md)", got[5])
}

func TestMergeDepth(t *testing.T) {
	doc := sidebarParser().ParseString("")
	tree := []*models.TreeNode{
		dir("x", dir("x/y", file("x/y/z.md"))),
	}

	Merge(tree, doc)

	assert.Equal(t, []string{
		"- [Notes](./README.md)",
		"    - x",
		"        - y",
		"            - [z](./x/y/z.md)",
	}, doc.Strings())
}

func TestMergeNewFileInExistingDirectory(t *testing.T) {
	content := lines(
		"- [Notes](./README.md)",
		"    - sub",
		"        - [b](./sub/b.md)",
		"    - other",
		"        - [c](./other/c.md)",
	)
	doc := sidebarParser().ParseString(content)
	tree := []*models.TreeNode{
		dir("other", file("other/c.md")),
		dir("sub", file("sub/b.md"), file("sub/d.md")),
	}

	result := Merge(tree, doc)

	assert.Equal(t, []string{"sub/d.md"}, result.AddedFiles)
	assert.Empty(t, result.AddedDirs)
	assert.Equal(t, []string{
		"- [Notes](./README.md)",
		"    - sub",
		"        - [b](./sub/b.md)",
		"        - [d](./sub/d.md)",
		"    - other",
		"        - [c](./other/c.md)",
	}, doc.Strings())
}

func TestMergeNewSubdirectoryUnderExisting(t *testing.T) {
	content := lines(
		"- [Notes](./README.md)",
		"    - sub",
		"        - [b](./sub/b.md)",
		"    - [a](./a.md)",
	)
	doc := sidebarParser().ParseString(content)
	tree := []*models.TreeNode{
		dir("sub", dir("sub/deep", file("sub/deep/c.md")), file("sub/b.md")),
		file("a.md"),
	}

	result := Merge(tree, doc)

	assert.Equal(t, []string{"sub/deep"}, result.AddedDirs)
	assert.Equal(t, []string{
		"- [Notes](./README.md)",
		"    - sub",
		"        - [b](./sub/b.md)",
		"        - deep",
		"            - [c](./sub/deep/c.md)",
		"    - [a](./a.md)",
	}, doc.Strings())
}

func TestMergeSameNameUnderDifferentParents(t *testing.T) {
	content := lines(
		"- [Notes](./README.md)",
		"    - a",
		"        - x",
		"            - [f](./a/x/f.md)",
		"    - b",
	)
	doc := sidebarParser().ParseString(content)
	tree := []*models.TreeNode{
		dir("a", dir("a/x", file("a/x/f.md"))),
		dir("b", dir("b/x", file("b/x/g.md"))),
	}

	result := Merge(tree, doc)

	assert.Equal(t, []string{"b/x"}, result.AddedDirs)
	assert.Equal(t, []string{
		"- [Notes](./README.md)",
		"    - a",
		"        - x",
		"            - [f](./a/x/f.md)",
		"    - b",
		"        - x",
		"            - [g](./b/x/g.md)",
	}, doc.Strings())
}

func TestMergeEncodesTargets(t *testing.T) {
	doc := sidebarParser().ParseString("")
	tree := []*models.TreeNode{
		file("my note.md"),
		file("笔记.md"),
		file("a(1).md"),
	}

	Merge(tree, doc)

	assert.Equal(t, []string{
		"- [Notes](./README.md)",
		"    - [my note](./my%20note.md)",
		"    - [笔记](./笔记.md)",
		"    - [a(1)](./a%281%29.md)",
	}, doc.Strings())
}

func TestMergeRecognizesRawAndEncodedTargets(t *testing.T) {
	content := lines(
		"- [Notes](./README.md)",
		"    - [my note](./my note.md)",
		"    - [other](./other%20note.md)",
	)
	doc := sidebarParser().ParseString(content)

	result := Merge([]*models.TreeNode{file("my note.md"), file("other note.md")}, doc)

	assert.False(t, result.Changed())
}

func TestMergeLinkOutsideAnchorCounts(t *testing.T) {
	content := lines(
		"See [a](./a.md) for details.",
		"",
		"- [Notes](./README.md)",
	)
	doc := sidebarParser().ParseString(content)

	result := Merge([]*models.TreeNode{file("a.md")}, doc)

	assert.False(t, result.Changed())
}

func TestMergeAppendsMissingAnchor(t *testing.T) {
	doc := sidebarParser().ParseString("# Notes index\n")

	Merge([]*models.TreeNode{file("a.md")}, doc)

	assert.Equal(t, []string{
		"# Notes index",
		"- [Notes](./README.md)",
		"    - [a](./a.md)",
	}, doc.Strings())
}

func TestMergeTOCVariant(t *testing.T) {
	content := lines(
		"# Project",
		"",
		"## 目录",
		"- [a](./a.md)",
		"",
		"## License",
		"MIT",
	)
	doc := tocParser().ParseString(content)
	tree := []*models.TreeNode{
		dir("sub", file("sub/b.md")),
		file("a.md"),
		file("c.md"),
	}

	result := Merge(tree, doc)

	assert.Equal(t, []string{"sub"}, result.AddedDirs)
	assert.Equal(t, []string{
		"# Project",
		"",
		"## 目录",
		"- [a](./a.md)",
		"- sub",
		"    - [b](./sub/b.md)",
		"- [c](./c.md)",
		"",
		"## License",
		"MIT",
	}, doc.Strings())
}

func TestMergeTOCInsertsBeforeSubsections(t *testing.T) {
	content := lines(
		"## 目录",
		"- [a](./a.md)",
		"",
		"### Archive",
		"- [old](./old.md)",
		"",
		"## License",
	)
	doc := tocParser().ParseString(content)

	result := Merge([]*models.TreeNode{file("a.md"), file("b.md")}, doc)

	assert.Equal(t, []string{"b.md"}, result.AddedFiles)
	assert.Equal(t, []string{
		"## 目录",
		"- [a](./a.md)",
		"- [b](./b.md)",
		"",
		"### Archive",
		"- [old](./old.md)",
		"",
		"## License",
	}, doc.Strings())
}

func TestMergeTOCIgnoresItemsOutsideSection(t *testing.T) {
	content := lines(
		"- sub",
		"",
		"## 目录",
	)
	doc := tocParser().ParseString(content)

	result := Merge([]*models.TreeNode{dir("sub", file("sub/b.md"))}, doc)

	assert.Equal(t, []string{"sub"}, result.AddedDirs)
	assert.Equal(t, []string{
		"- sub",
		"",
		"## 目录",
		"- sub",
		"    - [b](./sub/b.md)",
	}, doc.Strings())
}

func TestMergeEmptyTree(t *testing.T) {
	doc := sidebarParser().ParseString("- [Notes](./README.md)\n")

	result := Merge(nil, doc)

	assert.False(t, result.Changed())
	assert.Equal(t, []string{"- [Notes](./README.md)"}, doc.Strings())
}
