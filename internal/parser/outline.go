package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/harrison/sidebarsync/internal/models"
)

// rawLinkRegex captures every inline link target as written, e.g. "./a b/c.md".
// Backslash-escaped brackets inside the label do not end it.
var rawLinkRegex = regexp.MustCompile(`\[(?:\\.|[^\\\]])*\]\(([^)]+)\)`)

var lineBreakRegex = regexp.MustCompile(`\r?\n`)

// OutlineOptions describes the anchor an outline is organized around
type OutlineOptions struct {
	Variant    models.Variant
	RootTitle  string
	RootLink   string
	TOCHeading string
	Indent     string
}

// AnchorLine returns the exact anchor line generated for these options
func (o OutlineOptions) AnchorLine() string {
	if o.Variant == models.VariantTOC {
		return strings.TrimSpace(o.TOCHeading)
	}
	return fmt.Sprintf("- [%s](%s)", o.RootTitle, o.RootLink)
}

// DefaultSkeleton is the outline text used when no outline file exists yet
func (o OutlineOptions) DefaultSkeleton() string {
	return o.AnchorLine() + "\n"
}

// OutlineParser turns outline text into a line-tagged models.Outline
type OutlineParser struct {
	markdown goldmark.Markdown
	opts     OutlineOptions
	anchorRe *regexp.Regexp
}

// NewOutlineParser creates a parser for the given anchor options
func NewOutlineParser(opts OutlineOptions) *OutlineParser {
	p := &OutlineParser{
		markdown: goldmark.New(),
		opts:     opts,
	}
	if opts.Variant != models.VariantTOC {
		p.anchorRe = regexp.MustCompile(`^\s*-\s*\[` + regexp.QuoteMeta(opts.RootTitle) +
			`\]\(` + regexp.QuoteMeta(opts.RootLink) + `\)\s*$`)
	}
	return p
}

// ParseString parses outline text. Malformed content never fails: unknown
// lines are kept verbatim as text lines.
func (p *OutlineParser) ParseString(content string) *models.Outline {
	raw := lineBreakRegex.Split(content, -1)
	for len(raw) > 0 && strings.TrimSpace(raw[len(raw)-1]) == "" {
		raw = raw[:len(raw)-1]
	}

	lines := make([]models.OutlineLine, 0, len(raw))
	for _, text := range raw {
		lines = append(lines, models.ClassifyLine(text, p.opts.Indent))
	}

	doc := models.NewOutline(lines, p.variant(), p.opts.Indent)

	for _, text := range raw {
		for _, m := range rawLinkRegex.FindAllStringSubmatch(text, -1) {
			doc.AddLink(m[1])
		}
	}
	for _, dest := range p.linkDestinations([]byte(content)) {
		doc.AddLink(dest)
	}

	doc.Anchor = p.locateAnchor(doc)
	if doc.Anchor < 0 {
		if p.variant() == models.VariantTOC && len(doc.Lines) > 0 {
			doc.Append("")
		}
		doc.Anchor = doc.Append(p.opts.AnchorLine())
		doc.AnchorCreated = true
	}

	return doc
}

func (p *OutlineParser) variant() models.Variant {
	if p.opts.Variant == "" {
		return models.VariantSidebar
	}
	return p.opts.Variant
}

// locateAnchor returns the index of the first anchor line, or -1
func (p *OutlineParser) locateAnchor(doc *models.Outline) int {
	want := strings.TrimSpace(p.opts.TOCHeading)
	for i, l := range doc.Lines {
		if p.anchorRe != nil {
			if p.anchorRe.MatchString(l.Text) {
				return i
			}
			continue
		}
		if l.Kind == models.LineHeading && strings.TrimSpace(l.Text) == want {
			return i
		}
	}
	return -1
}
