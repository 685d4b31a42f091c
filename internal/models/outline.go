package models

import (
	"regexp"
	"sort"
	"strings"
)

// Variant selects where generated entries live inside the outline
type Variant string

const (
	// VariantSidebar anchors entries under a root list item, e.g. "- [Notes](./README.md)"
	VariantSidebar Variant = "sidebar"
	// VariantTOC anchors entries under a fixed markdown heading
	VariantTOC Variant = "toc"
)

// LineKind tags each outline line once at parse time
type LineKind int

const (
	LineBlank LineKind = iota
	LineText
	LineHeading
	LineItem
	LineLink
)

var (
	itemMarkerRegex = regexp.MustCompile(`^[-*+]\s+`)
	headingRegex    = regexp.MustCompile(`^(#{1,6})(\s+|$)`)
	inlineLinkRegex = regexp.MustCompile(`\[((?:\\.|[^\\\]])*)\]\(([^)]+)\)`)
)

// OutlineLine is a single line of the outline together with its structural tag.
// Depth is Indent divided by the indent unit, or -1 when the leading whitespace
// is not a whole number of units. Item is the text after the list marker with
// trailing whitespace removed, set for both item kinds.
type OutlineLine struct {
	Text   string
	Kind   LineKind
	Indent int
	Depth  int
	Level  int
	Label  string
	Target string
	Item   string
}

// IsListItem reports whether the line is a list item, with or without a link
func (l OutlineLine) IsListItem() bool {
	return l.Kind == LineItem || l.Kind == LineLink
}

// ClassifyLine tags a raw line using the given indent unit
func ClassifyLine(text string, unit string) OutlineLine {
	line := OutlineLine{Text: text, Depth: -1}

	body := strings.TrimLeft(text, " \t")
	leading := text[:len(text)-len(body)]
	line.Indent = len(leading)
	if unit != "" && len(leading)%len(unit) == 0 && leading == strings.Repeat(unit, len(leading)/len(unit)) {
		line.Depth = len(leading) / len(unit)
	}

	if strings.TrimSpace(body) == "" {
		line.Kind = LineBlank
		return line
	}

	if m := headingRegex.FindStringSubmatch(body); m != nil {
		line.Kind = LineHeading
		line.Level = len(m[1])
		line.Label = strings.TrimSpace(body[len(m[0]):])
		return line
	}

	if loc := itemMarkerRegex.FindStringIndex(body); loc != nil {
		line.Item = strings.TrimRight(body[loc[1]:], " \t")
		content := strings.TrimSpace(line.Item)
		if m := inlineLinkRegex.FindStringSubmatch(content); m != nil {
			line.Kind = LineLink
			line.Label = m[1]
			line.Target = m[2]
			return line
		}
		line.Kind = LineItem
		line.Label = content
		return line
	}

	line.Kind = LineText
	return line
}

// Outline is the mutable, line-tagged model of an outline file.
// Anchor is the index of the line generated content hangs from;
// AnchorCreated is set when the parser had to append it.
type Outline struct {
	Lines         []OutlineLine
	Anchor        int
	AnchorCreated bool
	Variant       Variant
	Unit          string

	linked map[string]bool
}

// NewOutline creates an outline over pre-classified lines
func NewOutline(lines []OutlineLine, variant Variant, unit string) *Outline {
	return &Outline{
		Lines:   lines,
		Anchor:  -1,
		Variant: variant,
		Unit:    unit,
		linked:  make(map[string]bool),
	}
}

// AddLink records a link target as present
func (o *Outline) AddLink(target string) {
	o.linked[target] = true
}

// HasLink reports whether the exact link target is present
func (o *Outline) HasLink(target string) bool {
	return o.linked[target]
}

// LinkedTargets returns all known link targets in sorted order
func (o *Outline) LinkedTargets() []string {
	targets := make([]string, 0, len(o.linked))
	for t := range o.linked {
		targets = append(targets, t)
	}
	sort.Strings(targets)
	return targets
}

// Append adds a raw line at the end of the outline
func (o *Outline) Append(text string) int {
	o.Lines = append(o.Lines, ClassifyLine(text, o.Unit))
	return len(o.Lines) - 1
}

// Insert splices lines in before position at
func (o *Outline) Insert(at int, lines ...OutlineLine) {
	if len(lines) == 0 {
		return
	}
	if at < 0 {
		at = 0
	}
	if at > len(o.Lines) {
		at = len(o.Lines)
	}
	o.Lines = append(o.Lines[:at], append(append([]OutlineLine(nil), lines...), o.Lines[at:]...)...)
	if o.Anchor >= at {
		o.Anchor += len(lines)
	}
}

// BlockEnd returns the position right after the last non-blank line owned by
// the line at idx. A heading owns everything up to the next heading of any
// level; any other line owns everything up to the next list item or
// paragraph indented no deeper than itself, or the next heading.
func (o *Outline) BlockEnd(idx int) int {
	if idx < 0 || idx >= len(o.Lines) {
		return len(o.Lines)
	}
	owner := o.Lines[idx]

	end := len(o.Lines)
	for j := idx + 1; j < len(o.Lines); j++ {
		l := o.Lines[j]
		if owner.Kind == LineHeading {
			if l.Kind == LineHeading {
				end = j
				break
			}
			continue
		}
		if l.Kind == LineHeading || ((l.IsListItem() || l.Kind == LineText) && l.Indent <= owner.Indent) {
			end = j
			break
		}
	}

	for end > idx+1 && o.Lines[end-1].Kind == LineBlank {
		end--
	}
	return end
}

// AnchorEnd returns the insertion point for top-level generated entries
func (o *Outline) AnchorEnd() int {
	if o.Anchor < 0 {
		return len(o.Lines)
	}
	return o.BlockEnd(o.Anchor)
}

// FindItem returns the index of the first list item in [from, to) at the
// given depth whose item text equals label. Surrounding whitespace of label
// is ignored and the line kind is not considered, so "- see [x](y)" is found
// for the label "see [x](y)".
func (o *Outline) FindItem(depth int, label string, from, to int) int {
	label = strings.TrimSpace(label)
	if from < 0 {
		from = 0
	}
	if to > len(o.Lines) {
		to = len(o.Lines)
	}
	for i := from; i < to; i++ {
		l := o.Lines[i]
		if l.IsListItem() && l.Depth == depth && l.Item == label {
			return i
		}
	}
	return -1
}

// Strings returns the raw text of every line
func (o *Outline) Strings() []string {
	out := make([]string, len(o.Lines))
	for i, l := range o.Lines {
		out[i] = l.Text
	}
	return out
}
