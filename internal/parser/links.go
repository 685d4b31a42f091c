package parser

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// linkDestinations returns link targets as goldmark resolves them. This
// catches what the raw inline pattern cannot: reference-style links,
// autolinks and angle-bracket destinations such as "<./a b.md>".
func (p *OutlineParser) linkDestinations(source []byte) []string {
	doc := p.markdown.Parser().Parse(text.NewReader(source))

	var dests []string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Link:
			if len(node.Destination) > 0 {
				dests = append(dests, string(node.Destination))
			}
		case *ast.AutoLink:
			dests = append(dests, string(node.URL(source)))
		}
		return ast.WalkContinue, nil
	})
	return dests
}
