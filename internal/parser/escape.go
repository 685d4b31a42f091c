package parser

import (
	"fmt"
	"strings"
	"unicode"
)

// LinkTarget returns the unescaped "./"-prefixed form of a notes-relative path
func LinkTarget(relPath string) string {
	return "./" + strings.ReplaceAll(relPath, "\\", "/")
}

// EscapeLinkPath percent-encodes each segment of a notes-relative path and
// prefixes it with "./". ASCII letters, digits, ".", "_", "-" and CJK
// characters are kept; every other byte is written as %XX.
func EscapeLinkPath(relPath string) string {
	segments := strings.Split(strings.ReplaceAll(relPath, "\\", "/"), "/")
	for i, seg := range segments {
		segments[i] = escapeSegment(seg)
	}
	return "./" + strings.Join(segments, "/")
}

// labelEscaper backslash-escapes the characters that would end or nest a link label
var labelEscaper = strings.NewReplacer(`\`, `\\`, `[`, `\[`, `]`, `\]`)

// EscapeLinkLabel makes name safe to use as the text of "[label](target)"
func EscapeLinkLabel(name string) string {
	return labelEscaper.Replace(name)
}

func escapeSegment(seg string) string {
	var b strings.Builder
	for _, r := range seg {
		if keepRune(r) {
			b.WriteRune(r)
			continue
		}
		for _, c := range []byte(string(r)) {
			fmt.Fprintf(&b, "%%%02X", c)
		}
	}
	return b.String()
}

func keepRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '.', r == '_', r == '-':
		return true
	}
	return unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Hangul)
}
