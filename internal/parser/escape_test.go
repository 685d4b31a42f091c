package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLinkPath(t *testing.T) {
	tests := []struct {
		name string
		rel  string
		want string
	}{
		{"plain", "a.md", "./a.md"},
		{"nested", "sub/b.md", "./sub/b.md"},
		{"space", "my note.md", "./my%20note.md"},
		{"space in dir", "my dir/x.md", "./my%20dir/x.md"},
		{"cjk kept", "笔记/第一篇.md", "./笔记/第一篇.md"},
		{"kana kept", "メモ.md", "./メモ.md"},
		{"hangul kept", "노트.md", "./노트.md"},
		{"parens", "a(1).md", "./a%281%29.md"},
		{"reserved", "a+b&c#d.md", "./a%2Bb%26c%23d.md"},
		{"accented", "café.md", "./caf%C3%A9.md"},
		{"safe punctuation", "a_b-c.d.md", "./a_b-c.d.md"},
		{"backslash separators", `sub\x y.md`, "./sub/x%20y.md"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeLinkPath(tt.rel))
		})
	}
}

func TestLinkTarget(t *testing.T) {
	assert.Equal(t, "./sub/x y.md", LinkTarget("sub/x y.md"))
	assert.Equal(t, "./sub/x.md", LinkTarget(`sub\x.md`))
}

func TestEscapeLinkLabel(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"plain", "plain"},
		{"a](b", `a\](b`},
		{"[draft]", `\[draft\]`},
		{`back\`, `back\\`},
		{"笔记 (1)", "笔记 (1)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeLinkLabel(tt.name))
		})
	}
}
