package updater

import (
	"strings"

	"github.com/harrison/sidebarsync/internal/models"
)

// Serialize renders the outline with trailing blank lines removed and exactly
// one trailing newline.
func Serialize(doc *models.Outline) []byte {
	lines := doc.Strings()
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return []byte(strings.Join(lines, "\n") + "\n")
}
