package merge

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/harrison/sidebarsync/internal/models"
)

// FindStale returns relative link targets in doc whose files are missing
// under notesDir. Absolute URLs, site-rooted paths and parent-relative paths
// are ignored. Nothing is removed from the outline.
func FindStale(doc *models.Outline, notesDir string) []string {
	var stale []string
	for _, target := range doc.LinkedTargets() {
		rel, ok := localPath(target)
		if !ok {
			continue
		}
		if _, err := os.Stat(filepath.Join(notesDir, filepath.FromSlash(rel))); os.IsNotExist(err) {
			stale = append(stale, target)
		}
	}
	return stale
}

// localPath turns "./dir/a%20b.md#intro" into "dir/a b.md"
func localPath(target string) (string, bool) {
	target = strings.Trim(target, "<>")
	if !strings.HasPrefix(target, "./") {
		return "", false
	}
	rel := strings.TrimPrefix(target, "./")
	if i := strings.IndexAny(rel, "?#"); i >= 0 {
		rel = rel[:i]
	}
	if rel == "" || strings.HasPrefix(rel, "../") {
		return "", false
	}
	if decoded, err := url.PathUnescape(rel); err == nil {
		rel = decoded
	}
	return rel, true
}
