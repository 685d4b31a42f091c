package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/harrison/sidebarsync/internal/models"
)

var (
	// ErrRootNotFound indicates the notes root does not exist
	ErrRootNotFound = errors.New("notes directory does not exist")
	// ErrNotDirectory indicates the notes root is not a directory
	ErrNotDirectory = errors.New("path is not a directory")
)

// ScanOptions configures the tree scanning behavior
type ScanOptions struct {
	// Extensions is a list of file extensions to include (e.g., ".md", ".html")
	Extensions []string
	// ExcludeNames is a list of entry names skipped at every level
	ExcludeNames []string
	// ExcludeRootFiles is a list of file names skipped directly under the root
	ExcludeRootFiles []string
	// KeepEmptyDirs keeps directories that contain no matching files
	KeepEmptyDirs bool
}

// ScanResult contains the results of a tree scan
type ScanResult struct {
	// Nodes is the top level of the scanned tree
	Nodes []*models.TreeNode
	// Errors contains non-fatal errors for subdirectories that could not be read
	Errors []error
}

type treeScanner struct {
	extMap      map[string]bool
	excludeMap  map[string]bool
	excludeRoot map[string]bool
	keepEmpty   bool
	collator    *Collator
	result      *ScanResult
}

// ScanTree walks dir and returns its linkable entries as an ordered tree.
// At each level directories come first, then files, each sorted with
// Chinese-aware collation. Hidden entries (leading ".") are skipped.
func ScanTree(dir string, opts ScanOptions) (*ScanResult, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRootNotFound, dir)
		}
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}

	s := &treeScanner{
		extMap:      make(map[string]bool),
		excludeMap:  make(map[string]bool),
		excludeRoot: make(map[string]bool),
		keepEmpty:   opts.KeepEmptyDirs,
		collator:    NewCollator(),
		result:      &ScanResult{Errors: make([]error, 0)},
	}

	for _, ext := range opts.Extensions {
		// Ensure extensions start with a dot
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		s.extMap[strings.ToLower(ext)] = true
	}
	for _, name := range opts.ExcludeNames {
		s.excludeMap[name] = true
	}
	for _, name := range opts.ExcludeRootFiles {
		s.excludeRoot[name] = true
	}

	nodes, err := s.scanDir(dir, "")
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}
	s.result.Nodes = nodes
	return s.result, nil
}

func (s *treeScanner) scanDir(dir string, relDir string) ([]*models.TreeNode, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var dirs, files []*models.TreeNode
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, ".") || s.excludeMap[name] {
			continue
		}
		rel := path.Join(relDir, name)

		switch {
		case e.IsDir():
			children, err := s.scanDir(filepath.Join(dir, name), rel)
			if err != nil {
				s.result.Errors = append(s.result.Errors, fmt.Errorf("error reading %s: %w", rel, err))
				continue
			}
			if len(children) == 0 && !s.keepEmpty {
				continue
			}
			dirs = append(dirs, &models.TreeNode{
				Kind:     models.NodeDir,
				Name:     name,
				RelPath:  rel,
				Children: children,
			})

		case e.Type().IsRegular():
			ext := filepath.Ext(name)
			if !s.extMap[strings.ToLower(ext)] {
				continue
			}
			if relDir == "" && s.excludeRoot[name] {
				continue
			}
			files = append(files, &models.TreeNode{
				Kind:    models.NodeFile,
				Name:    strings.TrimSuffix(name, ext),
				RelPath: rel,
				Ext:     ext,
			})
		}
	}

	s.collator.SortNodes(dirs)
	s.collator.SortNodes(files)

	return append(dirs, files...), nil
}
