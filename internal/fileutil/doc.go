// Package fileutil scans a notes directory into an ordered tree of
// directories and linkable files.
//
// Rules applied while walking:
//   - entries whose name starts with "." are skipped, as are names in
//     ScanOptions.ExcludeNames
//   - files are kept only when their extension is listed in
//     ScanOptions.Extensions (case-insensitive)
//   - names in ScanOptions.ExcludeRootFiles are skipped directly under the root
//   - symlinks and other non-regular entries are skipped
//   - directories without linkable descendants are dropped unless
//     ScanOptions.KeepEmptyDirs is set
//
// Every level lists directories before files. Both groups are sorted with a
// Chinese-locale collator (golang.org/x/text/collate), so "北京" sorts near
// "Beijing" rather than after every Latin name.
//
// A missing root is reported as ErrRootNotFound. Unreadable subdirectories
// are collected in ScanResult.Errors and the walk continues.
//
// Usage:
//
//	result, err := fileutil.ScanTree("notes", fileutil.ScanOptions{
//	    Extensions:       []string{".md", ".html"},
//	    ExcludeNames:     []string{"_sidebar.md"},
//	    ExcludeRootFiles: []string{"README.md"},
//	})
//	if err != nil {
//	    return err
//	}
//	for _, n := range result.Nodes {
//	    fmt.Println(n.RelPath)
//	}
package fileutil
