package models

import "time"

// SyncSummary is the user-facing outcome of one sync run
type SyncSummary struct {
	OutlinePath string
	AddedFiles  int
	AddedDirs   int
	Stale       int
	Written     bool
	DryRun      bool
	Duration    time.Duration
}

// Added returns the total number of entries added
func (s SyncSummary) Added() int {
	return s.AddedFiles + s.AddedDirs
}
