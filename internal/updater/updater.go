// Package updater runs one lock-coordinated sync of an outline file against
// its notes directory: scan, parse, merge, then write atomically.
//
// Example:
//
//	report, err := updater.Sync(cfg,
//	    updater.WithTimeout(2*time.Second),
//	    updater.WithMonitor(func(m updater.SyncMetrics) { log.Printf("%+v", m) }))
//
// Sync only rewrites the outline when at least one heading or link was
// added. Existing lines are never changed or removed.
package updater

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/harrison/sidebarsync/internal/config"
	"github.com/harrison/sidebarsync/internal/filelock"
	"github.com/harrison/sidebarsync/internal/fileutil"
	"github.com/harrison/sidebarsync/internal/merge"
	"github.com/harrison/sidebarsync/internal/models"
	"github.com/harrison/sidebarsync/internal/parser"
)

var (
	// ErrOutOfDate indicates a check found entries missing from the outline.
	ErrOutOfDate = errors.New("updater: outline is out of date")
)

// Logger is the subset of the console logger Sync reports through
type Logger interface {
	LogDebug(message string)
	LogWarn(message string)
}

// SyncMonitor receives metrics describing each sync attempt.
type SyncMonitor func(SyncMetrics)

// SyncMetrics captures contextual data about a sync.
type SyncMetrics struct {
	OutlinePath  string
	NotesDir     string
	Variant      models.Variant
	ScannedFiles int
	AddedFiles   int
	AddedDirs    int
	Stale        int
	DryRun       bool
	Written      bool
	Duration     time.Duration
	BytesRead    int
	BytesWritten int
	Err          error
}

type options struct {
	timeout time.Duration
	monitor SyncMonitor
	dryRun  bool
	logger  Logger
}

// Option configures behaviour of Sync.
type Option func(*options)

// WithTimeout configures how long Sync should wait when acquiring the
// outline lock. A non-positive duration falls back to blocking.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithMonitor registers a callback that receives metrics after each sync.
func WithMonitor(m SyncMonitor) Option {
	return func(o *options) {
		o.monitor = m
	}
}

// WithDryRun computes the merge without taking the lock or writing.
func WithDryRun(dryRun bool) Option {
	return func(o *options) {
		o.dryRun = dryRun
	}
}

// WithLogger routes progress messages to l.
func WithLogger(l Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// Report describes the outcome of a sync
type Report struct {
	OutlinePath string
	Tree        []*models.TreeNode
	Result      *merge.Result
	Content     []byte
	Written     bool
	ScanErrors  []error
}

// ScanOptionsFor derives tree scanning options from cfg. The outline's own
// file name is always excluded.
func ScanOptionsFor(cfg *config.Config) fileutil.ScanOptions {
	exclude := append([]string{}, cfg.ExcludeNames...)
	exclude = append(exclude, filepath.Base(cfg.OutlinePath()))
	return fileutil.ScanOptions{
		Extensions:       cfg.IncludeExts,
		ExcludeNames:     exclude,
		ExcludeRootFiles: cfg.ExcludeRootFiles,
		KeepEmptyDirs:    cfg.KeepEmptyDirs,
	}
}

// OutlineOptionsFor derives outline parsing options from cfg.
func OutlineOptionsFor(cfg *config.Config) parser.OutlineOptions {
	return parser.OutlineOptions{
		Variant:    cfg.Variant,
		RootTitle:  cfg.RootTitle,
		RootLink:   cfg.RootLink,
		TOCHeading: cfg.TOCHeading,
		Indent:     cfg.Indent,
	}
}

// Sync brings the outline named by cfg up to date with cfg.NotesDir.
// A missing notes directory or a failed write is returned as an error and
// leaves the outline as the filesystem left it.
func Sync(cfg *config.Config, opts ...Option) (*Report, error) {
	conf := options{timeout: cfg.LockTimeout}
	for _, opt := range opts {
		if opt != nil {
			opt(&conf)
		}
	}

	outlinePath := cfg.OutlinePath()
	metrics := SyncMetrics{
		OutlinePath: outlinePath,
		NotesDir:    cfg.NotesDir,
		Variant:     cfg.Variant,
		DryRun:      conf.dryRun,
	}
	start := time.Now()
	defer func() {
		metrics.Duration = time.Since(start)
		if conf.monitor != nil {
			conf.monitor(metrics)
		}
	}()

	scan, err := fileutil.ScanTree(cfg.NotesDir, ScanOptionsFor(cfg))
	if err != nil {
		metrics.Err = err
		return nil, err
	}
	metrics.ScannedFiles = models.CountFiles(scan.Nodes)
	for _, scanErr := range scan.Errors {
		logDebug(conf.logger, "skipped: "+scanErr.Error())
	}
	logDebug(conf.logger, fmt.Sprintf("scanned %d files under %s", metrics.ScannedFiles, cfg.NotesDir))

	if !conf.dryRun {
		lock := filelock.NewFileLock(outlinePath + ".lock")
		acquired, lockErr := lock.TryLock()
		if lockErr == nil && !acquired {
			logDebug(conf.logger, fmt.Sprintf("%s is held by another run, waiting", lock.Path()))
			if conf.timeout > 0 {
				lockErr = lock.LockWithTimeout(conf.timeout)
			} else {
				lockErr = lock.Lock()
			}
		}
		if lockErr != nil {
			metrics.Err = lockErr
			return nil, lockErr
		}
		defer func() {
			lock.Unlock()
			os.Remove(outlinePath + ".lock")
		}()
	}

	outlineOpts := OutlineOptionsFor(cfg)
	content, err := os.ReadFile(outlinePath)
	switch {
	case os.IsNotExist(err):
		logDebug(conf.logger, fmt.Sprintf("%s not found, starting from default skeleton", outlinePath))
		content = []byte(outlineOpts.DefaultSkeleton())
	case err != nil:
		err = fmt.Errorf("failed to read outline: %w", err)
		metrics.Err = err
		return nil, err
	default:
		metrics.BytesRead = len(content)
	}

	doc := parser.NewOutlineParser(outlineOpts).ParseString(string(content))
	if doc.AnchorCreated {
		logWarn(conf.logger, fmt.Sprintf("anchor %q not found, appended", outlineOpts.AnchorLine()))
	}

	result := merge.Merge(scan.Nodes, doc)
	result.Stale = merge.FindStale(doc, cfg.NotesDir)
	metrics.AddedFiles = len(result.AddedFiles)
	metrics.AddedDirs = len(result.AddedDirs)
	metrics.Stale = len(result.Stale)

	report := &Report{
		OutlinePath: outlinePath,
		Tree:        scan.Nodes,
		Result:      result,
		Content:     Serialize(doc),
		ScanErrors:  scan.Errors,
	}

	if !result.Changed() || conf.dryRun {
		return report, nil
	}

	if err := filelock.AtomicWrite(outlinePath, report.Content); err != nil {
		err = fmt.Errorf("failed to write outline: %w", err)
		metrics.Err = err
		return nil, err
	}
	report.Written = true
	metrics.Written = true
	metrics.BytesWritten = len(report.Content)
	return report, nil
}

// Check runs Sync in dry-run mode and returns ErrOutOfDate when anything
// would be added.
func Check(cfg *config.Config, opts ...Option) (*Report, error) {
	report, err := Sync(cfg, append(opts, WithDryRun(true))...)
	if err != nil {
		return nil, err
	}
	if report.Result.Changed() {
		return report, fmt.Errorf("%w: %d entries missing", ErrOutOfDate, report.Result.Added())
	}
	return report, nil
}

func logDebug(l Logger, msg string) {
	if l != nil {
		l.LogDebug(msg)
	}
}

func logWarn(l Logger, msg string) {
	if l != nil {
		l.LogWarn(msg)
	}
}
