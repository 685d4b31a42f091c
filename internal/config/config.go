package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/harrison/sidebarsync/internal/models"
)

// DefaultIndent is the indentation unit per nesting level
const DefaultIndent = "    "

// Config represents sidebarsync configuration options
type Config struct {
	// NotesDir is the root of the notes tree to scan
	NotesDir string `yaml:"notes_dir" toml:"notes_dir"`

	// OutlineFile is the outline path, relative to NotesDir unless absolute
	OutlineFile string `yaml:"outline_file" toml:"outline_file"`

	// Variant selects the anchor style: sidebar or toc
	Variant models.Variant `yaml:"variant" toml:"variant"`

	// RootTitle and RootLink form the sidebar anchor line "- [RootTitle](RootLink)"
	RootTitle string `yaml:"root_title" toml:"root_title"`
	RootLink  string `yaml:"root_link" toml:"root_link"`

	// TOCHeading is the anchor heading line for the toc variant
	TOCHeading string `yaml:"toc_heading" toml:"toc_heading"`

	// Indent is the indentation unit per nesting level
	Indent string `yaml:"indent" toml:"indent"`

	// IncludeExts lists linkable file extensions (case-insensitive)
	IncludeExts []string `yaml:"include_exts" toml:"include_exts"`

	// ExcludeNames are entry names skipped at every level
	ExcludeNames []string `yaml:"exclude_names" toml:"exclude_names"`

	// ExcludeRootFiles are file names skipped directly under NotesDir
	ExcludeRootFiles []string `yaml:"exclude_root_files" toml:"exclude_root_files"`

	// KeepEmptyDirs keeps directories that contain no linkable files
	KeepEmptyDirs bool `yaml:"keep_empty_dirs" toml:"keep_empty_dirs"`

	// LockTimeout bounds how long a run waits for the outline lock
	LockTimeout time.Duration `yaml:"-" toml:"-"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level" toml:"log_level"`
}

// DefaultConfig returns a Config holding the built-in constants
func DefaultConfig() *Config {
	return &Config{
		NotesDir:         "notes",
		OutlineFile:      "_sidebar.md",
		Variant:          models.VariantSidebar,
		RootTitle:        "Notes",
		RootLink:         "./README.md",
		TOCHeading:       "## 目录",
		Indent:           DefaultIndent,
		IncludeExts:      []string{".md", ".html"},
		ExcludeNames:     []string{"_sidebar.md", ".DS_Store", "Thumbs.db"},
		ExcludeRootFiles: []string{"README.md", "readme.md"},
		KeepEmptyDirs:    false,
		LockTimeout:      5 * time.Second,
		LogLevel:         "info",
	}
}

// fileConfig mirrors Config for decoding; pointers and strings let us tell
// "absent" from "zero".
type fileConfig struct {
	NotesDir         string   `yaml:"notes_dir" toml:"notes_dir"`
	OutlineFile      string   `yaml:"outline_file" toml:"outline_file"`
	Variant          string   `yaml:"variant" toml:"variant"`
	RootTitle        string   `yaml:"root_title" toml:"root_title"`
	RootLink         string   `yaml:"root_link" toml:"root_link"`
	TOCHeading       string   `yaml:"toc_heading" toml:"toc_heading"`
	Indent           string   `yaml:"indent" toml:"indent"`
	IncludeExts      []string `yaml:"include_exts" toml:"include_exts"`
	ExcludeNames     []string `yaml:"exclude_names" toml:"exclude_names"`
	ExcludeRootFiles []string `yaml:"exclude_root_files" toml:"exclude_root_files"`
	KeepEmptyDirs    *bool    `yaml:"keep_empty_dirs" toml:"keep_empty_dirs"`
	LockTimeout      string   `yaml:"lock_timeout" toml:"lock_timeout"`
	LogLevel         string   `yaml:"log_level" toml:"log_level"`
}

// LoadConfig loads configuration from the specified file path.
// The format is picked from the extension: .toml is decoded as TOML,
// anything else as YAML.
// If the file doesn't exist, returns default configuration without error.
// If the file exists but is malformed, returns an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fc fileConfig
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(string(data), &fc); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := cfg.apply(fc); err != nil {
		return nil, err
	}
	return cfg, nil
}

// apply merges non-zero values from a decoded file over the defaults
func (c *Config) apply(fc fileConfig) error {
	if fc.NotesDir != "" {
		c.NotesDir = fc.NotesDir
	}
	if fc.OutlineFile != "" {
		c.OutlineFile = fc.OutlineFile
	}
	if fc.Variant != "" {
		c.Variant = models.Variant(strings.ToLower(fc.Variant))
	}
	if fc.RootTitle != "" {
		c.RootTitle = fc.RootTitle
	}
	if fc.RootLink != "" {
		c.RootLink = fc.RootLink
	}
	if fc.TOCHeading != "" {
		c.TOCHeading = fc.TOCHeading
	}
	if fc.Indent != "" {
		c.Indent = fc.Indent
	}
	if fc.IncludeExts != nil {
		c.IncludeExts = fc.IncludeExts
	}
	if fc.ExcludeNames != nil {
		c.ExcludeNames = fc.ExcludeNames
	}
	if fc.ExcludeRootFiles != nil {
		c.ExcludeRootFiles = fc.ExcludeRootFiles
	}
	if fc.KeepEmptyDirs != nil {
		c.KeepEmptyDirs = *fc.KeepEmptyDirs
	}
	if fc.LockTimeout != "" {
		timeout, err := time.ParseDuration(fc.LockTimeout)
		if err != nil {
			return fmt.Errorf("invalid lock_timeout format %q: %w", fc.LockTimeout, err)
		}
		c.LockTimeout = timeout
	}
	if fc.LogLevel != "" {
		c.LogLevel = fc.LogLevel
	}
	return nil
}

// ConfigFileNames are the file names LoadConfigFromDir looks for, in order
var ConfigFileNames = []string{".sidebarsync.yaml", ".sidebarsync.yml", ".sidebarsync.toml"}

// LoadConfigFromDir loads the first config file found in dir.
// If none exists, returns default configuration without error.
func LoadConfigFromDir(dir string) (*Config, error) {
	for _, name := range ConfigFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadConfig(path)
		}
	}
	return DefaultConfig(), nil
}

// MergeWithFlags merges CLI flags into the configuration.
// Non-nil flag values override configuration values.
func (c *Config) MergeWithFlags(notesDir *string, outlineFile *string, logLevel *string) {
	if notesDir != nil {
		c.NotesDir = *notesDir
	}
	if outlineFile != nil {
		c.OutlineFile = *outlineFile
	}
	if logLevel != nil {
		c.LogLevel = *logLevel
	}
}

// OutlinePath returns the outline location, resolved against NotesDir
func (c *Config) OutlinePath() string {
	if filepath.IsAbs(c.OutlineFile) {
		return c.OutlineFile
	}
	return filepath.Join(c.NotesDir, c.OutlineFile)
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if c.NotesDir == "" {
		return fmt.Errorf("notes_dir cannot be empty")
	}
	if c.OutlineFile == "" {
		return fmt.Errorf("outline_file cannot be empty")
	}

	switch c.Variant {
	case models.VariantSidebar:
		if c.RootTitle == "" || c.RootLink == "" {
			return fmt.Errorf("root_title and root_link are required for the sidebar variant")
		}
	case models.VariantTOC:
		if !strings.HasPrefix(strings.TrimSpace(c.TOCHeading), "#") {
			return fmt.Errorf("toc_heading must be a markdown heading, got %q", c.TOCHeading)
		}
	default:
		return fmt.Errorf("invalid variant %q, must be one of: sidebar, toc", c.Variant)
	}

	if c.Indent == "" || strings.Trim(c.Indent, " \t") != "" {
		return fmt.Errorf("indent must be non-empty whitespace, got %q", c.Indent)
	}

	if len(c.IncludeExts) == 0 {
		return fmt.Errorf("include_exts cannot be empty")
	}

	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	if c.LockTimeout < 0 {
		return fmt.Errorf("lock_timeout must be >= 0, got %v", c.LockTimeout)
	}

	return nil
}
