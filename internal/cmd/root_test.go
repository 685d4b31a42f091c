package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/sidebarsync/internal/config"
)

func newNotesDir(t *testing.T, files ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("# "+name), 0644))
	}
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestRootCommandHelp(t *testing.T) {
	output, err := execute(t, "--help")
	require.NoError(t, err)

	assert.Contains(t, output, "sidebarsync")
	assert.Contains(t, output, "--dry-run")
	assert.Contains(t, output, "tree")
	assert.Contains(t, output, "check")
}

func TestRootCommandHasSubcommands(t *testing.T) {
	cmd := NewRootCommand()

	names := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	assert.True(t, names["tree"])
	assert.True(t, names["check"])
	assert.Equal(t, "sidebarsync", cmd.Use)
}

func TestRootCommandSyncs(t *testing.T) {
	notes := newNotesDir(t, "a.md", "sub/b.md")

	output, err := execute(t, "--notes-dir", notes)
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(notes, "_sidebar.md"))
	require.NoError(t, err)
	assert.Equal(t, "- [Notes](./README.md)\n    - sub\n        - [b](./sub/b.md)\n    - [a](./a.md)\n", string(content))
	assert.Contains(t, output, "3 entries added (2 files, 1 directories)")
}

func TestRootCommandDryRun(t *testing.T) {
	notes := newNotesDir(t, "a.md")

	output, err := execute(t, "--notes-dir", notes, "--dry-run")
	require.NoError(t, err)

	assert.Contains(t, output, "1 entries would be added")
	_, statErr := os.Stat(filepath.Join(notes, "_sidebar.md"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRootCommandOutlineFlag(t *testing.T) {
	notes := newNotesDir(t, "a.md")

	_, err := execute(t, "--notes-dir", notes, "--outline", "SUMMARY.md")
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(notes, "SUMMARY.md"))
}

func TestRootCommandConfigFile(t *testing.T) {
	notes := newNotesDir(t, "a.md")
	cfgPath := filepath.Join(t.TempDir(), "sync.yaml")
	cfgYAML := "notes_dir: " + notes + "\nvariant: toc\noutline_file: index.md\ntoc_heading: \"## Contents\"\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgYAML), 0644))

	_, err := execute(t, "--config", cfgPath)
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(notes, "index.md"))
	require.NoError(t, err)
	assert.Equal(t, "## Contents\n- [a](./a.md)\n", string(content))
}

func TestRootCommandMissingConfigFile(t *testing.T) {
	_, err := execute(t, "--config", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to access config file")
}

func TestRootCommandInvalidLogLevel(t *testing.T) {
	notes := newNotesDir(t, "a.md")

	_, err := execute(t, "--notes-dir", notes, "--log-level", "loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestRootCommandMissingNotesDir(t *testing.T) {
	_, err := execute(t, "--notes-dir", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "notes directory does not exist")
}

func TestSyncWithOutputReportsStaleLinks(t *testing.T) {
	notes := newNotesDir(t, "README.md", "a.md")
	require.NoError(t, os.WriteFile(filepath.Join(notes, "_sidebar.md"),
		[]byte("- [Notes](./README.md)\n    - [a](./a.md)\n    - [old](./old.md)\n"), 0644))

	cfg := config.DefaultConfig()
	cfg.NotesDir = notes

	var buf bytes.Buffer
	require.NoError(t, syncWithOutput(cfg, false, &buf))

	output := buf.String()
	assert.Contains(t, output, "nothing to add")
	assert.Contains(t, output, "1 stale links kept")
	assert.Contains(t, output, "1 outline link points to a missing file")
	assert.Contains(t, output, "./old.md")
}

func TestSyncWithOutputTraceListsLines(t *testing.T) {
	notes := newNotesDir(t, "a.md")
	cfg := config.DefaultConfig()
	cfg.NotesDir = notes
	cfg.LogLevel = "trace"

	var buf bytes.Buffer
	require.NoError(t, syncWithOutput(cfg, true, &buf))

	assert.True(t, strings.Contains(buf.String(), "+     - [a](./a.md)"), buf.String())
}
