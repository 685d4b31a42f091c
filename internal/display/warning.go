package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Files      []string // Related files or link targets (optional)
	Suggestion string   // Action to take (optional)
}

// Display shows a formatted warning in yellow. Color is dropped when
// fatih/color decides the output is not a terminal.
func (w Warning) Display(out io.Writer) {
	var b strings.Builder

	b.WriteString("⚠️  Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	if len(w.Files) > 0 {
		b.WriteString("    ")
		if len(w.Files) == 1 {
			b.WriteString("Affected entry:\n")
		} else {
			b.WriteString("Affected entries:\n")
		}
		for i, file := range w.Files {
			b.WriteString(fmt.Sprintf("      %d. %s\n", i+1, file))
		}
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n")
		b.WriteString("    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	color.New(color.FgYellow).Fprint(out, b.String())
}

// WarnStaleLinks creates a warning for outline links whose files are gone
func WarnStaleLinks(targets []string) Warning {
	title := fmt.Sprintf("%d outline links point to missing files", len(targets))
	if len(targets) == 1 {
		title = "1 outline link points to a missing file"
	}
	return Warning{
		Title:      title,
		Message:    "Entries are never removed automatically",
		Files:      targets,
		Suggestion: "Delete these lines from the outline if the files were removed on purpose",
	}
}

// WarnScanErrors creates a warning for directories that could not be read
func WarnScanErrors(errs []error) Warning {
	files := make([]string, 0, len(errs))
	for _, err := range errs {
		files = append(files, err.Error())
	}
	return Warning{
		Title:   fmt.Sprintf("%d directories could not be scanned", len(errs)),
		Message: "Their files were left out of this run",
		Files:   files,
	}
}
