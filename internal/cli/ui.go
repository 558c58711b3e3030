package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/cargo-hoist/pkg/hoist"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for dependency names.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+msg)
}

// printWarning prints a warning message.
func printWarning(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+msg)
}

// printFile prints a file output line.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// =============================================================================
// Report
// =============================================================================

// printReport prints the outcome of a run: a headline, the counters table,
// and the manifests that were (or would be) rewritten.
func printReport(w io.Writer, r *hoist.Report) {
	switch {
	case !r.Changed():
		printInfo(w, "Nothing to hoist in %s", r.Root)
	case r.DryRun:
		printInfo(w, "Dry run: %s would be hoisted", plural(len(r.Hoisted), "dependency", "dependencies"))
	default:
		printSuccess(w, "Hoisted %s into %s", plural(len(r.Hoisted), "dependency", "dependencies"),
			filepath.Join(r.Root, "Cargo.toml"))
	}

	fmt.Fprintln(w, summaryTable(r))

	if len(r.Added) > 0 {
		names := make([]string, len(r.Added))
		for i, n := range r.Added {
			names[i] = StyleHighlight.Render(n)
		}
		fmt.Fprintln(w, StyleDim.Render("added:")+" "+strings.Join(names, ", "))
	}
	for _, p := range r.Modified {
		printFile(w, relative(r.Root, p))
	}
	if len(r.Skipped) > 0 {
		printWarning(w, "Skipped %s with conflicting sources: %s",
			plural(len(r.Skipped), "dependency", "dependencies"), strings.Join(r.Skipped, ", "))
	}
}

func summaryTable(r *hoist.Report) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	rows := [][]string{
		{"members", strconv.Itoa(r.Members)},
		{"declarations", strconv.Itoa(r.Occurrences)},
		{"hoisted", strconv.Itoa(len(r.Hoisted))},
		{"added", strconv.Itoa(len(r.Added))},
		{"skipped", strconv.Itoa(len(r.Skipped))},
		{"rewritten", strconv.Itoa(len(r.Modified))},
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "count").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1: // header
				return headerStyle
			case col == 0:
				return lipgloss.NewStyle().Foreground(colorGray).PaddingRight(1)
			default:
				return StyleValue.Align(lipgloss.Right)
			}
		}).
		Render()
}

// =============================================================================
// Utilities
// =============================================================================

func plural(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return strconv.Itoa(n) + " " + many
}

// relative shortens path for display, keeping it absolute when it lies
// outside root.
func relative(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
