package display

import (
	"fmt"
	"io"
	"strings"
)

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Items      []string // Related items (optional)
	Suggestion string   // Action to take (optional)
}

// Display shows a formatted warning in yellow
func (w Warning) Display(out io.Writer) {
	var b strings.Builder

	b.WriteString("\x1b[33m")
	b.WriteString("⚠️  Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	if len(w.Items) > 0 {
		for i, item := range w.Items {
			b.WriteString("      ")
			b.WriteString(fmt.Sprintf("%d. %s", i+1, item))
			b.WriteString("\n")
		}
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n")
		b.WriteString("    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	b.WriteString("\x1b[0m")

	fmt.Fprint(out, b.String())
}

// WarnMissingDefinitions creates a warning for reference dataset entries the
// classifier could not resolve. Classification still completes with
// synthesized names; the warning tells the user the labels are placeholders.
func WarnMissingDefinitions(missing []string) Warning {
	return Warning{
		Title:      "Some reference definitions were not found",
		Message:    "Classification completed with placeholder labels for the entries below.",
		Items:      missing,
		Suggestion: "Check the reference dataset for missing severity definitions.",
	}
}
