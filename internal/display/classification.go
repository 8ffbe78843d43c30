// Package display renders restobid results for the terminal: classification
// cards, line item tables, and warnings. Everything writes to an injected
// io.Writer so tests can capture output.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/paramount/restobid/internal/models"
)

// Classification renders the completed classification as a result card.
func Classification(out io.Writer, cls *models.Classification) {
	if cls == nil {
		return
	}

	header := color.New(color.Bold).Sprintf("=== %s Damage Classification ===", cls.DamageType.Label())
	fmt.Fprintf(out, "%s\n", header)

	switch {
	case cls.Water != nil:
		waterCard(out, cls.Water)
	case cls.Fire != nil:
		fireCard(out, cls.Fire)
	case cls.Mold != nil:
		moldCard(out, cls.Mold)
	}
	fmt.Fprintln(out)
}

func waterCard(out io.Writer, w *models.WaterClassification) {
	fmt.Fprintf(out, "  Category: %d - %s\n", w.Category, w.CategoryName)
	if w.CategoryDescription != "" {
		fmt.Fprintf(out, "            %s\n", w.CategoryDescription)
	}
	fmt.Fprintf(out, "  Class:    %d - %s\n", w.Class, w.ClassName)
	if w.ClassDescription != "" {
		fmt.Fprintf(out, "            %s\n", w.ClassDescription)
	}
	if w.PPERequired != "" {
		fmt.Fprintf(out, "  PPE:      %s\n", w.PPERequired)
	}
	if w.HasMold {
		fmt.Fprintf(out, "  %s\n", color.New(color.FgYellow).Sprint("Visible mold growth reported"))
	}
}

func fireCard(out io.Writer, f *models.FireClassification) {
	fmt.Fprintf(out, "  Soot type:  %s - %s\n", f.SootType, f.SootTypeName)
	if f.CleaningMethod != "" {
		fmt.Fprintf(out, "  Cleaning:   %s\n", f.CleaningMethod)
	}
	fmt.Fprintf(out, "  Extent:     %s\n", f.Extent)
	fmt.Fprintf(out, "  Soot level: %s\n", f.SootLevel)
	if f.HVACAffected {
		fmt.Fprintf(out, "  %s\n", color.New(color.FgYellow).Sprint("HVAC system affected"))
	}
}

func moldCard(out io.Writer, m *models.MoldClassification) {
	fmt.Fprintf(out, "  Remediation level: %d - %s\n", m.Level, m.LevelName)
	if m.Size != "" {
		fmt.Fprintf(out, "  Size:              %s\n", m.Size)
	}
	if m.PPE != "" {
		fmt.Fprintf(out, "  PPE:               %s\n", m.PPE)
	}
	if m.Containment != "" {
		fmt.Fprintf(out, "  Containment:       %s\n", m.Containment)
	}
	if m.Personnel != "" {
		fmt.Fprintf(out, "  Personnel:         %s\n", m.Personnel)
	}
	fmt.Fprintf(out, "  Growth depth:      %s\n", m.Depth)
	if m.MoistureActive {
		fmt.Fprintf(out, "  %s\n", color.New(color.FgYellow).Sprint("Active moisture source present"))
	}
	if m.HealthConcerns {
		fmt.Fprintf(out, "  %s\n", color.New(color.FgYellow).Sprint("Occupant health concerns reported"))
	}
}

// LineItemTable renders line items as a fixed-width table grouped in the
// order given. Quantities print with two decimals to match stored rounding.
func LineItemTable(out io.Writer, items []models.LineItem) {
	if len(items) == 0 {
		fmt.Fprintln(out, "No line items.")
		return
	}

	descWidth := len("Description")
	for _, item := range items {
		if len(item.Description) > descWidth {
			descWidth = len(item.Description)
		}
	}

	fmt.Fprintf(out, "%-12s %-*s %10s  %-4s %s\n", "Code", descWidth, "Description", "Quantity", "Unit", "Room")
	fmt.Fprintf(out, "%s\n", strings.Repeat("-", 12+1+descWidth+1+10+2+4+1+12))
	for _, item := range items {
		room := item.RoomName
		if room == "" {
			room = "(rough)"
		}
		fmt.Fprintf(out, "%-12s %-*s %10.2f  %-4s %s\n", item.Code, descWidth, item.Description, item.Quantity, item.Unit, room)
	}
	fmt.Fprintf(out, "%d items\n", len(items))
}

// QuestionProgress renders the "[N/Total]" progress prefix for an
// interactive question prompt.
func QuestionProgress(out io.Writer, index, total int, prompt string) {
	tag := color.New(color.FgCyan).Sprintf("[%d/%d]", index+1, total)
	fmt.Fprintf(out, "%s %s\n", tag, prompt)
}
