// Package report renders a human-readable estimate report for a project, as
// Markdown and optionally as standalone HTML.
package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/paramount/restobid/internal/lineitems"
	"github.com/paramount/restobid/internal/models"
	"github.com/paramount/restobid/internal/refdata"
	"github.com/paramount/restobid/internal/sizing"
)

// Markdown renders the estimate report for a project. The dataset supplies
// sizing factors for the equipment summary.
func Markdown(ds *refdata.Dataset, p *models.Project) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Estimate: %s\n\n", p.Name)
	fmt.Fprintf(&b, "Generated %s\n\n", time.Now().Format("2006-01-02 15:04"))

	if p.Classification != nil {
		writeClassification(&b, p.Classification)
	}

	if len(p.Rooms) > 0 {
		writeRooms(&b, ds, p)
	} else if len(p.LineItems) > 0 {
		fmt.Fprintf(&b, "> %s\n\n", lineitems.RoughEstimateNote)
	}

	writeLineItems(&b, p)

	if len(p.Photos) > 0 {
		b.WriteString("## Photos\n\n")
		for _, photo := range p.Photos {
			caption := photo.Caption
			if caption == "" {
				caption = photo.Path
			}
			fmt.Fprintf(&b, "- %s (`%s`)\n", caption, photo.Path)
		}
		b.WriteString("\n")
	}

	if p.Notes != "" {
		fmt.Fprintf(&b, "## Notes\n\n%s\n", p.Notes)
	}

	return b.String()
}

func writeClassification(b *strings.Builder, cls *models.Classification) {
	fmt.Fprintf(b, "## Classification: %s damage\n\n", strings.ToLower(cls.DamageType.Label()))

	switch {
	case cls.Water != nil:
		w := cls.Water
		fmt.Fprintf(b, "- Category %d: %s\n", w.Category, w.CategoryName)
		fmt.Fprintf(b, "- Class %d: %s\n", w.Class, w.ClassName)
		if w.PPERequired != "" {
			fmt.Fprintf(b, "- PPE: %s\n", w.PPERequired)
		}
		if w.HasMold {
			b.WriteString("- Visible mold growth reported\n")
		}
	case cls.Fire != nil:
		f := cls.Fire
		fmt.Fprintf(b, "- Soot type: %s\n", f.SootTypeName)
		if f.CleaningMethod != "" {
			fmt.Fprintf(b, "- Cleaning method: %s\n", f.CleaningMethod)
		}
		fmt.Fprintf(b, "- Extent: %s\n", f.Extent)
		fmt.Fprintf(b, "- Soot level: %s\n", f.SootLevel)
		if f.HVACAffected {
			b.WriteString("- HVAC system affected\n")
		}
	case cls.Mold != nil:
		m := cls.Mold
		fmt.Fprintf(b, "- Remediation level %d: %s\n", m.Level, m.LevelName)
		if m.PPE != "" {
			fmt.Fprintf(b, "- PPE: %s\n", m.PPE)
		}
		if m.Containment != "" {
			fmt.Fprintf(b, "- Containment: %s\n", m.Containment)
		}
		fmt.Fprintf(b, "- Growth depth: %s\n", m.Depth)
		if m.MoistureActive {
			b.WriteString("- Active moisture source present\n")
		}
	}
	b.WriteString("\n")
}

func writeRooms(b *strings.Builder, ds *refdata.Dataset, p *models.Project) {
	b.WriteString("## Rooms\n\n")
	b.WriteString("| Room | Dimensions | Floor area | Affected |\n")
	b.WriteString("|------|-----------|-----------|----------|\n")
	for i := range p.Rooms {
		room := &p.Rooms[i]
		geo := sizing.DeriveGeometry(room)
		fmt.Fprintf(b, "| %s | %.0f x %.0f x %.0f ft | %.0f SF | %.0f%% |\n",
			room.Name, room.Length, room.Width, room.EffectiveHeight(), geo.FloorArea, room.DamagePercent)
	}
	b.WriteString("\n")

	writeEquipmentSummary(b, ds, p)
}

// writeEquipmentSummary totals drying equipment per room for water losses and
// reports negative air requirements when contamination demands containment.
func writeEquipmentSummary(b *strings.Builder, ds *refdata.Dataset, p *models.Project) {
	cls := p.Classification
	if cls == nil {
		return
	}

	needNegativeAir := (cls.Water != nil && cls.Water.Category >= 3) ||
		(cls.Mold != nil && cls.Mold.Level >= 3)

	if cls.Water == nil && !needNegativeAir {
		return
	}

	b.WriteString("## Equipment\n\n")
	for i := range p.Rooms {
		room := &p.Rooms[i]
		geo := sizing.DeriveGeometry(room)

		if cls.Water != nil {
			eq := sizing.SizeEquipment(ds, cls.Water.Class, geo)
			fmt.Fprintf(b, "- %s: %d air movers, %d dehumidifier(s) (%d pints/day)\n",
				room.Name, eq.AirMovers, eq.DehumidifierUnits, eq.DehumidifierPints)
		}
		if needNegativeAir {
			workType := "cat3_water"
			if cls.Mold != nil {
				workType = "mold_remediation"
			}
			cfm := sizing.NegativeAirCFM(ds, geo.CubicVolume, workType)
			fmt.Fprintf(b, "- %s: negative air at %d CFM\n", room.Name, cfm)
		}
	}
	b.WriteString("\n")
}

func writeLineItems(b *strings.Builder, p *models.Project) {
	b.WriteString("## Line items\n\n")
	if len(p.LineItems) == 0 {
		b.WriteString("No line items generated yet.\n\n")
		return
	}

	b.WriteString("| Code | Description | Qty | Unit | Category |\n")
	b.WriteString("|------|-------------|-----|------|----------|\n")
	for _, item := range p.LineItems {
		fmt.Fprintf(b, "| %s | %s | %.2f | %s | %s |\n",
			item.Code, item.Description, item.Quantity, item.Unit, item.Category)
	}
	fmt.Fprintf(b, "\n%d line items total.\n\n", len(p.LineItems))
}

// HTML renders the Markdown report as a standalone HTML document.
func HTML(ds *refdata.Dataset, p *models.Project) ([]byte, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))

	var body bytes.Buffer
	if err := md.Convert([]byte(Markdown(ds, p)), &body); err != nil {
		return nil, fmt.Errorf("render report HTML: %w", err)
	}

	var out bytes.Buffer
	fmt.Fprintf(&out, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>Estimate: %s</title>\n</head>\n<body>\n", p.Name)
	out.Write(body.Bytes())
	out.WriteString("\n</body>\n</html>\n")
	return out.Bytes(), nil
}
