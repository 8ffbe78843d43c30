// Package export writes estimate artifacts: a CSV line item listing for
// spreadsheet import and an ESX upload to an external conversion server.
package export

import (
	"strconv"
	"strings"

	"github.com/paramount/restobid/internal/models"
)

// csvHeader is the fixed column order consumers of the CSV rely on.
var csvHeader = []string{"Code", "Description", "Quantity", "Unit", "Category", "Room"}

// CSV renders the project's line items as a CSV document. Quantities print
// with two decimals so the file matches the stored rounding.
func CSV(p *models.Project) []byte {
	var b strings.Builder
	b.WriteString(strings.Join(csvHeader, ","))
	b.WriteString("\r\n")

	for _, item := range p.LineItems {
		fields := []string{
			item.Code,
			item.Description,
			strconv.FormatFloat(item.Quantity, 'f', 2, 64),
			item.Unit,
			item.Category,
			item.RoomName,
		}
		for i, f := range fields {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(csvEscape(f))
		}
		b.WriteString("\r\n")
	}
	return []byte(b.String())
}

// csvEscape quotes a field when it contains a comma, quote, or newline,
// doubling embedded quotes per RFC 4180.
func csvEscape(field string) string {
	if !strings.ContainsAny(field, ",\"\r\n") {
		return field
	}
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}
