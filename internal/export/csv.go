package export

import (
	"strconv"
	"strings"

	"github.com/gifnar/volunteerlog/internal/entry"
)

const (
	CSVFilename = "gifnar-volunteer-log.csv"
	CSVHeader   = "date,organization,hours,tasks,reflection,tags,created_at"
)

// ToCSV renders one header row and one row per entry. Text fields are always
// quoted so embedded commas and newlines survive; hours is left bare.
func ToCSV(entries []entry.Entry) string {
	var b strings.Builder
	b.WriteString(CSVHeader)
	b.WriteByte('\n')

	for _, e := range entries {
		row := []string{
			quote(e.Date),
			quote(e.Org),
			formatHours(e.Hours),
			quote(e.Tasks),
			quote(e.Reflection),
			quote(e.Tags),
			quote(e.CreatedAt),
		}
		b.WriteString(strings.Join(row, ","))
		b.WriteByte('\n')
	}
	return b.String()
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// formatHours prints the shortest exact decimal: 2 not 2.0, 2.5 not 2.500000.
func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}
