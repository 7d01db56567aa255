package logbook

import (
	"cmp"
	"slices"

	"github.com/gifnar/volunteerlog/internal/entry"
)

// OrgHours is the total logged for one organization.
type OrgHours struct {
	Org      string
	Hours    float64
	Sessions int
}

// Summary groups hours by organization, largest total first, ties by name.
func (l *Logbook) Summary() []OrgHours {
	return Summarize(l.entries)
}

func Summarize(entries []entry.Entry) []OrgHours {
	idx := make(map[string]int)
	var out []OrgHours
	for _, e := range entries {
		i, ok := idx[e.Org]
		if !ok {
			i = len(out)
			idx[e.Org] = i
			out = append(out, OrgHours{Org: e.Org})
		}
		out[i].Hours += e.Hours
		out[i].Sessions++
	}
	slices.SortFunc(out, func(a, b OrgHours) int {
		if c := cmp.Compare(b.Hours, a.Hours); c != 0 {
			return c
		}
		return cmp.Compare(a.Org, b.Org)
	})
	return out
}

// TotalHours sums every session in the log.
func (l *Logbook) TotalHours() float64 {
	return entry.TotalHours(l.entries)
}
