package entry

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
)

// TimeLayout is the created_at format: UTC, fixed width, so string order
// matches time order.
const TimeLayout = "2006-01-02 15:04:05.000000000 UTC"

// Entry is one logged volunteering session.
type Entry struct {
	ID         string  `json:"id"`
	Date       string  `json:"date"` // YYYY-MM-DD
	Org        string  `json:"org"`
	Hours      float64 `json:"hours"`
	Tasks      string  `json:"tasks"`
	Reflection string  `json:"reflection"`
	Tags       string  `json:"tags"` // comma-separated
	CreatedAt  string  `json:"created_at"`
}

// ErrInvalidEntry marks a record that Build could never have produced.
var ErrInvalidEntry = errors.New("invalid entry")

// Validate checks what Build guarantees for every saved entry: id, date,
// org and created_at are set and hours is a finite number above zero.
func (e Entry) Validate() error {
	for _, f := range []struct{ name, v string }{
		{"id", e.ID}, {"date", e.Date}, {"org", e.Org}, {"created_at", e.CreatedAt},
	} {
		if strings.TrimSpace(f.v) == "" {
			return fmt.Errorf("%w: empty %s", ErrInvalidEntry, f.name)
		}
	}
	if math.IsNaN(e.Hours) || math.IsInf(e.Hours, 0) || e.Hours <= 0 {
		return fmt.Errorf("%w: hours %v", ErrInvalidEntry, e.Hours)
	}
	return nil
}

// TagList splits Tags on commas, dropping blank items.
func (e Entry) TagList() []string {
	var tags []string
	for _, t := range strings.Split(e.Tags, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// SortNewestFirst returns a copy of entries ordered by CreatedAt descending.
// Entries with equal timestamps keep their relative order.
func SortNewestFirst(entries []Entry) []Entry {
	out := slices.Clone(entries)
	slices.SortStableFunc(out, func(a, b Entry) int {
		return strings.Compare(b.CreatedAt, a.CreatedAt)
	})
	return out
}

// Prepend returns a new list with e at index 0 followed by entries.
// The input slice is never modified.
func Prepend(entries []Entry, e Entry) []Entry {
	out := make([]Entry, 0, len(entries)+1)
	out = append(out, e)
	return append(out, entries...)
}

// TotalHours sums the hours of entries.
func TotalHours(entries []Entry) float64 {
	var total float64
	for _, e := range entries {
		total += e.Hours
	}
	return total
}
