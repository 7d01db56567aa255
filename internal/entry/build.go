package entry

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrMissingRequired  = errors.New("missing required field")
	ErrNonPositiveHours = errors.New("hours must be greater than 0")
)

// ValidationError carries the user-facing message for a rejected form.
// errors.Is matches it against ErrMissingRequired or ErrNonPositiveHours.
type ValidationError struct {
	Kind    error
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return e.Kind }

// Fields is the raw, untrimmed form input for a new entry.
type Fields struct {
	Date       string
	Org        string
	Hours      string
	Tasks      string
	Reflection string
	Tags       string
}

// Builder validates form input and stamps new entries with an ID and a
// creation time.
type Builder struct {
	now   func() time.Time
	newID func() string
}

type Option func(*Builder)

func WithClock(now func() time.Time) Option {
	return func(b *Builder) { b.now = now }
}

func WithIDs(newID func() string) Option {
	return func(b *Builder) { b.newID = newID }
}

func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

var defaultBuilder = NewBuilder()

// Build validates f with the real clock and random IDs.
func Build(f Fields) (Entry, error) {
	return defaultBuilder.Build(f)
}

func (b *Builder) Build(f Fields) (Entry, error) {
	date := strings.TrimSpace(f.Date)
	org := strings.TrimSpace(f.Org)
	if date == "" || org == "" {
		return Entry{}, &ValidationError{
			Kind:    ErrMissingRequired,
			Message: "Please enter at least Date and Organization.",
		}
	}

	hours := ParseHours(f.Hours)
	if hours <= 0 {
		return Entry{}, &ValidationError{
			Kind:    ErrNonPositiveHours,
			Message: "Hours must be greater than 0.",
		}
	}

	return Entry{
		ID:         b.newID(),
		Date:       date,
		Org:        org,
		Hours:      hours,
		Tasks:      strings.TrimSpace(f.Tasks),
		Reflection: strings.TrimSpace(f.Reflection),
		Tags:       strings.TrimSpace(f.Tags),
		CreatedAt:  b.now().UTC().Format(TimeLayout),
	}, nil
}

// ParseHours is lenient: anything that is not a finite number reads as 0.
func ParseHours(raw string) float64 {
	h, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(h) || math.IsInf(h, 0) {
		return 0
	}
	return h
}
