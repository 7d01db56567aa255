package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/gifnar/volunteerlog/internal/entry"
)

// Key is the slot holding the whole entry list.
const Key = "gifnar_volunteer_log_v1"

// Entries persists the entry list as one JSON value under Key.
// Storage failures never reach the caller: Load degrades to an empty list
// and Save drops the write.
type Entries struct {
	kv  KV
	log *slog.Logger
}

func NewEntries(kv KV, log *slog.Logger) *Entries {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Entries{kv: kv, log: log.With("slot", Key)}
}

// Load returns the stored list in stored order. It is not sorted.
func (e *Entries) Load() []entry.Entry {
	raw, err := e.kv.Get(Key)
	if errors.Is(err, ErrNotFound) {
		e.log.Debug("no saved entries")
		return []entry.Entry{}
	}
	if err != nil {
		e.log.Warn("load entries", "err", err)
		return []entry.Entry{}
	}

	list, err := decodeEntries(raw)
	if err != nil {
		e.log.Warn("decode entries", "err", err, "bytes", len(raw))
		return []entry.Entry{}
	}
	e.log.Debug("loaded entries", "count", len(list))
	return list
}

// storedEntry mirrors entry.Entry with pointer fields so a missing key can
// be told apart from an empty value.
type storedEntry struct {
	ID         *string  `json:"id"`
	Date       *string  `json:"date"`
	Org        *string  `json:"org"`
	Hours      *float64 `json:"hours"`
	Tasks      *string  `json:"tasks"`
	Reflection *string  `json:"reflection"`
	Tags       *string  `json:"tags"`
	CreatedAt  *string  `json:"created_at"`
}

// decodeEntries accepts a slot only if every record has all fields and
// passes entry.Validate. One bad record rejects the whole list.
func decodeEntries(raw []byte) ([]entry.Entry, error) {
	var stored []storedEntry
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, err
	}

	list := make([]entry.Entry, 0, len(stored))
	for i, s := range stored {
		if s.ID == nil || s.Date == nil || s.Org == nil || s.Hours == nil ||
			s.Tasks == nil || s.Reflection == nil || s.Tags == nil || s.CreatedAt == nil {
			return nil, fmt.Errorf("record %d: missing field", i)
		}
		e := entry.Entry{
			ID:         *s.ID,
			Date:       *s.Date,
			Org:        *s.Org,
			Hours:      *s.Hours,
			Tasks:      *s.Tasks,
			Reflection: *s.Reflection,
			Tags:       *s.Tags,
			CreatedAt:  *s.CreatedAt,
		}
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		list = append(list, e)
	}
	return list, nil
}

func (e *Entries) Save(list []entry.Entry) {
	if list == nil {
		list = []entry.Entry{}
	}
	raw, err := json.Marshal(list)
	if err != nil {
		e.log.Warn("encode entries", "err", err)
		return
	}
	if err := e.kv.Put(Key, raw); err != nil {
		e.log.Warn("save entries", "err", err, "count", len(list))
		return
	}
	e.log.Debug("saved entries", "count", len(list))
}
