package export

import (
	"encoding/json"
	"fmt"

	"github.com/gifnar/volunteerlog/internal/entry"
)

const JSONFilename = "gifnar-volunteer-log.json"

// ToJSON renders entries as indented JSON. Every field is kept, so FromJSON
// gives back an equal list. An empty list renders as [].
func ToJSON(entries []entry.Entry) (string, error) {
	if entries == nil {
		entries = []entry.Entry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal json: %w", err)
	}
	return string(data), nil
}

func FromJSON(data []byte) ([]entry.Entry, error) {
	var entries []entry.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("unmarshal json: %w", err)
	}
	if entries == nil {
		entries = []entry.Entry{}
	}
	return entries, nil
}
