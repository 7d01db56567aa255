// Package logbook holds the in-memory entry list and applies every change
// to it through the persistence store. It talks to the user only through
// the Confirmer, Alerter and Downloader collaborators, so any front end (or
// a test) can drive it.
package logbook

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/gifnar/volunteerlog/internal/entry"
	"github.com/gifnar/volunteerlog/internal/export"
)

const clearPrompt = "Clear ALL saved entries on this device?"

// Repository loads and saves the whole entry list. Implementations absorb
// their own storage errors.
type Repository interface {
	Load() []entry.Entry
	Save([]entry.Entry)
}

// Confirmer asks a yes/no question before a destructive action.
type Confirmer interface {
	Confirm(prompt string) bool
}

// Alerter reports a rejected form to the user.
type Alerter interface {
	Alert(msg string)
}

// Downloader hands an export to the user, e.g. by writing a file.
type Downloader interface {
	Download(filename, content string) error
}

type Logbook struct {
	repo      Repository
	builder   *entry.Builder
	confirmer Confirmer
	alerter   Alerter
	download  Downloader
	log       *slog.Logger

	entries []entry.Entry
}

type Option func(*Logbook)

func WithBuilder(b *entry.Builder) Option { return func(l *Logbook) { l.builder = b } }
func WithConfirmer(c Confirmer) Option { return func(l *Logbook) { l.confirmer = c } }
func WithAlerter(a Alerter) Option { return func(l *Logbook) { l.alerter = a } }
func WithDownloader(d Downloader) Option { return func(l *Logbook) { l.download = d } }
func WithLogger(log *slog.Logger) Option { return func(l *Logbook) { l.log = log } }

// Open loads the saved list and sorts it newest-first. This is the only
// place a full sort happens.
func Open(repo Repository, opts ...Option) *Logbook {
	l := &Logbook{
		repo:    repo,
		builder: entry.NewBuilder(),
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.entries = entry.SortNewestFirst(repo.Load())
	if l.entries == nil {
		l.entries = []entry.Entry{}
	}
	l.log.Info("logbook opened", "entries", len(l.entries))
	return l
}

// Entries returns a copy of the current list, newest first.
func (l *Logbook) Entries() []entry.Entry {
	return slices.Clone(l.entries)
}

func (l *Logbook) Len() int { return len(l.entries) }

// Add validates f and, on success, prepends the new entry and saves the
// whole list. A validation failure is alerted and returned; nothing is saved.
func (l *Logbook) Add(f entry.Fields) (entry.Entry, error) {
	e, err := l.builder.Build(f)
	if err != nil {
		l.log.Debug("entry rejected", "err", err)
		if l.alerter != nil {
			l.alerter.Alert(err.Error())
		}
		return entry.Entry{}, err
	}

	next := entry.Prepend(l.entries, e)
	l.repo.Save(next)
	l.entries = next
	l.log.Info("entry added", "id", e.ID, "org", e.Org, "hours", e.Hours)
	return e, nil
}

// ClearAll empties the list after the user confirms. Without a Confirmer
// nothing is cleared.
func (l *Logbook) ClearAll() bool {
	if l.confirmer == nil || !l.confirmer.Confirm(clearPrompt) {
		return false
	}
	l.ClearConfirmed()
	return true
}

// ClearConfirmed empties the list for front ends that ask for confirmation
// asynchronously.
func (l *Logbook) ClearConfirmed() {
	next := []entry.Entry{}
	l.repo.Save(next)
	l.log.Info("entries cleared", "count", len(l.entries))
	l.entries = next
}

func (l *Logbook) ExportJSON() error {
	out, err := export.ToJSON(l.entries)
	if err != nil {
		return err
	}
	return l.send(export.JSONFilename, out)
}

func (l *Logbook) ExportCSV() error {
	return l.send(export.CSVFilename, export.ToCSV(l.entries))
}

func (l *Logbook) send(filename, content string) error {
	if l.download == nil {
		return fmt.Errorf("export %s: no downloader configured", filename)
	}
	if err := l.download.Download(filename, content); err != nil {
		return fmt.Errorf("export %s: %w", filename, err)
	}
	l.log.Info("exported", "file", filename, "entries", len(l.entries))
	return nil
}
