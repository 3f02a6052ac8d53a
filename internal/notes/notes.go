// Package notes keeps the advocate's per-case notes and reminder dates.
package notes

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/rongwang/nyayadrishti/internal/dataset"
	"github.com/rongwang/nyayadrishti/internal/repository"
)

// ErrInvalidDate is returned for a reminder date that cannot be parsed
var ErrInvalidDate = errors.New("invalid reminder date")

// Reminder is one saved reminder
type Reminder struct {
	CNR     string    `json:"cnr_number"`
	Date    time.Time `json:"-"`
	Day     string    `json:"date"`
	Due     string    `json:"due"`
	Overdue bool      `json:"overdue"`
}

// Store reads and writes the notes and reminders documents
type Store struct {
	notes     *repository.DocumentStore
	reminders *repository.DocumentStore
	logger    *zap.Logger
}

// NewStore creates a store over the two documents
func NewStore(notes, reminders *repository.DocumentStore, logger *zap.Logger) *Store {
	return &Store{notes: notes, reminders: reminders, logger: logger}
}

func (s *Store) read(ctx context.Context, doc *repository.DocumentStore) map[string]string {
	entries, err := doc.Read(ctx)
	if err != nil {
		s.logger.Warn("store unavailable, treating as empty", zap.String("document", doc.Document()), zap.Error(err))
		return map[string]string{}
	}
	return entries
}

// Note returns the note for a case, or "" when there is none
func (s *Store) Note(ctx context.Context, cnr string) string {
	return s.read(ctx, s.notes)[cnr]
}

// SetNote saves the note for a case. Blank text removes it.
func (s *Store) SetNote(ctx context.Context, cnr, text string) error {
	err := s.notes.Update(ctx, func(entries map[string]string) {
		if strings.TrimSpace(text) == "" {
			delete(entries, cnr)
			return
		}
		entries[cnr] = text
	})
	if err != nil {
		return fmt.Errorf("error saving note: %w", err)
	}
	return nil
}

// SetReminder saves the reminder date for a case in YYYY-MM-DD form. A blank
// date removes it.
func (s *Store) SetReminder(ctx context.Context, cnr, date string) (string, error) {
	day := ""
	if strings.TrimSpace(date) != "" {
		t, ok := dataset.ParseDate(date)
		if !ok {
			return "", fmt.Errorf("%w: %q", ErrInvalidDate, date)
		}
		day = t.Format(dataset.DateLayout)
	}

	err := s.reminders.Update(ctx, func(entries map[string]string) {
		if day == "" {
			delete(entries, cnr)
			return
		}
		entries[cnr] = day
	})
	if err != nil {
		return "", fmt.Errorf("error saving reminder: %w", err)
	}
	return day, nil
}

// Reminders lists saved reminders soonest first, with a relative due string
// such as "3 days from now". Entries whose date no longer parses are skipped.
func (s *Store) Reminders(ctx context.Context, now time.Time) []Reminder {
	today := dataset.DateValue(now).Date
	var out []Reminder
	for cnr, day := range s.read(ctx, s.reminders) {
		t, ok := dataset.ParseDate(day)
		if !ok {
			s.logger.Debug("skipping unparseable reminder", zap.String("cnr", cnr))
			continue
		}
		r := Reminder{
			CNR:     cnr,
			Date:    t,
			Day:     t.Format(dataset.DateLayout),
			Overdue: t.Before(today),
		}
		if t.Equal(today) {
			r.Due = "today"
		} else {
			r.Due = humanize.RelTime(t, today, "ago", "from now")
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].CNR < out[j].CNR
	})
	return out
}

// Reminder returns the saved reminder day for a case, or ""
func (s *Store) Reminder(ctx context.Context, cnr string) string {
	return s.read(ctx, s.reminders)[cnr]
}
