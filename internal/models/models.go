// ABOUTME: Core data model for diary entries.
// ABOUTME: Provides the entry constructor, caller-side validation, and date helpers.
package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the input format accepted for entry dates.
const DateLayout = "2006-01-02"

// DiaryEntry is a single diary record. Entries carry no identity; two entries
// with equal fields are distinct records.
type DiaryEntry struct {
	Title    string
	Contents string
	Date     time.Time
	IsStar   bool
}

// Validation errors returned by Validate.
var (
	ErrEmptyTitle    = errors.New("title is required")
	ErrEmptyContents = errors.New("contents is required")
	ErrMissingDate   = errors.New("date is required")
)

// NewDiaryEntry creates an unstarred entry.
func NewDiaryEntry(title, contents string, date time.Time) DiaryEntry {
	return DiaryEntry{
		Title:    title,
		Contents: contents,
		Date:     date,
	}
}

// Equal reports whether two entries hold the same values. Dates are compared
// as instants.
func (e DiaryEntry) Equal(other DiaryEntry) bool {
	return e.Title == other.Title &&
		e.Contents == other.Contents &&
		e.Date.Equal(other.Date) &&
		e.IsStar == other.IsStar
}

// Validate checks the fields the composition form requires before an entry
// may be registered. The store itself never calls this.
func Validate(e DiaryEntry) error {
	var errs []error
	if strings.TrimSpace(e.Title) == "" {
		errs = append(errs, ErrEmptyTitle)
	}
	if strings.TrimSpace(e.Contents) == "" {
		errs = append(errs, ErrEmptyContents)
	}
	if e.Date.IsZero() {
		errs = append(errs, ErrMissingDate)
	}
	return errors.Join(errs...)
}

// ParseDate parses a YYYY-MM-DD date as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}

// Today returns the current local calendar date as midnight UTC.
func Today() time.Time {
	y, m, d := time.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate renders a date for display, e.g. "2023-03-01 (Wed)".
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02 (Mon)")
}
