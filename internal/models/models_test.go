// ABOUTME: Tests for diary entry validation and date helpers.
// ABOUTME: Covers required-field checks, date parsing, and value equality.
package models

import (
	"errors"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	date := time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		entry DiaryEntry
		want  []error
	}{
		{"valid", NewDiaryEntry("t1", "c1", date), nil},
		{"empty title", NewDiaryEntry("", "c1", date), []error{ErrEmptyTitle}},
		{"blank title", NewDiaryEntry("   ", "c1", date), []error{ErrEmptyTitle}},
		{"empty contents", NewDiaryEntry("t1", "", date), []error{ErrEmptyContents}},
		{"missing date", NewDiaryEntry("t1", "c1", time.Time{}), []error{ErrMissingDate}},
		{"everything missing", DiaryEntry{}, []error{ErrEmptyTitle, ErrEmptyContents, ErrMissingDate}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.entry)
			if len(tt.want) == 0 {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			for _, want := range tt.want {
				if !errors.Is(err, want) {
					t.Errorf("Validate() = %v, want it to include %v", err, want)
				}
			}
		})
	}
}

func TestNewDiaryEntryIsUnstarred(t *testing.T) {
	e := NewDiaryEntry("t", "c", time.Now())
	if e.IsStar {
		t.Error("expected new entries to be unstarred")
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate(" 2023-01-10 ")
	if err != nil {
		t.Fatalf("ParseDate error: %v", err)
	}
	want := time.Date(2023, 1, 10, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ParseDate = %v, want %v", got, want)
	}

	for _, bad := range []string{"", "2023/01/10", "yesterday", "2023-13-01"} {
		if _, err := ParseDate(bad); err == nil {
			t.Errorf("ParseDate(%q) expected error", bad)
		}
	}
}

func TestFormatDate(t *testing.T) {
	got := FormatDate(time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC))
	if got != "2023-03-01 (Wed)" {
		t.Errorf("FormatDate = %q", got)
	}
}

func TestEqualComparesInstants(t *testing.T) {
	utc := time.Date(2023, 3, 1, 9, 0, 0, 0, time.UTC)
	tokyo := utc.In(time.FixedZone("JST", 9*60*60))

	a := NewDiaryEntry("t", "c", utc)
	b := NewDiaryEntry("t", "c", tokyo)
	if !a.Equal(b) {
		t.Error("expected entries with the same instant to be equal")
	}

	b.IsStar = true
	if a.Equal(b) {
		t.Error("expected star flag to participate in equality")
	}
}
