// ABOUTME: DiaryStore owns the sorted in-memory diary list and keeps it durable.
// ABOUTME: Every mutation re-sorts by date descending and rewrites the whole slot.
package diary

import (
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/2389-research/diary/internal/models"
	"github.com/2389-research/diary/internal/storage"
)

// DefaultKey is the slot name used when none is given.
const DefaultKey = "diaryList"

// Store is the sole owner of the diary list. Callers only ever see copies.
type Store struct {
	mu      sync.Mutex
	kv      storage.KVStore
	key     string
	log     zerolog.Logger
	entries []models.DiaryEntry
}

// Option configures optional Store dependencies.
type Option func(*Store)

// WithLogger sets the logger used for load diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) {
		s.log = l
	}
}

// LoadReport summarizes what Load found in storage.
type LoadReport struct {
	Entries  []models.DiaryEntry // loaded entries, newest first
	Skipped  int                 // records dropped as malformed
	Failures []*DecodeError      // one per skipped record
	Found    bool                // the slot held a value
	Version  int                 // schema version of the slot (0 = legacy)

	// Unreadable is set when the slot held a value that could not be
	// interpreted as a diary document. The list is empty in that case and
	// the slot is left as it was.
	Unreadable error
}

// NewStore creates an empty store persisting under key in kv.
func NewStore(kv storage.KVStore, key string, opts ...Option) (*Store, error) {
	if kv == nil {
		return nil, fmt.Errorf("key-value store is required")
	}
	if key == "" {
		key = DefaultKey
	}
	s := &Store{
		kv:  kv,
		key: key,
		log: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Key returns the storage slot this store writes to.
func (s *Store) Key() string {
	return s.key
}

// Load replaces the in-memory list with the persisted one. Malformed records
// are skipped and reported, never returned as errors; the only error is a
// failure of the underlying storage. A readable slot is rewritten in
// normalized form.
func (s *Store) Load() (LoadReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok, err := s.kv.Get(s.key)
	if err != nil {
		return LoadReport{}, fmt.Errorf("failed to load diary list: %w", err)
	}

	report := LoadReport{Found: ok, Version: SchemaVersion}
	if !ok {
		s.entries = nil
		report.Entries = []models.DiaryEntry{}
		return report, nil
	}

	doc, err := decodeDocument(data)
	if err != nil {
		s.log.Warn().Str("key", s.key).Err(err).Msg("ignoring unreadable diary list")
		s.entries = nil
		report.Entries = []models.DiaryEntry{}
		report.Unreadable = err
		return report, nil
	}

	for _, f := range doc.failures {
		s.log.Debug().
			Str("key", s.key).
			Int("index", f.Index).
			Str("field", f.Field).
			Err(f.Err).
			Msg("skipped malformed diary record")
	}

	sortEntries(doc.entries)
	s.entries = doc.entries

	report.Version = doc.version
	report.Failures = doc.failures
	report.Skipped = len(doc.failures)
	report.Entries = s.snapshot()

	if err := s.save(); err != nil {
		return report, err
	}
	return report, nil
}

// Add appends entry, re-sorts the list, and persists it. The entry is not
// validated. If persisting fails the list is restored to its previous state
// and the error is returned, so the caller may retry the same Add.
func (s *Store) Add(entry models.DiaryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.snapshot()
	s.entries = append(s.entries, entry)
	sortEntries(s.entries)
	if err := s.save(); err != nil {
		s.entries = prev
		return err
	}
	return nil
}

// Save writes the full list to storage, replacing the previous value.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save()
}

// Entries returns a copy of the list, newest first.
func (s *Store) Entries() []models.DiaryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// At returns the entry at position i of the sorted list.
func (s *Store) At(i int) (models.DiaryEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.entries) {
		return models.DiaryEntry{}, false
	}
	return s.entries[i], true
}

func (s *Store) save() error {
	data, err := encodeEntries(s.entries)
	if err != nil {
		return fmt.Errorf("failed to encode diary list: %w", err)
	}
	if err := s.kv.Set(s.key, data); err != nil {
		return fmt.Errorf("failed to save diary list: %w", err)
	}
	s.log.Debug().Str("key", s.key).Int("entries", len(s.entries)).Msg("saved diary list")
	return nil
}

func (s *Store) snapshot() []models.DiaryEntry {
	out := make([]models.DiaryEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// sortEntries orders entries newest first. Entries with equal dates keep
// their relative order, so a new entry lands after older same-day ones.
func sortEntries(entries []models.DiaryEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})
}
