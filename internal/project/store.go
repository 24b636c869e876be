package project

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"
)

// Store persists the mapping from project name to accumulated total in a
// single JSON file. The file is read and rewritten wholesale: every save is
// a read-modify-write of the full mapping, replaced atomically, so entries
// for untouched projects survive a save.
//
// Absent or unreadable storage is never an error for readers: it degrades
// to an empty mapping, and Load reports what went wrong so the caller can
// warn the user.
type Store struct {
	mu   sync.Mutex
	path string

	// now is overridable in tests.
	now func() time.Time
}

func NewStore(path string) *Store {
	return &Store{path: path, now: time.Now}
}

// Load reads the whole mapping. A missing file yields an empty mapping and
// no error. A file that cannot be parsed yields an empty mapping plus the
// parse error; entries that are malformed or negative are skipped silently.
func (s *Store) Load() (map[string]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() (map[string]Record, error) {
	records := make(map[string]Record)

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return records, nil
	}
	if err != nil {
		return records, err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return records, fmt.Errorf("parse %s: %w", s.path, err)
	}

	for name, msg := range raw {
		rec, ok := decodeRecord(msg)
		if !ok || rec.Seconds < 0 {
			continue
		}
		records[name] = rec
	}
	return records, nil
}

// decodeRecord accepts either a full record object or a bare number of
// seconds, so hand-edited files keep working.
func decodeRecord(msg json.RawMessage) (Record, bool) {
	var rec Record
	if err := json.Unmarshal(msg, &rec); err == nil {
		return rec, true
	}
	var secs float64
	if err := json.Unmarshal(msg, &secs); err == nil {
		return Record{Seconds: secs}, true
	}
	return Record{}, false
}

// Seconds returns the stored total for name, or zero when the store is
// missing, unreadable, or has no entry. It never returns an error.
func (s *Store) Seconds(name string) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, _ := s.load()
	return records[name].Duration()
}

// Save updates name's total and rewrites the whole mapping. If the existing
// file cannot be parsed its entries are already lost; the save proceeds with
// what could be recovered.
func (s *Store) Save(name string, total time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if total < 0 {
		total = 0
	}
	records, _ := s.load()
	records[name] = Record{Seconds: total.Seconds(), UpdatedAt: s.now()}
	return s.write(records)
}

// Delete removes name's entry. Deleting an absent entry is not an error.
func (s *Store) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, _ := s.load()
	if _, ok := records[name]; !ok {
		return nil
	}
	delete(records, name)
	return s.write(records)
}

// Projects returns the stored project names, sorted.
func (s *Store) Projects() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, _ := s.load()
	names := make([]string, 0, len(records))
	for name := range records {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MostRecent returns the name of the most recently saved project, or ""
// when the store is empty. Entries without a timestamp lose ties to ones
// that have one.
func (s *Store) MostRecent() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, _ := s.load()
	var best string
	var bestAt time.Time
	for _, name := range sortedNames(records) {
		rec := records[name]
		if best == "" || rec.UpdatedAt.After(bestAt) {
			best = name
			bestAt = rec.UpdatedAt
		}
	}
	return best
}

func sortedNames(records map[string]Record) []string {
	names := make([]string, 0, len(records))
	for name := range records {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// write replaces the store file atomically so a failed write cannot leave
// a truncated mapping behind.
func (s *Store) write(records map[string]Record) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
