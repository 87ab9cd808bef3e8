package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Key layout: runPrefix + zero-padded start time in nanoseconds, so keys
// sort chronologically.
const runPrefix = "run/"

// Run is one recorded perft count.
type Run struct {
	FEN       string        `json:"fen"`
	Depth     int           `json:"depth"`
	Nodes     int64         `json:"nodes"`
	Expected  int64         `json:"expected,omitempty"`
	Checked   bool          `json:"checked"` // Expected holds a reference count
	Elapsed   time.Duration `json:"elapsed"`
	StartedAt time.Time     `json:"started_at"`
	Version   string        `json:"version,omitempty"`
}

// Passed reports whether the run matched its reference count.
// Unchecked runs always pass.
func (r Run) Passed() bool {
	return !r.Checked || r.Nodes == r.Expected
}

// NPS returns nodes per second, or zero for an instant run.
func (r Run) NPS() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Nodes) / r.Elapsed.Seconds()
}

func runKey(t time.Time) []byte {
	return []byte(fmt.Sprintf("%s%020d", runPrefix, t.UnixNano()))
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

// NewStorage opens the database in the platform data directory.
func NewStorage() (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dbDir)
}

// Open opens or creates a database in dir.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordRun stores a run. StartedAt defaults to now; runs sharing a start
// time are nudged forward so none is overwritten.
func (s *Storage) RecordRun(run Run) error {
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}

	return s.db.Update(func(txn *badger.Txn) error {
		for {
			_, err := txn.Get(runKey(run.StartedAt))
			if err == badger.ErrKeyNotFound {
				break
			}
			if err != nil {
				return err
			}
			run.StartedAt = run.StartedAt.Add(time.Nanosecond)
		}

		data, err := json.Marshal(run)
		if err != nil {
			return err
		}
		return txn.Set(runKey(run.StartedAt), data)
	})
}

// History returns up to limit runs, newest first, optionally restricted to
// one FEN. A limit of zero or less returns every run.
func (s *Storage) History(fen string, limit int) ([]Run, error) {
	var runs []Run

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = []byte(runPrefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		// Reverse iteration starts at the last key not above the seek key.
		for it.Seek([]byte(runPrefix + "~")); it.ValidForPrefix([]byte(runPrefix)); it.Next() {
			var run Run
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &run)
			})
			if err != nil {
				return err
			}
			if fen != "" && run.FEN != fen {
				continue
			}
			runs = append(runs, run)
			if limit > 0 && len(runs) >= limit {
				break
			}
		}
		return nil
	})

	return runs, err
}

// LastRun returns the most recent run for a FEN and depth. ok is false when
// there is none.
func (s *Storage) LastRun(fen string, depth int) (run Run, ok bool, err error) {
	runs, err := s.History(fen, 0)
	if err != nil {
		return Run{}, false, err
	}
	for _, r := range runs {
		if r.Depth == depth {
			return r, true, nil
		}
	}
	return Run{}, false, nil
}

// Clear deletes every recorded run.
func (s *Storage) Clear() error {
	return s.db.DropPrefix([]byte(runPrefix))
}
