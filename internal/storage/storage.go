// Package storage persists the last game-data versions the watcher has announced.
package storage

import (
	"fmt"
	"strings"
	"time"
)

// Record is a stored version and when it was recorded.
type Record struct {
	Version    string
	RecordedAt time.Time
}

// Store tracks the last-seen version per kind (game data, localization, ...).
type Store interface {
	Close() error
	Version(kind string) (Record, bool, error)
	SetVersion(kind, version string, at time.Time) error
}

// NewStore creates the configured storage backend.
func NewStore(typ, path string) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))

	switch typ {
	case "", "none", "disabled":
		return noopStore{}, nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		return openBolt(path)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

// noopStore never remembers anything, so every poll looks like a change.
type noopStore struct{}

func (noopStore) Close() error                               { return nil }
func (noopStore) Version(string) (Record, bool, error)       { return Record{}, false, nil }
func (noopStore) SetVersion(string, string, time.Time) error { return nil }
