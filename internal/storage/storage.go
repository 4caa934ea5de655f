package storage

import (
	"fmt"
	"strings"
)

// Package storage archives fetched time-series documents locally so they
// can be inspected offline. The store is written after successful fetches
// and is never consulted on the request path.

// Store persists raw time-series documents keyed by query.
type Store interface {
	Close() error
	SaveSeries(key string, doc []byte) error
	LoadSeries(key string) ([]byte, bool, error)
	Keys() ([]string, error)
}

// NewStore creates the configured storage backend.
func NewStore(typ, path string) (Store, error) {
	switch strings.TrimSpace(strings.ToLower(typ)) {
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

type noopStore struct{}

func (noopStore) Close() error { return nil }

func (noopStore) SaveSeries(string, []byte) error { return nil }

func (noopStore) LoadSeries(string) ([]byte, bool, error) { return nil, false, nil }

func (noopStore) Keys() ([]string, error) { return nil, nil }
