// Package store persists named collections as JSON payloads under a key prefix.
//
// Reads never fail: missing or corrupt data is logged and reported as absent so
// the caller falls back to its default. Writes never fail either: marshal and
// backend errors are logged, counted and kept as LastError, and the caller's
// in-memory state stays authoritative.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/diewo77/go-dairy/internal/metrics"
	"github.com/diewo77/go-dairy/internal/models"
)

const (
	// DefaultPrefix namespaces every key written by the store.
	DefaultPrefix = "yd-"
	// SchemaVersion is written in every envelope.
	SchemaVersion = 1
)

// Backend is the durable key/value medium behind a Store.
type Backend interface {
	Read(ctx context.Context, key string) ([]byte, bool, error)
	Write(ctx context.Context, key string, payload []byte) error
}

type envelope struct {
	Version int             `json:"version"`
	Data    json.RawMessage `json:"data"`
}

type Store struct {
	backend Backend
	prefix  string
	logger  *log.Logger
	metrics *metrics.Metrics

	mu      sync.Mutex
	lastErr error
}

type Option func(*Store)

func WithPrefix(prefix string) Option {
	return func(s *Store) { s.prefix = prefix }
}

func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

func New(backend Backend, opts ...Option) *Store {
	s := &Store{backend: backend, prefix: DefaultPrefix, logger: log.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the backend key used for collection key.
func (s *Store) Key(key string) string { return s.prefix + key }

// Get decodes the stored value of key into dst and reports whether it was found.
func (s *Store) Get(ctx context.Context, key string, dst any) bool {
	found, _ := s.Lookup(ctx, key, dst)
	return found
}

// Lookup is Get that also returns the backend read error. Corrupt data is still
// reported as not found with a nil error.
func (s *Store) Lookup(ctx context.Context, key string, dst any) (bool, error) {
	raw, ok, err := s.backend.Read(ctx, s.Key(key))
	if err != nil {
		s.logger.Printf("[store] read %s: %v", s.Key(key), err)
		return false, err
	}
	if !ok {
		return false, nil
	}
	data, err := unwrap(raw)
	if err != nil {
		s.logger.Printf("[store] corrupt data for %s, using default: %v", s.Key(key), err)
		return false, nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		s.logger.Printf("[store] corrupt data for %s, using default: %v", s.Key(key), err)
		return false, nil
	}
	return true, nil
}

// Set stores v under key.
func (s *Store) Set(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.fail(key, fmt.Errorf("marshal: %w", err))
		return
	}
	payload, err := json.Marshal(envelope{Version: SchemaVersion, Data: data})
	if err != nil {
		s.fail(key, fmt.Errorf("marshal envelope: %w", err))
		return
	}
	if err := s.backend.Write(ctx, s.Key(key), payload); err != nil {
		s.fail(key, err)
	}
}

// LastError returns the most recent absorbed write failure, if any.
func (s *Store) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Store) fail(key string, err error) {
	perr := models.Persistence(s.Key(key), err)
	s.logger.Printf("[store] %v", perr)
	s.metrics.PersistFailed()
	s.mu.Lock()
	s.lastErr = perr
	s.mu.Unlock()
}

// Load returns the stored value of key, or def when it is missing or corrupt.
func Load[T any](ctx context.Context, s *Store, key string, def T) T {
	var v T
	if s.Get(ctx, key, &v) {
		return v
	}
	return def
}

// unwrap strips the envelope. Payloads written before envelopes existed are returned as is.
func unwrap(raw []byte) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty payload")
	}
	if trimmed[0] != '{' {
		return trimmed, nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil, err
	}
	rawVersion, hasVersion := fields["version"]
	data, hasData := fields["data"]
	if !hasVersion || !hasData || len(fields) != 2 {
		return trimmed, nil
	}
	var version int
	if err := json.Unmarshal(rawVersion, &version); err != nil {
		return nil, fmt.Errorf("schema version: %w", err)
	}
	if version < 1 || version > SchemaVersion {
		return nil, fmt.Errorf("unsupported schema version %d", version)
	}
	return data, nil
}
