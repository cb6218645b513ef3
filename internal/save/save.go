// Package save persists clicker snapshots in a key-value store and converts
// them to and from the base64 export format.
package save

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vovakirdan/tui-clicker/internal/clicker"
)

// Key is the store key of the local snapshot.
const Key = "clickerGame"

// KeyFor returns the snapshot key of a named player. An empty name maps to Key.
func KeyFor(player string) string {
	if player == "" {
		return Key
	}
	return Key + ":" + player
}

// ErrInvalidSave reports data that is not a well-formed snapshot.
var ErrInvalidSave = errors.New("save: invalid snapshot")

// requiredFields must all be present in a stored snapshot.
var requiredFields = []string{
	"resources",
	"upgrades",
	"achievements",
	"prestige",
	"statistics",
	"settings",
	"gameVersion",
}

// KV is the byte store snapshots live in.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}

// Store reads and writes the snapshot under one key.
type Store struct {
	kv  KV
	key string
	now func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used to stamp lastSave.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates a snapshot store over kv. An empty key uses Key.
func NewStore(kv KV, key string, opts ...Option) *Store {
	if key == "" {
		key = Key
	}
	s := &Store{kv: kv, key: key, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the store key in use.
func (s *Store) Key() string {
	return s.key
}

// Save stamps lastSave and writes the snapshot. It returns the stamped state.
func (s *Store) Save(ctx context.Context, st clicker.State) (clicker.State, error) {
	st.LastSave = s.now().UnixMilli()
	data, err := Encode(st)
	if err != nil {
		return st, err
	}
	if err := s.kv.Put(ctx, s.key, data); err != nil {
		return st, fmt.Errorf("save: cannot write %s: %w", s.key, err)
	}
	return st, nil
}

// Load reads the snapshot. ok is false when nothing usable is stored; err is
// set when the stored data was unreadable or invalid.
func (s *Store) Load(ctx context.Context) (st clicker.State, ok bool, err error) {
	data, found, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return clicker.State{}, false, fmt.Errorf("save: cannot read %s: %w", s.key, err)
	}
	if !found {
		return clicker.State{}, false, nil
	}
	st, err = Decode(data)
	if err != nil {
		return clicker.State{}, false, err
	}
	return st, true, nil
}

// Clear removes the stored snapshot.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("save: cannot delete %s: %w", s.key, err)
	}
	return nil
}

// Export returns the stored snapshot as base64, or "" when nothing is stored.
func (s *Store) Export(ctx context.Context) (string, error) {
	data, found, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return "", fmt.Errorf("save: cannot read %s: %w", s.key, err)
	}
	if !found {
		return "", nil
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// Import decodes a base64 export, validates it and stores it verbatim.
// On any failure the store is left untouched.
func (s *Store) Import(ctx context.Context, encoded string) (clicker.State, error) {
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return clicker.State{}, fmt.Errorf("%w: base64: %v", ErrInvalidSave, err)
	}
	st, err := Decode(data)
	if err != nil {
		return clicker.State{}, err
	}
	if err := s.kv.Put(ctx, s.key, data); err != nil {
		return clicker.State{}, fmt.Errorf("save: cannot write %s: %w", s.key, err)
	}
	return st, nil
}

// Encode serialises a snapshot.
func Encode(st clicker.State) ([]byte, error) {
	data, err := json.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("save: cannot encode snapshot: %w", err)
	}
	return data, nil
}

// Decode validates and parses a stored snapshot.
func Decode(data []byte) (clicker.State, error) {
	if err := Validate(data); err != nil {
		return clicker.State{}, err
	}
	var st clicker.State
	if err := json.Unmarshal(data, &st); err != nil {
		return clicker.State{}, fmt.Errorf("%w: %v", ErrInvalidSave, err)
	}
	return st, nil
}

// Validate checks that data is a JSON object carrying every snapshot field.
func Validate(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSave, err)
	}
	if fields == nil {
		return fmt.Errorf("%w: not an object", ErrInvalidSave)
	}
	for _, name := range requiredFields {
		if _, ok := fields[name]; !ok {
			return fmt.Errorf("%w: missing %q", ErrInvalidSave, name)
		}
	}
	return nil
}
