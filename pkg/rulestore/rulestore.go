// Package rulestore persists the user's ignored-rule list. Deactivated rule
// IDs are stored together with a human-readable description so the list can
// be reviewed and individual rules re-activated later.
package rulestore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/gramlint/pkg/fsutil"
)

// DefaultFileName is the file the store writes under the user config
// directory.
const DefaultFileName = "ignored.yml"

// NoDescription is stored when a rule carries no description of its own.
const NoDescription = "no description"

// ErrIndexOutOfRange is returned by Remove for an invalid entry index.
var ErrIndexOutOfRange = errors.New("no ignored rule at index")

// Entry is one deactivated rule.
type Entry struct {
	// ID is the rule identifier sent to the server via disabledRules.
	ID string `yaml:"id"`

	// Description is the rule's human-readable description, kept so the
	// ignore list is reviewable without a server round-trip.
	Description string `yaml:"description"`
}

// Store reads and writes the ignored-rule list at a fixed path. All
// mutations are read-modify-write of the whole list; writes are atomic.
type Store struct {
	path string
}

// New creates a store backed by the file at path.
func New(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns the user-scoped store location,
// $XDG_CONFIG_HOME/gramlint/ignored.yml with the usual ~/.config fallback.
func DefaultPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "gramlint", DefaultFileName), nil
}

// Path returns the store's file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the ignored-rule list. A missing file is an empty list, not an
// error.
func (s *Store) Load(ctx context.Context) ([]Entry, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("load ignored rules: %w", ctx.Err())
	default:
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	var entries []Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}

	return entries, nil
}

// Save writes the whole list atomically, creating the parent directory if
// needed. Insertion order is preserved.
func (s *Store) Save(ctx context.Context, entries []Entry) error {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(entries); err != nil {
		return fmt.Errorf("encode ignored rules: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("close encoder: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	if err := fsutil.WriteAtomic(ctx, s.path, buf.Bytes(), fsutil.DefaultFileMode); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}

	return nil
}

// Add appends the entry and saves. There is no deduplication: ignoring a
// rule that is already on the list appends a second entry.
func (s *Store) Add(ctx context.Context, entry Entry) error {
	if entry.Description == "" {
		entry.Description = NoDescription
	}

	entries, err := s.Load(ctx)
	if err != nil {
		return err
	}

	return s.Save(ctx, append(entries, entry))
}

// Remove deletes the entry at index and saves, returning the removed entry.
func (s *Store) Remove(ctx context.Context, index int) (Entry, error) {
	entries, err := s.Load(ctx)
	if err != nil {
		return Entry{}, err
	}

	if index < 0 || index >= len(entries) {
		return Entry{}, fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, index, len(entries))
	}

	removed := entries[index]
	entries = append(entries[:index], entries[index+1:]...)

	if err := s.Save(ctx, entries); err != nil {
		return Entry{}, err
	}

	return removed, nil
}

// IDs extracts the rule IDs in list order, the comma-join input for the
// disabledRules request field.
func IDs(entries []Entry) []string {
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	return ids
}
