package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"qa_automation/domain/entities"
	"qa_automation/domain/interfaces"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// FixtureStore keeps fixtures as files under a root directory
type FixtureStore struct {
	dir string
}

var _ interfaces.FixtureStore = (*FixtureStore)(nil)

// NewFixtureStore - creates the store, creating dir when missing
func NewFixtureStore(dir string) (*FixtureStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create fixture directory: %w", err)
	}
	return &FixtureStore{dir: dir}, nil
}

// Dir - returns the root directory
func (s *FixtureStore) Dir() string {
	return s.dir
}

// Path - returns the file path of a fixture
func (s *FixtureStore) Path(name string) string {
	return filepath.Join(s.dir, name)
}

func (s *FixtureStore) resolve(name string) (string, error) {
	clean := filepath.Clean(name)
	if clean == "." || filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid fixture name %q", name)
	}
	return filepath.Join(s.dir, clean), nil
}

// LoadJSON - decodes a JSON fixture. A missing fixture error lists the available ones.
func (s *FixtureStore) LoadJSON(name string, v interface{}) error {
	path, err := s.resolve(name)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			available, _ := s.List()
			return fmt.Errorf("%w: %s (available: %s)", entities.ErrFixtureNotFound, path, strings.Join(available, ", "))
		}
		return err
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("invalid JSON in %s: %w", path, err)
	}
	return nil
}

// SaveJSON - writes v as indented JSON
func (s *FixtureStore) SaveJSON(name string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return s.SaveBytes(name, data)
}

// SaveBytes - writes raw data, creating parent directories
func (s *FixtureStore) SaveBytes(name string, data []byte) error {
	path, err := s.resolve(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", name, err)
	}
	return os.WriteFile(path, data, 0644)
}

// List - returns the sorted names of the JSON fixtures in the root directory
func (s *FixtureStore) List() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, "*.json"))
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, filepath.Base(m))
	}
	sort.Strings(names)
	return names, nil
}
