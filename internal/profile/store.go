package profile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var (
	ErrNotFound  = errors.New("profile not found")
	ErrCorrupted = errors.New("stored profile is corrupted")
)

//go:generate mockgen -source=store.go -destination=../mocks/profile/mock_store.go -package=mock_profile

// Store persists a single profile record.
type Store interface {
	Load() (Profile, error)
	Save(p Profile) error
	Delete() error
}

// FileStore keeps the profile as a YAML document named after a fixed namespace.
type FileStore struct {
	rootDir   string
	namespace string
}

// NewFileStore creates a store writing <stateDirectory>/<namespace>.yml.
func NewFileStore(stateDirectory, namespace string) *FileStore {
	return &FileStore{
		rootDir:   stateDirectory,
		namespace: namespace,
	}
}

// Path returns the file holding the profile.
func (store *FileStore) Path() string {
	return filepath.Join(store.rootDir, store.namespace+".yml")
}

// Load returns ErrNotFound when nothing has been saved and ErrCorrupted when the file
// does not decode into a profile with an identifier.
func (store *FileStore) Load() (Profile, error) {
	var result Profile

	file, err := os.Open(store.Path())
	if errors.Is(err, os.ErrNotExist) {
		return result, ErrNotFound
	}
	if err != nil {
		return result, fmt.Errorf("os.Open(%s) > %w", store.Path(), err)
	}
	defer func() {
		_ = file.Close()
	}()

	if err := yaml.NewDecoder(file).Decode(&result); err != nil {
		return Profile{}, fmt.Errorf("%w: yaml.NewDecoder().Decode() > %v", ErrCorrupted, err)
	}
	if result.ID == "" {
		return Profile{}, fmt.Errorf("%w: missing id", ErrCorrupted)
	}
	return result, nil
}

func (store *FileStore) Save(p Profile) error {
	if err := os.MkdirAll(store.rootDir, 0o755); err != nil {
		return fmt.Errorf("os.MkdirAll(%s) > %w", store.rootDir, err)
	}

	file, err := os.Create(store.Path())
	if err != nil {
		return fmt.Errorf("os.Create(%s) > %w", store.Path(), err)
	}
	defer func() {
		_ = file.Close()
	}()

	if err := yaml.NewEncoder(file).Encode(p); err != nil {
		return fmt.Errorf("yaml.NewEncoder().Encode() > %w", err)
	}
	return nil
}

// Delete removes the stored profile. Deleting a missing profile is not an error.
func (store *FileStore) Delete() error {
	if err := os.Remove(store.Path()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("os.Remove(%s) > %w", store.Path(), err)
	}
	return nil
}
