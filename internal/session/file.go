package session

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

// FileStorage is a Storage persisted to a TOML file readable by its owner only
type FileStorage struct {
	path string
	mu   sync.Mutex
}

// NewFileStorage creates a FileStorage at the given path, the file is created on first write
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

// read returns the stored values, an absent file means no values
func (f *FileStorage) read() (map[string]string, error) {
	values := make(map[string]string)
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return values, nil
	} else if err != nil {
		return nil, errors.Wrap(err, "session: error reading file")
	}
	if err = toml.Unmarshal(data, &values); err != nil {
		return nil, errors.Wrapf(err, "session: error parsing file %s", f.path)
	}
	return values, nil
}

func (f *FileStorage) write(values map[string]string) error {
	data, err := toml.Marshal(values)
	if err != nil {
		return errors.Wrap(err, "session: error encoding file")
	}
	if err = os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return errors.Wrap(err, "session: error creating directory")
	}
	// replaced atomically
	tmp := f.path + ".tmp"
	if err = os.WriteFile(tmp, data, 0o600); err != nil {
		return errors.Wrap(err, "session: error writing file")
	}
	return errors.Wrap(os.Rename(tmp, f.path), "session: error replacing file")
}

// Get implements the Storage interface
func (f *FileStorage) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.read()
	if err != nil {
		return "", err
	}
	value, ok := values[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return value, nil
}

// Set implements the Storage interface
func (f *FileStorage) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.read()
	if err != nil {
		return err
	}
	values[key] = value
	return f.write(values)
}

// Del implements the Storage interface
func (f *FileStorage) Del(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.read()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return f.write(values)
}
