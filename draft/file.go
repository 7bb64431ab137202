package draft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

var _ Store = &FileStore{}

// FileStore keeps the draft as a single JSON file in a directory. Each save
// replaces the whole file, so the last write wins.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) Path() string {
	return filepath.Join(s.dir, Key+".json")
}

func (s *FileStore) Save(ctx context.Context, d Draft) error {
	if err := ctx.Err(); err != nil {
		return NewFailedToWriteError("Draft save cancelled", err)
	}

	data, err := json.Marshal(d)
	if err != nil {
		return NewFailedToTranslateError("Failed to encode draft", err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return NewFailedToWriteError(fmt.Sprintf("Failed to create draft directory %q", s.dir), err)
	}

	path := s.Path()
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return NewFailedToWriteError("Failed to write draft temp file", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return NewFailedToWriteError("Failed to replace draft file", err)
	}

	return nil
}

func (s *FileStore) Load(ctx context.Context) (Draft, bool, error) {
	if err := ctx.Err(); err != nil {
		return Draft{}, false, NewFailedToFetchError("Draft load cancelled", err)
	}

	data, err := os.ReadFile(s.Path())
	if errors.Is(err, fs.ErrNotExist) {
		return Draft{}, false, nil
	}
	if err != nil {
		return Draft{}, false, NewFailedToFetchError(fmt.Sprintf("Failed to read draft file %q", s.Path()), err)
	}

	var d Draft
	if err := json.Unmarshal(data, &d); err != nil {
		return Draft{}, false, NewFailedToTranslateError("Failed to decode draft", err)
	}

	return d, true, nil
}

func (s *FileStore) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return NewFailedToDeleteError("Draft clear cancelled", err)
	}

	err := os.Remove(s.Path())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return NewFailedToDeleteError(fmt.Sprintf("Failed to remove draft file %q", s.Path()), err)
	}

	return nil
}
