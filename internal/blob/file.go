package blob

import (
	"context"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
)

// FileStore keeps the blob in a single file, replaced atomically on save so
// a crash mid-write never leaves a truncated collection behind.
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

func (s *FileStore) Load(_ context.Context) ([]byte, bool, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

func (s *FileStore) Save(_ context.Context, data []byte) error {
	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return renameio.WriteFile(s.Path, data, 0o644)
}
