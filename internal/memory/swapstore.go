package memory

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"runnerd/internal/common/fsutil"
)

// SwapStore persists model payloads keyed by model id. Entries must be
// written atomically: a concurrent reader never observes a partial payload.
type SwapStore interface {
	Write(id string, data []byte) error
	Read(id string) ([]byte, error)
	Remove(id string) error
}

// fileSwapStore keeps one file per id under dir. Ids are hashed into file
// names so arbitrary ids stay filesystem-safe.
type fileSwapStore struct {
	dir string
}

// NewFileSwapStore returns a SwapStore backed by per-id files under dir.
// The directory is created on first write.
func NewFileSwapStore(dir string) SwapStore {
	return &fileSwapStore{dir: dir}
}

func (s *fileSwapStore) path(id string) string {
	sum := sha256.Sum256([]byte(id))
	return filepath.Join(s.dir, hex.EncodeToString(sum[:])+".swap")
}

func (s *fileSwapStore) Write(id string, data []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("swap dir: %w", err)
	}
	return fsutil.WriteFileAtomic(s.path(id), data, 0o644)
}

func (s *fileSwapStore) Read(id string) ([]byte, error) {
	b, err := os.ReadFile(s.path(id))
	if err != nil {
		return nil, fmt.Errorf("read swap entry: %w", err)
	}
	return b, nil
}

func (s *fileSwapStore) Remove(id string) error {
	if err := os.Remove(s.path(id)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove swap entry: %w", err)
	}
	return nil
}
