package storage

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/avolkov/ledger-service/internal/models"
)

// FileStore keeps the snapshot in a single JSON file. Saves write a
// temporary file and rename it over the target, so a crash mid-write
// cannot corrupt the durable snapshot.
type FileStore struct {
	path string
}

// NewFileStore initializes a store writing to the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads and decodes the snapshot file. A missing file yields an
// empty snapshot.
func (s *FileStore) Load() (models.Snapshot, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.EmptySnapshot(), nil
		}
		return models.Snapshot{}, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	var snapshot models.Snapshot
	if err := json.NewDecoder(f).Decode(&snapshot); err != nil {
		return models.Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return snapshot, nil
}

// Save writes the snapshot atomically via a temporary file and rename.
func (s *FileStore) Save(snapshot models.Snapshot) error {
	tmp := s.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create snapshot temp file: %w", err)
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snapshot); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close snapshot temp file: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}
