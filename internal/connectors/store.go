package connectors

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
)

type DumpStore struct {
	path string
}

func NewDumpStore(path string) *DumpStore {
	return &DumpStore{path: path}
}

func (s *DumpStore) Path() string {
	return s.path
}

// Store writes raw to the dump path unless the file already holds the same
// bytes. The write goes through a temp file in the same directory so a
// concurrent reader never sees a partial dump.
func (s *DumpStore) Store(raw []byte) (hash string, changed bool, err error) {
	hash = hashBytes(raw)

	existing, err := os.ReadFile(s.path)
	if err == nil && hashBytes(existing) == hash {
		return hash, false, nil
	}
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", false, err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", false, err
	}
	tmp, err := os.CreateTemp(dir, ".gamemaster-*.json")
	if err != nil {
		return "", false, err
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", false, err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", false, err
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return "", false, err
	}
	return hash, true, nil
}

func hashBytes(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
