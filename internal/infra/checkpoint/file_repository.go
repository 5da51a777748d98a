// internal/infra/checkpoint/file_repository.go
package checkpoint

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	domain "homework_review_bot/internal/domain/checkpoint"
)

// FileRepository persists the checkpoint as a decimal Unix timestamp in a
// single text file, the way the original `.last_success` file worked.
type FileRepository struct {
	path string
}

func NewFileRepository(path string) *FileRepository {
	return &FileRepository{path: path}
}

// Load reads the stored checkpoint. A missing file means no cycle has ever
// succeeded and is reported as ErrCheckpointNotFound.
func (r *FileRepository) Load(_ context.Context) (int64, error) {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, domain.ErrCheckpointNotFound
		}
		return 0, fmt.Errorf("error reading checkpoint file %s: %w", r.path, err)
	}

	ts, err := strconv.ParseInt(strings.TrimSpace(string(raw)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error parsing checkpoint file %s: %w", r.path, err)
	}
	return ts, nil
}

// Save writes the checkpoint via a temp file and rename, so a crash mid-write
// never leaves a truncated checkpoint behind.
func (r *FileRepository) Save(_ context.Context, ts int64) error {
	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("error creating temp checkpoint file: %w", err)
	}

	_, err = tmp.WriteString(strconv.FormatInt(ts, 10))
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("error writing temp checkpoint file: %w", err)
	}

	if err := os.Rename(tmp.Name(), r.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("error replacing checkpoint file %s: %w", r.path, err)
	}
	return nil
}
