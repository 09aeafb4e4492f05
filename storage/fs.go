package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
)

// FS persists objects and records under a root directory:
//
//	<dir>/objects/<bucket>/<key>
//	<dir>/records/<escaped id>.json
type FS struct{ dir string }

// NewFS returns an FS rooted at dir. Directories are created on write.
func NewFS(dir string) *FS { return &FS{dir: dir} }

func (s *FS) objectPath(bucket, key string) (string, error) {
	rel := filepath.Join(bucket, filepath.FromSlash(key))
	if bucket == "" || key == "" || !filepath.IsLocal(rel) {
		return "", fmt.Errorf("storage: invalid object address %q/%q", bucket, key)
	}
	return filepath.Join(s.dir, "objects", rel), nil
}

func (s *FS) recordPath(id string) string {
	return filepath.Join(s.dir, "records", url.PathEscape(id)+".json")
}

// GetObject reads bucket/key; a missing file maps to ErrNotFound.
func (s *FS) GetObject(ctx context.Context, bucket, key string) ([]byte, error) {
	p, err := s.objectPath(bucket, key)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: object %s/%s", ErrNotFound, bucket, key)
	}
	return b, err
}

// PutObject writes body to bucket/key, replacing any previous content.
func (s *FS) PutObject(ctx context.Context, bucket, key string, body []byte) error {
	p, err := s.objectPath(bucket, key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	return os.WriteFile(p, body, 0o644)
}

// CreateRecord writes rec with O_EXCL so a second insert of the same id fails
// with ErrConflict.
func (s *FS) CreateRecord(ctx context.Context, rec Record) error {
	id, err := rec.ID()
	if err != nil {
		return err
	}
	target := s.recordPath(id)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("%w: %s", ErrConflict, id)
	}
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rec); err != nil {
		_ = os.Remove(target)
		return err
	}
	return nil
}

// GetRecord reads the record stored under id.
func (s *FS) GetRecord(ctx context.Context, id string) (Record, error) {
	data, err := os.ReadFile(s.recordPath(id))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: record %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	var out Record
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("storage: decode record %s: %w", id, err)
	}
	return out, nil
}

// DeleteRecord removes the record under id and returns what it held.
func (s *FS) DeleteRecord(ctx context.Context, id string) (Record, error) {
	rec, err := s.GetRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := os.Remove(s.recordPath(id)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: record %s", ErrNotFound, id)
		}
		return nil, err
	}
	return rec, nil
}
