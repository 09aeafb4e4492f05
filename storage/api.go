// Package storage declares the object and record stores the maze pipeline
// reads from and writes to, together with in-memory, filesystem, S3,
// DynamoDB and MySQL implementations.
//
// Errors:
//
//	ErrNotFound       - object or record does not exist.
//	ErrConflict       - record with the same identifier already exists.
//	ErrInvalidRecord  - record has no usable identifier.
package storage

import (
	"context"
	"errors"
	"fmt"
)

// IDField is the identifier attribute of every record.
const IDField = "file_name"

// Sentinel errors shared by every backend.
var (
	// ErrNotFound indicates the object or record does not exist.
	ErrNotFound = errors.New("storage: not found")

	// ErrConflict indicates an insert-only write hit an existing identifier.
	ErrConflict = errors.New("storage: record already exists")

	// ErrInvalidRecord indicates a record without a non-empty string identifier.
	ErrInvalidRecord = errors.New("storage: invalid record")
)

// ObjectStore reads and writes opaque objects addressed by bucket and key.
type ObjectStore interface {
	GetObject(ctx context.Context, bucket, key string) ([]byte, error)
	PutObject(ctx context.Context, bucket, key string, body []byte) error
}

// RecordStore keeps JSON-like records keyed by IDField.
// CreateRecord is insert-only and returns ErrConflict on duplicates.
type RecordStore interface {
	CreateRecord(ctx context.Context, rec Record) error
	GetRecord(ctx context.Context, id string) (Record, error)
	DeleteRecord(ctx context.Context, id string) (Record, error)
}

// Record is an arbitrary JSON object carrying a string IDField.
type Record map[string]any

// ID returns the record identifier, or ErrInvalidRecord when it is
// missing, not a string, or empty.
func (r Record) ID() (string, error) {
	v, ok := r[IDField]
	if !ok {
		return "", fmt.Errorf("%w: missing %s", ErrInvalidRecord, IDField)
	}
	id, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string, got %T", ErrInvalidRecord, IDField, v)
	}
	if id == "" {
		return "", fmt.Errorf("%w: %s cannot be empty", ErrInvalidRecord, IDField)
	}
	return id, nil
}

// Clone returns a deep copy of r so stored records cannot be mutated
// through the caller's map.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, vv := range t {
			m[k] = cloneValue(vv)
		}
		return m
	case Record:
		return t.Clone()
	case []any:
		s := make([]any, len(t))
		for i, vv := range t {
			s[i] = cloneValue(vv)
		}
		return s
	default:
		return v
	}
}
