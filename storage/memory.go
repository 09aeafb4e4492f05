package storage

import (
	"context"
	"fmt"
	"sync"
)

// Memory is an ephemeral, thread-safe ObjectStore and RecordStore.
// Objects and records live in separate maps guarded by one RWMutex.
type Memory struct {
	mu      sync.RWMutex
	objects map[string][]byte
	records map[string]Record
}

// NewMemory creates a new, empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		objects: make(map[string][]byte),
		records: make(map[string]Record),
	}
}

func objectKey(bucket, key string) string { return bucket + "/" + key }

// GetObject returns a copy of the stored object.
func (m *Memory) GetObject(ctx context.Context, bucket, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.objects[objectKey(bucket, key)]
	if !ok {
		return nil, fmt.Errorf("%w: object %s/%s", ErrNotFound, bucket, key)
	}
	return append([]byte(nil), b...), nil
}

// PutObject stores a copy of body, replacing any previous object.
func (m *Memory) PutObject(ctx context.Context, bucket, key string, body []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[objectKey(bucket, key)] = append([]byte(nil), body...)
	return nil
}

// CreateRecord inserts rec unless its identifier is already present.
func (m *Memory) CreateRecord(ctx context.Context, rec Record) error {
	id, err := rec.ID()
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.records[id]; exists {
		return fmt.Errorf("%w: %s", ErrConflict, id)
	}
	m.records[id] = rec.Clone()
	return nil
}

// GetRecord returns a copy of the record stored under id.
func (m *Memory) GetRecord(ctx context.Context, id string) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.records[id]
	if !ok {
		return nil, fmt.Errorf("%w: record %s", ErrNotFound, id)
	}
	return rec.Clone(), nil
}

// DeleteRecord removes the record stored under id and returns it.
func (m *Memory) DeleteRecord(ctx context.Context, id string) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[id]
	if !ok {
		return nil, fmt.Errorf("%w: record %s", ErrNotFound, id)
	}
	delete(m.records, id)
	return rec, nil
}

// Len reports how many records are stored.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}
