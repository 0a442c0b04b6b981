package storage

import (
	"context"
	"fmt"
	"mime"
	"path/filepath"
	"sync"
	"time"
)

// MockObjectStorage is an in-memory implementation of ObjectStorage for testing
type MockObjectStorage struct {
	mu      sync.RWMutex
	objects map[string]*Object
	calls   int
	err     error
}

// NewMockObjectStorage creates a new MockObjectStorage instance
func NewMockObjectStorage() *MockObjectStorage {
	return &MockObjectStorage{
		objects: make(map[string]*Object),
	}
}

// Put stores an object. An empty contentType is derived from the key's extension.
func (m *MockObjectStorage) Put(bucket, key string, data []byte, contentType string) {
	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(key))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	m.objects[objectID(bucket, key)] = &Object{
		Bucket:       bucket,
		Key:          key,
		ContentType:  contentType,
		Data:         append([]byte(nil), data...),
		LastModified: now,
		ETag:         fmt.Sprintf("%d-%d", len(data), now.Unix()),
	}
}

// FailWith makes every subsequent Fetch return err
func (m *MockObjectStorage) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Calls returns how many times Fetch was invoked
func (m *MockObjectStorage) Calls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls
}

// Fetch implements ObjectStorage.Fetch
func (m *MockObjectStorage) Fetch(ctx context.Context, bucket, key string) (*Object, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	if m.err != nil {
		return nil, NewStorageError("Fetch", bucket, key, m.err)
	}

	obj, ok := m.objects[objectID(bucket, key)]
	if !ok {
		return nil, NewStorageError("Fetch", bucket, key, ErrObjectNotFound)
	}

	cp := *obj
	cp.Data = append([]byte(nil), obj.Data...)
	return &cp, nil
}

// Close implements ObjectStorage.Close
func (m *MockObjectStorage) Close() error {
	return nil
}

func objectID(bucket, key string) string {
	return bucket + "/" + key
}
