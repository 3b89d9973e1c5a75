// Package storagetest provides an in-memory storage.System for tests.
package storagetest

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/JaimeStill/vouch/pkg/lifecycle"
	"github.com/JaimeStill/vouch/pkg/storage"
)

type object struct {
	data        []byte
	contentType string
}

// Memory is a concurrency-safe in-memory storage.System. Setting Err makes
// every operation fail with it.
type Memory struct {
	mu      sync.Mutex
	objects map[string]object
	Err     error
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{objects: make(map[string]object)}
}

func (m *Memory) Start(*lifecycle.Coordinator) error { return nil }

func (m *Memory) Upload(_ context.Context, key string, reader io.Reader, _ int64, contentType string) error {
	if err := m.check(key); err != nil {
		return err
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = object{data: data, contentType: contentType}
	return nil
}

func (m *Memory) Download(_ context.Context, key string) (*storage.Blob, error) {
	if err := m.check(key); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	obj, ok := m.objects[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &storage.Blob{
		Body:          io.NopCloser(bytes.NewReader(obj.data)),
		ContentType:   obj.contentType,
		ContentLength: int64(len(obj.data)),
	}, nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	if err := m.check(key); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.objects[key]; !ok {
		return storage.ErrNotFound
	}
	delete(m.objects, key)
	return nil
}

func (m *Memory) Exists(_ context.Context, key string) (bool, error) {
	if err := m.check(key); err != nil {
		return false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[key]
	return ok, nil
}

// Len returns the number of stored objects.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}

// Bytes returns the stored payload for key.
func (m *Memory) Bytes(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	obj, ok := m.objects[key]
	return obj.data, ok
}

func (m *Memory) check(key string) error {
	if m.Err != nil {
		return m.Err
	}
	return storage.ValidateKey(key)
}
