package keystore

import (
	"context"
	"sync"
)

// Memory is an in-process Store. GetErr and SetErr, when set, are returned
// by the matching operations.
type Memory struct {
	mu     sync.Mutex
	values map[string]string

	GetErr error
	SetErr error
}

// NewMemory returns an empty in-memory store
func NewMemory() *Memory {
	return &Memory{values: map[string]string{}}
}

func (m *Memory) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return "", wrap("get", key, m.GetErr)
	}
	return m.values[key], nil
}

func (m *Memory) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return wrap("set", key, m.SetErr)
	}
	m.values[key] = value
	return nil
}

func (m *Memory) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func (m *Memory) Close() error {
	return nil
}
