package storage

import (
	"context"
	"sync"
)

// Mem keeps values in process memory.
type Mem struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMem() *Mem { return &Mem{data: make(map[string]string)} }

func (m *Mem) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Mem) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}
