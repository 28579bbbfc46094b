package state

import (
	"bytes"
	"strings"
	"sync"
)

// Memory is a Storage that keeps nothing across runs.
type Memory struct {
	mu   sync.Mutex
	data map[string][]byte
	err  error
}

var _ Storage = (*Memory)(nil)

// NewMemory creates an empty in-memory storage.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return bytes.Clone(v), nil
}

func (m *Memory) Put(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.data[key] = bytes.Clone(value)
	return nil
}

func (m *Memory) DeleteOthers(prefix, keep string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.data {
		if strings.HasPrefix(k, prefix) && k != keep {
			delete(m.data, k)
		}
	}
	return nil
}

func (m *Memory) Close() error { return nil }

// Test helpers

// FailWrites makes every Put return err. Nil restores writes.
func (m *Memory) FailWrites(err error) {
	m.mu.Lock()
	m.err = err
	m.mu.Unlock()
}

// Keys returns the stored keys.
func (m *Memory) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	return keys
}
