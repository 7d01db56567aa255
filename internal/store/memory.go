package store

import (
	"slices"
	"sync"
)

// MapKV is a map-backed KV for tests. SetUnavailable simulates a disabled
// or full store: every call fails with ErrUnavailable until switched back.
type MapKV struct {
	mu          sync.Mutex
	data        map[string][]byte
	unavailable bool
	puts        int
}

func NewMapKV() *MapKV {
	return &MapKV{data: make(map[string][]byte)}
}

func (m *MapKV) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.unavailable {
		return nil, ErrUnavailable
	}
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return slices.Clone(v), nil
}

func (m *MapKV) Put(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.unavailable {
		return ErrUnavailable
	}
	m.data[key] = slices.Clone(value)
	m.puts++
	return nil
}

func (m *MapKV) SetUnavailable(v bool) {
	m.mu.Lock()
	m.unavailable = v
	m.mu.Unlock()
}

// Puts reports how many writes succeeded.
func (m *MapKV) Puts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.puts
}
