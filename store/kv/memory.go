package kv

import (
	"bytes"
	"sort"
	"sync"
)

// Memory in-memory store, for tests and throwaway nodes
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{
		data: make(map[string][]byte),
	}
}

func (m *Memory) Get(key []byte) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[string(key)]
	if !ok {
		return nil, ErrNotFound
	}

	return clone(v), nil
}

func (m *Memory) Iterate(prefix []byte, fn func(key, value []byte) error) error {
	type pair struct {
		key, value []byte
	}

	m.mu.RLock()
	pairs := make([]pair, 0)
	for k, v := range m.data {
		if bytes.HasPrefix([]byte(k), prefix) {
			pairs = append(pairs, pair{key: []byte(k), value: clone(v)})
		}
	}
	m.mu.RUnlock()

	sort.Slice(pairs, func(i, j int) bool {
		return bytes.Compare(pairs[i].key, pairs[j].key) < 0
	})

	for _, p := range pairs {
		if err := fn(p.key, p.value); err != nil {
			return err
		}
	}

	return nil
}

func (m *Memory) Write(b *Batch) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return b.Replay(func(key, value []byte) error {
		m.data[string(key)] = value
		return nil
	}, func(key []byte) error {
		delete(m.data, string(key))
		return nil
	})
}

func (m *Memory) Close() error {
	return nil
}
