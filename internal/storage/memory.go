package storage

import (
	"context"
	"sync"
)

type MemorySlots struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

func NewMemorySlots() *MemorySlots {
	return &MemorySlots{slots: make(map[string][]byte)}
}

func (m *MemorySlots) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.slots[key]
	if !ok {
		return nil, ErrSlotNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *MemorySlots) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.slots[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemorySlots) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.slots, key)
	return nil
}
