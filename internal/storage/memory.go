package storage

import "sync"

// MemoryBackend keeps tables in a map. Used by tests and by the seed/export
// commands when no persistent backend is configured.
type MemoryBackend struct {
	mu    sync.RWMutex
	data  map[Table][]byte
	limit int
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[Table][]byte)}
}

// NewMemoryBackendWithLimit caps total stored bytes so quota behavior can be
// exercised without a real store.
func NewMemoryBackendWithLimit(limit int) *MemoryBackend {
	return &MemoryBackend{data: make(map[Table][]byte), limit: limit}
}

func (m *MemoryBackend) Get(table Table) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.data[table]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, true, nil
}

func (m *MemoryBackend) Set(table Table, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.limit > 0 {
		total := len(data)
		for t, d := range m.data {
			if t == table {
				continue
			}
			total += len(d)
		}
		if total > m.limit {
			return ErrQuotaExceeded
		}
	}

	stored := make([]byte, len(data))
	copy(stored, data)
	m.data[table] = stored
	return nil
}

func (m *MemoryBackend) Remove(table Table) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, table)
	return nil
}

func (m *MemoryBackend) Ping() error {
	return nil
}
