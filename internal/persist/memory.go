package persist

import "sync"

// Memory is an in-process adapter for tests and ephemeral runs.
type Memory struct {
	mu   sync.Mutex
	data []byte

	// SaveErr, when set, is returned by every Save. Lets tests exercise the
	// best-effort write path.
	SaveErr error
}

// NewMemory returns an empty in-memory adapter.
func NewMemory() *Memory {
	return &Memory{}
}

// Load implements Adapter.
func (m *Memory) Load() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, ErrNotFound
	}
	return append([]byte(nil), m.data...), nil
}

// Save implements Adapter.
func (m *Memory) Save(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.data = append([]byte(nil), data...)
	return nil
}

// Delete implements Adapter.
func (m *Memory) Delete() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = nil
	return nil
}

// Close implements Adapter.
func (m *Memory) Close() error {
	return nil
}
