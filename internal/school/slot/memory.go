package slot

import "sync"

// Memory holds the slot in process memory. For tests and ephemeral setups
// where losing the session on restart is fine.
type Memory struct {
	mu    sync.Mutex
	value string
	set   bool
}

func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Get() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.set {
		return "", ErrEmpty
	}
	return m.value, nil
}

func (m *Memory) Set(value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.value = value
	m.set = true
	return nil
}

func (m *Memory) Remove() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.value = ""
	m.set = false
	return nil
}
