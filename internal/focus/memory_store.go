package focus

import (
	"context"
	"sync"
)

type memoryEntry struct {
	task       Task
	suggestion *Suggestion
}

// MemoryStore is the process-local Store.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[int]*memoryEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[int]*memoryEntry)}
}

func (m *MemoryStore) CurrentTask(_ context.Context, userID int) (Task, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[userID]
	if !ok {
		return Task{}, false, nil
	}
	return e.task, true, nil
}

func (m *MemoryStore) SetCurrentTask(_ context.Context, userID int, task Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[userID] = &memoryEntry{task: task}
	return nil
}

func (m *MemoryStore) ClearCurrentTask(_ context.Context, userID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, userID)
	return nil
}

func (m *MemoryStore) Suggestion(_ context.Context, userID int) (Suggestion, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[userID]
	if !ok || e.suggestion == nil {
		return Suggestion{}, false, nil
	}
	return *e.suggestion, true, nil
}

func (m *MemoryStore) SetSuggestion(_ context.Context, userID int, s Suggestion) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[userID]
	if !ok || !e.task.Same(s.ForTask) {
		return ErrStaleTask
	}
	e.suggestion = &s
	return nil
}
