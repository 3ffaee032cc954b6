package cart

import (
	"context"
	"errors"
	"sync"
	"time"
)

// TTL keeps an abandoned cart around for a month.
const TTL = 30 * 24 * time.Hour

// ErrNotFound is returned by Storage.Load when no cart was saved under a key.
var ErrNotFound = errors.New("cart not found")

// Storage persists the serialized cart of one session under a key.
type Storage interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}

// Notifier is told about every committed mutation ("updated" or "cleared").
type Notifier interface {
	Notify(ctx context.Context, key, event string) error
}

const (
	EventUpdated = "updated"
	EventCleared = "cleared"
)

// MemoryStorage keeps carts in process memory. Used when Redis is not
// configured and in tests. Carts expire TTL after their last save, like the
// Redis keys.
type MemoryStorage struct {
	ttl time.Duration
	now func() time.Time

	mu    sync.RWMutex
	items map[string]memoryEntry
}

type memoryEntry struct {
	data    []byte
	expires time.Time
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{ttl: TTL, now: time.Now, items: map[string]memoryEntry{}}
}

func (m *MemoryStorage) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.items[key]
	if !ok || !m.now().Before(e.expires) {
		return nil, ErrNotFound
	}
	return append([]byte(nil), e.data...), nil
}

func (m *MemoryStorage) Save(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	if _, ok := m.items[key]; !ok {
		m.sweep(now)
	}
	m.items[key] = memoryEntry{data: append([]byte(nil), data...), expires: now.Add(m.ttl)}
	return nil
}

func (m *MemoryStorage) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

func (m *MemoryStorage) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// sweep drops expired carts; runs only when a new key is stored.
func (m *MemoryStorage) sweep(now time.Time) {
	for k, e := range m.items {
		if !now.Before(e.expires) {
			delete(m.items, k)
		}
	}
}
