package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryRateCounter is the in-process RateCounter used when Redis is not
// configured. Windows are fixed and start on the first hit.
type MemoryRateCounter struct {
	now func() time.Time

	mu      sync.Mutex
	windows map[string]*window
}

type window struct {
	count int64
	ends  time.Time
}

func NewMemoryRateCounter() *MemoryRateCounter {
	return &MemoryRateCounter{now: time.Now, windows: map[string]*window{}}
}

func (m *MemoryRateCounter) Increment(_ context.Context, key string, length time.Duration) (int64, time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	w, ok := m.windows[key]
	if !ok || !now.Before(w.ends) {
		w = &window{ends: now.Add(length)}
		m.windows[key] = w
		m.sweep(now)
	}
	w.count++
	return w.count, w.ends.Sub(now), nil
}

// sweep drops expired windows; runs only when a window is opened.
func (m *MemoryRateCounter) sweep(now time.Time) {
	for k, w := range m.windows {
		if !now.Before(w.ends) {
			delete(m.windows, k)
		}
	}
}
