package store

import (
	"sort"
	"sync"
	"time"

	"github.com/i474232898/flight-emissions/internal/emissions"
)

var (
	// ErrNotFound is returned when no probe has been recorded for a provider.
	ErrNotFound = emissions.ErrNoProbeHistory
)

// StatusHistory holds a time-ordered list of probe outcomes for one provider.
type StatusHistory struct {
	Statuses []emissions.ProbeStatus
}

// MemoryStore is a concurrency-safe in-memory store of upstream probe outcomes.
// It never holds emissions results.
type MemoryStore struct {
	mu sync.RWMutex

	// key: provider name, value: history
	data map[string]*StatusHistory

	// retention configuration
	maxHistory int           // max number of statuses per provider
	maxAge     time.Duration // optional max age for statuses
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxHistory is <= 0, it is treated as unlimited.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		data:       make(map[string]*StatusHistory),
		maxHistory: maxHistory,
		maxAge:     maxAge,
	}
}

// SaveStatus appends a probe outcome for its provider and enforces retention.
func (s *MemoryStore) SaveStatus(status emissions.ProbeStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history, ok := s.data[status.Provider]
	if !ok {
		history = &StatusHistory{}
		s.data[status.Provider] = history
	}

	history.Statuses = append(history.Statuses, status)

	// Enforce retention by count.
	if s.maxHistory > 0 && len(history.Statuses) > s.maxHistory {
		over := len(history.Statuses) - s.maxHistory
		history.Statuses = history.Statuses[over:]
	}

	// Enforce retention by age, always keeping the newest entry.
	if s.maxAge > 0 {
		cutoff := time.Now().Add(-s.maxAge)
		i := 0
		for ; i < len(history.Statuses)-1; i++ {
			if !history.Statuses[i].Timestamp.Before(cutoff) {
				break
			}
		}
		history.Statuses = history.Statuses[i:]
	}
}

// Latest returns the most recent status of every provider, sorted by provider name.
func (s *MemoryStore) Latest() []emissions.ProbeStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]emissions.ProbeStatus, 0, len(s.data))
	for _, history := range s.data {
		if len(history.Statuses) == 0 {
			continue
		}
		out = append(out, history.Statuses[len(history.Statuses)-1])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Provider < out[j].Provider })
	return out
}

// History returns every retained status for a provider, oldest first.
func (s *MemoryStore) History(provider string) ([]emissions.ProbeStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.data[provider]
	if !ok || len(history.Statuses) == 0 {
		return nil, ErrNotFound
	}
	out := make([]emissions.ProbeStatus, len(history.Statuses))
	copy(out, history.Statuses)
	return out, nil
}
