package tracker

import (
	"errors"
	"sort"
	"sync"
)

// ErrNotFound is returned when a site has no sample yet.
var ErrNotFound = errors.New("no sample for site")

// Store keeps the most recent sample per site. It is safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	latest map[string]Sample
}

func NewStore() *Store {
	return &Store{latest: make(map[string]Sample)}
}

// Save replaces the site's sample unless the stored one is newer.
func (s *Store) Save(sample Sample) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cur, ok := s.latest[sample.Site]; ok && cur.Time.After(sample.Time) {
		return
	}
	s.latest[sample.Site] = sample
}

// Latest returns the newest sample for a site.
func (s *Store) Latest(site string) (Sample, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sample, ok := s.latest[site]
	if !ok {
		return Sample{}, ErrNotFound
	}
	return sample, nil
}

// All returns the newest sample of every site, ordered by site name.
func (s *Store) All() []Sample {
	s.mu.RLock()
	out := make([]Sample, 0, len(s.latest))
	for _, sample := range s.latest {
		out = append(out, sample)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Site < out[j].Site })
	return out
}
