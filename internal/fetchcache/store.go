package fetchcache

import (
	"time"

	"github.com/jonboulle/clockwork"

	lru "github.com/hashicorp/golang-lru/v2"
)

type entry[T any] struct {
	value    T
	storedAt time.Time
	timer    clockwork.Timer
}

func (e *entry[T]) stopTimer() {
	if e.timer != nil {
		e.timer.Stop()
	}
}

// resultStore holds completed results. Callers hold Cache.mu; removing an
// entry always stops its cleanup timer.
type resultStore[T any] interface {
	get(key string) (*entry[T], bool)
	add(key string, e *entry[T]) (evicted bool)
	remove(key string)
	purge()
	len() int
}

// mapStore is the unbounded store used when no entry cap is configured.
type mapStore[T any] struct {
	m map[string]*entry[T]
}

func newMapStore[T any]() *mapStore[T] {
	return &mapStore[T]{m: make(map[string]*entry[T])}
}

func (s *mapStore[T]) get(key string) (*entry[T], bool) {
	e, ok := s.m[key]
	return e, ok
}

func (s *mapStore[T]) add(key string, e *entry[T]) bool {
	if old, ok := s.m[key]; ok && old != e {
		old.stopTimer()
	}
	s.m[key] = e
	return false
}

func (s *mapStore[T]) remove(key string) {
	if e, ok := s.m[key]; ok {
		e.stopTimer()
		delete(s.m, key)
	}
}

func (s *mapStore[T]) purge() {
	for k, e := range s.m {
		e.stopTimer()
		delete(s.m, k)
	}
}

func (s *mapStore[T]) len() int { return len(s.m) }

// lruStore caps the number of retained results. The eviction callback also
// runs for explicit removals and purges.
type lruStore[T any] struct {
	c *lru.Cache[string, *entry[T]]
}

func newLRUStore[T any](size int) (*lruStore[T], error) {
	c, err := lru.NewWithEvict[string, *entry[T]](size, func(_ string, e *entry[T]) {
		e.stopTimer()
	})
	if err != nil {
		return nil, err
	}
	return &lruStore[T]{c: c}, nil
}

func (s *lruStore[T]) get(key string) (*entry[T], bool) {
	return s.c.Get(key)
}

func (s *lruStore[T]) add(key string, e *entry[T]) bool {
	// Add on an existing key replaces the value without the callback.
	if old, ok := s.c.Peek(key); ok && old != e {
		old.stopTimer()
	}
	return s.c.Add(key, e)
}

func (s *lruStore[T]) remove(key string) {
	s.c.Remove(key)
}

func (s *lruStore[T]) purge() { s.c.Purge() }

func (s *lruStore[T]) len() int { return s.c.Len() }
