/*
Package cache memoizes pure computations.

PURPOSE:
  The calculator page recomputes on every keystroke. The engine is pure,
  so results keyed on the full input tuple can be reused across requests.
  Memo puts an LRU in front of a compute function and collapses concurrent
  identical misses into one call with singleflight.

  Anything cached here must be a pure function of its key.
*/
package cache

import (
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// Stats is a point-in-time view of a Memo.
type Stats struct {
	Hits   uint64 `json:"hits"`
	Misses uint64 `json:"misses"`
	Size   int    `json:"size"`
}

// Memo caches results of a keyed computation.
type Memo[T any] struct {
	lru    *LRU[T]
	group  singleflight.Group
	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewMemo wraps lru.
func NewMemo[T any](lru *LRU[T]) *Memo[T] {
	return &Memo[T]{lru: lru}
}

// Get returns the cached value for key or computes, stores and returns it.
// hit reports whether the value came from the cache. Errors are not cached.
func (m *Memo[T]) Get(key string, compute func() (T, error)) (value T, hit bool, err error) {
	if v, ok := m.lru.Get(key); ok {
		m.hits.Add(1)
		return v, true, nil
	}
	m.misses.Add(1)

	res, err, _ := m.group.Do(key, func() (interface{}, error) {
		v, err := compute()
		if err != nil {
			return v, err
		}
		m.lru.Set(key, v)
		return v, nil
	})
	if err != nil {
		var zero T
		return zero, false, err
	}
	return res.(T), false, nil
}

// CleanExpired evicts expired entries from the underlying LRU.
func (m *Memo[T]) CleanExpired() int {
	return m.lru.CleanExpired()
}

func (m *Memo[T]) Stats() Stats {
	return Stats{Hits: m.hits.Load(), Misses: m.misses.Load(), Size: m.lru.Size()}
}
