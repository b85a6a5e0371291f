// Package memoize provides a run-forever, single-flight cache for pure
// async initializers: the source function runs at most once per process,
// concurrent callers during the first in-flight call share its result, and
// a failed first call leaves the cache empty so the next caller retries.
package memoize

import (
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// Func is a memoizable initializer. It is safe to call concurrently.
type Func[T any] func() (T, error)

// Thunk is a nullary function returned by New; every call after the first
// successful one returns the cached value without re-invoking source.
type Thunk[T any] func() (T, error)

// New wraps source so it runs at most once. Concurrent callers observe the
// same in-flight call via singleflight; if that call errors, the failure is
// not cached and the next call starts fresh.
func New[T any](source Func[T]) Thunk[T] {
	var (
		group  singleflight.Group
		done   atomic.Bool
		mu     sync.RWMutex
		cached T
	)

	return func() (T, error) {
		if done.Load() {
			mu.RLock()
			v := cached
			mu.RUnlock()
			return v, nil
		}

		v, err, _ := group.Do("memoize", func() (any, error) {
			result, err := source()
			if err != nil {
				return result, err
			}
			mu.Lock()
			cached = result
			mu.Unlock()
			done.Store(true)
			return result, nil
		})
		if err != nil {
			var zero T
			return zero, err
		}
		return v.(T), nil
	}
}
