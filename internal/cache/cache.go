// Package cache memoizes expensive bootstrap, solve, and decomposition
// results for the lifetime of the process. The cache is an explicit object
// owned by the services that need it, never a package-level map.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Results is a process-lifetime, eviction-free result cache. Concurrent
// requests for the same uncomputed key block behind a single computation;
// failed computations are never stored.
type Results struct {
	mu      sync.RWMutex
	entries map[string]interface{}
	group   singleflight.Group
}

func New() *Results {
	return &Results{
		entries: map[string]interface{}{},
	}
}

// GetOrCompute returns the cached value for key, computing and storing it on
// first use. At most one computation runs per distinct key at a time; an
// error result is returned to all waiters and leaves no entry behind.
func (r *Results) GetOrCompute(key string, compute func() (interface{}, error)) (interface{}, error) {
	r.mu.RLock()
	v, ok := r.entries[key]
	r.mu.RUnlock()
	if ok {
		return v, nil
	}

	v, err, _ := r.group.Do(key, func() (interface{}, error) {
		// re-check under the group: another caller may have just stored it
		r.mu.RLock()
		v, ok := r.entries[key]
		r.mu.RUnlock()
		if ok {
			return v, nil
		}

		computed, err := compute()
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.entries[key] = computed
		r.mu.Unlock()
		return computed, nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Len reports the number of cached entries.
func (r *Results) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Key fingerprints the exact tuple of parameters that determine a result.
// Two logically different inputs must never collide, so everything that
// affects the output goes through the hash.
func Key(parts ...interface{}) string {
	hasher := sha256.New()
	for _, p := range parts {
		b, err := json.Marshal(p)
		if err != nil {
			// json.Marshal only fails on unsupported types, which would be
			// a programming error in the key builder
			panic(err)
		}
		hasher.Write(b)
		hasher.Write([]byte{0})
	}
	return hex.EncodeToString(hasher.Sum(nil))
}
