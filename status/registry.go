package status

import (
	"sort"
	"strings"
	"sync"
	"sync/atomic"
)

// Registry counts session events under dotted keys such as "wheel.debounce"
// A nil Registry ignores writes and reports nothing
type Registry struct {
	counters sync.Map // string -> *atomic.Int64
	distinct atomic.Int64
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{}
}

// Counter returns the counter for key for callers that cache it
func (r *Registry) Counter(key string) *atomic.Int64 {
	if c, ok := r.counters.Load(key); ok {
		return c.(*atomic.Int64)
	}
	c, loaded := r.counters.LoadOrStore(key, new(atomic.Int64))
	if !loaded {
		r.distinct.Add(1)
	}
	return c.(*atomic.Int64)
}

// Inc adds one to key and returns the new count
func (r *Registry) Inc(key string) int64 {
	if r == nil {
		return 0
	}
	return r.Counter(key).Add(1)
}

// Keys returns the counter keys in sorted order
func (r *Registry) Keys() []string {
	if r == nil {
		return nil
	}
	var keys []string
	r.counters.Range(func(k, _ any) bool {
		keys = append(keys, k.(string))
		return true
	})
	sort.Strings(keys)
	return keys
}

// Snapshot copies every counter
func (r *Registry) Snapshot() map[string]int64 {
	return r.Source("")
}

// Source copies the counters of one input source, "wheel" yields wheel.*
// An empty source copies everything
func (r *Registry) Source(source string) map[string]int64 {
	out := make(map[string]int64)
	if r == nil {
		return out
	}
	prefix := ""
	if source != "" {
		prefix = source + "."
	}
	r.counters.Range(func(k, v any) bool {
		if key := k.(string); strings.HasPrefix(key, prefix) {
			out[key] = v.(*atomic.Int64).Load()
		}
		return true
	})
	return out
}

// Count returns the number of distinct counters
func (r *Registry) Count() int {
	if r == nil {
		return 0
	}
	return int(r.distinct.Load())
}
