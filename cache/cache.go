// Package cache provides a thread-safe keyed cache instrumented with
// prometheus counters.
package cache

import (
	"errors"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts cache activity
type Metrics struct {
	Hits      prometheus.Counter
	Misses    prometheus.Counter
	Evictions prometheus.Counter
}

// NewMetrics creates the counters of the cache called name and registers
// them on reg when it is not nil. Counters already registered by another
// cache with the same name are shared.
func NewMetrics(reg prometheus.Registerer, name string) (*Metrics, error) {
	newCounter := func(metric, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "typelens",
			Subsystem:   "cache",
			Name:        metric,
			Help:        help,
			ConstLabels: prometheus.Labels{"cache": name},
		})
	}
	m := &Metrics{
		Hits:      newCounter("hits_total", "Lookups answered from the cache."),
		Misses:    newCounter("misses_total", "Lookups that created a new entry."),
		Evictions: newCounter("evictions_total", "Entries dropped because the cache was full."),
	}
	if reg == nil {
		return m, nil
	}

	var err error
	m.Hits, err = register(reg, m.Hits)
	if err != nil {
		return nil, err
	}
	m.Misses, err = register(reg, m.Misses)
	if err != nil {
		return nil, err
	}
	m.Evictions, err = register(reg, m.Evictions)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func register(reg prometheus.Registerer, c prometheus.Counter) (prometheus.Counter, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
		}
		return nil, err
	}
	return c, nil
}

// Cache keeps one value per key. When maxEntries is reached the cache is
// emptied before the next insert.
type Cache[V any] struct {
	mu         sync.RWMutex
	entries    map[string]V
	maxEntries int
	metrics    *Metrics
}

// New creates a cache. maxEntries <= 0 means unbounded. metrics may be nil.
func New[V any](maxEntries int, metrics *Metrics) *Cache[V] {
	return &Cache[V]{
		entries:    make(map[string]V),
		maxEntries: maxEntries,
		metrics:    metrics,
	}
}

// Get returns the value stored under key
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key]
	return v, ok
}

// GetOrCreate returns the value stored under key. On a miss create is
// called and its result stored. A value for which accept returns false
// is treated as a miss and replaced; accept may be nil.
func (c *Cache[V]) GetOrCreate(key string, accept func(V) bool, create func() V) V {
	// Fast path: read lock for existing entries
	c.mu.RLock()
	if v, ok := c.entries[key]; ok && (accept == nil || accept(v)) {
		c.mu.RUnlock()
		c.hit()
		return v
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check after acquiring write lock
	if v, ok := c.entries[key]; ok && (accept == nil || accept(v)) {
		c.hit()
		return v
	}

	if c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		if c.metrics != nil {
			c.metrics.Evictions.Add(float64(len(c.entries)))
		}
		c.entries = make(map[string]V)
	}

	v := create()
	c.entries[key] = v
	if c.metrics != nil {
		c.metrics.Misses.Inc()
	}
	return v
}

func (c *Cache[V]) hit() {
	if c.metrics != nil {
		c.metrics.Hits.Inc()
	}
}

// Len returns the number of entries
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear removes all entries
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]V)
}
