// Package cache holds the per-process medication record cache
package cache

import (
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/giygas/lactancia-api/entities"
	"github.com/giygas/lactancia-api/interfaces"
	"github.com/giygas/lactancia-api/metrics"
)

// ResultCache maps a remote identifier to its record. Entries live until
// Clear or process exit, keys are kept in insertion order.
type ResultCache struct {
	mu      sync.RWMutex
	entries map[string]entities.MedicationRecord
	order   []string
	group   singleflight.Group
}

func NewResultCache() *ResultCache {
	return &ResultCache{entries: make(map[string]entities.MedicationRecord)}
}

var _ interfaces.RecordCache = (*ResultCache)(nil)

// GetOrCompute returns the cached record for key, computing it on a miss.
// Concurrent misses on one key share a single compute call. compute reports
// whether its result may be stored; a result it refuses is returned to its
// own caller only, and callers that were waiting on it compute again.
func (c *ResultCache) GetOrCompute(key string, compute func() (entities.MedicationRecord, bool)) entities.MedicationRecord {
	if record, ok := c.Get(key); ok {
		metrics.CacheLookups.WithLabelValues("hit").Inc()
		return record
	}
	metrics.CacheLookups.WithLabelValues("miss").Inc()

	leader := false
	v, _, _ := c.group.Do(key, func() (any, error) {
		leader = true
		if record, ok := c.Get(key); ok {
			return computed{record: record, keep: true}, nil
		}
		record, keep := compute()
		if keep {
			record = c.store(key, record)
		}
		return computed{record: record, keep: keep}, nil
	})

	res := v.(computed)
	if res.keep || leader {
		return res.record.Clone()
	}

	record, keep := compute()
	if keep {
		record = c.store(key, record)
	}
	return record.Clone()
}

type computed struct {
	record entities.MedicationRecord
	keep   bool
}

// store keeps the first record stored under key and returns it
func (c *ResultCache) store(key string, record entities.MedicationRecord) entities.MedicationRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.entries[key]; ok {
		return existing.Clone()
	}
	c.entries[key] = record.Clone()
	c.order = append(c.order, key)
	metrics.CacheEntries.Set(float64(len(c.entries)))
	return record
}

// Get returns the cached record for key without computing
func (c *ResultCache) Get(key string) (entities.MedicationRecord, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	record, ok := c.entries[key]
	if !ok {
		return entities.MedicationRecord{}, false
	}
	return record.Clone(), true
}

// Clear drops every entry and returns how many there were
func (c *ResultCache) Clear() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.entries)
	c.entries = make(map[string]entities.MedicationRecord)
	c.order = nil
	metrics.CacheEntries.Set(0)
	return n
}

func (c *ResultCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Keys returns the cached keys in insertion order
func (c *ResultCache) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	keys := make([]string, len(c.order))
	copy(keys, c.order)
	return keys
}
