// Package covercache memoizes coverPercentFromAttacker/coverEffectsFromAttacker
// results per (viewer, target, senseKind), invalidating on token movement,
// resize, topology change, or cover-effect redefinition, per spec.md §4.6.
// Grounded on the teacher's HeatLayer map-of-cells idiom (internal/game/intel.go)
// and blackboard.go's per-entity state struct, generalized from a spatial
// grid to a (viewer,target,sense) keyed map.
package covercache

import (
	"sync"

	"github.com/Garsondee/Cover-Engine/internal/placeable"
)

// Key identifies one memoized cover computation.
type Key struct {
	Viewer    placeable.TokenID
	Target    placeable.TokenID
	SenseKind placeable.SenseKind
}

// Entry is one memoized result plus the version stamps it was computed
// against.
type Entry struct {
	Percent         float64
	Effects         []placeable.EffectID
	TokenVersion    uint64 // combined viewer+target version at compute time
	TopologyVersion uint64
}

// Cache is the per-viewer cover cache. Reads that observe a stale version
// recompute under the caller's own goroutine and then write the fresh
// entry — spec.md §4.6's "a read that observes stale version performs
// recompute under the caller's thread; no partial writes are observable."
// The single-threaded default path needs no locking; set Concurrent to
// guard the whole map with one sync.RWMutex for a parallelized host. The
// lock is not reader-preferring: a waiting writer blocks new readers.
type Cache struct {
	mu         sync.RWMutex
	entries    map[Key]Entry
	Concurrent bool
}

// New creates an empty cover cache.
func New() *Cache {
	return &Cache{entries: make(map[Key]Entry)}
}

func (c *Cache) rlock() {
	if c.Concurrent {
		c.mu.RLock()
	}
}
func (c *Cache) runlock() {
	if c.Concurrent {
		c.mu.RUnlock()
	}
}
func (c *Cache) lock() {
	if c.Concurrent {
		c.mu.Lock()
	}
}
func (c *Cache) unlock() {
	if c.Concurrent {
		c.mu.Unlock()
	}
}

// CoverPercentFromAttacker returns the cached percent for key if it is
// still valid at (tokenVersion, topologyVersion), else computes it via
// compute and stores the fresh entry.
func (c *Cache) CoverPercentFromAttacker(key Key, tokenVersion, topologyVersion uint64, compute func() (float64, []placeable.EffectID)) (float64, []placeable.EffectID) {
	c.rlock()
	e, ok := c.entries[key]
	c.runlock()
	if ok && e.TokenVersion == tokenVersion && e.TopologyVersion == topologyVersion {
		return e.Percent, e.Effects
	}

	percent, effects := compute()
	c.lock()
	c.entries[key] = Entry{Percent: percent, Effects: effects, TokenVersion: tokenVersion, TopologyVersion: topologyVersion}
	c.unlock()
	return percent, effects
}

// InvalidateTokenPair wipes every entry touching token (as either viewer or
// target) — used when a token moves, resizes, or is otherwise mutated in a
// way that must force a recompute regardless of version bookkeeping.
func (c *Cache) InvalidateTokenPair(token placeable.TokenID) {
	c.lock()
	defer c.unlock()
	for k := range c.entries {
		if k.Viewer == token || k.Target == token {
			delete(c.entries, k)
		}
	}
}

// PurgeAll wipes the entire cache — used when cover-effect definitions
// change, since every memoized classification may now be wrong regardless
// of token/topology versions (spec.md §4.6).
func (c *Cache) PurgeAll() {
	c.lock()
	defer c.unlock()
	c.entries = make(map[Key]Entry)
}

// Len reports the number of memoized entries (tests/diagnostics).
func (c *Cache) Len() int {
	c.rlock()
	defer c.runlock()
	return len(c.entries)
}
