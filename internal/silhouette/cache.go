package silhouette

import "github.com/Garsondee/Cover-Engine/internal/placeable"

// cacheKey is the memoization key: (tokenId, senseKind), per spec.md §4.3.
type cacheKey struct {
	token placeable.TokenID
	kind  placeable.SenseKind
}

type cacheEntry struct {
	result          Result
	tokenVersion    uint64
	topologyVersion uint64
}

// Cache memoizes Build results per (token, senseKind) and per global
// topology version, invalidating automatically when the token's position/
// size/elevation changes (tracked via Token.Version, which the host bumps
// on any such mutation) or when topologyVersion advances.
type Cache struct {
	entries map[cacheKey]cacheEntry
}

// NewCache creates an empty silhouette cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[cacheKey]cacheEntry)}
}

// Get returns the memoized silhouette for (token, kind) if it is still
// valid at topologyVersion, or computes and stores a fresh one via build.
func (c *Cache) Get(token placeable.Token, kind placeable.SenseKind, topologyVersion uint64, build func() Result) Result {
	key := cacheKey{token: token.ID, kind: kind}
	if e, ok := c.entries[key]; ok {
		if e.tokenVersion == token.Version && e.topologyVersion == topologyVersion {
			return e.result
		}
	}
	result := build()
	c.entries[key] = cacheEntry{result: result, tokenVersion: token.Version, topologyVersion: topologyVersion}
	return result
}

// Invalidate drops every memoized entry for a given token (e.g. on removal).
func (c *Cache) Invalidate(token placeable.TokenID) {
	for k := range c.entries {
		if k.token == token {
			delete(c.entries, k)
		}
	}
}

// Len reports the number of memoized entries (for tests/diagnostics).
func (c *Cache) Len() int { return len(c.entries) }
