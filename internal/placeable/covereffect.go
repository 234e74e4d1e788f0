package placeable

// Effect is a named cover category: a percent-visible threshold, a priority
// for resolving overlaps, and flags selecting which blocker kinds/states
// contribute to it. Per spec.md §3's CoverEffect invariant, within a
// priority class with CanOverlap == false at most one effect from that
// class may ever be assigned — the classifier (internal/cover) enforces
// this, not the type itself.
type Effect struct {
	ID         EffectID
	Name       string
	Icon       string
	Threshold  float64 // percentThreshold in [0,1]
	Priority   int     // 0 = unprioritized ("unordered" bucket)
	CanOverlap bool

	IncludeWalls   bool
	IncludeTiles   bool
	IncludeRegions bool
	LiveTokens     bool
	DeadTokens     bool
	ProneTokens    bool

	// ActiveEffectData is opaque host payload (e.g. a system-specific active
	// effect definition); the CORE never interprets it.
	ActiveEffectData any
}

// PersistedEffectRecord mirrors spec.md §6's forward-compatible on-disk
// shape for a cover-effect record.
type PersistedEffectRecord struct {
	ID               string
	Name             string
	Icon             string
	PercentThreshold float64
	Priority         int
	CanOverlap       bool
	IncludeWalls     bool
	LiveTokensBlock  bool
	DeadTokensBlock  bool
	ProneTokensBlock bool
	ActiveEffectData any
}

// ToEffect converts a persisted record into a runtime Effect.
func (r PersistedEffectRecord) ToEffect() Effect {
	return Effect{
		ID:               EffectID(r.ID),
		Name:             r.Name,
		Icon:             r.Icon,
		Threshold:        r.PercentThreshold,
		Priority:         r.Priority,
		CanOverlap:       r.CanOverlap,
		IncludeWalls:     r.IncludeWalls,
		IncludeTiles:     true,
		IncludeRegions:   true,
		LiveTokens:       r.LiveTokensBlock,
		DeadTokens:       r.DeadTokensBlock,
		ProneTokens:      r.ProneTokensBlock,
		ActiveEffectData: r.ActiveEffectData,
	}
}

// DefaultEffects returns the three standard cover categories used across
// spec.md's worked examples: half, three-quarters and full cover.
func DefaultEffects() []Effect {
	return []Effect{
		{ID: "full", Name: "Full Cover", Threshold: 1.0, Priority: 3, IncludeWalls: true, IncludeTiles: true, IncludeRegions: true, LiveTokens: true},
		{ID: "three-quarters", Name: "Three-Quarters Cover", Threshold: 0.75, Priority: 2, IncludeWalls: true, IncludeTiles: true, IncludeRegions: true, LiveTokens: true},
		{ID: "half", Name: "Half Cover", Threshold: 0.5, Priority: 1, IncludeWalls: true, IncludeTiles: true, IncludeRegions: true, LiveTokens: true},
	}
}
