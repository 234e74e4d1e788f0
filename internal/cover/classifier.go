package cover

import (
	"sort"

	"github.com/Garsondee/Cover-Engine/internal/geom"
	"github.com/Garsondee/Cover-Engine/internal/placeable"
)

// LegacyBucket is the historical HIGH/MEDIUM/LOW/NONE classification kept
// for compatibility (spec.md §4.7), derived only on explicit request.
type LegacyBucket int

const (
	BucketNone LegacyBucket = iota
	BucketLow
	BucketMedium
	BucketHigh
)

// LegacyBucketFor maps a percent-cover figure to the fixed historical
// thresholds: 1.0 -> HIGH, 0.75 -> MEDIUM, 0.5 -> LOW, else NONE.
func LegacyBucketFor(percent float64) LegacyBucket {
	switch {
	case percent >= 1.0:
		return BucketHigh
	case percent >= 0.75:
		return BucketMedium
	case percent >= 0.5:
		return BucketLow
	default:
		return BucketNone
	}
}

// ActionKind names the action a cover query is being made for (attack roll,
// saving throw, etc.); ignores-cover thresholds are keyed by this, with
// "all" as the fallback (spec.md §4.8).
type ActionKind string

const ActionAll ActionKind = "all"

// Ignores maps actionKind -> the percent-threshold at or below which the
// viewer ignores cover entirely (spec.md §4.8).
type Ignores map[ActionKind]float64

// ThresholdFor resolves the effective ignore-cover threshold for
// actionKind, falling back to ActionAll, and to 0 (ignores nothing) if
// neither is set.
func (ig Ignores) ThresholdFor(actionKind ActionKind) float64 {
	if t, ok := ig[actionKind]; ok {
		return t
	}
	if t, ok := ig[ActionAll]; ok {
		return t
	}
	return 0
}

// Classify implements spec.md §4.7's cover classifier: partitions installed
// effects into descending-priority "ordered" and priority-0 "unordered"
// buckets, applies the ignore-cover guard, and returns the resulting set in
// deterministic emission order.
func Classify(effects []placeable.Effect, percent float64, ignores Ignores, actionKind ActionKind) []placeable.EffectID {
	ordered, unordered := partition(effects)
	threshold := ignores.ThresholdFor(actionKind)

	var out []placeable.EffectID
	for _, e := range ordered {
		if percent < e.Threshold {
			continue
		}
		if threshold >= e.Threshold {
			continue
		}
		out = append(out, e.ID)
		if !e.CanOverlap {
			break // stop on the first non-overlapping emission, per spec.md §4.7
		}
	}

	for _, e := range unordered {
		if len(out) > 0 && !e.CanOverlap {
			continue
		}
		if percent < e.Threshold {
			continue
		}
		if threshold >= e.Threshold {
			continue
		}
		out = append(out, e.ID)
	}
	return out
}

// ClassifyWithRegionOverride applies Classify's result unless target lies in
// a region forcing a specific cover effect, in which case that effect
// replaces the classifier output entirely (spec.md §4.7's region override).
func ClassifyWithRegionOverride(effects []placeable.Effect, percent float64, ignores Ignores, actionKind ActionKind, regions []*placeable.Region, targetPoint geom.Point3) []placeable.EffectID {
	for _, r := range regions {
		if r == nil || !r.Behavior.ForceCover {
			continue
		}
		if !r.Contains(geom.Point{X: targetPoint.X, Y: targetPoint.Y}, targetPoint.Z) {
			continue
		}
		return []placeable.EffectID{r.Behavior.EffectID}
	}
	return Classify(effects, percent, ignores, actionKind)
}

// partition splits effects into the priority>0 "ordered" set (sorted
// descending by priority, ties broken by id for determinism) and the
// priority==0 "unordered" set, in declaration order.
func partition(effects []placeable.Effect) (ordered, unordered []placeable.Effect) {
	for _, e := range effects {
		if e.Priority > 0 {
			ordered = append(ordered, e)
		} else {
			unordered = append(unordered, e)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Priority != ordered[j].Priority {
			return ordered[i].Priority > ordered[j].Priority
		}
		return ordered[i].ID < ordered[j].ID
	})
	return ordered, unordered
}
