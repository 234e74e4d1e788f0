// Package cover turns a raw percent-visible figure into the cover-effect
// semantics host rules care about: partial-blocker proration, the ordered/
// unordered effect classifier, and the ignore-cover predicate. Grounded on
// the teacher's CoverObject.CoverDefence/MovementMul bucketing in
// internal/game/cover.go, generalized from a fixed three-kind enum to
// arbitrary host-defined cover effects.
package cover

import "github.com/Garsondee/Cover-Engine/internal/placeable"

// FlaggedBlocker is one token flagged with a sub-1.0 maximum cover grant
// (spec.md §4.5's g_i), together with the percent-cover figures needed to
// compute its marginal contribution.
type FlaggedBlocker struct {
	TokenID placeable.TokenID
	Cap     float64 // g_i: this token's own cover ceiling, [0,1]
	// PercentMinus is percent_cover computed with every blocker present
	// except this one (P_minus_i in spec.md §4.5).
	PercentMinus float64
}

// Prorate implements spec.md §4.5's partial-blocker proration formula.
// percentAll is percent_cover with every blocker present (P_all); percentNone
// is percent_cover with every flagged token removed (P_none, all other
// blockers — walls, unflagged tokens — still present).
func Prorate(percentAll, percentNone float64, flagged []FlaggedBlocker) float64 {
	if len(flagged) == 0 {
		return clamp01(percentAll)
	}

	deltas := make([]float64, len(flagged))
	sum := 0.0
	for i, f := range flagged {
		d := percentAll - f.PercentMinus
		if d < 0 {
			d = 0
		}
		deltas[i] = d
		sum += d
	}

	deltaTotal := percentAll - percentNone
	if deltaTotal < 0 {
		deltaTotal = 0
	}

	// Open question resolved per spec.md §9: when S=0 (all marginal
	// contributions cancelled), divide by count rather than by zero.
	weighted := 0.0
	if sum == 0 {
		n := float64(len(flagged))
		for _, f := range flagged {
			weighted += (1 / n) * f.Cap
		}
	} else {
		for i, f := range flagged {
			weighted += (deltas[i] / sum) * f.Cap
		}
	}

	newPercent := percentNone + deltaTotal*weighted
	return clamp01(newPercent)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
