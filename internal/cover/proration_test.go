package cover

import (
	"math"
	"testing"
)

func almost(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

// Worked scenario from spec.md §8's partial-blocker example: two flagged
// blockers with a 0.5 and 0.75 maximum cover grant respectively. Removing
// either alone still leaves 0.7 cover; removing both leaves 0.4 cover; with
// every flagged blocker present cover is full (1.0).
func TestProrate_TwoFlaggedBlockers(t *testing.T) {
	flagged := []FlaggedBlocker{
		{TokenID: "a", Cap: 0.5, PercentMinus: 0.7},
		{TokenID: "b", Cap: 0.75, PercentMinus: 0.7},
	}
	got := Prorate(1.0, 0.4, flagged)
	if !almost(got, 0.775) {
		t.Fatalf("Prorate() = %v, want 0.775", got)
	}
}

func TestProrate_NoFlaggedBlockers_ReturnsPercentAll(t *testing.T) {
	got := Prorate(0.83, 0.1, nil)
	if !almost(got, 0.83) {
		t.Fatalf("Prorate() = %v, want 0.83", got)
	}
}

func TestProrate_DeltaTotalZero_DividesByCount(t *testing.T) {
	// percentAll == percentNone means removing every flagged blocker changes
	// nothing; weighted sum falls back to an equal split across flagged
	// blockers per spec.md §4.5/§9's explicit divide-by-count resolution.
	flagged := []FlaggedBlocker{
		{TokenID: "a", Cap: 0.5, PercentMinus: 0.6},
		{TokenID: "b", Cap: 1.0, PercentMinus: 0.6},
	}
	got := Prorate(0.6, 0.6, flagged)
	want := 0.6 + 0*(0.5*0.5+0.5*1.0)
	if !almost(got, want) {
		t.Fatalf("Prorate() = %v, want %v", got, want)
	}
}

func TestProrate_ClampsToUnitInterval(t *testing.T) {
	flagged := []FlaggedBlocker{{TokenID: "a", Cap: 2.0, PercentMinus: 0}}
	got := Prorate(1.0, 0, flagged)
	if got > 1.0 {
		t.Fatalf("Prorate() = %v, want <= 1.0", got)
	}
}

func TestProrate_SingleBlocker_CapBoundsResult(t *testing.T) {
	flagged := []FlaggedBlocker{{TokenID: "a", Cap: 0.5, PercentMinus: 0}}
	got := Prorate(1.0, 0, flagged)
	if !almost(got, 0.5) {
		t.Fatalf("Prorate() = %v, want 0.5", got)
	}
}
