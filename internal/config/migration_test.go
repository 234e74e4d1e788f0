package config

import "testing"

func TestMigrateMaximumCoverGrant_LegacyIntegerScale(t *testing.T) {
	cases := []struct {
		raw  float64
		want float64
	}{
		{0, 0}, {1, 0.5}, {2, 0.75}, {3, 0.9}, {4, 1.0},
	}
	for _, c := range cases {
		got := MigrateMaximumCoverGrant("0.6.5", c.raw)
		if got != c.want {
			t.Errorf("MigrateMaximumCoverGrant(0.6.5, %v) = %v, want %v", c.raw, got, c.want)
		}
	}
}

func TestMigrateMaximumCoverGrant_EmptyVersionIsLegacy(t *testing.T) {
	got := MigrateMaximumCoverGrant("", 2)
	if got != 0.75 {
		t.Fatalf("MigrateMaximumCoverGrant(\"\", 2) = %v, want 0.75", got)
	}
}

func TestMigrateMaximumCoverGrant_AtOrAfterCutoff_PassesThroughFloat(t *testing.T) {
	got := MigrateMaximumCoverGrant("0.6.6", 0.63)
	if got != 0.63 {
		t.Fatalf("MigrateMaximumCoverGrant(0.6.6, 0.63) = %v, want 0.63", got)
	}
	got = MigrateMaximumCoverGrant("0.7.0", 0.2)
	if got != 0.2 {
		t.Fatalf("MigrateMaximumCoverGrant(0.7.0, 0.2) = %v, want 0.2", got)
	}
}

func TestMigrateMaximumCoverGrant_ClampsOutOfRangeFloat(t *testing.T) {
	got := MigrateMaximumCoverGrant("1.0.0", 1.5)
	if got != 1.0 {
		t.Fatalf("MigrateMaximumCoverGrant clamp = %v, want 1.0", got)
	}
}

// Round-trips a stored settings document the way a host would: migrate once,
// then re-save and re-load at the current schema version, which must be the
// identity transform (spec.md §8's migration round-trip scenario).
func TestMigrateMaximumCoverGrant_RoundTripIsIdempotentAfterMigration(t *testing.T) {
	migrated := MigrateMaximumCoverGrant("0.6.0", 2)
	reloaded := MigrateMaximumCoverGrant("0.6.6", migrated)
	if migrated != reloaded {
		t.Fatalf("round trip changed value: migrated=%v reloaded=%v", migrated, reloaded)
	}
}

func TestCompareVersions(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"0.6.5", "0.6.6", -1},
		{"0.6.6", "0.6.6", 0},
		{"0.7.0", "0.6.6", 1},
		{"1.0.0", "0.9.9", 1},
	}
	for _, c := range cases {
		got := compareVersions(c.a, c.b)
		if (got < 0) != (c.want < 0) || (got > 0) != (c.want > 0) || (got == 0) != (c.want == 0) {
			t.Errorf("compareVersions(%q,%q) = %d, want sign %d", c.a, c.b, got, c.want)
		}
	}
}
