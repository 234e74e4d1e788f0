package config

// SchemaVersion is the per-token persisted-flags schema version string
// (spec.md §6's "version: string").
type SchemaVersion string

// migrationCutoff is the schema version at which maximumCoverGrant changed
// representation from a legacy integer scale to a direct float fraction
// (spec.md §6's migration rule).
const migrationCutoff = "0.6.6"

// legacyCoverGrant maps the historical integer maximumCoverGrant scale
// {0,1,2,3,4} to the current float fraction {0, 0.5, 0.75, 0.9, 1.0}.
var legacyCoverGrant = map[int]float64{
	0: 0,
	1: 0.5,
	2: 0.75,
	3: 0.9,
	4: 1.0,
}

// MigrateMaximumCoverGrant converts a token's stored maximumCoverGrant into
// the current [0,1] float representation. storedVersion older than
// migrationCutoff is read as a legacy integer {0,1,2,3,4}; anything at or
// after the cutoff is already the current float representation and is
// returned unchanged (clamped to [0,1] for safety).
func MigrateMaximumCoverGrant(storedVersion SchemaVersion, raw float64) float64 {
	if isLegacy(storedVersion) {
		if v, ok := legacyCoverGrant[int(raw)]; ok {
			return v
		}
		return 1.0 // unknown legacy value: default to no cover-grant cap
	}
	return clampFloat(raw, 0, 1)
}

// isLegacy reports whether storedVersion predates migrationCutoff under a
// simple dotted-triple comparison (major.minor.patch, all numeric).
func isLegacy(v SchemaVersion) bool {
	if v == "" {
		return true // absent version predates versioning entirely
	}
	return compareVersions(string(v), migrationCutoff) < 0
}

// compareVersions compares two "a.b.c" version strings numerically,
// returning <0, 0, >0 as a<b, a==b, a>b. Missing components compare as 0,
// and a string with any non-numeric character parses as 0.0.0, so a
// malformed stored version compares older than the cutoff and is treated as
// legacy.
func compareVersions(a, b string) int {
	pa := splitVersion(a)
	pb := splitVersion(b)
	for i := 0; i < 3; i++ {
		if pa[i] != pb[i] {
			if pa[i] < pb[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

func splitVersion(v string) [3]int {
	var parts [3]int
	idx := 0
	cur := 0
	has := false
	for _, r := range v {
		if r == '.' {
			if idx < 3 {
				parts[idx] = cur
			}
			idx++
			cur = 0
			has = false
			continue
		}
		if r < '0' || r > '9' {
			return [3]int{}
		}
		cur = cur*10 + int(r-'0')
		has = true
	}
	if has && idx < 3 {
		parts[idx] = cur
	}
	return parts
}
