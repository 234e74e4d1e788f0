package cover

// IgnoresCover implements the public ignores_cover(viewer, actionKind) -> f32
// operation from spec.md §6: the resolved threshold at or below which a
// classifier guard drops a cover effect for that viewer/actionKind pair.
func IgnoresCover(viewer Ignores, actionKind ActionKind) float64 {
	return viewer.ThresholdFor(actionKind)
}
