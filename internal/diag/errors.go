// Package diag is the engine's diagnostic surface: a typed error taxonomy
// (spec.md §7) plus a capped structured logger, grounded on the teacher's
// ThoughtLog ring buffer (internal/game/thoughtlog.go) and SimLog
// unbounded machine-readable event log (internal/game/sim_log.go).
package diag

import "fmt"

// Kind is one of the error categories spec.md §7 enumerates; each kind
// carries its own propagation policy, documented alongside its constructor.
type Kind int

const (
	KindDegenerate Kind = iota
	KindResourceUnavailable
	KindNotFound
	KindOverflowInvariant
	KindCancelled
)

func (k Kind) String() string {
	switch k {
	case KindDegenerate:
		return "degenerate"
	case KindResourceUnavailable:
		return "resource_unavailable"
	case KindNotFound:
		return "not_found"
	case KindOverflowInvariant:
		return "overflow_invariant"
	case KindCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Error is the engine's structured diagnostic error: a kind plus a free-form
// reason and the component that raised it.
type Error struct {
	Kind      Kind
	Component string
	Reason    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Component, e.Kind, e.Reason)
}

// Degenerate constructs a KindDegenerate error — zero-area polygon,
// collinear viewer/target, zero-length wall. Treated as "no contribution";
// callers log once per event and never propagate it as a failure.
func Degenerate(component, reason string) *Error {
	return &Error{Kind: KindDegenerate, Component: component, Reason: reason}
}

// ResourceUnavailable constructs a KindResourceUnavailable error — GPU
// context lost, tile texture failed to load. Callers fall back to the next
// available algorithm and flag the result approximate.
func ResourceUnavailable(component, reason string) *Error {
	return &Error{Kind: KindResourceUnavailable, Component: component, Reason: reason}
}

// NotFound constructs a KindNotFound error — placeable id missing. Callers
// return an empty cover set and must not write a cache entry.
func NotFound(component, reason string) *Error {
	return &Error{Kind: KindNotFound, Component: component, Reason: reason}
}

// OverflowInvariant constructs a KindOverflowInvariant error — a cover set
// has priority/overlap contradictions. The classifier emits its partial
// result alongside this as a warning diagnostic.
func OverflowInvariant(component, reason string) *Error {
	return &Error{Kind: KindOverflowInvariant, Component: component, Reason: reason}
}

// Cancelled constructs a KindCancelled error — an async GPU readback was
// aborted. No cache write; callers may retry.
func Cancelled(component, reason string) *Error {
	return &Error{Kind: KindCancelled, Component: component, Reason: reason}
}
