package layout

import "errors"

// Sentinel errors returned by the engine. They are wrapped in
// *errors.Error values from pkg/errors carrying a machine-readable code.
var (
	// ErrInvalidConfig is returned when a Config fails validation.
	ErrInvalidConfig = errors.New("invalid layout config")

	// ErrInvalidGraph is returned for nil vertices, links or ports.
	ErrInvalidGraph = errors.New("invalid graph")

	// ErrDuplicateVertex is returned when two vertices share an ID.
	ErrDuplicateVertex = errors.New("duplicate vertex")

	// ErrUnknownVertex is returned when a link port references a vertex
	// that is not part of the graph.
	ErrUnknownVertex = errors.New("unknown vertex")

	// ErrUnsupportedCombine is returned for CombineSameInputs.
	ErrUnsupportedCombine = errors.New("combine policy not supported")

	// ErrInvariant is returned by the debug checks when a phase leaves the
	// working graph in an inconsistent state.
	ErrInvariant = errors.New("layout invariant violated")
)
