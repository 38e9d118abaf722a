package instvert

import "errors"

// Errors reported by the draw-call issuer. The transform itself never
// returns an error: a bad instance index or malformed matrix is a caller
// contract violation and is not detected per vertex.
var (
	// ErrInstanceCount is returned when a draw requests more instances than
	// the stage capacity or the bound instance set provides.
	ErrInstanceCount = errors.New("instvert: instance count out of range")

	// ErrInstanceIndex is returned when writing an instance matrix outside
	// the current length of an InstanceSet.
	ErrInstanceIndex = errors.New("instvert: instance index out of range")

	// ErrCapacity is returned for a non-positive capacity, or when an
	// InstanceSet is already full.
	ErrCapacity = errors.New("instvert: invalid instance capacity")

	// ErrNilUniforms is returned when a draw is issued without uniforms or
	// without an instance set.
	ErrNilUniforms = errors.New("instvert: nil frame uniforms")

	// ErrOutputSize is returned when the destination slice cannot hold one
	// output per (vertex, instance) pair.
	ErrOutputSize = errors.New("instvert: output buffer too small")

	// ErrClosed is returned by draws issued after Stage.Close.
	ErrClosed = errors.New("instvert: stage is closed")
)
