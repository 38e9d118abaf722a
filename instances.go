package instvert

import "fmt"

// DefaultInstanceCapacity is the number of world matrices an InstanceSet
// holds when no capacity is configured.
const DefaultInstanceCapacity = 2

// InstanceSet is an ordered, bounded array of per-instance world matrices.
// Instance i of a draw uses the matrix at index i.
//
// Writes are bounds-checked. Reads through At are not: the draw-call issuer
// guarantees every index it dispatches is below Len.
//
// An InstanceSet must not be modified while a draw that reads it is in
// flight.
type InstanceSet struct {
	worlds   []Mat4
	capacity int
}

// NewInstanceSet creates an empty instance set that can hold up to
// capacity matrices. A non-positive capacity returns ErrCapacity.
func NewInstanceSet(capacity int) (*InstanceSet, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrCapacity, capacity)
	}
	return &InstanceSet{
		worlds:   make([]Mat4, 0, capacity),
		capacity: capacity,
	}, nil
}

// InstanceSetOf creates an instance set whose capacity and contents are the
// given matrices.
func InstanceSetOf(worlds ...Mat4) (*InstanceSet, error) {
	s, err := NewInstanceSet(len(worlds))
	if err != nil {
		return nil, err
	}
	s.worlds = append(s.worlds, worlds...)
	return s, nil
}

// Append adds a world matrix for the next instance index.
func (s *InstanceSet) Append(world Mat4) error {
	if len(s.worlds) >= s.capacity {
		return fmt.Errorf("%w: set is full (capacity %d)", ErrCapacity, s.capacity)
	}
	s.worlds = append(s.worlds, world)
	return nil
}

// Set replaces the world matrix of an existing instance.
func (s *InstanceSet) Set(index int, world Mat4) error {
	if index < 0 || index >= len(s.worlds) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrInstanceIndex, index, len(s.worlds))
	}
	s.worlds[index] = world
	return nil
}

// At returns the world matrix of instance index without bounds validation
// beyond Go's own slice check.
func (s *InstanceSet) At(index int) Mat4 {
	return s.worlds[index]
}

// Len returns the number of matrices currently in the set.
func (s *InstanceSet) Len() int {
	return len(s.worlds)
}

// Cap returns the configured capacity.
func (s *InstanceSet) Cap() int {
	return s.capacity
}

// Reset removes all matrices, keeping the capacity.
func (s *InstanceSet) Reset() {
	s.worlds = s.worlds[:0]
}
