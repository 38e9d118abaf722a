package instvert

// mat4Size is the byte size of a mat4x4<f32> in a uniform block.
const mat4Size = 64

// FrameUniforms are the per-draw inputs shared by every vertex and every
// instance of one draw call. They are owned by the caller and must not be
// mutated while a draw that reads them is in flight.
type FrameUniforms struct {
	// Projection maps camera space to clip space.
	Projection Mat4

	// View maps world space to camera space.
	View Mat4

	// Instances holds one world matrix per instance.
	Instances *InstanceSet
}

// NewFrameUniforms creates uniforms with identity projection and view and
// an empty instance set of the given capacity.
func NewFrameUniforms(capacity int) (*FrameUniforms, error) {
	set, err := NewInstanceSet(capacity)
	if err != nil {
		return nil, err
	}
	return &FrameUniforms{
		Projection: Identity(),
		View:       Identity(),
		Instances:  set,
	}, nil
}

// UniformSize returns the byte size of the uniform block for a given
// instance capacity:
//
//	projection: mat4x4<f32>            offset 0
//	view:       mat4x4<f32>            offset 64
//	world:      array<mat4x4<f32>, N>  offset 128
func UniformSize(capacity int) int {
	return (2 + capacity) * mat4Size
}

// Marshal serializes the uniforms into a little-endian uniform block
// suitable for GPU upload. Unused instance slots up to the set capacity are
// zero-filled.
func (u *FrameUniforms) Marshal() []byte {
	capacity := u.Instances.Cap()
	buf := make([]byte, UniformSize(capacity))
	putFloats(buf[0:], u.Projection[:]...)
	putFloats(buf[mat4Size:], u.View[:]...)
	for i := 0; i < u.Instances.Len(); i++ {
		w := u.Instances.At(i)
		putFloats(buf[(2+i)*mat4Size:], w[:]...)
	}
	return buf
}
