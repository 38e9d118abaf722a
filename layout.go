package instvert

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/gputypes"
)

// VertexStride is the byte stride of one Vertex in a vertex buffer:
// position (float32x3, 12 bytes) followed by color (float32x4, 16 bytes).
const VertexStride = 28

// VertexLayout returns the vertex buffer layout matching MarshalVertices:
//
//	location 0: position (vec3<f32>) offset 0
//	location 1: color    (vec4<f32>) offset 12
//
// World matrices are not per-instance vertex attributes; they live in the
// uniform block and are indexed by instance_index in the shader.
func VertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: VertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},  // position
				{Format: gputypes.VertexFormatFloat32x4, Offset: 12, ShaderLocation: 1}, // color
			},
		},
	}
}

// MarshalVertices serializes vertices into a little-endian vertex buffer.
func MarshalVertices(vertices []Vertex) []byte {
	buf := make([]byte, len(vertices)*VertexStride)
	for i, v := range vertices {
		b := buf[i*VertexStride:]
		putFloats(b, v.Position.X, v.Position.Y, v.Position.Z,
			v.Color.X, v.Color.Y, v.Color.Z, v.Color.W)
	}
	return buf
}

// UnmarshalVertices decodes a buffer produced by MarshalVertices. Trailing
// bytes that do not form a whole vertex are ignored.
func UnmarshalVertices(buf []byte) []Vertex {
	vertices := make([]Vertex, len(buf)/VertexStride)
	for i := range vertices {
		b := buf[i*VertexStride:]
		f := func(k int) float32 {
			return math.Float32frombits(binary.LittleEndian.Uint32(b[k*4:]))
		}
		vertices[i] = Vertex{
			Position: Vec3{X: f(0), Y: f(1), Z: f(2)},
			Color:    Vec4{X: f(3), Y: f(4), Z: f(5), W: f(6)},
		}
	}
	return vertices
}

func putFloats(buf []byte, vals ...float32) {
	for i, v := range vals {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
}
