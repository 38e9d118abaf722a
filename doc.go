// Package instvert implements the per-vertex transform stage of an
// instanced rendering pipeline in pure Go.
//
// # Overview
//
// One draw call transforms a set of object-space vertices once per
// instance. Each instance selects its own world matrix by instance index;
// projection and view are shared by the whole draw:
//
//	clip  = Projection · View · World[instance] · (position, 1)
//	color = color, stored at the configured precision
//
// The result is a clip-space position ready for perspective division and a
// color ready for interpolation. Rasterization is not part of this package.
//
// # Quick Start
//
//	u, _ := instvert.NewFrameUniforms(2)
//	u.Projection = instvert.Perspective(math.Pi/2, 4.0/3.0, 0.1, 100)
//	u.View = instvert.LookAt(instvert.V3(0, 0, 1), instvert.V3(0, 0, 0), instvert.V3(0, 1, 0))
//	_ = u.Instances.Append(instvert.Translate(0, 0, -0.3))
//	_ = u.Instances.Append(instvert.Translate(0, 0, -0.5))
//
//	st := instvert.NewStage()
//	defer st.Close()
//	out, err := st.Draw(ctx, vertices, 2, u)
//
// # Conventions
//
// Matrices are column-major ([Mat4] element (row, col) is m[col*4+row]) and
// transform column vectors. Positions are homogenized with w = 1.
// [Perspective] targets the OpenGL clip volume (-w <= z <= w).
//
// # Contract
//
// [TransformVertex] and [Transformer] trust their inputs. An instance index
// outside the bound instance set is a caller bug, not an error value.
// [Stage] is the draw-call issuer: it validates the instance count against
// its capacity and the bound [InstanceSet] once per draw, before any
// invocation runs.
//
// # Concurrency
//
// A draw is dispatched as independent batches on a worker pool. The pool
// is barriered before Draw returns, so uniforms may be mutated between
// draws but never during one.
//
// # Related packages
//
//   - shader: the same stage as a WGSL vertex shader, compiled with naga
//   - gpu: a wgpu/hal render pipeline that runs the WGSL stage
package instvert

// Version is the current version of the library.
const Version = "0.1.0"
