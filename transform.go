package instvert

// Vertex is one per-vertex input of a draw call.
type Vertex struct {
	// Position is the object-space position. It is homogenized with w = 1.
	Position Vec3

	// Color is passed through to the output, reduced to the configured
	// precision. Straight or premultiplied alpha is the caller's choice.
	Color Vec4
}

// Output is the result of one (vertex, instance) invocation.
type Output struct {
	// ClipPosition is ready for perspective division by the rasterizer.
	ClipPosition Vec4

	// Color is the input color at the configured precision.
	Color Vec4
}

// TransformVertex evaluates the stage for one vertex of one instance:
//
//	ClipPosition = Projection · View · Instances[instance] · (Position, 1)
//	Color        = p.Quantize(v.Color)
//
// The world transform is applied first, then the view, then the projection.
//
// TransformVertex does not validate its inputs. instance must lie in
// [0, u.Instances.Len()); an index outside that range is a contract
// violation by the caller and panics. Degenerate matrices produce
// degenerate positions without any error.
func TransformVertex(v Vertex, instance int, u *FrameUniforms, p Precision) Output {
	pos := v.Position.Homogeneous()
	pos = u.Instances.At(instance).MulVec4(pos)
	pos = u.View.MulVec4(pos)
	pos = u.Projection.MulVec4(pos)
	return Output{
		ClipPosition: pos,
		Color:        p.Quantize(v.Color),
	}
}

// Transformer holds the matrices of one draw call folded into a single
// model-view-projection matrix per instance. Folding is done once per draw
// so that each invocation costs one matrix-vector product.
//
// A Transformer is immutable after creation and safe for concurrent use.
type Transformer struct {
	mvp       []Mat4
	precision Precision
}

// NewTransformer folds the first instanceCount instances of u. The caller
// guarantees instanceCount <= u.Instances.Len().
func NewTransformer(u *FrameUniforms, instanceCount int, p Precision) *Transformer {
	viewProj := u.Projection.Mul(u.View)
	mvp := make([]Mat4, instanceCount)
	for i := range mvp {
		mvp[i] = viewProj.Mul(u.Instances.At(i))
	}
	return &Transformer{mvp: mvp, precision: p}
}

// Transform evaluates the stage for one vertex of one instance. It agrees
// with TransformVertex within float32 rounding.
func (t *Transformer) Transform(v Vertex, instance int) Output {
	return Output{
		ClipPosition: t.mvp[instance].MulVec4(v.Position.Homogeneous()),
		Color:        t.precision.Quantize(v.Color),
	}
}

// Instances returns the number of folded instances.
func (t *Transformer) Instances() int {
	return len(t.mvp)
}
