package instvert

import (
	"context"
	"fmt"
	"sync"

	"github.com/gogpu/instvert/internal/parallel"
)

// Stage is the draw-call issuer for the instanced vertex transform. It
// validates each draw once, then evaluates the transform for every
// (vertex, instance) pair on a worker pool.
//
// Invocations are independent: each writes exactly one output slot and
// reads only the vertex and the shared uniforms. Draw returns after all
// invocations have completed, so the caller may mutate the uniforms as soon
// as it returns.
//
// Stage is safe for concurrent use. Concurrent draws must not share a
// destination slice.
type Stage struct {
	opts stageOptions

	mu     sync.RWMutex
	pool   *parallel.WorkerPool
	closed bool
}

// NewStage creates a stage and starts its worker pool.
//
// Example:
//
//	st := instvert.NewStage(instvert.WithCapacity(16))
//	defer st.Close()
//	out, err := st.Draw(ctx, vertices, 16, uniforms)
func NewStage(opts ...StageOption) *Stage {
	o := defaultStageOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Stage{
		opts: o,
		pool: parallel.NewWorkerPool(o.workers),
	}
}

// Capacity returns the largest instance count a draw may request.
func (s *Stage) Capacity() int {
	return s.opts.capacity
}

// Precision returns the precision applied to output colors.
func (s *Stage) Precision() Precision {
	return s.opts.precision
}

// Workers returns the number of pool goroutines.
func (s *Stage) Workers() int {
	return s.pool.Workers()
}

// Draw transforms every vertex for each of the first instanceCount
// instances and returns the outputs in instance-major order:
// out[instance*len(vertices)+vertex].
func (s *Stage) Draw(ctx context.Context, vertices []Vertex, instanceCount int, u *FrameUniforms) ([]Output, error) {
	// Checked before allocating: the output size is a product of caller
	// counts.
	if err := s.validateCount(instanceCount, u); err != nil {
		return nil, s.reject(err)
	}
	out := make([]Output, len(vertices)*instanceCount)
	if err := s.DrawInto(ctx, out, vertices, instanceCount, u); err != nil {
		return nil, err
	}
	return out, nil
}

// DrawInto is like Draw but writes into dst, which must hold at least
// len(vertices)*instanceCount outputs. Slots past that count are left
// untouched.
//
// The draw is validated before any invocation runs. The context is checked
// once before dispatch; a dispatched draw always runs to completion.
func (s *Stage) DrawInto(ctx context.Context, dst []Output, vertices []Vertex, instanceCount int, u *FrameUniforms) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return ErrClosed
	}
	if err := s.validate(dst, vertices, instanceCount, u); err != nil {
		return s.reject(err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	n := len(vertices) * instanceCount
	if n == 0 {
		return nil
	}

	t := NewTransformer(u, instanceCount, s.opts.precision)
	nv := len(vertices)
	invoke := func(start, end int) {
		for k := start; k < end; k++ {
			instance := k / nv
			dst[k] = t.Transform(vertices[k-instance*nv], instance)
		}
	}

	batch := s.opts.batchSize
	if n <= batch {
		invoke(0, n)
		return nil
	}

	Logger().Debug("instvert: dispatch",
		"vertices", nv,
		"instances", instanceCount,
		"batches", (n+batch-1)/batch,
		"workers", s.pool.Workers())

	s.pool.ExecuteRange(n, batch, invoke)
	return nil
}

// validate checks the draw against the stage capacity and the bound
// uniforms. This is the only validation on the path: the per-invocation
// transform trusts its inputs.
func (s *Stage) validate(dst []Output, vertices []Vertex, instanceCount int, u *FrameUniforms) error {
	if err := s.validateCount(instanceCount, u); err != nil {
		return err
	}
	if need := len(vertices) * instanceCount; len(dst) < need {
		return fmt.Errorf("%w: have %d, need %d", ErrOutputSize, len(dst), need)
	}
	return nil
}

// validateCount checks the instance count against the stage capacity and
// the instances bound in u.
func (s *Stage) validateCount(instanceCount int, u *FrameUniforms) error {
	if u == nil || u.Instances == nil {
		return ErrNilUniforms
	}
	if instanceCount < 0 || instanceCount > s.opts.capacity {
		return fmt.Errorf("%w: %d exceeds stage capacity %d", ErrInstanceCount, instanceCount, s.opts.capacity)
	}
	if instanceCount > u.Instances.Len() {
		return fmt.Errorf("%w: %d requested, %d bound", ErrInstanceCount, instanceCount, u.Instances.Len())
	}
	return nil
}

func (s *Stage) reject(err error) error {
	Logger().Warn("instvert: draw rejected", "err", err)
	return err
}

// Close stops the worker pool. Draws issued afterwards return ErrClosed.
// Close waits for in-flight draws and is safe to call multiple times.
func (s *Stage) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.pool.Close()
}
