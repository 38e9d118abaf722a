//go:build !nogpu

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"fmt"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/instvert"
	"github.com/gogpu/instvert/shader"
	"github.com/gogpu/wgpu/hal"
)

// Pipeline is the instanced vertex stage compiled for one device. Upload
// and Record may be called from different goroutines; Destroy must not
// race with a Record whose pass is still being encoded.
type Pipeline struct {
	mu sync.Mutex

	device hal.Device
	queue  hal.Queue
	cfg    Config

	shader        hal.ShaderModule
	uniformLayout hal.BindGroupLayout
	pipeLayout    hal.PipelineLayout
	pipeline      hal.RenderPipeline
	uniformBuf    hal.Buffer
	bindGroup     hal.BindGroup
}

// NewPipelineHAL creates a pipeline directly on a hal device and queue.
func NewPipelineHAL(device hal.Device, queue hal.Queue, cfg Config) (*Pipeline, error) {
	cfg = cfg.withDefaults()
	if cfg.Capacity < 1 {
		return nil, fmt.Errorf("%w: got %d", instvert.ErrCapacity, cfg.Capacity)
	}
	p := &Pipeline{device: device, queue: queue, cfg: cfg}
	if err := p.create(); err != nil {
		p.destroy()
		return nil, err
	}
	instvert.Logger().Info("gpu: instanced pipeline created",
		"label", cfg.Label, "capacity", cfg.Capacity, "precision", cfg.Precision,
		"depth", cfg.DepthFormat != gputypes.TextureFormatUndefined,
		"uniform_bytes", instvert.UniformSize(cfg.Capacity))
	return p, nil
}

// Capacity returns the instance capacity compiled into the shader.
func (p *Pipeline) Capacity() int { return p.cfg.Capacity }

// Format returns the color target format.
func (p *Pipeline) Format() gputypes.TextureFormat { return p.cfg.Format }

// Precision returns the color rounding compiled into the shader.
func (p *Pipeline) Precision() instvert.Precision { return p.cfg.Precision }

func (p *Pipeline) create() error {
	source, err := p.shaderSource()
	if err != nil {
		return err
	}
	label := p.cfg.Label

	p.shader, err = p.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  label + "_shader",
		Source: source,
	})
	if err != nil {
		return fmt.Errorf("gpu: compile instanced shader: %w", err)
	}

	p.uniformLayout, err = p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: label + "_uniform_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("gpu: create uniform layout: %w", err)
	}

	p.pipeLayout, err = p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            label + "_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.uniformLayout},
	})
	if err != nil {
		return fmt.Errorf("gpu: create pipeline layout: %w", err)
	}

	p.pipeline, err = p.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  label + "_pipeline",
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: shader.VertexEntryPoint,
			Buffers:    instvert.VertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     p.shader,
			EntryPoint: shader.FragmentEntryPoint,
			Targets: []gputypes.ColorTargetState{
				{
					Format:    p.cfg.Format,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		DepthStencil: p.depthStencil(),
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: p.cullMode(),
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("gpu: create render pipeline: %w", err)
	}

	size := uint64(instvert.UniformSize(p.cfg.Capacity))
	p.uniformBuf, err = p.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label + "_uniforms",
		Size:  size,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("gpu: create uniform buffer: %w", err)
	}

	p.bindGroup, err = p.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  label + "_bind",
		Layout: p.uniformLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: p.uniformBuf.NativeHandle(), Offset: 0, Size: size,
			}},
		},
	})
	if err != nil {
		return fmt.Errorf("gpu: create bind group: %w", err)
	}
	return nil
}

// shaderSource compiles the program to SPIR-V with naga. If naga cannot
// lower it, the WGSL text is handed to the backend instead.
func (p *Pipeline) shaderSource() (hal.ShaderSource, error) {
	src, err := shader.Source(p.cfg.Capacity, p.cfg.Precision)
	if err != nil {
		return hal.ShaderSource{}, err
	}
	words, err := shader.CompileSPIRV(p.cfg.Capacity, p.cfg.Precision)
	if err != nil {
		instvert.Logger().Warn("gpu: SPIR-V compile failed, passing WGSL to the backend",
			"label", p.cfg.Label, "err", err)
		return hal.ShaderSource{WGSL: src}, nil
	}
	return hal.ShaderSource{SPIRV: words}, nil
}

func (p *Pipeline) cullMode() gputypes.CullMode {
	if p.cfg.CullBack {
		return gputypes.CullModeBack
	}
	return gputypes.CullModeNone
}

// depthStencil returns the depth state for cfg.DepthFormat, or nil when the
// pipeline draws without depth. Stencil is left untouched.
func (p *Pipeline) depthStencil() *hal.DepthStencilState {
	if p.cfg.DepthFormat == gputypes.TextureFormatUndefined {
		return nil
	}
	keep := hal.StencilFaceState{
		Compare:     gputypes.CompareFunctionAlways,
		FailOp:      hal.StencilOperationKeep,
		DepthFailOp: hal.StencilOperationKeep,
		PassOp:      hal.StencilOperationKeep,
	}
	return &hal.DepthStencilState{
		Format:            p.cfg.DepthFormat,
		DepthWriteEnabled: true,
		DepthCompare:      gputypes.CompareFunctionLessEqual,
		StencilFront:      keep,
		StencilBack:       keep,
		StencilReadMask:   0x00,
		StencilWriteMask:  0x00,
	}
}

// Upload writes the frame uniforms into the pipeline's uniform buffer. The
// instance set capacity must equal the pipeline capacity so that the block
// layout matches the shader.
func (p *Pipeline) Upload(u *instvert.FrameUniforms) error {
	if u == nil || u.Instances == nil {
		return instvert.ErrNilUniforms
	}
	if got := u.Instances.Cap(); got != p.cfg.Capacity {
		return fmt.Errorf("%w: uniforms hold %d, pipeline expects %d", ErrCapacityMismatch, got, p.cfg.Capacity)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.uniformBuf == nil {
		return ErrDestroyed
	}
	p.queue.WriteBuffer(p.uniformBuf, 0, u.Marshal())
	return nil
}

// CreateVertexBuffer uploads vertices into a new vertex buffer laid out as
// instvert.VertexLayout describes. The caller owns the returned buffer and
// releases it with the device's DestroyBuffer.
func (p *Pipeline) CreateVertexBuffer(vertices []instvert.Vertex) (hal.Buffer, error) {
	if len(vertices) == 0 {
		return nil, fmt.Errorf("gpu: empty vertex buffer")
	}
	data := instvert.MarshalVertices(vertices)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pipeline == nil {
		return nil, ErrDestroyed
	}
	buf, err := p.device.CreateBuffer(&hal.BufferDescriptor{
		Label: p.cfg.Label + "_vertices",
		Size:  uint64(len(data)),
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create vertex buffer: %w", err)
	}
	p.queue.WriteBuffer(buf, 0, data)
	return buf, nil
}

// Record encodes one instanced draw into an open render pass. The instance
// count is checked against the capacity here because the shader indexes
// the world array without bounds.
func (p *Pipeline) Record(rp hal.RenderPassEncoder, vertexBuf hal.Buffer, vertexCount, instanceCount uint32) error {
	if int(instanceCount) > p.cfg.Capacity {
		return fmt.Errorf("%w: %d instances, capacity %d", instvert.ErrInstanceCount, instanceCount, p.cfg.Capacity)
	}
	if vertexCount == 0 || instanceCount == 0 {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pipeline == nil {
		return ErrDestroyed
	}
	rp.SetPipeline(p.pipeline)
	rp.SetBindGroup(0, p.bindGroup, nil)
	rp.SetVertexBuffer(0, vertexBuf, 0)
	rp.Draw(vertexCount, instanceCount, 0, 0)
	return nil
}

// Destroy releases all GPU resources. Safe to call multiple times.
func (p *Pipeline) Destroy() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.destroy()
}

// destroy releases resources in reverse creation order.
func (p *Pipeline) destroy() {
	if p.device == nil {
		return
	}
	if p.bindGroup != nil {
		p.device.DestroyBindGroup(p.bindGroup)
		p.bindGroup = nil
	}
	if p.uniformBuf != nil {
		p.device.DestroyBuffer(p.uniformBuf)
		p.uniformBuf = nil
	}
	if p.pipeline != nil {
		p.device.DestroyRenderPipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.pipeLayout != nil {
		p.device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.uniformLayout != nil {
		p.device.DestroyBindGroupLayout(p.uniformLayout)
		p.uniformLayout = nil
	}
	if p.shader != nil {
		p.device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
}
