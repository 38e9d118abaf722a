//go:build !nogpu

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gpu runs the instanced vertex stage on a wgpu/hal device.
//
// A Pipeline owns the compiled WGSL program from package shader, the
// uniform buffer holding projection, view and the world matrix array, and
// the render pipeline whose vertex layout matches instvert.VertexLayout.
//
// Usage with a host application that shares its device:
//
//	p, err := gpu.NewPipeline(provider, gpu.DefaultConfig())
//	if err != nil { ... }
//	defer p.Destroy()
//	if err := p.Upload(uniforms); err != nil { ... }
//	p.Record(pass, vertexBuf, 3, 2)
package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/instvert"
	"github.com/gogpu/wgpu/hal"
)

var (
	// ErrNoHAL is returned when a device provider does not expose
	// wgpu/hal device and queue handles.
	ErrNoHAL = errors.New("gpu: provider does not expose HAL types")

	// ErrCapacityMismatch is returned when uniforms are uploaded whose
	// instance capacity differs from the pipeline's.
	ErrCapacityMismatch = errors.New("gpu: instance capacity does not match pipeline")

	// ErrDestroyed is returned when using a pipeline after Destroy.
	ErrDestroyed = errors.New("gpu: pipeline has been destroyed")
)

// Config configures a Pipeline.
type Config struct {
	// Capacity is the length of the world matrix array in the shader.
	Capacity int

	// Precision is the rounding applied to the color attribute before
	// interpolation. The zero value is instvert.PrecisionHalf.
	Precision instvert.Precision

	// Format is the color target format.
	Format gputypes.TextureFormat

	// DepthFormat enables a depth test (less-or-equal, depth writes on)
	// against an attachment of this format. TextureFormatUndefined draws
	// without depth.
	DepthFormat gputypes.TextureFormat

	// CullBack discards back-facing (clockwise) triangles.
	CullBack bool

	// Label prefixes the debug labels of every GPU object.
	Label string
}

// DefaultConfig returns a configuration for two instances with half
// precision colors rendering to a BGRA8 target, back faces culled and no
// depth attachment.
func DefaultConfig() Config {
	return Config{
		Capacity:  instvert.DefaultInstanceCapacity,
		Precision: instvert.PrecisionHalf,
		Format:    gputypes.TextureFormatBGRA8Unorm,
		CullBack:  true,
		Label:     "instvert",
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Format == gputypes.TextureFormatUndefined {
		c.Format = d.Format
	}
	if c.Label == "" {
		c.Label = d.Label
	}
	return c
}

// NewPipeline creates a pipeline on the device shared by provider. The
// provider must implement HalDevice() any and HalQueue() any returning
// hal.Device and hal.Queue.
func NewPipeline(provider gpucontext.DeviceProvider, cfg Config) (*Pipeline, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNoHAL
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHAL)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoHAL)
	}
	if cfg.Format == gputypes.TextureFormatUndefined {
		cfg.Format = provider.SurfaceFormat()
	}
	return NewPipelineHAL(device, queue, cfg)
}
