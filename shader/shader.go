// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package shader provides the instanced vertex stage as a WGSL program.
//
// The program mirrors instvert.TransformVertex: the world matrix is picked
// from a uniform array by instance_index and the product is taken in the
// order projection * view * world * position. The array length is the
// instance capacity and the color rounding follows an instvert.Precision,
// both fixed when the source is generated.
package shader

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/gogpu/instvert"
	"github.com/gogpu/naga"
)

// Entry points of the generated module.
const (
	VertexEntryPoint   = "vs_main"
	FragmentEntryPoint = "fs_main"
)

// ErrCapacity is returned when a program is requested for fewer than one
// instance.
var ErrCapacity = errors.New("shader: instance capacity must be at least 1")

// ErrPrecision is returned for a color precision the program cannot express.
var ErrPrecision = errors.New("shader: unsupported color precision")

//go:embed shaders/instanced.wgsl.tmpl
var instancedTemplateSource string

var instancedTemplate = template.Must(template.New("instanced").Parse(instancedTemplateSource))

// colorExpr returns the WGSL expression that rounds in.color the way
// Precision.Quantize does on the CPU.
func colorExpr(p instvert.Precision) (string, error) {
	switch p {
	case instvert.PrecisionFull:
		return "in.color", nil
	case instvert.PrecisionHalf:
		return "vec4<f32>(unpack2x16float(pack2x16float(in.color.xy)), unpack2x16float(pack2x16float(in.color.zw)))", nil
	case instvert.PrecisionLow:
		return "unpack4x8unorm(pack4x8unorm(in.color))", nil
	}
	return "", fmt.Errorf("%w: %v", ErrPrecision, p)
}

// Source returns the WGSL source for the given instance capacity and color
// precision.
func Source(capacity int, p instvert.Precision) (string, error) {
	if capacity < 1 {
		return "", fmt.Errorf("%w: got %d", ErrCapacity, capacity)
	}
	color, err := colorExpr(p)
	if err != nil {
		return "", err
	}
	data := struct {
		Capacity  int
		Precision instvert.Precision
		Color     string
	}{capacity, p, color}

	var sb strings.Builder
	if err := instancedTemplate.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("shader: render template: %w", err)
	}
	return sb.String(), nil
}

// CompileSPIRV generates the WGSL source for capacity and p and compiles it
// to SPIR-V words.
func CompileSPIRV(capacity int, p instvert.Precision) ([]uint32, error) {
	src, err := Source(capacity, p)
	if err != nil {
		return nil, err
	}

	spirvBytes, err := naga.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("shader: compile instanced program: %w", err)
	}

	// SPIR-V is a stream of little-endian 32-bit words.
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}
