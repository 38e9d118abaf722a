package main

import (
	"image"
	"image/color"
	"image/draw"
	"sort"

	"golang.org/x/image/vector"

	"github.com/gogpu/instvert"
)

var background = color.RGBA{R: 25, G: 25, B: 25, A: 255}

// screenTriangle is one projected triangle ready for filling.
type screenTriangle struct {
	points [3][2]float32
	depth  float32
	color  color.RGBA
}

// toScreen applies the perspective divide and maps NDC to pixel
// coordinates with y pointing down. Points behind the eye are rejected.
func toScreen(clip instvert.Vec4, width, height int) (x, y, depth float32, ok bool) {
	if clip.W <= 0 {
		return 0, 0, 0, false
	}
	ndc := clip.PerspectiveDivide()
	x = (ndc.X + 1) / 2 * float32(width)
	y = (1 - ndc.Y) / 2 * float32(height)
	return x, y, ndc.Z, true
}

// renderPreview fills every output triangle with the average of its vertex
// colors, farthest first. Outputs are grouped per instance, vertexCount at
// a time, and consecutive triples form triangles.
func renderPreview(out []instvert.Output, vertexCount, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	var tris []screenTriangle
	for base := 0; base+vertexCount <= len(out); base += vertexCount {
		for i := 0; i+3 <= vertexCount; i += 3 {
			if tri, ok := project(out[base+i:base+i+3], width, height); ok {
				tris = append(tris, tri)
			}
		}
	}
	sort.SliceStable(tris, func(i, j int) bool { return tris[i].depth > tris[j].depth })

	r := vector.NewRasterizer(width, height)
	for _, tri := range tris {
		r.Reset(width, height)
		r.MoveTo(tri.points[0][0], tri.points[0][1])
		r.LineTo(tri.points[1][0], tri.points[1][1])
		r.LineTo(tri.points[2][0], tri.points[2][1])
		r.ClosePath()
		r.Draw(img, img.Bounds(), image.NewUniform(tri.color), image.Point{})
	}
	return img
}

func project(vs []instvert.Output, width, height int) (screenTriangle, bool) {
	var tri screenTriangle
	var sum instvert.Vec4
	for i, v := range vs {
		x, y, z, ok := toScreen(v.ClipPosition, width, height)
		if !ok {
			return tri, false
		}
		tri.points[i] = [2]float32{x, y}
		tri.depth += z / 3
		sum = instvert.V4(sum.X+v.Color.X, sum.Y+v.Color.Y, sum.Z+v.Color.Z, sum.W+v.Color.W)
	}
	avg := instvert.PrecisionLow.Quantize(instvert.V4(sum.X/3, sum.Y/3, sum.Z/3, sum.W/3))
	tri.color = color.RGBA{
		R: uint8(avg.X*255 + 0.5),
		G: uint8(avg.Y*255 + 0.5),
		B: uint8(avg.Z*255 + 0.5),
		A: uint8(avg.W*255 + 0.5),
	}
	return tri, true
}
