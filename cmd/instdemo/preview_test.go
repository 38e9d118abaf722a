package main

import (
	"context"
	"image/color"
	"testing"

	"github.com/gogpu/instvert"
)

func TestToScreen(t *testing.T) {
	tests := []struct {
		name   string
		clip   instvert.Vec4
		wantX  float32
		wantY  float32
		wantOK bool
	}{
		{"center", instvert.V4(0, 0, 0, 1), 50, 25, true},
		{"top left", instvert.V4(-2, 2, 0, 2), 0, 0, true},
		{"bottom right", instvert.V4(1, -1, 0, 1), 100, 50, true},
		{"behind eye", instvert.V4(0, 0, 0, -1), 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, _, ok := toScreen(tt.clip, 100, 50)
			if ok != tt.wantOK {
				t.Fatalf("toScreen() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && (x != tt.wantX || y != tt.wantY) {
				t.Errorf("toScreen() = (%v, %v), want (%v, %v)", x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestRenderPreview(t *testing.T) {
	const w, h = 80, 60
	u, err := sceneUniforms(float32(w) / float32(h))
	if err != nil {
		t.Fatalf("sceneUniforms() error = %v", err)
	}
	st := instvert.NewStage(instvert.WithPrecision(instvert.PrecisionFull))
	defer st.Close()

	out, err := st.Draw(context.Background(), triangle(), 2, u)
	if err != nil {
		t.Fatalf("Draw() error = %v", err)
	}

	img := renderPreview(out, 3, w, h)
	if got := img.RGBAAt(0, 0); got != background {
		t.Errorf("corner pixel = %v, want background %v", got, background)
	}
	// The centroid color of red, green and blue is an even gray.
	want := color.RGBA{R: 85, G: 85, B: 85, A: 255}
	got := img.RGBAAt(w/2, h/2)
	for _, d := range []int{
		int(got.R) - int(want.R), int(got.G) - int(want.G),
		int(got.B) - int(want.B), int(got.A) - int(want.A),
	} {
		if d < -1 || d > 1 {
			t.Fatalf("center pixel = %v, want %v", got, want)
		}
	}
}
