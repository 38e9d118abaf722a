package instvert

import (
	"math"
	"testing"
)

const eps = 1e-6

func TestMat4_Identity(t *testing.T) {
	m := Identity()
	if !m.IsIdentity() {
		t.Fatal("Identity().IsIdentity() = false")
	}
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			want := float32(0)
			if row == col {
				want = 1
			}
			if got := m.At(row, col); got != want {
				t.Errorf("At(%d, %d) = %v, want %v", row, col, got, want)
			}
		}
	}
}

func TestMat4_ColumnMajorTranslation(t *testing.T) {
	m := Translate(1, 2, 3)
	// Translation lives in the last column, elements 12..14.
	if m[12] != 1 || m[13] != 2 || m[14] != 3 {
		t.Errorf("translation column = (%v, %v, %v), want (1, 2, 3)", m[12], m[13], m[14])
	}
	if m.At(0, 3) != 1 || m.At(1, 3) != 2 || m.At(2, 3) != 3 {
		t.Errorf("At(row, 3) = (%v, %v, %v), want (1, 2, 3)", m.At(0, 3), m.At(1, 3), m.At(2, 3))
	}
}

func TestMat4_MulAppliesRightFirst(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
		p    Vec3
		want Vec4
	}{
		{"translate then scale", Scale(2, 2, 2).Mul(Translate(1, 0, 0)), V3(0, 0, 0), V4(2, 0, 0, 1)},
		{"scale then translate", Translate(1, 0, 0).Mul(Scale(2, 2, 2)), V3(0, 0, 0), V4(1, 0, 0, 1)},
		{"scale then translate, off origin", Translate(1, 0, 0).Mul(Scale(2, 2, 2)), V3(1, 1, 1), V4(3, 2, 2, 1)},
		{"identity", Identity().Mul(Identity()), V3(4, 5, 6), V4(4, 5, 6, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.MulVec4(tt.p.Homogeneous()); got != tt.want {
				t.Errorf("MulVec4(%+v) = %+v, want %+v", tt.p, got, tt.want)
			}
		})
	}
}

func TestMat4_MulAssociatesWithMulVec4(t *testing.T) {
	a := RotateZ(0.3).Mul(Translate(1, 2, 3))
	b := Scale(1, 2, 0.5).Mul(RotateX(1.1))
	p := V4(0.7, -1.2, 2.5, 1)

	folded := a.Mul(b).MulVec4(p)
	stepped := a.MulVec4(b.MulVec4(p))
	for i, f := range folded.Array() {
		if s := stepped.Array()[i]; math.Abs(float64(f-s)) > 1e-5 {
			t.Errorf("component %d: (a·b)·p = %v, a·(b·p) = %v", i, f, s)
		}
	}
}

func TestMat4_Transpose(t *testing.T) {
	m := Translate(1, 2, 3)
	tr := m.Transpose()
	if tr[3] != 1 || tr[7] != 2 || tr[11] != 3 {
		t.Errorf("Transpose() bottom row = (%v, %v, %v), want (1, 2, 3)", tr[3], tr[7], tr[11])
	}
	if tr.Transpose() != m {
		t.Error("Transpose().Transpose() != original")
	}
}

func TestRotations(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
		in   Vec3
		want Vec3
	}{
		{"X rotates Y to Z", RotateX(math.Pi / 2), V3(0, 1, 0), V3(0, 0, 1)},
		{"Y rotates Z to X", RotateY(math.Pi / 2), V3(0, 0, 1), V3(1, 0, 0)},
		{"Z rotates X to Y", RotateZ(math.Pi / 2), V3(1, 0, 0), V3(0, 1, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.MulVec4(tt.in.Homogeneous())
			want := tt.want.Homogeneous()
			for i, g := range got.Array() {
				if math.Abs(float64(g-want.Array()[i])) > eps {
					t.Errorf("got %+v, want %+v", got, want)
					break
				}
			}
		})
	}
}

func TestPerspective_ClipRange(t *testing.T) {
	const near, far = 0.1, 100
	p := Perspective(math.Pi/2, 1, near, far)

	tests := []struct {
		name  string
		z     float32
		wantZ float32
	}{
		{"near plane", -near, -1},
		{"far plane", -far, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clip := p.MulVec4(V4(0, 0, tt.z, 1))
			if math.Abs(float64(clip.W+tt.z)) > eps {
				t.Errorf("W = %v, want %v", clip.W, -tt.z)
			}
			ndc := clip.PerspectiveDivide()
			if math.Abs(float64(ndc.Z-tt.wantZ)) > 1e-4 {
				t.Errorf("NDC Z = %v, want %v", ndc.Z, tt.wantZ)
			}
		})
	}
}

func TestPerspective_FieldOfView(t *testing.T) {
	// With a 90 degree FOV the frustum edge at distance d is at y = d.
	p := Perspective(math.Pi/2, 2, 0.1, 100)
	ndc := p.MulVec4(V4(2, 1, -1, 1)).PerspectiveDivide()
	if math.Abs(float64(ndc.X-1)) > eps || math.Abs(float64(ndc.Y-1)) > eps {
		t.Errorf("frustum corner NDC = (%v, %v), want (1, 1)", ndc.X, ndc.Y)
	}
}

func TestLookAt(t *testing.T) {
	eye := V3(0, 0, 1)
	view := LookAt(eye, V3(0, 0, 0), V3(0, 1, 0))

	// The eye maps to the origin of camera space.
	if got := view.MulVec4(eye.Homogeneous()); math.Abs(float64(got.X))+math.Abs(float64(got.Y))+math.Abs(float64(got.Z)) > eps {
		t.Errorf("eye in camera space = %+v, want origin", got)
	}
	// The target lies on the -Z axis at the eye distance.
	got := view.MulVec4(V4(0, 0, 0, 1))
	if math.Abs(float64(got.Z+1)) > eps || math.Abs(float64(got.X)) > eps || math.Abs(float64(got.Y)) > eps {
		t.Errorf("target in camera space = %+v, want (0, 0, -1)", got)
	}
	// Looking down -Z from +Z is a pure translation.
	if !view.ApproxEqual(Translate(0, 0, -1), eps) {
		t.Errorf("LookAt = %v, want Translate(0, 0, -1)", view)
	}
}

func TestMat4_ApproxEqual(t *testing.T) {
	a := Translate(1, 2, 3)
	b := a
	b[12] += 1e-7
	if !a.ApproxEqual(b, eps) {
		t.Error("ApproxEqual within eps = false")
	}
	b[12] += 1
	if a.ApproxEqual(b, eps) {
		t.Error("ApproxEqual beyond eps = true")
	}
}

func BenchmarkMat4_Mul(b *testing.B) {
	x := Perspective(math.Pi/2, 1, 0.1, 100)
	y := LookAt(V3(0, 0, 1), V3(0, 0, 0), V3(0, 1, 0))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = x.Mul(y)
	}
	_ = x
}
