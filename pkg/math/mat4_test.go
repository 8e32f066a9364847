package math

import (
	"math"
	"testing"
)

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	result := m.Mul(Identity())
	if result != m {
		t.Errorf("M * I = %v, want %v", result, m)
	}
}

func TestTransformPoint(t *testing.T) {
	m := Translate(10, 20, 30).Mul(Scale(2, 2, 2))
	got := m.TransformPoint(Vec3{1, 2, 3})
	want := Vec3{12, 24, 36}
	if got != want {
		t.Errorf("TransformPoint() = %v, want %v", got, want)
	}
}

func TestTransformDirectionIgnoresTranslation(t *testing.T) {
	m := Translate(10, 20, 30)
	got := m.TransformDirection(Vec3{0, 0, -1})
	if got != (Vec3{0, 0, -1}) {
		t.Errorf("TransformDirection() = %v, want (0,0,-1)", got)
	}
}

func TestRotateY90(t *testing.T) {
	m := RotateY(float32(math.Pi / 2))
	r := m.TransformPoint(Vec3{1, 0, 0})
	if abs(r.X) > 0.001 || abs(r.Y) > 0.001 || abs(r.Z+1) > 0.001 {
		t.Errorf("RotateY 90: got %v, want (0, 0, -1)", r)
	}
}

func TestPerspective(t *testing.T) {
	m := Perspective(float32(math.Pi/4), 1, 0.1, 100)
	if m[15] != 0 {
		t.Errorf("Perspective [15] = %f, want 0", m[15])
	}
	if m[11] != -1 {
		t.Errorf("Perspective [11] = %f, want -1", m[11])
	}
}

func TestInverseRoundTrip(t *testing.T) {
	view := LookAt(Vec3{0, 0.5, 2.5}, Vec3{}, Vec3{0, 1, 0})
	proj := Perspective(Radians(50), 4.0/3.0, 0.1, 1000)
	vp := proj.Mul(view)

	inv, ok := vp.Inverse()
	if !ok {
		t.Fatal("Inverse() reported singular view-projection")
	}
	id := vp.Mul(inv)
	want := Identity()
	for i := range id {
		if abs(id[i]-want[i]) > 1e-3 {
			t.Fatalf("VP * VP^-1 element %d = %f, want %f", i, id[i], want[i])
		}
	}
}

func TestInverseSingular(t *testing.T) {
	inv, ok := Scale(1, 0, 1).Inverse()
	if ok {
		t.Error("Inverse() of singular matrix should report !ok")
	}
	if inv != Identity() {
		t.Error("Inverse() of singular matrix should return identity")
	}
}

func TestLookAtMovesEyeToOrigin(t *testing.T) {
	eye := Vec3{0, 0, 5}
	m := LookAt(eye, Vec3{}, Vec3{0, 1, 0})
	p := m.TransformPoint(eye)
	if p.Length() > 1e-5 {
		t.Errorf("LookAt eye maps to %v, want origin", p)
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
