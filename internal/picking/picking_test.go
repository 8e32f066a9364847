package picking

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/merchkit/internal/camera"
	"github.com/Faultbox/merchkit/internal/mesh"
	"github.com/Faultbox/merchkit/pkg/math"
)

const eps = 1e-3

func near(a, b float32) bool {
	return math32.Abs(a-b) < eps
}

func TestScreenToRayCenter(t *testing.T) {
	cam := camera.NewOrbitCamera()
	inv, ok := cam.InverseViewProjection(1)
	if !ok {
		t.Fatal("camera not invertible")
	}
	ray := ScreenToRay(400, 400, 800, 800, inv)

	want := cam.Target.Sub(cam.Position()).Normalize()
	if ray.Direction.Dot(want) < 0.9999 {
		t.Errorf("Direction = %+v, want %+v", ray.Direction, want)
	}
	// The origin sits on the near plane in front of the eye.
	if d := ray.Origin.Distance(cam.Position()); d < cam.Near*0.99 || d > cam.Near*1.2 {
		t.Errorf("origin %v from eye, want about near plane %v", d, cam.Near)
	}
}

func TestScreenToRayYFlip(t *testing.T) {
	cam := camera.NewOrbitCamera()
	inv, _ := cam.InverseViewProjection(1)
	top := ScreenToRay(400, 0, 800, 800, inv)
	bottom := ScreenToRay(400, 800, 800, 800, inv)
	if top.Direction.Y <= bottom.Direction.Y {
		t.Errorf("top ray Y %v should exceed bottom ray Y %v", top.Direction.Y, bottom.Direction.Y)
	}
}

func TestIntersectAABB(t *testing.T) {
	box := NewAABB([3]float32{1, 1, 1}, [3]float32{-1, -1, -1})
	tests := []struct {
		name  string
		ray   Ray
		wantT float32
		hit   bool
	}{
		{"front", Ray{math.Vec3{Z: 5}, math.Vec3{Z: -1}}, 4, true},
		{"inside exits", Ray{math.Vec3{}, math.Vec3{X: 1}}, 1, true},
		{"behind", Ray{math.Vec3{Z: 5}, math.Vec3{Z: 1}}, 0, false},
		{"parallel outside", Ray{math.Vec3{X: 2, Z: 5}, math.Vec3{Z: -1}}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, hit := tt.ray.IntersectAABB(box)
			if hit != tt.hit || (hit && !near(got, tt.wantT)) {
				t.Errorf("IntersectAABB() = %v, %v; want %v, %v", got, hit, tt.wantT, tt.hit)
			}
		})
	}
}

func TestIntersectTriangle(t *testing.T) {
	a := math.Vec3{X: -1, Y: -1}
	b := math.Vec3{X: 1, Y: -1}
	c := math.Vec3{X: -1, Y: 1}

	tests := []struct {
		name string
		ray  Ray
		hit  bool
	}{
		{"front face", Ray{math.Vec3{X: -0.5, Y: -0.5, Z: 2}, math.Vec3{Z: -1}}, true},
		{"back face", Ray{math.Vec3{X: -0.5, Y: -0.5, Z: -2}, math.Vec3{Z: 1}}, true},
		{"outside", Ray{math.Vec3{X: 0.9, Y: 0.9, Z: 2}, math.Vec3{Z: -1}}, false},
		{"pointing away", Ray{math.Vec3{X: -0.5, Y: -0.5, Z: 2}, math.Vec3{Z: 1}}, false},
		{"parallel", Ray{math.Vec3{X: -0.5, Y: -0.5, Z: 2}, math.Vec3{X: 1}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotT, _, _, hit := tt.ray.IntersectTriangle(a, b, c)
			if hit != tt.hit {
				t.Fatalf("hit = %v, want %v", hit, tt.hit)
			}
			if hit && !near(gotT, 2) {
				t.Errorf("t = %v, want 2", gotT)
			}
		})
	}
}

func TestIntersectDegenerateTriangle(t *testing.T) {
	ray := Ray{math.Vec3{X: 0.5, Z: 2}, math.Vec3{Z: -1}}
	a := math.Vec3{}
	b := math.Vec3{X: 1}
	c := math.Vec3{X: 2}
	if _, _, _, hit := ray.IntersectTriangle(a, b, c); hit {
		t.Error("degenerate triangle reported a hit")
	}
}

func TestPickCenterOfQuad(t *testing.T) {
	p := NewPicker(camera.NewOrbitCamera(), mesh.Quad(2, 2), 800, 600)
	hit, ok := p.Pick(400, 300)
	if !ok {
		t.Fatal("Pick() missed the quad")
	}
	if !near(hit.UV.X, 0.5) || !near(hit.UV.Y, 0.5) {
		t.Errorf("UV = %+v, want (0.5, 0.5)", hit.UV)
	}
	if hit.Point.Length() > eps {
		t.Errorf("Point = %+v, want origin", hit.Point)
	}
}

func TestPickMiss(t *testing.T) {
	p := NewPicker(camera.NewOrbitCamera(), mesh.Quad(0.2, 0.2), 800, 600)
	if _, ok := p.Pick(5, 5); ok {
		t.Error("Pick() at the corner should miss a small quad")
	}
}

func TestPickUVOrientation(t *testing.T) {
	// Screen right grows U; screen up grows V.
	p := NewPicker(camera.NewOrbitCamera(), mesh.Quad(2, 2), 800, 800)
	center, _ := p.Pick(400, 400)
	right, ok := p.Pick(500, 400)
	if !ok || right.UV.X <= center.UV.X {
		t.Errorf("right UV %+v should exceed center %+v", right.UV, center.UV)
	}
	up, ok := p.Pick(400, 300)
	if !ok || up.UV.Y <= center.UV.Y {
		t.Errorf("up UV %+v should exceed center %+v", up.UV, center.UV)
	}
}

func TestPickNearest(t *testing.T) {
	n := [3]float32{0, 0, 1}
	quad := func(z, u float32) []mesh.Vertex {
		return []mesh.Vertex{
			{Position: [3]float32{-1, -1, z}, Normal: n, TexCoord: [2]float32{u, u}},
			{Position: [3]float32{1, -1, z}, Normal: n, TexCoord: [2]float32{u, u}},
			{Position: [3]float32{1, 1, z}, Normal: n, TexCoord: [2]float32{u, u}},
			{Position: [3]float32{-1, 1, z}, Normal: n, TexCoord: [2]float32{u, u}},
		}
	}
	// The far quad comes first in the index list.
	vertices := append(quad(-0.5, 0.1), quad(0.5, 0.9)...)
	indices := []uint32{0, 1, 2, 0, 2, 3, 4, 5, 6, 4, 6, 7}
	m, err := mesh.New(vertices, indices, true)
	if err != nil {
		t.Fatal(err)
	}

	ray := Ray{Origin: math.Vec3{Z: 5}, Direction: math.Vec3{Z: -1}}
	hit, ok := PickUV(ray, m, math.Identity())
	if !ok {
		t.Fatal("PickUV() missed")
	}
	if !near(hit.UV.X, 0.9) || !near(hit.T, 4.5) {
		t.Errorf("hit = %+v, want the near quad at t=4.5", hit)
	}
}

func TestPickWithoutUV(t *testing.T) {
	m := mesh.Quad(2, 2)
	m.HasUV = false
	ray := Ray{Origin: math.Vec3{Z: 5}, Direction: math.Vec3{Z: -1}}
	if _, ok := PickUV(ray, m, math.Identity()); ok {
		t.Error("PickUV() hit a mesh without UVs")
	}
}

func TestPickDegenerateMesh(t *testing.T) {
	vertices := []mesh.Vertex{
		{Position: [3]float32{-1, 0, 0}},
		{Position: [3]float32{0, 0, 0}},
		{Position: [3]float32{1, 0, 0}},
	}
	m, err := mesh.New(vertices, []uint32{0, 1, 2}, true)
	if err != nil {
		t.Fatal(err)
	}
	ray := Ray{Origin: math.Vec3{Z: 5}, Direction: math.Vec3{Z: -1}}
	if _, ok := PickUV(ray, m, math.Identity()); ok {
		t.Error("PickUV() hit a degenerate mesh")
	}
}

func TestPickModelMatrix(t *testing.T) {
	p := NewPicker(camera.NewOrbitCamera(), mesh.Quad(2, 2), 800, 600)
	p.Model = math.Translate(0.5, 0, 0)
	hit, ok := p.Pick(400, 300)
	if !ok {
		t.Fatal("Pick() missed the translated quad")
	}
	if !near(hit.UV.X, 0.25) || !near(hit.UV.Y, 0.5) {
		t.Errorf("UV = %+v, want (0.25, 0.5)", hit.UV)
	}
}

func TestPickCylinderFront(t *testing.T) {
	p := NewPicker(camera.NewOrbitCamera(), mesh.Cylinder(0.6, 2, 64), 800, 600)
	hit, ok := p.Pick(400, 300)
	if !ok {
		t.Fatal("Pick() missed the cylinder")
	}
	if !near(hit.UV.X, 0.5) {
		t.Errorf("U = %v, want 0.5 on the front of the cylinder", hit.UV.X)
	}
	if hit.Point.Z < 0.5 {
		t.Errorf("hit %+v is not on the front wall", hit.Point)
	}
}

func TestPickerZeroViewport(t *testing.T) {
	p := NewPicker(camera.NewOrbitCamera(), mesh.Quad(2, 2), 0, 0)
	if _, ok := p.Pick(0, 0); ok {
		t.Error("Pick() with an empty viewport reported a hit")
	}
}
