package picking

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/merchkit/internal/camera"
	"github.com/Faultbox/merchkit/internal/mesh"
	"github.com/Faultbox/merchkit/pkg/math"
)

// Hit is the nearest surface point under a ray.
type Hit struct {
	T        float32   // world-space ray parameter
	Point    math.Vec3 // world-space position
	UV       math.Vec2 // interpolated texture coordinate, V up
	Triangle int
}

// PickUV finds the nearest triangle of m, placed in the world by model, hit
// by the ray and returns its interpolated texture coordinate. A mesh
// without texture coordinates, a singular model matrix, or a ray that
// only meets degenerate triangles reports no hit.
func PickUV(ray Ray, m *mesh.Mesh, model math.Mat4) (Hit, bool) {
	if m == nil || !m.HasUV || m.TriangleCount() == 0 {
		return Hit{}, false
	}
	inv, ok := model.Inverse()
	if !ok {
		return Hit{}, false
	}

	// Work in model space. The direction stays unnormalized so t matches
	// the world ray.
	local := Ray{
		Origin:    inv.TransformPoint(ray.Origin),
		Direction: inv.TransformDirection(ray.Direction),
	}
	if _, hit := local.IntersectAABB(NewAABB(m.Bounds.Min, m.Bounds.Max)); !hit {
		return Hit{}, false
	}

	best := Hit{T: math32.MaxFloat32, Triangle: -1}
	var bu, bv float32
	for i := 0; i < m.TriangleCount(); i++ {
		a, b, c := m.Triangle(i)
		t, u, v, ok := local.IntersectTriangle(math.V3(a.Position), math.V3(b.Position), math.V3(c.Position))
		if !ok || t >= best.T {
			continue
		}
		best.T, best.Triangle = t, i
		bu, bv = u, v
	}
	if best.Triangle < 0 {
		return Hit{}, false
	}

	a, b, c := m.Triangle(best.Triangle)
	w := 1 - bu - bv
	uv := math.Vec2{
		X: w*a.TexCoord[0] + bu*b.TexCoord[0] + bv*c.TexCoord[0],
		Y: w*a.TexCoord[1] + bu*b.TexCoord[1] + bv*c.TexCoord[1],
	}
	if math32.IsNaN(uv.X) || math32.IsNaN(uv.Y) {
		return Hit{}, false
	}
	best.UV = uv
	best.Point = ray.At(best.T)
	return best, true
}

// Picker bundles what a viewport needs to turn pointer positions into UVs.
type Picker struct {
	Camera *camera.OrbitCamera
	Mesh   *mesh.Mesh
	Model  math.Mat4
	Width  int
	Height int
}

// NewPicker creates a picker with an identity model matrix.
func NewPicker(cam *camera.OrbitCamera, m *mesh.Mesh, width, height int) *Picker {
	return &Picker{Camera: cam, Mesh: m, Model: math.Identity(), Width: width, Height: height}
}

// Resize updates the viewport dimensions.
func (p *Picker) Resize(width, height int) {
	p.Width, p.Height = width, height
}

// Ray returns the world ray through a viewport pixel.
func (p *Picker) Ray(x, y float32) (Ray, bool) {
	if p.Camera == nil || p.Width <= 0 || p.Height <= 0 {
		return Ray{}, false
	}
	inv, ok := p.Camera.InverseViewProjection(float32(p.Width) / float32(p.Height))
	if !ok {
		return Ray{}, false
	}
	return ScreenToRay(x, y, float32(p.Width), float32(p.Height), inv), true
}

// Pick returns the surface hit under a viewport pixel.
func (p *Picker) Pick(x, y float32) (Hit, bool) {
	ray, ok := p.Ray(x, y)
	if !ok {
		return Hit{}, false
	}
	return PickUV(ray, p.Mesh, p.Model)
}
