package mesh

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/merchkit/pkg/math"
)

// New validates indices and computes bounds.
func New(vertices []Vertex, indices []uint32, hasUV bool) (*Mesh, error) {
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("index count %d is not a multiple of 3", len(indices))
	}
	for i, idx := range indices {
		if int(idx) >= len(vertices) {
			return nil, fmt.Errorf("index %d references vertex %d of %d", i, idx, len(vertices))
		}
	}
	m := &Mesh{Vertices: vertices, Indices: indices, HasUV: hasUV}
	m.Bounds = computeBounds(vertices)
	return m, nil
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Triangle returns the vertices of triangle i.
func (m *Mesh) Triangle(i int) (a, b, c Vertex) {
	return m.Vertices[m.Indices[3*i]], m.Vertices[m.Indices[3*i+1]], m.Vertices[m.Indices[3*i+2]]
}

// Fit scales the mesh uniformly so its largest dimension equals size and
// moves its bounding box center to the origin.
func (m *Mesh) Fit(size float32) {
	ext := m.Bounds.Size()
	largest := math32.Max(ext[0], math32.Max(ext[1], ext[2]))
	if largest == 0 {
		return
	}
	s := size / largest
	c := m.Bounds.Center()

	for i := range m.Vertices {
		p := &m.Vertices[i].Position
		p[0] = (p[0] - c[0]) * s
		p[1] = (p[1] - c[1]) * s
		p[2] = (p[2] - c[2]) * s
	}
	m.Bounds = computeBounds(m.Vertices)
}

// SmoothNormals averages normals at shared vertex positions, which hides
// seams where vertices are split for texture coordinates.
func SmoothNormals(vertices []Vertex) {
	const epsilon float32 = 0.001

	posMap := make(map[[3]int32][]int)
	for i := range vertices {
		key := [3]int32{
			int32(math32.Round(vertices[i].Position[0] / epsilon)),
			int32(math32.Round(vertices[i].Position[1] / epsilon)),
			int32(math32.Round(vertices[i].Position[2] / epsilon)),
		}
		posMap[key] = append(posMap[key], i)
	}

	for _, idxs := range posMap {
		if len(idxs) < 2 {
			continue
		}

		var sum math.Vec3
		for _, idx := range idxs {
			sum = sum.Add(math.V3(vertices[idx].Normal))
		}
		avg := sum.Normalize().Array()

		for _, idx := range idxs {
			vertices[idx].Normal = avg
		}
	}
}

func computeBounds(vertices []Vertex) Bounds {
	if len(vertices) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: vertices[0].Position, Max: vertices[0].Position}
	for _, v := range vertices[1:] {
		for k := 0; k < 3; k++ {
			b.Min[k] = math32.Min(b.Min[k], v.Position[k])
			b.Max[k] = math32.Max(b.Max[k], v.Position[k])
		}
	}
	return b
}
