package mesh

import (
	"github.com/chewxy/math32"
)

// Quad returns a w by h rectangle in the XY plane facing +Z, covering the
// full texture with (0,0) at the bottom left.
func Quad(w, h float32) *Mesh {
	hw, hh := w/2, h/2
	n := [3]float32{0, 0, 1}
	vertices := []Vertex{
		{Position: [3]float32{-hw, -hh, 0}, Normal: n, TexCoord: [2]float32{0, 0}},
		{Position: [3]float32{hw, -hh, 0}, Normal: n, TexCoord: [2]float32{1, 0}},
		{Position: [3]float32{hw, hh, 0}, Normal: n, TexCoord: [2]float32{1, 1}},
		{Position: [3]float32{-hw, hh, 0}, Normal: n, TexCoord: [2]float32{0, 1}},
	}
	m, _ := New(vertices, []uint32{0, 1, 2, 0, 2, 3}, true)
	return m
}

// Cylinder returns an open tube around the Y axis. U wraps once around the
// circumference starting at +Z and V runs from the bottom to the top, so
// the texture center faces the default camera.
func Cylinder(radius, height float32, segments int) *Mesh {
	if segments < 3 {
		segments = 3
	}
	hh := height / 2
	vertices := make([]Vertex, 0, 2*(segments+1))
	for i := 0; i <= segments; i++ {
		u := float32(i) / float32(segments)
		// Start half a turn back so u=0.5 lands on +Z.
		a := (u - 0.5) * 2 * math32.Pi
		sin, cos := math32.Sincos(a)
		n := [3]float32{sin, 0, cos}
		vertices = append(vertices,
			Vertex{Position: [3]float32{radius * sin, -hh, radius * cos}, Normal: n, TexCoord: [2]float32{u, 0}},
			Vertex{Position: [3]float32{radius * sin, hh, radius * cos}, Normal: n, TexCoord: [2]float32{u, 1}},
		)
	}

	indices := make([]uint32, 0, 6*segments)
	for i := 0; i < segments; i++ {
		b0, t0 := uint32(2*i), uint32(2*i+1)
		b1, t1 := uint32(2*i+2), uint32(2*i+3)
		indices = append(indices, b0, b1, t1, b0, t1, t0)
	}

	SmoothNormals(vertices)
	m, _ := New(vertices, indices, true)
	return m
}

// GarmentSize is the largest dimension of a normalized garment mesh.
const GarmentSize = 2

// Garment returns the stand-in garment body: a tube fitted to GarmentSize
// and centered at the origin.
func Garment() *Mesh {
	m := Cylinder(0.5, 1, 96)
	m.Fit(GarmentSize)
	return m
}
