package gpu

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/merchkit/internal/editor"
)

// Texture is an uploaded RGBA texture.
type Texture struct {
	id     uint32
	width  int
	height int
	sink   *TextureSink
}

// ID returns the GL texture name, or 0 once released.
func (t *Texture) ID() uint32 {
	return t.id
}

// Release deletes the GL texture. It is safe to call more than once.
func (t *Texture) Release() {
	if t.id == 0 {
		return
	}
	if t.sink != nil && t.sink.current == t {
		t.sink.current = nil
	}
	gl.DeleteTextures(1, &t.id)
	t.id = 0
}

// Upload creates a texture from img with linear filtering and mipmaps.
func Upload(img *image.RGBA, mipmaps bool) (*Texture, error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("uploading empty texture")
	}
	if img.Stride != b.Dx()*4 {
		return nil, fmt.Errorf("texture stride %d does not match width %d", img.Stride, b.Dx())
	}

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(b.Dx()), int32(b.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))

	if mipmaps {
		gl.GenerateMipmap(gl.TEXTURE_2D)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
		gl.TexParameterf(gl.TEXTURE_2D, gl.TEXTURE_MAX_ANISOTROPY, 8.0)
	} else {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return &Texture{id: id, width: b.Dx(), height: b.Dy()}, nil
}

// TextureSink publishes composited textures to the GPU. The session
// releases the previous handle before each publish, so at most one
// texture per sink is alive.
type TextureSink struct {
	mipmaps bool
	current *Texture
}

// NewTextureSink creates a sink. Mipmaps suit the mesh texture; the flat
// preview is drawn at native size and does not need them.
func NewTextureSink(mipmaps bool) *TextureSink {
	return &TextureSink{mipmaps: mipmaps}
}

// Publish uploads img and makes it the current texture.
func (s *TextureSink) Publish(img *image.RGBA) (editor.TextureHandle, error) {
	t, err := Upload(img, s.mipmaps)
	if err != nil {
		return nil, err
	}
	t.sink = s
	s.current = t
	return t, nil
}

// Current returns the live texture name, or 0.
func (s *TextureSink) Current() uint32 {
	if s.current == nil {
		return 0
	}
	return s.current.id
}
