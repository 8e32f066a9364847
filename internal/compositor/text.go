package compositor

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/Faultbox/merchkit/internal/colorfill"
	"github.com/Faultbox/merchkit/internal/fonts"
	"github.com/Faultbox/merchkit/internal/overlay"
)

const maxCachedSprites = 128

// maxSpriteEdge bounds rasterized text to this multiple of the target edge.
// Larger text is rasterized at the bound and scaled up when drawn.
const maxSpriteEdge = 2

// sprite is a rendered overlay with the anchor it is centered on.
type sprite struct {
	img    *image.RGBA
	cx, cy float64
}

type spriteKey struct {
	content string
	family  string
	size    float64
	stroke  float64
	fill    color.NRGBA
}

type spriteCache struct {
	entries map[spriteKey]*sprite
}

func newSpriteCache() *spriteCache {
	return &spriteCache{entries: make(map[spriteKey]*sprite)}
}

func (c *spriteCache) get(k spriteKey) (*sprite, bool) {
	s, ok := c.entries[k]
	return s, ok
}

func (c *spriteCache) put(k spriteKey, s *sprite) {
	if len(c.entries) >= maxCachedSprites {
		clear(c.entries)
	}
	c.entries[k] = s
}

func (c *Compositor) drawText(t *Target, o overlay.Overlay) error {
	if o.Content == "" || o.FontSize <= 0 {
		return nil
	}
	k := t.Frame.PixelScale() * o.Scale
	key := spriteKey{
		content: o.Content,
		family:  fonts.Resolve(o.FontFamily),
		size:    float64(o.FontSize) * k,
		stroke:  StrokeWidth(o.FontSize) * k,
		fill:    textColor(o.Color),
	}

	up, err := c.spriteScale(&key, t.Resolution())
	if err != nil {
		return err
	}

	s, ok := c.sprites.get(key)
	if !ok {
		s, err = c.renderText(key)
		if err != nil {
			return err
		}
		c.sprites.put(key, s)
	}

	px, py := t.Frame.ToPixel(o.Position)
	s2d := placement(px, py, o.Rotation, up, up, s.cx, s.cy)
	draw.BiLinear.Transform(t.Image, s2d, s.img, s.img.Bounds(), draw.Over, nil)
	return nil
}

// spriteScale shrinks k so the rasterized sprite fits within maxSpriteEdge
// target edges and returns the factor that restores its drawn size.
func (c *Compositor) spriteScale(k *spriteKey, resolution int) (float64, error) {
	m, err := c.fonts.Measure(k.family, k.size, k.content)
	if err != nil {
		return 0, err
	}
	limit := float64(maxSpriteEdge * resolution)
	edge := math.Max(m.Advance, m.Height()) + k.stroke
	if edge <= limit {
		return 1, nil
	}
	up := edge / limit
	k.size /= up
	k.stroke /= up
	return up, nil
}

// renderText rasterizes the text with its outline. The outline is the glyph
// coverage grown by half the stroke width and painted black under the fill.
func (c *Compositor) renderText(k spriteKey) (*sprite, error) {
	face, err := c.fonts.Face(k.family, k.size)
	if err != nil {
		return nil, err
	}
	m := fonts.Measure(face, k.content)

	pad := int(math.Ceil(k.stroke/2)) + 2
	w := int(math.Ceil(m.Advance)) + 2*pad
	h := int(math.Ceil(m.Height())) + 2*pad
	glyphs := image.NewAlpha(image.Rect(0, 0, w, h))

	d := font.Drawer{
		Dst:  glyphs,
		Src:  image.Opaque,
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(pad), Y: fixed.I(pad) + face.Metrics().Ascent},
	}
	d.DrawString(k.content)

	outline := dilate(glyphs, k.stroke/2)

	img := image.NewRGBA(glyphs.Rect)
	draw.DrawMask(img, img.Rect, image.NewUniform(color.Black), image.Point{}, outline, image.Point{}, draw.Over)
	draw.DrawMask(img, img.Rect, image.NewUniform(k.fill), image.Point{}, glyphs, image.Point{}, draw.Over)

	// Anchor on the horizontal center and the middle of the em box.
	return &sprite{
		img: img,
		cx:  float64(pad) + m.Advance/2,
		cy:  float64(pad) + m.Height()/2,
	}, nil
}

func textColor(hex string) color.NRGBA {
	c, err := colorfill.ParseHex(hex)
	if err != nil {
		return color.NRGBA{A: 0xff}
	}
	return c
}

// dilate grows coverage by a disk of radius r, one horizontal run per row
// offset.
func dilate(src *image.Alpha, r float64) *image.Alpha {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	dst := image.NewAlpha(src.Rect)
	if r <= 0 {
		copy(dst.Pix, src.Pix)
		return dst
	}

	ri := int(math.Ceil(r))
	run := make([]uint8, w)
	queue := make([]int, 0, w)
	for dy := -ri; dy <= ri; dy++ {
		rem := r*r - float64(dy*dy)
		if rem < 0 {
			continue
		}
		half := int(math.Sqrt(rem))
		for y := 0; y < h; y++ {
			sy := y + dy
			if sy < 0 || sy >= h {
				continue
			}
			srow := src.Pix[sy*src.Stride : sy*src.Stride+w]
			slidingMax(run, srow, half, queue)
			drow := dst.Pix[y*dst.Stride : y*dst.Stride+w]
			for x, v := range run {
				if v > drow[x] {
					drow[x] = v
				}
			}
		}
	}
	return dst
}

// slidingMax sets dst[x] to the maximum of src[x-half : x+half+1].
func slidingMax(dst, src []uint8, half int, queue []int) {
	n := len(src)
	queue = queue[:0]
	head, next := 0, 0
	for x := 0; x < n; x++ {
		hi := min(x+half, n-1)
		for ; next <= hi; next++ {
			for len(queue) > head && src[queue[len(queue)-1]] <= src[next] {
				queue = queue[:len(queue)-1]
			}
			queue = append(queue, next)
		}
		for queue[head] < x-half {
			head++
		}
		dst[x] = src[queue[head]]
	}
}
