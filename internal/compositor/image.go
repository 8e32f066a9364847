package compositor

import (
	"fmt"

	"golang.org/x/image/draw"

	"github.com/Faultbox/merchkit/internal/overlay"
)

func (c *Compositor) drawImage(t *Target, o overlay.Overlay) error {
	if c.images == nil {
		return nil
	}
	src, ok := c.images.Image(o.Source)
	if !ok || src == nil {
		// Still loading or failed; the overlay reappears once resolved.
		return nil
	}
	sb := src.Bounds()
	if sb.Empty() || o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("image overlay %q has an empty extent", o.Source)
	}

	k := t.Frame.PixelScale() * o.Scale
	sx := float64(o.Width) * k / float64(sb.Dx())
	sy := float64(o.Height) * k / float64(sb.Dy())
	cx := float64(sb.Min.X) + float64(sb.Dx())/2
	cy := float64(sb.Min.Y) + float64(sb.Dy())/2

	px, py := t.Frame.ToPixel(o.Position)
	s2d := placement(px, py, o.Rotation, sx, sy, cx, cy)
	draw.BiLinear.Transform(t.Image, s2d, src, sb, draw.Over, nil)
	return nil
}
