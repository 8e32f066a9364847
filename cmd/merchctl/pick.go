package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Faultbox/merchkit/internal/mesh"
	"github.com/Faultbox/merchkit/internal/overlay"
	"github.com/Faultbox/merchkit/internal/picking"
)

var pickOpts struct {
	width  int
	height int
	size   int
}

var pickCmd = &cobra.Command{
	Use:   "pick [x] [y]",
	Short: "Report the texture coordinate under a screen point",
	Long: `Cast a ray through a pixel of the 3D view, framed by the configured
camera, against the stand-in garment and print the hit: world position,
canonical UV, and the pixel it lands on in a texture of the given size.`,
	Args: cobra.ExactArgs(2),
	RunE: runPick,
}

func init() {
	f := pickCmd.Flags()
	f.IntVar(&pickOpts.width, "width", 0, "viewport width (default: window width)")
	f.IntVar(&pickOpts.height, "height", 0, "viewport height (default: window height)")
	f.IntVar(&pickOpts.size, "size", 0, "texture edge for the pixel readout (default: texture resolution)")
	rootCmd.AddCommand(pickCmd)
}

func runPick(cmd *cobra.Command, args []string) error {
	x, err := strconv.ParseFloat(args[0], 32)
	if err != nil {
		return fmt.Errorf("invalid x %q: %w", args[0], err)
	}
	y, err := strconv.ParseFloat(args[1], 32)
	if err != nil {
		return fmt.Errorf("invalid y %q: %w", args[1], err)
	}
	if pickOpts.width <= 0 {
		pickOpts.width = cfg.Window.Width
	}
	if pickOpts.height <= 0 {
		pickOpts.height = cfg.Window.Height
	}
	if pickOpts.size <= 0 {
		pickOpts.size = cfg.Texture.Resolution
	}

	p := picking.NewPicker(cfg.Camera.Camera(), mesh.Garment(), pickOpts.width, pickOpts.height)
	hit, ok := p.Pick(float32(x), float32(y))
	if !ok {
		fmt.Println("miss")
		return nil
	}

	uv := overlay.UV{U: float64(hit.UV.X), V: float64(hit.UV.Y)}
	px, py := overlay.TextureFrame(pickOpts.size, cfg.Texture.FlipV).ToPixel(uv)
	fmt.Printf("Point:    (%.4f, %.4f, %.4f)\n", hit.Point.X, hit.Point.Y, hit.Point.Z)
	fmt.Printf("UV:       (%.4f, %.4f)\n", uv.U, uv.V)
	fmt.Printf("Pixel:    (%.1f, %.1f) of %d\n", px, py, pickOpts.size)
	fmt.Printf("Triangle: %d\n", hit.Triangle)
	fmt.Printf("Distance: %.4f\n", hit.T)
	return nil
}
