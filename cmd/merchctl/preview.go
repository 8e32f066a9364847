package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Faultbox/merchkit/internal/compositor"
	"github.com/Faultbox/merchkit/internal/editor"
	"github.com/Faultbox/merchkit/internal/overlay"
	"github.com/Faultbox/merchkit/internal/preview"
	"github.com/Faultbox/merchkit/internal/texture"
)

var previewOpts struct {
	output   string
	template string
	size     int
	selected int
}

var previewCmd = &cobra.Command{
	Use:   "preview [design]",
	Short: "Render the flat preview canvas of a design",
	Long: `Render a design the way the flat editor shows it: a square canvas filled
with the garment color, overlays scaled from the canonical 1024 pixel frame,
and optionally the dashed indicator around one overlay.`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	f := previewCmd.Flags()
	f.StringVarP(&previewOpts.output, "output", "o", "", "output PNG (default: <design>_preview.png)")
	f.StringVar(&previewOpts.template, "template", "", "recolor this template under the overlays")
	f.IntVar(&previewOpts.size, "size", 0, "canvas edge in pixels (default: from config)")
	f.IntVar(&previewOpts.selected, "select", -1, "draw the selection indicator around this overlay index")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	path := args[0]
	if previewOpts.size <= 0 {
		previewOpts.size = cfg.Preview.Size
	}
	if previewOpts.output == "" {
		previewOpts.output = outputPath(path, "_preview")
	}

	l, err := loadDesign(cmd.Context(), path, previewOpts.template)
	if err != nil {
		return err
	}

	surface := preview.New(preview.Config{
		Size:           previewOpts.size,
		SelectionColor: cfg.Preview.SelectionRGBA(),
	}, compositor.New(nil, l.lib))

	st := previewState(l, previewOpts.selected)
	img, err := surface.Render(st, l.base())
	if err != nil {
		return err
	}
	if err := texture.SavePNG(previewOpts.output, img); err != nil {
		return err
	}
	fmt.Println(previewOpts.output)
	return nil
}

// previewState builds an editor state showing l with overlay index
// selected. An out-of-range index selects nothing.
func previewState(l *loaded, index int) editor.State {
	st := editor.NewState(l.design.BaseColor())
	st.Overlays = l.snap
	st.Selection = overlay.Select(l.snap, index)
	if st.Selection.Valid() {
		st.Mode = editor.ModeSelected
	}
	return st
}
