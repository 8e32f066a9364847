package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/merchkit/internal/colorfill"
	"github.com/Faultbox/merchkit/internal/design"
	"github.com/Faultbox/merchkit/internal/logger"
	"github.com/Faultbox/merchkit/internal/texture"
)

var renderOpts struct {
	output     string
	template   string
	resolution int
	thumbnail  bool
	watch      bool
	debounce   time.Duration
}

var renderCmd = &cobra.Command{
	Use:   "render [design]",
	Short: "Composite a design onto the garment texture",
	Long: `Replay a saved design (JSON, YAML or TOML) onto the garment texture and
write it as PNG. The template is recolored to the design color before the
overlays are drawn; without a template the overlays go over the configured
background. With --watch the texture is rebuilt whenever the design changes.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	f := renderCmd.Flags()
	f.StringVarP(&renderOpts.output, "output", "o", "", "output PNG (default: <design>.png)")
	f.StringVar(&renderOpts.template, "template", "", "UV template image (default: from config)")
	f.IntVar(&renderOpts.resolution, "resolution", 0, "texture edge in pixels (default: from config)")
	f.BoolVar(&renderOpts.thumbnail, "thumbnail", false, "store a thumbnail of the result in the design file")
	f.BoolVarP(&renderOpts.watch, "watch", "w", false, "re-render when the design file changes")
	f.DurationVar(&renderOpts.debounce, "debounce", 200*time.Millisecond, "quiet period before re-rendering")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	path := args[0]
	if renderOpts.thumbnail && renderOpts.watch {
		return fmt.Errorf("--thumbnail rewrites the design and cannot be combined with --watch")
	}
	if renderOpts.template == "" {
		renderOpts.template = cfg.Texture.Template
	}
	if renderOpts.resolution <= 0 {
		renderOpts.resolution = cfg.Texture.Resolution
	}
	if renderOpts.output == "" {
		renderOpts.output = outputPath(path, "")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	if err := renderOnce(ctx, path); err != nil {
		if !renderOpts.watch {
			return err
		}
		logger.Error("render failed", zap.String("design", path), zap.Error(err))
	}
	if !renderOpts.watch {
		return nil
	}

	logger.Info("watching design", zap.String("path", path))
	return watchFile(ctx, path, renderOpts.debounce, func() {
		if err := renderOnce(ctx, path); err != nil {
			logger.Error("render failed", zap.String("design", path), zap.Error(err))
		}
	})
}

func renderOnce(ctx context.Context, path string) error {
	start := time.Now()
	l, err := loadDesign(ctx, path, renderOpts.template)
	if err != nil {
		return err
	}

	img, _, err := design.Render(l.design, design.RenderConfig{
		Resolution: renderOpts.resolution,
		FlipV:      cfg.Texture.FlipV,
		Template:   l.template,
		Background: colorfill.MustHexOrWhite(cfg.Texture.Background),
		Images:     l.lib,
	})
	if err != nil {
		return err
	}
	if err := texture.SavePNG(renderOpts.output, img); err != nil {
		return err
	}

	if renderOpts.thumbnail {
		d, err := l.design.WithThumbnail(img, design.DefaultThumbnailSize)
		if err != nil {
			return err
		}
		if err := design.Save(path, d); err != nil {
			return err
		}
	}

	logger.Info("texture written",
		zap.String("output", renderOpts.output),
		zap.Int("overlays", l.snap.Len()),
		zap.Int("dropped", len(l.report.Dropped)),
		zap.Duration("took", time.Since(start)))
	fmt.Println(renderOpts.output)
	return nil
}
