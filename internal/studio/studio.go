// Package studio implements the interactive garment viewer: a 3D view of
// the garment beside the flat preview canvas, both editing one design.
package studio

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/merchkit/internal/assets"
	"github.com/Faultbox/merchkit/internal/camera"
	"github.com/Faultbox/merchkit/internal/colorfill"
	"github.com/Faultbox/merchkit/internal/compositor"
	"github.com/Faultbox/merchkit/internal/config"
	"github.com/Faultbox/merchkit/internal/editor"
	"github.com/Faultbox/merchkit/internal/gpu"
	"github.com/Faultbox/merchkit/internal/input"
	"github.com/Faultbox/merchkit/internal/logger"
	"github.com/Faultbox/merchkit/internal/mesh"
	"github.com/Faultbox/merchkit/internal/overlay"
	"github.com/Faultbox/merchkit/internal/picking"
	"github.com/Faultbox/merchkit/internal/preview"
	"github.com/Faultbox/merchkit/internal/texture"
	"github.com/Faultbox/merchkit/internal/window"
)

// panelMargin separates the preview panel from the window edge.
const panelMargin = 16

// Studio is the interactive viewer instance.
type Studio struct {
	cfg     *config.Config
	ctx     context.Context
	cancel  context.CancelFunc
	running bool
	log     *zap.Logger

	window *window.Window
	input  *input.Input

	// Editing
	assets   *assets.Library
	fill     *colorfill.Engine
	session  *editor.Session
	meshCtl  *editor.Controller
	flatCtl  *editor.Controller
	surface  *preview.Surface
	exporter *texture.Exporter
	choices  input.Choices

	// 3D view
	camera  *camera.OrbitCamera
	garment *mesh.Mesh
	picker  *picking.Picker

	// GPU
	meshSink     *gpu.TextureSink
	previewSink  *gpu.TextureSink
	previewTex   editor.TextureHandle
	meshRenderer *gpu.MeshRenderer
	quad         *gpu.QuadRenderer

	// Preview freshness
	previewRev   uint64
	previewSel   overlay.Selection
	previewValid bool

	// Pointer state
	width, height int
	orbiting      bool
	flatDrag      bool
	lastX, lastY  int
	hover         int

	// Text entry
	typing bool
	typed  string

	showPreview bool
}

// New creates the window and GPU resources and loads the template.
func New(cfg *config.Config) (*Studio, error) {
	logger.Info("initializing studio",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	ctx, cancel := context.WithCancel(context.Background())
	s := &Studio{
		cfg:         cfg,
		ctx:         ctx,
		cancel:      cancel,
		log:         logger.Named("studio"),
		width:       cfg.Window.Width,
		height:      cfg.Window.Height,
		hover:       -1,
		showPreview: true,
		choices: input.Choices{
			Fonts:   cfg.Editor.Fonts,
			Palette: cfg.Editor.Palette,
		},
	}

	var err error
	s.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	s.width, s.height = s.window.Size()

	if err := gpu.Init(); err != nil {
		s.Close()
		return nil, err
	}
	s.input = input.New()

	s.garment = mesh.Garment()
	s.camera = cfg.Camera.Camera()
	s.picker = picking.NewPicker(s.camera, s.garment, s.viewportWidth(), s.height)

	if s.meshRenderer, err = gpu.NewMeshRenderer(s.garment); err != nil {
		s.Close()
		return nil, err
	}
	if s.quad, err = gpu.NewQuadRenderer(); err != nil {
		s.Close()
		return nil, err
	}

	s.fill = loadTemplate(ctx, cfg.Texture.Template)
	s.assets = assets.NewLibrary(assets.Options{KeyOutNavy: cfg.Editor.KeyOutNavy})
	comp := compositor.New(nil, s.assets)

	s.meshSink = gpu.NewTextureSink(true)
	s.previewSink = gpu.NewTextureSink(false)
	s.meshCtl = editor.NewController(cfg.ControllerConfig(editor.SurfaceMesh))
	s.surface = preview.New(preview.Config{
		Size:           cfg.Preview.Size,
		SelectionColor: cfg.Preview.SelectionRGBA(),
	}, comp)
	flat := cfg.ControllerConfig(editor.SurfaceFlat)
	flat.HitTester = s.surface
	s.flatCtl = editor.NewController(flat)

	s.session = editor.NewSession(editor.SessionConfig{
		Controller:     s.meshCtl,
		Fill:           s.fill,
		Assets:         s.assets,
		Compositor:     comp,
		Sink:           s.meshSink,
		Resolution:     cfg.Texture.Resolution,
		FlipV:          cfg.Texture.FlipV,
		Background:     colorfill.MustHexOrWhite(cfg.Texture.Background),
		ShowSelection:  true,
		SelectionColor: cfg.Preview.SelectionRGBA(),
	}, editor.NewState(cfg.Texture.BaseColor))
	s.exporter = texture.NewExporter(cfg.Texture.OutputDir, "merch")

	if err := s.session.Render(); err != nil {
		s.log.Warn("initial composite failed", zap.Error(err))
	}

	logger.Info("studio initialized successfully")
	return s, nil
}

// loadTemplate decodes the UV template. A missing path means no base
// fill step; a failed decode leaves the engine unavailable.
func loadTemplate(ctx context.Context, path string) *colorfill.Engine {
	if path == "" {
		return colorfill.NewEngine(nil)
	}
	img, err := texture.Load(ctx, path)
	if err != nil {
		logger.Error("template unavailable", zap.String("path", path), zap.Error(err))
		return colorfill.Unavailable(err)
	}
	logger.Info("template loaded",
		zap.String("path", path),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()))
	return colorfill.NewEngine(img)
}

// Run starts the main loop.
func (s *Studio) Run() error {
	s.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting studio loop")

	for s.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		if s.input.Update() {
			s.running = false
			break
		}
		for _, ev := range s.input.Events() {
			s.handle(ev)
		}

		if _, err := s.session.Pump(s.ctx); err != nil {
			s.log.Warn("asset completion", zap.Error(err))
		}

		if err := s.render(); err != nil {
			return fmt.Errorf("render error: %w", err)
		}
		s.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps", zap.Int("count", frameCount), zap.String("dt", fmt.Sprintf("%.2fms", dt*1000)))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}
	return nil
}

// Close releases all resources.
func (s *Studio) Close() {
	logger.Info("closing studio")
	s.cancel()

	if s.assets != nil {
		s.assets.Wait()
	}
	if s.session != nil {
		s.session.Close()
	}
	if s.previewTex != nil {
		s.previewTex.Release()
	}
	if s.meshRenderer != nil {
		s.meshRenderer.Destroy()
	}
	if s.quad != nil {
		s.quad.Destroy()
	}
	if s.window != nil {
		s.window.Close()
	}
}

func (s *Studio) render() error {
	dw, dh := s.window.DrawableSize()
	scale := float32(dw) / float32(max(1, s.width))

	gpu.Viewport(dw, dh)
	gpu.Clear()

	vw := s.viewportWidth()
	gpu.Viewport(int(float32(vw)*scale), dh)
	s.meshRenderer.Render(s.camera.ViewProjection(float32(vw)/float32(max(1, s.height))), s.picker.Model, s.meshSink.Current())

	if !s.showPreview {
		return nil
	}
	if err := s.refreshPreview(); err != nil {
		return err
	}
	gpu.Viewport(dw, dh)
	s.quad.Render(s.previewSink.Current(), s.panelRect(), s.width, s.height)
	return nil
}

// refreshPreview re-renders the flat canvas when the shared state moved
// on since the last upload.
func (s *Studio) refreshPreview() error {
	st := s.session.State()
	if s.previewValid && s.previewRev == st.Revision && s.previewSel == st.Selection {
		return nil
	}
	img, err := s.surface.Render(st, nil)
	if err != nil {
		return err
	}
	if s.previewTex != nil {
		s.previewTex.Release()
		s.previewTex = nil
	}
	h, err := s.previewSink.Publish(img)
	if err != nil {
		return fmt.Errorf("uploading preview: %w", err)
	}
	s.previewTex = h
	s.previewRev = st.Revision
	s.previewSel = st.Selection
	s.previewValid = true
	return nil
}

// viewportWidth is the width of the 3D view in window coordinates.
func (s *Studio) viewportWidth() int {
	if !s.showPreview {
		return s.width
	}
	return max(1, s.width-s.cfg.Preview.Size-2*panelMargin)
}

// panelRect is the preview canvas placement in window coordinates.
func (s *Studio) panelRect() gpu.Rect {
	size := s.cfg.Preview.Size
	return gpu.Rect{
		X: s.width - size - panelMargin,
		Y: max(panelMargin, (s.height-size)/2),
		W: size,
		H: size,
	}
}

// dispatch sends ev through c and logs failures. Errors never stop the
// loop; a failed composite leaves the previous texture on screen.
func (s *Studio) dispatch(c *editor.Controller, ev editor.Event) {
	if err := s.session.DispatchOn(s.ctx, c, ev); err != nil {
		if errors.Is(err, colorfill.ErrTemplateUnavailable) {
			s.log.Debug("composite skipped", zap.Error(err))
			return
		}
		s.log.Warn("editor event failed", zap.String("event", fmt.Sprintf("%T", ev)), zap.Error(err))
	}
}
