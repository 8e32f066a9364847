package editor

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"

	"go.uber.org/zap"

	"github.com/Faultbox/merchkit/internal/assets"
	"github.com/Faultbox/merchkit/internal/colorfill"
	"github.com/Faultbox/merchkit/internal/compositor"
	"github.com/Faultbox/merchkit/internal/logger"
	"github.com/Faultbox/merchkit/internal/overlay"
)

// TextureHandle is a published texture owned by a sink.
type TextureHandle interface {
	Release()
}

// TextureSink receives every recomposited texture. The image is reused by
// the session and must not be retained after Publish returns.
type TextureSink interface {
	Publish(img *image.RGBA) (TextureHandle, error)
}

// SessionConfig wires a Session.
type SessionConfig struct {
	Controller *Controller
	Fill       *colorfill.Engine
	Assets     *assets.Library

	// Compositor defaults to one that resolves images from Assets.
	Compositor *compositor.Compositor

	// Sink may be nil for headless use.
	Sink TextureSink

	Resolution int
	FlipV      bool
	Background color.NRGBA

	// ShowSelection draws the selection indicator into the texture.
	ShowSelection  bool
	SelectionColor color.NRGBA
}

// Session owns the editor state for one garment and keeps the composited
// texture current. It must be used from a single goroutine.
type Session struct {
	cfg    SessionConfig
	state  State
	target *compositor.Target
	handle TextureHandle
	log    *zap.Logger

	rendered    bool
	renderedRev uint64
	renderedSel overlay.Selection
}

// NewSession creates a session with an initial state.
func NewSession(cfg SessionConfig, initial State) *Session {
	if cfg.Controller == nil {
		cfg.Controller = NewController(ControllerConfig{})
	}
	if cfg.Fill == nil {
		cfg.Fill = colorfill.NewEngine(nil)
	}
	if cfg.Assets == nil {
		cfg.Assets = assets.NewLibrary(assets.Options{})
	}
	if cfg.Compositor == nil {
		cfg.Compositor = compositor.New(nil, cfg.Assets)
	}
	if cfg.Resolution <= 0 {
		cfg.Resolution = 2048
	}
	return &Session{
		cfg:    cfg,
		state:  initial,
		target: compositor.NewTarget(cfg.Resolution, cfg.FlipV),
		log:    logger.Named("session"),
	}
}

// State returns the current state.
func (s *Session) State() State {
	return s.state
}

// Controller returns the reducer driving the session.
func (s *Session) Controller() *Controller {
	return s.cfg.Controller
}

// Texture returns the most recently composited texture. It is overwritten
// by the next render.
func (s *Session) Texture() *image.RGBA {
	return s.target.Image
}

// Dispatch reduces ev, starts loading any new image sources and
// recomposites when the texture is out of date.
func (s *Session) Dispatch(ctx context.Context, ev Event) error {
	return s.DispatchOn(ctx, s.cfg.Controller, ev)
}

// DispatchOn is Dispatch through another controller. A second editing
// surface uses it to share the session state.
func (s *Session) DispatchOn(ctx context.Context, c *Controller, ev Event) error {
	s.state = c.Reduce(s.state, ev)
	s.requestImages(ctx)
	if !s.stale() {
		return nil
	}
	return s.Render()
}

// Pump hands finished image loads to the reducer without blocking and
// returns how many were processed.
func (s *Session) Pump(ctx context.Context) (int, error) {
	n := 0
	var errs []error
	for {
		select {
		case c := <-s.cfg.Assets.Completions():
			n++
			if err := s.Dispatch(ctx, AssetReady{Source: c.Source, Err: c.Err}); err != nil {
				errs = append(errs, err)
			}
		default:
			return n, errors.Join(errs...)
		}
	}
}

// Render recomposites the texture and publishes it to the sink. When the
// base fill is unavailable nothing is composited and the error is returned.
func (s *Session) Render() error {
	base, err := s.base()
	if err != nil {
		s.log.Warn("base fill unavailable, skipping composite", zap.Error(err))
		return err
	}

	opts := compositor.Options{
		Background:     s.cfg.Background,
		SelectionColor: s.cfg.SelectionColor,
	}
	if s.cfg.ShowSelection {
		opts.Selection = s.state.Selection
	}
	if err := s.cfg.Compositor.Compose(s.target, base, s.state.Overlays, opts); err != nil {
		return fmt.Errorf("compositing: %w", err)
	}

	s.rendered = true
	s.renderedRev = s.state.Revision
	s.renderedSel = opts.Selection
	return s.publish()
}

// Checkout renders a fresh texture without the selection indicator, for
// hand-off to cart or checkout.
func (s *Session) Checkout() (*image.RGBA, error) {
	base, err := s.base()
	if err != nil {
		return nil, err
	}
	t := compositor.NewTarget(s.cfg.Resolution, s.cfg.FlipV)
	opts := compositor.Options{Background: s.cfg.Background}
	if err := s.cfg.Compositor.Compose(t, base, s.state.Overlays, opts); err != nil {
		return nil, fmt.Errorf("compositing checkout: %w", err)
	}
	return t.Image, nil
}

// Close releases the published texture.
func (s *Session) Close() {
	if s.handle != nil {
		s.handle.Release()
		s.handle = nil
	}
}

func (s *Session) stale() bool {
	if !s.rendered || s.renderedRev != s.state.Revision {
		return true
	}
	return s.cfg.ShowSelection && s.renderedSel != s.state.Selection
}

func (s *Session) base() (image.Image, error) {
	img, err := s.cfg.Fill.Fill(colorfill.MustHexOrWhite(s.state.BaseColor))
	if err != nil {
		return nil, fmt.Errorf("filling base: %w", err)
	}
	if img == nil {
		return nil, nil
	}
	return img, nil
}

func (s *Session) publish() error {
	if s.cfg.Sink == nil {
		return nil
	}
	if s.handle != nil {
		s.handle.Release()
		s.handle = nil
	}
	h, err := s.cfg.Sink.Publish(s.target.Image)
	if err != nil {
		return fmt.Errorf("publishing texture: %w", err)
	}
	s.handle = h
	return nil
}

func (s *Session) requestImages(ctx context.Context) {
	for _, o := range s.state.Overlays.Items() {
		if o.Kind != overlay.KindImage {
			continue
		}
		if errors.Is(s.cfg.Assets.Err(o.Source), assets.ErrNotLoaded) {
			s.cfg.Assets.Load(ctx, o.Source)
		}
	}
}
