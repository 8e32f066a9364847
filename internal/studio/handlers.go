package studio

import (
	"fmt"
	"path/filepath"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/merchkit/internal/design"
	"github.com/Faultbox/merchkit/internal/editor"
	"github.com/Faultbox/merchkit/internal/input"
	"github.com/Faultbox/merchkit/internal/overlay"
)

func (s *Studio) handle(ev input.Event) {
	switch ev.Type {
	case input.EventWindowResize:
		s.width, s.height = s.window.Size()
		s.picker.Resize(s.viewportWidth(), s.height)

	case input.EventKeyDown:
		s.handleKey(ev)

	case input.EventTextInput:
		if s.typing {
			s.typed += ev.Text
			s.updateTitle()
		}

	case input.EventFileDrop:
		s.dispatch(s.meshCtl, editor.AddImage{Source: ev.Text})

	case input.EventMouseDown:
		if ev.Button == sdl.BUTTON_LEFT {
			s.pointerDown(ev.MouseX, ev.MouseY)
		}

	case input.EventMouseMove:
		s.pointerMove(ev.MouseX, ev.MouseY)

	case input.EventMouseUp:
		if ev.Button == sdl.BUTTON_LEFT {
			s.pointerUp()
		}

	case input.EventMouseWheel:
		s.camera.HandleZoom(ev.Wheel)
	}
}

func (s *Studio) inPanel(x, y int) bool {
	return s.showPreview && s.panelRect().Contains(x, y)
}

// meshPoint resolves a window position in the 3D view to a surface point.
func (s *Studio) meshPoint(x, y int) editor.Point {
	hit, ok := s.picker.Pick(float32(x), float32(y))
	if !ok {
		return editor.Missed
	}
	return editor.PointAt(float64(hit.UV.X), float64(hit.UV.Y))
}

// flatPoint resolves a window position over the preview panel.
func (s *Studio) flatPoint(x, y int) editor.Point {
	lx, ly := s.panelRect().Local(x, y)
	return s.surface.Point(lx, ly)
}

func (s *Studio) pointerDown(x, y int) {
	s.lastX, s.lastY = x, y

	if s.inPanel(x, y) {
		s.flatDrag = true
		s.dispatch(s.flatCtl, editor.PointerDown{Point: s.flatPoint(x, y)})
		return
	}

	s.dispatch(s.meshCtl, editor.PointerDown{Point: s.meshPoint(x, y)})
	// Nothing grabbed: the drag orbits the camera instead.
	s.orbiting = !s.session.State().Pressed
}

func (s *Studio) pointerMove(x, y int) {
	dx, dy := x-s.lastX, y-s.lastY
	s.lastX, s.lastY = x, y

	switch {
	case s.orbiting:
		s.camera.HandleDrag(float32(dx), float32(dy))
	case s.flatDrag:
		lx, ly := s.panelRect().Local(x, y)
		s.dispatch(s.flatCtl, editor.PointerMove{Point: s.surface.DragPoint(lx, ly)})
	case s.session.State().Pressed:
		s.dispatch(s.meshCtl, editor.PointerMove{Point: s.meshPoint(x, y)})
	default:
		s.updateHover(x, y)
	}
}

func (s *Studio) pointerUp() {
	ctl := s.meshCtl
	if s.flatDrag {
		ctl = s.flatCtl
	}
	s.dispatch(ctl, editor.PointerUp{})
	s.orbiting = false
	s.flatDrag = false
}

func (s *Studio) updateHover(x, y int) {
	st := s.session.State()
	if s.inPanel(x, y) {
		s.hover = s.flatCtl.HitTest(st, s.flatPoint(x, y))
	} else {
		s.hover = s.meshCtl.HitTest(st, s.meshPoint(x, y))
	}
	s.window.SetCursor(systemCursor(editor.CursorFor(st, s.hover)))
}

func systemCursor(c editor.Cursor) sdl.SystemCursor {
	switch c {
	case editor.CursorPointer:
		return sdl.SYSTEM_CURSOR_HAND
	case editor.CursorMove, editor.CursorGrabbing:
		return sdl.SYSTEM_CURSOR_SIZEALL
	default:
		return sdl.SYSTEM_CURSOR_ARROW
	}
}

func (s *Studio) handleKey(ev input.Event) {
	if s.typing {
		s.handleTypingKey(ev.Key)
		return
	}

	cmd := input.Shortcut(ev.Key, ev.Mod)
	switch cmd {
	case input.CommandNone:
		return
	case input.CommandQuit:
		s.running = false
	case input.CommandEditText:
		s.typing = true
		s.typed = ""
		input.StartText()
		s.updateTitle()
	case input.CommandSave:
		if path, err := s.saveDesign(); err != nil {
			s.log.Error("saving design failed", zap.Error(err))
		} else {
			s.log.Info("design saved", zap.String("path", path))
		}
	case input.CommandScreenshot:
		if path, err := s.exportTexture(); err != nil {
			s.log.Error("texture export failed", zap.Error(err))
		} else {
			s.log.Info("texture exported", zap.String("path", path))
		}
	case input.CommandTogglePreview:
		s.showPreview = !s.showPreview
		s.picker.Resize(s.viewportWidth(), s.height)
	default:
		if edit, ok := input.EditorEvent(cmd, s.session.State(), s.choices); ok {
			s.dispatch(s.meshCtl, edit)
		}
	}
}

// handleTypingKey finishes or edits typed text. Enter applies it to the
// selected text overlay, or queues it for placement on the flat canvas.
func (s *Studio) handleTypingKey(key sdl.Keycode) {
	switch key {
	case sdl.K_RETURN, sdl.K_KP_ENTER:
		s.typing = false
		input.StopText()
		if o, ok := s.session.State().Selected(); ok && o.Kind == overlay.KindText {
			s.dispatch(s.meshCtl, editor.SetField{Field: overlay.FieldContent, Value: s.typed})
		} else {
			s.dispatch(s.flatCtl, editor.QueueText{Content: s.typed})
		}
	case sdl.K_ESCAPE:
		s.typing = false
		input.StopText()
	case sdl.K_BACKSPACE:
		if r := []rune(s.typed); len(r) > 0 {
			s.typed = string(r[:len(r)-1])
		}
	}
	s.updateTitle()
}

func (s *Studio) updateTitle() {
	title := s.cfg.Window.Title
	if s.typing {
		title = fmt.Sprintf("%s - typing: %s_", title, s.typed)
	}
	s.window.SetTitle(title)
}

func (s *Studio) exportTexture() (string, error) {
	img, err := s.session.Checkout()
	if err != nil {
		return "", err
	}
	return s.exporter.Export(img)
}

func (s *Studio) saveDesign() (string, error) {
	img, err := s.session.Checkout()
	if err != nil {
		return "", err
	}
	st := s.session.State()
	d, err := design.New("studio", design.GarmentShirt, st.BaseColor, st.Overlays).
		WithThumbnail(img, design.DefaultThumbnailSize)
	if err != nil {
		return "", err
	}

	name := s.exporter.Filename()
	path := name[:len(name)-len(filepath.Ext(name))] + ".json"
	if err := design.Save(path, d); err != nil {
		return "", err
	}
	return path, nil
}
