package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/merchkit/internal/editor"
	"github.com/Faultbox/merchkit/internal/overlay"
)

// Command is a keyboard shortcut action.
type Command int

const (
	CommandNone Command = iota
	CommandQuit
	CommandDelete
	CommandDeselect
	CommandAddText
	CommandClear
	CommandRotateLeft
	CommandRotateRight
	CommandScaleUp
	CommandScaleDown
	CommandFontUp
	CommandFontDown
	CommandNextFont
	CommandNextColor
	CommandNextBaseColor
	CommandEditText
	CommandSave
	CommandScreenshot
	CommandTogglePreview
)

// Edit steps for keyboard adjustments.
const (
	RotateStep   = 15.0
	ScaleStep    = 1.1
	FontSizeStep = 4
)

// Shortcut maps a key press to a command.
func Shortcut(key sdl.Keycode, mod sdl.Keymod) Command {
	ctrl := mod&(sdl.KMOD_CTRL|sdl.KMOD_GUI) != 0
	shift := mod&sdl.KMOD_SHIFT != 0

	if ctrl {
		switch key {
		case sdl.K_s:
			return CommandSave
		case sdl.K_q:
			return CommandQuit
		case sdl.K_BACKSPACE, sdl.K_DELETE:
			return CommandClear
		}
		return CommandNone
	}

	switch key {
	case sdl.K_ESCAPE:
		return CommandDeselect
	case sdl.K_DELETE, sdl.K_BACKSPACE:
		return CommandDelete
	case sdl.K_t:
		return CommandAddText
	case sdl.K_q:
		return CommandRotateLeft
	case sdl.K_e:
		return CommandRotateRight
	case sdl.K_EQUALS, sdl.K_KP_PLUS:
		if shift {
			return CommandFontUp
		}
		return CommandScaleUp
	case sdl.K_MINUS, sdl.K_KP_MINUS:
		if shift {
			return CommandFontDown
		}
		return CommandScaleDown
	case sdl.K_f:
		return CommandNextFont
	case sdl.K_c:
		if shift {
			return CommandNextBaseColor
		}
		return CommandNextColor
	case sdl.K_RETURN:
		return CommandEditText
	case sdl.K_F12:
		return CommandScreenshot
	case sdl.K_TAB:
		return CommandTogglePreview
	}
	return CommandNone
}

// Choices holds the cyclable values for font and color commands.
type Choices struct {
	Fonts   []string
	Palette []string
}

// EditorEvent turns a command into an editor event against the current
// state. Commands that are not edits, or that need a selection when there
// is none, report false.
func EditorEvent(cmd Command, st editor.State, ch Choices) (editor.Event, bool) {
	switch cmd {
	case CommandDelete:
		return editor.Delete{}, true
	case CommandDeselect:
		return editor.Select{Index: -1}, true
	case CommandAddText:
		return editor.AddText{}, true
	case CommandClear:
		return editor.Clear{}, true
	case CommandNextBaseColor:
		if len(ch.Palette) == 0 {
			return nil, false
		}
		return editor.SetBaseColor{Color: next(ch.Palette, st.BaseColor)}, true
	}

	o, ok := st.Selected()
	if !ok {
		return nil, false
	}
	switch cmd {
	case CommandRotateLeft:
		return editor.SetField{Field: overlay.FieldRotation, Value: o.Rotation - RotateStep}, true
	case CommandRotateRight:
		return editor.SetField{Field: overlay.FieldRotation, Value: o.Rotation + RotateStep}, true
	case CommandScaleUp:
		return editor.SetField{Field: overlay.FieldScale, Value: o.Scale * ScaleStep}, true
	case CommandScaleDown:
		return editor.SetField{Field: overlay.FieldScale, Value: o.Scale / ScaleStep}, true
	}

	if o.Kind != overlay.KindText {
		return nil, false
	}
	switch cmd {
	case CommandFontUp:
		return editor.SetField{Field: overlay.FieldFontSize, Value: o.FontSize + FontSizeStep}, true
	case CommandFontDown:
		return editor.SetField{Field: overlay.FieldFontSize, Value: max(1, o.FontSize-FontSizeStep)}, true
	case CommandNextFont:
		if len(ch.Fonts) == 0 {
			return nil, false
		}
		return editor.SetField{Field: overlay.FieldFontFamily, Value: next(ch.Fonts, o.FontFamily)}, true
	case CommandNextColor:
		if len(ch.Palette) == 0 {
			return nil, false
		}
		return editor.SetField{Field: overlay.FieldColor, Value: next(ch.Palette, o.Color)}, true
	}
	return nil, false
}

// next returns the value after cur in list, wrapping around. An unknown
// cur yields the first entry.
func next(list []string, cur string) string {
	for i, v := range list {
		if v == cur {
			return list[(i+1)%len(list)]
		}
	}
	return list[0]
}
