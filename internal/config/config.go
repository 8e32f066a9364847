// Package config handles customizer configuration loading and management.
package config

import "fmt"

// Config holds all studio settings.
type Config struct {
	Texture TextureConfig `yaml:"texture"`
	Editor  EditorConfig  `yaml:"editor"`
	Preview PreviewConfig `yaml:"preview"`
	Camera  CameraConfig  `yaml:"camera"`
	Window  WindowConfig  `yaml:"window"`
	Logging LoggingConfig `yaml:"logging"`
}

// TextureConfig controls the composited texture.
type TextureConfig struct {
	Template   string `yaml:"template"`   // UV template image; empty means plain background
	Resolution int    `yaml:"resolution"` // Output edge length in pixels
	FlipV      bool   `yaml:"flip_v"`     // UV V axis points up while bitmap Y points down
	Background string `yaml:"background"` // Fill used when no template is configured
	BaseColor  string `yaml:"base_color"` // Initial garment color
	OutputDir  string `yaml:"output_dir"` // Exported textures and designs
}

// EditorConfig holds overlay editing defaults.
type EditorConfig struct {
	UVTolerance      float64  `yaml:"uv_tolerance"`
	MinFontSize      int      `yaml:"min_font_size"`
	MaxFontSize      int      `yaml:"max_font_size"`
	DefaultText      string   `yaml:"default_text"`
	DefaultFontSize  int      `yaml:"default_font_size"`
	DefaultTextColor string   `yaml:"default_text_color"`
	DefaultFont      string   `yaml:"default_font"`
	DefaultImageSize int      `yaml:"default_image_size"`
	KeyOutNavy       bool     `yaml:"key_out_navy"` // Strip navy backdrops from uploaded images
	Palette          []string `yaml:"palette"`
	Fonts            []string `yaml:"fonts"`
}

// PreviewConfig holds the flat preview surface settings.
type PreviewConfig struct {
	Size             int    `yaml:"size"`
	DefaultTextColor string `yaml:"default_text_color"`
	DefaultImageSize int    `yaml:"default_image_size"`
	SelectionColor   string `yaml:"selection_color"`
}

// CameraConfig holds the orbit camera framing.
type CameraConfig struct {
	FOV      float32 `yaml:"fov"` // Vertical field of view in degrees
	Near     float32 `yaml:"near"`
	Far      float32 `yaml:"far"`
	Distance float32 `yaml:"distance"` // Eye offset along +Z
	Height   float32 `yaml:"height"`   // Eye height above the orbit target
	MinPolar float32 `yaml:"min_polar"`
	MaxPolar float32 `yaml:"max_polar"`
}

// WindowConfig holds display settings for the interactive studio.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the shop's stock settings.
func Default() *Config {
	return &Config{
		Texture: TextureConfig{
			Template:   "",
			Resolution: 2048,
			FlipV:      true,
			Background: "#FFFFFF",
			BaseColor:  "#000000",
		},
		Editor: EditorConfig{
			UVTolerance:      0.08,
			MinFontSize:      24,
			MaxFontSize:      120,
			DefaultText:      "Your Text",
			DefaultFontSize:  48,
			DefaultTextColor: "#000000",
			DefaultFont:      "Arial",
			DefaultImageSize: 200,
			Palette: []string{
				"#FFFFFF", "#000000", "#323232", "#0038ff",
				"#224e22", "#FFFF00", "#e969c5", "#00ff80",
			},
			Fonts: []string{
				"Arial", "Impact", "Georgia", "Courier New", "Comic Sans MS", "Times New Roman",
			},
		},
		Preview: PreviewConfig{
			Size:             512,
			DefaultTextColor: "#FFFFFF",
			DefaultImageSize: 100,
			SelectionColor:   "#7dd3fc",
		},
		Camera: CameraConfig{
			FOV:      50,
			Near:     0.1,
			Far:      1000,
			Distance: 2.5,
			Height:   0.5,
			MinPolar: 60,
			MaxPolar: 120,
		},
		Window: WindowConfig{
			Title:      "Merch Studio",
			Width:      1280,
			Height:     800,
			Fullscreen: false,
			VSync:      true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports settings the engine cannot work with.
func (c *Config) Validate() error {
	if c.Texture.Resolution <= 0 || c.Texture.Resolution > 4096 {
		return fmt.Errorf("texture.resolution %d out of range (1..4096)", c.Texture.Resolution)
	}
	if c.Preview.Size <= 0 {
		return fmt.Errorf("preview.size must be positive, got %d", c.Preview.Size)
	}
	if c.Editor.MinFontSize <= 0 || c.Editor.MinFontSize > c.Editor.MaxFontSize {
		return fmt.Errorf("editor font size range [%d,%d] is invalid", c.Editor.MinFontSize, c.Editor.MaxFontSize)
	}
	if c.Editor.UVTolerance <= 0 || c.Editor.UVTolerance >= 0.5 {
		return fmt.Errorf("editor.uv_tolerance %v out of range (0,0.5)", c.Editor.UVTolerance)
	}
	if c.Camera.MinPolar > c.Camera.MaxPolar {
		return fmt.Errorf("camera polar range [%v,%v] is inverted", c.Camera.MinPolar, c.Camera.MaxPolar)
	}
	return nil
}
