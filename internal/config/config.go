package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/BurntSushi/toml"
)

// Config holds everything the render loop needs to start.
type Config struct {
	Window WindowSettings `toml:"window"`
	Render RenderSettings `toml:"render"`
	Assets AssetSettings  `toml:"assets"`
}

// WindowSettings holds window configuration
type WindowSettings struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	VSync  bool   `toml:"vsync"`
}

// RenderSettings holds render configuration
type RenderSettings struct {
	ClearColor [4]float32 `toml:"clear_color"`
	DepthTest  bool       `toml:"depth_test"`
	// Transform uploads model/view/projection uniforms every frame.
	Transform bool `toml:"transform"`
	// RotationSpeed is the model rotation in degrees per second.
	RotationSpeed float32 `toml:"rotation_speed"`
	FOV           float32 `toml:"fov"`
	// FPSLimit caps the frame rate; 0 means uncapped.
	FPSLimit int    `toml:"fps_limit"`
	Mesh     string `toml:"mesh"`
}

// AssetSettings holds the asset file paths
type AssetSettings struct {
	VertexShader   string `toml:"vertex_shader"`
	FragmentShader string `toml:"fragment_shader"`
	// Texture is optional; empty means no texture is bound.
	Texture      string `toml:"texture"`
	Sampler      string `toml:"sampler"`
	WatchShaders bool   `toml:"watch_shaders"`
}

// Default returns the textured, rotating pyramid setup.
func Default() Config {
	return Config{
		Window: WindowSettings{
			Width:  800,
			Height: 800,
			Title:  "mini-gl",
			VSync:  true,
		},
		Render: RenderSettings{
			ClearColor:    [4]float32{0.07, 0.13, 0.17, 1.0},
			DepthTest:     true,
			Transform:     true,
			RotationSpeed: 30,
			FOV:           45,
			FPSLimit:      0,
			Mesh:          "pyramid",
		},
		Assets: AssetSettings{
			VertexShader:   "assets/shaders/default.vert",
			FragmentShader: "assets/shaders/default.frag",
			Texture:        "assets/textures/checker.png",
			Sampler:        "tex0",
		},
	}
}

// Load reads a TOML file on top of the defaults. A missing file is not an
// error; the defaults are returned as is.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("could not read config file %s: %w", path, err)
	}
	cfg.Clamp()
	return cfg, nil
}

// Clamp pulls out-of-range values back to something usable.
func (c *Config) Clamp() {
	if c.Window.Width < 64 {
		c.Window.Width = 64
	}
	if c.Window.Height < 64 {
		c.Window.Height = 64
	}
	if c.Render.FPSLimit < 0 {
		c.Render.FPSLimit = 0
	}
	if c.Render.FPSLimit > 1000 {
		c.Render.FPSLimit = 1000
	}
	if c.Render.FOV < 10 {
		c.Render.FOV = 10
	}
	if c.Render.FOV > 120 {
		c.Render.FOV = 120
	}
	for i, v := range c.Render.ClearColor {
		if v < 0 {
			c.Render.ClearColor[i] = 0
		} else if v > 1 {
			c.Render.ClearColor[i] = 1
		}
	}
	if c.Assets.Sampler == "" {
		c.Assets.Sampler = "tex0"
	}
}
