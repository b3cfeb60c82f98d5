package app

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"mini-gl/internal/config"
	"mini-gl/internal/graphics"
	"mini-gl/internal/graphics/gltest"
)

func TestMain(m *testing.M) { gltest.Main(m) }

func triangleConfig(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	vert := filepath.Join(dir, "triangle.vert")
	frag := filepath.Join(dir, "triangle.frag")
	if err := os.WriteFile(vert, []byte(`#version 410 core
layout (location = 0) in vec3 aPos;
void main() { gl_Position = vec4(aPos, 1.0); }`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(frag, []byte(`#version 410 core
out vec4 FragColor;
void main() { FragColor = vec4(0.8, 0.3, 0.02, 1.0); }`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.Render.Mesh = "triangle"
	cfg.Render.Transform = false
	cfg.Render.DepthTest = false
	cfg.Assets.VertexShader = vert
	cfg.Assets.FragmentShader = frag
	cfg.Assets.Texture = ""
	return cfg
}

func TestAppRendersUntilClosed(t *testing.T) {
	cfg := triangleConfig(t)
	cfg.Assets.WatchShaders = true

	gltest.Do(t, func(ctx *graphics.Context) error {
		a, err := New(ctx, cfg)
		if err != nil {
			return err
		}
		defer a.Close()
		defer ctx.Window.SetShouldClose(false)

		for i := 0; i < 3; i++ {
			if err := a.tick(); err != nil {
				return fmt.Errorf("frame %d: %w", i, err)
			}
		}

		ctx.Window.SetShouldClose(true)
		return a.Run()
	})
}

func TestAppRejectsUnknownMesh(t *testing.T) {
	cfg := triangleConfig(t)
	cfg.Render.Mesh = "teapot"

	gltest.Do(t, func(ctx *graphics.Context) error {
		if _, err := New(ctx, cfg); err == nil {
			return fmt.Errorf("expected error for unknown mesh")
		}
		return nil
	})
}

func TestAppFailsOnMissingShader(t *testing.T) {
	cfg := triangleConfig(t)
	cfg.Assets.FragmentShader = filepath.Join(t.TempDir(), "missing.frag")

	gltest.Do(t, func(ctx *graphics.Context) error {
		if _, err := New(ctx, cfg); err == nil {
			return fmt.Errorf("expected error for missing fragment shader")
		}
		return nil
	})
}
