package renderer

import (
	"mini-gl/internal/graphics"

	"github.com/go-gl/mathgl/mgl32"
)

// RenderContext provides shared context for all renderables
type RenderContext struct {
	Camera *graphics.Camera
	DT     float64
	View   mgl32.Mat4
	Proj   mgl32.Mat4
}

// Renderable interface defines the lifecycle for renderable features
type Renderable interface {
	Init(ctx *graphics.Context) error
	Render(rc RenderContext) error
	Dispose()
	SetViewport(width, height int)
}
