package renderer

import (
	"fmt"

	"mini-gl/internal/graphics"
	"mini-gl/internal/profiling"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Settings holds the fixed pipeline state applied by the renderer.
type Settings struct {
	ClearColor mgl32.Vec4
	DepthTest  bool
	FOV        float32
}

// Renderer orchestrates rendering via renderable features
type Renderer struct {
	renderables []Renderable
	camera      *graphics.Camera
	clearMask   uint32
	clearColor  mgl32.Vec4
}

// NewRenderer configures global GL state and initializes every renderable
// in order. Renderables already initialized are disposed if a later one fails.
func NewRenderer(ctx *graphics.Context, s Settings, rs ...Renderable) (*Renderer, error) {
	width, height := ctx.FramebufferSize()

	camera := graphics.NewCamera(width, height)
	if s.FOV > 0 {
		camera.FOV = s.FOV
	}

	r := &Renderer{
		renderables: rs,
		camera:      camera,
		clearMask:   gl.COLOR_BUFFER_BIT,
		clearColor:  s.ClearColor,
	}

	if s.DepthTest {
		gl.Enable(gl.DEPTH_TEST)
		gl.DepthFunc(gl.LESS)
		r.clearMask |= gl.DEPTH_BUFFER_BIT
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}

	for i, renderable := range rs {
		if err := renderable.Init(ctx); err != nil {
			for j := i - 1; j >= 0; j-- {
				rs[j].Dispose()
			}
			return nil, fmt.Errorf("renderable %d: %w", i, err)
		}
		renderable.SetViewport(width, height)
	}

	return r, nil
}

// Render clears the framebuffer and draws every renderable once.
func (r *Renderer) Render(dt float64) error {
	defer profiling.Track("renderer.Render")()

	c := r.clearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Clear(r.clearMask)

	rc := RenderContext{
		Camera: r.camera,
		DT:     dt,
		View:   r.camera.GetViewMatrix(),
		Proj:   r.camera.GetProjectionMatrix(),
	}

	for _, renderable := range r.renderables {
		if err := renderable.Render(rc); err != nil {
			return err
		}
	}
	return nil
}

// Dispose cleans up all renderables in reverse order
func (r *Renderer) Dispose() {
	for i := len(r.renderables) - 1; i >= 0; i-- {
		r.renderables[i].Dispose()
	}
}

// UpdateViewport resizes the GL viewport and informs the camera and renderables.
func (r *Renderer) UpdateViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	gl.Viewport(0, 0, int32(width), int32(height))
	r.camera.SetViewport(width, height)
	for _, renderable := range r.renderables {
		renderable.SetViewport(width, height)
	}
}
