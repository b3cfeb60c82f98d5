package app

import (
	"fmt"
	"log"
	"time"

	"mini-gl/internal/config"
	"mini-gl/internal/graphics"
	"mini-gl/internal/graphics/renderables/model"
	renderer "mini-gl/internal/graphics/renderer"
	"mini-gl/internal/mesh"
	"mini-gl/internal/profiling"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/loov/hrtime"
)

// App runs the render loop for one window and one model.
type App struct {
	ctx      *graphics.Context
	cfg      config.Config
	renderer *renderer.Renderer
	model    *model.Model
	watcher  *ShaderWatcher

	fpsLimiter *FPSLimiter
	lastTime   time.Time
	frames     int
	lastFPS    time.Time
}

// New builds the model and renderer described by cfg on ctx.
func New(ctx *graphics.Context, cfg config.Config) (*App, error) {
	data, err := mesh.ByName(cfg.Render.Mesh)
	if err != nil {
		return nil, err
	}

	m := model.NewModel(data, model.Options{
		VertexShader:   cfg.Assets.VertexShader,
		FragmentShader: cfg.Assets.FragmentShader,
		Texture:        cfg.Assets.Texture,
		Sampler:        cfg.Assets.Sampler,
		Transform:      cfg.Render.Transform,
		RotationSpeed:  cfg.Render.RotationSpeed,
	})

	r, err := renderer.NewRenderer(ctx, renderer.Settings{
		ClearColor: mgl32.Vec4(cfg.Render.ClearColor),
		DepthTest:  cfg.Render.DepthTest,
		FOV:        cfg.Render.FOV,
	}, m)
	if err != nil {
		return nil, err
	}

	a := &App{
		ctx:        ctx,
		cfg:        cfg,
		renderer:   r,
		model:      m,
		fpsLimiter: NewFPSLimiter(cfg.Render.FPSLimit),
		lastTime:   time.Now(),
		lastFPS:    time.Now(),
	}

	if cfg.Assets.WatchShaders {
		a.watcher, err = NewShaderWatcher(m.ShaderFiles()...)
		if err != nil {
			r.Dispose()
			return nil, fmt.Errorf("failed to watch shaders: %w", err)
		}
	}

	ctx.Window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		r.UpdateViewport(width, height)
	})

	return a, nil
}

// Run renders frames until the window is asked to close.
func (a *App) Run() error {
	for !a.ctx.Window.ShouldClose() {
		if err := a.tick(); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) tick() error {
	profiling.ResetFrame()
	startTick := time.Now()
	dt := startTick.Sub(a.lastTime).Seconds()
	a.lastTime = startTick

	if a.watcher != nil && a.watcher.Changed() {
		if err := a.model.ReloadShader(); err != nil {
			log.Printf("Shader reload failed: %v", err)
		} else {
			log.Println("Shaders reloaded")
		}
	}

	renderStart := hrtime.Now()
	if err := a.renderer.Render(dt); err != nil {
		return err
	}
	renderDur := hrtime.Since(renderStart)

	func() { defer profiling.Track("glfw.SwapBuffers")(); a.ctx.Window.SwapBuffers() }()
	func() { defer profiling.Track("glfw.PollEvents")(); glfw.PollEvents() }()

	if a.ctx.Window.GetKey(glfw.KeyEscape) == glfw.Press {
		a.ctx.Window.SetShouldClose(true)
	}

	a.frames++
	if time.Since(a.lastFPS) >= time.Second {
		a.ctx.Window.SetTitle(fmt.Sprintf("%s | FPS: %d | Render: %v", a.cfg.Window.Title, a.frames, renderDur))
		a.frames = 0
		a.lastFPS = time.Now()
	}

	if d := time.Since(startTick); d > 16*time.Millisecond && a.cfg.Render.FPSLimit == 0 && !a.cfg.Window.VSync {
		log.Printf("Slow frame: %v. Top tasks: %s", d, profiling.TopN(3))
	}

	a.fpsLimiter.Wait()
	return nil
}

// Close stops the shader watcher and disposes the renderer's GL objects.
func (a *App) Close() {
	if a.watcher != nil {
		a.watcher.Close()
	}
	a.renderer.Dispose()
}
