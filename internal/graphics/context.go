package graphics

import (
	"fmt"
	"log"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// WindowConfig describes the window and GL context to create.
type WindowConfig struct {
	Width  int
	Height int
	Title  string
	VSync  bool
	// Hidden creates an invisible window, for offscreen rendering in tests.
	Hidden bool
}

// resource is a GL object owned by a Context.
type resource interface {
	Delete() error
}

// Context owns the window, its current GL context and every GL object
// created through it. It must be used from the thread that created it.
type Context struct {
	Window *glfw.Window

	resources []resource
	closed    bool
}

// NewContext initializes GLFW, opens a window with an OpenGL 4.1 core
// context, makes it current and loads the GL function pointers.
func NewContext(cfg WindowConfig) (*Context, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize glfw: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.Resizable, glfw.False)
	if cfg.Hidden {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("failed to initialize gl: %w", err)
	}

	drainGL()

	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	fbw, fbh := window.GetFramebufferSize()
	gl.Viewport(0, 0, int32(fbw), int32(fbh))

	log.Println("OpenGL version", gl.GoStr(gl.GetString(gl.VERSION)))

	return &Context{Window: window}, nil
}

// track registers r so Release deletes it.
func (c *Context) track(r resource) {
	c.resources = append(c.resources, r)
}

// Release deletes every tracked GL object, newest first. Objects that were
// already deleted by the caller are skipped by their own Delete.
func (c *Context) Release() error {
	var first error
	for i := len(c.resources) - 1; i >= 0; i-- {
		if err := c.resources[i].Delete(); err != nil && first == nil {
			first = err
		}
	}
	c.resources = nil
	return first
}

// Close releases all GL objects, destroys the window and terminates GLFW.
func (c *Context) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true

	err := c.Release()
	c.Window.Destroy()
	glfw.Terminate()
	return err
}

// FramebufferSize returns the size of the window's framebuffer in pixels.
func (c *Context) FramebufferSize() (int, int) {
	return c.Window.GetFramebufferSize()
}
