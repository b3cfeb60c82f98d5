package model

import (
	"fmt"
	"log"

	"mini-gl/internal/graphics"
	renderer "mini-gl/internal/graphics/renderer"
	"mini-gl/internal/mesh"
	"mini-gl/internal/profiling"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Options selects the shader, texture and transform for a Model.
type Options struct {
	VertexShader   string
	FragmentShader string
	// Texture is optional. When set, Sampler names the sampler2D uniform
	// that reads texture unit 0.
	Texture string
	Sampler string
	// Transform uploads model, view and proj uniforms every frame.
	Transform bool
	// RotationSpeed spins the model around Y, in degrees per second.
	RotationSpeed float32
}

// Model draws one mesh with one shader and at most one texture.
type Model struct {
	data mesh.Data
	opts Options

	shader  *graphics.Shader
	texture *graphics.Texture
	vao     *graphics.VAO
	vbo     *graphics.VBO
	ebo     *graphics.EBO

	rotation float32
}

// NewModel creates a new model renderable
func NewModel(data mesh.Data, opts Options) *Model {
	if opts.Sampler == "" {
		opts.Sampler = "tex0"
	}
	return &Model{data: data, opts: opts}
}

// Init compiles the shader and uploads vertex, index and texture data.
func (m *Model) Init(ctx *graphics.Context) error {
	if err := m.data.Validate(); err != nil {
		return err
	}

	var err error
	m.shader, err = graphics.NewShader(ctx, m.opts.VertexShader, m.opts.FragmentShader)
	if err != nil {
		return err
	}

	m.vao = graphics.NewVAO(ctx)
	m.vao.Bind()
	m.vbo = graphics.NewVBO(ctx, m.data.Vertices)
	if m.data.Indexed() {
		m.ebo = graphics.NewEBO(ctx, m.data.Indices)
	}
	stride := m.data.StrideBytes()
	for _, a := range m.data.Attribs {
		m.vao.LinkAttrib(m.vbo, a.Location, a.Components, gl.FLOAT, stride, uintptr(a.Offset*4))
	}
	m.vao.Unbind()
	m.vbo.Unbind()
	if m.ebo != nil {
		// after the VAO so the VAO keeps its element binding
		m.ebo.Unbind()
	}

	if m.opts.Texture != "" {
		m.texture, err = graphics.NewTexture(ctx, m.opts.Texture, graphics.TextureOptions{Unit: 0})
		if err != nil {
			return err
		}
		if err := m.texture.TexUnit(m.shader, m.opts.Sampler, 0); err != nil {
			return err
		}
	}
	return nil
}

// Render draws the mesh once.
func (m *Model) Render(rc renderer.RenderContext) error {
	defer profiling.Track("renderer.model." + m.data.Name)()

	m.shader.Activate()

	if m.opts.Transform {
		m.rotation += m.opts.RotationSpeed * float32(rc.DT)
		model := mgl32.HomogRotate3DY(mgl32.DegToRad(m.rotation))
		m.shader.SetMatrix4("model", model)
		m.shader.SetMatrix4("view", rc.View)
		m.shader.SetMatrix4("proj", rc.Proj)
	}

	if m.texture != nil {
		if err := m.texture.Bind(); err != nil {
			return fmt.Errorf("model %s: %w", m.data.Name, err)
		}
	}

	m.vao.Bind()
	if m.ebo != nil {
		gl.DrawElements(gl.TRIANGLES, int32(m.ebo.Count), gl.UNSIGNED_INT, gl.PtrOffset(0))
	} else {
		gl.DrawArrays(gl.TRIANGLES, 0, int32(m.data.VertexCount()))
	}
	m.vao.Unbind()
	return nil
}

// ReloadShader rebuilds the shader from its files and rebinds the sampler.
// A new program without the sampler is rejected and the old one kept.
func (m *Model) ReloadShader() error {
	if m.texture == nil {
		return m.shader.Reload()
	}
	if err := m.shader.Reload(m.opts.Sampler); err != nil {
		return err
	}
	if err := m.texture.TexUnit(m.shader, m.opts.Sampler, 0); err != nil {
		return fmt.Errorf("reloaded program in use, sampler not set: %w", err)
	}
	return nil
}

// ShaderFiles returns the vertex and fragment shader paths.
func (m *Model) ShaderFiles() []string {
	return []string{m.opts.VertexShader, m.opts.FragmentShader}
}

// Dispose deletes the GL objects in reverse creation order
func (m *Model) Dispose() {
	var deleters []interface{ Delete() error }
	if m.texture != nil {
		deleters = append(deleters, m.texture)
	}
	if m.ebo != nil {
		deleters = append(deleters, m.ebo)
	}
	if m.vbo != nil {
		deleters = append(deleters, m.vbo)
	}
	if m.vao != nil {
		deleters = append(deleters, m.vao)
	}
	if m.shader != nil {
		deleters = append(deleters, m.shader)
	}
	for _, d := range deleters {
		if err := d.Delete(); err != nil {
			log.Printf("model %s: dispose: %v", m.data.Name, err)
		}
	}
}

// SetViewport is a no-op; the projection comes from the renderer's camera.
func (m *Model) SetViewport(width, height int) {}
