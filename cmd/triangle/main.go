package main

import (
	"log"
	"os"
	"runtime"

	"mini-gl/internal/graphics"
	"mini-gl/internal/mesh"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	windowWidth  = 800
	windowHeight = 600
)

func init() {
	runtime.LockOSThread()
}

const vertexSrc = `#version 410 core
layout (location = 0) in vec3 aPos;
void main() {
	gl_Position = vec4(aPos.x, aPos.y, aPos.z, 1.0);
}`

const fragmentSrc = `#version 410 core
uniform vec4 color;
out vec4 FragColor;
void main() {
	FragColor = color;
}`

func main() {
	ctx, err := graphics.NewContext(graphics.WindowConfig{
		Width:  windowWidth,
		Height: windowHeight,
		Title:  "mini-gl - triangle",
		VSync:  true,
	})
	if err != nil {
		log.Printf("Failed to create GLFW window: %v", err)
		os.Exit(-1)
	}

	code := 0
	if err := run(ctx); err != nil {
		log.Println(err)
		code = 1
	}
	if err := ctx.Close(); err != nil {
		log.Printf("cleanup: %v", err)
	}
	os.Exit(code)
}

func run(ctx *graphics.Context) error {
	shader, err := graphics.NewShaderFromSource(ctx, vertexSrc, fragmentSrc)
	if err != nil {
		return err
	}

	tri := mesh.Triangle()

	vao := graphics.NewVAO(ctx)
	vao.Bind()
	vbo := graphics.NewVBO(ctx, tri.Vertices)
	vao.LinkAttrib(vbo, 0, 3, gl.FLOAT, tri.StrideBytes(), 0)
	// unbind to reduce accidental state changes
	vao.Unbind()

	gl.ClearColor(0.07, 0.13, 0.17, 1.0)
	shader.Activate()
	shader.SetVec4("color", mgl32.Vec4{0.8, 0.3, 0.02, 1.0})

	for !ctx.Window.ShouldClose() {
		gl.Clear(gl.COLOR_BUFFER_BIT)

		shader.Activate()
		vao.Bind()
		gl.DrawArrays(gl.TRIANGLES, 0, int32(tri.VertexCount()))

		ctx.Window.SwapBuffers()
		glfw.PollEvents()

		// close on Esc
		if ctx.Window.GetKey(glfw.KeyEscape) == glfw.Press {
			ctx.Window.SetShouldClose(true)
		}
	}
	return nil
}
