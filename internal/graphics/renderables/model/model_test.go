package model

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mini-gl/internal/graphics"
	"mini-gl/internal/graphics/gltest"
	renderer "mini-gl/internal/graphics/renderer"
	"mini-gl/internal/mesh"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

func TestMain(m *testing.M) { gltest.Main(m) }

const texturedVert = `#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aColor;
layout (location = 2) in vec2 aTex;
uniform mat4 model;
uniform mat4 view;
uniform mat4 proj;
out vec3 color;
out vec2 texCoord;
void main() {
	gl_Position = proj * view * model * vec4(aPos, 1.0);
	color = aColor;
	texCoord = aTex;
}`

const texturedFrag = `#version 410 core
in vec3 color;
in vec2 texCoord;
uniform sampler2D tex0;
out vec4 FragColor;
void main() {
	FragColor = texture(tex0, texCoord) * vec4(color, 1.0);
}`

const flatVert = `#version 410 core
layout (location = 0) in vec3 aPos;
void main() {
	gl_Position = vec4(aPos, 1.0);
}`

const flatFrag = `#version 410 core
out vec4 FragColor;
void main() {
	FragColor = vec4(1.0, 1.0, 1.0, 1.0);
}`

func writeAssets(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	f, err := os.Create(filepath.Join(dir, "white.png"))
	if err != nil {
		t.Fatalf("create png: %v", err)
	}
	defer f.Close()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return dir
}

func readCenter(ctx *graphics.Context) [4]uint8 {
	w, h := ctx.FramebufferSize()
	var px [4]uint8
	gl.ReadBuffer(gl.BACK)
	gl.ReadPixels(int32(w/2), int32(h/2), 1, 1, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&px[0]))
	return px
}

func TestTexturedQuadRendersWithTransform(t *testing.T) {
	dir := writeAssets(t, map[string]string{"tex.vert": texturedVert, "tex.frag": texturedFrag})

	gltest.Do(t, func(ctx *graphics.Context) error {
		m := NewModel(mesh.Quad(), Options{
			VertexShader:   filepath.Join(dir, "tex.vert"),
			FragmentShader: filepath.Join(dir, "tex.frag"),
			Texture:        filepath.Join(dir, "white.png"),
			Transform:      true,
		})
		r, err := renderer.NewRenderer(ctx, renderer.Settings{ClearColor: mgl32.Vec4{0, 0, 0, 1}, DepthTest: true}, m)
		if err != nil {
			return err
		}
		defer r.Dispose()

		if err := r.Render(0); err != nil {
			return err
		}
		gl.Finish()
		if px := readCenter(ctx); px[0] == 0 && px[1] == 0 && px[2] == 0 {
			return fmt.Errorf("center pixel is still the clear color: %v", px)
		}
		return nil
	})
}

func TestUnindexedTriangleWithoutTexture(t *testing.T) {
	dir := writeAssets(t, map[string]string{"flat.vert": flatVert, "flat.frag": flatFrag})

	gltest.Do(t, func(ctx *graphics.Context) error {
		m := NewModel(mesh.Triangle(), Options{
			VertexShader:   filepath.Join(dir, "flat.vert"),
			FragmentShader: filepath.Join(dir, "flat.frag"),
		})
		r, err := renderer.NewRenderer(ctx, renderer.Settings{ClearColor: mgl32.Vec4{0, 0, 0, 1}}, m)
		if err != nil {
			return err
		}
		defer r.Dispose()

		if err := r.Render(0.016); err != nil {
			return err
		}
		gl.Finish()
		if px := readCenter(ctx); px[0] != 255 || px[1] != 255 || px[2] != 255 {
			return fmt.Errorf("center pixel: got %v, want white", px)
		}
		return nil
	})
}

func TestInitFailsOnMissingSampler(t *testing.T) {
	dir := writeAssets(t, map[string]string{"flat.vert": flatVert, "flat.frag": flatFrag})

	gltest.Do(t, func(ctx *graphics.Context) error {
		m := NewModel(mesh.Triangle(), Options{
			VertexShader:   filepath.Join(dir, "flat.vert"),
			FragmentShader: filepath.Join(dir, "flat.frag"),
			Texture:        filepath.Join(dir, "white.png"),
		})
		if _, err := renderer.NewRenderer(ctx, renderer.Settings{}, m); err == nil {
			return fmt.Errorf("expected error: flat shader has no tex0 sampler")
		}
		return nil
	})
}

func TestInitRejectsInvalidMesh(t *testing.T) {
	gltest.Do(t, func(ctx *graphics.Context) error {
		m := NewModel(mesh.Data{Name: "broken", Vertices: []float32{0, 0}, FloatsPerVertex: 3}, Options{})
		if err := m.Init(ctx); err == nil {
			return fmt.Errorf("expected mesh validation error")
		}
		return nil
	})
}

func TestReloadShaderKeepsProgramWithoutSampler(t *testing.T) {
	dir := writeAssets(t, map[string]string{"tex.vert": texturedVert, "tex.frag": texturedFrag})
	frag := filepath.Join(dir, "tex.frag")

	gltest.Do(t, func(ctx *graphics.Context) error {
		m := NewModel(mesh.Quad(), Options{
			VertexShader:   filepath.Join(dir, "tex.vert"),
			FragmentShader: frag,
			Texture:        filepath.Join(dir, "white.png"),
		})
		if err := m.Init(ctx); err != nil {
			return err
		}
		defer m.Dispose()
		before := m.shader.ID

		if err := os.WriteFile(frag, []byte(flatFrag), 0o644); err != nil {
			return err
		}
		if err := m.ReloadShader(); err == nil {
			return fmt.Errorf("expected reload error: new program has no tex0 sampler")
		}
		if m.shader.ID != before || !gl.IsProgram(before) {
			return fmt.Errorf("program %d replaced by %d", before, m.shader.ID)
		}

		if err := os.WriteFile(frag, []byte(texturedFrag), 0o644); err != nil {
			return err
		}
		if err := m.ReloadShader(); err != nil {
			return err
		}
		var unit int32 = -1
		gl.GetUniformiv(m.shader.ID, m.shader.UniformLocation("tex0"), &unit)
		gl.UseProgram(0)
		if unit != 0 {
			return fmt.Errorf("sampler unit after reload: got %d, want 0", unit)
		}
		return nil
	})
}

func TestDisposeLogsDeleteErrors(t *testing.T) {
	dir := writeAssets(t, map[string]string{"tex.vert": texturedVert, "tex.frag": texturedFrag})

	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	gltest.Do(t, func(ctx *graphics.Context) error {
		m := NewModel(mesh.Quad(), Options{
			VertexShader:   filepath.Join(dir, "tex.vert"),
			FragmentShader: filepath.Join(dir, "tex.frag"),
			Texture:        filepath.Join(dir, "white.png"),
		})
		if err := m.Init(ctx); err != nil {
			return err
		}

		// invalid target leaves GL_INVALID_ENUM pending for the texture's delete check
		gl.BindBuffer(0xFFFF, 0)
		m.Dispose()

		if !strings.Contains(buf.String(), "model quad: dispose: glDeleteTextures") {
			return fmt.Errorf("delete error not logged, log was:\n%s", buf.String())
		}
		return nil
	})
}
