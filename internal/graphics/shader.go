package graphics

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// CompileError carries the driver's info log for a failed compile or link.
// Stage is VERTEX, FRAGMENT or PROGRAM.
type CompileError struct {
	Stage string
	Log   string
}

func (e *CompileError) Error() string {
	if e.Stage == "PROGRAM" {
		return fmt.Sprintf("failed to link program: %s", e.Log)
	}
	return fmt.Sprintf("failed to compile %s shader: %s", strings.ToLower(e.Stage), e.Log)
}

// Shader represents an OpenGL shader program
type Shader struct {
	ID uint32

	vertexPath   string
	fragmentPath string
}

// NewShader creates a new shader program from vertex and fragment shader source files.
// Both files are read before any GL object is created.
func NewShader(ctx *Context, vertexPath, fragmentPath string) (*Shader, error) {
	vertexSource, fragmentSource, err := readSources(vertexPath, fragmentPath)
	if err != nil {
		return nil, err
	}

	program, err := compileProgram(vertexSource, fragmentSource)
	if err != nil {
		return nil, err
	}

	s := &Shader{ID: program, vertexPath: vertexPath, fragmentPath: fragmentPath}
	ctx.track(s)
	return s, nil
}

// NewShaderFromSource creates a shader program from in-memory sources.
func NewShaderFromSource(ctx *Context, vertexSource, fragmentSource string) (*Shader, error) {
	program, err := compileProgram(vertexSource, fragmentSource)
	if err != nil {
		return nil, err
	}

	s := &Shader{ID: program}
	ctx.track(s)
	return s, nil
}

func readSources(vertexPath, fragmentPath string) (string, string, error) {
	vertexSource, err := os.ReadFile(vertexPath)
	if err != nil {
		return "", "", fmt.Errorf("could not read vertex shader file: %w", err)
	}

	fragmentSource, err := os.ReadFile(fragmentPath)
	if err != nil {
		return "", "", fmt.Errorf("could not read fragment shader file: %w", err)
	}
	return string(vertexSource), string(fragmentSource), nil
}

// Activate makes this program current for subsequent draw calls
func (s *Shader) Activate() {
	gl.UseProgram(s.ID)
}

// Delete releases the program. Calling it again is a no-op.
func (s *Shader) Delete() error {
	if s.ID == 0 {
		return nil
	}
	gl.DeleteProgram(s.ID)
	s.ID = 0
	return nil
}

// Reload rebuilds the program from its source files. The current program
// is kept when reading, compiling or linking fails, or when the new program
// lacks any of the required uniforms.
func (s *Shader) Reload(required ...string) error {
	if s.vertexPath == "" {
		return fmt.Errorf("shader was not loaded from files")
	}

	vertexSource, fragmentSource, err := readSources(s.vertexPath, s.fragmentPath)
	if err != nil {
		return err
	}
	program, err := compileProgram(vertexSource, fragmentSource)
	if err != nil {
		return err
	}
	for _, name := range required {
		if gl.GetUniformLocation(program, gl.Str(name+"\x00")) < 0 {
			gl.DeleteProgram(program)
			return fmt.Errorf("reloaded program has no uniform %q", name)
		}
	}

	if s.ID != 0 {
		gl.DeleteProgram(s.ID)
	}
	s.ID = program
	return nil
}

// UniformLocation returns the location of a uniform, or -1 when the program
// has no active uniform with that name.
func (s *Shader) UniformLocation(name string) int32 {
	return gl.GetUniformLocation(s.ID, gl.Str(name+"\x00"))
}

// SetInt sets an integer uniform
func (s *Shader) SetInt(name string, value int32) {
	gl.Uniform1i(s.UniformLocation(name), value)
}

// SetFloat sets a float uniform
func (s *Shader) SetFloat(name string, value float32) {
	gl.Uniform1f(s.UniformLocation(name), value)
}

// SetVec4 sets a vec4 uniform
func (s *Shader) SetVec4(name string, v mgl32.Vec4) {
	gl.Uniform4f(s.UniformLocation(name), v[0], v[1], v[2], v[3])
}

// SetMatrix4 sets a 4x4 matrix uniform
func (s *Shader) SetMatrix4(name string, m mgl32.Mat4) {
	gl.UniformMatrix4fv(s.UniformLocation(name), 1, false, &m[0])
}

func compileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertexShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER, "VERTEX")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, "FRAGMENT")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragmentShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		infoLog := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(infoLog))
		gl.DeleteProgram(program)

		return 0, reportCompileError("PROGRAM", infoLog)
	}
	return program, nil
}

func compileShader(source string, shaderType uint32, stage string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		infoLog := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(infoLog))
		gl.DeleteShader(shader)

		return 0, reportCompileError(stage, infoLog)
	}
	return shader, nil
}

func reportCompileError(stage, infoLog string) *CompileError {
	infoLog = strings.TrimRight(infoLog, "\x00\n")
	log.Printf("shader %s error:\n%s", strings.ToLower(stage), infoLog)
	return &CompileError{Stage: stage, Log: infoLog}
}
