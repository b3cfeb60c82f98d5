package graphics

import (
	"fmt"
	"log"

	"mini-gl/internal/imaging"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// TextureOptions selects where and how an image is uploaded.
type TextureOptions struct {
	// Target is the texture target, gl.TEXTURE_2D when zero.
	Target uint32
	// Unit is the zero-based texture unit the texture is created on.
	Unit uint32
	// PixelType is the type of the uploaded pixel data. Decoded images are
	// one byte per channel, so only gl.UNSIGNED_BYTE (the zero default) is
	// accepted.
	PixelType uint32
}

// Texture is a GL texture object created from an image file.
type Texture struct {
	ID     uint32
	Target uint32
	Unit   uint32

	Width          int
	Height         int
	Channels       int
	InternalFormat int32
}

// uploadFormat maps a decoded channel count to the internal and pixel
// formats used for the upload.
func uploadFormat(channels int) (int32, uint32, error) {
	switch channels {
	case 3:
		return gl.RGB8, gl.RGB, nil
	case 4:
		return gl.RGBA8, gl.RGBA, nil
	default:
		return 0, 0, fmt.Errorf("unsupported channel count %d", channels)
	}
}

// NewTexture decodes the image at path and uploads it with nearest filtering,
// repeat wrapping and a full mipmap chain. The upload format follows the
// image's channel count. Every GL call is checked; the first raised error
// aborts construction and deletes the partially built texture.
func NewTexture(ctx *Context, path string, opts TextureOptions) (*Texture, error) {
	if opts.Target == 0 {
		opts.Target = gl.TEXTURE_2D
	}
	if opts.PixelType == 0 {
		opts.PixelType = gl.UNSIGNED_BYTE
	}
	if opts.PixelType != gl.UNSIGNED_BYTE {
		return nil, fmt.Errorf("texture %s: unsupported pixel type 0x%X, decoded pixels are unsigned bytes", path, opts.PixelType)
	}

	px, err := imaging.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load texture: %w", err)
	}
	if px.Width <= 0 || px.Height <= 0 {
		return nil, fmt.Errorf("texture %s has invalid dimensions %dx%d", path, px.Width, px.Height)
	}
	internalFormat, format, err := uploadFormat(px.Channels)
	if err != nil {
		return nil, fmt.Errorf("texture %s: %w", path, err)
	}

	var maxUnits int32
	gl.GetIntegerv(gl.MAX_COMBINED_TEXTURE_IMAGE_UNITS, &maxUnits)
	if opts.Unit >= uint32(maxUnits) {
		return nil, fmt.Errorf("texture unit %d out of range (max %d)", opts.Unit, maxUnits)
	}

	t := &Texture{
		Target:         opts.Target,
		Unit:           opts.Unit,
		Width:          px.Width,
		Height:         px.Height,
		Channels:       px.Channels,
		InternalFormat: internalFormat,
	}
	target := opts.Target

	// errors left by earlier unchecked calls must not be blamed on this upload
	drainGL()
	failed := false
	defer func() {
		gl.BindTexture(target, 0)
		gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
		if failed {
			// restoring an unusable target raises the same error again
			drainGL()
		}
	}()

	steps := []struct {
		op string
		fn func()
	}{
		{"glGenTextures", func() { gl.GenTextures(1, &t.ID) }},
		{"glActiveTexture", func() { gl.ActiveTexture(gl.TEXTURE0 + opts.Unit) }},
		{"glBindTexture", func() { gl.BindTexture(target, t.ID) }},
		{"glTexParameteri(MIN_FILTER)", func() { gl.TexParameteri(target, gl.TEXTURE_MIN_FILTER, gl.NEAREST_MIPMAP_LINEAR) }},
		{"glTexParameteri(MAG_FILTER)", func() { gl.TexParameteri(target, gl.TEXTURE_MAG_FILTER, gl.NEAREST) }},
		{"glTexParameteri(WRAP_S)", func() { gl.TexParameteri(target, gl.TEXTURE_WRAP_S, gl.REPEAT) }},
		{"glTexParameteri(WRAP_T)", func() { gl.TexParameteri(target, gl.TEXTURE_WRAP_T, gl.REPEAT) }},
		// rows are tightly packed, RGB rows need not be 4-byte aligned
		{"glPixelStorei", func() { gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1) }},
		{"glTexImage2D", func() {
			gl.TexImage2D(target, 0, internalFormat, int32(px.Width), int32(px.Height), 0, format, opts.PixelType, gl.Ptr(px.Data))
		}},
		{"glGenerateMipmap", func() { gl.GenerateMipmap(target) }},
	}
	for _, step := range steps {
		step.fn()
		if err := checkGL(step.op); err != nil {
			failed = true
			t.Delete()
			return nil, fmt.Errorf("texture %s: %w", path, err)
		}
	}

	log.Printf("Loaded texture %s (%dx%d, %d channels) on unit %d", path, px.Width, px.Height, px.Channels, opts.Unit)
	ctx.track(t)
	return t, nil
}

// TexUnit points the sampler uniform of shader at the given texture unit.
// The shader is left active.
func (t *Texture) TexUnit(shader *Shader, uniform string, unit int32) error {
	loc := shader.UniformLocation(uniform)
	if loc < 0 {
		return fmt.Errorf("uniform %q not found in program %d", uniform, shader.ID)
	}
	shader.Activate()
	gl.Uniform1i(loc, unit)
	return checkGL("glUniform1i")
}

// Bind makes the texture's unit active and binds the texture to its target.
func (t *Texture) Bind() error {
	gl.ActiveTexture(gl.TEXTURE0 + t.Unit)
	gl.BindTexture(t.Target, t.ID)
	return checkGL("glBindTexture")
}

// Unbind binds zero to the texture's target on its unit.
func (t *Texture) Unbind() error {
	gl.ActiveTexture(gl.TEXTURE0 + t.Unit)
	gl.BindTexture(t.Target, 0)
	return checkGL("glBindTexture")
}

// Delete releases the texture. Calling it again is a no-op.
func (t *Texture) Delete() error {
	if t.ID == 0 {
		return nil
	}
	gl.DeleteTextures(1, &t.ID)
	t.ID = 0
	return checkGL("glDeleteTextures")
}
