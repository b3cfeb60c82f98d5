package graphics

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// GLError is a non-zero value of the GL error flag observed after Op.
type GLError struct {
	Op   string
	Code uint32
}

func (e *GLError) Error() string {
	return fmt.Sprintf("%s: %s (0x%04X)", e.Op, errorName(e.Code), e.Code)
}

func errorName(code uint32) string {
	switch code {
	case gl.INVALID_ENUM:
		return "GL_INVALID_ENUM"
	case gl.INVALID_VALUE:
		return "GL_INVALID_VALUE"
	case gl.INVALID_OPERATION:
		return "GL_INVALID_OPERATION"
	case gl.INVALID_FRAMEBUFFER_OPERATION:
		return "GL_INVALID_FRAMEBUFFER_OPERATION"
	case gl.OUT_OF_MEMORY:
		return "GL_OUT_OF_MEMORY"
	default:
		return "unknown GL error"
	}
}

// checkGL reads the GL error flag once and reports it against op.
func checkGL(op string) error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		return &GLError{Op: op, Code: code}
	}
	return nil
}

// drainGL clears any pending error flags so the next checkGL only sees
// errors raised after this point.
func drainGL() {
	for i := 0; i < 16; i++ {
		if gl.GetError() == gl.NO_ERROR {
			return
		}
	}
}
