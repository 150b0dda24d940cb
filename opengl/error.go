package opengl

import "fmt"

// maxDrain bounds the GetError loop. A lost context can report errors
// forever on some drivers.
const maxDrain = 32

// Error is a GL error flag raised while performing Op.
type Error struct {
	Op   string
	Code uint32
}

func (e *Error) Error() string {
	return fmt.Sprintf("gl: %s: %s", e.Op, CodeString(e.Code))
}

// CodeString names a GetError code.
func CodeString(code uint32) string {
	switch code {
	case NoError:
		return "NO_ERROR"
	case InvalidEnum:
		return "INVALID_ENUM"
	case InvalidValue:
		return "INVALID_VALUE"
	case InvalidOperation:
		return "INVALID_OPERATION"
	case StackOverflow:
		return "STACK_OVERFLOW"
	case StackUnderflow:
		return "STACK_UNDERFLOW"
	case OutOfMemory:
		return "OUT_OF_MEMORY"
	case InvalidFramebufferOperation:
		return "INVALID_FRAMEBUFFER_OPERATION"
	}
	return fmt.Sprintf("0x%04X", code)
}

// Check drains the context's error flags and returns the first one as an
// *Error attributed to op, or nil if no flag was set.
func Check(ctx Context, op string) error {
	var first uint32
	for i := 0; i < maxDrain; i++ {
		code := ctx.GetError()
		if code == NoError {
			break
		}
		if first == NoError {
			first = code
		}
	}
	if first == NoError {
		return nil
	}
	return &Error{Op: op, Code: first}
}

// Clear discards any pending error flags and reports how many were dropped.
func Clear(ctx Context) int {
	n := 0
	for ; n < maxDrain; n++ {
		if ctx.GetError() == NoError {
			break
		}
	}
	return n
}
