// Package glcore implements opengl.Context on top of the OpenGL 4.1 core
// profile through github.com/go-gl/gl.
package glcore

import (
	"fmt"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"gltex/internal/logging"
	"gltex/opengl"
)

// Native forwards every call to the driver. It holds no state of its own.
type Native struct {
	Version  string
	Renderer string
}

var _ opengl.Context = (*Native)(nil)

// NewContext loads the GL function pointers for the current context.
// Must be called after the GLFW window context is made current.
func NewContext() (*Native, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	n := &Native{
		Version:  gl.GoStr(gl.GetString(gl.VERSION)),
		Renderer: gl.GoStr(gl.GetString(gl.RENDERER)),
	}
	logging.Infof("OpenGL version: %s (%s)", n.Version, n.Renderer)
	return n, nil
}

// ptr returns the address of the first byte, or nil for an empty slice.
func ptr(pix []byte) unsafe.Pointer {
	if len(pix) == 0 {
		return nil
	}
	return unsafe.Pointer(&pix[0])
}

func (*Native) GenTexture() uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	return id
}

func (*Native) DeleteTexture(texture uint32) {
	gl.DeleteTextures(1, &texture)
}

func (*Native) ActiveTexture(unit uint32) {
	gl.ActiveTexture(unit)
}

func (*Native) BindTexture(target, texture uint32) {
	gl.BindTexture(target, texture)
}

func (*Native) TexImage2D(target uint32, level, internalFormat, width, height int32, format, xtype uint32, pix []byte) {
	gl.TexImage2D(target, level, internalFormat, width, height, 0, format, xtype, ptr(pix))
}

func (*Native) TexSubImage2D(target uint32, level, xoffset, yoffset, width, height int32, format, xtype uint32, pix []byte) {
	gl.TexSubImage2D(target, level, xoffset, yoffset, width, height, format, xtype, ptr(pix))
}

func (*Native) TexParameteri(target, pname uint32, param int32) {
	gl.TexParameteri(target, pname, param)
}

func (*Native) GenerateMipmap(target uint32) {
	gl.GenerateMipmap(target)
}

// GetTexImage trusts the caller to size pix for the level being read.
func (*Native) GetTexImage(target uint32, level int32, format, xtype uint32, pix []byte) {
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.GetTexImage(target, level, format, xtype, ptr(pix))
}

func (*Native) GetIntegerv(pname uint32) int32 {
	var v int32
	gl.GetIntegerv(pname, &v)
	return v
}

func (*Native) GetError() uint32 {
	return gl.GetError()
}
