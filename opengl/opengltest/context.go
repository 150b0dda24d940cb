// Package opengltest provides an in-memory OpenGL texture implementation for
// tests that cannot create a real GL context.
package opengltest

import (
	"fmt"

	"gltex/opengl"
)

// DefaultMaxUnits matches the minimum MAX_COMBINED_TEXTURE_IMAGE_UNITS that
// a GL 4.1 driver must expose per stage.
const DefaultMaxUnits = 16

// Texture is the software-side state of one texture object.
type Texture struct {
	Width          int32
	Height         int32
	InternalFormat int32
	// Pixels holds mip level 0 as RGBA8, nil until storage is specified.
	Pixels    []byte
	Params    map[uint32]int32
	Mipmapped bool
}

// Context implements opengl.Context in memory. It raises the error flags a
// conforming driver would for the calls the texture package makes.
type Context struct {
	MaxUnits int32

	next     uint32
	active   uint32
	textures map[uint32]*Texture
	bound    map[uint32]uint32
	errs     []uint32
	deletes  map[uint32]int

	// Calls records every method invocation by name, in order.
	Calls []string
}

var _ opengl.Context = (*Context)(nil)

// NewContext returns an empty context with DefaultMaxUnits texture units.
func NewContext() *Context {
	return &Context{
		MaxUnits: DefaultMaxUnits,
		textures: make(map[uint32]*Texture),
		bound:    make(map[uint32]uint32),
		deletes:  make(map[uint32]int),
	}
}

// Texture returns the state of a live texture object.
func (c *Context) Texture(handle uint32) (*Texture, bool) {
	t, ok := c.textures[handle]
	return t, ok
}

// Live returns the number of allocated, undeleted texture objects.
func (c *Context) Live() int {
	return len(c.textures)
}

// Deletes returns how many times DeleteTexture was called for handle.
func (c *Context) Deletes(handle uint32) int {
	return c.deletes[handle]
}

// Bound returns the texture bound to TEXTURE_2D on unit (an index, not a
// TEXTURE0 enum).
func (c *Context) Bound(unit uint32) uint32 {
	return c.bound[unit]
}

// ActiveUnit returns the index of the active texture unit.
func (c *Context) ActiveUnit() uint32 {
	return c.active
}

// Raise queues an error flag, as if the driver had failed the next call.
func (c *Context) Raise(code uint32) {
	c.errs = append(c.errs, code)
}

func (c *Context) fail(code uint32) {
	c.errs = append(c.errs, code)
}

func (c *Context) record(name string) {
	c.Calls = append(c.Calls, name)
}

func (c *Context) current(target uint32) *Texture {
	if target != opengl.Texture2D {
		c.fail(opengl.InvalidEnum)
		return nil
	}
	t, ok := c.textures[c.bound[c.active]]
	if !ok {
		c.fail(opengl.InvalidOperation)
		return nil
	}
	return t
}

func (c *Context) GenTexture() uint32 {
	c.record("GenTexture")
	c.next++
	c.textures[c.next] = &Texture{
		Params: map[uint32]int32{
			opengl.TextureWrapS:     opengl.Repeat,
			opengl.TextureWrapT:     opengl.Repeat,
			opengl.TextureMinFilter: 0x2702, // NEAREST_MIPMAP_LINEAR
			opengl.TextureMagFilter: opengl.Linear,
			opengl.TextureBaseLevel: 0,
			opengl.TextureMaxLevel:  1000,
		},
	}
	return c.next
}

// DeleteTexture ignores unknown names and zero, like the driver does. Every
// call is still counted so tests can detect double deletes.
func (c *Context) DeleteTexture(handle uint32) {
	c.record("DeleteTexture")
	c.deletes[handle]++
	if _, ok := c.textures[handle]; !ok {
		return
	}
	delete(c.textures, handle)
	for unit, h := range c.bound {
		if h == handle {
			delete(c.bound, unit)
		}
	}
}

func (c *Context) ActiveTexture(unit uint32) {
	c.record("ActiveTexture")
	if unit < opengl.Texture0 || unit-opengl.Texture0 >= uint32(c.MaxUnits) {
		c.fail(opengl.InvalidEnum)
		return
	}
	c.active = unit - opengl.Texture0
}

func (c *Context) BindTexture(target, handle uint32) {
	c.record("BindTexture")
	if target != opengl.Texture2D {
		c.fail(opengl.InvalidEnum)
		return
	}
	if handle == 0 {
		delete(c.bound, c.active)
		return
	}
	if _, ok := c.textures[handle]; !ok {
		c.fail(opengl.InvalidOperation)
		return
	}
	c.bound[c.active] = handle
}

func (c *Context) TexImage2D(target uint32, level, internalFormat, width, height int32, format, xtype uint32, pix []byte) {
	c.record("TexImage2D")
	t := c.current(target)
	if t == nil {
		return
	}
	switch {
	case level != 0, width < 0, height < 0:
		c.fail(opengl.InvalidValue)
		return
	case internalFormat != opengl.RGBA && internalFormat != opengl.RGBA8:
		c.fail(opengl.InvalidValue)
		return
	case format != opengl.RGBA || xtype != opengl.UnsignedByte:
		c.fail(opengl.InvalidEnum)
		return
	}
	size := int(width) * int(height) * 4
	if pix != nil && len(pix) < size {
		c.fail(opengl.InvalidOperation)
		return
	}
	t.Width, t.Height, t.InternalFormat = width, height, internalFormat
	t.Pixels = make([]byte, size)
	copy(t.Pixels, pix)
	t.Mipmapped = false
}

func (c *Context) TexSubImage2D(target uint32, level, xoffset, yoffset, width, height int32, format, xtype uint32, pix []byte) {
	c.record("TexSubImage2D")
	t := c.current(target)
	if t == nil {
		return
	}
	switch {
	case t.Pixels == nil:
		c.fail(opengl.InvalidOperation)
		return
	case level != 0, xoffset < 0, yoffset < 0, width < 0, height < 0,
		xoffset+width > t.Width, yoffset+height > t.Height:
		c.fail(opengl.InvalidValue)
		return
	case format != opengl.RGBA || xtype != opengl.UnsignedByte:
		c.fail(opengl.InvalidEnum)
		return
	case len(pix) < int(width)*int(height)*4:
		c.fail(opengl.InvalidOperation)
		return
	}
	row := int(width) * 4
	for y := 0; y < int(height); y++ {
		dst := ((int(yoffset)+y)*int(t.Width) + int(xoffset)) * 4
		copy(t.Pixels[dst:dst+row], pix[y*row:(y+1)*row])
	}
}

func (c *Context) TexParameteri(target, pname uint32, param int32) {
	c.record("TexParameteri")
	t := c.current(target)
	if t == nil {
		return
	}
	switch pname {
	case opengl.TextureWrapS, opengl.TextureWrapT, opengl.TextureMinFilter,
		opengl.TextureMagFilter, opengl.TextureBaseLevel, opengl.TextureMaxLevel:
		t.Params[pname] = param
	default:
		c.fail(opengl.InvalidEnum)
	}
}

func (c *Context) GenerateMipmap(target uint32) {
	c.record("GenerateMipmap")
	t := c.current(target)
	if t == nil {
		return
	}
	if t.Pixels == nil {
		c.fail(opengl.InvalidOperation)
		return
	}
	t.Mipmapped = true
}

// GetTexImage only stores level 0; other levels raise INVALID_VALUE.
func (c *Context) GetTexImage(target uint32, level int32, format, xtype uint32, pix []byte) {
	c.record("GetTexImage")
	t := c.current(target)
	if t == nil {
		return
	}
	switch {
	case level != 0:
		c.fail(opengl.InvalidValue)
	case format != opengl.RGBA || xtype != opengl.UnsignedByte:
		c.fail(opengl.InvalidEnum)
	case len(pix) < len(t.Pixels):
		c.fail(opengl.InvalidOperation)
	default:
		copy(pix, t.Pixels)
	}
}

func (c *Context) GetIntegerv(pname uint32) int32 {
	c.record("GetIntegerv")
	switch pname {
	case opengl.MaxCombinedTextureImageUnits:
		return c.MaxUnits
	case opengl.ActiveTexture:
		return int32(opengl.Texture0 + c.active)
	case opengl.TextureBinding2D:
		return int32(c.bound[c.active])
	case opengl.MaxTextureSize:
		return 16384
	}
	c.fail(opengl.InvalidEnum)
	return 0
}

func (c *Context) GetError() uint32 {
	if len(c.errs) == 0 {
		return opengl.NoError
	}
	code := c.errs[0]
	c.errs = c.errs[1:]
	return code
}

// String summarises the context for test failure messages.
func (c *Context) String() string {
	return fmt.Sprintf("opengltest.Context{live: %d, active: %d, pending errors: %d}",
		len(c.textures), c.active, len(c.errs))
}
