// Package opengl describes the slice of the OpenGL 4.1 core API that texture
// objects need, independent of any particular binding.
//
// The native implementation lives in opengl/glcore and talks to the driver
// through github.com/go-gl/gl. Tests use the software implementation in
// opengl/opengltest.
//
// All methods must be called from the goroutine that owns the current GL
// context.
package opengl

// Context is the GL texture-object API. Pixel data always crosses it as a
// byte slice; a nil slice passed to TexImage2D reserves storage without
// uploading anything.
type Context interface {
	GenTexture() uint32
	DeleteTexture(texture uint32)
	ActiveTexture(unit uint32)
	BindTexture(target, texture uint32)
	TexImage2D(target uint32, level, internalFormat, width, height int32, format, xtype uint32, pix []byte)
	TexSubImage2D(target uint32, level, xoffset, yoffset, width, height int32, format, xtype uint32, pix []byte)
	TexParameteri(target, pname uint32, param int32)
	GenerateMipmap(target uint32)
	GetTexImage(target uint32, level int32, format, xtype uint32, pix []byte)
	GetIntegerv(pname uint32) int32
	GetError() uint32
}

// MaxTextureUnits returns the number of texture units the context exposes.
// Valid arguments to ActiveTexture are Texture0 through
// Texture0+MaxTextureUnits-1.
func MaxTextureUnits(ctx Context) int32 {
	return ctx.GetIntegerv(MaxCombinedTextureImageUnits)
}

// BoundTexture2D returns the texture bound to TEXTURE_2D on the active unit.
func BoundTexture2D(ctx Context) uint32 {
	return uint32(ctx.GetIntegerv(TextureBinding2D))
}
