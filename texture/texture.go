// Package texture uploads RGBA8 images into OpenGL 2D texture objects.
//
// A Texture owns exactly one GL handle. Construct it with FromFile,
// FromReader, FromImage, FromPixels or FromGLTF, bind it with Bind, and
// release it with Close before the GL context is destroyed. Every call must
// happen on the goroutine that owns the current context.
package texture

import (
	"errors"
	"fmt"
	"image"

	"gltex/internal/logging"
	"gltex/opengl"
)

// MaxMipLevel is the highest mip level sampled; level 0 is the base image.
const MaxMipLevel = 8

// Unit is a texture unit index. Unit(n) maps to GL_TEXTURE0+n.
type Unit uint32

// Unit0 is the default binding slot.
const Unit0 Unit = 0

var (
	// ErrDisposed is returned when a closed texture is used.
	ErrDisposed = errors.New("texture: disposed")
	// ErrDimensions is returned for a zero or negative width or height.
	ErrDimensions = errors.New("texture: invalid dimensions")
	// ErrPixelSize is returned when a pixel buffer is not width*height*4 bytes.
	ErrPixelSize = errors.New("texture: pixel buffer size mismatch")
)

// Texture is a GL 2D texture with RGBA8 storage. The zero handle marks a
// disposed texture.
type Texture struct {
	ctx    opengl.Context
	handle uint32
	width  int
	height int
}

// FromPixels uploads an RGBA8 buffer of exactly width*height*4 bytes, rows
// top to bottom with no padding.
func FromPixels(ctx opengl.Context, pix []byte, width, height int) (*Texture, error) {
	if err := checkSize(pix, width, height); err != nil {
		return nil, err
	}

	t := alloc(ctx, width, height)
	ctx.TexImage2D(opengl.Texture2D, 0, opengl.RGBA, int32(width), int32(height), opengl.RGBA, opengl.UnsignedByte, pix)
	return t.finish()
}

// FromImage converts img to RGBA8 and uploads it.
func FromImage(ctx opengl.Context, img image.Image) (*Texture, error) {
	rgba := toRGBA(img)
	return FromPixels(ctx, rgba.Pix, rgba.Rect.Dx(), rgba.Rect.Dy())
}

// fromRGBA reserves RGBA8 storage first and then fills it in one sub-image
// upload.
func fromRGBA(ctx opengl.Context, img *image.RGBA) (*Texture, error) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if err := checkSize(img.Pix, w, h); err != nil {
		return nil, err
	}

	t := alloc(ctx, w, h)
	ctx.TexImage2D(opengl.Texture2D, 0, opengl.RGBA8, int32(w), int32(h), opengl.RGBA, opengl.UnsignedByte, nil)
	ctx.TexSubImage2D(opengl.Texture2D, 0, 0, 0, int32(w), int32(h), opengl.RGBA, opengl.UnsignedByte, img.Pix)
	return t.finish()
}

func checkSize(pix []byte, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrDimensions, width, height)
	}
	if want := width * height * 4; len(pix) != want {
		return fmt.Errorf("%w: got %d bytes, want %d for %dx%d", ErrPixelSize, len(pix), want, width, height)
	}
	return nil
}

// alloc generates a handle and binds it to unit 0.
func alloc(ctx opengl.Context, width, height int) *Texture {
	if n := opengl.Clear(ctx); n > 0 {
		logging.Debugf("texture: discarded %d stale GL error(s)", n)
	}
	t := &Texture{
		ctx:    ctx,
		handle: ctx.GenTexture(),
		width:  width,
		height: height,
	}
	t.Bind(Unit0)
	return t
}

// finish applies sampling parameters and turns any GL error raised during
// construction into a returned error, deleting the handle.
func (t *Texture) finish() (*Texture, error) {
	t.setParameters()
	if err := opengl.Check(t.ctx, "upload texture"); err != nil {
		t.ctx.DeleteTexture(t.handle)
		t.handle = 0
		return nil, err
	}
	logging.WithField("handle", t.handle).Debugf("texture: uploaded %dx%d", t.width, t.height)
	return t, nil
}

func (t *Texture) setParameters() {
	ctx := t.ctx
	ctx.TexParameteri(opengl.Texture2D, opengl.TextureWrapS, opengl.ClampToEdge)
	ctx.TexParameteri(opengl.Texture2D, opengl.TextureWrapT, opengl.ClampToEdge)
	ctx.TexParameteri(opengl.Texture2D, opengl.TextureMinFilter, opengl.LinearMipmapLinear)
	ctx.TexParameteri(opengl.Texture2D, opengl.TextureMagFilter, opengl.Linear)
	ctx.TexParameteri(opengl.Texture2D, opengl.TextureBaseLevel, 0)
	ctx.TexParameteri(opengl.Texture2D, opengl.TextureMaxLevel, MaxMipLevel)
	ctx.GenerateMipmap(opengl.Texture2D)
}

// Bind makes unit the active texture unit and binds t to its TEXTURE_2D
// target. Units beyond opengl.MaxTextureUnits are rejected by the driver
// with INVALID_ENUM. Binding a disposed texture does nothing.
func (t *Texture) Bind(unit Unit) {
	if t.handle == 0 {
		return
	}
	t.ctx.ActiveTexture(opengl.Texture0 + uint32(unit))
	t.ctx.BindTexture(opengl.Texture2D, t.handle)
}

// Close deletes the GL handle. The texture must not be used afterwards; a
// second Close returns ErrDisposed without touching the driver.
func (t *Texture) Close() error {
	if t.handle == 0 {
		return ErrDisposed
	}
	logging.WithField("handle", t.handle).Debug("texture: deleted")
	t.ctx.DeleteTexture(t.handle)
	t.handle = 0
	return nil
}

// Handle returns the GL texture name, or 0 once disposed.
func (t *Texture) Handle() uint32 { return t.handle }

// Width returns the width of mip level 0 in pixels.
func (t *Texture) Width() int { return t.width }

// Height returns the height of mip level 0 in pixels.
func (t *Texture) Height() int { return t.height }

// Disposed reports whether Close has been called.
func (t *Texture) Disposed() bool { return t.handle == 0 }

// ReadPixels copies mip level 0 back from the GPU as RGBA8. It leaves the
// texture bound to unit 0.
func (t *Texture) ReadPixels() ([]byte, error) {
	if t.handle == 0 {
		return nil, ErrDisposed
	}
	t.Bind(Unit0)
	pix := make([]byte, t.width*t.height*4)
	t.ctx.GetTexImage(opengl.Texture2D, 0, opengl.RGBA, opengl.UnsignedByte, pix)
	if err := opengl.Check(t.ctx, "read texture"); err != nil {
		return nil, err
	}
	return pix, nil
}

// Image reads mip level 0 back as an *image.RGBA.
func (t *Texture) Image() (*image.RGBA, error) {
	pix, err := t.ReadPixels()
	if err != nil {
		return nil, err
	}
	return &image.RGBA{
		Pix:    pix,
		Stride: t.width * 4,
		Rect:   image.Rect(0, 0, t.width, t.height),
	}, nil
}
