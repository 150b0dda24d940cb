package texture

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"golang.org/x/image/draw"

	"gltex/opengl"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Decode reads a PNG, JPEG, GIF, BMP, TIFF or WebP image and returns it as
// RGBA8 with its origin at (0, 0) and no row padding.
func Decode(r io.Reader) (*image.RGBA, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	return toRGBA(img), nil
}

// DecodeFile opens path and decodes it with Decode.
func DecodeFile(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture %q: %w", path, err)
	}
	defer f.Close()

	img, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode texture %q: %w", path, err)
	}
	return img, nil
}

// FromReader decodes an image from r and uploads it.
func FromReader(ctx opengl.Context, r io.Reader) (*Texture, error) {
	img, err := Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode texture: %w", err)
	}
	return fromRGBA(ctx, img)
}

// FromFile decodes the image at path and uploads it. A missing file yields
// an error matching fs.ErrNotExist.
func FromFile(ctx opengl.Context, path string) (*Texture, error) {
	img, err := DecodeFile(path)
	if err != nil {
		return nil, err
	}
	t, err := fromRGBA(ctx, img)
	if err != nil {
		return nil, fmt.Errorf("texture %q: %w", path, err)
	}
	return t, nil
}

// toRGBA returns img unchanged when it is already a tightly packed
// *image.RGBA at the origin, and a converted copy otherwise. A sub-image
// keeps its parent's Pix, so the length is checked along with the stride.
func toRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	if rgba, ok := img.(*image.RGBA); ok && b.Min == (image.Point{}) &&
		rgba.Stride == b.Dx()*4 && len(rgba.Pix) == b.Dx()*b.Dy()*4 {
		return rgba
	}
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
