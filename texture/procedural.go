package texture

import (
	"image/color"

	"gltex/opengl"
)

// Solid uploads a 1x1 texture of a single colour, useful as a default
// binding when a material has no image.
func Solid(ctx opengl.Context, c color.RGBA) (*Texture, error) {
	return FromPixels(ctx, []byte{c.R, c.G, c.B, c.A}, 1, 1)
}

// Checker uploads a size x size checkerboard of 8x8 cells alternating
// between c1 (top-left) and c2.
func Checker(ctx opengl.Context, size int, c1, c2 color.RGBA) (*Texture, error) {
	if size <= 0 {
		return FromPixels(ctx, nil, size, size)
	}
	pix := make([]byte, size*size*4)
	block := max(size/8, 1)

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := c2
			if (x/block+y/block)%2 == 0 {
				c = c1
			}
			i := (y*size + x) * 4
			pix[i], pix[i+1], pix[i+2], pix[i+3] = c.R, c.G, c.B, c.A
		}
	}
	return FromPixels(ctx, pix, size, size)
}
