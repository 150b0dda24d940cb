package texture

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gltex/opengl/opengltest"
)

var (
	white = color.RGBA{255, 255, 255, 255}
	black = color.RGBA{0, 0, 0, 255}
)

func TestSolid(t *testing.T) {
	ctx := opengltest.NewContext()
	tex, err := Solid(ctx, color.RGBA{10, 20, 30, 40})
	require.NoError(t, err)

	got, err := tex.ReadPixels()
	require.NoError(t, err)
	assert.Equal(t, []byte{10, 20, 30, 40}, got)
}

func TestChecker(t *testing.T) {
	ctx := opengltest.NewContext()
	tex, err := Checker(ctx, 16, white, black)
	require.NoError(t, err)

	img, err := tex.Image()
	require.NoError(t, err)
	assert.Equal(t, white, img.RGBAAt(0, 0))
	assert.Equal(t, white, img.RGBAAt(1, 1))
	assert.Equal(t, black, img.RGBAAt(2, 0))
	assert.Equal(t, black, img.RGBAAt(0, 2))
	assert.Equal(t, white, img.RGBAAt(15, 15))
}

func TestCheckerTiny(t *testing.T) {
	ctx := opengltest.NewContext()
	tex, err := Checker(ctx, 3, white, black)
	require.NoError(t, err)

	img, err := tex.Image()
	require.NoError(t, err)
	assert.Equal(t, white, img.RGBAAt(0, 0))
	assert.Equal(t, black, img.RGBAAt(1, 0))

	_, err = Checker(ctx, 0, white, black)
	assert.ErrorIs(t, err, ErrDimensions)
}
