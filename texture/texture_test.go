package texture

import (
	"image"
	"image/color"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gltex/opengl"
	"gltex/opengl/opengltest"
)

func randomPixels(rng *rand.Rand, w, h int) []byte {
	pix := make([]byte, w*h*4)
	rng.Read(pix)
	return pix
}

func TestFromPixelsRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	sizes := [][2]int{{1, 1}, {2, 3}, {3, 2}, {7, 5}, {16, 16}, {31, 1}, {1, 64}, {100, 37}}
	for _, sz := range sizes {
		w, h := sz[0], sz[1]
		ctx := opengltest.NewContext()
		pix := randomPixels(rng, w, h)

		tex, err := FromPixels(ctx, pix, w, h)
		require.NoError(t, err, "%dx%d", w, h)
		assert.Equal(t, w, tex.Width())
		assert.Equal(t, h, tex.Height())

		got, err := tex.ReadPixels()
		require.NoError(t, err)
		assert.Equal(t, pix, got, "%dx%d", w, h)
		require.NoError(t, tex.Close())
	}
}

func TestFromPixelsParameters(t *testing.T) {
	ctx := opengltest.NewContext()
	tex, err := FromPixels(ctx, make([]byte, 8*4*4), 8, 4)
	require.NoError(t, err)

	state, ok := ctx.Texture(tex.Handle())
	require.True(t, ok)
	assert.Equal(t, int32(opengl.ClampToEdge), state.Params[opengl.TextureWrapS])
	assert.Equal(t, int32(opengl.ClampToEdge), state.Params[opengl.TextureWrapT])
	assert.Equal(t, int32(opengl.LinearMipmapLinear), state.Params[opengl.TextureMinFilter])
	assert.Equal(t, int32(opengl.Linear), state.Params[opengl.TextureMagFilter])
	assert.Equal(t, int32(0), state.Params[opengl.TextureBaseLevel])
	assert.Equal(t, int32(MaxMipLevel), state.Params[opengl.TextureMaxLevel])
	assert.True(t, state.Mipmapped)
	assert.Equal(t, int32(opengl.RGBA), state.InternalFormat)

	assert.Equal(t, uint32(0), ctx.ActiveUnit())
	assert.Equal(t, tex.Handle(), ctx.Bound(0))
}

func TestFromPixelsCallOrder(t *testing.T) {
	ctx := opengltest.NewContext()
	_, err := FromPixels(ctx, make([]byte, 4), 1, 1)
	require.NoError(t, err)

	want := []string{
		"GenTexture", "ActiveTexture", "BindTexture", "TexImage2D",
		"TexParameteri", "TexParameteri", "TexParameteri",
		"TexParameteri", "TexParameteri", "TexParameteri",
		"GenerateMipmap",
	}
	assert.Equal(t, want, ctx.Calls)
}

func TestFromPixelsBadSize(t *testing.T) {
	tests := []struct {
		name string
		len  int
		w, h int
		err  error
	}{
		{"short", 15, 2, 2, ErrPixelSize},
		{"long", 17, 2, 2, ErrPixelSize},
		{"nil", 0, 1, 1, ErrPixelSize},
		{"zero width", 0, 0, 4, ErrDimensions},
		{"negative height", 16, 4, -1, ErrDimensions},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := opengltest.NewContext()
			tex, err := FromPixels(ctx, make([]byte, tt.len), tt.w, tt.h)
			assert.ErrorIs(t, err, tt.err)
			assert.Nil(t, tex)
			assert.Empty(t, ctx.Calls, "no GL calls before validation passes")
		})
	}
}

func TestFromImageConverts(t *testing.T) {
	src := image.NewNRGBA(image.Rect(10, 20, 13, 22))
	for y := 20; y < 22; y++ {
		for x := 10; x < 13; x++ {
			src.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}

	ctx := opengltest.NewContext()
	tex, err := FromImage(ctx, src)
	require.NoError(t, err)
	assert.Equal(t, 3, tex.Width())
	assert.Equal(t, 2, tex.Height())

	img, err := tex.Image()
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 10, G: 20, B: 200, A: 255}, img.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{R: 12, G: 21, B: 200, A: 255}, img.RGBAAt(2, 1))
}

func TestBindUnits(t *testing.T) {
	ctx := opengltest.NewContext()
	tex, err := FromPixels(ctx, make([]byte, 4), 1, 1)
	require.NoError(t, err)

	units := opengl.MaxTextureUnits(ctx)
	for u := int32(0); u < units; u++ {
		tex.Bind(Unit(u))
		require.NoError(t, opengl.Check(ctx, "bind"), "unit %d", u)
		assert.Equal(t, uint32(u), ctx.ActiveUnit())
		assert.Equal(t, tex.Handle(), ctx.Bound(uint32(u)))
	}

	tex.Bind(Unit(units))
	var glErr *opengl.Error
	require.ErrorAs(t, opengl.Check(ctx, "bind"), &glErr)
	assert.Equal(t, uint32(opengl.InvalidEnum), glErr.Code)
}

func TestCloseIsTerminal(t *testing.T) {
	ctx := opengltest.NewContext()
	tex, err := FromPixels(ctx, make([]byte, 4), 1, 1)
	require.NoError(t, err)
	handle := tex.Handle()

	require.NoError(t, tex.Close())
	assert.True(t, tex.Disposed())
	assert.Equal(t, uint32(0), tex.Handle())
	assert.Equal(t, 0, ctx.Live())
	assert.Equal(t, uint32(0), ctx.Bound(0))

	assert.ErrorIs(t, tex.Close(), ErrDisposed)
	assert.Equal(t, 1, ctx.Deletes(handle), "handle must be deleted exactly once")

	_, err = tex.ReadPixels()
	assert.ErrorIs(t, err, ErrDisposed)

	calls := len(ctx.Calls)
	tex.Bind(Unit0)
	assert.Len(t, ctx.Calls, calls, "bind after close must not reach the driver")
}

func TestUploadErrorReleasesHandle(t *testing.T) {
	ctx := opengltest.NewContext()
	// No texture units: the bind to unit 0 raises INVALID_ENUM.
	ctx.MaxUnits = 0

	tex, err := FromPixels(ctx, make([]byte, 4), 1, 1)
	assert.Nil(t, tex)
	var glErr *opengl.Error
	require.ErrorAs(t, err, &glErr)
	assert.Equal(t, "upload texture", glErr.Op)
	assert.Equal(t, 0, ctx.Live())
}

func TestStaleErrorsAreNotBlamedOnUpload(t *testing.T) {
	ctx := opengltest.NewContext()
	ctx.Raise(opengl.InvalidValue)

	tex, err := FromPixels(ctx, make([]byte, 4), 1, 1)
	require.NoError(t, err)
	assert.NotZero(t, tex.Handle())
}

func TestTexturesAreIndependent(t *testing.T) {
	ctx := opengltest.NewContext()
	a, err := FromPixels(ctx, []byte{1, 2, 3, 4}, 1, 1)
	require.NoError(t, err)
	b, err := FromPixels(ctx, []byte{5, 6, 7, 8}, 1, 1)
	require.NoError(t, err)
	assert.NotEqual(t, a.Handle(), b.Handle())

	require.NoError(t, a.Close())

	got, err := b.ReadPixels()
	require.NoError(t, err)
	assert.Equal(t, []byte{5, 6, 7, 8}, got)
	assert.Equal(t, 1, ctx.Live())
}
