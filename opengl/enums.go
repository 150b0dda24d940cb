package opengl

// GL enum values used by the texture path. They match the values exported by
// github.com/go-gl/gl so a Context implementation can pass them straight
// through to the driver.
const (
	Texture2D = 0x0DE1
	Texture0  = 0x84C0

	RGBA         = 0x1908
	RGBA8        = 0x8058
	UnsignedByte = 0x1401

	TextureMagFilter = 0x2800
	TextureMinFilter = 0x2801
	TextureWrapS     = 0x2802
	TextureWrapT     = 0x2803
	TextureBaseLevel = 0x813C
	TextureMaxLevel  = 0x813D

	Linear             = 0x2601
	LinearMipmapLinear = 0x2703
	Repeat             = 0x2901
	ClampToEdge        = 0x812F

	ActiveTexture                = 0x84E0
	TextureBinding2D             = 0x8069
	MaxCombinedTextureImageUnits = 0x8B4D
	MaxTextureSize               = 0x0D33
)

// Error codes returned by GetError.
const (
	NoError                     = 0
	InvalidEnum                 = 0x0500
	InvalidValue                = 0x0501
	InvalidOperation            = 0x0502
	StackOverflow               = 0x0503
	StackUnderflow              = 0x0504
	OutOfMemory                 = 0x0505
	InvalidFramebufferOperation = 0x0506
)
