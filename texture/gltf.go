package texture

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"gltex/opengl"
)

// ErrImageIndex is returned when a glTF document has no image at the
// requested index or the image carries no data.
var ErrImageIndex = errors.New("texture: gltf image not found")

// FromGLTF opens a .gltf or .glb document and uploads its image at index.
// The image may live in a buffer view, a data URI, or a file relative to
// the document.
func FromGLTF(ctx opengl.Context, path string, index int) (*Texture, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", path, err)
	}
	if index < 0 || index >= len(doc.Images) {
		return nil, fmt.Errorf("%w: index %d of %d in %q", ErrImageIndex, index, len(doc.Images), path)
	}
	img := doc.Images[index]

	switch {
	case img.BufferView != nil:
		if int(*img.BufferView) >= len(doc.BufferViews) {
			return nil, fmt.Errorf("%w: image %d references bufferView %d of %d in %q",
				ErrImageIndex, index, *img.BufferView, len(doc.BufferViews), path)
		}
		raw, err := modeler.ReadBufferView(doc, doc.BufferViews[*img.BufferView])
		if err != nil {
			return nil, fmt.Errorf("gltf image %d bufferview: %w", index, err)
		}
		return FromReader(ctx, bytes.NewReader(raw))
	case img.IsEmbeddedResource():
		raw, err := img.MarshalData()
		if err != nil {
			return nil, fmt.Errorf("gltf image %d data uri: %w", index, err)
		}
		return FromReader(ctx, bytes.NewReader(raw))
	case img.URI != "":
		uri, err := url.PathUnescape(img.URI)
		if err != nil {
			uri = img.URI
		}
		return FromFile(ctx, filepath.Join(filepath.Dir(path), filepath.FromSlash(uri)))
	}
	return nil, fmt.Errorf("%w: image %d in %q has no data", ErrImageIndex, index, path)
}
