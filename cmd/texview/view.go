package main

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"gltex/core"
	"gltex/internal/logging"
	"gltex/opengl"
	"gltex/opengl/glcore"
	"gltex/texture"
)

func isGLTF(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gltf", ".glb":
		return true
	}
	return false
}

// load picks the constructor matching the source kind. src is the decoded
// image for plain files and nil for glTF documents.
func load(ctx opengl.Context, opts options, src *image.RGBA) (*texture.Texture, error) {
	if src == nil {
		return texture.FromGLTF(ctx, opts.Path, opts.GLTFImage)
	}
	return texture.FromImage(ctx, src)
}

// checkUnit compares in int64 so a large unit cannot wrap into range.
func checkUnit(unit int, units int32) error {
	if unit < 0 || int64(unit) >= int64(units) {
		return fmt.Errorf("unit %d out of range: context exposes %d units", unit, units)
	}
	return nil
}

// windowSize returns the requested size, or the image's own size clamped
// to something that fits a typical screen.
func windowSize(opts options, img image.Point) (int, int) {
	w, h := opts.Width, opts.Height
	if w == 0 {
		w = min(max(img.X, 64), 1600)
	}
	if h == 0 {
		h = min(max(img.Y, 64), 1000)
	}
	return w, h
}

func run(opts options) error {
	log := logging.WithFields(logrus.Fields{"path": opts.Path, "headless": opts.Headless})

	var (
		src  *image.RGBA
		size image.Point
	)
	if !isGLTF(opts.Path) {
		var err error
		if src, err = texture.DecodeFile(opts.Path); err != nil {
			return err
		}
		size = src.Rect.Size()
	}

	cfg := core.DefaultWindowConfig()
	cfg.Title = "texview - " + filepath.Base(opts.Path)
	if size == (image.Point{}) {
		size = image.Pt(cfg.Width, cfg.Height)
	}
	cfg.Width, cfg.Height = windowSize(opts, size)
	cfg.Visible = !opts.Headless
	if opts.Headless {
		cfg.Width, cfg.Height = 16, 16
	}

	window, err := core.NewWindow(cfg)
	if err != nil {
		return err
	}
	defer window.Destroy()

	ctx, err := glcore.NewContext()
	if err != nil {
		return err
	}
	if err := checkUnit(opts.Unit, opengl.MaxTextureUnits(ctx)); err != nil {
		return err
	}

	start := time.Now()
	tex, err := load(ctx, opts, src)
	if err != nil {
		return err
	}
	defer tex.Close()
	log.WithFields(logrus.Fields{
		"handle":  tex.Handle(),
		"size":    fmt.Sprintf("%dx%d", tex.Width(), tex.Height()),
		"elapsed": time.Since(start),
	}).Info("texture uploaded")

	if opts.Headless {
		return verify(log, tex, src, opts)
	}
	return show(window, tex, opts)
}

// verify reads the texture back, compares it with the decoded source when
// there is one, and optionally dumps it as PNG.
func verify(log *logrus.Entry, tex *texture.Texture, src *image.RGBA, opts options) error {
	img, err := tex.Image()
	if err != nil {
		return err
	}
	sum := sha256.Sum256(img.Pix)
	log = log.WithField("sha256", fmt.Sprintf("%x", sum[:8]))

	if src != nil {
		if !bytes.Equal(src.Pix, img.Pix) {
			return fmt.Errorf("read-back of %q differs from decoded source", opts.Path)
		}
		log = log.WithField("verified", true)
	}

	if opts.Dump != "" {
		if err := writePNG(opts.Dump, img); err != nil {
			return err
		}
		log = log.WithField("dump", opts.Dump)
	}
	log.Info("read-back complete")
	return nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %q: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %q: %w", path, err)
	}
	return f.Close()
}

func show(window *core.Window, tex *texture.Texture, opts options) error {
	quad, err := glcore.NewQuad()
	if err != nil {
		return err
	}
	defer quad.Destroy()

	unit := texture.Unit(opts.Unit)
	tex.Bind(unit)
	window.SetTitle(fmt.Sprintf("%s (%dx%d, unit %d)", window.Title, tex.Width(), tex.Height(), unit))

	bg := core.ColorCharcoal
	for !window.ShouldClose() {
		window.PollEvents()
		if window.IsKeyPressed(core.KeyEscape) || window.IsKeyPressed(core.KeyQ) {
			break
		}

		w, h := window.GetFramebufferSize()
		quad.SetViewport(w, h)
		quad.Clear(bg.R, bg.G, bg.B, bg.A)
		quad.Draw(uint32(unit))
		window.SwapBuffers()
	}
	return nil
}
