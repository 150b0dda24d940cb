package main

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gltex/internal/logging"
)

// options is the resolved configuration for one run.
type options struct {
	Path      string
	Width     int
	Height    int
	Unit      int
	Headless  bool
	Dump      string
	GLTFImage int
	LogLevel  string
	LogFile   string
}

var errNoUnit = errors.New("unit must be non-negative")

func newRootCmd() *cobra.Command {
	v := viper.New()
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "texview [flags] IMAGE",
		Short: "Load an image into an OpenGL texture",
		Long: `texview decodes an image (PNG, JPEG, GIF, BMP, TIFF, WebP, or an image
inside a glTF document) into an RGBA8 OpenGL texture with a full mip chain.

By default the texture is shown in a window until Escape is pressed. With
--headless the texture is read back from the GPU, compared against the
decoded source, and optionally written out as PNG.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfgFile != "" {
				v.SetConfigFile(cfgFile)
				if err := v.ReadInConfig(); err != nil {
					return fmt.Errorf("read config %q: %w", cfgFile, err)
				}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadOptions(v, args[0])
			if err != nil {
				return err
			}
			if err := logging.Init(opts.LogLevel, opts.LogFile, true); err != nil {
				return fmt.Errorf("init logging: %w", err)
			}
			return run(opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfgFile, "config", "", "config file (yaml, toml or json)")
	f.Int("width", 0, "window width (default: image width)")
	f.Int("height", 0, "window height (default: image height)")
	f.Int("unit", 0, "texture unit to bind and sample")
	f.Bool("headless", false, "upload and read back in a hidden window, then exit")
	f.String("dump", "", "write the read-back texture to this PNG path (headless only)")
	f.Int("gltf-image", 0, "image index when IMAGE is a .gltf or .glb document")
	f.String("log-level", "info", "log level (debug, info, warn, error)")
	f.String("log-file", "", "also append logs to this file")

	v.SetEnvPrefix("TEXVIEW")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindPFlags(f)

	return cmd
}

func loadOptions(v *viper.Viper, path string) (options, error) {
	opts := options{
		Path:      path,
		Width:     v.GetInt("width"),
		Height:    v.GetInt("height"),
		Unit:      v.GetInt("unit"),
		Headless:  v.GetBool("headless"),
		Dump:      v.GetString("dump"),
		GLTFImage: v.GetInt("gltf-image"),
		LogLevel:  v.GetString("log-level"),
		LogFile:   v.GetString("log-file"),
	}
	switch {
	case opts.Unit < 0:
		return opts, fmt.Errorf("%w: %d", errNoUnit, opts.Unit)
	case opts.Unit > math.MaxInt32:
		return opts, fmt.Errorf("unit %d exceeds the GL enum range", opts.Unit)
	case opts.Width < 0 || opts.Height < 0:
		return opts, fmt.Errorf("window size must be non-negative: %dx%d", opts.Width, opts.Height)
	case opts.Dump != "" && !opts.Headless:
		return opts, errors.New("--dump requires --headless")
	}
	return opts, nil
}
