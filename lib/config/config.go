package config

// configuration file of blurhash command

import (
	"os"

	"github.com/BurntSushi/toml"
	"golang.org/x/xerrors"

	"blurhash/lib/blurhash"
	"blurhash/lib/filelogger"
	"blurhash/lib/hashtools"
	"blurhash/lib/imageio"
	"blurhash/lib/logx"
)

type LogConfig struct {
	Level string `toml:"level"`
	Color string `toml:"color"` // auto, on, off
}

type EncodeConfig struct {
	XComponents int `toml:"x_components"`
	YComponents int `toml:"y_components"`
}

type DecodeConfig struct {
	Width    int `toml:"width"`
	Height   int `toml:"height"`
	Punch    int `toml:"punch"`
	Channels int `toml:"channels"`
}

type ImageConfig struct {
	MaxWidth     int    `toml:"max_width"`
	MaxHeight    int    `toml:"max_height"`
	MaxPixels    int    `toml:"max_pixels"`
	MaxFileSize  int64  `toml:"max_file_size"`
	SampleWidth  int    `toml:"sample_width"`
	SampleHeight int    `toml:"sample_height"`
	Filter       string `toml:"filter"`
	Background   string `toml:"background"`
}

type IndexConfig struct {
	Include  []string `toml:"include"`
	Exclude  []string `toml:"exclude"`
	Workers  int      `toml:"workers"`
	HashType string   `toml:"hash_type"`
	Output   string   `toml:"output"`
}

type Config struct {
	Log    LogConfig    `toml:"log"`
	Encode EncodeConfig `toml:"encode"`
	Decode DecodeConfig `toml:"decode"`
	Image  ImageConfig  `toml:"image"`
	Index  IndexConfig  `toml:"index"`
}

var Default = Config{
	Log: LogConfig{Level: "notice", Color: "auto"},
	Encode: EncodeConfig{
		XComponents: 4,
		YComponents: 3,
	},
	Decode: DecodeConfig{
		Width:    32,
		Height:   32,
		Punch:    1,
		Channels: 4,
	},
	Image: ImageConfig{
		MaxWidth:    imageio.DefaultConfig.MaxWidth,
		MaxHeight:   imageio.DefaultConfig.MaxHeight,
		MaxPixels:   imageio.DefaultConfig.MaxPixels,
		MaxFileSize: imageio.DefaultConfig.MaxFileSize,
		Filter:      "lanczos",
	},
	Index: IndexConfig{
		Include:  []string{"*.{jpg,jpeg,png,gif,webp,bmp,tif,tiff}"},
		Workers:  4,
		HashType: "auto",
		Output:   "blurhash.toml",
	},
}

// Load reads TOML file at path on top of Default.
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, xerrors.Errorf("read config: %w", err)
	}
	return Parse(string(b))
}

// Parse decodes TOML text on top of Default and validates result.
func Parse(s string) (Config, error) {
	c := Default
	// slices would otherwise be shared with Default
	c.Index.Include = append([]string(nil), Default.Index.Include...)
	md, err := toml.Decode(s, &c)
	if err != nil {
		return Config{}, xerrors.Errorf("parse config: %w", err)
	}
	if und := md.Undecoded(); len(und) != 0 {
		return Config{}, xerrors.Errorf("parse config: unknown key %q", und[0].String())
	}
	if err = c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func validComponents(n int) bool {
	return n >= 1 && n <= blurhash.MaxComponents
}

func (c *Config) Validate() error {
	if _, err := logx.ParseLevel(c.Log.Level); err != nil {
		return xerrors.Errorf("log.level: %w", err)
	}
	if _, err := filelogger.ParseColorMode(c.Log.Color); err != nil {
		return xerrors.Errorf("log.color: %w", err)
	}
	if !validComponents(c.Encode.XComponents) || !validComponents(c.Encode.YComponents) {
		return xerrors.Errorf("encode: %w", blurhash.ErrInvalidComponentCount)
	}
	if c.Decode.Width <= 0 || c.Decode.Height <= 0 {
		return xerrors.Errorf("decode: %w", blurhash.ErrInvalidDimensions)
	}
	if c.Decode.Punch < 1 {
		return xerrors.Errorf("decode.punch must be at least 1, got %d", c.Decode.Punch)
	}
	if c.Decode.Channels != 3 && c.Decode.Channels != 4 {
		return xerrors.Errorf("decode: %w", blurhash.ErrInvalidChannels)
	}
	if _, err := imageio.ParseFilter(c.Image.Filter); err != nil {
		return xerrors.Errorf("image.filter: %w", err)
	}
	if c.Image.Background != "" {
		if _, err := imageio.ParseColor(c.Image.Background); err != nil {
			return xerrors.Errorf("image.background: %w", err)
		}
	}
	if c.Index.Workers < 1 {
		return xerrors.Errorf("index.workers must be positive, got %d", c.Index.Workers)
	}
	if _, err := hashtools.ParseHashType(c.Index.HashType); err != nil {
		return xerrors.Errorf("index.hash_type: %w", err)
	}
	return nil
}

func (c *Config) LogLevel() logx.Level {
	l, _ := logx.ParseLevel(c.Log.Level)
	return l
}

func (c *Config) ColorMode() filelogger.ColorMode {
	m, _ := filelogger.ParseColorMode(c.Log.Color)
	return m
}

// ImageConfig converts [image] section into loader config.
func (c *Config) ImageConfig() imageio.Config {
	return imageio.Config{
		MaxWidth:     c.Image.MaxWidth,
		MaxHeight:    c.Image.MaxHeight,
		MaxPixels:    c.Image.MaxPixels,
		MaxFileSize:  c.Image.MaxFileSize,
		SampleWidth:  c.Image.SampleWidth,
		SampleHeight: c.Image.SampleHeight,
		Filter:       c.Image.Filter,
		Background:   c.Image.Background,
	}
}
