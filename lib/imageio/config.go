package imageio

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
)

type Config struct {
	MaxWidth, MaxHeight int
	MaxPixels           int
	MaxFileSize         int64
	// box image is shrunk into before handing to encoder; 0 keeps original size
	SampleWidth, SampleHeight int
	Filter                    string // resample filter name, see ParseFilter; empty means lanczos
	Background                string // flatten alpha onto this color if set
}

var DefaultConfig = Config{
	MaxWidth:    8192,
	MaxHeight:   8192,
	MaxPixels:   4096 * 4096,
	MaxFileSize: 64 * 1024 * 1024,
	Filter:      "lanczos",
}

var filters = map[string]imaging.ResampleFilter{
	"nearest":           imaging.NearestNeighbor,
	"box":               imaging.Box,
	"linear":            imaging.Linear,
	"hermite":           imaging.Hermite,
	"mitchellnetravali": imaging.MitchellNetravali,
	"catmullrom":        imaging.CatmullRom,
	"bspline":           imaging.BSpline,
	"gaussian":          imaging.Gaussian,
	"bartlett":          imaging.Bartlett,
	"lanczos":           imaging.Lanczos,
	"hann":              imaging.Hann,
	"hamming":           imaging.Hamming,
	"blackman":          imaging.Blackman,
	"welch":             imaging.Welch,
	"cosine":            imaging.Cosine,
}

// ParseFilter maps resample filter name to imaging filter.
func ParseFilter(name string) (imaging.ResampleFilter, error) {
	if name == "" {
		return imaging.Lanczos, nil
	}
	f, ok := filters[strings.ToLower(name)]
	if !ok {
		return imaging.ResampleFilter{}, fmt.Errorf("unknown resample filter %q", name)
	}
	return f, nil
}

var errColorFormat = errors.New("unknown color format")

// ParseColor parses #rgb or #rrggbb.
func ParseColor(c string) (color.NRGBA, error) {
	if (len(c) != 4 && len(c) != 7) || c[0] != '#' {
		return color.NRGBA{}, errColorFormat
	}

	i, err := strconv.ParseUint(c[1:], 16, 32)
	if err != nil {
		return color.NRGBA{}, errColorFormat
	}

	if len(c) == 7 {
		return color.NRGBA{R: uint8(i >> 16), G: uint8(i >> 8), B: uint8(i), A: 0xFF}, nil
	}
	expand := func(x uint64) uint8 { return 0x11 * uint8(x&0x0F) }
	return color.NRGBA{R: expand(i >> 8), G: expand(i >> 4), B: expand(i), A: 0xFF}, nil
}

// Fingerprint describes settings which shape raster given to encoder.
// Limits are left out as they only decide whether file loads at all.
func (c Config) Fingerprint() string {
	bg := strings.ToLower(c.Background)
	if col, err := ParseColor(c.Background); err == nil {
		bg = fmt.Sprintf("#%02x%02x%02x", col.R, col.G, col.B)
	}
	if c.SampleWidth <= 0 || c.SampleHeight <= 0 {
		return "full;bg=" + bg
	}
	f := strings.ToLower(c.Filter)
	if f == "" {
		f = "lanczos"
	}
	return fmt.Sprintf("%dx%d;%s;bg=%s", c.SampleWidth, c.SampleHeight, f, bg)
}
