package imageio

import (
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"golang.org/x/xerrors"

	. "blurhash/lib/logx"
)

type Loader struct {
	cfg    Config
	filter imaging.ResampleFilter
	bg     *color.NRGBA
	log    Logger
}

func NewLoader(cfg Config, lx LoggerX) (*Loader, error) {
	l := &Loader{cfg: cfg, log: NewLogToX(lx, "imageio")}
	f, err := ParseFilter(cfg.Filter)
	if err != nil {
		return nil, err
	}
	l.filter = f
	if cfg.Background != "" {
		c, err := ParseColor(cfg.Background)
		if err != nil {
			return nil, xerrors.Errorf("background %q: %w", cfg.Background, err)
		}
		l.bg = &c
	}
	return l, nil
}

// Fingerprint returns Fingerprint of loader config.
func (l *Loader) Fingerprint() string {
	return l.cfg.Fingerprint()
}

// Load reads and decodes image file at path.
// All failures are reported as *Error matching ErrImageLoad.
func (l *Loader) Load(path string) (Raster, error) {
	f, err := os.Open(path)
	if err != nil {
		return Raster{}, loadError(path, err)
	}
	defer f.Close()

	if l.cfg.MaxFileSize > 0 {
		st, err := f.Stat()
		if err != nil {
			return Raster{}, loadError(path, err)
		}
		if st.Size() > l.cfg.MaxFileSize {
			l.log.LogPrintf(DEBUG, "%q: size %d over limit", path, st.Size())
			return Raster{}, loadError(path, errTooLarge)
		}
	}

	r, err := l.decode(f)
	if err != nil {
		return Raster{}, loadError(path, err)
	}
	return r, nil
}

// Decode is like Load but reads from rs; name is used only in errors.
func (l *Loader) Decode(rs io.ReadSeeker, name string) (Raster, error) {
	r, err := l.decode(rs)
	if err != nil {
		return Raster{}, loadError(name, err)
	}
	return r, nil
}

func (l *Loader) decode(rs io.ReadSeeker) (Raster, error) {
	imgcfg, cfgfmt, err := image.DecodeConfig(rs)
	if err != nil {
		return Raster{}, err
	}
	switch cfgfmt {
	case "jpeg", "png", "gif", "webp", "bmp", "tiff":
		l.log.LogPrintf(DEBUG, "detected format %q %dx%d",
			cfgfmt, imgcfg.Width, imgcfg.Height)
	default:
		return Raster{}, xerrors.Errorf("%w: %q", errUnsupportedFormat, cfgfmt)
	}

	if _, err = rs.Seek(0, io.SeekStart); err != nil {
		return Raster{}, err
	}
	orient := exifOrient(rs)
	w, h := orientedSize(orient, imgcfg.Width, imgcfg.Height)

	if (l.cfg.MaxWidth > 0 && w > l.cfg.MaxWidth) ||
		(l.cfg.MaxHeight > 0 && h > l.cfg.MaxHeight) ||
		(l.cfg.MaxPixels > 0 && w*h > l.cfg.MaxPixels) {

		l.log.LogPrintf(DEBUG, "%dx%d constrained by limits", w, h)
		return Raster{}, errTooLarge
	}

	if _, err = rs.Seek(0, io.SeekStart); err != nil {
		return Raster{}, err
	}
	oimg, _, err := image.Decode(rs)
	if err != nil {
		return Raster{}, err
	}

	var img *image.NRGBA
	sw, sh := orientedSize(orient, l.cfg.SampleWidth, l.cfg.SampleHeight)
	if sw > 0 && sh > 0 {
		// high frequencies are thrown away anyway
		img = imaging.Fit(oimg, sw, sh, l.filter)
	} else {
		img = imaging.Clone(oimg)
	}
	// rotating after shrinking costs less
	img = applyOrient(orient, img)

	if l.bg != nil {
		sz := img.Bounds().Size()
		img = imaging.Overlay(imaging.New(sz.X, sz.Y, *l.bg), img, image.Pt(0, 0), 1.0)
	}

	l.log.LogPrintf(DEBUG, "orientation %d, sampled to %dx%d",
		orient, img.Bounds().Dx(), img.Bounds().Dy())

	return FromImage(img), nil
}
