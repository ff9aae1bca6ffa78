package imageio

import (
	"image"

	"github.com/disintegration/imaging"

	"blurhash/lib/blurhash"
)

// Raster is packed 8bit sRGB image, 3 bytes per pixel.
type Raster struct {
	Width, Height int
	Stride        int
	Pix           []byte
}

// FromImage converts any image to Raster, dropping alpha.
func FromImage(img image.Image) Raster {
	n, ok := img.(*image.NRGBA)
	if !ok || n.Rect.Min != (image.Point{}) {
		n = imaging.Clone(img)
	}
	w, h := n.Rect.Dx(), n.Rect.Dy()
	r := Raster{Width: w, Height: h, Stride: w * 3, Pix: make([]byte, w*h*3)}
	for y := 0; y < h; y++ {
		src := n.Pix[y*n.Stride:]
		dst := r.Pix[y*r.Stride:]
		for x := 0; x < w; x++ {
			dst[3*x+0] = src[4*x+0]
			dst[3*x+1] = src[4*x+1]
			dst[3*x+2] = src[4*x+2]
		}
	}
	return r
}

// Encode computes blurhash of r.
func (r Raster) Encode(xComponents, yComponents int) (string, error) {
	return blurhash.Encode(xComponents, yComponents, r.Width, r.Height, r.Pix, r.Stride)
}

// DecodeImage renders hash into new width x height image.
func DecodeImage(hash string, width, height, punch int) (*image.NRGBA, error) {
	if _, _, err := blurhash.Components(hash); err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, blurhash.ErrInvalidDimensions
	}
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	// NRGBA rows are packed RGBA which is what 4 channel decode produces
	err := blurhash.Decode(hash, width, height, punch, 4, img.Pix)
	if err != nil {
		return nil, err
	}
	return img, nil
}
