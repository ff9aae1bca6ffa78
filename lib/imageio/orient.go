package imageio

import (
	"image"
	"io"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
)

// exifOrient returns EXIF orientation tag value, 1 if missing.
func exifOrient(r io.Reader) int {
	x, err := exif.Decode(r)
	if err != nil || x == nil {
		return 1
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil || tag == nil || tag.Count == 0 {
		return 1
	}
	if i, err := tag.Int(0); err == nil && i >= 1 && i <= 8 {
		return i
	}
	return 1
}

// orientedSize returns dimensions as displayed after applying orientation.
func orientedSize(orient int, w, h int) (int, int) {
	if orient >= 5 && orient <= 8 {
		return h, w
	}
	return w, h
}

func applyOrient(orient int, img *image.NRGBA) *image.NRGBA {
	switch orient {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.Transpose(img)
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.Transverse(img)
	case 8:
		return imaging.Rotate90(img)
	}
	return img
}
