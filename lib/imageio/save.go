package imageio

import (
	"image"

	"github.com/disintegration/imaging"
)

// Save writes packed pixel buffer to path. Format is picked from extension.
// channels is 3 (RGB) or 4 (RGBA).
func Save(path string, width, height, channels int, pix []byte) error {
	if channels != 3 && channels != 4 {
		return writeError(path, errBadChannels)
	}
	if width <= 0 || height <= 0 || len(pix) < width*height*channels {
		return writeError(path, errBadGeometry)
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	if channels == 4 {
		copy(img.Pix, pix)
	} else {
		for i, j := 0, 0; i < width*height*3; i, j = i+3, j+4 {
			img.Pix[j+0] = pix[i+0]
			img.Pix[j+1] = pix[i+1]
			img.Pix[j+2] = pix[i+2]
			img.Pix[j+3] = 0xFF
		}
	}
	return SaveImage(path, img)
}

func SaveImage(path string, img image.Image) error {
	if err := imaging.Save(img, path); err != nil {
		return writeError(path, err)
	}
	return nil
}
