package blurhash

import (
	"math"

	"blurhash/lib/utils/base83"
)

const (
	MaxComponents = 9
	// MaxHashLength is length of 9x9 components hash, the longest possible.
	MaxHashLength = 4 + 2*MaxComponents*MaxComponents
)

// EncodedLen returns length of hash with given component counts.
func EncodedLen(xComponents, yComponents int) int {
	return 4 + 2*xComponents*yComponents
}

type factor struct {
	r, g, b float64
}

func validComponents(x, y int) bool {
	return x >= 1 && x <= MaxComponents && y >= 1 && y <= MaxComponents
}

// Encode computes blurhash of packed 8bit RGB image.
// Row y starts at rgb[y*stride].
func Encode(
	xComponents, yComponents, width, height int, rgb []byte, stride int) (
	string, error) {

	if !validComponents(xComponents, yComponents) {
		return "", ErrInvalidComponentCount
	}
	dst := make([]byte, 0, EncodedLen(xComponents, yComponents))
	dst, err := AppendEncode(dst, xComponents, yComponents, width, height, rgb, stride)
	if err != nil {
		return "", err
	}
	return string(dst), nil
}

// AppendEncode is like Encode but appends hash to dst.
// dst with MaxHashLength free capacity never reallocates.
// On error dst is returned unmodified.
func AppendEncode(
	dst []byte, xComponents, yComponents, width, height int, rgb []byte,
	stride int) ([]byte, error) {

	if !validComponents(xComponents, yComponents) {
		return dst, ErrInvalidComponentCount
	}
	if width <= 0 || height <= 0 {
		return dst, ErrInvalidDimensions
	}
	if stride < width*3 || len(rgb) < (height-1)*stride+width*3 {
		return dst, ErrShortBuffer
	}

	factors := multiplyBasis(xComponents, yComponents, width, height, rgb, stride)
	dc := factors[0]
	ac := factors[1:]

	sizeFlag := (xComponents - 1) + (yComponents-1)*9
	dst = base83.AppendInt(dst, sizeFlag, 1)

	maxValue := 1.0
	if len(ac) > 0 {
		actualMax := 0.0
		for _, f := range ac {
			actualMax = math.Max(actualMax, math.Abs(f.r))
			actualMax = math.Max(actualMax, math.Abs(f.g))
			actualMax = math.Max(actualMax, math.Abs(f.b))
		}
		q := int(clamp(math.Floor(actualMax*166-0.5), 0, 82))
		maxValue = float64(q+1) / 166
		dst = base83.AppendInt(dst, q, 1)
	} else {
		dst = base83.AppendInt(dst, 0, 1)
	}

	dst = base83.AppendInt(dst, encodeDC(dc), 4)
	for _, f := range ac {
		dst = base83.AppendInt(dst, encodeAC(f, maxValue), 2)
	}
	return dst, nil
}

// multiplyBasis projects image onto first xc*yc cosine basis functions.
// Result is row-major by (y frequency, x frequency); index 0 is DC.
func multiplyBasis(xc, yc, width, height int, rgb []byte, stride int) []factor {
	factors := make([]factor, xc*yc)

	// cos tables: cosX[i*width+x], cosY[j*height+y]
	cosX := make([]float64, xc*width)
	for i := 0; i < xc; i++ {
		for x := 0; x < width; x++ {
			cosX[i*width+x] = math.Cos(math.Pi * float64(i) * float64(x) / float64(width))
		}
	}
	cosY := make([]float64, yc*height)
	for j := 0; j < yc; j++ {
		for y := 0; y < height; y++ {
			cosY[j*height+y] = math.Cos(math.Pi * float64(j) * float64(y) / float64(height))
		}
	}

	for y := 0; y < height; y++ {
		row := rgb[y*stride:]
		for x := 0; x < width; x++ {
			r := SRGBToLinear(row[3*x+0])
			g := SRGBToLinear(row[3*x+1])
			b := SRGBToLinear(row[3*x+2])
			for j := 0; j < yc; j++ {
				cy := cosY[j*height+y]
				fs := factors[j*xc : (j+1)*xc]
				for i := range fs {
					basis := cy * cosX[i*width+x]
					fs[i].r += basis * r
					fs[i].g += basis * g
					fs[i].b += basis * b
				}
			}
		}
	}

	area := float64(width * height)
	for k := range factors {
		scale := 2 / area
		if k == 0 {
			scale = 1 / area
		}
		factors[k].r *= scale
		factors[k].g *= scale
		factors[k].b *= scale
	}
	return factors
}

func encodeDC(f factor) int {
	r := int(LinearToSRGB(f.r))
	g := int(LinearToSRGB(f.g))
	b := int(LinearToSRGB(f.b))
	return r<<16 | g<<8 | b
}

func quantAC(v, maxValue float64) int {
	return int(clamp(math.Floor(SignPow(v/maxValue, 0.5)*9+9.5), 0, 18))
}

func encodeAC(f factor, maxValue float64) int {
	return quantAC(f.r, maxValue)*19*19 +
		quantAC(f.g, maxValue)*19 +
		quantAC(f.b, maxValue)
}
