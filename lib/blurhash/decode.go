package blurhash

import (
	"math"

	"blurhash/lib/utils/base83"
)

// Decode renders hash into out as width x height image
// with channels (3 for RGB, 4 for RGBA) bytes per pixel, rows packed.
// punch values above 1 boost contrast of AC terms; values below 1 are treated as 1.
// Contents of out are unspecified if error is returned.
func Decode(hash string, width, height, punch, channels int, out []byte) error {
	numX, numY, err := header(hash)
	if err != nil {
		return err
	}
	if channels != 3 && channels != 4 {
		return ErrInvalidChannels
	}
	if width <= 0 || height <= 0 {
		return ErrInvalidDimensions
	}
	if len(out) < width*height*channels {
		return ErrShortBuffer
	}

	colors, err := decodeFactors(hash, numX, numY, punch)
	if err != nil {
		return err
	}

	// cos tables: cosX[x*numX+i], cosY[y*numY+j]
	cosX := make([]float64, width*numX)
	for x := 0; x < width; x++ {
		for i := 0; i < numX; i++ {
			cosX[x*numX+i] = math.Cos(math.Pi * float64(x) * float64(i) / float64(width))
		}
	}
	cosY := make([]float64, height*numY)
	for y := 0; y < height; y++ {
		for j := 0; j < numY; j++ {
			cosY[y*numY+j] = math.Cos(math.Pi * float64(y) * float64(j) / float64(height))
		}
	}

	bytesPerRow := width * channels
	for y := 0; y < height; y++ {
		cy := cosY[y*numY : (y+1)*numY]
		row := out[y*bytesPerRow : (y+1)*bytesPerRow]
		for x := 0; x < width; x++ {
			cx := cosX[x*numX : (x+1)*numX]
			var r, g, b float64
			for j := 0; j < numY; j++ {
				for i := 0; i < numX; i++ {
					basis := cx[i] * cy[j]
					c := colors[i+j*numX]
					r += c.r * basis
					g += c.g * basis
					b += c.b * basis
				}
			}
			px := row[x*channels:]
			px[0] = LinearToSRGB(r)
			px[1] = LinearToSRGB(g)
			px[2] = LinearToSRGB(b)
			if channels == 4 {
				px[3] = 255
			}
		}
	}
	return nil
}

// DecodeAlloc is like Decode but allocates output buffer.
func DecodeAlloc(hash string, width, height, punch, channels int) ([]byte, error) {
	if _, _, err := header(hash); err != nil {
		return nil, err
	}
	if channels != 3 && channels != 4 {
		return nil, ErrInvalidChannels
	}
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	out := make([]byte, width*height*channels)
	if err := Decode(hash, width, height, punch, channels, out); err != nil {
		return nil, err
	}
	return out, nil
}

// decodeFactors dequantizes all numX*numY color triples.
// Hash length must be already validated.
func decodeFactors(hash string, numX, numY, punch int) ([]factor, error) {
	if punch < 1 {
		punch = 1
	}

	qmax, err := base83.DecodeInt(hash[1:2])
	if err != nil {
		return nil, ErrInvalidQuantizedMaxValue
	}
	maxValue := float64(qmax+1) / 166

	colors := make([]factor, numX*numY)

	dc, err := base83.DecodeInt(hash[2:6])
	if err != nil {
		return nil, ErrInvalidDC
	}
	colors[0] = decodeDC(dc)

	acScale := maxValue * float64(punch)
	for i := 1; i < len(colors); i++ {
		v, err := base83.DecodeInt(hash[4+i*2 : 6+i*2])
		if err != nil {
			return nil, ErrInvalidAC
		}
		colors[i] = decodeAC(v, acScale)
	}
	return colors, nil
}

func decodeDC(v int) factor {
	r := v >> 16
	var lr float64
	if r < len(srgbToLinear) {
		lr = srgbToLinear[r]
	} else {
		lr = srgbIntToLinear(r)
	}
	return factor{
		r: lr,
		g: SRGBToLinear(uint8(v >> 8)),
		b: SRGBToLinear(uint8(v)),
	}
}

func dequantAC(q int, scale float64) float64 {
	return SignPow(float64(q-9)/9, 2.0) * scale
}

func decodeAC(v int, scale float64) factor {
	return factor{
		r: dequantAC(v/(19*19), scale),
		g: dequantAC((v/19)%19, scale),
		b: dequantAC(v%19, scale),
	}
}
