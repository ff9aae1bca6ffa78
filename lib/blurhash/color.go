package blurhash

import "math"

var srgbToLinear [256]float64

func init() {
	for i := range srgbToLinear {
		srgbToLinear[i] = srgbIntToLinear(i)
	}
}

// srgbIntToLinear does not limit v to a byte; red of DC field can exceed 255.
func srgbIntToLinear(v int) float64 {
	f := float64(v) / 255
	if f <= 0.04045 {
		return f / 12.92
	}
	return math.Pow((f+0.055)/1.055, 2.4)
}

// SRGBToLinear converts sRGB-encoded channel byte to linear light in [0,1].
func SRGBToLinear(v uint8) float64 {
	return srgbToLinear[v]
}

// LinearToSRGB converts linear light value to sRGB byte.
// Input is clamped to [0,1] first.
func LinearToSRGB(v float64) uint8 {
	v = clamp(v, 0, 1)
	var x float64
	if v <= 0.0031308 {
		x = v*12.92*255 + 0.5
	} else {
		x = (1.055*math.Pow(v, 1/2.4)-0.055)*255 + 0.5
	}
	return uint8(clamp(x, 0, 255))
}

// SignPow raises |v| to e keeping sign of v.
func SignPow(v, e float64) float64 {
	return math.Copysign(math.Pow(math.Abs(v), e), v)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
