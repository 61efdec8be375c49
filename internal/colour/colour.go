// Package colour converts between the colour representations a light understands:
// RGB, hue/saturation and CIE 1931 xy chromaticity in device units.
package colour

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	MaxHue        = 65535
	MaxSaturation = 254
	// xy chromaticity is sent to the gateway scaled from 0..1 to 0..MaxXY
	MaxXY = 65535
)

type RGB struct {
	R, G, B uint8
}

// XY is a chromaticity coordinate in device units (0-65535).
type XY struct {
	X, Y int
}

type HS struct {
	Hue        int
	Saturation int
}

// Wide RGB D65, as used by the gateway firmware
var (
	rgbToXYZ = [3][3]float64{
		{0.664511, 0.154324, 0.162028},
		{0.283881, 0.668433, 0.047685},
		{0.000088, 0.072310, 0.986039},
	}
	xyzToRGB = [3][3]float64{
		{1.656492, -0.354851, -0.255038},
		{-0.707196, 1.655397, 0.036152},
		{0.051713, -0.121364, 1.011530},
	}
)

// D65 white, used for black where chromaticity is undefined
const whiteX, whiteY = 0.3127, 0.3290

// RGBToXY converts an sRGB colour to device xy, clamped into the default gamut.
func RGBToXY(c RGB) XY {
	return DefaultGamut.RGBToXY(c)
}

// RGBToXY converts an sRGB colour to device xy. Points the gamut can't reproduce are
// moved to the closest point on the gamut boundary.
func (g Gamut) RGBToXY(c RGB) XY {
	r, gr, b := toColorful(c).LinearRgb()

	X := r*rgbToXYZ[0][0] + gr*rgbToXYZ[0][1] + b*rgbToXYZ[0][2]
	Y := r*rgbToXYZ[1][0] + gr*rgbToXYZ[1][1] + b*rgbToXYZ[1][2]
	Z := r*rgbToXYZ[2][0] + gr*rgbToXYZ[2][1] + b*rgbToXYZ[2][2]

	x, y := whiteX, whiteY
	if sum := X + Y + Z; sum > 0 {
		x, y = X/sum, Y/sum
	}

	x, y = g.Clamp(x, y)
	return XY{X: toDeviceUnits(x), Y: toDeviceUnits(y)}
}

// XYToRGB converts device xy back to sRGB at full luminance; the brightest channel is
// always 255 since brightness is carried separately.
func XYToRGB(c XY) RGB {
	x := float64(c.X) / MaxXY
	y := float64(c.Y) / MaxXY
	if y <= 0 {
		return RGB{255, 255, 255}
	}

	X := x / y
	Y := 1.0
	Z := (1 - x - y) / y

	r := math.Max(0, X*xyzToRGB[0][0]+Y*xyzToRGB[0][1]+Z*xyzToRGB[0][2])
	g := math.Max(0, X*xyzToRGB[1][0]+Y*xyzToRGB[1][1]+Z*xyzToRGB[1][2])
	b := math.Max(0, X*xyzToRGB[2][0]+Y*xyzToRGB[2][1]+Z*xyzToRGB[2][2])

	peak := math.Max(r, math.Max(g, b))
	if peak == 0 {
		return RGB{}
	}

	out := colorful.LinearRgb(r/peak, g/peak, b/peak).Clamped()
	rr, gg, bb := out.RGB255()
	return RGB{rr, gg, bb}
}

// HSToRGB converts hue (0-65535) and saturation (0-254) to RGB at full value.
func HSToRGB(hue int, saturation int) RGB {
	h := math.Mod(float64(clamp(hue, 0, MaxHue))/MaxHue*360, 360)
	s := float64(clamp(saturation, 0, MaxSaturation)) / MaxSaturation

	r, g, b := colorful.Hsv(h, s, 1).Clamped().RGB255()
	return RGB{r, g, b}
}

// RGBToHS is the inverse of HSToRGB; the value component is dropped.
func RGBToHS(c RGB) HS {
	h, s, _ := toColorful(c).Hsv()
	return HS{
		Hue:        clamp(int(math.Round(h/360*MaxHue)), 0, MaxHue),
		Saturation: clamp(int(math.Round(s*MaxSaturation)), 0, MaxSaturation),
	}
}

func (c RGB) XY() XY {
	return RGBToXY(c)
}

func (c RGB) HS() HS {
	return RGBToHS(c)
}

func (c XY) RGB() RGB {
	return XYToRGB(c)
}

func (c HS) RGB() RGB {
	return HSToRGB(c.Hue, c.Saturation)
}

func toColorful(c RGB) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func toDeviceUnits(v float64) int {
	return clamp(int(math.Round(v*MaxXY)), 0, MaxXY)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
