package colour

import (
	"strings"

	"github.com/samber/lo"
)

// Colour presets the gateway accepts as a hex string. These are opaque identifiers, the
// gateway picks the actual chromaticity.
const (
	Blue            = "4a418a"
	LightBlue       = "6c83ba"
	SaturatedPurple = "8f2686"
	Lime            = "a9d62b"
	LightPurple     = "c984bb"
	Yellow          = "d6e44b"
	SaturatedPink   = "d9337c"
	DarkPeach       = "da5d41"
	SaturatedRed    = "dc4b31"
	ColdSky         = "dcf0f8"
	Pink            = "e491af"
	Peach           = "e57345"
	WarmAmber       = "e78834"
	LightPink       = "e8bedd"
	CoolDaylight    = "eaf6fb"
	Candlelight     = "ebb63e"
	WarmGlow        = "efd275"
	WarmWhite       = "f1e0b5"
	Sunrise         = "f2eccf"
	CoolWhite       = "f5faf6"
)

// White spectrum presets
const (
	TemperatureCold   = "f5faf6"
	TemperatureNormal = "f1e0b5"
	TemperatureWarm   = "efd275"
)

var Palette = map[string]string{
	"blue":             Blue,
	"light_blue":       LightBlue,
	"saturated_purple": SaturatedPurple,
	"lime":             Lime,
	"light_purple":     LightPurple,
	"yellow":           Yellow,
	"saturated_pink":   SaturatedPink,
	"dark_peach":       DarkPeach,
	"saturated_red":    SaturatedRed,
	"cold_sky":         ColdSky,
	"pink":             Pink,
	"peach":            Peach,
	"warm_amber":       WarmAmber,
	"light_pink":       LightPink,
	"cool_daylight":    CoolDaylight,
	"candlelight":      Candlelight,
	"warm_glow":        WarmGlow,
	"warm_white":       WarmWhite,
	"sunrise":          Sunrise,
	"cool_white":       CoolWhite,
}

var TemperaturePalette = map[string]string{
	"cold":   TemperatureCold,
	"normal": TemperatureNormal,
	"warm":   TemperatureWarm,
}

// LookupHex finds a preset by name in the colour palette, then the temperature palette.
func LookupHex(name string) (string, bool) {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "_"))
	if hex, ok := Palette[key]; ok {
		return hex, true
	}
	hex, ok := TemperaturePalette[key]
	return hex, ok
}

// NameOf returns the colour palette name for a preset hex string. Temperature presets
// share their hex values with colour presets so they resolve to the colour name.
func NameOf(hex string) (string, bool) {
	hex = strings.ToLower(strings.TrimPrefix(hex, "#"))
	return lo.FindKey(Palette, hex)
}
