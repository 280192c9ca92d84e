package starfield

import "strconv"

// Color is a star color as a "#RRGGBB" hex string. The zero value means no
// color (the cell has no star).
type Color string

// Star palette, in draw order. The index drawn from the third sample
// selects from this list, so the order is part of the generation contract.
const (
	ColorYellow   Color = "#FFEC27"
	ColorGreen    Color = "#00E436"
	ColorOrange   Color = "#FFA300"
	ColorBlue     Color = "#29ADFF"
	ColorPeach    Color = "#FFCCAA"
	ColorBrown    Color = "#AB5236"
	ColorLavender Color = "#83769C"
	ColorRed      Color = "#FF004D"
)

var palette = [...]Color{
	ColorYellow,
	ColorGreen,
	ColorOrange,
	ColorBlue,
	ColorPeach,
	ColorBrown,
	ColorLavender,
	ColorRed,
}

// Palette returns a copy of the ordered star palette.
func Palette() []Color {
	out := make([]Color, len(palette))
	copy(out, palette[:])
	return out
}

// PaletteIndex returns the position of c in the palette, or -1.
func PaletteIndex(c Color) int {
	for i, p := range palette {
		if p == c {
			return i
		}
	}
	return -1
}

// Hex returns the color as "#RRGGBB".
func (c Color) Hex() string {
	return string(c)
}

// RGB returns the color components. Malformed colors decode as white.
func (c Color) RGB() (r, g, b uint8) {
	s := string(c)
	if len(s) != 7 || s[0] != '#' {
		return 255, 255, 255
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return 255, 255, 255
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v)
}
