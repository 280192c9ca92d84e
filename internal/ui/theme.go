package ui

import (
	"fmt"
	"math"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-starfield/internal/starfield"
)

// Theme is a color scheme for the explorer.
type Theme struct {
	Name   string
	Text   lipgloss.Color
	Dim    lipgloss.Color
	Accent lipgloss.Color
	Ring   lipgloss.Color

	// stars maps a palette color to its on-screen color.
	stars func(starfield.Color) lipgloss.Color
}

// StarColor returns the color a star of palette color c is drawn in.
func (t Theme) StarColor(c starfield.Color) lipgloss.Color {
	if t.stars == nil {
		return lipgloss.Color(c.Hex())
	}
	return t.stars(c)
}

var themes = []Theme{
	{
		Name:   "pico",
		Text:   "#FFFFFF",
		Dim:    "60",
		Accent: "#29ADFF",
		Ring:   "#FFFFFF",
	},
	{
		Name:   "mono",
		Text:   "252",
		Dim:    "240",
		Accent: "255",
		Ring:   "255",
		stars:  grayscale,
	},
	{
		Name:   "dusk",
		Text:   "#C2C3C7",
		Dim:    "#5F574F",
		Accent: "#FF77A8",
		Ring:   "#FFF1E8",
		stars:  dimmed,
	},
}

// ThemeNames lists the available themes in cycle order.
func ThemeNames() []string {
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}

// ThemeByName looks up a theme.
func ThemeByName(name string) (Theme, bool) {
	for _, t := range themes {
		if t.Name == name {
			return t, true
		}
	}
	return Theme{}, false
}

// nextTheme returns the theme after name, wrapping around.
func nextTheme(name string) Theme {
	for i, t := range themes {
		if t.Name == name {
			return themes[(i+1)%len(themes)]
		}
	}
	return themes[0]
}

// grayscale maps a color onto the 24-step xterm gray ramp by luminance.
func grayscale(c starfield.Color) lipgloss.Color {
	r, g, b := c.RGB()
	lum := 0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(b)
	return lipgloss.Color(fmt.Sprintf("%d", 232+int(lum/256*24)))
}

// dimmed darkens a color to 60% brightness.
func dimmed(c starfield.Color) lipgloss.Color {
	r, g, b := c.RGB()
	scale := func(v uint8) int { return int(math.Round(float64(v) * 0.6)) }
	return lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", scale(r), scale(g), scale(b)))
}
