package core

import "strings"

// Color is a foreground or background colour for a screen cell.
// Platforms translate it to ANSI codes or RGBA.
type Color uint8

// Named colours available to scripts.
const (
	ColorDefault Color = iota
	ColorBlack
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorOrange
	ColorGray
	ColorLightGray
)

var colorNames = map[Color]string{
	ColorDefault:   "default",
	ColorBlack:     "black",
	ColorRed:       "red",
	ColorGreen:     "green",
	ColorYellow:    "yellow",
	ColorBlue:      "blue",
	ColorMagenta:   "magenta",
	ColorCyan:      "cyan",
	ColorWhite:     "white",
	ColorOrange:    "orange",
	ColorGray:      "gray",
	ColorLightGray: "lightgray",
}

// String returns the colour's script name.
func (c Color) String() string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	return "unknown"
}

// ParseColor looks a colour up by name, case-insensitively.
// "grey" is accepted as an alias of "gray".
func ParseColor(name string) (Color, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, "grey", "gray")
	for c, n := range colorNames {
		if n == name {
			return c, true
		}
	}
	return ColorDefault, false
}

// ColorNames returns all colour names in declaration order.
func ColorNames() []string {
	names := make([]string, 0, len(colorNames))
	for c := ColorDefault; c <= ColorLightGray; c++ {
		names = append(names, colorNames[c])
	}
	return names
}
