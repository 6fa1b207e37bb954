package core

import "strings"

// Color represents a foreground color for a screen cell and doubles as the
// cosmetic identity tag of a ball. Uses ANSI 256-color codes when rendered.
type Color uint8

// Predefined colors. The ball palette matches the sprite set of the game.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorPurple
	ColorOrange
	ColorPink
	ColorWhite
	ColorGray
)

var colorNames = map[Color]string{
	ColorDefault: "default",
	ColorRed:     "red",
	ColorGreen:   "green",
	ColorYellow:  "yellow",
	ColorBlue:    "blue",
	ColorPurple:  "purple",
	ColorOrange:  "orange",
	ColorPink:    "pink",
	ColorWhite:   "white",
	ColorGray:    "gray",
}

// BallColors lists the colors a ball may carry.
var BallColors = []Color{ColorYellow, ColorRed, ColorBlue, ColorPurple, ColorGreen, ColorOrange, ColorPink}

// String returns the lower-case color name.
func (c Color) String() string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	return "unknown"
}

// ParseBallColor converts a color name into one of the ball colors.
func ParseBallColor(name string) (Color, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, c := range BallColors {
		if colorNames[c] == name {
			return c, true
		}
	}
	return ColorDefault, false
}
