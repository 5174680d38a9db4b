package core

import "image/color"

// RGB is an opaque 24-bit color used for cell backgrounds and text.
// It is a plain value type so VisualSpec stays comparable.
type RGB struct {
	R, G, B uint8
}

// RGBA converts the color to the standard library representation.
func (c RGB) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xFF}
}

// Palette shared by the games.
var (
	Black       = RGB{0, 0, 0}
	White       = RGB{255, 255, 255}
	Red         = RGB{255, 0, 0}
	DarkRed     = RGB{128, 0, 0}
	Green       = RGB{0, 128, 0}
	BrightGreen = RGB{0, 255, 0}
	DarkGreen   = RGB{0, 100, 0}
	Blue        = RGB{0, 0, 255}
	Navy        = RGB{0, 0, 128}
	Yellow      = RGB{255, 255, 0}
	Gold        = RGB{255, 215, 0}
	Orange      = RGB{255, 165, 0}
	OrangeRed   = RGB{255, 69, 0}
	LightBlue   = RGB{173, 216, 230}
	SkyBlue     = RGB{135, 206, 250}
	SteelBlue   = RGB{70, 130, 180}
	Brown       = RGB{139, 69, 19}
	Gray        = RGB{100, 100, 100}
	DarkGray    = RGB{169, 169, 169}
	LightGray   = RGB{200, 200, 200}
	Charcoal    = RGB{30, 30, 30}
	Graphite    = RGB{50, 50, 50}
)
