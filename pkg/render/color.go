package render

import (
	"image/color"

	"github.com/zhvrnkov/software-renderer/pkg/math3d"
)

// Color is an alias for color.RGBA for convenience.
type Color = color.RGBA

// Colors for convenience
var (
	ColorBlack   = color.RGBA{0, 0, 0, 255}
	ColorWhite   = color.RGBA{255, 255, 255, 255}
	ColorRed     = color.RGBA{255, 0, 0, 255}
	ColorGreen   = color.RGBA{0, 255, 0, 255}
	ColorBlue    = color.RGBA{0, 0, 255, 255}
	ColorYellow  = color.RGBA{255, 255, 0, 255}
	ColorCyan    = color.RGBA{0, 255, 255, 255}
	ColorMagenta = color.RGBA{255, 0, 255, 255}
	ColorGray    = color.RGBA{128, 128, 128, 255}
)

// RGB creates a color from RGB values.
func RGB(r, g, b uint8) color.RGBA {
	return color.RGBA{r, g, b, 255}
}

// RGBA creates a color from RGBA values.
func RGBA(r, g, b, a uint8) color.RGBA {
	return color.RGBA{r, g, b, a}
}

// RGBFloat creates a color from float channels in [0, 1].
// Channels are clamped before quantizing to 8 bits.
func RGBFloat(rgb math3d.Vec3) Color {
	c := rgb.Clamp01()
	return RGB(
		uint8(c.X*255+0.5),
		uint8(c.Y*255+0.5),
		uint8(c.Z*255+0.5),
	)
}

// FloatRGB converts a color back to float channels in [0, 1].
func FloatRGB(c Color) math3d.Vec3 {
	return math3d.V3(
		float64(c.R)/255,
		float64(c.G)/255,
		float64(c.B)/255,
	)
}
