// Package draw renders the playfield: a render-agnostic Surface boundary
// and its terminal implementation built on a half-block Canvas.
package draw

import (
	"fmt"
	"image/color"
)

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Surface accepts draw primitives in logical playfield coordinates. It never
// reports errors and is never read back from.
type Surface interface {
	FillCircle(cx, cy, r float64, c color.Color)
	FillRect(x, y, w, h float64, c color.Color)
	StrokeRect(x, y, w, h float64, c color.Color)
	Text(x, y float64, s string, c color.Color)
}

// Palette used across the game.
var (
	ColorWhite      = color.RGBA{0xEE, 0xEE, 0xEE, 0xFF}
	ColorRed        = color.RGBA{0xE5, 0x39, 0x35, 0xFF}
	ColorGreen      = color.RGBA{0x66, 0xBB, 0x6A, 0xFF}
	ColorYellow     = color.RGBA{0xFF, 0xD5, 0x4F, 0xFF}
	ColorCyan       = color.RGBA{0x4D, 0xD0, 0xE1, 0xFF}
	ColorGray       = color.RGBA{0x9E, 0x9E, 0x9E, 0xFF}
	ColorPanel      = color.RGBA{0x10, 0x12, 0x1A, 0xF0}
	ColorBackground = color.RGBA{0x05, 0x07, 0x0C, 0xFF}
)

// Hex formats c as #rrggbb.
func Hex(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}

// IsDark reports whether c is dark enough to count as background on a
// monochrome display.
func IsDark(c color.Color) bool {
	r, g, b, a := c.RGBA()
	if a == 0 {
		return true
	}
	// Rec. 601 luma on 16-bit channels.
	luma := (299*r + 587*g + 114*b) / 1000
	return luma < 0x3000
}
