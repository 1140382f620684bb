package draw

import (
	"bytes"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
)

// Canvas is a drawing buffer with 2x vertical resolution using half-block characters.
// Supports scaling from logical coordinates to actual terminal pixels.
type Canvas struct {
	termWidth      int    // Actual terminal columns
	termHeight     int    // Actual terminal rows
	subPixelHeight int    // termHeight * 2
	pixels         []bool // Flat slice: [y * termWidth + x] - true if pixel is set

	// Scaling from logical to pixel coordinates
	logicalWidth  float64
	logicalHeight float64 // in sub-pixels
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// Offset for centering the render area when the terminal is larger than
	// the max resolution. 0-based terminal columns/rows to skip.
	offsetCol int
	offsetRow int

	renderBuf bytes.Buffer
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
// logicalWidth/Height define the coordinate space used by game objects.
// termWidth/Height are the actual terminal dimensions.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	if termWidth < 1 {
		termWidth = 1
	}
	if termHeight < 1 {
		termHeight = 1
	}
	subPixelHeight := termHeight * 2
	return &Canvas{
		termWidth:      termWidth,
		termHeight:     termHeight,
		subPixelHeight: subPixelHeight,
		pixels:         make([]bool, subPixelHeight*termWidth),
		logicalWidth:   logicalWidth,
		logicalHeight:  logicalHeight,
		scaleX:         float64(termWidth) / logicalWidth,
		scaleY:         float64(subPixelHeight) / logicalHeight,
	}
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	if termWidth < 1 {
		termWidth = 1
	}
	if termHeight < 1 {
		termHeight = 1
	}
	subPixelHeight := termHeight * 2

	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.pixels = make([]bool, subPixelHeight*termWidth)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
	}

	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(subPixelHeight) / c.logicalHeight
}

// SetOffset sets the column and row offset for centering the canvas.
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

func (c *Canvas) putPixel(x, y int, on bool) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = on
	}
}

// Pixel reports whether the pixel at terminal sub-pixel coordinates is set.
func (c *Canvas) Pixel(x, y int) bool {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return false
	}
	return c.pixels[y*c.termWidth+x]
}

// toPixel maps a logical point to the nearest terminal sub-pixel.
func (c *Canvas) toPixel(x, y float64) (int, int) {
	return int(math.Round(x * c.scaleX)), int(math.Round(y * c.scaleY))
}

// FillCircle fills the ellipse that a logical circle of radius r becomes
// after scaling. Circles smaller than one pixel collapse to a single pixel
// so bullets stay visible at any scale.
func (c *Canvas) FillCircle(cx, cy, r float64) {
	rx, ry := r*c.scaleX, r*c.scaleY
	if rx < 1 && ry < 1 {
		px, py := c.toPixel(cx, cy)
		c.putPixel(px, py, true)
		return
	}
	pcx, pcy := cx*c.scaleX, cy*c.scaleY
	for py := int(math.Floor(pcy - ry)); py <= int(math.Ceil(pcy+ry)); py++ {
		dy := (float64(py) + 0.5 - pcy) / ry
		if dy < -1 || dy > 1 {
			continue
		}
		half := rx * math.Sqrt(1-dy*dy)
		// Pixel centres inside [pcx-half, pcx+half].
		x0 := int(math.Ceil(pcx - half - 0.5))
		x1 := int(math.Floor(pcx + half - 0.5))
		for px := x0; px <= x1; px++ {
			c.putPixel(px, py, true)
		}
	}
}

// FillRect sets every pixel inside the rectangle.
func (c *Canvas) FillRect(x, y, w, h float64) {
	c.rect(x, y, w, h, true)
}

// ClearRect unsets every pixel inside the rectangle.
func (c *Canvas) ClearRect(x, y, w, h float64) {
	c.rect(x, y, w, h, false)
}

func (c *Canvas) rect(x, y, w, h float64, on bool) {
	x0 := int(math.Floor(x * c.scaleX))
	y0 := int(math.Floor(y * c.scaleY))
	x1 := int(math.Ceil((x + w) * c.scaleX))
	y1 := int(math.Ceil((y + h) * c.scaleY))
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			c.putPixel(px, py, on)
		}
	}
}

// StrokeRect draws a one pixel outline of a rectangle.
func (c *Canvas) StrokeRect(x, y, w, h float64) {
	x0, y0 := c.toPixel(x, y)
	x1, y1 := c.toPixel(x+w, y+h)
	for px := x0; px <= x1; px++ {
		c.putPixel(px, y0, true)
		c.putPixel(px, y1, true)
	}
	for py := y0; py <= y1; py++ {
		c.putPixel(x0, py, true)
		c.putPixel(x1, py, true)
	}
}

// Render writes the canvas as half-block characters. Every cell of every
// row is written (empty cells as spaces), so the previous frame is
// overwritten without clearing the terminal.
func (c *Canvas) Render(w io.Writer) error {
	c.renderBuf.Reset()
	c.renderBuf.Grow(c.termHeight * (c.termWidth*3 + 12))

	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomY := row*2 + 1
		bottomOffset := bottomY * c.termWidth

		c.renderBuf.WriteString(cursorTo(row+1+c.offsetRow, 1+c.offsetCol))
		for col := 0; col < c.termWidth; col++ {
			top := c.pixels[topOffset+col]
			bottom := bottomY < c.subPixelHeight && c.pixels[bottomOffset+col]

			switch {
			case top && bottom:
				c.renderBuf.WriteRune(BlockFull)
			case top:
				c.renderBuf.WriteRune(BlockUpperHalf)
			case bottom:
				c.renderBuf.WriteRune(BlockLowerHalf)
			default:
				c.renderBuf.WriteByte(BlockEmpty)
			}
		}
	}

	return writeChunked(w, c.renderBuf.Bytes())
}

// RenderBorder draws a box border around the canvas area when the terminal
// exceeds the max render resolution on either axis.
func (c *Canvas) RenderBorder(w io.Writer) {
	hasH := c.offsetCol >= 1
	hasV := c.offsetRow >= 1
	if !hasH && !hasV {
		return
	}

	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1

	var buf strings.Builder
	line := strings.Repeat("─", c.termWidth)
	if hasV {
		if hasH {
			buf.WriteString(cursorTo(top, left) + "┌" + line + "┐")
			buf.WriteString(cursorTo(bottom, left) + "└" + line + "┘")
		} else {
			buf.WriteString(cursorTo(top, c.offsetCol+1) + line)
			buf.WriteString(cursorTo(bottom, c.offsetCol+1) + line)
		}
	}
	if hasH {
		for row := c.offsetRow + 1; row <= c.offsetRow+c.termHeight; row++ {
			buf.WriteString(cursorTo(row, left) + "│" + cursorTo(row, right) + "│")
		}
	}

	io.WriteString(w, buf.String())
}

func cursorTo(row, col int) string {
	return termenv.CSI + strconv.Itoa(row) + ";" + strconv.Itoa(col) + "H"
}

// TerminalWidth returns the actual terminal column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the actual terminal row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// LogicalToTerminal converts logical coordinates to 1-based canvas position (col, row).
// The canvas offset is not included; FrameWriter applies it.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px, py := c.toPixel(x, y)
	return px + 1, py/2 + 1
}
