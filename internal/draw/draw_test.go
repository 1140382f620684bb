package draw

import (
	"bytes"
	"image/color"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func countSet(c *Canvas) int {
	n := 0
	for y := 0; y < c.TerminalHeight()*2; y++ {
		for x := 0; x < c.TerminalWidth(); x++ {
			if c.Pixel(x, y) {
				n++
			}
		}
	}
	return n
}

func TestIsDark(t *testing.T) {
	tests := []struct {
		c    color.Color
		want bool
	}{
		{color.Black, true},
		{color.Transparent, true},
		{ColorPanel, true},
		{ColorWhite, false},
		{ColorRed, false},
		{ColorYellow, false},
	}
	for _, tt := range tests {
		if got := IsDark(tt.c); got != tt.want {
			t.Errorf("IsDark(%v) = %v, want %v", tt.c, got, tt.want)
		}
	}
}

func TestHex(t *testing.T) {
	if got := Hex(color.RGBA{0x4F, 0xC3, 0xF7, 0xFF}); got != "#4fc3f7" {
		t.Errorf("Hex = %q", got)
	}
}

func TestCanvasFillAndClearRect(t *testing.T) {
	c := NewScaledCanvas(10, 5, 10, 10)
	c.FillRect(0, 0, 10, 10)
	if got := countSet(c); got != 100 {
		t.Fatalf("filled pixels = %d, want 100", got)
	}
	c.ClearRect(0, 0, 5, 10)
	if got := countSet(c); got != 50 {
		t.Fatalf("after clear = %d, want 50", got)
	}
	if c.Pixel(2, 2) || !c.Pixel(7, 2) {
		t.Error("clear touched the wrong half")
	}
}

func TestCanvasFillCircle(t *testing.T) {
	c := NewScaledCanvas(40, 20, 40, 40)
	c.FillCircle(20, 20, 5)
	if !c.Pixel(20, 20) {
		t.Error("centre not filled")
	}
	if c.Pixel(30, 20) || c.Pixel(20, 30) {
		t.Error("pixel outside radius set")
	}

	c.Clear()
	c.FillCircle(3, 3, 0.1)
	if got := countSet(c); got != 1 {
		t.Errorf("tiny circle pixels = %d, want 1", got)
	}
}

func TestCanvasStrokeRect(t *testing.T) {
	c := NewScaledCanvas(20, 10, 20, 20)
	c.StrokeRect(2, 2, 10, 6)
	for _, p := range [][2]int{{2, 2}, {12, 2}, {2, 8}, {12, 8}, {7, 2}, {2, 5}} {
		if !c.Pixel(p[0], p[1]) {
			t.Errorf("outline pixel %v not set", p)
		}
	}
	if c.Pixel(7, 5) {
		t.Error("interior filled")
	}
	if got := countSet(c); got != 2*11+2*5 {
		t.Errorf("outline pixels = %d, want %d", got, 2*11+2*5)
	}
}

func TestCanvasRenderWritesFullRows(t *testing.T) {
	c := NewScaledCanvas(4, 2, 4, 4)
	c.FillRect(0, 0, 1, 1)
	var buf bytes.Buffer
	if err := c.Render(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "\033[1;1H▀   ") {
		t.Errorf("first row = %q", out)
	}
	if !strings.Contains(out, "\033[2;1H    ") {
		t.Errorf("second row missing: %q", out)
	}
}

func TestTermSurfacePresent(t *testing.T) {
	var buf bytes.Buffer
	canvas := NewScaledCanvas(20, 10, 20, 20)
	fw := NewFrameWriter(&buf, 0, 0)
	r := lipgloss.NewRenderer(&buf)
	r.SetColorProfile(termenv.Ascii)
	s := NewTermSurface(canvas, fw, r)

	s.Begin()
	s.FillRect(0, 0, 20, 20, ColorWhite)
	s.FillRect(0, 0, 20, 20, ColorPanel)
	if got := countSet(canvas); got != 0 {
		t.Fatalf("dark fill should erase, %d pixels left", got)
	}
	s.FillCircle(10, 10, 3, color.Black)
	if got := countSet(canvas); got != 0 {
		t.Fatalf("dark circle drew %d pixels", got)
	}

	s.Text(16, 4, "truncated", ColorYellow)
	if err := s.Present(); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "\033[3;17Htrun") {
		t.Errorf("text not placed or truncated: %q", out)
	}
	if strings.Contains(out, "trunc") {
		t.Error("text overflowed the canvas")
	}
}

type countingWriter struct {
	writes int
	bytes.Buffer
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.writes++
	return w.Buffer.Write(p)
}

func TestFrameWriter(t *testing.T) {
	var out countingWriter
	fw := NewFrameWriter(&out, 3, 2)
	fw.WriteAt(1, 1, "hi")
	if out.Len() != 0 {
		t.Fatal("wrote before Flush")
	}
	if err := fw.Flush(); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "\033[3;4Hhi" {
		t.Errorf("output = %q", got)
	}
	if fw.Pending() != 0 {
		t.Error("queue not emptied")
	}
}

func TestWriteChunked(t *testing.T) {
	var out countingWriter
	data := bytes.Repeat([]byte("x"), maxChunkSize*2+10)
	if err := writeChunked(&out, data); err != nil {
		t.Fatal(err)
	}
	if out.writes != 3 || out.Len() != len(data) {
		t.Errorf("writes=%d len=%d", out.writes, out.Len())
	}
}
