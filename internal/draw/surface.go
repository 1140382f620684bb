package draw

import (
	"image/color"

	"github.com/charmbracelet/lipgloss"
)

type textOp struct {
	x, y float64
	s    string
	c    color.Color
}

// TermSurface is a Surface drawing into a half-block Canvas. Shapes are
// monochrome; dark fills erase. Text keeps its colour and is written on top
// of the canvas when the frame is presented.
type TermSurface struct {
	canvas   *Canvas
	out      *FrameWriter
	renderer *lipgloss.Renderer
	texts    []textOp
	styles   map[string]lipgloss.Style
}

var _ Surface = (*TermSurface)(nil)

// NewTermSurface creates a surface over canvas that presents to out.
func NewTermSurface(canvas *Canvas, out *FrameWriter, renderer *lipgloss.Renderer) *TermSurface {
	if renderer == nil {
		renderer = lipgloss.DefaultRenderer()
	}
	return &TermSurface{
		canvas:   canvas,
		out:      out,
		renderer: renderer,
		styles:   make(map[string]lipgloss.Style),
	}
}

// Canvas returns the underlying canvas.
func (s *TermSurface) Canvas() *Canvas {
	return s.canvas
}

// Begin starts a new frame.
func (s *TermSurface) Begin() {
	s.canvas.Clear()
	s.texts = s.texts[:0]
}

func (s *TermSurface) FillCircle(cx, cy, r float64, c color.Color) {
	if IsDark(c) {
		return
	}
	s.canvas.FillCircle(cx, cy, r)
}

func (s *TermSurface) FillRect(x, y, w, h float64, c color.Color) {
	if IsDark(c) {
		s.canvas.ClearRect(x, y, w, h)
		return
	}
	s.canvas.FillRect(x, y, w, h)
}

func (s *TermSurface) StrokeRect(x, y, w, h float64, c color.Color) {
	if IsDark(c) {
		return
	}
	s.canvas.StrokeRect(x, y, w, h)
}

func (s *TermSurface) Text(x, y float64, str string, c color.Color) {
	if str == "" {
		return
	}
	s.texts = append(s.texts, textOp{x: x, y: y, s: str, c: c})
}

// Present renders the canvas followed by queued text and flushes the writer.
func (s *TermSurface) Present() error {
	if err := s.canvas.Render(s.out); err != nil {
		return err
	}
	width := s.canvas.TerminalWidth()
	for _, t := range s.texts {
		col, row := s.canvas.LogicalToTerminal(t.x, t.y)
		if row < 1 || row > s.canvas.TerminalHeight() {
			continue
		}
		runes := []rune(t.s)
		if col < 1 {
			if 1-col >= len(runes) {
				continue
			}
			runes = runes[1-col:]
			col = 1
		}
		if room := width - col + 1; room <= 0 {
			continue
		} else if len(runes) > room {
			runes = runes[:room]
		}
		s.out.WriteAt(col, row, s.style(t.c).Render(string(runes)))
	}
	s.texts = s.texts[:0]
	return s.out.Flush()
}

func (s *TermSurface) style(c color.Color) lipgloss.Style {
	key := Hex(c)
	st, ok := s.styles[key]
	if !ok {
		st = s.renderer.NewStyle().Foreground(lipgloss.Color(key))
		s.styles[key] = st
	}
	return st
}
