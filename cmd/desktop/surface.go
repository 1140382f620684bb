package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/tomz197/wordblast/internal/draw"
)

// surface draws logical units onto an ebiten image, scale pixels per unit.
// Text keeps the terminal grid: one column per unit, one row per two units.
type surface struct {
	dst   *ebiten.Image
	scale float64
}

var _ draw.Surface = (*surface)(nil)

func newSurface(scale float64) *surface {
	return &surface{scale: scale}
}

func (s *surface) px(v float64) float32 {
	return float32(v * s.scale)
}

func (s *surface) FillCircle(cx, cy, r float64, c color.Color) {
	vector.DrawFilledCircle(s.dst, s.px(cx), s.px(cy), s.px(r), c, true)
}

func (s *surface) FillRect(x, y, w, h float64, c color.Color) {
	vector.DrawFilledRect(s.dst, s.px(x), s.px(y), s.px(w), s.px(h), c, false)
}

func (s *surface) StrokeRect(x, y, w, h float64, c color.Color) {
	vector.StrokeRect(s.dst, s.px(x), s.px(y), s.px(w), s.px(h), 2, c, false)
}

func (s *surface) Text(x, y float64, str string, c color.Color) {
	face := basicfont.Face7x13
	baseline := int(s.px(y)) + face.Ascent + 2
	col := 0
	for _, r := range str {
		text.Draw(s.dst, string(r), face, int(s.px(x+float64(col))), baseline, c)
		col++
	}
}
