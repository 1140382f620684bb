package loop

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/tomz197/wordblast/internal/draw"
	"github.com/tomz197/wordblast/internal/loop/config"
	"github.com/tomz197/wordblast/internal/object"
	"github.com/tomz197/wordblast/internal/question"
)

// Text metrics in logical units: one character is one unit wide and a line
// of text is two units tall (one terminal row).
const (
	charWidth  = 1.0
	lineHeight = 2.0
)

func textWidth(s string) float64 {
	return float64(ansi.StringWidth(s)) * charWidth
}

func centerText(s draw.Surface, f object.Field, y float64, text string, c color.Color) {
	s.Text(f.Width/2-textWidth(text)/2, y, text, c)
}

var typeLabels = map[question.Type]string{
	question.TypeSpelling:  "SPELLING",
	question.TypeFillBlank: "FILL THE BLANK",
	question.TypeSynonym:   "SYNONYM",
	question.TypeGrammar:   "GRAMMAR",
}

func drawHUD(s draw.Surface, f object.Field, sess Session, failures int) {
	left := fmt.Sprintf("Score: %-6d Combo: x%-3d Level: %-3d Time: %2ds", sess.Score, sess.Combo, sess.Level, sess.LevelTimer)
	s.Text(1, 0, left, draw.ColorWhite)

	lives := "Lives: " + strings.Repeat("♥", max(sess.Lives, 0))
	s.Text(f.Width-textWidth(lives)-1, 0, lives, draw.ColorRed)

	if failures >= config.ProviderWarnAfter {
		centerText(s, f, lineHeight, "! questions are not arriving, check the word list", draw.ColorYellow)
	}
}

func drawPaused(s draw.Surface, f object.Field) {
	centerText(s, f, f.Height/2-lineHeight, "PAUSED", draw.ColorWhite)
	centerText(s, f, f.Height/2+lineHeight, "press P to continue", draw.ColorGray)
}

// questionLayout positions the question panel. Option i occupies the row
// starting at Options[i].
type questionLayout struct {
	X, Y, W, H float64
	Lines      []string  // wrapped question text
	Options    []float64 // y of each option row
}

const (
	panelWidth   = 84.0
	panelPadding = 3.0
)

func layoutQuestion(f object.Field, q question.Question) questionLayout {
	w := min(panelWidth, f.Width-4)
	inner := int(w - 2*panelPadding)
	lines := strings.Split(ansi.Wordwrap(q.Text, inner, ""), "\n")

	// border, header, blank, text lines, blank, options, hint, border
	rows := len(lines) + len(q.Options) + 6
	h := float64(rows) * lineHeight
	l := questionLayout{
		X:     f.Width/2 - w/2,
		Y:     f.Height/2 - h/2,
		W:     w,
		H:     h,
		Lines: lines,
	}
	y := l.Y + lineHeight*float64(4+len(lines))
	for range q.Options {
		l.Options = append(l.Options, y)
		y += lineHeight
	}
	return l
}

// OptionAt returns the 1-based option under the logical point (x,y), or 0.
func OptionAt(f object.Field, q question.Question, x, y float64) int {
	l := layoutQuestion(f, q)
	if x < l.X || x > l.X+l.W {
		return 0
	}
	for i, oy := range l.Options {
		if y >= oy-0.5 && y < oy+lineHeight-0.5 {
			return i + 1
		}
	}
	return 0
}

func drawQuestion(s draw.Surface, f object.Field, q question.Question) {
	l := layoutQuestion(f, q)
	accent := object.StyleFor(q.Type).Color

	s.FillRect(l.X, l.Y, l.W, l.H, draw.ColorPanel)
	s.StrokeRect(l.X, l.Y, l.W, l.H, accent)

	label, ok := typeLabels[q.Type]
	if !ok {
		label = "QUESTION"
	}
	x := l.X + panelPadding
	s.Text(x, l.Y+lineHeight, label, accent)
	y := l.Y + 3*lineHeight
	for _, line := range l.Lines {
		s.Text(x, y, line, draw.ColorWhite)
		y += lineHeight
	}
	for i, opt := range q.Options {
		s.Text(x, l.Options[i], fmt.Sprintf("%d) %s", i+1, opt), draw.ColorCyan)
	}
	s.Text(x, l.Y+l.H-lineHeight, "press the number of your answer", draw.ColorGray)
}
