package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/tomz197/wordblast/internal/input"
	"github.com/tomz197/wordblast/internal/loop"
)

var (
	leftKeys  = []ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft, ebiten.KeyH}
	rightKeys = []ebiten.Key{ebiten.KeyD, ebiten.KeyArrowRight, ebiten.KeyL}
	shootKeys = []ebiten.Key{ebiten.KeySpace, ebiten.KeyW, ebiten.KeyK}
	digitKeys = []ebiten.Key{
		ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
		ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
		ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
	}
)

func isKeyJustPressed(k ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(k)
}

func anyKey(keys []ebiten.Key, pressed func(ebiten.Key) bool) bool {
	for _, k := range keys {
		if pressed(k) {
			return true
		}
	}
	return false
}

// readInput maps the keyboard to the same controls the terminal uses.
// Movement and shooting are held; everything else fires once per press.
func readInput(pressed, just func(ebiten.Key) bool) input.Input {
	in := input.Input{
		Left:   anyKey(leftKeys, pressed),
		Right:  anyKey(rightKeys, pressed),
		Shoot:  anyKey(shootKeys, pressed),
		Enter:  just(ebiten.KeyEnter) || just(ebiten.KeyNumpadEnter),
		Escape: just(ebiten.KeyEscape),
		Pause:  just(ebiten.KeyP),
		Quit:   just(ebiten.KeyQ),
	}
	for i, k := range digitKeys {
		if just(k) {
			in.Number = i + 1
			break
		}
	}
	return in
}

// pointer turns the mouse into aiming, shooting and answer clicks. Aiming
// is active after the mouse moves and until a movement key is used.
type pointer struct {
	lastX, lastY int
	aiming       bool
	scale        float64
}

func (p *pointer) apply(in *input.Input, app *loop.App) {
	x, y := ebiten.CursorPosition()
	p.update(in, app, x, y, ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft))
}

func (p *pointer) update(in *input.Input, app *loop.App, x, y int, held, clicked bool) {
	if x != p.lastX || y != p.lastY {
		p.aiming = true
		p.lastX, p.lastY = x, y
	}
	if in.Left || in.Right {
		p.aiming = false
	}

	lx, ly := float64(x)/p.scale, float64(y)/p.scale
	if clicked {
		if n := app.OptionAt(lx, ly); n > 0 {
			in.Number = n
			return
		}
	}
	if app.Screen() != loop.ScreenPlaying {
		if clicked {
			in.Enter = true
		}
		return
	}
	if p.aiming {
		in.Aim = true
		in.AimX, in.AimY = lx, ly
	}
	if held {
		in.Shoot = true
	}
}
