package main

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tomz197/wordblast/internal/loop"
	"github.com/tomz197/wordblast/internal/question"
)

func keySet(keys ...ebiten.Key) func(ebiten.Key) bool {
	set := make(map[ebiten.Key]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	return func(k ebiten.Key) bool { return set[k] }
}

func TestReadInput(t *testing.T) {
	in := readInput(keySet(ebiten.KeyArrowLeft, ebiten.KeySpace), keySet(ebiten.KeyDigit3, ebiten.KeyP))
	if !in.Left || in.Right || !in.Shoot {
		t.Errorf("held keys: %+v", in)
	}
	if in.Number != 3 || !in.Pause || in.Quit || in.Enter {
		t.Errorf("edge keys: %+v", in)
	}
}

func TestPointerAimsWhilePlaying(t *testing.T) {
	app := loop.NewApp(loop.NewController(loop.Options{
		Provider: question.NewStaticProvider(question.Question{
			Text: "Pick glad", Options: []string{"glad", "sad"}, CorrectAnswer: "glad", Type: question.TypeSynonym,
		}),
	}), question.Easy, nil)

	p := pointer{scale: pixelsPerUnit}
	in := readInput(keySet(), keySet())
	p.update(&in, app, 0, 0, false, true)
	if !in.Enter || in.Aim {
		t.Errorf("title click: %+v", in)
	}

	in = readInput(keySet(), keySet(ebiten.KeyEnter))
	app.Update(t.Context(), in, 0)
	if app.Screen() != loop.ScreenPlaying {
		t.Fatalf("screen = %v", app.Screen())
	}

	in = readInput(keySet(), keySet())
	p.update(&in, app, 400, 300, true, false)
	if !in.Aim || in.AimX != 50 || !in.Shoot {
		t.Errorf("aim: %+v", in)
	}

	in = readInput(keySet(ebiten.KeyA), keySet())
	p.update(&in, app, 400, 300, false, false)
	if in.Aim {
		t.Error("still aiming after a movement key")
	}
}
