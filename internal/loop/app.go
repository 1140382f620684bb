package loop

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/wordblast/internal/draw"
	"github.com/tomz197/wordblast/internal/input"
	"github.com/tomz197/wordblast/internal/loop/config"
	"github.com/tomz197/wordblast/internal/object"
	"github.com/tomz197/wordblast/internal/question"
)

// Screen is the front-end screen around a Controller.
type Screen int

const (
	ScreenTitle    Screen = iota // Title and difficulty selection
	ScreenPlaying                // Game in progress (including question pauses)
	ScreenGameOver               // Results, restart prompt
	ScreenShutdown               // Server is shutting down
)

// App moves between the title, game and game-over screens in response to
// input. Front-ends feed it input and frame time and present what it draws.
type App struct {
	ctrl          *Controller
	logger        *log.Logger
	difficulty    question.Difficulty
	screen        Screen
	notice        string
	shutdownTimer float64
	done          bool
}

// NewApp creates an app on the title screen with d preselected.
func NewApp(ctrl *Controller, d question.Difficulty, logger *log.Logger) *App {
	if !d.Valid() {
		d = question.Medium
	}
	if logger == nil {
		logger = log.Default()
	}
	return &App{ctrl: ctrl, logger: logger, difficulty: d}
}

// Controller returns the game controller.
func (a *App) Controller() *Controller {
	return a.ctrl
}

// Screen returns the current screen.
func (a *App) Screen() Screen {
	return a.screen
}

// Difficulty returns the selected difficulty.
func (a *App) Difficulty() question.Difficulty {
	return a.difficulty
}

// Done reports whether the player asked to leave.
func (a *App) Done() bool {
	return a.done
}

// Update applies one frame of input and advances the game by dt.
func (a *App) Update(ctx context.Context, in input.Input, dt time.Duration) {
	if in.Quit {
		a.quit(ctx)
		return
	}

	switch a.screen {
	case ScreenTitle:
		if in.Number >= 1 && in.Number <= len(difficulties) {
			a.difficulty = difficulties[in.Number-1]
		}
		if in.Enter || in.Shoot {
			a.start(ctx)
		}
	case ScreenPlaying:
		a.ctrl.SetInput(in)
		a.ctrl.Advance(dt)
		if a.ctrl.Phase() == PhaseGameOver {
			a.screen = ScreenGameOver
		}
	case ScreenGameOver:
		switch {
		case in.Enter:
			a.start(ctx)
		case in.Escape:
			a.ctrl.Reset()
			a.screen = ScreenTitle
		}
	case ScreenShutdown:
		a.shutdownTimer -= dt.Seconds()
		if a.shutdownTimer <= 0 {
			a.done = true
		}
	}
}

func (a *App) start(ctx context.Context) {
	err := a.ctrl.Start(ctx, a.difficulty)
	if err == nil {
		a.notice = ""
		a.screen = ScreenPlaying
		return
	}
	a.logger.Warn("cannot start game", "err", err)
	if errors.Is(err, question.ErrEmptyContent) {
		a.notice = "No questions available. Add words to the word list and try again."
	} else {
		a.notice = "Cannot start: " + err.Error()
	}
	a.ctrl.Reset()
	a.screen = ScreenTitle
}

func (a *App) quit(ctx context.Context) {
	if a.screen == ScreenPlaying {
		a.ctrl.End(ctx)
	}
	a.done = true
}

// Shutdown switches to the shutdown notice; the app finishes after a grace
// period. A game in progress is ended and recorded.
func (a *App) Shutdown(ctx context.Context) {
	if a.screen == ScreenShutdown {
		return
	}
	if a.screen == ScreenPlaying {
		a.ctrl.End(ctx)
	}
	a.screen = ScreenShutdown
	a.shutdownTimer = config.ShutdownDisplaySeconds
}

// OptionAt maps a logical point to a 1-based answer option of the question
// on screen, or 0.
func (a *App) OptionAt(x, y float64) int {
	q, ok := a.ctrl.ActiveQuestion()
	if !ok {
		return 0
	}
	return OptionAt(a.ctrl.World().Field, q, x, y)
}

// Draw renders the current screen. now drives prompt blinking.
func (a *App) Draw(s draw.Surface, now time.Time) error {
	f := a.ctrl.World().Field
	blink := now.UnixMilli()/600%2 == 0

	switch a.screen {
	case ScreenTitle:
		drawTitleScreen(s, f, a.difficulty, a.notice, blink)
	case ScreenPlaying:
		return a.ctrl.Draw(s)
	case ScreenGameOver:
		err := a.ctrl.Draw(s)
		best, hasBest := a.ctrl.Best()
		drawGameOverScreen(s, f, a.ctrl.Session(), best, hasBest, a.ctrl.Unlocked(), blink)
		return err
	case ScreenShutdown:
		drawShutdownScreen(s, f, a.shutdownTimer)
	}
	return nil
}

// Field returns the playfield size.
func (a *App) Field() object.Field {
	return a.ctrl.World().Field
}
