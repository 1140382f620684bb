package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/tomz197/wordblast/internal/config"
	"github.com/tomz197/wordblast/internal/draw"
	"github.com/tomz197/wordblast/internal/input"
	"github.com/tomz197/wordblast/internal/logging"
	"github.com/tomz197/wordblast/internal/loop"
	"github.com/tomz197/wordblast/internal/question"
	"github.com/tomz197/wordblast/internal/setup"
)

const (
	pixelsPerUnit = 8
	tps           = 60
)

// game adapts loop.App to ebiten.Game.
type game struct {
	ctx     context.Context
	app     *loop.App
	surface *surface
	pointer pointer
	logger  *log.Logger
	showTPS bool
}

func (g *game) Update() error {
	if g.ctx.Err() != nil {
		g.app.Update(context.WithoutCancel(g.ctx), input.Input{Quit: true}, 0)
		return ebiten.Termination
	}
	in := readInput(ebiten.IsKeyPressed, isKeyJustPressed)
	g.pointer.apply(&in, g.app)
	g.app.Update(g.ctx, in, time.Second/tps)
	if g.app.Done() {
		return ebiten.Termination
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(draw.ColorBackground)
	g.surface.dst = screen
	if err := g.app.Draw(g.surface, time.Now()); err != nil {
		g.logger.Warn("draw frame", "err", err)
	}
	if g.showTPS {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS %.0f", ebiten.ActualTPS()), 4, 4)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	f := g.app.Field()
	return int(f.Width) * pixelsPerUnit, int(f.Height) * pixelsPerUnit
}

func main() {
	settings := config.Load()
	difficulty := flag.String("difficulty", settings.Difficulty, "easy, medium or hard")
	flag.StringVar(&settings.AchievementsDB, "db", settings.AchievementsDB, "achievements database, empty keeps them in memory")
	flag.StringVar(&settings.VocabFile, "words", settings.VocabFile, "word bank JSON file, empty uses the built-in one")
	showTPS := flag.Bool("tps", false, "show ticks per second")
	flag.Parse()

	logger := logging.New(os.Stderr, settings.LogLevel, "desktop")
	if err := run(*difficulty, *showTPS, settings, logger); err != nil {
		logger.Error("desktop game", "err", err)
		os.Exit(1)
	}
}

func run(difficulty string, showTPS bool, settings config.Settings, logger *log.Logger) error {
	d, err := question.ParseDifficulty(difficulty)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := setup.Open(ctx, settings, logger)
	if err != nil {
		return err
	}
	defer res.Close()

	app := loop.NewApp(loop.NewController(res.GameOptions(logger)), d, logger)
	g := &game{
		ctx:     ctx,
		app:     app,
		surface: newSurface(pixelsPerUnit),
		pointer: pointer{scale: pixelsPerUnit},
		logger:  logger,
		showTPS: showTPS,
	}

	f := app.Field()
	ebiten.SetWindowSize(int(f.Width)*pixelsPerUnit, int(f.Height)*pixelsPerUnit)
	ebiten.SetWindowTitle("WORD BLAST")
	ebiten.SetTPS(tps)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
