package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/wordblast/internal/config"
	"github.com/tomz197/wordblast/internal/logging"
	"github.com/tomz197/wordblast/internal/loop"
	"github.com/tomz197/wordblast/internal/question"
	"github.com/tomz197/wordblast/internal/setup"
)

func main() {
	settings := config.Load()
	difficulty := flag.String("difficulty", settings.Difficulty, "easy, medium or hard")
	flag.StringVar(&settings.AchievementsDB, "db", settings.AchievementsDB, "achievements database, empty keeps them in memory")
	flag.StringVar(&settings.VocabFile, "words", settings.VocabFile, "word bank JSON file, empty uses the built-in one")
	flag.Parse()

	d, err := question.ParseDifficulty(*difficulty)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	// Raw mode owns the terminal, so logs only go to a file.
	logger := logging.Discard()
	if settings.LogFile != "" {
		f, err := logging.OpenFile(settings.LogFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logger = logging.New(f, settings.LogLevel, "game")
	}

	if err := run(d, settings, logger); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run(d question.Difficulty, settings config.Settings, logger *log.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := setup.Open(ctx, settings, logger)
	if err != nil {
		return err
	}
	defer res.Close()

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	reader := bufio.NewReader(os.Stdin)
	return loop.Run(ctx, reader, os.Stdout, loop.ClientOptions{
		Difficulty: d,
		Game:       res.GameOptions(logger),
	})
}
