package loop

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/tomz197/wordblast/internal/draw"
	"github.com/tomz197/wordblast/internal/input"
	"github.com/tomz197/wordblast/internal/loop/config"
	"github.com/tomz197/wordblast/internal/question"
)

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Renderer     *lipgloss.Renderer // nil uses the default renderer
	Hub          *Hub               // optional; delivers shutdown notices
	Name         string
	Difficulty   question.Difficulty
	Game         Options
	// IdleDisconnect enables the inactivity warning and disconnect.
	IdleDisconnect bool
}

// Client runs one game in a terminal: it reads keys, drives the App at a
// fixed frame rate and renders to the writer.
type Client struct {
	app          *App
	hub          *Hub
	handle       *Handle
	canvas       *draw.Canvas
	frames       *draw.FrameWriter
	surface      *draw.TermSurface
	writer       io.Writer
	inputStream  *input.Stream
	termSizeFunc draw.TermSizeFunc
	logger       *log.Logger

	idleDisconnect bool
	lastInput      time.Time
	isInactive     bool
	prevScreen     Screen
	wasInactive    bool
}

// NewClient creates a client reading keys from r and drawing to w.
func NewClient(r io.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Game.Logger
	if logger == nil {
		logger = log.Default()
		opts.Game.Logger = logger
	}

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, config.FieldWidth, config.FieldHeight)
	canvas.SetOffset(offsetCol, offsetRow)
	frames := draw.NewFrameWriter(w, offsetCol, offsetRow)

	c := &Client{
		app:            NewApp(NewController(opts.Game), opts.Difficulty, logger),
		hub:            opts.Hub,
		canvas:         canvas,
		frames:         frames,
		surface:        draw.NewTermSurface(canvas, frames, opts.Renderer),
		writer:         w,
		inputStream:    input.StartStream(r),
		termSizeFunc:   termSizeFunc,
		logger:         logger,
		idleDisconnect: opts.IdleDisconnect,
		lastInput:      time.Now(),
	}
	if c.hub != nil {
		c.handle = c.hub.Register(opts.Name)
	}
	return c
}

// App returns the client's app.
func (c *Client) App() *App {
	return c.app
}

// Run starts the client loop. Blocks until the player quits, the input
// ends, ctx is cancelled or a write fails.
func (c *Client) Run(ctx context.Context) error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)
	if c.handle != nil {
		defer c.hub.Unregister(c.handle.ID)
	}

	// Game results are still recorded when the session context ends.
	gameCtx := context.WithoutCancel(ctx)
	c.prevScreen = c.app.Screen()
	lastTime := time.Now()

	for !c.app.Done() {
		frameStart := time.Now()
		delta := min(frameStart.Sub(lastTime), config.MaxFrameDelta)
		lastTime = frameStart

		in := c.processInput()
		if ctx.Err() != nil {
			in.Quit = true
		}
		c.processHubEvents(gameCtx)
		c.app.Update(gameCtx, in, delta)
		c.updateScreen()

		if err := c.drawFrame(frameStart); err != nil {
			return err
		}

		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	draw.ClearScreen(c.writer)
	return nil
}

// processInput reads this frame's keys and tracks inactivity.
func (c *Client) processInput() input.Input {
	in := input.ReadInput(c.inputStream)

	if in != (input.Input{}) {
		c.lastInput = time.Now()
		c.isInactive = false
	} else if c.idleDisconnect {
		idle := time.Since(c.lastInput).Seconds()
		if idle > config.InactivityDisconnectUser {
			c.logger.Info("disconnecting idle client")
			in.Quit = true
		} else if idle > config.InactivityWarnUser {
			c.isInactive = true
		}
	}
	return in
}

// processHubEvents handles events from the hub.
func (c *Client) processHubEvents(ctx context.Context) {
	if c.handle == nil {
		return
	}
	for {
		select {
		case event, ok := <-c.handle.Events:
			if !ok {
				c.handle = nil
				c.app.Shutdown(ctx)
				return
			}
			if event.Type == EventServerShutdown {
				c.app.Shutdown(ctx)
			}
		default:
			return
		}
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.frames)
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.frames.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, config.MaxTermWidth)
	renderHeight = min(termHeight, config.MaxTermHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

// drawFrame draws the current frame. A failed draw is logged and the frame
// dropped; only a failed write ends the client.
func (c *Client) drawFrame(now time.Time) error {
	// On screen or inactivity transitions, do a full terminal clear
	// so text from the previous screen doesn't persist.
	screen := c.app.Screen()
	if screen != c.prevScreen || c.isInactive != c.wasInactive {
		draw.ClearScreen(c.frames)
		c.prevScreen = screen
		c.wasInactive = c.isInactive
	}

	c.surface.Begin()
	if c.isInactive {
		c.drawInactivityScreen()
	} else if err := c.app.Draw(c.surface, now); err != nil {
		c.logger.Warn("draw frame", "err", err)
		c.surface.Begin()
	}

	c.canvas.RenderBorder(c.frames)
	return c.surface.Present()
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen() {
	f := c.app.Field()
	y := f.Height/2 - 2*lineHeight
	centerText(c.surface, f, y, "INACTIVITY WARNING", draw.ColorYellow)
	remaining := int(config.InactivityDisconnectUser - time.Since(c.lastInput).Seconds())
	centerText(c.surface, f, y+2*lineHeight,
		fmt.Sprintf("You will be disconnected in %d seconds.", max(remaining, 0)), draw.ColorWhite)
	centerText(c.surface, f, y+4*lineHeight, "Press any key to continue", draw.ColorGray)
}
