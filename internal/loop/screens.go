package loop

import (
	"fmt"
	"strings"

	"github.com/tomz197/wordblast/internal/achievement"
	"github.com/tomz197/wordblast/internal/draw"
	"github.com/tomz197/wordblast/internal/object"
	"github.com/tomz197/wordblast/internal/question"
)

// Title art (figlet "small" font).
var titleArt = []string{
	` __      _____  ___ ___    ___ _      _   ___ _____ `,
	` \ \    / / _ \| _ \   \  | _ ) |    /_\ / __|_   _|`,
	`  \ \/\/ / (_) |   / |) | | _ \ |__ / _ \\__ \ | |  `,
	`   \_/\_/ \___/|_|_\___/  |___/____/_/ \_\___/ |_|  `,
}

var gameOverArt = []string{
	`   ___   _   __  __ ___    _____   _____ ___  `,
	`  / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \ `,
	` | (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   / `,
	`  \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\ `,
}

var difficulties = []question.Difficulty{question.Easy, question.Medium, question.Hard}

func drawArt(s draw.Surface, f object.Field, y float64, art []string) float64 {
	width := 0.0
	for _, line := range art {
		width = max(width, textWidth(line))
	}
	for _, line := range art {
		s.Text(f.Width/2-width/2, y, line, draw.ColorCyan)
		y += lineHeight
	}
	return y
}

func drawTitleScreen(s draw.Surface, f object.Field, selected question.Difficulty, notice string, blink bool) {
	y := drawArt(s, f, f.Height/2-22, titleArt)
	centerText(s, f, y+lineHeight, "~ shoot the words, answer to destroy them ~", draw.ColorGray)

	y += 4 * lineHeight
	var parts []string
	for i, d := range difficulties {
		label := fmt.Sprintf("%d %s", i+1, strings.ToUpper(string(d)))
		if d == selected {
			label = "[" + label + "]"
		} else {
			label = " " + label + " "
		}
		parts = append(parts, label)
	}
	centerText(s, f, y, "Difficulty: "+strings.Join(parts, "  "), draw.ColorWhite)

	y += 2 * lineHeight
	controls := []string{
		"A D / < >  . . . . Move",
		"SPACE  . . . . . . Shoot",
		"1-4  . . . . . . . Answer",
		"P  . . . . . . . . Pause",
		"Q  . . . . . . . . Quit",
	}
	for _, line := range controls {
		centerText(s, f, y, line, draw.ColorGray)
		y += lineHeight
	}

	y += lineHeight
	if blink {
		centerText(s, f, y, ">>  Press ENTER to Start  <<", draw.ColorYellow)
	}
	if notice != "" {
		centerText(s, f, y+2*lineHeight, notice, draw.ColorRed)
	}
}

func drawGameOverScreen(s draw.Surface, f object.Field, sess Session, best achievement.Result, hasBest bool, unlocked []achievement.ID, blink bool) {
	y := drawArt(s, f, f.Height/2-18, gameOverArt)
	y += lineHeight

	centerText(s, f, y, fmt.Sprintf("Score: %d   Best combo: %d   Level: %d", sess.Score, sess.MaxCombo, sess.Level), draw.ColorWhite)
	y += lineHeight
	if hasBest {
		centerText(s, f, y, fmt.Sprintf("Best: %d (%s, level %d)", best.Score, best.Difficulty, best.Level), draw.ColorGray)
	}
	y += 2 * lineHeight

	for _, id := range unlocked {
		centerText(s, f, y, "Achievement unlocked: "+achievement.Title(id), draw.ColorYellow)
		y += lineHeight
	}

	y += lineHeight
	if blink {
		centerText(s, f, y, ">>  Press ENTER to Play Again  <<", draw.ColorYellow)
	}
	centerText(s, f, y+lineHeight, "ESC for title, Q to quit", draw.ColorGray)
}

func drawShutdownScreen(s draw.Surface, f object.Field, remaining float64) {
	y := f.Height/2 - 3*lineHeight
	centerText(s, f, y, "SERVER SHUTTING DOWN", draw.ColorRed)
	centerText(s, f, y+2*lineHeight, "The server is restarting for maintenance.", draw.ColorWhite)
	centerText(s, f, y+3*lineHeight, "Please reconnect in a moment.", draw.ColorWhite)
	centerText(s, f, y+5*lineHeight, fmt.Sprintf("Disconnecting in %d seconds...", int(remaining)+1), draw.ColorGray)
	centerText(s, f, y+7*lineHeight, "Press Q to disconnect now", draw.ColorGray)
}
