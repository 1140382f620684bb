// Package question defines the quiz content carried by word enemies and the
// boundary to whatever supplies it.
package question

import (
	"errors"
	"fmt"
	"strings"
)

// Type is the kind of vocabulary exercise a question represents.
type Type string

const (
	TypeSpelling  Type = "spelling"
	TypeFillBlank Type = "fillBlank"
	TypeSynonym   Type = "synonym"
	TypeGrammar   Type = "grammar"
)

// Types lists every known question type in a stable order.
var Types = []Type{TypeSpelling, TypeFillBlank, TypeSynonym, TypeGrammar}

// Difficulty is the difficulty band a session is played at.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// ParseDifficulty converts a user-supplied name ("easy", "2", "HARD", ...)
// into a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy", "1":
		return Easy, nil
	case "medium", "2", "":
		return Medium, nil
	case "hard", "3":
		return Hard, nil
	}
	return "", fmt.Errorf("unknown difficulty %q", s)
}

// Valid reports whether d is one of the three known bands.
func (d Difficulty) Valid() bool {
	return d == Easy || d == Medium || d == Hard
}

// ErrInvalidQuestion is returned by Validate for structurally unusable
// questions.
var ErrInvalidQuestion = errors.New("invalid question")

// Question is a multiple-choice vocabulary question. It is read-only once
// bound to an enemy.
type Question struct {
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Type          Type     `json:"type"`
}

// Validate checks the invariant every question bound to an enemy must hold:
// non-empty text, at least two unique non-empty options, and a correct
// answer that is one of the options.
func (q *Question) Validate() error {
	if q == nil {
		return fmt.Errorf("%w: nil question", ErrInvalidQuestion)
	}
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("%w: empty text", ErrInvalidQuestion)
	}
	if len(q.Options) < 2 {
		return fmt.Errorf("%w: %d options, need at least 2", ErrInvalidQuestion, len(q.Options))
	}
	seen := make(map[string]struct{}, len(q.Options))
	hasCorrect := false
	for _, opt := range q.Options {
		if opt == "" {
			return fmt.Errorf("%w: empty option", ErrInvalidQuestion)
		}
		if _, dup := seen[opt]; dup {
			return fmt.Errorf("%w: duplicate option %q", ErrInvalidQuestion, opt)
		}
		seen[opt] = struct{}{}
		if opt == q.CorrectAnswer {
			hasCorrect = true
		}
	}
	if !hasCorrect {
		return fmt.Errorf("%w: correct answer %q not among options", ErrInvalidQuestion, q.CorrectAnswer)
	}
	return nil
}

// IsCorrect reports whether answer matches the correct answer exactly.
func (q *Question) IsCorrect(answer string) bool {
	return q != nil && answer == q.CorrectAnswer
}
