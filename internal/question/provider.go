package question

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrEmptyContent means the content source has nothing to ask.
var ErrEmptyContent = errors.New("question content source is empty")

// GenerationError reports that a provider could not build a question of
// the requested type.
type GenerationError struct {
	Type Type
	Err  error
}

func (e *GenerationError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("generate question: %v", e.Err)
	}
	return fmt.Sprintf("generate %s question: %v", e.Type, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Provider supplies questions for spawning enemies.
//
// Generate may be called from a goroutine other than the game loop and must
// be safe for that; it should honor ctx cancellation.
type Provider interface {
	// Ready returns ErrEmptyContent (possibly wrapped) when the provider
	// has no content at all.
	Ready(ctx context.Context) error
	// Generate returns a question for the given difficulty band.
	Generate(ctx context.Context, d Difficulty) (Question, error)
}

// StaticProvider hands out a fixed list of questions round-robin, ignoring
// difficulty. Useful for tests and as a fallback content source.
type StaticProvider struct {
	mu        sync.Mutex
	questions []Question
	next      int
}

// NewStaticProvider creates a provider over a copy of qs.
func NewStaticProvider(qs ...Question) *StaticProvider {
	return &StaticProvider{questions: append([]Question(nil), qs...)}
}

// Ready implements Provider.
func (p *StaticProvider) Ready(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.questions) == 0 {
		return ErrEmptyContent
	}
	return nil
}

// Generate implements Provider.
func (p *StaticProvider) Generate(ctx context.Context, _ Difficulty) (Question, error) {
	if err := ctx.Err(); err != nil {
		return Question{}, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.questions) == 0 {
		return Question{}, ErrEmptyContent
	}
	q := p.questions[p.next%len(p.questions)]
	p.next++
	q.Options = append([]string(nil), q.Options...)
	return q, nil
}

// ProviderFunc adapts a function to the Provider interface. Ready always
// succeeds.
type ProviderFunc func(ctx context.Context, d Difficulty) (Question, error)

// Ready implements Provider.
func (f ProviderFunc) Ready(context.Context) error { return nil }

// Generate implements Provider.
func (f ProviderFunc) Generate(ctx context.Context, d Difficulty) (Question, error) {
	return f(ctx, d)
}
