package question

import (
	"context"
	"errors"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		q       Question
		wantErr bool
	}{
		{"valid", Question{Text: "Pick", Options: []string{"a", "b"}, CorrectAnswer: "a"}, false},
		{"single option", Question{Text: "Pick", Options: []string{"a"}, CorrectAnswer: "a"}, true},
		{"no options", Question{Text: "Pick", CorrectAnswer: "a"}, true},
		{"duplicate options", Question{Text: "Pick", Options: []string{"a", "a"}, CorrectAnswer: "a"}, true},
		{"answer missing", Question{Text: "Pick", Options: []string{"a", "b"}, CorrectAnswer: "c"}, true},
		{"empty text", Question{Text: "  ", Options: []string{"a", "b"}, CorrectAnswer: "a"}, true},
		{"empty option", Question{Text: "Pick", Options: []string{"a", ""}, CorrectAnswer: "a"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.q.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidQuestion) {
				t.Errorf("error %v does not wrap ErrInvalidQuestion", err)
			}
		})
	}

	var nilQ *Question
	if err := nilQ.Validate(); !errors.Is(err, ErrInvalidQuestion) {
		t.Errorf("nil question: got %v", err)
	}
}

func TestIsCorrect(t *testing.T) {
	q := &Question{Text: "x", Options: []string{"cat", "Cat"}, CorrectAnswer: "cat"}
	if !q.IsCorrect("cat") {
		t.Error("exact answer should be correct")
	}
	if q.IsCorrect("Cat") {
		t.Error("comparison must be exact")
	}
}

func TestParseDifficulty(t *testing.T) {
	cases := map[string]Difficulty{"easy": Easy, "1": Easy, "HARD": Hard, " medium ": Medium, "": Medium, "3": Hard}
	for in, want := range cases {
		got, err := ParseDifficulty(in)
		if err != nil || got != want {
			t.Errorf("ParseDifficulty(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseDifficulty("nightmare"); err == nil {
		t.Error("expected error for unknown difficulty")
	}
}

func TestStaticProvider(t *testing.T) {
	ctx := context.Background()
	empty := NewStaticProvider()
	if err := empty.Ready(ctx); !errors.Is(err, ErrEmptyContent) {
		t.Errorf("Ready on empty provider = %v", err)
	}
	if _, err := empty.Generate(ctx, Easy); !errors.Is(err, ErrEmptyContent) {
		t.Errorf("Generate on empty provider = %v", err)
	}

	p := NewStaticProvider(
		Question{Text: "1", Options: []string{"a", "b"}, CorrectAnswer: "a"},
		Question{Text: "2", Options: []string{"c", "d"}, CorrectAnswer: "d"},
	)
	if err := p.Ready(ctx); err != nil {
		t.Fatalf("Ready: %v", err)
	}
	var texts []string
	for i := 0; i < 3; i++ {
		q, err := p.Generate(ctx, Hard)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		texts = append(texts, q.Text)
	}
	if texts[0] != "1" || texts[1] != "2" || texts[2] != "1" {
		t.Errorf("round robin order = %v", texts)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := p.Generate(cancelled, Easy); !errors.Is(err, context.Canceled) {
		t.Errorf("Generate with cancelled ctx = %v", err)
	}
}

func TestGenerationErrorUnwrap(t *testing.T) {
	err := error(&GenerationError{Type: TypeSynonym, Err: ErrEmptyContent})
	if !errors.Is(err, ErrEmptyContent) {
		t.Error("GenerationError should unwrap to its cause")
	}
	var ge *GenerationError
	if !errors.As(err, &ge) || ge.Type != TypeSynonym {
		t.Errorf("errors.As failed: %v", err)
	}
	if err.Error() != "generate synonym question: question content source is empty" {
		t.Errorf("unexpected message %q", err.Error())
	}
}
