package vocab

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/tomz197/wordblast/internal/question"
)

func newTestProvider(t *testing.T) *Provider {
	t.Helper()
	bank, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	return NewProvider(bank, rand.New(rand.NewSource(42)))
}

func TestDefaultBankLoads(t *testing.T) {
	bank, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if len(bank.Words) == 0 || len(bank.Grammar) == 0 {
		t.Fatalf("embedded bank is empty: %d words, %d grammar", len(bank.Words), len(bank.Grammar))
	}
	for _, e := range bank.Words {
		if !strings.Contains(e.Sentence, "___") {
			t.Errorf("entry %q sentence lacks a blank", e.Word)
		}
		if !e.Level.Valid() {
			t.Errorf("entry %q has level %q", e.Word, e.Level)
		}
	}
}

func TestGenerateAllTypesValid(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()
	for _, d := range []question.Difficulty{question.Easy, question.Medium, question.Hard} {
		for _, typ := range question.Types {
			for i := 0; i < 25; i++ {
				q, err := p.GenerateType(ctx, typ, d)
				if err != nil {
					t.Fatalf("GenerateType(%s, %s): %v", typ, d, err)
				}
				if err := q.Validate(); err != nil {
					t.Fatalf("generated invalid %s question: %v (%+v)", typ, err, q)
				}
				if q.Type != typ {
					t.Errorf("type = %s, want %s", q.Type, typ)
				}
				if len(q.Options) > MaxOptions {
					t.Errorf("%d options exceeds max %d", len(q.Options), MaxOptions)
				}
			}
		}
	}
}

func TestGenerateRandomType(t *testing.T) {
	p := newTestProvider(t)
	seen := map[question.Type]bool{}
	for i := 0; i < 200; i++ {
		q, err := p.Generate(context.Background(), question.Medium)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		seen[q.Type] = true
	}
	for _, typ := range question.Types {
		if !seen[typ] {
			t.Errorf("type %s never generated", typ)
		}
	}
}

func TestEmptyBank(t *testing.T) {
	p := NewProvider(&Bank{}, rand.New(rand.NewSource(1)))
	if err := p.Ready(context.Background()); !errors.Is(err, question.ErrEmptyContent) {
		t.Errorf("Ready = %v, want ErrEmptyContent", err)
	}
	if _, err := p.Generate(context.Background(), question.Easy); !errors.Is(err, question.ErrEmptyContent) {
		t.Errorf("Generate = %v, want ErrEmptyContent", err)
	}
}

func TestSingleWordBankFailsFillBlank(t *testing.T) {
	bank := &Bank{Words: []Entry{{Word: "cat", Meaning: "a pet", Sentence: "The ___ sleeps.", Level: question.Easy}}}
	p := NewProvider(bank, rand.New(rand.NewSource(1)))

	_, err := p.GenerateType(context.Background(), question.TypeFillBlank, question.Easy)
	var ge *question.GenerationError
	if !errors.As(err, &ge) {
		t.Fatalf("expected GenerationError, got %v", err)
	}
	if ge.Type != question.TypeFillBlank {
		t.Errorf("GenerationError.Type = %s", ge.Type)
	}

	// Spelling still works with one word.
	q, err := p.GenerateType(context.Background(), question.TypeSpelling, question.Easy)
	if err != nil {
		t.Fatalf("spelling: %v", err)
	}
	if q.CorrectAnswer != "cat" {
		t.Errorf("correct answer = %q", q.CorrectAnswer)
	}
}

func TestMisspellingsDifferFromWord(t *testing.T) {
	for _, w := range []string{"necessary", "occasion", "happy", "begin"} {
		ms := misspellings(w)
		if len(ms) == 0 {
			t.Errorf("no misspellings for %q", w)
		}
		distinct := 0
		for _, m := range ms {
			if m != w {
				distinct++
			}
		}
		if distinct == 0 {
			t.Errorf("all misspellings of %q equal the word", w)
		}
	}
	if ms := misspellings("ox"); ms != nil {
		t.Errorf("short words have no misspellings, got %v", ms)
	}
}

func TestLoadRejectsGarbage(t *testing.T) {
	if _, err := Load(strings.NewReader("{not json")); err == nil {
		t.Error("expected decode error")
	}
}
