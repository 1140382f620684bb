// Package vocab generates vocabulary questions from a word bank.
package vocab

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/tomz197/wordblast/internal/question"
)

//go:embed words.json
var defaultBank []byte

// MaxOptions is the most answer options a generated question carries.
const MaxOptions = 4

var errNotEnough = errors.New("not enough distinct options")

// Entry is one word of the bank.
type Entry struct {
	Word     string              `json:"word"`
	Meaning  string              `json:"meaning"`
	Synonyms []string            `json:"synonyms"`
	Sentence string              `json:"sentence"` // contains "___" where the word goes
	Level    question.Difficulty `json:"level"`
}

// GrammarItem is a ready-made grammar exercise.
type GrammarItem struct {
	Sentence string              `json:"sentence"`
	Options  []string            `json:"options"`
	Answer   string              `json:"answer"`
	Level    question.Difficulty `json:"level"`
}

// Bank is the raw content a Provider draws from.
type Bank struct {
	Words   []Entry       `json:"words"`
	Grammar []GrammarItem `json:"grammar"`
}

// Len returns the number of usable content items.
func (b *Bank) Len() int {
	return len(b.Words) + len(b.Grammar)
}

// Load decodes a bank from JSON.
func Load(r io.Reader) (*Bank, error) {
	var b Bank
	if err := json.NewDecoder(r).Decode(&b); err != nil {
		return nil, fmt.Errorf("decode word bank: %w", err)
	}
	return &b, nil
}

// LoadFile reads a bank from path; an empty path yields the embedded bank.
func LoadFile(path string) (*Bank, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word bank: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Default returns the embedded word bank.
func Default() (*Bank, error) {
	return Load(bytes.NewReader(defaultBank))
}

// Provider implements question.Provider over a Bank.
type Provider struct {
	mu   sync.Mutex
	bank *Bank
	rng  *rand.Rand
}

// NewProvider creates a provider. A nil rng is replaced by a time-seeded one.
func NewProvider(bank *Bank, rng *rand.Rand) *Provider {
	if bank == nil {
		bank = &Bank{}
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Provider{bank: bank, rng: rng}
}

var _ question.Provider = (*Provider)(nil)

// Ready implements question.Provider.
func (p *Provider) Ready(ctx context.Context) error {
	if p.bank.Len() == 0 {
		return question.ErrEmptyContent
	}
	return nil
}

// Generate picks a random question type and builds a question for d. When
// the chosen type cannot be built from the bank, the remaining types are
// tried in order before giving up.
func (p *Provider) Generate(ctx context.Context, d question.Difficulty) (question.Question, error) {
	if err := ctx.Err(); err != nil {
		return question.Question{}, err
	}
	if p.bank.Len() == 0 {
		return question.Question{}, question.ErrEmptyContent
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	start := p.rng.Intn(len(question.Types))
	var lastErr error
	for i := range question.Types {
		t := question.Types[(start+i)%len(question.Types)]
		q, err := p.generate(t, d)
		if err == nil {
			return q, nil
		}
		lastErr = &question.GenerationError{Type: t, Err: err}
	}
	return question.Question{}, lastErr
}

// GenerateType builds a question of a specific type.
func (p *Provider) GenerateType(ctx context.Context, t question.Type, d question.Difficulty) (question.Question, error) {
	if err := ctx.Err(); err != nil {
		return question.Question{}, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	q, err := p.generate(t, d)
	if err != nil {
		return question.Question{}, &question.GenerationError{Type: t, Err: err}
	}
	return q, nil
}

func (p *Provider) generate(t question.Type, d question.Difficulty) (question.Question, error) {
	switch t {
	case question.TypeSpelling:
		return p.spelling(d)
	case question.TypeFillBlank:
		return p.fillBlank(d)
	case question.TypeSynonym:
		return p.synonym(d)
	case question.TypeGrammar:
		return p.grammar(d)
	}
	return question.Question{}, fmt.Errorf("unsupported type %q", t)
}

// words returns the entries for d, or all entries if the band is empty.
func (p *Provider) words(d question.Difficulty) []Entry {
	var out []Entry
	for _, e := range p.bank.Words {
		if e.Level == d {
			out = append(out, e)
		}
	}
	if len(out) == 0 {
		return p.bank.Words
	}
	return out
}

func (p *Provider) pick(entries []Entry) (Entry, bool) {
	if len(entries) == 0 {
		return Entry{}, false
	}
	return entries[p.rng.Intn(len(entries))], true
}

func (p *Provider) spelling(d question.Difficulty) (question.Question, error) {
	e, ok := p.pick(p.words(d))
	if !ok {
		return question.Question{}, question.ErrEmptyContent
	}
	opts := newOptionSet(e.Word)
	for _, m := range misspellings(e.Word) {
		opts.add(m)
	}
	return p.finish(question.TypeSpelling,
		fmt.Sprintf("Which spelling means %q?", e.Meaning), e.Word, opts)
}

func (p *Provider) fillBlank(d question.Difficulty) (question.Question, error) {
	pool := p.words(d)
	e, ok := p.pick(pool)
	if !ok {
		return question.Question{}, question.ErrEmptyContent
	}
	if !strings.Contains(e.Sentence, "___") {
		return question.Question{}, fmt.Errorf("entry %q has no blank", e.Word)
	}
	opts := newOptionSet(e.Word)
	for _, i := range p.rng.Perm(len(pool)) {
		opts.add(pool[i].Word)
	}
	return p.finish(question.TypeFillBlank, e.Sentence, e.Word, opts)
}

func (p *Provider) synonym(d question.Difficulty) (question.Question, error) {
	pool := p.words(d)
	e, ok := p.pick(pool)
	if !ok {
		return question.Question{}, question.ErrEmptyContent
	}
	if len(e.Synonyms) == 0 {
		return question.Question{}, fmt.Errorf("entry %q has no synonyms", e.Word)
	}
	correct := e.Synonyms[p.rng.Intn(len(e.Synonyms))]
	opts := newOptionSet(correct)
	exclude := map[string]bool{e.Word: true}
	for _, s := range e.Synonyms {
		exclude[s] = true
	}
	for _, i := range p.rng.Perm(len(pool)) {
		other := pool[i]
		if other.Word == e.Word || len(other.Synonyms) == 0 {
			continue
		}
		cand := other.Synonyms[p.rng.Intn(len(other.Synonyms))]
		if !exclude[cand] {
			opts.add(cand)
		}
	}
	return p.finish(question.TypeSynonym,
		fmt.Sprintf("Choose a synonym of %q", e.Word), correct, opts)
}

func (p *Provider) grammar(d question.Difficulty) (question.Question, error) {
	var pool []GrammarItem
	for _, g := range p.bank.Grammar {
		if g.Level == d {
			pool = append(pool, g)
		}
	}
	if len(pool) == 0 {
		pool = p.bank.Grammar
	}
	if len(pool) == 0 {
		return question.Question{}, question.ErrEmptyContent
	}
	g := pool[p.rng.Intn(len(pool))]
	opts := newOptionSet(g.Answer)
	for _, o := range g.Options {
		opts.add(o)
	}
	return p.finish(question.TypeGrammar, g.Sentence, g.Answer, opts)
}

// finish shuffles the options, caps them at MaxOptions and validates.
func (p *Provider) finish(t question.Type, text, correct string, opts *optionSet) (question.Question, error) {
	if len(opts.items) < 2 {
		return question.Question{}, errNotEnough
	}
	items := opts.items
	if len(items) > MaxOptions {
		items = items[:MaxOptions] // correct answer is always first
	}
	p.rng.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })

	q := question.Question{Text: text, Options: items, CorrectAnswer: correct, Type: t}
	if err := q.Validate(); err != nil {
		return question.Question{}, err
	}
	return q, nil
}

type optionSet struct {
	items []string
	seen  map[string]bool
}

func newOptionSet(correct string) *optionSet {
	s := &optionSet{seen: make(map[string]bool)}
	s.add(correct)
	return s
}

func (s *optionSet) add(opt string) {
	opt = strings.TrimSpace(opt)
	if opt == "" || s.seen[opt] {
		return
	}
	s.seen[opt] = true
	s.items = append(s.items, opt)
}

// misspellings returns plausible wrong spellings of w, in a fixed order.
func misspellings(w string) []string {
	r := []rune(w)
	if len(r) < 3 {
		return nil
	}
	var out []string

	// swap two inner letters
	mid := len(r) / 2
	swapped := append([]rune(nil), r...)
	swapped[mid-1], swapped[mid] = swapped[mid], swapped[mid-1]
	out = append(out, string(swapped))

	// double a consonant or undouble a double letter
	undoubled := false
	for i := 1; i < len(r); i++ {
		if r[i] == r[i-1] {
			out = append(out, string(r[:i])+string(r[i+1:]))
			undoubled = true
			break
		}
	}
	if !undoubled {
		for i := 1; i < len(r)-1; i++ {
			if !isVowel(r[i]) {
				out = append(out, string(r[:i+1])+string(r[i:]))
				break
			}
		}
	}

	// replace the last inner vowel
	for i := len(r) - 2; i > 0; i-- {
		if isVowel(r[i]) {
			alt := append([]rune(nil), r...)
			alt[i] = vowelSwap(r[i])
			out = append(out, string(alt))
			break
		}
	}

	// drop the last inner letter
	out = append(out, string(r[:len(r)-2])+string(r[len(r)-1:]))
	return out
}

func isVowel(c rune) bool {
	return strings.ContainsRune("aeiou", c)
}

func vowelSwap(c rune) rune {
	switch c {
	case 'a':
		return 'e'
	case 'e':
		return 'a'
	case 'i':
		return 'e'
	case 'o':
		return 'u'
	default:
		return 'o'
	}
}
