// Package achievement tracks one-time unlocks earned during play and the
// best results recorded across sessions.
package achievement

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Namespace is the storage namespace unlock flags are kept under.
const Namespace = "wordblast.achievements"

// ID identifies an achievement.
type ID string

const (
	Score1000 ID = "score1000"
	Combo10   ID = "combo10"
	Level5    ID = "level5"
)

// Snapshot is the part of a game session achievements are judged on.
type Snapshot struct {
	Score    int
	MaxCombo int
	Level    int
}

// Rule unlocks ID once Met returns true.
type Rule struct {
	ID    ID
	Title string
	Met   func(Snapshot) bool
}

// DefaultRules are the thresholds checked after every scoring event.
var DefaultRules = []Rule{
	{ID: Score1000, Title: "Score 1000 points", Met: func(s Snapshot) bool { return s.Score >= 1000 }},
	{ID: Combo10, Title: "Reach a 10x combo", Met: func(s Snapshot) bool { return s.MaxCombo >= 10 }},
	{ID: Level5, Title: "Reach level 5", Met: func(s Snapshot) bool { return s.Level >= 5 }},
}

// Title returns the display title of id, or the id itself when unknown.
func Title(id ID) string {
	for _, r := range DefaultRules {
		if r.ID == id {
			return r.Title
		}
	}
	return string(id)
}

// Store is a best-effort namespaced key-value store of unlock flags.
type Store interface {
	Get(ctx context.Context, namespace string) (map[string]bool, error)
	Set(ctx context.Context, namespace string, flags map[string]bool) error
}

// Result is the outcome of one finished game.
type Result struct {
	Score      int
	MaxCombo   int
	Level      int
	Difficulty string
	PlayedAt   time.Time
}

// ResultRecorder is implemented by stores that also keep game results.
type ResultRecorder interface {
	RecordResult(ctx context.Context, r Result) error
	BestResult(ctx context.Context) (Result, bool, error)
}

// Tracker evaluates rules against session snapshots. Unlocks are loaded
// from the store on creation, so an achievement persisted by an earlier
// session never fires again.
type Tracker struct {
	mu       sync.Mutex
	store    Store
	rules    []Rule
	unlocked map[string]bool
	logger   *log.Logger
}

// NewTracker creates a tracker backed by store. A nil store keeps unlocks
// in memory only. Load failures are logged and treated as "nothing
// unlocked yet".
func NewTracker(ctx context.Context, store Store, logger *log.Logger) *Tracker {
	if store == nil {
		store = NewMemoryStore()
	}
	if logger == nil {
		logger = log.Default()
	}
	t := &Tracker{
		store:    store,
		rules:    DefaultRules,
		unlocked: make(map[string]bool),
		logger:   logger,
	}
	flags, err := store.Get(ctx, Namespace)
	if err != nil {
		logger.Warn("load achievements", "err", err)
		return t
	}
	for k, v := range flags {
		if v {
			t.unlocked[k] = true
		}
	}
	return t
}

// Evaluate checks every rule against s and returns the ids unlocked by this
// call. Re-checking an already unlocked id is a no-op. New unlocks are
// persisted; a failed write is logged and does not undo the unlock.
func (t *Tracker) Evaluate(ctx context.Context, s Snapshot) []ID {
	t.mu.Lock()
	defer t.mu.Unlock()

	var fresh []ID
	for _, r := range t.rules {
		if t.unlocked[string(r.ID)] || !r.Met(s) {
			continue
		}
		t.unlocked[string(r.ID)] = true
		fresh = append(fresh, r.ID)
	}
	if len(fresh) == 0 {
		return nil
	}

	flags := make(map[string]bool, len(t.unlocked))
	for k, v := range t.unlocked {
		flags[k] = v
	}
	if err := t.store.Set(ctx, Namespace, flags); err != nil {
		t.logger.Warn("persist achievements", "err", err, "unlocked", fresh)
	}
	for _, id := range fresh {
		t.logger.Info("achievement unlocked", "id", id)
	}
	return fresh
}

// IsUnlocked reports whether id has been unlocked.
func (t *Tracker) IsUnlocked(id ID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.unlocked[string(id)]
}

// Unlocked returns all unlocked ids in sorted order.
func (t *Tracker) Unlocked() []ID {
	t.mu.Lock()
	defer t.mu.Unlock()
	ids := make([]ID, 0, len(t.unlocked))
	for k, v := range t.unlocked {
		if v {
			ids = append(ids, ID(k))
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Record stores a finished game's result when the store supports it.
func (t *Tracker) Record(ctx context.Context, r Result) {
	rec, ok := t.store.(ResultRecorder)
	if !ok {
		return
	}
	if r.PlayedAt.IsZero() {
		r.PlayedAt = time.Now()
	}
	if err := rec.RecordResult(ctx, r); err != nil {
		t.logger.Warn("record result", "err", err, "score", r.Score)
	}
}

// Best returns the best recorded result, if the store keeps results.
func (t *Tracker) Best(ctx context.Context) (Result, bool) {
	rec, ok := t.store.(ResultRecorder)
	if !ok {
		return Result{}, false
	}
	r, found, err := rec.BestResult(ctx)
	if err != nil {
		t.logger.Warn("load best result", "err", err)
		return Result{}, false
	}
	return r, found
}
