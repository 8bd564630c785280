package models

import (
	"slices"
	"sync"
	"time"
)

type ActionKind string

const (
	ActionLoadOptions ActionKind = "load_options"
	ActionSaveGame    ActionKind = "save_game"
	ActionLoadGame    ActionKind = "load_game"
	ActionRegenerate  ActionKind = "regenerate"
	ActionReset       ActionKind = "reset"
	ActionClickCell   ActionKind = "click_cell"
)

// GameAction records one successful user action.
type GameAction struct {
	Kind   ActionKind
	Target string
	Time   time.Time
}

// SessionRepository holds the state around the board that the board
// itself does not own: the option pool, where it came from, the game file
// in use and the last successful action.
type SessionRepository struct {
	mu            sync.RWMutex
	options       []string
	optionsSource string
	lastGamePath  string
	lastAction    GameAction
	hasAction     bool
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{}
}

// SetOptions replaces the pool with a copy of options.
func (r *SessionRepository) SetOptions(options []string, source string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.options = slices.Clone(options)
	r.optionsSource = source
}

// Options returns a copy of the current pool, nil if none was loaded.
func (r *SessionRepository) Options() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.options)
}

func (r *SessionRepository) OptionsSource() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.optionsSource
}

func (r *SessionRepository) OptionCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.options)
}

func (r *SessionRepository) SetLastGamePath(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastGamePath = path
}

func (r *SessionRepository) LastGamePath() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastGamePath
}

func (r *SessionRepository) Record(kind ActionKind, target string) GameAction {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastAction = GameAction{Kind: kind, Target: target, Time: time.Now()}
	r.hasAction = true
	return r.lastAction
}

// LastAction reports false when nothing has been recorded.
func (r *SessionRepository) LastAction() (GameAction, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastAction, r.hasAction
}
