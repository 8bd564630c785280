// Package events carries state-changed notifications from the game
// service to whoever renders the board.
package events

import (
	"fmt"
	"sync"
	"time"

	"randomized-bingo/internal/logger"

	"github.com/google/uuid"
)

const (
	BoardChanged  = "board_changed"
	OptionsLoaded = "options_loaded"
	GameSaved     = "game_saved"
)

type Event struct {
	Type      string
	Timestamp time.Time
	Data      map[string]interface{}
}

type Handler func(event Event)

type subscription struct {
	id      string
	handler Handler
}

// Bus delivers events synchronously on the publisher's goroutine, in
// subscription order.
type Bus struct {
	subscribers map[string][]subscription
	index       map[string]string // id -> event type
	mu          sync.RWMutex
	closed      bool
	logger      logger.Logger
}

func NewBus(log logger.Logger) *Bus {
	if log == nil {
		log = logger.NoOpLogger{}
	}
	return &Bus{
		subscribers: make(map[string][]subscription),
		index:       make(map[string]string),
		logger:      log,
	}
}

// Subscribe returns an id for Unsubscribe. Subscribing after Shutdown
// returns an empty id and registers nothing.
func (b *Bus) Subscribe(eventType string, handler Handler) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed || handler == nil {
		return ""
	}

	id := uuid.NewString()
	b.subscribers[eventType] = append(b.subscribers[eventType], subscription{id: id, handler: handler})
	b.index[id] = eventType
	return id
}

func (b *Bus) Unsubscribe(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	eventType, ok := b.index[id]
	if !ok {
		return
	}
	delete(b.index, id)

	subs := b.subscribers[eventType]
	for i, s := range subs {
		if s.id == id {
			b.subscribers[eventType] = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
}

func (b *Bus) Publish(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return
	}
	subs := make([]subscription, len(b.subscribers[event.Type]))
	copy(subs, b.subscribers[event.Type])
	b.mu.RUnlock()

	for _, s := range subs {
		b.dispatch(s, event)
	}
}

func (b *Bus) dispatch(s subscription, event Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("EventBus", fmt.Errorf("handler panic: %v", r), map[string]interface{}{
				"event":        event.Type,
				"subscription": s.id,
			})
		}
	}()
	s.handler(event)
}

func (b *Bus) Shutdown() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true
	b.subscribers = make(map[string][]subscription)
	b.index = make(map[string]string)
}
