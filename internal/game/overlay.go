package game

import (
	"sync"
	"time"
)

type message struct {
	text    string
	expires time.Time
}

// Overlay keeps the short lived messages shown over the arena, newest last.
type Overlay struct {
	mu    sync.Mutex
	ttl   time.Duration
	limit int
	now   func() time.Time
	msgs  []message
}

func NewOverlay(ttl time.Duration, limit int) *Overlay {
	return &Overlay{ttl: ttl, limit: limit, now: time.Now}
}

// Push shows text for the overlay's ttl, dropping the oldest message past the limit.
func (o *Overlay) Push(text string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.msgs = append(o.msgs, message{text: text, expires: o.now().Add(o.ttl)})
	if over := len(o.msgs) - o.limit; o.limit > 0 && over > 0 {
		o.msgs = append(o.msgs[:0], o.msgs[over:]...)
	}
}

// Active prunes expired messages and returns the rest.
func (o *Overlay) Active() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	now := o.now()
	kept := o.msgs[:0]
	for _, m := range o.msgs {
		if now.Before(m.expires) {
			kept = append(kept, m)
		}
	}
	clear(o.msgs[len(kept):])
	o.msgs = kept

	out := make([]string, len(kept))
	for i, m := range kept {
		out[i] = m.text
	}
	return out
}

func (o *Overlay) Clear() {
	o.mu.Lock()
	o.msgs = o.msgs[:0]
	o.mu.Unlock()
}
