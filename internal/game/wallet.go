package game

import "sync"

// Wallet holds the continuation tokens. The arena asks for continuations on the world
// actor's goroutine while the UI reads the balance on ebiten's, hence the mutex.
type Wallet struct {
	mu      sync.Mutex
	balance int
	every   int // score per earned token, 0 disables earning
	awarded int // score already converted into tokens
}

func NewWallet(tokens, scorePerToken int) *Wallet {
	return &Wallet{balance: max(tokens, 0), every: scorePerToken}
}

func (w *Wallet) Balance() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.balance
}

// Spend takes one token if there is one.
func (w *Wallet) Spend() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.balance == 0 {
		return false
	}
	w.balance--
	return true
}

// Award converts a running score into tokens and returns how many were earned now.
// A score below what was already converted (a new game) restarts the count.
func (w *Wallet) Award(score int) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.every <= 0 {
		return 0
	}
	if score < w.awarded {
		w.awarded = score - score%w.every
		return 0
	}
	earned := (score - w.awarded) / w.every
	w.awarded += earned * w.every
	w.balance += earned
	return earned
}
