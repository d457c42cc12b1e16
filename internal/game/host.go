package game

import (
	"fmt"
	"sync/atomic"
)

// arenaHost answers the arena's callbacks. It runs on the world actor's goroutine,
// so it only touches the wallet, the overlay and an atomic flag.
type arenaHost struct {
	wallet       *Wallet
	overlay      *Overlay
	autoContinue atomic.Bool
}

func (h *arenaHost) ScoreChanged(score int) {
	if n := h.wallet.Award(score); n > 0 {
		h.overlay.Push(fmt.Sprintf("+%d token (score %d)", n, score))
	}
}

func (h *arenaHost) MilestoneMessage(text string) {
	h.overlay.Push(text)
}

func (h *arenaHost) LifeLost(livesRemaining int) {
	switch livesRemaining {
	case 0:
		h.overlay.Push("No lives left")
	case 1:
		h.overlay.Push("Eaten! Last life")
	default:
		h.overlay.Push(fmt.Sprintf("Eaten! %d lives left", livesRemaining))
	}
}

func (h *arenaHost) GameOver(finalScore int) {
	h.overlay.Push(fmt.Sprintf("Game over, final score %d", finalScore))
}

func (h *arenaHost) RequestContinuation(int) bool {
	if !h.autoContinue.Load() || !h.wallet.Spend() {
		return false
	}
	h.overlay.Push(fmt.Sprintf("Token spent, %d left", h.wallet.Balance()))
	return true
}
