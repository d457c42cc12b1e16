package simulation

// Host receives the arena's lifecycle notifications and decides continuations.
// Every call happens on the goroutine running Update.
type Host interface {
	ScoreChanged(score int)
	MilestoneMessage(text string)
	LifeLost(livesRemaining int)
	GameOver(finalScore int)
	// RequestContinuation is asked once lives reach zero; true grants a fresh set of lives.
	RequestContinuation(finalScore int) bool
}

// HostFuncs adapts optional funcs to Host. A nil OnContinue denies every continuation.
type HostFuncs struct {
	OnScore     func(int)
	OnMilestone func(string)
	OnLifeLost  func(int)
	OnGameOver  func(int)
	OnContinue  func(int) bool
}

func (h HostFuncs) ScoreChanged(score int) {
	if h.OnScore != nil {
		h.OnScore(score)
	}
}

func (h HostFuncs) MilestoneMessage(text string) {
	if h.OnMilestone != nil {
		h.OnMilestone(text)
	}
}

func (h HostFuncs) LifeLost(lives int) {
	if h.OnLifeLost != nil {
		h.OnLifeLost(lives)
	}
}

func (h HostFuncs) GameOver(score int) {
	if h.OnGameOver != nil {
		h.OnGameOver(score)
	}
}

func (h HostFuncs) RequestContinuation(score int) bool {
	if h.OnContinue == nil {
		return false
	}
	return h.OnContinue(score)
}
