package api

import (
	"math/rand/v2"
	"sync"
	"time"
)

// BotPlayerID is the player index of the computer opponent
// in single play games. It never has a session.
const BotPlayerID int64 = -1

const (
	defaultBotMinDelay time.Duration = time.Millisecond * 750
	defaultBotMaxDelay time.Duration = time.Millisecond * 1500
)

type botScheduler struct {
	minDelay time.Duration
	maxDelay time.Duration
	rng      *rand.Rand
	mu       sync.Mutex
}

func newBotScheduler(minDelay, maxDelay time.Duration) *botScheduler {
	return &botScheduler{
		minDelay: minDelay,
		maxDelay: maxDelay,
		rng:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// delay is uniform in [minDelay, maxDelay).
func (b *botScheduler) delay() time.Duration {
	spread := b.maxDelay - b.minDelay
	if spread <= 0 {
		return b.minDelay
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	return b.minDelay + time.Duration(b.rng.Int64N(int64(spread)))
}

// schedule runs attack once the bot has "thought" about its move.
func (b *botScheduler) schedule(attack func()) *time.Timer {
	return time.AfterFunc(b.delay(), attack)
}
