package agent

import (
	"math/rand"

	"github.com/vovakirdan/ball-breaker/internal/core"
	"github.com/vovakirdan/ball-breaker/internal/env"
)

// RandomID is the registry ID of the random policy.
const RandomID = "random"

// Random samples actions uniformly. While a laser is in flight it draws
// again instead of firing.
type Random struct {
	rng *rand.Rand
}

// NewRandom creates a random policy with a fixed seed.
func NewRandom(seed int64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

// Name returns the policy ID.
func (r *Random) Name() string { return RandomID }

// Act draws the next action.
func (r *Random) Act(f env.Frame) core.Action {
	for {
		a := core.ActionFromIndex(r.rng.Intn(core.ActionCount))
		if a != core.ActionFire || !f.Snapshot.Shooting {
			return a
		}
	}
}

