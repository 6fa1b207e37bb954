// Package agent provides built-in policies for headless Ball Breaker runs.
// Each policy registers itself with the registry at init.
package agent

import (
	"github.com/vovakirdan/ball-breaker/internal/env"
	"github.com/vovakirdan/ball-breaker/internal/registry"
)

func init() {
	registry.Register(RandomID, "uniform random actions, never re-fires while shooting",
		func(seed int64) env.Policy { return NewRandom(seed) })
	registry.Register(IdleID, "stands still and never fires",
		func(int64) env.Policy { return Idle{} })
	registry.Register(DodgeID, "fires at balls overhead and sidesteps falling ones",
		func(int64) env.Policy { return NewDodge() })
}
