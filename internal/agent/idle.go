package agent

import (
	"github.com/vovakirdan/ball-breaker/internal/core"
	"github.com/vovakirdan/ball-breaker/internal/env"
)

// IdleID is the registry ID of the idle policy.
const IdleID = "idle"

// Idle never acts. It is the baseline every other policy should beat.
type Idle struct{}

// Name returns the policy ID.
func (Idle) Name() string { return IdleID }

// Act returns ActionNone.
func (Idle) Act(env.Frame) core.Action { return core.ActionNone }
