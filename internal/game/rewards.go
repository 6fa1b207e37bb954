package game

import "github.com/vovakirdan/ball-breaker/internal/config"

// Event is an outcome that can occur during a frame.
type Event int

const (
	EventTimeElapsed Event = iota
	EventInvalidMove
	EventGameOver
	EventPopBall
	EventHitCeiling
	EventCeilingPop
	EventTimeOut
	EventLevelComplete
	eventCount
)

var eventNames = [eventCount]string{
	"time-elapsed",
	"invalid-move",
	"game-over",
	"pop-ball",
	"hit-ceiling",
	"ceiling-pop",
	"time-out",
	"level-complete",
}

// String returns the event name.
func (e Event) String() string {
	if e < 0 || e >= eventCount {
		return "unknown"
	}
	return eventNames[e]
}

// Rewards maps events to reward deltas.
type Rewards struct {
	deltas [eventCount]float64
}

// RewardsFromConfig builds the reward table from configuration.
func RewardsFromConfig(c config.RewardsConfig) Rewards {
	var r Rewards
	r.deltas[EventTimeElapsed] = c.TimeElapsed
	r.deltas[EventInvalidMove] = c.InvalidMove
	r.deltas[EventGameOver] = c.GameOver
	r.deltas[EventPopBall] = c.PopBall
	r.deltas[EventHitCeiling] = c.HitCeiling
	r.deltas[EventCeilingPop] = c.CeilingPop
	r.deltas[EventTimeOut] = c.TimeOut
	r.deltas[EventLevelComplete] = c.LevelComplete
	return r
}

// Delta returns the reward for e.
func (r Rewards) Delta(e Event) float64 {
	if e < 0 || e >= eventCount {
		return 0
	}
	return r.deltas[e]
}

// Sum returns the total reward for events.
func (r Rewards) Sum(events []Event) float64 {
	var total float64
	for _, e := range events {
		total += r.Delta(e)
	}
	return total
}
