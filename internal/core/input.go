package core

import "strings"

// Action is the closed set of commands a player or agent can issue for a frame.
// The interactive key adapter and the agent-driven path both produce it.
type Action int

const (
	ActionMoveLeft Action = iota
	ActionMoveRight
	ActionFire
	ActionNone
)

// ActionCount is the size of the discrete action space.
const ActionCount = 4

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionMoveLeft:
		return "left"
	case ActionMoveRight:
		return "right"
	case ActionFire:
		return "fire"
	case ActionNone:
		return "none"
	default:
		return "unknown"
	}
}

// Valid reports whether the action belongs to the action space.
func (a Action) Valid() bool {
	return a >= ActionMoveLeft && a <= ActionNone
}

// ActionFromIndex maps a discrete action index to an Action.
// Indices outside the action space degrade to ActionNone.
func ActionFromIndex(i int) Action {
	a := Action(i)
	if !a.Valid() {
		return ActionNone
	}
	return a
}

// ParseAction converts an action name to an Action.
func ParseAction(s string) (Action, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left":
		return ActionMoveLeft, true
	case "right":
		return ActionMoveRight, true
	case "fire", "up":
		return ActionFire, true
	case "none", "stop", "":
		return ActionNone, true
	}
	return ActionNone, false
}
