package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/ball-breaker/internal/core"
)

// KeyMap defines the key bindings for play.
type KeyMap struct {
	Left       key.Binding
	Right      key.Binding
	Fire       key.Binding
	Pause      key.Binding
	Restart    key.Binding
	Screenshot key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Fire, k.Pause, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Fire},
		{k.Pause, k.Restart, k.Screenshot},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns the default play bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "move left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "move right"),
		),
		Fire: key.NewBinding(
			key.WithKeys("up", "w", " "),
			key.WithHelp("↑/space", "fire"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("i", "ctrl+s"),
			key.WithHelp("i", "screenshot"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// holdFrames is how long a direction key counts as held after its last
// press. Terminals report key repeats but not releases.
const holdFrames = 8

// HoldInput turns key presses into per-frame actions. A direction stays
// active while the key repeats and lapses holdFrames after the last repeat.
// Fire is consumed by the next frame, and dropped if that frame cannot fire.
type HoldInput struct {
	dir  core.Action
	left int // Frames until dir lapses
	fire bool
}

// Press records an action from a key press.
func (h *HoldInput) Press(a core.Action) {
	switch a {
	case core.ActionMoveLeft, core.ActionMoveRight:
		h.dir = a
		h.left = holdFrames
	case core.ActionFire:
		h.fire = true
	}
}

// Next returns the action for the coming frame. With canFire false a
// pending fire is discarded and the held direction is used instead.
func (h *HoldInput) Next(canFire bool) core.Action {
	if h.fire {
		h.fire = false
		if canFire {
			return core.ActionFire
		}
	}
	if h.left > 0 {
		h.left--
		return h.dir
	}
	return core.ActionNone
}

// Clear drops any held input.
func (h *HoldInput) Clear() {
	*h = HoldInput{}
}

// actionFor maps a key message to a game action.
func (k KeyMap) actionFor(msg tea.KeyMsg) (core.Action, bool) {
	switch {
	case key.Matches(msg, k.Left):
		return core.ActionMoveLeft, true
	case key.Matches(msg, k.Right):
		return core.ActionMoveRight, true
	case key.Matches(msg, k.Fire):
		return core.ActionFire, true
	}
	return core.ActionNone, false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	}
	return MenuActionNone
}
