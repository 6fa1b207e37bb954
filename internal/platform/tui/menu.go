package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/ball-breaker/internal/config"
)

// Selection holds the player's choice from the start menu.
type Selection struct {
	Mode  string // config.ModeEndless or config.ModeCampaign
	Level int    // Zero-based starting level
}

// menuOptions are the entries of the mode screen, in display order.
var menuOptions = []string{
	"Endless",
	"Campaign",
	"Select Level...",
}

// MenuModel lets the player choose a mode and starting level.
type MenuModel struct {
	levelNames    []string
	cursor        int
	levelCursor   int
	inLevelSelect bool
	width         int
	height        int
	selection     Selection
	choosing      bool
	quitting      bool
}

// NewMenuModel creates a menu over the given level names.
func NewMenuModel(levelNames []string, width, height int) MenuModel {
	return MenuModel{
		levelNames: levelNames,
		width:      width,
		height:     height,
		choosing:   true,
	}
}

// Init initializes the model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		action := MapKeyToMenuAction(msg)
		if m.inLevelSelect {
			return m.handleLevelSelect(action)
		}
		return m.handleModeSelect(action)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m MenuModel) handleModeSelect(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(menuOptions)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		switch m.cursor {
		case 0:
			return m.choose(config.ModeEndless, 0)
		case 1:
			return m.choose(config.ModeCampaign, 0)
		case 2:
			m.inLevelSelect = true
			m.levelCursor = 0
		}
	}
	return m, nil
}

func (m MenuModel) handleLevelSelect(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.levelCursor > 0 {
			m.levelCursor--
		}
	case MenuActionDown:
		if m.levelCursor < len(m.levelNames)-1 {
			m.levelCursor++
		}
	case MenuActionSelect:
		return m.choose(config.ModeCampaign, m.levelCursor)
	case MenuActionBack:
		m.inLevelSelect = false
	}
	return m, nil
}

func (m MenuModel) choose(mode string, level int) (tea.Model, tea.Cmd) {
	m.choosing = false
	m.selection = Selection{Mode: mode, Level: level}
	return m, tea.Quit
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting || !m.choosing {
		return ""
	}
	if m.inLevelSelect {
		return m.viewLevelSelect()
	}
	return m.viewModeSelect()
}

func (m MenuModel) viewModeSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("B A L L   B R E A K E R", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select game mode:", m.width))
	b.WriteString("\n\n")

	for i, opt := range menuOptions {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		if i == 1 {
			opt = fmt.Sprintf("%s (%d levels)", opt, len(m.levelNames))
		}
		b.WriteString(centerText(cursor+opt, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))
	return b.String()
}

func (m MenuModel) viewLevelSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("SELECT LEVEL", m.width))
	b.WriteString("\n\n")

	for i, name := range m.levelNames {
		cursor := "  "
		if i == m.levelCursor {
			cursor = "> "
		}
		b.WriteString(centerText(fmt.Sprintf("%s%2d. %s", cursor, i+1, name), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))
	return b.String()
}

// Selected returns the selection, or nil if the player quit.
func (m MenuModel) Selected() *Selection {
	if m.choosing || m.quitting {
		return nil
	}
	return &m.selection
}

// centerText centers text within the given width.
func centerText(text string, width int) string {
	n := len([]rune(text))
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}

// RunMenu shows the start menu and returns the selection, or nil on quit.
func RunMenu(levelNames []string, width, height int) (*Selection, error) {
	p := tea.NewProgram(NewMenuModel(levelNames, width, height), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	m, ok := final.(MenuModel)
	if !ok {
		return nil, nil
	}
	return m.Selected(), nil
}
