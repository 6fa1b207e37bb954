package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/ball-breaker/internal/config"
	"github.com/vovakirdan/ball-breaker/internal/core"
	"github.com/vovakirdan/ball-breaker/internal/game"
)

// countdownSeconds is the pause before every level starts.
const countdownSeconds = 3

// Default screen size before the first WindowSizeMsg arrives.
const (
	defaultScreenW = 80
	defaultScreenH = 24
)

// Options configures an interactive session.
type Options struct {
	Config     config.Config
	Levels     game.LevelSource
	StartLevel int         // Zero-based
	Logger     *log.Logger // Must not write to the terminal in use
	ScreenW    int
	ScreenH    int
}

// Model is the Bubble Tea model for interactive play.
type Model struct {
	game   *game.Game
	clock  *game.WallClock
	screen *core.Screen
	keys   KeyMap
	help   help.Model
	input  *HoldInput
	logger *log.Logger

	startLevel int
	level      int // Level the countdown was last shown for
	countdown  int // Frames left before play resumes
	fps        float64

	width, height int
	paused        bool
	status        string // Transient footer message
	quitting      bool
}

// NewModel creates the play model and its game.
func NewModel(opts Options) (Model, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	clock := game.NewWallClock(opts.Config.Display.FPS)
	g, err := game.New(game.Options{
		Config: opts.Config,
		Levels: opts.Levels,
		Clock:  clock,
		Logger: logger,
	})
	if err != nil {
		return Model{}, err
	}
	g.ResetAt(opts.StartLevel)

	w, h := opts.ScreenW, opts.ScreenH
	if w <= 0 || h <= 0 {
		w, h = defaultScreenW, defaultScreenH
	}

	m := Model{
		game:       g,
		clock:      clock,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		input:      &HoldInput{},
		logger:     logger,
		startLevel: opts.StartLevel,
		level:      g.LevelIndex(),
		fps:        opts.Config.Display.FPS,
		width:      w,
		height:     h,
	}
	m.help.Width = w
	m.screen = core.NewScreen(w, m.screenRows())
	m.countdown = m.countdownFrames()
	return m, nil
}

func (m Model) countdownFrames() int {
	return int(countdownSeconds * m.fps)
}

// screenRows is the height left for the play field after the help bar.
func (m Model) screenRows() int {
	rows := 1
	if m.help.ShowAll {
		rows = len(m.keys.FullHelp()) + 1
	}
	return max(m.height-rows, hudRows+footerRows+1)
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.clock.Interval())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.screen.Resize(m.width, m.screenRows())
		return m, nil

	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.screen.Resize(m.width, m.screenRows())
		return m, nil

	case key.Matches(msg, m.keys.Screenshot):
		m.status = m.saveScreenshot()
		return m, nil

	case key.Matches(msg, m.keys.Restart):
		m.restart()
		return m, nil

	case key.Matches(msg, m.keys.Pause):
		if m.game.Terminal() {
			return m, nil
		}
		m.paused = !m.paused
		m.input.Clear()
		if !m.paused {
			m.clock.Reset()
		}
		return m, nil
	}

	if a, ok := m.keys.actionFor(msg); ok && !m.paused {
		m.input.Press(a)
	}
	return m, nil
}

func (m *Model) restart() {
	m.game.ResetAt(m.startLevel)
	m.level = m.game.LevelIndex()
	m.countdown = m.countdownFrames()
	m.paused = false
	m.status = ""
	m.input.Clear()
}

// handleTick advances the countdown or steps the game by one frame.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	next := tickCmd(m.clock.Interval())
	if m.paused || m.game.Terminal() {
		return m, next
	}

	if m.countdown > 0 {
		m.countdown--
		if m.countdown == 0 {
			m.clock.Reset()
		}
		return m, next
	}

	res := m.game.Step(m.input.Next(!m.game.Shooting()))
	if res.Terminal {
		m.input.Clear()
		m.logger.Info("game finished", "outcome", res.Outcome, "score", m.game.Score(), "reward", m.game.TotalReward())
		return m, next
	}
	if m.game.LevelIndex() != m.level || res.LevelComplete {
		m.level = m.game.LevelIndex()
		m.countdown = m.countdownFrames()
		m.input.Clear()
	}
	return m, next
}

// saveScreenshot writes the current frame as plain text and returns a status line.
func (m *Model) saveScreenshot() string {
	DrawSnapshot(m.screen, m.game.Snapshot())

	home, err := os.UserHomeDir()
	if err != nil {
		return "screenshot failed: " + err.Error()
	}
	dir := filepath.Join(home, ".ballbreaker", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "screenshot failed: " + err.Error()
	}

	name := fmt.Sprintf("ballbreaker_%s.txt", time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "screenshot failed: " + err.Error()
	}
	m.logger.Debug("screenshot saved", "path", path)
	return "saved " + path
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	snap := m.game.Snapshot()
	DrawSnapshot(m.screen, snap)
	switch {
	case snap.Terminal():
		drawOverlay(m.screen, outcomeTitle(snap.Outcome),
			fmt.Sprintf("Score: %d  Reward: %.1f", snap.Score, snap.TotalReward),
			"r: restart  q: quit")
	case m.paused:
		drawOverlay(m.screen, "PAUSED", "p: resume")
	case m.countdown > 0:
		secs := (m.countdown + int(m.fps) - 1) / max(int(m.fps), 1)
		drawOverlay(m.screen, fmt.Sprintf("Level %d", snap.Level+1), snap.LevelName, fmt.Sprintf("%d", secs))
	}

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	footer := m.help.View(m.keys)
	if m.status != "" && !m.help.ShowAll {
		footer = m.status
	}
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(footer))
	return b.String()
}

// drawOverlay centers the given lines vertically on the screen.
func drawOverlay(s *core.Screen, lines ...string) {
	top := (s.Height() - len(lines)) / 2
	for i, line := range lines {
		if line == "" {
			continue
		}
		s.DrawTextCentered(top+i, " "+line+" ")
	}
}

func outcomeTitle(o game.Outcome) string {
	switch o {
	case game.OutcomeWon:
		return "YOU WIN"
	case game.OutcomeTimedOut:
		return "TIME OUT"
	default:
		return "GAME OVER"
	}
}

// Run starts an interactive session.
func Run(opts Options) error {
	model, err := NewModel(opts)
	if err != nil {
		return err
	}
	defer model.clock.Stop()

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
