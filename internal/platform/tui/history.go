package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/ball-breaker/internal/storage"
)

// History layout constants
const (
	minWidthForSidebar = 90  // Minimum width to show the policy sidebar
	sidebarWidth       = 20  // Width of the policy sidebar
	maxEpisodes        = 200 // Max episodes to load per policy
)

// HistoryKeyMap defines the key bindings for the episode history.
type HistoryKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	NextPolicy key.Binding
	PrevPolicy key.Binding
	Sort       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextPolicy, k.PrevPolicy, k.Sort, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.NextPolicy, k.PrevPolicy, k.Sort},
		{k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextPolicy: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next policy"),
		),
		PrevPolicy: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev policy"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "recent/top"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for the recorded episode browser.
type HistoryModel struct {
	store       *storage.Store
	policies    []string
	stats       map[string]*storage.PolicyStats
	cursor      int // Selected policy
	byScore     bool
	episodes    []storage.Episode
	err         error
	table       table.Model
	help        help.Model
	keys        HistoryKeyMap
	width       int
	height      int
	showSidebar bool
	quitting    bool
}

// NewHistoryModel creates a history browser over store.
func NewHistoryModel(store *storage.Store, width, height int) HistoryModel {
	m := HistoryModel{
		store:       store,
		keys:        DefaultHistoryKeyMap(),
		help:        help.New(),
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.help.Width = width

	stats, err := store.GetAllPolicyStats()
	if err != nil {
		m.err = err
	}
	m.stats = stats
	for p := range stats {
		m.policies = append(m.policies, p)
	}
	slices.Sort(m.policies)

	m.table = m.createTable()
	m.loadEpisodes()
	return m
}

func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 6},
		{Title: "Outcome", Width: 14},
		{Title: "Score", Width: 7},
		{Title: "Reward", Width: 9},
		{Title: "Steps", Width: 8},
		{Title: "Level", Width: 6},
		{Title: "Date", Width: 13},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)), // Leave room for header, stats, and help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

func (m *HistoryModel) currentPolicy() string {
	if len(m.policies) == 0 {
		return ""
	}
	return m.policies[m.cursor]
}

func (m *HistoryModel) loadEpisodes() {
	m.episodes = nil
	if len(m.policies) > 0 {
		var err error
		if m.byScore {
			m.episodes, err = m.store.TopEpisodes(m.currentPolicy(), maxEpisodes)
		} else {
			m.episodes, err = m.store.RecentEpisodes(m.currentPolicy(), maxEpisodes)
		}
		if err != nil {
			m.err = err
		}
	}
	m.table.SetRows(episodeRows(m.episodes))
	m.table.GotoTop()
}

// episodeRows converts episodes to table rows.
func episodeRows(episodes []storage.Episode) []table.Row {
	rows := make([]table.Row, len(episodes))
	for i, e := range episodes {
		outcome := e.Outcome
		if e.Truncated {
			outcome += "*"
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", e.ID),
			outcome,
			fmt.Sprintf("%d", e.Score),
			fmt.Sprintf("%.1f", e.Reward),
			fmt.Sprintf("%d", e.Steps),
			fmt.Sprintf("%d", e.FinalLevel+1),
			e.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

// Init initializes the model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history browser.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextPolicy):
			if len(m.policies) > 0 {
				m.cursor = (m.cursor + 1) % len(m.policies)
				m.loadEpisodes()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevPolicy):
			if len(m.policies) > 0 {
				m.cursor = (m.cursor - 1 + len(m.policies)) % len(m.policies)
				m.loadEpisodes()
			}
			return m, nil

		case key.Matches(msg, m.keys.Sort):
			m.byScore = !m.byScore
			m.loadEpisodes()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.help.Width = msg.Width
		m.table = m.createTable()
		m.table.SetRows(episodeRows(m.episodes))
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history browser.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))

	title := "EPISODE HISTORY"
	if p := m.currentPolicy(); p != "" {
		order := "recent"
		if m.byScore {
			order = "top"
		}
		title = fmt.Sprintf("EPISODE HISTORY - %s (%s)", p, order)
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n")
	b.WriteString(centerText(m.statsLine(), m.width))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	content := boxStyle.Render(m.tableContent())

	if m.showSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar(), "  ", content))
	} else {
		b.WriteString(content)
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m HistoryModel) statsLine() string {
	if m.err != nil {
		return "error: " + m.err.Error()
	}
	st, ok := m.stats[m.currentPolicy()]
	if !ok {
		return ""
	}
	return fmt.Sprintf("episodes %d  best %d  avg score %.1f  avg reward %.1f  wins %d",
		st.Episodes, st.BestScore, st.AvgScore, st.AvgReward, st.Wins)
}

func (m HistoryModel) sidebar() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sb strings.Builder
	sb.WriteString("Policies\n")
	sb.WriteString(strings.Repeat("-", sidebarWidth-4))
	sb.WriteString("\n")
	for i, p := range m.policies {
		cursor := "  "
		line := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			line = line.Bold(true).Foreground(lipgloss.Color("229"))
		}
		if maxLen := sidebarWidth - 6; len(p) > maxLen {
			p = p[:maxLen-1] + "."
		}
		sb.WriteString(line.Render(cursor + p))
		sb.WriteString("\n")
	}
	return style.Render(sb.String())
}

func (m HistoryModel) tableContent() string {
	if len(m.episodes) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No episodes recorded yet.\nRun `ballbreaker run --db ...` to record some.")
	}
	return m.table.View()
}

// RunHistory runs the episode history browser.
func RunHistory(store *storage.Store, width, height int) error {
	p := tea.NewProgram(NewHistoryModel(store, width, height), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
