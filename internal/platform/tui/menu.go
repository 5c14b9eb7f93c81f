package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/stairbeat/internal/core"
	"github.com/vovakirdan/stairbeat/internal/registry"
	"github.com/vovakirdan/stairbeat/internal/storage"
)

// MenuChoice is what the player picked on the start screen.
type MenuChoice int

const (
	MenuChoiceNone MenuChoice = iota
	MenuChoicePlay
	MenuChoiceScoreboard
	MenuChoiceQuit
)

// MenuItem represents a single entry on the start screen.
type MenuItem struct {
	Choice MenuChoice
	GameID string // set for MenuChoicePlay
	Title  string
}

var howToPlay = []string{
	"HOW TO PLAY",
	"",
	"1. Listen to the rhythm: press keys to the beat!",
	"2. Climb: press ←/→ or A/D to step, alternating feet.",
	"3. Keep your energy up: it drains over time and on misses.",
	"   Perfect steps heal you. Every 10 steps the tempo rises.",
}

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff6b6b"))
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffe66d"))
	menuDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuModel is the start screen.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	width     int
	store     *storage.Store
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	chosen    *MenuItem
}

// NewMenuModel creates a start screen listing every registered game.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games)+2)
	for _, g := range games {
		items = append(items, MenuItem{
			Choice: MenuChoicePlay,
			GameID: g.ID,
			Title:  "Play " + g.Title,
		})
	}
	items = append(items,
		MenuItem{Choice: MenuChoiceScoreboard, Title: "Scoreboard"},
		MenuItem{Choice: MenuChoiceQuit, Title: "Quit"},
	)

	return MenuModel{
		items:     items,
		width:     cfg.ScreenW,
		store:     store,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init implements tea.Model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles menu input. The hosting session reads Chosen after every
// update; the menu itself never quits the program.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg), nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	}

	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) MenuModel {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.chosen = &MenuItem{Choice: MenuChoiceQuit}

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			item := m.items[m.cursor]
			m.chosen = &item
		}

	case MenuActionScoreboard:
		m.chosen = &MenuItem{Choice: MenuChoiceScoreboard}
	}

	return m
}

// View renders the start screen.
func (m MenuModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("S T A I R B E A T"), m.width))
	b.WriteString("\n\n")

	if line := m.bestLine(); line != "" {
		b.WriteString(centerText(menuDimStyle.Render(line), m.width))
		b.WriteString("\n\n")
	}

	for _, line := range howToPlay {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, item := range m.items {
		line := "  " + item.Title
		if i == m.cursor {
			line = menuCursorStyle.Render("> " + item.Title)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(menuDimStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// bestLine summarizes the run log, or returns "" when it is empty.
func (m MenuModel) bestLine() string {
	if m.store == nil {
		return ""
	}
	st, err := m.store.Stats()
	if err != nil || st.Runs == 0 {
		return ""
	}
	return fmt.Sprintf("Best score %d  |  Highest floor %d  |  %d runs", st.BestScore, st.BestFloor, st.Runs)
}

// Chosen returns the picked item, or nil while the player is still choosing.
func (m MenuModel) Chosen() *MenuItem {
	return m.chosen
}

// Config returns the runtime config, updated by window resizes.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText pads text so that it sits in the middle of width.
func centerText(text string, width int) string {
	textW := lipgloss.Width(text)
	if textW >= width {
		return text
	}
	return strings.Repeat(" ", (width-textW)/2) + text
}
