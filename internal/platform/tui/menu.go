package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-bomber/internal/catalog"
	"github.com/vovakirdan/tui-bomber/internal/core"
	"github.com/vovakirdan/tui-bomber/internal/storage"
)

// Game ids the menu can start.
const (
	campaignID = "bomber"
	endlessID  = "bomber_endless"
)

type menuEntry int

const (
	entryCampaign menuEntry = iota
	entryEndless
	entrySelectLevel
	entryScores
)

var menuEntries = []struct {
	entry menuEntry
	label string
}{
	{entryCampaign, "Campaign"},
	{entryEndless, "Endless"},
	{entrySelectLevel, "Select Level..."},
	{entryScores, "High Scores"},
}

var titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))

// MenuItem is what the player picked.
type MenuItem struct {
	GameID     string
	StartLevel int
}

// MenuModel is the Bubble Tea model for the mode and level picker.
type MenuModel struct {
	levels    *catalog.Catalog
	cursor    int
	levelPick bool // Showing the level list
	levelIdx  int  // 1-based cursor in the level list
	width     int
	height    int
	store     *storage.Store
	config    core.RuntimeConfig
	keyMapper *KeyMapper

	quitting       bool
	selected       *MenuItem
	openScoreboard bool
}

// NewMenuModel creates a new menu model.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	return MenuModel{
		levels:    catalog.Default(),
		levelIdx:  1,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		store:     store,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.levelPick {
			return m.handleLevelKey(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(menuEntries)-1 {
			m.cursor++
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit

	case MenuActionSelect:
		switch menuEntries[m.cursor].entry {
		case entryCampaign:
			m.selected = &MenuItem{GameID: campaignID, StartLevel: 1}
			return m, tea.Quit
		case entryEndless:
			m.selected = &MenuItem{GameID: endlessID, StartLevel: 1}
			return m, tea.Quit
		case entrySelectLevel:
			m.levelPick = true
		case entryScores:
			m.openScoreboard = true
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m MenuModel) handleLevelKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionBack:
		m.levelPick = false

	case MenuActionUp:
		if m.levelIdx > 1 {
			m.levelIdx--
		}

	case MenuActionDown:
		if m.levelIdx < m.levels.Len() {
			m.levelIdx++
		}

	case MenuActionSelect:
		m.selected = &MenuItem{GameID: campaignID, StartLevel: m.levelIdx}
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("  B O M B E R  "), m.width, len("  B O M B E R  ")))
	b.WriteString("\n\n")

	if best := m.bestLine(); best != "" {
		b.WriteString(centerText(best, m.width, len(best)))
		b.WriteString("\n\n")
	}

	if m.levelPick {
		m.viewLevels(&b)
	} else {
		for i, e := range menuEntries {
			cursor := "  "
			if i == m.cursor {
				cursor = "> "
			}
			line := cursor + e.label
			b.WriteString(centerText(line, m.width, len(line)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit"
	if m.levelPick {
		controls = "Up/Down: Navigate  |  Enter: Play  |  Esc: Back"
	}
	b.WriteString(centerText(controls, m.width, len(controls)))
	b.WriteString("\n")

	return b.String()
}

// viewLevels draws a window of the level list that keeps the cursor visible.
func (m MenuModel) viewLevels(b *strings.Builder) {
	rows := max(m.height-10, 3)
	first := core.Clamp(m.levelIdx-rows/2, 1, max(m.levels.Len()-rows+1, 1))
	last := min(first+rows-1, m.levels.Len())

	for i := first; i <= last; i++ {
		def, _ := m.levels.Lookup(i)
		cursor := "  "
		if i == m.levelIdx {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%2d  %-13s %s", cursor, i, def.GrantedPower, def.Summary())
		b.WriteString(centerText(line, m.width, len(line)))
		b.WriteString("\n")
	}
}

func (m MenuModel) bestLine() string {
	if m.store == nil {
		return ""
	}
	score, err := m.store.HighScore(campaignID)
	if err != nil || score == 0 {
		return ""
	}
	lvl, err := m.store.BestLevel(campaignID)
	if err != nil {
		return fmt.Sprintf("Best: %d", score)
	}
	return fmt.Sprintf("Best: %d  (level %d)", score, lvl)
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within width. n is the printable length, which
// differs from len(text) for styled strings.
func centerText(text string, width, n int) string {
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	StartLevel      int
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

func resultOf(m MenuModel) MenuResult {
	result := MenuResult{Config: m.Config()}
	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.IsQuitting() || m.Selected() == nil:
		result.Quit = true
	default:
		result.GameID = m.Selected().GameID
		result.StartLevel = m.Selected().StartLevel
	}
	return result
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(store, cfg), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}
	return resultOf(m), nil
}
