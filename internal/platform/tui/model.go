package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cristiparaschiv/kids-arcade/internal/core"
	"github.com/cristiparaschiv/kids-arcade/internal/playtime"
	"github.com/cristiparaschiv/kids-arcade/internal/registry"
	"github.com/cristiparaschiv/kids-arcade/internal/storage"
)

// limitCheckTicks is how often the screen time policy is re-evaluated
// while a game is running, once per second at 60 fps.
const limitCheckTicks = 60

// Model is the Bubble Tea model for running a single game.
// It owns the tick loop, maps keys to actions, persists the score on
// game over, and enforces the screen time policy while playing.
type Model struct {
	game         registry.Game
	screen       *core.Screen
	store        *storage.Store
	config       core.RuntimeConfig
	limits       playtime.Limits
	usedBefore   time.Duration // Play time already recorded today
	sessionStart time.Time
	keyMapper    *KeyMapper
	inputFrame   core.InputFrame
	gameState    core.GameState
	ticks        uint64
	blocked      playtime.Reason
	quitting     bool
	backToMenu   bool
	scoreSaved   bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, limits playtime.Limits, usedBefore time.Duration) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return Model{
		game:         game,
		screen:       core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:        store,
		config:       cfg,
		limits:       limits,
		usedBefore:   usedBefore,
		sessionStart: time.Now(),
		keyMapper:    NewKeyMapper(),
		inputFrame:   core.NewInputFrame(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Once the policy blocks play, any key exits.
	if m.blocked != playtime.ReasonAllowed {
		m.quitting = true
		return m, tea.Quit
	}

	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	// B/Esc returns to the menu once the game is over or paused.
	if action == core.ActionBack && (m.gameState.GameOver || m.gameState.Paused) {
		m.backToMenu = true
		return m, nil
	}

	if action == core.ActionRestart && !m.gameState.GameOver {
		return m, nil
	}
	if action != core.ActionNone {
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	// Restart with the new dimensions unless the run already ended
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.blocked != playtime.ReasonAllowed {
		return m, nil
	}

	m.ticks++
	if m.ticks%limitCheckTicks == 0 {
		elapsed := time.Since(m.sessionStart)
		d := m.limits.Evaluate(m.usedBefore+elapsed, elapsed, time.Now())
		if !d.Allowed {
			m.blocked = d.Reason
			return m, nil
		}
	}

	// Check for restart
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		// Reset seed for new game
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// Save score on game over (once)
	if m.gameState.GameOver && !m.scoreSaved && m.gameState.Score > 0 {
		if m.store != nil {
			//nolint:errcheck // Best-effort save, game continues regardless
			m.store.SaveScore(m.game.ID(), m.gameState.Score)
		}
		m.scoreSaved = true
	}

	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot saves the current screen to a text file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".kidsarcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.blocked != playtime.ReasonAllowed {
		return m.blockedView()
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// blockedView renders the screen time message shown when the policy
// stops play mid-session.
func (m Model) blockedView() string {
	var b strings.Builder
	msg := m.blocked.Describe()

	pad := m.config.ScreenH/2 - 1
	for i := 0; i < pad; i++ {
		b.WriteString("\n")
	}
	b.WriteString(centerText(msg, m.config.ScreenW))
	b.WriteString("\n\n")
	b.WriteString(centerText("Press any key to exit", m.config.ScreenW))
	return b.String()
}

// BackToMenu returns true if the user requested to go back to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// IsQuitting returns true if the user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// recordSession persists a finished play session for the daily limit
// accounting. Sessions shorter than a second are ignored.
func recordSession(store *storage.Store, gameID string, start time.Time) {
	if store == nil {
		return
	}
	elapsed := time.Since(start)
	if elapsed < time.Second {
		return
	}
	//nolint:errcheck // Best-effort accounting
	store.RecordSession(gameID, elapsed, time.Now())
}

// Run starts the Bubble Tea program for a single game and records the
// play session when it ends.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, limits playtime.Limits) error {
	var usedBefore time.Duration
	if store != nil {
		if used, err := store.UsedToday(time.Now()); err == nil {
			usedBefore = used
		}
	}

	model := NewModel(game, store, cfg, limits, usedBefore)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	recordSession(store, game.ID(), model.sessionStart)
	return err
}
