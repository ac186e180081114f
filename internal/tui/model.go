// Package tui is the interactive front end: four panes (environments,
// servers, presets, preset name input) over the configuration model. All UI
// state lives in the Model; the configuration is only ever mutated through
// the engine operations, and nothing is written to disk until the user saves.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mcpalette/mcpalette/internal/config"
	"github.com/mcpalette/mcpalette/internal/expand"
	"github.com/mcpalette/mcpalette/internal/render"
)

type pane int

const (
	paneEnvironments pane = iota
	paneServers
	panePresets
	panePresetName

	paneCount
)

// Model is the bubbletea model for the whole screen.
type Model struct {
	cfg      *config.Config
	settings *config.Settings
	lookup   expand.Lookup

	focus        pane
	envCursor    int
	serverCursor int
	presetCursor int

	envIDs    []string
	serverIDs []string
	presets   []string

	presetInput textinput.Model
	keys        keyMap

	status    string
	statusErr bool

	width  int
	height int
}

// New builds the TUI model over a loaded configuration.
func New(cfg *config.Config, settings *config.Settings, lookup expand.Lookup) Model {
	input := textinput.New()
	input.Placeholder = "preset name"
	input.CharLimit = 64
	input.Width = 20

	m := Model{
		cfg:         cfg,
		settings:    settings,
		lookup:      lookup,
		presetInput: input,
		keys:        defaultKeyMap(),
	}
	m.refresh()
	return m
}

// Run starts the TUI and blocks until the user quits.
func Run(cfg *config.Config, settings *config.Settings, lookup expand.Lookup) error {
	_, err := tea.NewProgram(New(cfg, settings, lookup), tea.WithAltScreen()).Run()
	return err
}

// refresh rebuilds the derived lists from the model and clamps the cursors.
func (m *Model) refresh() {
	m.envIDs = m.cfg.EnvironmentIDs()
	m.serverIDs = m.cfg.ServerIDs()
	m.envCursor = clamp(m.envCursor, len(m.envIDs))
	m.serverCursor = clamp(m.serverCursor, len(m.serverIDs))
	m.refreshPresets()
}

func (m *Model) refreshPresets() {
	m.presets = nil
	if env := m.currentEnv(); env != "" {
		if names, err := m.cfg.PresetNames(env); err == nil {
			m.presets = names
		}
	}
	m.presetCursor = clamp(m.presetCursor, len(m.presets))
}

func clamp(i, n int) int {
	if n == 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func (m *Model) currentEnv() string {
	if len(m.envIDs) == 0 {
		return ""
	}
	return m.envIDs[m.envCursor]
}

func (m *Model) currentServer() string {
	if len(m.serverIDs) == 0 {
		return ""
	}
	return m.serverIDs[m.serverCursor]
}

func (m *Model) currentPreset() string {
	if len(m.presets) == 0 {
		return ""
	}
	return m.presets[m.presetCursor]
}

func (m *Model) setStatus(format string, a ...interface{}) {
	m.status = fmt.Sprintf(format, a...)
	m.statusErr = false
}

func (m *Model) setError(err error) {
	m.status = err.Error()
	m.statusErr = true
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	typing := m.focus == panePresetName

	switch {
	case key.Matches(msg, m.keys.Quit):
		// "q" is ordinary input while naming a preset.
		if !typing || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case key.Matches(msg, m.keys.Save):
		m.save()
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		m.reload()
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		m.deletePreset()
		return m, nil

	case key.Matches(msg, m.keys.NextPane):
		m.setFocus((m.focus + 1) % paneCount)
		return m, nil

	case key.Matches(msg, m.keys.PrevPane):
		m.setFocus((m.focus + paneCount - 1) % paneCount)
		return m, nil
	}

	if typing {
		var cmd tea.Cmd
		m.presetInput, cmd = m.presetInput.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.move(-1)
	case key.Matches(msg, m.keys.Down):
		m.move(1)
	case key.Matches(msg, m.keys.Select):
		m.selectCurrent()
	}

	return m, nil
}

func (m *Model) setFocus(p pane) {
	m.focus = p
	if p == panePresetName {
		m.presetInput.Focus()
	} else {
		m.presetInput.Blur()
	}
}

// move shifts the focused pane's cursor with wraparound, the way the
// arrow keys behave in every pane.
func (m *Model) move(delta int) {
	step := func(cursor *int, n int) {
		if n == 0 {
			return
		}
		*cursor = (*cursor + delta + n) % n
	}

	switch m.focus {
	case paneEnvironments:
		step(&m.envCursor, len(m.envIDs))
		m.presetCursor = 0
		m.refreshPresets()
	case paneServers:
		step(&m.serverCursor, len(m.serverIDs))
	case panePresets:
		step(&m.presetCursor, len(m.presets))
	}
}

// selectCurrent is the space key: toggle the server under the cursor, or
// apply the preset under the cursor.
func (m *Model) selectCurrent() {
	env := m.currentEnv()
	if env == "" {
		m.setStatus("no environments defined")
		return
	}

	switch m.focus {
	case paneServers:
		server := m.currentServer()
		if server == "" {
			return
		}
		if err := m.cfg.Toggle(env, server); err != nil {
			m.setError(err)
			return
		}
		m.setStatus("toggled '%s' in '%s' (unsaved)", server, env)

	case panePresets:
		preset := m.currentPreset()
		if preset == "" {
			return
		}
		if err := m.cfg.ApplyPreset(env, preset); err != nil {
			m.setError(err)
			return
		}
		m.setStatus("applied preset '%s' to '%s' (unsaved)", preset, env)
	}
}

// save persists the source document and renders every environment's output.
// A pending preset name saves the current enable list as a preset first.
func (m *Model) save() {
	env := m.currentEnv()

	if name := m.presetInput.Value(); name != "" && env != "" {
		enabled, err := m.cfg.Enabled(env)
		if err == nil {
			err = m.cfg.SavePreset(env, name, enabled)
		}
		if err != nil {
			m.setError(err)
			return
		}
		m.presetInput.SetValue("")
		m.refreshPresets()
	}

	if err := config.Save(m.cfg); err != nil {
		m.setError(err)
		return
	}

	results := render.WriteAll(m.cfg, m.settings, m.lookup)
	written, warned, failed := 0, 0, 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			continue
		}
		written++
		warned += len(res.Warnings)
	}

	switch {
	case failed > 0:
		m.status = fmt.Sprintf("saved; wrote %d output(s), %d failed", written, failed)
		m.statusErr = true
	case warned > 0:
		m.setStatus("saved; wrote %d output(s), %d unresolved variable(s)", written, warned)
	default:
		m.setStatus("saved; wrote %d output(s)", written)
	}
}

// reload throws away unsaved changes and re-reads the source document.
func (m *Model) reload() {
	cfg, err := config.Load()
	if err != nil {
		m.setError(err)
		return
	}
	m.cfg = cfg
	m.envCursor = 0
	m.serverCursor = 0
	m.presetCursor = 0
	m.refresh()
	m.setStatus("reloaded from disk")
}

func (m *Model) deletePreset() {
	if m.focus != panePresets {
		return
	}
	env := m.currentEnv()
	preset := m.currentPreset()
	if env == "" || preset == "" {
		return
	}
	if err := m.cfg.DeletePreset(env, preset); err != nil {
		m.setError(err)
		return
	}
	m.refreshPresets()
	m.setStatus("deleted preset '%s' (unsaved)", preset)
}
