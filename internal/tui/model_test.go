package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcpalette/mcpalette/internal/config"
	"github.com/mcpalette/mcpalette/internal/expand"
)

func testModel() Model {
	cfg := &config.Config{
		Servers: map[string]config.Server{
			"alpha": {Command: "echo", Args: []string{"hi"}},
			"beta":  {Command: "echo"},
		},
		Environments: map[string]*config.Environment{
			"env1": {
				ConfigPath: "/tmp/env1.json",
				Mode:       "claude_desktop",
				Enable:     []string{"alpha"},
				Presets:    map[string][]string{"p1": {"alpha", "beta"}},
			},
			"env2": {
				ConfigPath: "/tmp/env2.json",
				Mode:       "cursor",
			},
		},
	}
	settings := &config.Settings{Backups: config.BackupSettings{Path: "/tmp/backups", Retention: 2}}
	return New(cfg, settings, expand.Map(nil))
}

func TestNewDerivesLists(t *testing.T) {
	m := testModel()

	assert.Equal(t, []string{"env1", "env2"}, m.envIDs)
	assert.Equal(t, []string{"alpha", "beta"}, m.serverIDs)
	assert.Equal(t, []string{"p1"}, m.presets)
	assert.Equal(t, paneEnvironments, m.focus)
}

func TestMoveWrapsAndTracksPresets(t *testing.T) {
	m := testModel()

	m.focus = paneEnvironments
	m.move(1)
	assert.Equal(t, "env2", m.currentEnv())
	// env2 has no presets; the preset pane follows the selection.
	assert.Empty(t, m.presets)

	m.move(1)
	assert.Equal(t, "env1", m.currentEnv()) // wrapped
	assert.Equal(t, []string{"p1"}, m.presets)

	m.move(-1)
	assert.Equal(t, "env2", m.currentEnv())
}

func TestSelectTogglesServer(t *testing.T) {
	m := testModel()
	m.focus = paneServers
	m.serverCursor = 1 // beta

	m.selectCurrent()
	assert.True(t, m.cfg.IsEnabled("env1", "beta"))

	m.selectCurrent()
	assert.False(t, m.cfg.IsEnabled("env1", "beta"))
}

func TestSelectAppliesPreset(t *testing.T) {
	m := testModel()
	m.focus = panePresets

	m.selectCurrent()
	enabled, err := m.cfg.Enabled("env1")
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, enabled)
}

func TestDeletePresetOnlyInPresetPane(t *testing.T) {
	m := testModel()

	m.focus = paneServers
	m.deletePreset()
	assert.Equal(t, []string{"p1"}, m.presets)

	m.focus = panePresets
	m.deletePreset()
	assert.Empty(t, m.presets)
	_, exists := m.cfg.Environments["env1"].Presets["p1"]
	assert.False(t, exists)
}

func TestFocusCyclesThroughAllPanes(t *testing.T) {
	m := testModel()

	seen := map[pane]bool{}
	for i := 0; i < int(paneCount); i++ {
		seen[m.focus] = true
		m.setFocus((m.focus + 1) % paneCount)
	}
	assert.Len(t, seen, int(paneCount))
	assert.Equal(t, paneEnvironments, m.focus)

	m.setFocus(panePresetName)
	assert.True(t, m.presetInput.Focused())
	m.setFocus(paneServers)
	assert.False(t, m.presetInput.Focused())
}

func TestStatusReportsErrors(t *testing.T) {
	m := testModel()
	m.focus = paneServers
	m.serverIDs = []string{"ghost"} // simulate a stale list

	m.selectCurrent()
	assert.True(t, m.statusErr)
	assert.Contains(t, m.status, "ghost")
	// The model itself is untouched.
	assert.NoError(t, m.cfg.Validate())
}
