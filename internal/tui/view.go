package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	panes := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderList("Environments", m.envIDs, m.envCursor, paneEnvironments, nil),
		m.renderList("MCP Servers", m.serverIDs, m.serverCursor, paneServers, m.serverMarker),
		m.renderList("Presets", m.presets, m.presetCursor, panePresets, nil),
		m.renderPresetInput(),
	)

	status := m.status
	style := statusStyle
	if m.statusErr {
		style = statusErrStyle
	}

	help := helpStyle.Render(
		"tab/←/→ panes · ↑/↓ move · space toggle/apply · ctrl+s save · ctrl+r reload · ctrl+d delete preset · q quit",
	)

	return lipgloss.JoinVertical(lipgloss.Left, panes, style.Render(status), help)
}

// serverMarker prefixes servers with their enabled state for the selected
// environment.
func (m Model) serverMarker(id string) string {
	if m.cfg.IsEnabled(m.currentEnv(), id) {
		return enabledStyle.Render("[x] ")
	}
	return "[ ] "
}

func (m Model) renderList(title string, items []string, cursor int, p pane, marker func(string) string) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	if len(items) == 0 {
		b.WriteString(helpStyle.Render("(none)"))
	}
	for i, item := range items {
		prefix := "  "
		if i == cursor && m.focus == p {
			prefix = cursorStyle.Render("> ")
		}
		b.WriteString(prefix)
		if marker != nil {
			b.WriteString(marker(item))
		}
		b.WriteString(item)
		if i < len(items)-1 {
			b.WriteString("\n")
		}
	}

	return m.paneFrame(p).Render(b.String())
}

func (m Model) renderPresetInput() string {
	content := fmt.Sprintf("%s\n%s", titleStyle.Render("New Preset"), m.presetInput.View())
	return m.paneFrame(panePresetName).Render(content)
}

func (m Model) paneFrame(p pane) lipgloss.Style {
	if m.focus == p {
		return focusedPaneStyle
	}
	return paneStyle
}
