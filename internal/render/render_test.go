package render

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcpalette/mcpalette/internal/config"
	"github.com/mcpalette/mcpalette/internal/expand"
)

func sampleConfig() *config.Config {
	return &config.Config{
		Servers: map[string]config.Server{
			"firecrawl-mcp": {
				Command: "npx",
				Args:    []string{"-y", "firecrawl-mcp"},
				Env:     map[string]string{"FIRECRAWL_API_KEY": "$FIRECRAWL_API_KEY"},
			},
			"filesystem": {
				Command: "npx",
				Args:    []string{"-y", "@modelcontextprotocol/server-filesystem", "$HOME/projects"},
			},
		},
		Environments: map[string]*config.Environment{
			"claudeDesktop": {
				ConfigPath: "/tmp/claude_desktop_config.json",
				Mode:       ModeClaudeDesktop,
				Enable:     []string{"firecrawl-mcp"},
			},
		},
	}
}

func TestEnvironment(t *testing.T) {
	t.Run("expands enabled servers", func(t *testing.T) {
		lookup := expand.Map(map[string]string{"FIRECRAWL_API_KEY": "abc123"})

		servers, warnings, err := Environment(sampleConfig(), "claudeDesktop", lookup)
		require.NoError(t, err)
		assert.Empty(t, warnings)

		require.Len(t, servers, 1)
		assert.Equal(t, config.Server{
			Command: "npx",
			Args:    []string{"-y", "firecrawl-mcp"},
			Env:     map[string]string{"FIRECRAWL_API_KEY": "abc123"},
		}, servers["firecrawl-mcp"])
	})

	t.Run("unknown environment", func(t *testing.T) {
		_, _, err := Environment(sampleConfig(), "nope", expand.Map(nil))
		assert.ErrorIs(t, err, config.ErrUnknownEnvironment)
	})

	t.Run("dangling reference aborts the render", func(t *testing.T) {
		cfg := sampleConfig()
		// Bypass Validate to simulate a model corrupted after load.
		cfg.Environments["claudeDesktop"].Enable = []string{"ghost"}

		_, _, err := Environment(cfg, "claudeDesktop", expand.Map(nil))
		assert.ErrorIs(t, err, config.ErrDanglingReference)
	})

	t.Run("missing variables warn and keep the token", func(t *testing.T) {
		cfg := sampleConfig()
		cfg.Environments["claudeDesktop"].Enable = []string{"firecrawl-mcp", "filesystem"}

		servers, warnings, err := Environment(cfg, "claudeDesktop", expand.Map(nil))
		require.NoError(t, err)

		assert.Equal(t, "$FIRECRAWL_API_KEY", servers["firecrawl-mcp"].Env["FIRECRAWL_API_KEY"])
		assert.Equal(t, "$HOME/projects", servers["filesystem"].Args[2])
		assert.Equal(t, []Warning{
			{Server: "firecrawl-mcp", Field: "env.FIRECRAWL_API_KEY", Variable: "FIRECRAWL_API_KEY"},
			{Server: "filesystem", Field: "args[2]", Variable: "HOME"},
		}, warnings)
	})

	t.Run("server env is not used as a lookup", func(t *testing.T) {
		cfg := &config.Config{
			Servers: map[string]config.Server{
				"self-ref": {
					Command: "$TOKEN",
					Env:     map[string]string{"TOKEN": "$TOKEN"},
				},
			},
			Environments: map[string]*config.Environment{
				"env": {ConfigPath: "/tmp/out.json", Mode: ModeClaudeDesktop, Enable: []string{"self-ref"}},
			},
		}

		servers, warnings, err := Environment(cfg, "env", expand.Map(nil))
		require.NoError(t, err)
		assert.Equal(t, "$TOKEN", servers["self-ref"].Command)
		assert.Equal(t, "$TOKEN", servers["self-ref"].Env["TOKEN"])
		assert.Len(t, warnings, 2) // command and env.TOKEN both reference $TOKEN
	})

	t.Run("deterministic output", func(t *testing.T) {
		cfg := sampleConfig()
		cfg.Environments["claudeDesktop"].Enable = []string{"firecrawl-mcp", "filesystem"}
		lookup := expand.Map(map[string]string{"FIRECRAWL_API_KEY": "k", "HOME": "/home/u"})

		first, firstWarnings, err := Environment(cfg, "claudeDesktop", lookup)
		require.NoError(t, err)
		second, secondWarnings, err := Environment(cfg, "claudeDesktop", lookup)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, firstWarnings, secondWarnings)
	})
}

func TestDocument(t *testing.T) {
	servers := map[string]config.Server{
		"firecrawl-mcp": {Command: "npx", Args: []string{"-y", "firecrawl-mcp"}},
	}

	t.Run("claude_desktop shape", func(t *testing.T) {
		doc, err := Document(ModeClaudeDesktop, servers)
		require.NoError(t, err)
		assert.Contains(t, doc, "mcpServers")
	})

	t.Run("vscode and cursor shape", func(t *testing.T) {
		for _, mode := range []string{ModeVSCode, ModeCursor} {
			doc, err := Document(mode, servers)
			require.NoError(t, err)
			assert.Contains(t, doc, "mcp.servers")
		}
	})

	t.Run("windsurf shape", func(t *testing.T) {
		doc, err := Document(ModeWindsurf, servers)
		require.NoError(t, err)
		assert.Contains(t, doc, "servers")
	})

	t.Run("unknown mode fails", func(t *testing.T) {
		_, err := Document("solaris", servers)
		assert.ErrorIs(t, err, ErrUnsupportedMode)
	})

	t.Run("empty mode fails", func(t *testing.T) {
		_, err := Document("", servers)
		assert.ErrorIs(t, err, ErrUnsupportedMode)
	})
}

// The end-to-end fixture: one enabled server, one variable, claude_desktop
// mode.
func TestRenderEndToEnd(t *testing.T) {
	lookup := expand.Map(map[string]string{"FIRECRAWL_API_KEY": "abc123"})

	servers, warnings, err := Environment(sampleConfig(), "claudeDesktop", lookup)
	require.NoError(t, err)
	require.Empty(t, warnings)

	doc, err := Document(ModeClaudeDesktop, servers)
	require.NoError(t, err)

	data, err := Encode(doc, "/tmp/claude_desktop_config.json")
	require.NoError(t, err)

	var got map[string]map[string]struct {
		Command string            `json:"command"`
		Args    []string          `json:"args"`
		Env     map[string]string `json:"env"`
	}
	require.NoError(t, json.Unmarshal(data, &got))

	entry := got["mcpServers"]["firecrawl-mcp"]
	assert.Equal(t, "npx", entry.Command)
	assert.Equal(t, []string{"-y", "firecrawl-mcp"}, entry.Args)
	assert.Equal(t, map[string]string{"FIRECRAWL_API_KEY": "abc123"}, entry.Env)
}

func TestEncode(t *testing.T) {
	doc := map[string]interface{}{
		"mcpServers": map[string]interface{}{
			"a": map[string]interface{}{"command": "echo"},
		},
	}

	t.Run("json by default", func(t *testing.T) {
		data, err := Encode(doc, "/tmp/out.json")
		require.NoError(t, err)
		assert.True(t, json.Valid(data))
		assert.Contains(t, string(data), "\"mcpServers\"")
	})

	t.Run("yaml by extension", func(t *testing.T) {
		data, err := Encode(doc, "/tmp/out.yaml")
		require.NoError(t, err)
		assert.Contains(t, string(data), "mcpServers:")
	})

	t.Run("toml by extension", func(t *testing.T) {
		data, err := Encode(doc, "/tmp/out.toml")
		require.NoError(t, err)
		assert.Contains(t, string(data), "[mcpServers")
	})

	t.Run("stable across encodes", func(t *testing.T) {
		first, err := Encode(doc, "/tmp/out.json")
		require.NoError(t, err)
		second, err := Encode(doc, "/tmp/out.json")
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}
