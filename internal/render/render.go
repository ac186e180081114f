// Package render turns the configuration model into client-ready output
// documents: it selects an environment's enabled servers, expands variable
// references in every string field, shapes the document for the target
// client, and writes it to the environment's configPath.
package render

import (
	"errors"
	"fmt"
	"sort"

	"github.com/mcpalette/mcpalette/internal/config"
	"github.com/mcpalette/mcpalette/internal/expand"
)

// ErrUnsupportedMode is returned when an environment's mode names a document
// shape this version doesn't know. An unknown mode never silently falls back
// to a default shape.
var ErrUnsupportedMode = errors.New("unsupported render mode")

// Modes recognized by Document.
const (
	ModeClaudeDesktop = "claude_desktop"
	ModeVSCode        = "vscode"
	ModeCursor        = "cursor"
	ModeWindsurf      = "windsurf"
)

// Warning records a variable reference that could not be resolved during a
// render. Renders never fail on these; the token stays verbatim in the
// output document.
type Warning struct {
	Server   string // server id
	Field    string // "command", "args[2]", "env.API_KEY"
	Variable string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s: $%s is not set", w.Server, w.Field, w.Variable)
}

// Environment selects the environment's enabled servers and expands every
// string field through lookup. The result is deterministic for a given model
// and lookup. Enabled ids are re-checked against the server map even though
// Validate enforces the same invariant at load time; a dangling reference
// here aborts the render rather than producing a config for a server that
// doesn't exist.
func Environment(cfg *config.Config, envID string, lookup expand.Lookup) (map[string]config.Server, []Warning, error) {
	env, ok := cfg.Environments[envID]
	if !ok {
		return nil, nil, fmt.Errorf("%w: '%s'", config.ErrUnknownEnvironment, envID)
	}

	servers := make(map[string]config.Server, len(env.Enable))
	var warnings []Warning
	for _, id := range env.Enable {
		server, ok := cfg.Servers[id]
		if !ok {
			return nil, nil, fmt.Errorf("%w: environment '%s' enables '%s'", config.ErrDanglingReference, envID, id)
		}
		expanded, w := expandServer(id, server, lookup)
		servers[id] = expanded
		warnings = append(warnings, w...)
	}
	return servers, warnings, nil
}

// expandServer expands command, each argument, and each env value of one
// server. Env values are expanded against the caller's lookup, never against
// the server's own env map.
func expandServer(id string, s config.Server, lookup expand.Lookup) (config.Server, []Warning) {
	var warnings []Warning
	record := func(field string, missing []string) {
		for _, name := range missing {
			warnings = append(warnings, Warning{Server: id, Field: field, Variable: name})
		}
	}

	out := config.Server{}
	var missing []string

	out.Command, missing = expand.Expand(s.Command, lookup)
	record("command", missing)

	if s.Args != nil {
		out.Args = make([]string, len(s.Args))
		for i, arg := range s.Args {
			out.Args[i], missing = expand.Expand(arg, lookup)
			record(fmt.Sprintf("args[%d]", i), missing)
		}
	}

	if s.Env != nil {
		out.Env = make(map[string]string, len(s.Env))
		keys := make([]string, 0, len(s.Env))
		for k := range s.Env {
			keys = append(keys, k)
		}
		sort.Strings(keys) // deterministic warning order
		for _, k := range keys {
			out.Env[k], missing = expand.Expand(s.Env[k], lookup)
			record("env."+k, missing)
		}
	}

	return out, warnings
}

// Document shapes the expanded server set for the client identified by mode.
func Document(mode string, servers map[string]config.Server) (map[string]interface{}, error) {
	entries := make(map[string]interface{}, len(servers))
	for id, s := range servers {
		entries[id] = serverEntry(s)
	}

	switch mode {
	case ModeClaudeDesktop:
		return map[string]interface{}{"mcpServers": entries}, nil
	case ModeVSCode, ModeCursor:
		return map[string]interface{}{"mcp.servers": entries}, nil
	case ModeWindsurf:
		return map[string]interface{}{"servers": entries}, nil
	default:
		return nil, fmt.Errorf("%w: '%s'", ErrUnsupportedMode, mode)
	}
}

func serverEntry(s config.Server) map[string]interface{} {
	entry := map[string]interface{}{
		"command": s.Command,
	}
	if len(s.Args) > 0 {
		entry["args"] = s.Args
	}
	if len(s.Env) > 0 {
		entry["env"] = s.Env
	}
	return entry
}
