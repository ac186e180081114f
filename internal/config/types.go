package config

// Server defines a single MCP server invocation: the command to run, its
// arguments, and the environment variables handed to the process. String
// values may carry $VAR / ${VAR} tokens; those are expanded at render time,
// never at load time, so the source document keeps the references.
type Server struct {
	Command string            `json:"command"`
	Args    []string          `json:"args,omitempty"`
	Env     map[string]string `json:"env,omitempty"`
}

// Environment is one deployment target (e.g. Claude Desktop): where its
// rendered config file is written, the document shape to render ("mode"),
// which servers are currently enabled, and named presets of enable lists.
//
// Enable is a set; the slice only preserves insertion order so rendered
// output stays diff-stable. Membership, not position, is what matters.
type Environment struct {
	ConfigPath string              `json:"configPath"`
	Mode       string              `json:"mode,omitempty"`
	Enable     []string            `json:"enable,omitempty"`
	Presets    map[string][]string `json:"preset,omitempty"`
}

// Config is the source document: every known server plus every environment
// that can materialize a subset of them.
type Config struct {
	Servers      map[string]Server       `json:"mcpServers"`
	Environments map[string]*Environment `json:"environments,omitempty"`
}

// Settings represents the structure of settings.yaml, the app-level
// configuration kept next to the source document.
type Settings struct {
	Backups BackupSettings `yaml:"backups"`
}

// BackupSettings defines where output-file backups go and how many to keep
// per environment.
type BackupSettings struct {
	Path      string `yaml:"path"`
	Retention int    `yaml:"retention"`
}
