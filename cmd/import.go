package cmd

import (
	"encoding/json"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcpalette/mcpalette/internal/config"
	"github.com/mcpalette/mcpalette/internal/log"
)

// importCmd merges server definitions copied from a README or registry page
// into the source document.
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Imports MCP server definitions from the clipboard.",
	Long: `Reads a JSON snippet with an "mcpServers" object from the clipboard, the
shape most MCP servers document for Claude Desktop, and merges the servers
into the source document. Existing servers with the same id are overwritten.`,
	Run: func(cmd *cobra.Command, args []string) {
		log.Info("Reading configuration from clipboard...")

		clipboardContent, err := getClipboard()
		if err != nil {
			log.Fatal("Failed to read clipboard: %v", err)
		}
		if clipboardContent == "" {
			log.Fatal("Clipboard is empty")
		}

		var snippet struct {
			MCPServers map[string]config.Server `json:"mcpServers"`
		}
		if err := json.Unmarshal([]byte(clipboardContent), &snippet); err != nil {
			log.Fatal("Failed to parse clipboard content as JSON: %v", err)
		}
		if len(snippet.MCPServers) == 0 {
			log.Fatal("Clipboard content does not contain an 'mcpServers' object")
		}

		cfg, err := config.Load()
		if err != nil {
			log.Fatal("Error loading config: %v", err)
		}

		for id, server := range snippet.MCPServers {
			if _, exists := cfg.Servers[id]; exists {
				log.Warn("Overwriting existing server '%s'", id)
			}
			cfg.Servers[id] = server
			log.Info("Added MCP server: %s", id)
		}

		if err := config.Save(cfg); err != nil {
			log.Fatal("Failed to save config: %v", err)
		}

		log.Success("Imported %d server(s) from clipboard.", len(snippet.MCPServers))
	},
}

// getClipboard gets the content of the clipboard.
func getClipboard() (string, error) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("pbpaste")
	case "linux":
		cmd = exec.Command("xclip", "-selection", "clipboard", "-o")
	case "windows":
		cmd = exec.Command("powershell.exe", "-command", "Get-Clipboard")
	default:
		return "", fmt.Errorf("unsupported platform")
	}

	out, err := cmd.Output()
	if err != nil {
		if _, ok := err.(*exec.ExitError); ok && len(out) > 0 {
			return string(out), nil
		}
		return "", fmt.Errorf("failed to execute clipboard command: %w", err)
	}

	return strings.TrimSpace(string(out)), nil
}

func init() {
	rootCmd.AddCommand(importCmd)
}
