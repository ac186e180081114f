package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mcpalette/mcpalette/internal/config"
	"github.com/mcpalette/mcpalette/internal/expand"
	"github.com/mcpalette/mcpalette/internal/log"
	"github.com/mcpalette/mcpalette/internal/tui"
)

// rootCmd opens the interactive TUI when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "mcpalette",
	Short: "Manage MCP server configurations across environments.",
	Long: `mcpalette manages Model Context Protocol (MCP) server definitions in a
central config.json and materializes per-environment configuration files
(Claude Desktop, Cursor, VS Code, Windsurf) from the servers each environment
enables. Environment variable references ($VAR, ${VAR}) in server definitions
are expanded when the outputs are rendered.

Without a subcommand, mcpalette opens an interactive screen for toggling
servers and managing presets.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			log.Fatal("Error loading config: %v", err)
		}
		settings, err := config.LoadSettings()
		if err != nil {
			log.Fatal("Error loading settings: %v", err)
		}
		if err := tui.Run(cfg, settings, expand.Env()); err != nil {
			log.Fatal("TUI error: %v", err)
		}
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
