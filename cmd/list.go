package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mcpalette/mcpalette/internal/config"
	"github.com/mcpalette/mcpalette/internal/log"
)

// listCmd prints the servers and environments in the source document.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists configured servers and environments.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			log.Fatal("Error loading config: %v", err)
		}

		serverIDs := cfg.ServerIDs()
		if len(serverIDs) == 0 {
			log.Warn("No MCP servers defined. Use 'mcpalette add server' or 'mcpalette import'.")
		} else {
			log.Info("MCP servers:")
			for _, id := range serverIDs {
				server := cfg.Servers[id]
				log.Printf(log.DetailColor, "- %s: %s", id, server.Command)
				for _, arg := range server.Args {
					log.Printf(log.DetailColor, " %s", arg)
				}
				log.Printf(log.DetailColor, "\n")
			}
		}

		envIDs := cfg.EnvironmentIDs()
		if len(envIDs) == 0 {
			log.Warn("No environments defined.")
			return
		}

		log.Info("\nEnvironments:")
		for _, envID := range envIDs {
			env := cfg.Environments[envID]
			log.Printf(log.InfoColor, "- %s (mode: %s) -> %s\n", envID, env.Mode, env.ConfigPath)
			for _, id := range serverIDs {
				marker := "[ ]"
				if cfg.IsEnabled(envID, id) {
					marker = "[x]"
				}
				log.Printf(log.DetailColor, "    %s %s\n", marker, id)
			}
			if names, err := cfg.PresetNames(envID); err == nil && len(names) > 0 {
				log.Printf(log.DetailColor, "    presets: ")
				for i, name := range names {
					if i > 0 {
						log.Printf(log.DetailColor, ", ")
					}
					log.Printf(log.DetailColor, "%s", name)
				}
				log.Printf(log.DetailColor, "\n")
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
