package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mcpalette/mcpalette/internal/config"
	"github.com/mcpalette/mcpalette/internal/log"
)

// toggleCmd flips one server in one environment and saves the document.
var toggleCmd = &cobra.Command{
	Use:   "toggle <environment> <server>",
	Short: "Enables or disables a server for an environment.",
	Long: `Flips the server's membership in the environment's enable list and saves
the source document. Output files are not rewritten; run 'mcpalette render'
to materialize the change.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		envID, serverID := args[0], args[1]

		cfg, err := config.Load()
		if err != nil {
			log.Fatal("Error loading config: %v", err)
		}

		if err := cfg.Toggle(envID, serverID); err != nil {
			log.Fatal("%v", err)
		}
		if err := config.Save(cfg); err != nil {
			log.Fatal("Error saving config: %v", err)
		}

		if cfg.IsEnabled(envID, serverID) {
			log.Success("Enabled '%s' in '%s'.", serverID, envID)
		} else {
			log.Success("Disabled '%s' in '%s'.", serverID, envID)
		}
	},
}

func init() {
	rootCmd.AddCommand(toggleCmd)
}
