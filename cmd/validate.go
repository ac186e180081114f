package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mcpalette/mcpalette/internal/config"
	"github.com/mcpalette/mcpalette/internal/log"
	"github.com/mcpalette/mcpalette/internal/render"
)

// validateCmd checks the source document's referential integrity and each
// environment's render mode without writing anything.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validates the source document.",
	Long: `Checks that every server referenced by an environment's enable list or by
a preset exists, and that every environment's mode names a known document
shape. Load already refuses documents with broken references; this command
reports the details for a document edited by hand.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			log.Fatal("%v", err)
		}

		ok := true
		for _, envID := range cfg.EnvironmentIDs() {
			env := cfg.Environments[envID]
			if _, err := render.Document(env.Mode, nil); err != nil {
				log.Error("- %s: %v", envID, err)
				ok = false
			}
			if env.ConfigPath == "" {
				log.Warn("- %s: no configPath set", envID)
			}
		}

		if !ok {
			log.Fatal("Configuration is invalid.")
		}
		log.Success("Configuration is valid: %d server(s), %d environment(s).",
			len(cfg.Servers), len(cfg.Environments))
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
