package cmd

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/mcpalette/mcpalette/internal/config"
	"github.com/mcpalette/mcpalette/internal/log"
)

// presetCmd groups the preset lifecycle commands.
var presetCmd = &cobra.Command{
	Use:   "preset",
	Short: "Manage named enable-set presets per environment.",
	Long: `A preset is a named snapshot of an environment's enable list. Saving
captures the current list, applying replaces the current list wholesale, and
deleting removes only the preset, never the enable list it produced.`,
}

var presetSaveCmd = &cobra.Command{
	Use:   "save <environment> <name>",
	Short: "Saves the environment's current enable list as a preset.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		envID, name := args[0], args[1]

		cfg, err := config.Load()
		if err != nil {
			log.Fatal("Error loading config: %v", err)
		}

		enabled, err := cfg.Enabled(envID)
		if err != nil {
			log.Fatal("%v", err)
		}
		if err := cfg.SavePreset(envID, name, enabled); err != nil {
			log.Fatal("%v", err)
		}
		if err := config.Save(cfg); err != nil {
			log.Fatal("Error saving config: %v", err)
		}

		log.Success("Saved preset '%s' in '%s' (%d servers).", name, envID, len(enabled))
	},
}

var presetApplyCmd = &cobra.Command{
	Use:   "apply <environment> <name>",
	Short: "Replaces the environment's enable list with a preset.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		envID, name := args[0], args[1]

		cfg, err := config.Load()
		if err != nil {
			log.Fatal("Error loading config: %v", err)
		}

		if err := cfg.ApplyPreset(envID, name); err != nil {
			log.Fatal("%v", err)
		}
		if err := config.Save(cfg); err != nil {
			log.Fatal("Error saving config: %v", err)
		}

		enabled, _ := cfg.Enabled(envID)
		log.Success("Applied preset '%s' to '%s' (%d servers enabled).", name, envID, len(enabled))
		log.Detail("Run 'mcpalette render %s' to rewrite the output file.", envID)
	},
}

var presetDeleteYes bool

var presetDeleteCmd = &cobra.Command{
	Use:     "delete <environment> <name>",
	Aliases: []string{"rm"},
	Short:   "Deletes a preset.",
	Args:    cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		envID, name := args[0], args[1]

		cfg, err := config.Load()
		if err != nil {
			log.Fatal("Error loading config: %v", err)
		}

		if !presetDeleteYes {
			var confirm bool
			prompt := &survey.Confirm{
				Message: fmt.Sprintf("Delete preset '%s' from environment '%s'?", name, envID),
				Default: false,
			}
			if err := survey.AskOne(prompt, &confirm); err != nil {
				log.Fatal("Error during confirmation: %v", err)
			}
			if !confirm {
				log.Info("Operation cancelled by user.")
				return
			}
		}

		if err := cfg.DeletePreset(envID, name); err != nil {
			log.Fatal("%v", err)
		}
		if err := config.Save(cfg); err != nil {
			log.Fatal("Error saving config: %v", err)
		}

		log.Success("Deleted preset '%s' from '%s'.", name, envID)
	},
}

var presetListCmd = &cobra.Command{
	Use:   "list <environment>",
	Short: "Lists an environment's presets.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		envID := args[0]

		cfg, err := config.Load()
		if err != nil {
			log.Fatal("Error loading config: %v", err)
		}

		names, err := cfg.PresetNames(envID)
		if err != nil {
			log.Fatal("%v", err)
		}
		if len(names) == 0 {
			log.Warn("No presets defined for '%s'.", envID)
			return
		}

		env := cfg.Environments[envID]
		log.Info("Presets for '%s':", envID)
		for _, name := range names {
			log.Printf(log.DetailColor, "- %s: %d server(s)\n", name, len(env.Presets[name]))
		}
	},
}

func init() {
	presetDeleteCmd.Flags().BoolVarP(&presetDeleteYes, "yes", "y", false, "Skip the confirmation prompt")

	presetCmd.AddCommand(presetSaveCmd)
	presetCmd.AddCommand(presetApplyCmd)
	presetCmd.AddCommand(presetDeleteCmd)
	presetCmd.AddCommand(presetListCmd)
	rootCmd.AddCommand(presetCmd)
}
