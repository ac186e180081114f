package cmd

import (
	"errors"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/mcpalette/mcpalette/internal/backup"
	"github.com/mcpalette/mcpalette/internal/config"
	"github.com/mcpalette/mcpalette/internal/log"
	"github.com/mcpalette/mcpalette/internal/util"
)

// restoreCmd rolls environment output files back to their latest backups.
var restoreCmd = &cobra.Command{
	Use:   "restore [environment]",
	Short: "Restores environment output files from the latest backups.",
	Long: `Restores the output configuration file of the named environment, or of
every environment when none is given, from the most recent backup in the
backup directory. The source document is not touched.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			log.Fatal("Error loading config: %v", err)
		}
		settings, err := config.LoadSettings()
		if err != nil {
			log.Fatal("Error loading settings: %v", err)
		}

		backupDir, err := util.ExpandPath(settings.Backups.Path)
		if err != nil {
			log.Fatal("Error expanding backup path '%s': %v", settings.Backups.Path, err)
		}

		envIDs := cfg.EnvironmentIDs()
		if len(args) == 1 {
			if _, ok := cfg.Environments[args[0]]; !ok {
				log.Fatal("Unknown environment '%s'", args[0])
			}
			envIDs = args[:1]
		}
		if len(envIDs) == 0 {
			log.Warn("No environments defined. Nothing to restore.")
			return
		}

		s := spinner.New(spinner.CharSets[9], 100*time.Millisecond)
		s.Suffix = " Restoring..."
		s.Start()

		restored := make(map[string]string)
		skipped := make(map[string]bool)
		failures := make(map[string]error)
		for _, envID := range envIDs {
			env := cfg.Environments[envID]
			dest, err := util.ExpandPath(env.ConfigPath)
			if err != nil {
				failures[envID] = err
				continue
			}
			name, err := backup.Restore(backupDir, envID, dest)
			if err != nil {
				if errors.Is(err, backup.ErrNoBackups) {
					skipped[envID] = true
				} else {
					failures[envID] = err
				}
				continue
			}
			restored[envID] = name
		}

		s.Stop()

		for _, envID := range envIDs {
			if err, failed := failures[envID]; failed {
				log.Error("- %s: %v", envID, err)
			} else if skipped[envID] {
				log.Warn("- %s: no backups found.", envID)
			} else {
				log.Success("- %s: restored from %s", envID, restored[envID])
			}
		}

		log.Info("\nRestore finished.")
		log.Success("Successfully restored %d environment(s).", len(restored))
		if len(failures) > 0 {
			log.Error("Failed to restore %d environment(s).", len(failures))
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(restoreCmd)
}
