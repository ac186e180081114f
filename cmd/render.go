package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/mcpalette/mcpalette/internal/config"
	"github.com/mcpalette/mcpalette/internal/expand"
	"github.com/mcpalette/mcpalette/internal/log"
	"github.com/mcpalette/mcpalette/internal/render"
)

var renderDryRun bool
var renderYes bool

// renderCmd renders output documents for one or all environments.
var renderCmd = &cobra.Command{
	Use:   "render [environment]",
	Short: "Renders and writes environment output files.",
	Long: `Renders the output configuration document for the named environment, or
for every environment when none is given, and writes each document to its
configPath. Existing output files are backed up first. Environment variable
references in server definitions are expanded against the current process
environment; unresolved references are reported as warnings and left
verbatim in the output.`,
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

		envIDs := cfg.EnvironmentIDs()
		if len(args) == 1 {
			if _, ok := cfg.Environments[args[0]]; !ok {
				log.Fatal("Unknown environment '%s'", args[0])
			}
			envIDs = args[:1]
		}
		if len(envIDs) == 0 {
			log.Warn("No environments defined. Nothing to render.")
			return
		}

		if renderDryRun {
			dryRun(cfg, envIDs)
			return
		}

		if !renderYes {
			envList := ""
			for _, id := range envIDs {
				envList += fmt.Sprintf("  - %s (%s)\n", id, cfg.Environments[id].ConfigPath)
			}
			var confirm bool
			prompt := &survey.Confirm{
				Message: fmt.Sprintf("This will write output files for:\n%sBackups will be created. Continue?", envList),
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

		s := spinner.New(spinner.CharSets[9], 100*time.Millisecond)
		s.Suffix = " Rendering..."
		s.Start()

		results := make([]render.EnvResult, 0, len(envIDs))
		for _, envID := range envIDs {
			results = append(results, render.WriteEnvironment(cfg, settings, envID, expand.Env()))
		}

		s.Stop()

		failed := 0
		for _, res := range results {
			if res.Err != nil {
				failed++
				log.Error("- %s: %v", res.Env, res.Err)
				continue
			}
			log.Success("- %s: wrote %s", res.Env, res.Path)
			for _, w := range res.Warnings {
				log.Warn("  %s", w)
			}
		}

		log.Info("\nRender finished.")
		log.Success("Successfully wrote %d environment(s).", len(results)-failed)
		if failed > 0 {
			log.Error("Failed to write %d environment(s).", failed)
			os.Exit(1)
		}
	},
}

// dryRun prints the encoded documents instead of writing them.
func dryRun(cfg *config.Config, envIDs []string) {
	for _, envID := range envIDs {
		env := cfg.Environments[envID]

		servers, warnings, err := render.Environment(cfg, envID, expand.Env())
		if err != nil {
			log.Error("- %s: %v", envID, err)
			continue
		}
		doc, err := render.Document(env.Mode, servers)
		if err != nil {
			log.Error("- %s: %v", envID, err)
			continue
		}
		data, err := render.Encode(doc, env.ConfigPath)
		if err != nil {
			log.Error("- %s: %v", envID, err)
			continue
		}

		log.Info("# %s -> %s", envID, env.ConfigPath)
		fmt.Print(string(data))
		for _, w := range warnings {
			log.Warn("%s", w)
		}
	}
}

func init() {
	renderCmd.Flags().BoolVar(&renderDryRun, "dry-run", false, "Print documents instead of writing them")
	renderCmd.Flags().BoolVarP(&renderYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(renderCmd)
}
