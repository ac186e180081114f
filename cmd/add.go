package cmd

import (
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"

	"github.com/mcpalette/mcpalette/internal/config"
	"github.com/mcpalette/mcpalette/internal/log"
)

// addCmd is the parent for resource-adding subcommands.
var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add resources like servers.",
	Long:  `Parent command for adding resources managed by mcpalette.`,
}

var addServerCommand string
var addServerEnv []string

// addServerCmd defines a new MCP server in the source document.
var addServerCmd = &cobra.Command{
	Use:   "server <id>",
	Short: "Adds an MCP server definition.",
	Long: `Adds a server to the source document. The --command flag takes the full
command line, split shell-style into command and arguments:

  mcpalette add server firecrawl-mcp \
    --command "npx -y firecrawl-mcp" \
    --env FIRECRAWL_API_KEY='$FIRECRAWL_API_KEY'

Environment variable references in --env values are kept as-is and expanded
at render time.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := args[0]

		words, err := shellquote.Split(addServerCommand)
		if err != nil {
			log.Fatal("Invalid --command value: %v", err)
		}
		if len(words) == 0 {
			log.Fatal("--command cannot be empty")
		}

		server := config.Server{Command: words[0], Args: words[1:]}
		if len(addServerEnv) > 0 {
			server.Env = make(map[string]string, len(addServerEnv))
			for _, kv := range addServerEnv {
				key, value, found := strings.Cut(kv, "=")
				if !found || key == "" {
					log.Fatal("Invalid --env value '%s', expected KEY=VALUE", kv)
				}
				server.Env[key] = value
			}
		}

		cfg, err := config.Load()
		if err != nil {
			log.Fatal("Error loading config: %v", err)
		}

		if _, exists := cfg.Servers[id]; exists {
			log.Warn("Overwriting existing server '%s'.", id)
		}
		cfg.Servers[id] = server

		if err := config.Save(cfg); err != nil {
			log.Fatal("Error saving config: %v", err)
		}

		log.Success("Added MCP server '%s'.", id)
		log.Detail("Enable it with 'mcpalette toggle <environment> %s'.", id)
	},
}

func init() {
	addServerCmd.Flags().StringVar(&addServerCommand, "command", "", "Full command line for the server (required)")
	addServerCmd.Flags().StringArrayVar(&addServerEnv, "env", nil, "Environment variable as KEY=VALUE (repeatable)")
	_ = addServerCmd.MarkFlagRequired("command")

	addCmd.AddCommand(addServerCmd)
	rootCmd.AddCommand(addCmd)
}
