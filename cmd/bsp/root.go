package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/bsp-cli/bsp/internal/version"
	"github.com/bsp-cli/bsp/pkg/commands/create"
	"github.com/bsp-cli/bsp/pkg/config"
	"github.com/bsp-cli/bsp/pkg/logging"
	"github.com/bsp-cli/bsp/pkg/ui"
)

var (
	verbosity    int
	projectName  string
	templateName string
	featureList  []string
	metadataFile string
	listFeatures bool
	preview      bool

	rootCmd = &cobra.Command{
		Use:   "bsp",
		Short: "Bootstrap a new project from a template",
		Long: `bsp creates a new project from a local template directory or a remote
git repository, renames and rewrites the template's placeholders to the
new project's name, applies optional metadata, installs the selected
feature packages, and initializes a git repository.`,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE:          runCreate,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")

	rootCmd.Flags().StringVarP(&projectName, "project-name", "n", "", "Project name in snake_case")
	rootCmd.Flags().StringVarP(&templateName, "template-name", "t", create.DefaultTemplateName, "Template name or git URL")
	rootCmd.Flags().StringArrayVarP(&featureList, "features", "f", nil, "Features to install (repeatable)")
	rootCmd.Flags().StringVarP(&metadataFile, "metadata", "m", "", "Path to YAML metadata file for template customization")
	rootCmd.Flags().BoolVarP(&listFeatures, "list-features", "L", false, "List available features")
	rootCmd.Flags().BoolVarP(&preview, "preview", "P", false, "Preview the operation without making changes")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(completionCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	_, err = create.Run(cmd.Context(), create.Options{
		ProjectName:  projectName,
		TemplateName: templateName,
		Features:     featureList,
		MetadataFile: metadataFile,
		ListFeatures: listFeatures,
		Preview:      preview,
		Config:       cfg,
		Console:      ui.NewConsole(),
	})
	return err
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("bsp version %s\n", version.Version)
		fmt.Printf("  commit: %s\n", version.Commit)
		fmt.Printf("  built:  %s\n", version.Date)
	},
}

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `To load completions:

Bash:
  $ source <(bsp completion bash)

Zsh:
  $ bsp completion zsh > "${fpath[1]}/_bsp"

Fish:
  $ bsp completion fish | source

PowerShell:
  PS> bsp completion powershell | Out-String | Invoke-Expression
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	Run: func(cmd *cobra.Command, args []string) {
		switch args[0] {
		case "bash":
			if err := cmd.Root().GenBashCompletion(cmd.OutOrStdout()); err != nil {
				log.Error().Err(err).Msg("Failed to generate bash completion")
			}
		case "zsh":
			if err := cmd.Root().GenZshCompletion(cmd.OutOrStdout()); err != nil {
				log.Error().Err(err).Msg("Failed to generate zsh completion")
			}
		case "fish":
			if err := cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true); err != nil {
				log.Error().Err(err).Msg("Failed to generate fish completion")
			}
		case "powershell":
			if err := cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout()); err != nil {
				log.Error().Err(err).Msg("Failed to generate powershell completion")
			}
		}
	},
}
