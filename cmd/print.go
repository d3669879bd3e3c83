package cmd

import (
	"fmt"
	"os"

	"github.com/requireiot/revheader/internal/config"
	"github.com/requireiot/revheader/internal/header"
	"github.com/spf13/cobra"
)

var (
	printEnv      string
	printTemplate string
)

var printCmd = &cobra.Command{
	Use:   "print",
	Short: "Render the revision header to stdout",
	Long: `Render the revision header to stdout.

Runs the same VCS query and template rendering as generate, but writes
nothing to disk. Useful for inspecting what generate would produce.
The VCS failure policy applies exactly as in generate: under abort,
nothing is printed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Load configuration
		cfg, err := config.Load(GetConfigPath())
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		return runPrint(cfg)
	},
}

func init() {
	printCmd.Flags().StringVar(&printEnv, "env", "", "active build environment name (enables the environment macro)")
	printCmd.Flags().StringVar(&printTemplate, "template", "", "path to custom header template (default: from config)")
	rootCmd.AddCommand(printCmd)
}

// runPrint renders the header and prints it without touching the filesystem.
func runPrint(cfg *config.Config) error {
	revision, err := queryRevision(cfg)
	if err != nil {
		// Same policy semantics as generate: abort skips silently,
		// degrade renders with an empty revision.
		if cfg.VCS.OnError == config.PolicyAbort {
			if IsVerbose() {
				fmt.Fprintf(os.Stderr, "Skipping header generation: %v\n", err)
			}
			return nil
		}
		revision = ""
	}

	gen, err := newGenerator(cfg, printTemplate)
	if err != nil {
		return err
	}

	text, err := gen.Render(header.NewInfo(revision, printEnv))
	if err != nil {
		return fmt.Errorf("rendering header: %w", err)
	}

	fmt.Print(text)
	return nil
}
