package cmd

import (
	"fmt"
	"os"

	"github.com/requireiot/revheader/internal/config"
	"github.com/requireiot/revheader/internal/header"
	"github.com/requireiot/revheader/internal/vcs"
	"github.com/spf13/cobra"
)

var (
	generateEnv        string
	generateProjectDir string
	generateOutput     string
	generateTemplate   string
	generateOnError    string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Query the VCS and write the revision header",
	Long: `Query the VCS and write the revision header.

Queries the version-control client for the working-copy revision,
renders the header, writes it to the resolved include directory, and
prints the compiler macro-definition fragment to stdout.

With --env, the header additionally defines the build-environment macro
and the active environment is announced on stdout.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Load configuration
		cfg, err := config.Load(GetConfigPath())
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		if generateOnError != "" {
			cfg.VCS.OnError = generateOnError
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("validating config: %w", err)
			}
		}

		return runGenerate(cfg)
	},
}

func init() {
	generateCmd.Flags().StringVar(&generateEnv, "env", "", "active build environment name (enables the environment macro)")
	generateCmd.Flags().StringVar(&generateProjectDir, "project-dir", "", "project root used when include/ must be created (default: working directory)")
	generateCmd.Flags().StringVar(&generateOutput, "output", "", "output file path override (bypasses include dir resolution)")
	generateCmd.Flags().StringVar(&generateTemplate, "template", "", "path to custom header template (default: from config)")
	generateCmd.Flags().StringVar(&generateOnError, "on-vcs-error", "", "policy for a failed VCS query: degrade or abort (default: from config)")
	rootCmd.AddCommand(generateCmd)
}

// runGenerate performs one full generation pass: query, render, write.
func runGenerate(cfg *config.Config) error {
	revision, err := queryRevision(cfg)
	if err != nil {
		if cfg.VCS.OnError == config.PolicyAbort {
			if IsVerbose() {
				fmt.Fprintf(os.Stderr, "Skipping header generation: %v\n", err)
			}
			return nil
		}
		// Degrade: an unversioned tree still gets a header, with an
		// empty revision string.
		if IsVerbose() {
			fmt.Fprintf(os.Stderr, "Warning: no revision available: %v\n", err)
		}
		revision = ""
	}

	fmt.Println(header.DefineFlag(cfg.Header.RevisionMacro, revision))
	if generateEnv != "" {
		fmt.Println("Building", generateEnv)
	}

	gen, err := newGenerator(cfg, generateTemplate)
	if err != nil {
		return err
	}

	text, err := gen.Render(header.NewInfo(revision, generateEnv))
	if err != nil {
		return fmt.Errorf("rendering header: %w", err)
	}

	outputPath := generateOutput
	if outputPath == "" {
		outputPath, err = header.ResolvePath(cfg, generateProjectDir)
		if err != nil {
			return fmt.Errorf("resolving output path: %w", err)
		}
	}

	if err := header.Write(outputPath, text); err != nil {
		return err
	}

	if IsVerbose() {
		fmt.Fprintf(os.Stderr, "Wrote %s\n", outputPath)
	}
	return nil
}

// queryRevision runs the configured VCS query once.
func queryRevision(cfg *config.Config) (string, error) {
	client := vcs.NewClient(cfg.VCS.Command, cfg.VCS.Args)
	return client.Query()
}

// newGenerator builds a header generator, loading a custom template when
// one is configured. An explicit path beats the config file.
func newGenerator(cfg *config.Config, templatePath string) (*header.Generator, error) {
	gen, err := header.NewGenerator(cfg.Header.RevisionMacro, cfg.Header.EnvMacro)
	if err != nil {
		return nil, err
	}

	if templatePath == "" {
		templatePath = cfg.Header.Template
	}
	if templatePath != "" {
		if err := gen.LoadTemplate(templatePath); err != nil {
			return nil, fmt.Errorf("loading template: %w", err)
		}
	}

	return gen, nil
}
