package cmd

import (
	"fmt"
	"os"

	"github.com/requireiot/revheader/internal/config"
	"github.com/requireiot/revheader/internal/header"
	"github.com/spf13/cobra"
)

var checkFile string

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that the generated header matches the working copy",
	Long: `Check that the generated header matches the working copy.

Re-queries the VCS and compares the result against the revision macro in
the existing generated header. Exits non-zero when the header is missing
or stale. The timestamp comment is ignored; only the macro value counts.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Load configuration
		cfg, err := config.Load(GetConfigPath())
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		return runCheck(cfg)
	},
}

func init() {
	checkCmd.Flags().StringVar(&checkFile, "file", "", "header file to check (default: resolved include dir)")
	rootCmd.AddCommand(checkCmd)
}

// runCheck compares the header's revision macro against a fresh VCS query.
func runCheck(cfg *config.Config) error {
	revision, err := queryRevision(cfg)
	if err != nil {
		return fmt.Errorf("querying revision: %w", err)
	}

	path := checkFile
	if path == "" {
		path = header.LocatePath(cfg)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading header: %w", err)
	}

	have, ok := header.ParseMacro(string(content), cfg.Header.RevisionMacro)
	if !ok {
		return fmt.Errorf("%s does not define %s", path, cfg.Header.RevisionMacro)
	}

	if have != revision {
		return fmt.Errorf("%s is stale: header has %q, working copy is %q", path, have, revision)
	}

	if IsVerbose() {
		fmt.Fprintf(os.Stderr, "%s is up to date (%s)\n", path, revision)
	}
	return nil
}
