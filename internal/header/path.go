package header

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/requireiot/revheader/internal/config"
)

// ResolvePath decides where the generated header is written, by priority:
// a configured include-directory override (config value, then environment
// variable), an existing include/ directory relative to the working
// directory, and finally an include/ directory created under projectDir.
// Directory creation is not guarded against the path already existing as
// something else; such collisions surface as the underlying error.
func ResolvePath(cfg *config.Config, projectDir string) (string, error) {
	if dir, ok := cfg.IncludeDirOverride(); ok {
		return filepath.Join(dir, cfg.Header.Filename), nil
	}

	if info, err := os.Stat("include"); err == nil && info.IsDir() {
		return filepath.Join("include", cfg.Header.Filename), nil
	}

	if projectDir == "" {
		projectDir = "."
	}
	dir := filepath.Join(projectDir, "include")
	if err := os.Mkdir(dir, 0755); err != nil {
		return "", fmt.Errorf("creating include directory: %w", err)
	}

	return filepath.Join(dir, cfg.Header.Filename), nil
}

// LocatePath returns where an already generated header is expected, using
// the same priority as ResolvePath but without creating anything.
func LocatePath(cfg *config.Config) string {
	if dir, ok := cfg.IncludeDirOverride(); ok {
		return filepath.Join(dir, cfg.Header.Filename)
	}
	return filepath.Join("include", cfg.Header.Filename)
}
