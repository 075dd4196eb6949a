package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// EnvConfigPath names the YAML file to read when no --config flag is given.
const EnvConfigPath = "BALLOTTUI_CONFIG"

// LoadDotEnv copies variables from the given .env files (default ".env")
// into the process environment. Variables already set win, and missing
// files are skipped.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// Path returns the settings file to read: flag when set, else
// $BALLOTTUI_CONFIG. Empty means no file.
func Path(flag string) string {
	if p := strings.TrimSpace(flag); p != "" {
		return p
	}
	return strings.TrimSpace(os.Getenv(EnvConfigPath))
}

// Resolve layers the settings in order: defaults, the YAML file at path
// (falling back to $BALLOTTUI_CONFIG), then BALLOTTUI_* variables from the
// environment or .env. Callers apply flags on top and then Validate.
func Resolve(path string) (Election, error) {
	if err := LoadDotEnv(); err != nil {
		return Default(), err
	}

	path = Path(path)

	cfg := Default()
	if path != "" {
		loaded, err := Load(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	cfg.ApplyEnv()
	return cfg, nil
}
