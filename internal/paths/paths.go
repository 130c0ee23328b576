// Package paths locates the configuration directory, the API key file and
// the directory tables are exported to.
package paths

import (
	"os"
	"path/filepath"
)

// ProjectName names the per-user configuration directory.
const ProjectName = "ynab"

// APIKeyFileName is the file in the config directory holding the access token.
const APIKeyFileName = "api-key"

// Environment variables overriding the directories.
const (
	EnvConfigDir = "YNAB_EXPORT_CONFIG_DIR"
	EnvOutputDir = "YNAB_EXPORT_OUTPUT_DIR"
)

// DefaultConfigDir returns <user config dir>/ynab, i.e. $XDG_CONFIG_HOME/ynab
// or ~/.config/ynab on Linux and the platform equivalent elsewhere.
func DefaultConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ProjectName), nil
}

// ResolveConfigDir picks the --config-dir flag, then $YNAB_EXPORT_CONFIG_DIR,
// then DefaultConfigDir.
func ResolveConfigDir(flag string) (string, error) {
	if dir, ok := firstSet(flag, os.Getenv(EnvConfigDir)); ok {
		return filepath.Abs(dir)
	}
	return DefaultConfigDir()
}

// ResolveOutputDir picks the --out flag, then output_dir from config.yaml,
// then $YNAB_EXPORT_OUTPUT_DIR, then the working directory.
func ResolveOutputDir(flag, configured string) (string, error) {
	if dir, ok := firstSet(flag, configured, os.Getenv(EnvOutputDir)); ok {
		return filepath.Abs(dir)
	}
	return os.Getwd()
}

// APIKeyFile returns the path of the access token file in configDir.
func APIKeyFile(configDir string) string {
	return filepath.Join(configDir, APIKeyFileName)
}

func firstSet(candidates ...string) (string, bool) {
	for _, c := range candidates {
		if c != "" {
			return c, true
		}
	}
	return "", false
}
