package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/ynab-export/internal/paths"
	"github.com/mesh-intelligence/ynab-export/pkg/types"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	OutputDir       string `yaml:"output_dir,omitempty"`
	SplitCategoryID string `yaml:"split_category_id"`
	BudgetID        string `yaml:"budget_id,omitempty"`
	APIURL          string `yaml:"api_url"`
}

func newInitCmd(st *rootState) *cobra.Command {
	var apiKey string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the configuration directory",
		Long: `Create the configuration directory with a default config.yaml. With
--api-key the access token is written to the api-key file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, st.resolvedConfigDir, apiKey)
		},
	}
	cmd.Flags().StringVar(&apiKey, "api-key", "", "personal access token to store")
	return cmd
}

func runInit(cmd *cobra.Command, configDir, apiKey string) error {
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return sysError(fmt.Errorf("create config directory: %w", err))
	}

	configPath := filepath.Join(configDir, configFileExt)
	if err := writeConfigIfMissing(configPath); err != nil {
		return sysError(fmt.Errorf("write config: %w", err))
	}

	keyPath := paths.APIKeyFile(configDir)
	if key := strings.TrimSpace(apiKey); key != "" {
		if err := os.WriteFile(keyPath, []byte(key+"\n"), 0o600); err != nil {
			return sysError(fmt.Errorf("write api key: %w", err))
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "config: %s\n", configPath)
	if _, err := os.Stat(keyPath); err != nil {
		fmt.Fprintf(out, "api key: missing, write a personal access token to %s\n", keyPath)
	} else {
		fmt.Fprintf(out, "api key: %s\n", keyPath)
	}
	return nil
}

// writeConfigIfMissing creates config.yaml with default values if the file
// does not exist. If it already exists, the function returns nil (idempotent).
func writeConfigIfMissing(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	def := types.DefaultConfig()
	cfg := configFile{
		SplitCategoryID: def.SplitCategoryID,
		APIURL:          def.APIURL,
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}
