package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/ynab-export/internal/paths"
	"github.com/mesh-intelligence/ynab-export/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	envPrefix = "YNAB_EXPORT"
	envAPIKey = "YNAB_EXPORT_API_KEY"

	cfgKeyOutputDir       = "output_dir"
	cfgKeySplitCategoryID = "split_category_id"
	cfgKeyBudgetID        = "budget_id"
	cfgKeyAPIURL          = "api_url"
)

// ErrAPIKeyMissing is returned when no access token is configured.
var ErrAPIKeyMissing = errors.New("api key not configured")

// loadConfig reads config.yaml from configDir using Viper. Every key can be
// overridden by a YNAB_EXPORT_<KEY> environment variable. A missing
// config.yaml is not an error.
func loadConfig(configDir string) (types.Config, error) {
	v := viper.New()
	v.SetDefault(cfgKeyOutputDir, "")
	v.SetDefault(cfgKeySplitCategoryID, types.DefaultSplitCategoryID)
	v.SetDefault(cfgKeyBudgetID, "")
	v.SetDefault(cfgKeyAPIURL, types.DefaultAPIURL)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return types.Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// readAPIKey returns the access token from YNAB_EXPORT_API_KEY or the
// api-key file in configDir, trimmed of surrounding whitespace.
func readAPIKey(configDir string) (string, error) {
	if key := strings.TrimSpace(os.Getenv(envAPIKey)); key != "" {
		return key, nil
	}
	path := paths.APIKeyFile(configDir)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: write a personal access token to %s or set %s", ErrAPIKeyMissing, path, envAPIKey)
		}
		return "", fmt.Errorf("read api key: %w", err)
	}
	key := strings.TrimSpace(string(data))
	if key == "" {
		return "", fmt.Errorf("%w: %s is empty", ErrAPIKeyMissing, path)
	}
	return key, nil
}
