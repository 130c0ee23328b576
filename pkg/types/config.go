package types

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// DefaultSplitCategoryID is the category id the service has been observed to
// attach to split transactions. It is not known to be stable across budgets;
// Config.SplitCategoryID overrides it.
const DefaultSplitCategoryID = "4f42d139-ded2-4782-b16e-e944868fbf62"

// DefaultAPIURL is the base URL of the budgeting service API.
const DefaultAPIURL = "https://api.ynab.com/v1"

// Config holds the settings for one export run.
type Config struct {
	OutputDir       string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`
	SplitCategoryID string `json:"split_category_id" yaml:"split_category_id" mapstructure:"split_category_id"`
	BudgetID        string `json:"budget_id,omitempty" yaml:"budget_id,omitempty" mapstructure:"budget_id"`
	APIURL          string `json:"api_url" yaml:"api_url" mapstructure:"api_url"`
}

// Config validation errors.
var (
	ErrOutputDirEmpty       = errors.New("output dir must not be empty")
	ErrSplitCategoryInvalid = errors.New("split category id must be a UUID")
	ErrAPIURLEmpty          = errors.New("api url must not be empty")
)

// DefaultConfig returns a Config that writes to the working directory.
func DefaultConfig() Config {
	return Config{
		OutputDir:       ".",
		SplitCategoryID: DefaultSplitCategoryID,
		APIURL:          DefaultAPIURL,
	}
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return ErrOutputDirEmpty
	}
	if _, err := uuid.Parse(c.SplitCategoryID); err != nil {
		return fmt.Errorf("%w: %q", ErrSplitCategoryInvalid, c.SplitCategoryID)
	}
	if c.APIURL == "" {
		return ErrAPIURLEmpty
	}
	return nil
}
