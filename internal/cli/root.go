// Package cli implements the ynab-export command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/ynab-export/internal/logger"
	"github.com/mesh-intelligence/ynab-export/internal/paths"
	"github.com/mesh-intelligence/ynab-export/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// exitError carries the process exit code for an error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func userError(err error) error { return &exitError{code: exitUserError, err: err} }
func sysError(err error) error  { return &exitError{code: exitSysError, err: err} }

// exitCode maps an error returned by a command to a process exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}

// skipLoad marks commands that need neither configuration nor a logger.
const skipLoad = "ynab-export/skip-load"

// rootState holds global flag values and what PersistentPreRunE loads.
type rootState struct {
	configDir string
	logLevel  string
	logFormat string

	resolvedConfigDir string
	config            types.Config
}

// NewRootCmd creates the top-level "ynab-export" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	st := &rootState{}
	root := &cobra.Command{
		Use:   "ynab-export",
		Short: "Flatten a YNAB budget into tab-separated tables",
		Long: `ynab-export fetches one budget snapshot and writes ten tab-separated
tables (accounts, categories, payees, transactions, months, ...) ready for
bulk loading into the SQL schema printed by "ynab-export schema".`,
		Version: Version,
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[skipLoad] != "" {
				return nil
			}
			return st.load(cmd)
		},
	}

	root.PersistentFlags().StringVar(&st.configDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/ynab)")
	root.PersistentFlags().StringVar(&st.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&st.logFormat, "log-format", logger.FormatHuman, "log format (human, json)")

	root.AddCommand(newExportCmd(st))
	root.AddCommand(newSchemaCmd())
	root.AddCommand(newVerifyCmd(st))
	root.AddCommand(newInitCmd(st))
	root.AddCommand(newVersionCmd())

	return root
}

// load reads .env, resolves the config directory, loads config.yaml and
// builds the logger.
func (st *rootState) load(cmd *cobra.Command) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return userError(fmt.Errorf("load .env: %w", err))
	}

	log, err := logger.New(cmd.ErrOrStderr(), st.logLevel, st.logFormat)
	if err != nil {
		return userError(err)
	}

	dir, err := paths.ResolveConfigDir(st.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	st.resolvedConfigDir = dir

	cfg, err := loadConfig(dir)
	if err != nil {
		return userError(err)
	}
	st.config = cfg

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logger.WithContext(ctx, log))
	return nil
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}
