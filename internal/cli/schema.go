package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/ynab-export/internal/paths"
	"github.com/mesh-intelligence/ynab-export/internal/schema"
)

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the SQL schema of the exported tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), schema.SQL())
			return err
		},
		Annotations: map[string]string{skipLoad: "true"},
	}
}

func newVerifyCmd(st *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "verify [dir]",
		Short: "Check exported tables against the SQL schema",
		Long: `Load every table in dir into an in-memory database built from the
schema and report rows whose foreign keys do not resolve.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var flag string
			if len(args) == 1 {
				flag = args[0]
			}
			dir, err := paths.ResolveOutputDir(flag, st.config.OutputDir)
			if err != nil {
				return sysError(fmt.Errorf("resolve output dir: %w", err))
			}
			return verifyDir(cmd, dir)
		},
	}
}
