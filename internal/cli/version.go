package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

const modulePath = "github.com/mesh-intelligence/ynab-export"

// Version is the release version, set at build time with
// -ldflags "-X github.com/mesh-intelligence/ynab-export/internal/cli.Version=...".
var Version = "0.1.0"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the ynab-export version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "ynab-export v%s\nmodule: %s\n", Version, modulePath)
			return nil
		},
		Annotations: map[string]string{skipLoad: "true"},
	}
}
