package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/ynab-export/internal/export"
	"github.com/mesh-intelligence/ynab-export/internal/logger"
	"github.com/mesh-intelligence/ynab-export/internal/paths"
	"github.com/mesh-intelligence/ynab-export/internal/schema"
	"github.com/mesh-intelligence/ynab-export/internal/sink"
	"github.com/mesh-intelligence/ynab-export/internal/source"
	"github.com/mesh-intelligence/ynab-export/internal/ynab"
	"github.com/mesh-intelligence/ynab-export/pkg/types"
)

type exportFlags struct {
	outputDir       string
	snapshot        string
	budgetID        string
	splitCategoryID string
	verify          bool
}

func newExportCmd(st *rootState) *cobra.Command {
	var f exportFlags
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Fetch the budget and write every table",
		Long: `Fetch one budget snapshot and write accounts.tsv, categories.tsv, ...
to the output directory. Each table is fsync'd before the next one is
written. Any error aborts the run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, st, f)
		},
	}
	cmd.Flags().StringVarP(&f.outputDir, "out", "o", "", "output directory (default: config output_dir, then $YNAB_EXPORT_OUTPUT_DIR, then the working directory)")
	cmd.Flags().StringVar(&f.snapshot, "snapshot", "", "read the budget from a saved JSON response instead of the API")
	cmd.Flags().StringVar(&f.budgetID, "budget", "", "budget id to export (default: config budget_id, then the first budget)")
	cmd.Flags().StringVar(&f.splitCategoryID, "split-category-id", "", "category id the service uses for split transactions")
	cmd.Flags().BoolVar(&f.verify, "verify", false, "check the written tables against the schema")
	return cmd
}

func runExport(cmd *cobra.Command, st *rootState, f exportFlags) error {
	ctx := cmd.Context()
	log := logger.FromContext(ctx)

	cfg := st.config
	outDir, err := paths.ResolveOutputDir(f.outputDir, cfg.OutputDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve output dir: %w", err))
	}
	cfg.OutputDir = outDir
	if f.budgetID != "" {
		cfg.BudgetID = f.budgetID
	}
	if f.splitCategoryID != "" {
		cfg.SplitCategoryID = f.splitCategoryID
	}
	if err := cfg.Validate(); err != nil {
		return userError(err)
	}

	var src source.Source
	if f.snapshot != "" {
		src = &source.File{Path: f.snapshot}
	} else {
		key, err := readAPIKey(st.resolvedConfigDir)
		if err != nil {
			return userError(err)
		}
		src = &source.API{Client: ynab.NewClient(ctx, cfg.APIURL, key), BudgetID: cfg.BudgetID}
	}

	budget, err := src.Fetch(ctx)
	if err != nil {
		return sysError(fmt.Errorf("fetch budget: %w", err))
	}
	log.Info().
		Str("budget", budget.Name).
		Int("transactions", len(budget.Transactions)).
		Int("months", len(budget.Months)).
		Msg("budget fetched")

	exp := export.New(sink.NewDir(outDir), export.Options{SplitCategoryID: cfg.SplitCategoryID}, log)
	report, err := exp.Run(budget)
	if err != nil {
		return sysError(fmt.Errorf("export: %w", err))
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, table := range types.TableNames {
		fmt.Fprintf(w, "%s\t%d rows\n", types.TableFile(table), report.Rows[table])
	}
	if err := w.Flush(); err != nil {
		return sysError(err)
	}
	log.Info().Str("dir", outDir).Msg("export complete")

	if f.verify {
		return verifyDir(cmd, outDir)
	}
	return nil
}

// verifyDir checks dir against the schema and prints any violations.
func verifyDir(cmd *cobra.Command, dir string) error {
	report, err := schema.Verify(cmd.Context(), dir)
	if err != nil {
		return userError(fmt.Errorf("verify: %w", err))
	}
	for _, v := range report.Violations {
		fmt.Fprintln(cmd.OutOrStdout(), v)
	}
	if !report.OK() {
		return userError(fmt.Errorf("verify: %d foreign key violations", len(report.Violations)))
	}
	fmt.Fprintln(cmd.OutOrStdout(), "schema check passed")
	return nil
}
