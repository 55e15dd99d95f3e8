package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/salesreport-cli/internal/pipeline"
)

var runFlags reportFlags

var runReportCmd = &cobra.Command{
	Use:   "run [input]",
	Short: "Compute both reports for one input and write them to the output directory",
	Long: `Reads the input (default from config: data/SampleSuperstore.csv), cleans Sales and Profit,
and writes region_profitability and top_subcats_by_region to the output directory.
A missing input produces a warning and no report files.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := ""
		if len(args) == 1 {
			input = args[0]
		}
		opts, err := runFlags.options(cmd, input)
		if err != nil {
			return err
		}
		res, err := pipeline.Run(cmd.Context(), opts)
		if err != nil {
			return err
		}
		printResult(cmd.OutOrStdout(), cmd.ErrOrStderr(), opts.Input, res)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runReportCmd)
	runFlags.register(runReportCmd.Flags(), true)
}

func printResult(out, errOut io.Writer, input string, res *pipeline.Result) {
	if res.SourceMissing {
		fmt.Fprintf(errOut, "⚠ Warning: input %s not found, continuing with no records\n", input)
	} else if missing := res.Dataset.MissingColumns; len(missing) > 0 {
		fmt.Fprintf(errOut, "⚠ Warning: %s is missing columns %v, their values default\n", input, missing)
	}
	if n := res.Stats.SalesDefaulted + res.Stats.ProfitDefaulted; n > 0 {
		fmt.Fprintf(errOut, "⚠ %d non-numeric Sales/Profit values defaulted to 0\n", n)
	}
	for _, o := range res.Outputs {
		if o.Skipped {
			fmt.Fprintf(errOut, "⚠ %s: no data to write\n", o.Report)
			continue
		}
		fmt.Fprintf(out, "✓ Wrote %s (%d rows)\n", o.Path, o.Rows)
		if o.Table != "" {
			fmt.Fprintf(out, "✓ Stored %d rows in table %s\n", o.Rows, o.Table)
		}
	}
	if res.ManifestPath != "" {
		fmt.Fprintf(out, "✓ Manifest %s (run %s)\n", res.ManifestPath, res.RunID)
	}
}
