package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/salesreport-cli/internal/pipeline"
)

var showFlags reportFlags

var showCmd = &cobra.Command{
	Use:   "show [input]",
	Short: "Print both reports as Markdown without writing files",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := ""
		if len(args) == 1 {
			input = args[0]
		}
		opts, err := showFlags.options(cmd, input)
		if err != nil {
			return err
		}
		res, err := pipeline.Analyze(cmd.Context(), opts)
		if err != nil {
			return err
		}
		if res.SourceMissing {
			fmt.Fprintf(cmd.ErrOrStderr(), "⚠ Warning: input %s not found, continuing with no records\n", opts.Input)
		}
		out := cmd.OutOrStdout()
		for i, t := range res.Tables {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprint(out, t.Markdown(opts.Write.Precision))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showFlags.register(showCmd.Flags(), false)
}
