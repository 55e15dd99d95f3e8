package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/salesreport-cli/internal/pipeline"
	"github.com/KaramelBytes/salesreport-cli/internal/utils"
)

var (
	batchFlags reportFlags
	batchQuiet bool
)

var batchCmd = &cobra.Command{
	Use:   "batch <files...>",
	Short: "Run the report pipeline over several CSV/TSV/XLSX files with progress",
	Long: `Each input gets its own sub-directory of the output directory, named after the file.
Existing directories are not overwritten; a "__2", "__3", ... suffix is added instead.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files := expandInputs(args)
		if len(files) == 0 {
			return fmt.Errorf("no input files matched")
		}
		c, err := batchFlags.config(cmd)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		total := len(files)
		for i, path := range files {
			if !batchQuiet {
				fmt.Fprintf(out, "[%d/%d] Processing %s...\n", i+1, total, filepath.Base(path))
			}
			opts, err := batchFlags.options(cmd, path)
			if err != nil {
				return err
			}
			base := filepath.Base(path)
			dir := filepath.Join(c.OutputDir, strings.TrimSuffix(base, filepath.Ext(base)))
			if unique := utils.UniquePath(dir); unique != dir {
				if !batchQuiet {
					fmt.Fprintf(out, "⚠ Detected existing output, writing to %s to avoid overwrite.\n", filepath.Base(unique))
				}
				dir = unique
			}
			opts.OutputDir = dir

			res, err := pipeline.Run(cmd.Context(), opts)
			if err != nil {
				return fmt.Errorf("%s: %w", base, err)
			}
			if !batchQuiet {
				printResult(out, cmd.ErrOrStderr(), path, res)
			}
		}
		return nil
	},
}

// expandInputs resolves globs, keeps literal paths that exist, drops
// duplicates and sorts the result.
func expandInputs(args []string) []string {
	var files []string
	seen := map[string]struct{}{}
	for _, arg := range args {
		matches, _ := filepath.Glob(arg)
		if len(matches) == 0 {
			// treat as literal path if exists
			if _, err := os.Stat(arg); err == nil {
				matches = []string{arg}
			}
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}
	sort.Strings(files)
	return files
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchFlags.register(batchCmd.Flags(), true)
	batchCmd.Flags().BoolVar(&batchQuiet, "quiet", false, "suppress progress and non-essential output")
}
