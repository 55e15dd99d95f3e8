package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/salesreport-cli/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set salesreport configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := currentConfig()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "input_path: %s\n", c.InputPath)
		fmt.Fprintf(out, "output_dir: %s\n", c.OutputDir)
		fmt.Fprintf(out, "profitability_file: %s\n", c.ProfitabilityFile)
		fmt.Fprintf(out, "top_subcats_file: %s\n", c.TopSubcatsFile)
		fmt.Fprintf(out, "top_k: %d\n", c.TopK)
		fmt.Fprintf(out, "output_format: %s\n", c.OutputFormat)
		if c.Delimiter != "" {
			fmt.Fprintf(out, "delimiter: %q\n", c.Delimiter)
		}
		if c.DecimalSeparator != "" {
			fmt.Fprintf(out, "decimal_separator: %q\n", c.DecimalSeparator)
		}
		if c.ThousandsSeparator != "" {
			fmt.Fprintf(out, "thousands_separator: %q\n", c.ThousandsSeparator)
		}
		fmt.Fprintf(out, "lenient_numbers: %t\n", c.LenientNumbers)
		fmt.Fprintf(out, "float_precision: %d\n", c.FloatPrecision)
		fmt.Fprintf(out, "csv_bom: %t\n", c.CSVBOM)
		if c.DBDriver != "" {
			fmt.Fprintf(out, "db_driver: %s\n", c.DBDriver)
			fmt.Fprintf(out, "db_dsn: %s\n", mask(c.DBDSN))
		}
		fmt.Fprintf(out, "manifest: %t\n", c.Manifest)
		fmt.Fprintf(out, "log_level: %s\n", c.LogLevel)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := currentConfig()
		if err := c.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := cfgpkg.Save(&c, cfgFile); err != nil {
			return err
		}
		cfg = &c
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

// mask hides the middle of a DSN, which may carry credentials.
func mask(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 6 {
		return "******"
	}
	return s[:3] + "****" + s[len(s)-3:]
}
