package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	cfgpkg "github.com/KaramelBytes/salesreport-cli/internal/config"
	"github.com/KaramelBytes/salesreport-cli/internal/pipeline"
	"github.com/KaramelBytes/salesreport-cli/internal/sales"
	"github.com/KaramelBytes/salesreport-cli/internal/tabular"
)

// reportFlags are the pipeline flags shared by run, batch and show. Unset flags
// fall back to the loaded configuration.
type reportFlags struct {
	outputDir  string
	topK       int
	format     string
	delimiter  string
	decimal    string
	thousands  string
	lenient    bool
	sheetName  string
	sheetIndex int
	dbDriver   string
	dbDSN      string
	noManifest bool
	precision  int
}

func (f *reportFlags) register(fs *pflag.FlagSet, outputs bool) {
	fs.IntVarP(&f.topK, "top-k", "k", 5, "number of sub-categories to keep per region")
	fs.StringVar(&f.delimiter, "delimiter", "", "CSV delimiter: ',' | ';' | '|' | 'tab' (by extension if omitted)")
	fs.StringVar(&f.decimal, "decimal", "", "decimal separator for numbers: '.'|'comma' (implies --lenient)")
	fs.StringVar(&f.thousands, "thousands", "", "thousands separator for numbers: ','|'.'|'space' (implies --lenient)")
	fs.BoolVar(&f.lenient, "lenient", false, "accept locale formatted numbers such as 1.234,50 or 12%")
	fs.StringVar(&f.sheetName, "sheet-name", "", "XLSX: sheet name to read")
	fs.IntVar(&f.sheetIndex, "sheet-index", 1, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
	fs.IntVar(&f.precision, "precision", -1, "decimals for float output (-1 keeps full precision)")
	if !outputs {
		return
	}
	fs.StringVarP(&f.outputDir, "output-dir", "o", "", "directory for report files (default from config: result)")
	fs.StringVar(&f.format, "format", "", "output format: csv|xlsx (default from config: csv)")
	fs.StringVar(&f.dbDriver, "db-driver", "", "also store reports in a database: sqlite|pgx")
	fs.StringVar(&f.dbDSN, "db-dsn", "", "database DSN (file path for sqlite, URL for pgx)")
	fs.BoolVar(&f.noManifest, "no-manifest", false, "do not write manifest.json")
}

// config merges changed flags over the loaded configuration and validates the result.
func (f *reportFlags) config(cmd *cobra.Command) (cfgpkg.Global, error) {
	c := currentConfig()
	fl := cmd.Flags()
	if fl.Changed("output-dir") {
		c.OutputDir = f.outputDir
	}
	if fl.Changed("top-k") {
		c.TopK = f.topK
	}
	if fl.Changed("format") {
		c.OutputFormat = f.format
	}
	if fl.Changed("delimiter") {
		c.Delimiter = f.delimiter
	}
	if fl.Changed("decimal") {
		c.DecimalSeparator = f.decimal
	}
	if fl.Changed("thousands") {
		c.ThousandsSeparator = f.thousands
	}
	if fl.Changed("lenient") {
		c.LenientNumbers = f.lenient
	}
	if fl.Changed("precision") {
		c.FloatPrecision = f.precision
	}
	if fl.Changed("db-driver") {
		c.DBDriver = f.dbDriver
	}
	if fl.Changed("db-dsn") {
		c.DBDSN = f.dbDSN
	}
	if f.noManifest {
		c.Manifest = false
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

// options builds pipeline options for one input.
func (f *reportFlags) options(cmd *cobra.Command, input string) (pipeline.Options, error) {
	c, err := f.config(cmd)
	if err != nil {
		return pipeline.Options{}, err
	}
	if input == "" {
		input = c.InputPath
	}
	delim, _ := cfgpkg.ParseDelimiter(c.Delimiter)
	dec, _ := cfgpkg.ParseDecimal(c.DecimalSeparator)
	thou, _ := cfgpkg.ParseThousands(c.ThousandsSeparator)

	return pipeline.Options{
		Input:             input,
		OutputDir:         c.OutputDir,
		ProfitabilityFile: c.ProfitabilityFile,
		TopSubcatsFile:    c.TopSubcatsFile,
		TopK:              c.TopK,
		Format:            c.OutputFormat,
		Read: tabular.ReadOptions{
			Delimiter:  delim,
			SheetName:  f.sheetName,
			SheetIndex: f.sheetIndex,
		},
		Clean: sales.CleanOptions{
			Lenient:            c.LenientNumbers,
			DecimalSeparator:   dec,
			ThousandsSeparator: thou,
		},
		Write: tabular.WriteOptions{
			Precision: c.FloatPrecision,
			BOM:       c.CSVBOM,
		},
		DBDriver: c.DBDriver,
		DBDSN:    c.DBDSN,
		Manifest: c.Manifest,
		Logger:   logger,
	}, nil
}
