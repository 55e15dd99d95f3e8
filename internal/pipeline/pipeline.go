// Package pipeline runs the report workflow end to end: read, clean,
// aggregate, assemble and persist.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/KaramelBytes/salesreport-cli/internal/config"
	"github.com/KaramelBytes/salesreport-cli/internal/manifest"
	"github.com/KaramelBytes/salesreport-cli/internal/report"
	"github.com/KaramelBytes/salesreport-cli/internal/sales"
	"github.com/KaramelBytes/salesreport-cli/internal/store"
	"github.com/KaramelBytes/salesreport-cli/internal/tabular"
)

// Options configures a run.
type Options struct {
	Input             string
	OutputDir         string
	ProfitabilityFile string
	TopSubcatsFile    string
	TopK              int
	// Format is "csv" or "xlsx"; it replaces the extension of the output file names.
	Format string

	Read  tabular.ReadOptions
	Clean sales.CleanOptions
	Write tabular.WriteOptions

	// DBDriver enables the SQL sink when set.
	DBDriver string
	DBDSN    string

	Manifest bool
	Logger   *zap.Logger
}

// DefaultOptions builds options from the built-in configuration.
func DefaultOptions() Options {
	c := config.Defaults()
	return Options{
		Input:             c.InputPath,
		OutputDir:         c.OutputDir,
		ProfitabilityFile: c.ProfitabilityFile,
		TopSubcatsFile:    c.TopSubcatsFile,
		TopK:              c.TopK,
		Format:            c.OutputFormat,
		Clean:             sales.CleanOptions{Lenient: c.LenientNumbers},
		Write:             tabular.WriteOptions{Precision: c.FloatPrecision, BOM: c.CSVBOM},
		DBDriver:          c.DBDriver,
		DBDSN:             c.DBDSN,
		Manifest:          c.Manifest,
	}
}

// Reports holds the two computed reports.
type Reports struct {
	Profitability []sales.RegionSummary
	TopSubcats    []sales.SubcategoryAverage
}

// Result describes a finished run.
type Result struct {
	RunID         string
	Dataset       *tabular.Dataset
	SourceMissing bool
	Stats         sales.CleanStats
	Reports       Reports
	Tables        []report.Table
	Outputs       []manifest.Output
	ManifestPath  string
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// Compute evaluates both aggregations concurrently over the same records.
func Compute(ctx context.Context, records []sales.CleanRecord, k int) (Reports, error) {
	var rep Reports
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		rep.Profitability = sales.AggregateProfitability(records)
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		rep.TopSubcats = sales.RankTopSubcategories(records, k)
		return nil
	})
	if err := g.Wait(); err != nil {
		return Reports{}, err
	}
	return rep, nil
}

// Analyze reads, cleans and aggregates the input without writing anything.
// A missing input is not an error: the run continues with no records.
func Analyze(ctx context.Context, opts Options) (*Result, error) {
	log := opts.logger()
	res := &Result{}

	ds, err := tabular.Read(opts.Input, opts.Read)
	if err != nil {
		if !errors.Is(err, tabular.ErrSourceNotFound) {
			return nil, fmt.Errorf("read %s: %w", opts.Input, err)
		}
		log.Warn("source not found, continuing with no records", zap.String("input", opts.Input))
		res.SourceMissing = true
	}
	res.Dataset = ds
	if len(ds.MissingColumns) > 0 {
		log.Warn("input is missing columns, their values default",
			zap.String("input", opts.Input), zap.Strings("missing", ds.MissingColumns))
	}

	clean, stats := sales.Cleaner{Options: opts.Clean}.Clean(ds.Records)
	res.Stats = stats
	log.Debug("cleaned records",
		zap.Int("records", stats.Records),
		zap.Int("sales_defaulted", stats.SalesDefaulted),
		zap.Int("profit_defaulted", stats.ProfitDefaulted))

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	reps, err := Compute(ctx, clean, opts.TopK)
	if err != nil {
		return nil, err
	}
	res.Reports = reps
	res.Tables = []report.Table{
		report.Profitability(reps.Profitability),
		report.TopSubcategories(reps.TopSubcats),
	}
	log.Info("reports computed",
		zap.String("input", opts.Input),
		zap.Int("rows", ds.Rows),
		zap.Int("regions", len(reps.Profitability)),
		zap.Int("ranked", len(reps.TopSubcats)))
	return res, nil
}

// Run executes Analyze and persists the reports: one file per report in
// OutputDir, optionally a SQL copy and a manifest. Empty reports are skipped
// with a warning.
func Run(ctx context.Context, opts Options) (*Result, error) {
	log := opts.logger()
	m := manifest.New(opts.Input)
	log = log.With(zap.String("run_id", m.ID))
	opts.Logger = log

	res, err := Analyze(ctx, opts)
	if err != nil {
		return nil, err
	}
	res.RunID = m.ID

	ext, err := tabular.Ext(opts.Format)
	if err != nil {
		return nil, err
	}
	files := map[string]string{
		report.NameProfitability:    opts.ProfitabilityFile,
		report.NameTopSubcategories: opts.TopSubcatsFile,
	}

	var sink *store.Store
	if opts.DBDriver != "" {
		sink, err = store.Open(ctx, opts.DBDriver, opts.DBDSN)
		if err != nil {
			return nil, err
		}
		defer sink.Close()
	}

	for _, t := range res.Tables {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out := manifest.Output{Report: t.Name, Rows: len(t.Rows)}
		path := OutputPath(opts.OutputDir, files[t.Name], t.Name, ext)
		switch err := tabular.Write(path, t, opts.Write); {
		case errors.Is(err, tabular.ErrNoData):
			log.Warn("no data to write", zap.String("report", t.Name))
			out.Skipped = true
		case err != nil:
			return nil, fmt.Errorf("write %s: %w", t.Name, err)
		default:
			out.Path = path
			log.Info("report written", zap.String("report", t.Name), zap.String("path", path), zap.Int("rows", len(t.Rows)))
		}
		if sink != nil && !t.Empty() {
			if err := sink.SaveTable(ctx, m.ID, t); err != nil {
				return nil, fmt.Errorf("store %s: %w", t.Name, err)
			}
			out.Table = store.Identifier(t.Name)
		}
		m.Add(out)
	}
	res.Outputs = m.Outputs

	if opts.Manifest {
		m.InputRows = res.Dataset.Rows
		m.SourceFound = !res.SourceMissing
		m.Missing = res.Dataset.MissingColumns
		m.CleanStats = res.Stats
		m.TopK = opts.TopK
		m.Finish()
		path := filepath.Join(opts.OutputDir, manifest.FileName)
		if err := m.Save(path); err != nil {
			return nil, err
		}
		res.ManifestPath = path
	}
	return res, nil
}

// OutputPath joins dir with file, replacing its extension with ext. An empty
// file name falls back to the report name.
func OutputPath(dir, file, name, ext string) string {
	file = strings.TrimSpace(file)
	if file == "" {
		file = name
	}
	base := strings.TrimSuffix(file, filepath.Ext(file))
	return filepath.Join(dir, base+ext)
}
