package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	envPrefix = "SALESREPORT"
	dirName   = ".salesreport"
)

// Global configuration structure.
type Global struct {
	InputPath         string `mapstructure:"input_path" yaml:"input_path"`
	OutputDir         string `mapstructure:"output_dir" yaml:"output_dir"`
	ProfitabilityFile string `mapstructure:"profitability_file" yaml:"profitability_file"`
	TopSubcatsFile    string `mapstructure:"top_subcats_file" yaml:"top_subcats_file"`
	TopK              int    `mapstructure:"top_k" yaml:"top_k"`
	OutputFormat      string `mapstructure:"output_format" yaml:"output_format"`

	// Input parsing
	Delimiter          string `mapstructure:"delimiter" yaml:"delimiter"`
	DecimalSeparator   string `mapstructure:"decimal_separator" yaml:"decimal_separator"`
	ThousandsSeparator string `mapstructure:"thousands_separator" yaml:"thousands_separator"`
	LenientNumbers     bool   `mapstructure:"lenient_numbers" yaml:"lenient_numbers"`

	// Output encoding
	FloatPrecision int  `mapstructure:"float_precision" yaml:"float_precision"`
	CSVBOM         bool `mapstructure:"csv_bom" yaml:"csv_bom"`

	// Optional SQL sink
	DBDriver string `mapstructure:"db_driver" yaml:"db_driver"`
	DBDSN    string `mapstructure:"db_dsn" yaml:"db_dsn"`

	Manifest bool   `mapstructure:"manifest" yaml:"manifest"`
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
}

// Defaults returns the built-in configuration.
func Defaults() *Global {
	return &Global{
		InputPath:         filepath.Join("data", "SampleSuperstore.csv"),
		OutputDir:         "result",
		ProfitabilityFile: "region_profitability.csv",
		TopSubcatsFile:    "top_subcats_by_region.csv",
		TopK:              5,
		OutputFormat:      "csv",
		FloatPrecision:    -1,
		Manifest:          true,
		LogLevel:          "warn",
	}
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.salesreport/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, dirName)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. A .env file in the working
// directory is loaded first; variables already set are not overridden.
func Load(cfgFile string) (*Global, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	d := Defaults()
	v.SetDefault("input_path", d.InputPath)
	v.SetDefault("output_dir", d.OutputDir)
	v.SetDefault("profitability_file", d.ProfitabilityFile)
	v.SetDefault("top_subcats_file", d.TopSubcatsFile)
	v.SetDefault("top_k", d.TopK)
	v.SetDefault("output_format", d.OutputFormat)
	v.SetDefault("delimiter", "")
	v.SetDefault("decimal_separator", "")
	v.SetDefault("thousands_separator", "")
	v.SetDefault("lenient_numbers", false)
	v.SetDefault("float_precision", d.FloatPrecision)
	v.SetDefault("csv_bom", false)
	v.SetDefault("db_driver", "")
	v.SetDefault("db_dsn", "")
	v.SetDefault("manifest", d.Manifest)
	v.SetDefault("log_level", d.LogLevel)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, dirName))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

// Validate reports settings no command can run with.
func (c *Global) Validate() error {
	if c.TopK < 1 {
		return fmt.Errorf("top_k must be at least 1, got %d", c.TopK)
	}
	switch c.OutputFormat {
	case "csv", "xlsx":
	default:
		return fmt.Errorf("invalid output_format: %q (use csv or xlsx)", c.OutputFormat)
	}
	switch c.DBDriver {
	case "", "sqlite", "pgx":
	default:
		return fmt.Errorf("invalid db_driver: %q (use sqlite or pgx)", c.DBDriver)
	}
	if _, err := ParseDelimiter(c.Delimiter); err != nil {
		return err
	}
	if _, err := ParseDecimal(c.DecimalSeparator); err != nil {
		return err
	}
	if _, err := ParseThousands(c.ThousandsSeparator); err != nil {
		return err
	}
	return nil
}

// Set assigns one key from its string form.
func (c *Global) Set(key, val string) error {
	switch key {
	case "input_path":
		c.InputPath = val
	case "output_dir":
		c.OutputDir = val
	case "profitability_file":
		c.ProfitabilityFile = val
	case "top_subcats_file":
		c.TopSubcatsFile = val
	case "top_k":
		i, err := strconv.Atoi(val)
		if err != nil || i < 1 {
			return fmt.Errorf("invalid int for top_k: %v", val)
		}
		c.TopK = i
	case "output_format":
		switch strings.ToLower(val) {
		case "csv", "xlsx":
			c.OutputFormat = strings.ToLower(val)
		default:
			return fmt.Errorf("invalid output_format: %s (use csv or xlsx)", val)
		}
	case "delimiter":
		c.Delimiter = val
	case "decimal_separator":
		c.DecimalSeparator = val
	case "thousands_separator":
		c.ThousandsSeparator = val
	case "lenient_numbers":
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("invalid bool for lenient_numbers: %w", err)
		}
		c.LenientNumbers = b
	case "float_precision":
		i, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid int for float_precision: %w", err)
		}
		c.FloatPrecision = i
	case "csv_bom":
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("invalid bool for csv_bom: %w", err)
		}
		c.CSVBOM = b
	case "db_driver":
		switch val {
		case "", "sqlite", "pgx":
			c.DBDriver = val
		case "postgres", "postgresql":
			c.DBDriver = "pgx"
		default:
			return fmt.Errorf("invalid db_driver: %s (use sqlite or pgx)", val)
		}
	case "db_dsn":
		c.DBDSN = val
	case "manifest":
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("invalid bool for manifest: %w", err)
		}
		c.Manifest = b
	case "log_level":
		c.LogLevel = val
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return c.Validate()
}

// ParseDelimiter accepts ',' ';' '|' or a tab ("tab", "\t"). Empty means
// choose by file extension and returns 0.
func ParseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case ",":
		return ',', nil
	case ";":
		return ';', nil
	case "|":
		return '|', nil
	case "\t", `\t`, "tab":
		return '\t', nil
	default:
		return 0, fmt.Errorf("unsupported delimiter: %q (use ','|';'|'|'|'tab')", s)
	}
}

// ParseDecimal accepts '.', "dot", ',' or "comma". Empty means auto-detect.
func ParseDecimal(s string) (rune, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return 0, nil
	case ".", "dot":
		return '.', nil
	case ",", "comma":
		return ',', nil
	default:
		return 0, fmt.Errorf("unsupported decimal separator: %q (use '.'|'comma')", s)
	}
}

// ParseThousands accepts ',', '.', "space" or an apostrophe. Empty means auto-detect.
func ParseThousands(s string) (rune, error) {
	if s == " " {
		return ' ', nil
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return 0, nil
	case ",":
		return ',', nil
	case ".":
		return '.', nil
	case "space":
		return ' ', nil
	case "'":
		return '\'', nil
	default:
		return 0, fmt.Errorf("unsupported thousands separator: %q (use ','|'.'|'space')", s)
	}
}
