package sales

import (
	"math"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// CleanOptions controls numeric parsing during cleaning.
type CleanOptions struct {
	// Lenient accepts locale formatted numbers such as "1.234,50" or "12%".
	// Strict float parsing is used otherwise.
	Lenient bool
	// DecimalSeparator forces the decimal mark in lenient mode; 0 auto-detects per value.
	DecimalSeparator rune
	// ThousandsSeparator forces the grouping mark in lenient mode; 0 strips ',' '.' and space
	// when they differ from the decimal mark.
	ThousandsSeparator rune
}

func (o CleanOptions) lenient() bool {
	return o.Lenient || o.DecimalSeparator != 0 || o.ThousandsSeparator != 0
}

// CleanStats counts what the cleaner had to repair.
type CleanStats struct {
	Records         int `json:"records"`
	SalesDefaulted  int `json:"sales_defaulted"`
	ProfitDefaulted int `json:"profit_defaulted"`
}

// Cleaner turns raw records into typed, trimmed records.
type Cleaner struct {
	Options CleanOptions
}

// Clean normalizes records with strict numeric parsing.
func Clean(records []RawRecord) []CleanRecord {
	out, _ := Cleaner{}.Clean(records)
	return out
}

// Clean trims every string field and parses Sales and Profit. A value that is
// missing, blank, non-numeric or non-finite becomes 0.0; records are never dropped
// and keep their input order.
func (c Cleaner) Clean(records []RawRecord) ([]CleanRecord, CleanStats) {
	stats := CleanStats{Records: len(records)}
	if len(records) == 0 {
		return []CleanRecord{}, stats
	}
	out := lo.Map(records, func(r RawRecord, _ int) CleanRecord {
		sales, ok := c.parseAmount(r.Sales)
		if !ok {
			stats.SalesDefaulted++
		}
		profit, ok := c.parseAmount(r.Profit)
		if !ok {
			stats.ProfitDefaulted++
		}
		return CleanRecord{
			Region:      strings.TrimSpace(r.Region),
			SubCategory: strings.TrimSpace(r.SubCategory),
			Sales:       sales,
			Profit:      profit,
		}
	})
	return out, stats
}

func (c Cleaner) parseAmount(s string) (float64, bool) {
	var (
		f  float64
		ok bool
	)
	if c.Options.lenient() {
		f, ok = parseNumeric(s, c.Options.DecimalSeparator, c.Options.ThousandsSeparator)
	} else {
		f, ok = parseStrict(s)
	}
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func parseStrict(s string) (float64, bool) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// parseNumeric accepts locale formatted numbers. dec and thou may be 0 to auto-detect.
func parseNumeric(s string, dec, thou rune) (float64, bool) {
	raw := strings.TrimSpace(s)
	raw = strings.TrimSuffix(raw, "%")
	raw = strings.ReplaceAll(raw, "\u00A0", " ")
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	if dec == 0 {
		// A forced grouping mark fixes the decimal mark to the other one.
		switch thou {
		case '.':
			dec = ','
		case ',':
			dec = '.'
		}
	}
	if dec == 0 {
		cpos := strings.LastIndex(raw, ",")
		dpos := strings.LastIndex(raw, ".")
		switch {
		case cpos >= 0 && dpos >= 0:
			if cpos > dpos {
				dec = ','
			} else {
				dec = '.'
			}
			if thou == 0 {
				thou = '.'
				if dec == '.' {
					thou = ','
				}
			}
		case cpos >= 0 && strings.Count(raw, ",") == 1 && len(raw)-cpos-1 != 3:
			dec = ','
		default:
			dec = '.'
		}
	}
	if thou == 0 {
		for _, sep := range []rune{',', '.', ' '} {
			if sep != dec {
				raw = strings.ReplaceAll(raw, string(sep), "")
			}
		}
	} else if thou != dec {
		raw = strings.ReplaceAll(raw, string(thou), "")
	}
	if dec != '.' {
		raw = strings.ReplaceAll(raw, string(dec), ".")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
