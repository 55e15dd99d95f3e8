package sales

import "strings"

// Column and report field names. Input columns are matched exactly.
const (
	FieldRegion       = "Region"
	FieldSubCategory  = "Sub-Category"
	FieldSales        = "Sales"
	FieldProfit       = "Profit"
	FieldTotalSales   = "Total Sales"
	FieldTotalProfit  = "Total Profit"
	FieldProfitMargin = "Profit Margin"
	FieldAverageSales = "Average Sales"
)

// InputColumns lists the columns a transaction source must provide.
var InputColumns = []string{FieldRegion, FieldSubCategory, FieldSales, FieldProfit}

// RawRecord holds the uncleaned text of the columns of interest.
// An empty field means the value was blank or the column was absent.
type RawRecord struct {
	Region      string
	SubCategory string
	Sales       string
	Profit      string
}

// RawRecordFromFields picks the known columns out of a header→value row.
// Unknown keys are ignored and missing keys map to "".
func RawRecordFromFields(fields map[string]string) RawRecord {
	return RawRecord{
		Region:      fields[FieldRegion],
		SubCategory: fields[FieldSubCategory],
		Sales:       fields[FieldSales],
		Profit:      fields[FieldProfit],
	}
}

// CleanRecord is a normalized transaction. Sales and Profit are always finite.
type CleanRecord struct {
	Region      string
	SubCategory string
	Sales       float64
	Profit      float64
}

// RegionSummary aggregates sales and profit for one region.
type RegionSummary struct {
	Region       string
	TotalSales   float64
	TotalProfit  float64
	ProfitMargin float64 // percent
}

// FieldValues exposes the summary keyed by report field name.
func (s RegionSummary) FieldValues() map[string]any {
	return map[string]any{
		FieldRegion:       s.Region,
		FieldTotalSales:   s.TotalSales,
		FieldTotalProfit:  s.TotalProfit,
		FieldProfitMargin: s.ProfitMargin,
	}
}

// SubcategoryAverage is the mean sale amount of one (region, sub-category) pair.
type SubcategoryAverage struct {
	Region       string
	SubCategory  string
	AverageSales float64
}

// FieldValues exposes the average keyed by report field name.
func (a SubcategoryAverage) FieldValues() map[string]any {
	return map[string]any{
		FieldRegion:       a.Region,
		FieldSubCategory:  a.SubCategory,
		FieldAverageSales: a.AverageSales,
	}
}

// MissingColumns reports which of InputColumns are absent from header.
func MissingColumns(header []string) []string {
	seen := make(map[string]struct{}, len(header))
	for _, h := range header {
		seen[strings.TrimSpace(h)] = struct{}{}
	}
	var missing []string
	for _, c := range InputColumns {
		if _, ok := seen[c]; !ok {
			missing = append(missing, c)
		}
	}
	return missing
}
