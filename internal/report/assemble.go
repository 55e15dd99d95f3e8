package report

import (
	"github.com/samber/lo"

	"github.com/KaramelBytes/salesreport-cli/internal/sales"
)

// Report names, also used for output sheet and table names.
const (
	NameProfitability    = "region_profitability"
	NameTopSubcategories = "top_subcats_by_region"
)

// Fixed column orders of the two reports.
var (
	ProfitabilityFields = []string{
		sales.FieldRegion, sales.FieldTotalSales, sales.FieldTotalProfit, sales.FieldProfitMargin,
	}
	TopSubcategoryFields = []string{
		sales.FieldRegion, sales.FieldSubCategory, sales.FieldAverageSales,
	}
)

// Fielder is implemented by values that can be laid out as a report row.
type Fielder interface {
	FieldValues() map[string]any
}

// Table is an ordered set of rows ready for a tabular writer.
// Rows[i][j] is the value of Fields[j].
type Table struct {
	Name   string
	Fields []string
	Rows   [][]any
}

// Empty reports whether the table has no data rows.
func (t Table) Empty() bool { return len(t.Rows) == 0 }

// Assemble lays items out in the given field order. A field an item does not
// provide is left as "". No values are computed here.
func Assemble[T Fielder](name string, fields []string, items []T) Table {
	cols := append([]string(nil), fields...)
	rows := lo.Map(items, func(item T, _ int) []any {
		values := item.FieldValues()
		row := make([]any, len(cols))
		for i, f := range cols {
			if v, ok := values[f]; ok {
				row[i] = v
			} else {
				row[i] = ""
			}
		}
		return row
	})
	return Table{Name: name, Fields: cols, Rows: rows}
}

// Profitability assembles region summaries with ProfitabilityFields.
func Profitability(summaries []sales.RegionSummary) Table {
	return Assemble(NameProfitability, ProfitabilityFields, summaries)
}

// TopSubcategories assembles a ranking with TopSubcategoryFields.
func TopSubcategories(ranking []sales.SubcategoryAverage) Table {
	return Assemble(NameTopSubcategories, TopSubcategoryFields, ranking)
}
