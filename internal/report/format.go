package report

import (
	"fmt"
	"strconv"
)

// FormatValue renders a cell as text. Floats use the shortest exact
// representation when precision is negative, otherwise a fixed number of decimals.
func FormatValue(v any, precision int) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', precision, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', precision, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	default:
		return fmt.Sprint(x)
	}
}

// Records converts the table rows to text cells in field order.
func (t Table) Records(precision int) [][]string {
	out := make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		rec := make([]string, len(row))
		for i, v := range row {
			rec[i] = FormatValue(v, precision)
		}
		out = append(out, rec)
	}
	return out
}
