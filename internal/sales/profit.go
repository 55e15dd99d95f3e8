package sales

import "math"

// AggregateProfitability sums sales and profit per region and derives the
// profit margin. Records without a region are skipped. Regions appear in the
// order they are first seen.
func AggregateProfitability(records []CleanRecord) []RegionSummary {
	type acc struct {
		sales  float64
		profit float64
	}
	groups := map[string]*acc{}
	var order []string
	for _, r := range records {
		if r.Region == "" {
			continue
		}
		g := groups[r.Region]
		if g == nil {
			g = &acc{}
			groups[r.Region] = g
			order = append(order, r.Region)
		}
		g.sales += r.Sales
		g.profit += r.Profit
	}

	out := make([]RegionSummary, 0, len(order))
	for _, region := range order {
		g := groups[region]
		out = append(out, RegionSummary{
			Region:       region,
			TotalSales:   g.sales,
			TotalProfit:  g.profit,
			ProfitMargin: ProfitMargin(g.profit, g.sales),
		})
	}
	return out
}

// ProfitMargin returns profit as a percentage of sales, or 0 when sales is
// zero or the quotient is not finite.
func ProfitMargin(profit, sales float64) float64 {
	if sales == 0 {
		return 0
	}
	m := profit / sales * 100
	if math.IsNaN(m) || math.IsInf(m, 0) {
		return 0
	}
	return m
}
