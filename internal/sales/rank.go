package sales

import "sort"

// RankTopSubcategories returns at most k sub-categories per region ranked by
// average sales. Output is grouped by region (ascending); within a region
// averages descend and ties are ordered by sub-category name.
func RankTopSubcategories(records []CleanRecord, k int) []SubcategoryAverage {
	return TopPerRegion(AverageSubcategorySales(records), k)
}

// AverageSubcategorySales computes the mean sale per (region, sub-category)
// pair, skipping records missing either key. The result is sorted by region,
// then average descending, then sub-category.
func AverageSubcategorySales(records []CleanRecord) []SubcategoryAverage {
	type key struct{ region, sub string }
	type acc struct {
		sum float64
		n   int
	}
	groups := map[key]*acc{}
	for _, r := range records {
		if r.Region == "" || r.SubCategory == "" {
			continue
		}
		k := key{r.Region, r.SubCategory}
		g := groups[k]
		if g == nil {
			g = &acc{}
			groups[k] = g
		}
		g.sum += r.Sales
		g.n++
	}

	out := make([]SubcategoryAverage, 0, len(groups))
	for k, g := range groups {
		out = append(out, SubcategoryAverage{
			Region:       k.region,
			SubCategory:  k.sub,
			AverageSales: g.sum / float64(g.n),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Region != out[j].Region {
			return out[i].Region < out[j].Region
		}
		if out[i].AverageSales != out[j].AverageSales {
			return out[i].AverageSales > out[j].AverageSales
		}
		return out[i].SubCategory < out[j].SubCategory
	})
	return out
}

// TopPerRegion walks an already ranked slice and keeps the first k entries of
// each region. Entries past a region's k-th are dropped.
func TopPerRegion(ranked []SubcategoryAverage, k int) []SubcategoryAverage {
	out := []SubcategoryAverage{}
	if k <= 0 {
		return out
	}
	counts := map[string]int{}
	for _, a := range ranked {
		if counts[a.Region] >= k {
			continue
		}
		out = append(out, a)
		counts[a.Region]++
	}
	return out
}
