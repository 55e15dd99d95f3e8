package sales_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/KaramelBytes/salesreport-cli/internal/sales"
)

func rec(region, sub string, amount float64) sales.CleanRecord {
	return sales.CleanRecord{Region: region, SubCategory: sub, Sales: amount}
}

func TestRankTopSubcategoriesTruncatesToK(t *testing.T) {
	records := []sales.CleanRecord{
		rec("West", "Phones", 200),
		rec("West", "Chairs", 400),
		rec("West", "Tables", 600),
		rec("West", "Storage", 50),
		rec("West", "Copiers", 1000),
		rec("West", "Binders", 20),
	}
	want := []sales.SubcategoryAverage{
		{Region: "West", SubCategory: "Copiers", AverageSales: 1000},
		{Region: "West", SubCategory: "Tables", AverageSales: 600},
		{Region: "West", SubCategory: "Chairs", AverageSales: 400},
	}
	if diff := cmp.Diff(want, sales.RankTopSubcategories(records, 3)); diff != "" {
		t.Fatalf("ranking mismatch (-want +got):\n%s", diff)
	}
}

func TestRankTopSubcategoriesTieBreaksByName(t *testing.T) {
	records := []sales.CleanRecord{
		rec("East", "Tables", 500),
		rec("East", "Binders", 300),
		rec("East", "Art", 300),
		rec("East", "Phones", 400),
	}
	want := []sales.SubcategoryAverage{
		{Region: "East", SubCategory: "Tables", AverageSales: 500},
		{Region: "East", SubCategory: "Phones", AverageSales: 400},
		{Region: "East", SubCategory: "Art", AverageSales: 300},
		{Region: "East", SubCategory: "Binders", AverageSales: 300},
	}
	if diff := cmp.Diff(want, sales.RankTopSubcategories(records, 4)); diff != "" {
		t.Fatalf("ranking mismatch (-want +got):\n%s", diff)
	}
}

func TestRankTopSubcategoriesFewerThanK(t *testing.T) {
	records := []sales.CleanRecord{rec("South", "Paper", 50), rec("South", "Envelopes", 100)}
	want := []sales.SubcategoryAverage{
		{Region: "South", SubCategory: "Envelopes", AverageSales: 100},
		{Region: "South", SubCategory: "Paper", AverageSales: 50},
	}
	if diff := cmp.Diff(want, sales.RankTopSubcategories(records, 5)); diff != "" {
		t.Fatalf("ranking mismatch (-want +got):\n%s", diff)
	}
}

func TestRankTopSubcategoriesEmpty(t *testing.T) {
	for _, k := range []int{0, 1, 5, 100} {
		assert.Empty(t, sales.RankTopSubcategories(nil, k), "k=%d", k)
	}
	assert.Empty(t, sales.RankTopSubcategories([]sales.CleanRecord{rec("East", "Art", 1)}, 0))
}

func TestRankTopSubcategoriesAveragesAndSkipsMissingKeys(t *testing.T) {
	records := []sales.CleanRecord{
		rec("North", "Labels", 10),
		rec("North", "Labels", 30),
		rec("North", "", 5000),
		rec("", "Labels", 5000),
		rec("North", "Fasteners", 15),
	}
	want := []sales.SubcategoryAverage{
		{Region: "North", SubCategory: "Labels", AverageSales: 20},
		{Region: "North", SubCategory: "Fasteners", AverageSales: 15},
	}
	if diff := cmp.Diff(want, sales.RankTopSubcategories(records, 5)); diff != "" {
		t.Fatalf("ranking mismatch (-want +got):\n%s", diff)
	}
}

func TestRankTopSubcategoriesPerRegionInvariants(t *testing.T) {
	subs := []string{"Art", "Binders", "Chairs", "Copiers", "Envelopes", "Labels", "Paper", "Phones"}
	regions := []string{"West", "East", "Central", "South"}
	var records []sales.CleanRecord
	for i, region := range regions {
		for j, sub := range subs {
			// repeat some amounts so ties occur
			records = append(records, rec(region, sub, float64((i*7+j*3)%5)*100))
			records = append(records, rec(region, sub, float64((j%3)*50)))
		}
	}
	const k = 3
	got := sales.RankTopSubcategories(records, k)

	perRegion := map[string]int{}
	for i, a := range got {
		perRegion[a.Region]++
		if i == 0 {
			continue
		}
		prev := got[i-1]
		if prev.Region != a.Region {
			assert.Less(t, prev.Region, a.Region, "regions must be grouped in ascending order")
			continue
		}
		assert.GreaterOrEqual(t, prev.AverageSales, a.AverageSales, "averages must not increase within %s", a.Region)
		if prev.AverageSales == a.AverageSales {
			assert.Less(t, prev.SubCategory, a.SubCategory, "ties must be alphabetical")
		}
	}
	for _, region := range regions {
		assert.Equal(t, k, perRegion[region], "region %s", region)
	}
}

func TestAverageSubcategorySalesGlobalOrder(t *testing.T) {
	got := sales.AverageSubcategorySales([]sales.CleanRecord{
		rec("West", "Art", 10), rec("East", "Art", 5), rec("East", "Binders", 50),
	})
	want := []sales.SubcategoryAverage{
		{Region: "East", SubCategory: "Binders", AverageSales: 50},
		{Region: "East", SubCategory: "Art", AverageSales: 5},
		{Region: "West", SubCategory: "Art", AverageSales: 10},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestTopPerRegionDiscardsAfterK(t *testing.T) {
	ranked := []sales.SubcategoryAverage{
		{Region: "A", SubCategory: "x", AverageSales: 3},
		{Region: "A", SubCategory: "y", AverageSales: 2},
		{Region: "A", SubCategory: "z", AverageSales: 1},
		{Region: "B", SubCategory: "x", AverageSales: 9},
	}
	got := sales.TopPerRegion(ranked, 1)
	assert.Equal(t, []sales.SubcategoryAverage{ranked[0], ranked[3]}, got)
}
