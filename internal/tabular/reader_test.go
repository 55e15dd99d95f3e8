package tabular_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/KaramelBytes/salesreport-cli/internal/sales"
	"github.com/KaramelBytes/salesreport-cli/internal/tabular"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestReadCSV(t *testing.T) {
	p := writeFile(t, "store.csv", "\ufeffShip Mode, Region ,Sub-Category,Sales,Profit\n"+
		"Second Class,South,Bookcases,261.96,41.9136\n"+
		"Standard Class,West,Labels,14.62\n")
	ds, err := tabular.Read(p, tabular.ReadOptions{})
	require.NoError(t, err)

	assert.Equal(t, "store.csv", ds.Name)
	assert.Equal(t, 2, ds.Rows)
	assert.Empty(t, ds.MissingColumns)
	assert.Equal(t, []sales.RawRecord{
		{Region: "South", SubCategory: "Bookcases", Sales: "261.96", Profit: "41.9136"},
		{Region: "West", SubCategory: "Labels", Sales: "14.62", Profit: ""},
	}, ds.Records)
}

func TestReadCSVMissingColumns(t *testing.T) {
	p := writeFile(t, "partial.csv", "Region,Sales\nEast,10\n")
	ds, err := tabular.Read(p, tabular.ReadOptions{})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Sub-Category", "Profit"}, ds.MissingColumns)
	assert.Equal(t, []sales.RawRecord{{Region: "East", Sales: "10"}}, ds.Records)
}

func TestReadCSVDelimiter(t *testing.T) {
	tsv := writeFile(t, "store.tsv", "Region\tSub-Category\tSales\tProfit\nEast\tArt\t5\t1\n")
	ds, err := tabular.Read(tsv, tabular.ReadOptions{})
	require.NoError(t, err)
	assert.Equal(t, []sales.RawRecord{{Region: "East", SubCategory: "Art", Sales: "5", Profit: "1"}}, ds.Records)

	semi := writeFile(t, "store.csv", "Region;Sub-Category;Sales;Profit\nEast;Art;5,5;1\n")
	ds, err = tabular.Read(semi, tabular.ReadOptions{Delimiter: ';'})
	require.NoError(t, err)
	assert.Equal(t, "5,5", ds.Records[0].Sales)
}

func TestReadEmptyCSV(t *testing.T) {
	p := writeFile(t, "empty.csv", "")
	ds, err := tabular.Read(p, tabular.ReadOptions{})
	require.NoError(t, err)
	assert.Zero(t, ds.Rows)
	assert.Empty(t, ds.Records)
}

func TestReadMissingSource(t *testing.T) {
	ds, err := tabular.Read(filepath.Join(t.TempDir(), "nope.csv"), tabular.ReadOptions{})
	require.ErrorIs(t, err, tabular.ErrSourceNotFound)
	require.NotNil(t, ds)
	assert.Empty(t, ds.Records)
}

func TestReadUnsupported(t *testing.T) {
	p := writeFile(t, "store.json", "[]")
	_, err := tabular.Read(p, tabular.ReadOptions{})
	assert.ErrorIs(t, err, tabular.ErrUnsupported)
}

func buildWorkbook(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName("Sheet1", "Notes"))
	_, err := f.NewSheet("Orders")
	require.NoError(t, err)
	rows := [][]any{
		{"Region", "Sub-Category", "Sales", "Profit"},
		{"Central", "Chairs", 731.94, 219.58},
		{"Central", "Phones"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow("Orders", cell, &r))
	}
	p := filepath.Join(t.TempDir(), "store.xlsx")
	require.NoError(t, f.SaveAs(p))
	return p
}

func TestReadXLSX(t *testing.T) {
	p := buildWorkbook(t)

	ds, err := tabular.Read(p, tabular.ReadOptions{SheetName: "orders"})
	require.NoError(t, err)
	assert.Equal(t, []sales.RawRecord{
		{Region: "Central", SubCategory: "Chairs", Sales: "731.94", Profit: "219.58"},
		{Region: "Central", SubCategory: "Phones"},
	}, ds.Records)

	ds, err = tabular.Read(p, tabular.ReadOptions{SheetIndex: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Rows)

	ds, err = tabular.Read(p, tabular.ReadOptions{})
	require.NoError(t, err)
	assert.Zero(t, ds.Rows)

	_, err = tabular.Read(p, tabular.ReadOptions{SheetName: "Missing"})
	assert.ErrorContains(t, err, "available: Notes, Orders")
	_, err = tabular.Read(p, tabular.ReadOptions{SheetIndex: 3})
	assert.ErrorContains(t, err, "out of range")
}
