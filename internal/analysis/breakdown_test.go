package analysis

import (
	"bytes"
	"errors"
	"testing"

	"edaviz/adapters/excel"
	"edaviz/domain/chart"
	"edaviz/domain/dataset"
	"edaviz/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadCSV(t *testing.T, content string) *dataset.Dataset {
	t.Helper()
	ds, err := excel.Load(excel.MemoryFile{FileName: "superstore.csv", Data: []byte(content)})
	require.NoError(t, err)
	return ds
}

const superstore = `Order ID,Category,Sub-Category,Sales
1,Furniture,Chairs,100.5
2,Furniture,Tables,200
3,Technology,Phones,50
4,Office Supplies,Paper,12.25
5,Technology,Phones,30
6,Furniture,Chairs,NA
`

func TestBreakdownTwoPies(t *testing.T) {
	specs, err := Breakdown(loadCSV(t, superstore))
	require.NoError(t, err)
	require.Len(t, specs, 2)

	category, subCategory := specs[0], specs[1]
	assert.Equal(t, chart.KindPie, category.Kind)
	assert.Equal(t, "Category-wise Sales", category.Title)
	assert.Equal(t, "Sub-Category-wise Sales", subCategory.Title)

	assert.Equal(t, []chart.Slice{
		{Name: "Furniture", Value: 300.5},
		{Name: "Technology", Value: 80},
		{Name: "Office Supplies", Value: 12.25},
	}, category.Slices)
	assert.Equal(t, []string{"Chairs", "Tables", "Phones", "Paper"}, subCategory.Labels())

	total := 100.5 + 200 + 50 + 12.25 + 30
	assert.InDelta(t, total, category.Total(), 1e-9)
	assert.InDelta(t, total, subCategory.Total(), 1e-9)
}

func TestBreakdownSkipsWithoutColumns(t *testing.T) {
	for name, content := range map[string]string{
		"no category":     "Sub-Category,Sales\nChairs,1\n",
		"no sub-category": "Category,Sales\nFurniture,1\n",
		"no sales":        "Category,Sub-Category\nFurniture,Chairs\n",
	} {
		t.Run(name, func(t *testing.T) {
			specs, err := Breakdown(loadCSV(t, content))
			assert.NoError(t, err)
			assert.Empty(t, specs)
		})
	}
}

func TestBreakdownTextSales(t *testing.T) {
	specs, err := Breakdown(loadCSV(t, "Category,Sub-Category,Sales\nFurniture,Chairs,lots\n"))

	assert.Nil(t, specs)
	var schemaErr *dataset.SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, SalesColumn, schemaErr.Column)
	assert.Equal(t, dataset.SchemaType, schemaErr.Reason)
}

func TestBreakdownGeneratedOrders(t *testing.T) {
	config := testkit.DefaultSuperstoreConfig()
	config.OrderCount = 300
	config.MissingRate = 0.05
	orders := testkit.NewSuperstoreGenerator(config).GenerateOrders()

	var csvBuf, xlsxBuf bytes.Buffer
	require.NoError(t, testkit.WriteCSV(&csvBuf, orders))
	require.NoError(t, testkit.WriteXLSX(&xlsxBuf, orders))

	files := []excel.MemoryFile{
		{FileName: "orders.csv", Data: csvBuf.Bytes()},
		{FileName: "orders.xlsx", Data: xlsxBuf.Bytes()},
	}
	byCategory := testkit.SalesBy(orders, func(o testkit.Order) string { return o.Category })
	bySub := testkit.SalesBy(orders, func(o testkit.Order) string { return o.SubCategory })

	for _, file := range files {
		t.Run(file.FileName, func(t *testing.T) {
			ds, err := excel.Load(file)
			require.NoError(t, err)

			specs, err := Breakdown(ds)
			require.NoError(t, err)
			require.Len(t, specs, 2)

			total := testkit.TotalSales(orders)
			assert.InDelta(t, total, specs[0].Total(), 1e-6)
			assert.InDelta(t, total, specs[1].Total(), 1e-6)

			for _, sl := range specs[0].Slices {
				assert.InDelta(t, byCategory[sl.Name], sl.Value, 1e-6, sl.Name)
			}
			assert.Len(t, specs[1].Slices, len(bySub))
		})
	}
}
