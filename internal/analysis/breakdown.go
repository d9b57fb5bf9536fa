package analysis

import (
	"edaviz/domain/chart"
	"edaviz/domain/dataset"
	"edaviz/internal"
)

var logger = internal.DefaultLogger.Named("Breakdown")

// Column names of a Superstore-style sales export
const (
	CategoryColumn    = "Category"
	SubCategoryColumn = "Sub-Category"
	SalesColumn       = "Sales"
)

type breakdownGroup struct {
	Key   string
	Title string
}

var breakdownGroups = []breakdownGroup{
	{Key: CategoryColumn, Title: "Category-wise Sales"},
	{Key: SubCategoryColumn, Title: "Sub-Category-wise Sales"},
}

// Breakdown returns a Sales pie per Category and per Sub-Category.
// Datasets without all three columns yield no charts and no error.
func Breakdown(ds *dataset.Dataset) ([]*chart.Spec, error) {
	if !ds.Has(CategoryColumn, SubCategoryColumn, SalesColumn) {
		logger.Debug("%s has no %s/%s/%s columns, skipping", ds.Source(), CategoryColumn, SubCategoryColumn, SalesColumn)
		return nil, nil
	}

	specs := make([]*chart.Spec, 0, len(breakdownGroups))
	for _, group := range breakdownGroups {
		slices, err := chart.GroupSum(ds, group.Key, SalesColumn)
		if err != nil {
			return nil, err
		}
		specs = append(specs, &chart.Spec{
			Kind:    chart.KindPie,
			Title:   group.Title,
			Binding: chart.Binding{chart.RoleNames: group.Key, chart.RoleValues: SalesColumn},
			Slices:  slices,
		})
	}
	return specs, nil
}
