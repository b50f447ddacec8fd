package dataset_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/diet-insights/internal/dataset"
	"github.com/gcbaptista/diet-insights/model"
	testutil "github.com/gcbaptista/diet-insights/internal/testing"
)

func TestTable_Filter(t *testing.T) {
	table := testutil.MustTable(t, testutil.SampleCSV)

	tests := []struct {
		dietType string
		expected int
	}{
		{dataset.AllDietTypes, 12},
		{"Keto", 3},
		{"Vegan", 3},
		{"Dash", 2},
		{"Carnivore", 0},
		{"keto", 0}, // labels are case sensitive
	}

	for _, tt := range tests {
		t.Run(tt.dietType, func(t *testing.T) {
			view := table.Filter(tt.dietType)
			assert.Equal(t, tt.expected, view.Len())

			for _, dt := range view.DietTypes() {
				if tt.dietType != dataset.AllDietTypes {
					assert.Equal(t, tt.dietType, dt)
				}
			}
		})
	}
}

func TestView_RecordsKeepsTableOrderAndLimit(t *testing.T) {
	table := testutil.MustTable(t, testutil.ManyKetoCSV(25))

	records := table.Filter("Keto").Records(10)
	require.Len(t, records, 10)
	for i, rec := range records {
		protein, _ := rec.Get("Protein")
		assert.Equal(t, int64(i+1), protein)
	}

	assert.Len(t, table.All().Records(0), 25)
}

func TestView_RecordsAreCopies(t *testing.T) {
	table := testutil.MustTable(t, testutil.KetoPairCSV)

	first := table.All().Records(1)
	first[0].Values[1] = int64(999)

	again := table.All().Records(1)
	protein, _ := again[0].Get("Protein")
	assert.Equal(t, int64(30), protein)

	macros := table.All().Macro(dataset.Protein)
	macros[0] = -1
	assert.Equal(t, []float64{30, 10}, table.All().Macro(dataset.Protein))
}

func TestTable_DietTypeCounts(t *testing.T) {
	table := testutil.MustTable(t, testutil.SampleCSV)

	counts := table.DietTypeCounts()
	expected := []model.DietTypeCount{
		{DietType: "Keto", Count: 3},
		{DietType: "Vegan", Count: 3},
		{DietType: "Dash", Count: 2},
		{DietType: "Mediterranean", Count: 2},
		{DietType: "Paleo", Count: 2},
	}
	assert.Equal(t, expected, counts)
}

func TestTable_NumericColumns(t *testing.T) {
	csvText := "Diet Type,Calories,Protein,Carbs,Fat,Label\n" +
		"Keto,400,30,5,20,a\n" +
		"Keto,,10,5,10,b\n"
	table := testutil.MustTable(t, csvText)

	names, values := table.NumericColumns()
	assert.Equal(t, []string{"Calories", "Protein", "Carbs", "Fat"}, names)
	require.Len(t, values, 4)
	assert.Equal(t, 400.0, values[0][0])
	assert.True(t, math.IsNaN(values[0][1]))
}
