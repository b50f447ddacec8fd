package dataset_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/diet-insights/internal/dataset"
	apperrors "github.com/gcbaptista/diet-insights/internal/errors"
	testutil "github.com/gcbaptista/diet-insights/internal/testing"
)

func TestLoad_FromFile(t *testing.T) {
	path := testutil.WriteCSV(t, testutil.SampleCSV)

	table, err := dataset.Load(path, dataset.DefaultSchema())
	require.NoError(t, err)

	assert.Equal(t, 12, table.Len())
	assert.Equal(t, path, table.Source())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := dataset.Load("does/not/exist.csv", dataset.DefaultSchema())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does/not/exist.csv")
}

func TestParse_InfersColumnKinds(t *testing.T) {
	table := testutil.MustTable(t, testutil.SampleCSV)

	kinds := make(map[string]dataset.Kind)
	for _, col := range table.Columns() {
		kinds[col.Name] = col.Kind
	}

	assert.Equal(t, dataset.KindString, kinds["Diet Type"])
	assert.Equal(t, dataset.KindString, kinds["Recipe Name"])
	assert.Equal(t, dataset.KindFloat, kinds["Protein"])
	assert.Equal(t, dataset.KindString, kinds["Extraction Day"])

	pair := testutil.MustTable(t, testutil.KetoPairCSV)
	for _, col := range pair.Columns()[1:] {
		assert.Equal(t, dataset.KindInt, col.Kind, "column %s", col.Name)
	}
}

func TestParse_Validation(t *testing.T) {
	tests := []struct {
		name     string
		csv      string
		sentinel error
	}{
		{
			name:     "empty file",
			csv:      "",
			sentinel: apperrors.ErrInvalidDataset,
		},
		{
			name:     "missing diet type column",
			csv:      "Protein,Carbs,Fat\n1,2,3\n",
			sentinel: apperrors.ErrColumnNotFound,
		},
		{
			name:     "missing fat column",
			csv:      "Diet Type,Protein,Carbs\nKeto,1,2\n",
			sentinel: apperrors.ErrColumnNotFound,
		},
		{
			name:     "non numeric carbs",
			csv:      "Diet Type,Protein,Carbs,Fat\nKeto,1,lots,3\n",
			sentinel: apperrors.ErrColumnNotNumeric,
		},
		{
			name:     "empty protein cell",
			csv:      "Diet Type,Protein,Carbs,Fat\nKeto,,2,3\nVegan,4,5,6\n",
			sentinel: apperrors.ErrColumnNotNumeric,
		},
		{
			name:     "empty diet type cell",
			csv:      "Diet Type,Protein,Carbs,Fat\n,1,2,3\n",
			sentinel: apperrors.ErrInvalidDataset,
		},
		{
			name:     "ragged row",
			csv:      "Diet Type,Protein,Carbs,Fat\nKeto,1,2\n",
			sentinel: apperrors.ErrInvalidDataset,
		},
		{
			name:     "duplicate header",
			csv:      "Diet Type,Protein,Carbs,Fat,Fat\nKeto,1,2,3,4\n",
			sentinel: apperrors.ErrInvalidDataset,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := dataset.Parse(strings.NewReader(tt.csv), "test.csv", dataset.DefaultSchema())
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.sentinel), "expected %v, got %v", tt.sentinel, err)
		})
	}
}

func TestParse_HeaderOnly(t *testing.T) {
	table, err := dataset.Parse(strings.NewReader("Diet Type,Protein,Carbs,Fat\n"), "empty.csv", dataset.DefaultSchema())
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())
	assert.Empty(t, table.All().Macro(dataset.Protein))
}

func TestParse_CustomSchema(t *testing.T) {
	csvText := "Diet_type,Recipe_name,Protein(g),Carbs(g),Fat(g)\n" +
		"paleo,Steak,40.1,3.2,22.0\n" +
		"vegan,Salad,5.5,20.0,3.1\n"
	schema := dataset.Schema{DietType: "Diet_type", Protein: "Protein(g)", Carbs: "Carbs(g)", Fat: "Fat(g)"}

	table, err := dataset.Parse(strings.NewReader(csvText), "kaggle.csv", schema)
	require.NoError(t, err)

	assert.Equal(t, []float64{40.1, 5.5}, table.All().Macro(dataset.Protein))
	assert.Equal(t, []string{"paleo", "vegan"}, table.All().DietTypes())
}

func TestParse_TrimsBOMAndWhitespace(t *testing.T) {
	csvText := "\ufeffDiet Type , Protein,Carbs,Fat\n Keto , 10 ,5,2\n"

	table, err := dataset.Parse(strings.NewReader(csvText), "bom.csv", dataset.DefaultSchema())
	require.NoError(t, err)
	assert.Equal(t, []string{"Keto"}, table.All().DietTypes())
	assert.Equal(t, []float64{10}, table.All().Macro(dataset.Protein))
}

func TestParse_MissingPassthroughCellIsNull(t *testing.T) {
	table := testutil.MustTable(t, testutil.SampleCSV)

	records := table.Filter("Vegan").Records(0)
	require.Len(t, records, 3)

	cuisine, ok := records[2].Get("Cuisine Type")
	require.True(t, ok)
	assert.Nil(t, cuisine)
}
