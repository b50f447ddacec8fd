// Package testing provides fixtures and helpers for testing the insights service.
package testing

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/diet-insights/internal/dataset"
)

// KetoPairCSV is the two-row table used by the end-to-end examples:
// means are 20/5/15 and only the first row is above the protein and fat means.
const KetoPairCSV = `Diet Type,Protein,Carbs,Fat
Keto,30,5,20
Keto,10,5,10
`

// SampleCSV is a small mixed dataset with passthrough columns, including an
// empty cell and a float column next to integer ones.
const SampleCSV = `Diet Type,Recipe Name,Cuisine Type,Protein,Carbs,Fat,Extraction Day
Keto,Bacon Eggs,american,32.5,4.1,41.2,2022-10-16
Keto,Avocado Salad,mexican,12.0,9.3,28.4,2022-10-16
Keto,Salmon Plate,nordic,38.2,2.2,22.9,2022-10-16
Vegan,Lentil Curry,indian,18.4,52.7,8.1,2022-10-16
Vegan,Tofu Stir Fry,chinese,21.3,30.9,12.6,2022-10-16
Vegan,Quinoa Bowl,,14.8,61.2,9.7,2022-10-16
Paleo,Steak Veg,american,45.1,12.4,25.3,2022-10-17
Paleo,Chicken Soup,french,29.6,15.8,10.2,2022-10-17
Mediterranean,Greek Salad,greek,9.2,14.5,19.8,2022-10-17
Mediterranean,Grilled Fish,italian,35.7,8.6,14.1,2022-10-17
Dash,Oat Porridge,british,11.3,54.0,6.2,2022-10-17
Dash,Bean Chili,mexican,24.8,44.1,7.9,2022-10-17
`

// ManyKetoCSV returns a table with n Keto rows whose protein value is the row number
func ManyKetoCSV(n int) string {
	var b strings.Builder
	b.WriteString("Diet Type,Recipe Name,Protein,Carbs,Fat\n")
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "Keto,Recipe %d,%d,5,10\n", i, i)
	}
	return b.String()
}

// MustTable parses CSV text with the default schema and fails the test on error
func MustTable(t *testing.T, csvText string) *dataset.Table {
	t.Helper()
	table, err := dataset.Parse(strings.NewReader(csvText), "fixture.csv", dataset.DefaultSchema())
	require.NoError(t, err, "Failed to parse fixture table")
	return table
}

// WriteCSV writes CSV text to a file inside a per-test temporary directory
// and returns its path
func WriteCSV(t *testing.T, csvText string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "All_Diets.csv")
	require.NoError(t, os.WriteFile(path, []byte(csvText), 0o644), "Failed to write fixture file")
	return path
}
