package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_MarshalJSONKeepsHeaderOrder(t *testing.T) {
	rec := Record{
		Columns: []string{"Recipe", "Diet Type", "Protein", "Notes"},
		Values:  []interface{}{"Egg Bowl", "Keto", float64(30), nil},
	}

	data, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.Equal(t, `{"Recipe":"Egg Bowl","Diet Type":"Keto","Protein":30,"Notes":null}`, string(data))
}

func TestRecord_Get(t *testing.T) {
	rec := Record{
		Columns: []string{"Diet Type", "Protein"},
		Values:  []interface{}{"Vegan", int64(12)},
	}

	v, ok := rec.Get("Protein")
	assert.True(t, ok)
	assert.Equal(t, int64(12), v)

	_, ok = rec.Get("Fat")
	assert.False(t, ok)
}

func TestNutritionalInsights_NullAverages(t *testing.T) {
	data, err := json.Marshal(NutritionalInsights{DietType: "Vegan"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"total_recipes":0,"avg_protein":null,"avg_carbs":null,"avg_fat":null,"diet_type":"Vegan"}`, string(data))
}
