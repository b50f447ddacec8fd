package model

// ChartImage is a rendered chart as a self-describing data URI
// (e.g. "data:image/png;base64,iVBORw0...").
type ChartImage struct {
	Image string `json:"image"`
}

// NutritionalInsights summarises the macronutrients of a diet type selection.
// Averages are nil when the selection is empty.
type NutritionalInsights struct {
	TotalRecipes int      `json:"total_recipes"`
	AvgProtein   *float64 `json:"avg_protein"`
	AvgCarbs     *float64 `json:"avg_carbs"`
	AvgFat       *float64 `json:"avg_fat"`
	DietType     string   `json:"diet_type"`
}

// RecipeListing is the first page of recipes matching a diet type filter.
// Total counts every matching row, not just the returned page.
type RecipeListing struct {
	Recipes []Record `json:"recipes"`
	Total   int      `json:"total"`
}

// ClusterCounts holds threshold counts against dataset-wide macronutrient means
type ClusterCounts struct {
	HighProtein int `json:"high_protein"`
	HighCarbs   int `json:"high_carbs"`
	HighFat     int `json:"high_fat"`
	Balanced    int `json:"balanced"` // above both the protein and the carbs mean
}

// DietTypeCount is the number of recipes carrying one diet type label
type DietTypeCount struct {
	DietType string `json:"diet_type"`
	Count    int    `json:"count"`
}

// DietTypeList lists every diet type present in the dataset
type DietTypeList struct {
	DietTypes []DietTypeCount `json:"diet_types"`
}
