package services

import (
	"github.com/gcbaptista/diet-insights/model"
)

// ChartRenderer renders the dataset-wide charts
type ChartRenderer interface {
	BarChart() (model.ChartImage, error)
	ScatterPlot() (model.ChartImage, error)
	Heatmap() (model.ChartImage, error)
	PieChart() (model.ChartImage, error)
}

// InsightQuerier answers the aggregate and listing queries.
// An empty diet type or "All" selects every recipe, so ?diet_type= behaves
// like leaving the parameter out. Any other value is matched exactly and
// case-sensitively; unknown values select nothing.
type InsightQuerier interface {
	NutritionalInsights(dietType string) (model.NutritionalInsights, error)
	Recipes(dietType string) (model.RecipeListing, error)
	Clusters() (model.ClusterCounts, error)
	DietTypes() (model.DietTypeList, error)
}

// InsightsProvider combines every read operation the HTTP layer exposes
type InsightsProvider interface {
	ChartRenderer
	InsightQuerier
	TotalRecipes() int
}
