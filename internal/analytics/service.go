package analytics

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/gcbaptista/diet-insights/internal/charts"
	"github.com/gcbaptista/diet-insights/internal/dataset"
	apperrors "github.com/gcbaptista/diet-insights/internal/errors"
	"github.com/gcbaptista/diet-insights/internal/logger"
	"github.com/gcbaptista/diet-insights/internal/metrics"
	"github.com/gcbaptista/diet-insights/internal/stats"
	"github.com/gcbaptista/diet-insights/model"
)

// RecipePageSize is the number of records returned by Recipes
const RecipePageSize = 10

// Chart names, used in metrics labels and error messages
const (
	ChartBar     = "bar chart"
	ChartScatter = "scatter plot"
	ChartHeatmap = "heatmap"
	ChartPie     = "pie chart"
)

var macroColors = map[dataset.Macro]string{
	dataset.Protein: "#FF6B6B",
	dataset.Carbs:   "#4ECDC4",
	dataset.Fat:     "#45B7D1",
}

// Service answers every insight query from one immutable table.
// It holds no mutable state and is safe for concurrent use.
type Service struct {
	table    *dataset.Table
	renderer *charts.Renderer
	metrics  *metrics.Metrics
	log      *slog.Logger
}

// NewService creates an analytics service. m may be nil when metrics are disabled.
func NewService(table *dataset.Table, renderer *charts.Renderer, m *metrics.Metrics) *Service {
	if renderer == nil {
		renderer = charts.NewRenderer(charts.DefaultOptions())
	}
	if m != nil {
		m.DatasetRows.Set(float64(table.Len()))
	}
	return &Service{
		table:    table,
		renderer: renderer,
		metrics:  m,
		log:      logger.WithComponent("analytics"),
	}
}

// TotalRecipes returns the number of rows in the table
func (s *Service) TotalRecipes() int {
	return s.table.Len()
}

// BarChart renders the mean macronutrients of every diet type as grouped bars
func (s *Service) BarChart() (model.ChartImage, error) {
	return s.render(ChartBar, func() ([]byte, error) {
		groups := s.dietTypesAlphabetical()
		series := make([]charts.BarSeries, len(dataset.Macros))
		for i, m := range dataset.Macros {
			series[i] = charts.BarSeries{Name: m.String(), Color: macroColors[m], Values: make([]float64, len(groups))}
		}
		for g, dt := range groups {
			view := s.table.Filter(dt)
			for i, m := range dataset.Macros {
				series[i].Values[g] = stats.Mean(view.Macro(m))
			}
		}

		return s.renderer.GroupedBar(charts.GroupedBarChart{
			Title:      "Average Macronutrient Content by Diet Type",
			XLabel:     "Diet Type",
			YLabel:     "Grams",
			Categories: groups,
			Series:     series,
		})
	})
}

// ScatterPlot renders protein against carbs for every row
func (s *Service) ScatterPlot() (model.ChartImage, error) {
	return s.render(ChartScatter, func() ([]byte, error) {
		all := s.table.All()
		return s.renderer.Scatter(charts.ScatterChart{
			Title:  "Nutrient Relationships: Protein vs Carbs",
			XLabel: "Protein (g)",
			YLabel: "Carbs (g)",
			X:      all.Macro(dataset.Protein),
			Y:      all.Macro(dataset.Carbs),
			Color:  "#FF6B6B",
			Alpha:  0.6,
		})
	})
}

// Heatmap renders the pairwise correlations of every numeric column
func (s *Service) Heatmap() (model.ChartImage, error) {
	return s.render(ChartHeatmap, func() ([]byte, error) {
		names, columns := s.table.NumericColumns()
		return s.renderer.Heatmap(charts.HeatmapChart{
			Title:         "Nutrient Correlations Heatmap",
			Labels:        names,
			Matrix:        stats.CorrelationMatrix(columns),
			ColorBarLabel: "Correlation",
		})
	})
}

// PieChart renders the share of recipes per diet type
func (s *Service) PieChart() (model.ChartImage, error) {
	return s.render(ChartPie, func() ([]byte, error) {
		counts := s.table.DietTypeCounts()
		n := make([]int, len(counts))
		for i, c := range counts {
			n[i] = c.Count
		}
		shares := stats.Shares(n)

		slices := make([]charts.PieSlice, len(counts))
		for i, c := range counts {
			slices[i] = charts.PieSlice{Label: c.DietType, Share: shares[i]}
		}
		return s.renderer.Pie(charts.PieChart{
			Title:  "Recipe Distribution by Diet Type",
			Slices: slices,
		})
	})
}

// NutritionalInsights summarises the rows of one diet type, or every row for
// "All" and the empty string. Averages are nil when nothing matches.
func (s *Service) NutritionalInsights(dietType string) (insights model.NutritionalInsights, err error) {
	defer recoverInto("nutritional insights", &err)

	dietType = normalizeDietType(dietType)
	view := s.table.Filter(dietType)
	return model.NutritionalInsights{
		TotalRecipes: view.Len(),
		AvgProtein:   stats.RoundedMean(view.Macro(dataset.Protein)),
		AvgCarbs:     stats.RoundedMean(view.Macro(dataset.Carbs)),
		AvgFat:       stats.RoundedMean(view.Macro(dataset.Fat)),
		DietType:     dietType,
	}, nil
}

// Recipes returns the first RecipePageSize matching rows in table order and
// the total number of matches
func (s *Service) Recipes(dietType string) (listing model.RecipeListing, err error) {
	defer recoverInto("recipes", &err)

	view := s.table.Filter(normalizeDietType(dietType))
	return model.RecipeListing{
		Recipes: view.Records(RecipePageSize),
		Total:   view.Len(),
	}, nil
}

// Clusters counts rows above the dataset-wide macronutrient means
func (s *Service) Clusters() (clusters model.ClusterCounts, err error) {
	defer recoverInto("clusters", &err)

	all := s.table.All()
	protein := all.Macro(dataset.Protein)
	carbs := all.Macro(dataset.Carbs)
	fat := all.Macro(dataset.Fat)

	meanProtein := stats.Mean(protein)
	meanCarbs := stats.Mean(carbs)

	return model.ClusterCounts{
		HighProtein: stats.CountAbove(protein, meanProtein),
		HighCarbs:   stats.CountAbove(carbs, meanCarbs),
		HighFat:     stats.CountAbove(fat, stats.Mean(fat)),
		Balanced:    stats.CountAboveBoth(protein, meanProtein, carbs, meanCarbs),
	}, nil
}

// DietTypes lists the distinct diet types with their row counts, largest first
func (s *Service) DietTypes() (list model.DietTypeList, err error) {
	defer recoverInto("diet types", &err)

	return model.DietTypeList{DietTypes: s.table.DietTypeCounts()}, nil
}

// render times one chart, converts panics from the plotting libraries into
// errors and encodes the PNG as a data URI
func (s *Service) render(chart string, draw func() ([]byte, error)) (img model.ChartImage, err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err = apperrors.NewRenderError(chart, fmt.Errorf("panic: %v", r))
		}
		s.metrics.ObserveRender(chart, time.Since(start), err)
		if err != nil {
			s.log.Error("Chart render failed", "chart", chart, "error", err)
		} else {
			s.log.Debug("Chart rendered", "chart", chart, "duration", time.Since(start))
		}
	}()

	png, err := draw()
	if err != nil {
		return model.ChartImage{}, apperrors.NewRenderError(chart, err)
	}
	return model.ChartImage{Image: charts.EncodeDataURI(png)}, nil
}

func (s *Service) dietTypesAlphabetical() []string {
	counts := s.table.DietTypeCounts()
	names := make([]string, len(counts))
	for i, c := range counts {
		names[i] = c.DietType
	}
	sort.Strings(names)
	return names
}

func normalizeDietType(dietType string) string {
	if dietType == "" {
		return dataset.AllDietTypes
	}
	return dietType
}

func recoverInto(op string, err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%s: unexpected failure: %v", op, r)
	}
}
