package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/diet-insights/model"
)

// BarChartHandler serves the average macronutrients per diet type
func (api *API) BarChartHandler(c *gin.Context) {
	api.sendChart(c, "bar chart", api.insights.BarChart)
}

// ScatterPlotHandler serves protein against carbs for every recipe
func (api *API) ScatterPlotHandler(c *gin.Context) {
	api.sendChart(c, "scatter plot", api.insights.ScatterPlot)
}

// HeatmapHandler serves the correlation heatmap of the numeric columns
func (api *API) HeatmapHandler(c *gin.Context) {
	api.sendChart(c, "heatmap", api.insights.Heatmap)
}

// PieChartHandler serves the recipe share of every diet type
func (api *API) PieChartHandler(c *gin.Context) {
	api.sendChart(c, "pie chart", api.insights.PieChart)
}

func (api *API) sendChart(c *gin.Context, operation string, render func() (model.ChartImage, error)) {
	img, err := render()
	if err != nil {
		SendError(c, operation, err)
		return
	}
	c.JSON(http.StatusOK, img)
}
