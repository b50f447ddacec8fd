package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/diet-insights/internal/dataset"
)

// NutritionalInsightsHandler handles GET /api/nutritional-insights?diet_type=...
func (api *API) NutritionalInsightsHandler(c *gin.Context) {
	dietType := c.DefaultQuery(dietTypeParam, dataset.AllDietTypes)

	insights, err := api.insights.NutritionalInsights(dietType)
	if err != nil {
		SendError(c, "nutritional insights", err)
		return
	}
	c.JSON(http.StatusOK, insights)
}

// RecipesHandler handles GET /api/recipes?diet_type=...
// It returns the first ten matching recipes and the total match count.
func (api *API) RecipesHandler(c *gin.Context) {
	dietType := c.DefaultQuery(dietTypeParam, dataset.AllDietTypes)

	listing, err := api.insights.Recipes(dietType)
	if err != nil {
		SendError(c, "recipes", err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

// ClustersHandler handles GET /api/clusters
func (api *API) ClustersHandler(c *gin.Context) {
	clusters, err := api.insights.Clusters()
	if err != nil {
		SendError(c, "clusters", err)
		return
	}
	c.JSON(http.StatusOK, clusters)
}

// DietTypesHandler lists the diet types for the front end filter
func (api *API) DietTypesHandler(c *gin.Context) {
	list, err := api.insights.DietTypes()
	if err != nil {
		SendError(c, "diet types", err)
		return
	}
	c.JSON(http.StatusOK, list)
}
