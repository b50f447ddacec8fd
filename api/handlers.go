package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/diet-insights/internal/metrics"
	"github.com/gcbaptista/diet-insights/services"
)

// RootMessage is the liveness message served at "/"
const RootMessage = "Nutritional Insights API is running!"

// ServiceName identifies the service in health responses
const ServiceName = "diet-insights"

// dietTypeParam is the optional filter accepted by the listing endpoints
const dietTypeParam = "diet_type"

// API holds dependencies for API handlers, primarily the insights provider.
type API struct {
	insights services.InsightsProvider
}

// NewAPI creates a new API handler structure.
func NewAPI(insights services.InsightsProvider) *API {
	return &API{insights: insights}
}

// NewRouter builds a gin engine with the middleware chain and every route.
// m may be nil, in which case no HTTP metrics are recorded.
func NewRouter(insights services.InsightsProvider, m *metrics.Metrics) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestIDMiddleware(), LoggingMiddleware())
	if m != nil {
		router.Use(MetricsMiddleware(m))
	}
	router.Use(CORSMiddleware())

	SetupRoutes(router, insights)
	return router
}

// SetupRoutes defines all the API routes of the insights service.
func SetupRoutes(router *gin.Engine, insights services.InsightsProvider) {
	apiHandler := NewAPI(insights)

	router.GET("/", apiHandler.RootHandler)
	router.GET("/health", apiHandler.HealthCheckHandler)

	apiRoutes := router.Group("/api")
	{
		apiRoutes.GET("/bar-chart", apiHandler.BarChartHandler)
		apiRoutes.GET("/scatter-plot", apiHandler.ScatterPlotHandler)
		apiRoutes.GET("/heatmap", apiHandler.HeatmapHandler)
		apiRoutes.GET("/pie-chart", apiHandler.PieChartHandler)

		apiRoutes.GET("/nutritional-insights", apiHandler.NutritionalInsightsHandler) // ?diet_type=Keto
		apiRoutes.GET("/recipes", apiHandler.RecipesHandler)                          // ?diet_type=Keto
		apiRoutes.GET("/clusters", apiHandler.ClustersHandler)
		apiRoutes.GET("/diet-types", apiHandler.DietTypesHandler)
	}

	router.NoRoute(SendNotFound)
}

// RootHandler answers the liveness probe of the front end
func (api *API) RootHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": RootMessage})
}

// HealthCheckHandler provides a simple health check endpoint
func (api *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":        "healthy",
		"service":       ServiceName,
		"timestamp":     fmt.Sprintf("%d", time.Now().Unix()),
		"total_recipes": api.insights.TotalRecipes(),
	})
}
