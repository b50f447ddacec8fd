package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/diet-insights/internal/logger"
)

// ErrorResponse is the body of every failed query
type ErrorResponse struct {
	Error string `json:"error"`
}

// SendError reports a failed operation. Query failures keep the 200 status the
// front end expects and carry the description in the body.
func SendError(c *gin.Context, operation string, err error) {
	logger.FromContext(c.Request.Context()).Error("Request failed",
		"operation", operation,
		"path", c.FullPath(),
		"error", err,
	)
	c.JSON(http.StatusOK, ErrorResponse{Error: err.Error()})
}

// SendNotFound reports an unknown route
func SendNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: "route '" + c.Request.URL.Path + "' not found"})
}
