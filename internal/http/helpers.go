package http

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// --- Response Types ---

// Result is the flat success/message body the legacy API speaks. Operations
// report failure as success:false with status 200, not as an HTTP error.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse is used for the few genuine HTTP errors (missing resources).
type ErrorResponse struct {
	Error string `json:"error"`
}

// --- Response Helpers ---

// respondResult sends a 200 response with a success flag and message.
func respondResult(c *gin.Context, success bool, message string) {
	c.JSON(http.StatusOK, Result{Success: success, Message: message})
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found"})
}

// respondInternalError logs the error and reports failure to the client
// without exposing the details.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.JSON(http.StatusOK, Result{Success: false, Message: "internal error"})
}

// bindJSON parses the request body, reporting a failure Result when the
// payload is malformed.
func bindJSON(c *gin.Context, out any) bool {
	if err := c.ShouldBindJSON(out); err != nil {
		respondResult(c, false, "invalid request body")
		return false
	}
	return true
}
