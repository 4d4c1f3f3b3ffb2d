package http

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// staticHandler serves the frontend from the public directory. Registered as
// the NoRoute fallback so API routes keep priority.
func staticHandler(publicPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
			return
		}

		requested := c.Request.URL.Path
		if strings.Contains(requested, "..") {
			c.String(http.StatusForbidden, "Forbidden")
			return
		}
		if requested == "/" {
			requested = "/index.html"
		}

		full := filepath.Join(publicPath, filepath.FromSlash(requested))
		info, err := os.Stat(full)
		if err != nil || info.IsDir() {
			c.String(http.StatusNotFound, "Not Found")
			return
		}
		c.File(full)
	}
}
