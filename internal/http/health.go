package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hperera/librarium/internal/database"
)

type healthResponse struct {
	Status  string `json:"status"`
	Time    string `json:"time"`
	Version string `json:"version,omitempty"`
	DB      string `json:"db"`
}

type HealthController struct {
	db      *database.Database
	version string
}

func NewHealthController(db *database.Database, version string) *HealthController {
	return &HealthController{db: db, version: version}
}

// Status reports service liveness and database connectivity.
// GET /health
func (h *HealthController) Status(c *gin.Context) {
	status, dbCheck := "healthy", "ok"

	if h.db == nil {
		dbCheck = "not configured"
	} else if sqlDB, err := h.db.DB.DB(); err != nil {
		status, dbCheck = "unhealthy", "error: "+err.Error()
	} else if err := sqlDB.Ping(); err != nil {
		status, dbCheck = "unhealthy", "error: "+err.Error()
	}

	code := http.StatusOK
	if status != "healthy" {
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, healthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		DB:      dbCheck,
	})
}
