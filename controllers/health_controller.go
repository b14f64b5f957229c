package controllers

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"foodorder/pkg/resp"

	"github.com/gin-gonic/gin"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

var _ Pinger = (*sql.DB)(nil)

type HealthController struct {
	DB Pinger
}

func NewHealthController(db Pinger) *HealthController {
	return &HealthController{DB: db}
}

// GET /health
func (hc *HealthController) Health(c *gin.Context) {
	resp.OK(c, gin.H{"status": "ok"})
}

// GET /ready
func (hc *HealthController) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := hc.DB.PingContext(ctx); err != nil {
		resp.Fail(c, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	resp.OK(c, gin.H{"status": "ready"})
}
