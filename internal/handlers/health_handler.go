package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	storeEnabled bool
}

func NewHealthHandler(storeEnabled bool) *HealthHandler {
	return &HealthHandler{storeEnabled: storeEnabled}
}

// Healthcheck reports liveness. The service stays healthy without a record
// store; the store mode is surfaced so operators can tell log-only apart from
// a misconfiguration.
func (h *HealthHandler) Healthcheck(c *gin.Context) {
	c.Header("Cache-Control", "no-cache, no-store, max-age=0, must-revalidate")

	storeMode := "airtable"
	if !h.storeEnabled {
		storeMode = "log-only"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"store_mode": storeMode,
	})
}
