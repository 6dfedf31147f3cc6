package handlers

import (
	"net/http"

	response "tallerpro/internal/adapter/http/dto/response"
	"tallerpro/internal/domain/status"

	"github.com/gin-gonic/gin"
)

// StatusHandler exposes the read-only status catalog to the UI.
type StatusHandler struct {
	registry *status.Registry
}

func NewStatusHandler(r *status.Registry) *StatusHandler {
	if r == nil {
		r = status.Default()
	}
	return &StatusHandler{registry: r}
}

func (h *StatusHandler) ListStatuses(c *gin.Context) {
	c.JSON(http.StatusOK, response.FromRegistry(h.registry))
}
