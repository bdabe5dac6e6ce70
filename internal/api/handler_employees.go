package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetEmployees handles GET /api/employees.
func (h *Handler) GetEmployees(c *gin.Context) {
	employees, err := h.store.Employees(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, employees)
}

// ResetStatuses handles POST /api/reset: the destructive bulk reset that
// frees every employee, clears every job's assignee set and bay link, and
// drops all bookings.
func (h *Handler) ResetStatuses(c *gin.Context) {
	if err := h.engine.ResetAllStatuses(c.Request.Context()); err != nil {
		fail(c, err)
		return
	}
	h.respondWithState(c, http.StatusOK)
}
