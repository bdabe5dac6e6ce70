package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"workshop-scheduler-backend/internal/model"
)

// GetBays handles GET /api/bays, with an optional ?section= filter.
func (h *Handler) GetBays(c *gin.Context) {
	section := c.Query("section")
	bays, err := h.store.BaysWhere(c.Request.Context(), func(b model.Bay) bool {
		return section == "" || b.Section == section
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, bays)
}

// GetBayReady handles GET /api/bays/ready: jobs fully staffed but not yet
// in a bay, alongside the bays open for pairing.
func (h *Handler) GetBayReady(c *gin.Context) {
	ctx := c.Request.Context()
	jobs, err := h.engine.ReadyJobs(ctx)
	if err != nil {
		fail(c, err)
		return
	}
	bays, err := h.engine.AvailableBays(ctx)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"readyJobs": jobs, "availableBays": bays})
}

type assignBayRequest struct {
	JobID string `json:"jobId" binding:"required"`
}

// PostBayAssign handles POST /api/bays/{bay_id}/assign.
func (h *Handler) PostBayAssign(c *gin.Context) {
	bayID := c.Param("bay_id")

	var req assignBayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.engine.AssignJobToBay(c.Request.Context(), req.JobID, bayID); err != nil {
		fail(c, err)
		return
	}
	h.respondWithState(c, http.StatusOK)
}

// PostBayRelease handles POST /api/bays/{bay_id}/release.
func (h *Handler) PostBayRelease(c *gin.Context) {
	if err := h.engine.ReleaseBay(c.Request.Context(), c.Param("bay_id")); err != nil {
		fail(c, err)
		return
	}
	h.respondWithState(c, http.StatusOK)
}
