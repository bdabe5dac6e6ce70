package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"workshop-scheduler-backend/internal/model"
)

// GetJobs handles GET /api/jobs, with an optional ?status= filter.
func (h *Handler) GetJobs(c *gin.Context) {
	ctx := c.Request.Context()
	status := c.Query("status")

	jobs, err := h.store.JobsWhere(ctx, func(j model.Job) bool {
		return status == "" || j.Status == status
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

type putAssigneesRequest struct {
	Assigned []string `json:"assigned" binding:"required"`
	BayID    string   `json:"bayId"`
}

// PutJobAssignees handles PUT /api/jobs/{job_id}/assignees: the staged-
// edit flow. The request carries the full proposed assignee set; the
// handler opens a session on the job, stages the set, and commits the
// diff as one unit. A commit race (an employee grabbed by another job in
// the meantime) comes back as 409 and the client re-reads and retries.
func (h *Handler) PutJobAssignees(c *gin.Context) {
	jobID := c.Param("job_id")

	var req putAssigneesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	session, err := h.engine.OpenSession(ctx, jobID, req.BayID)
	if err != nil {
		fail(c, err)
		return
	}

	want := make(map[string]bool, len(req.Assigned))
	for _, id := range req.Assigned {
		want[id] = true
		session.StageAdd(id)
	}
	for _, id := range session.Assigned() {
		if !want[id] {
			session.StageRemove(id)
		}
	}

	if err := session.Commit(ctx); err != nil {
		fail(c, err)
		return
	}
	h.respondWithState(c, http.StatusOK)
}
