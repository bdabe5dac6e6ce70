package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"workshop-scheduler-backend/internal/slot"
)

// GetSchedule handles GET /api/schedule. Without parameters it returns
// every assignment row; ?employee_id= narrows to one employee and ?date=
// (YYYY-MM-DD) to one day.
func (h *Handler) GetSchedule(c *gin.Context) {
	ctx := c.Request.Context()
	employeeID := c.Query("employee_id")
	date := c.Query("date")

	rows, err := h.store.Assignments(ctx)
	if err != nil {
		fail(c, err)
		return
	}
	if employeeID == "" && date == "" {
		c.JSON(http.StatusOK, gin.H{"hours": slot.Hours(), "assignments": rows})
		return
	}

	filtered := rows[:0:0]
	for _, a := range rows {
		if employeeID != "" && a.EmployeeID != employeeID {
			continue
		}
		if date != "" && a.Date != date {
			continue
		}
		filtered = append(filtered, a)
	}
	c.JSON(http.StatusOK, gin.H{"hours": slot.Hours(), "assignments": filtered})
}

// GetMonthGrid handles GET /api/calendar/month?year=&month=: the 6x7 date
// matrix the month view renders, Monday-anchored.
func (h *Handler) GetMonthGrid(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
		return
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month"})
		return
	}

	grid := slot.MonthGrid(year, time.Month(month))
	weeks := make([][]string, 0, len(grid))
	for _, row := range grid {
		week := make([]string, 0, len(row))
		for _, d := range row {
			week = append(week, d.Format("2006-01-02"))
		}
		weeks = append(weeks, week)
	}
	c.JSON(http.StatusOK, gin.H{"year": year, "month": month, "weeks": weeks})
}

type postAssignmentRequest struct {
	EmployeeID string  `json:"employeeId" binding:"required"`
	JobID      string  `json:"jobId" binding:"required"`
	Date       string  `json:"date" binding:"required"`
	StartHour  int     `json:"startHour" binding:"required"`
	Duration   float64 `json:"duration" binding:"required"`
}

// PostAssignment handles POST /api/assignments: books an employee onto a
// job across hourly slots.
func (h *Handler) PostAssignment(c *gin.Context) {
	var req postAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD."})
		return
	}

	ids, err := h.engine.Assign(c.Request.Context(), req.EmployeeID, req.JobID, date, req.StartHour, req.Duration)
	if err != nil {
		fail(c, err)
		return
	}

	state, err := h.workshopState(c)
	if err != nil {
		fail(c, err)
		return
	}
	state["created"] = ids
	c.JSON(http.StatusCreated, state)
}

type deleteAssignmentRequest struct {
	EmployeeID string `json:"employeeId" binding:"required"`
	JobID      string `json:"jobId" binding:"required"`
}

// DeleteAssignment handles DELETE /api/assignments: removes the employee
// from the job and drops their slot rows for it.
func (h *Handler) DeleteAssignment(c *gin.Context) {
	var req deleteAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.engine.Unassign(c.Request.Context(), req.EmployeeID, req.JobID); err != nil {
		fail(c, err)
		return
	}
	h.respondWithState(c, http.StatusOK)
}
