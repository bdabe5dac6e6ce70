package api

import (
	"errors"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"

	"workshop-scheduler-backend/internal/engine"
	"workshop-scheduler-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store   store.Store
	engine  *engine.Engine
	webpush *webpush.Options
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, eng *engine.Engine, webpushOptions *webpush.Options) *Handler {
	return &Handler{
		store:   s,
		engine:  eng,
		webpush: webpushOptions,
	}
}

// fail maps an engine/store error onto an HTTP status and aborts.
func fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, engine.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, engine.ErrEmployeeUnavailable),
		errors.Is(err, engine.ErrBayUnavailable),
		errors.Is(err, engine.ErrSlotConflict),
		errors.Is(err, engine.ErrStaleEmployeeState):
		status = http.StatusConflict
	case errors.Is(err, store.ErrStore):
		status = http.StatusServiceUnavailable
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

// workshopState is the payload the presentation layer re-renders from
// after every mutating call.
func (h *Handler) workshopState(c *gin.Context) (gin.H, error) {
	ctx := c.Request.Context()
	employees, err := h.store.Employees(ctx)
	if err != nil {
		return nil, err
	}
	jobs, err := h.store.Jobs(ctx)
	if err != nil {
		return nil, err
	}
	bays, err := h.store.Bays(ctx)
	if err != nil {
		return nil, err
	}
	assignments, err := h.store.Assignments(ctx)
	if err != nil {
		return nil, err
	}
	return gin.H{
		"employees":   employees,
		"jobs":        jobs,
		"bays":        bays,
		"assignments": assignments,
	}, nil
}

// respondWithState replies with the refreshed collections, or the load
// error if the re-read failed after a successful mutation.
func (h *Handler) respondWithState(c *gin.Context, status int) {
	state, err := h.workshopState(c)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(status, state)
}
