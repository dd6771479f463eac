package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/catalogdb/internal/database/loadruns"
	"github.com/mrlokans/catalogdb/internal/entities"
)

const (
	defaultLoadRunsLimit = 20
	maxLoadRunsLimit     = 200
)

// LoadsController handles background catalog load endpoints.
type LoadsController struct {
	queue LoadQueue
	runs  LoadRunStore
}

// NewLoadsController creates a new LoadsController.
func NewLoadsController(queue LoadQueue, runs LoadRunStore) *LoadsController {
	return &LoadsController{queue: queue, runs: runs}
}

// Trigger handles POST /api/loads
// Queues a reload of the configured input files.
func (lc *LoadsController) Trigger(c *gin.Context) {
	taskID, err := lc.queue.Enqueue(entities.LoadTriggerAPI)
	if err != nil {
		respondInternalError(c, err, "enqueue load")
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"task_id": taskID,
		"message": "load enqueued",
	})
}

// Status handles GET /api/loads/:id
// Returns the queue status of a load task.
func (lc *LoadsController) Status(c *gin.Context) {
	taskID := c.Param("id")
	if taskID == "" {
		respondBadRequest(c, "task ID is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status, err := lc.queue.Status(ctx, taskID)
	if err != nil {
		respondInternalError(c, err, "load status")
		return
	}
	if status == "not_found" {
		respondNotFound(c, "load task not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     taskID,
		"status": status,
	})
}

// Run handles GET /api/runs/:id
// Returns one load run, including its error when it failed.
func (lc *LoadsController) Run(c *gin.Context) {
	run, err := lc.runs.Get(c.Param("id"))
	if errors.Is(err, loadruns.ErrNotFound) {
		respondNotFound(c, "load run not found")
		return
	}
	if err != nil {
		respondInternalError(c, err, "get load run")
		return
	}

	c.IndentedJSON(http.StatusOK, run)
}

// List handles GET /api/loads
// Returns the most recent load runs, newest first.
func (lc *LoadsController) List(c *gin.Context) {
	limit, ok := parseLimitQuery(c, defaultLoadRunsLimit, maxLoadRunsLimit)
	if !ok {
		return
	}

	runs, err := lc.runs.Recent(limit)
	if err != nil {
		respondInternalError(c, err, "list load runs")
		return
	}
	if runs == nil {
		runs = []entities.LoadRun{}
	}

	c.IndentedJSON(http.StatusOK, gin.H{"runs": runs})
}
