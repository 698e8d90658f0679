package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"daily-tasks/internal/service"
)

type SchedulerHandler struct {
	scheduler *service.DailyScheduler
	log       *zap.Logger
}

func NewSchedulerHandler(scheduler *service.DailyScheduler, log *zap.Logger) *SchedulerHandler {
	return &SchedulerHandler{scheduler: scheduler, log: log}
}

func (h *SchedulerHandler) Status(c *gin.Context) {
	respond(c, http.StatusOK, h.scheduler.Status())
}

func (h *SchedulerHandler) Execute(c *gin.Context) {
	run, err := h.scheduler.ExecuteManually(c.Request.Context())
	if err != nil {
		// The run record already carries the failure.
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, envelope{
			Success: false,
			Error:   "generation_failed",
			Message: run.Error,
			Data:    run,
		})
		return
	}
	respond(c, http.StatusOK, run)
}

func (h *SchedulerHandler) Start(c *gin.Context) {
	h.scheduler.Start()
	respond(c, http.StatusOK, h.scheduler.Status())
}

func (h *SchedulerHandler) Stop(c *gin.Context) {
	h.scheduler.Stop()
	respond(c, http.StatusOK, h.scheduler.Status())
}

func (h *SchedulerHandler) Runs(c *gin.Context) {
	runs, err := h.scheduler.RecentRuns(c.Request.Context(), queryLimit(c))
	if err != nil {
		failWith(c, h.log, "list scheduler runs", err)
		return
	}
	respond(c, http.StatusOK, runs)
}
