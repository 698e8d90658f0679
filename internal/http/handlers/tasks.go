package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"daily-tasks/internal/clock"
	"daily-tasks/internal/service"
)

type TaskHandler struct {
	tasks     *service.TaskService
	generator *service.DailyGenerator
	clock     *clock.JST
	log       *zap.Logger
}

func NewTaskHandler(tasks *service.TaskService, generator *service.DailyGenerator, clk *clock.JST, log *zap.Logger) *TaskHandler {
	return &TaskHandler{tasks: tasks, generator: generator, clock: clk, log: log}
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, err := h.tasks.List(c.Request.Context())
	if err != nil {
		failWith(c, h.log, "list tasks", err)
		return
	}
	respond(c, http.StatusOK, tasks)
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	task, err := h.tasks.Get(c.Request.Context(), id)
	if err != nil {
		failWith(c, h.log, "get task", err)
		return
	}
	respond(c, http.StatusOK, task)
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req service.TaskInput
	if !bindJSON(c, &req) {
		return
	}
	task, err := h.tasks.Create(c.Request.Context(), req)
	if err != nil {
		failWith(c, h.log, "create task", err)
		return
	}
	respond(c, http.StatusCreated, task)
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req service.TaskInput
	if !bindJSON(c, &req) {
		return
	}
	update, err := h.tasks.Update(c.Request.Context(), id, req)
	if err != nil {
		failWith(c, h.log, "update task", err)
		return
	}
	respond(c, http.StatusOK, update)
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	task, err := h.tasks.Delete(c.Request.Context(), id)
	if err != nil {
		failWith(c, h.log, "delete task", err)
		return
	}
	respond(c, http.StatusOK, task)
}

func (h *TaskHandler) ListDaily(c *gin.Context) {
	date, tasks, err := h.tasks.Daily(c.Request.Context(), c.Query("date"))
	if err != nil {
		failWith(c, h.log, "list daily tasks", err)
		return
	}
	respond(c, http.StatusOK, gin.H{"date": date, "tasks": tasks})
}

// GenerateToday is called on page load so today's instances exist before the nightly run.
func (h *TaskHandler) GenerateToday(c *gin.Context) {
	result, err := h.generator.GenerateForDate(c.Request.Context(), h.clock.Today())
	if err != nil {
		failWith(c, h.log, "generate daily tasks", err)
		return
	}
	respond(c, http.StatusOK, result)
}
