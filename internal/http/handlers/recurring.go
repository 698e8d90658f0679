package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"daily-tasks/internal/service"
)

type RecurringHandler struct {
	recurring *service.RecurringService
	log       *zap.Logger
}

func NewRecurringHandler(recurring *service.RecurringService, log *zap.Logger) *RecurringHandler {
	return &RecurringHandler{recurring: recurring, log: log}
}

func (h *RecurringHandler) List(c *gin.Context) {
	masters, err := h.recurring.List(c.Request.Context())
	if err != nil {
		failWith(c, h.log, "list recurring tasks", err)
		return
	}
	respond(c, http.StatusOK, masters)
}

func (h *RecurringHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	master, err := h.recurring.Get(c.Request.Context(), id)
	if err != nil {
		failWith(c, h.log, "get recurring task", err)
		return
	}
	respond(c, http.StatusOK, master)
}

func (h *RecurringHandler) Create(c *gin.Context) {
	var req service.RecurringInput
	if !bindJSON(c, &req) {
		return
	}
	master, err := h.recurring.Create(c.Request.Context(), req)
	if err != nil {
		failWith(c, h.log, "create recurring task", err)
		return
	}
	respond(c, http.StatusCreated, master)
}

func (h *RecurringHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req service.RecurringInput
	if !bindJSON(c, &req) {
		return
	}
	master, err := h.recurring.Update(c.Request.Context(), id, req)
	if err != nil {
		failWith(c, h.log, "update recurring task", err)
		return
	}
	respond(c, http.StatusOK, master)
}

// Delete deactivates the master; ?cascade=true also drops its pending instances.
func (h *RecurringHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	cascade, _ := strconv.ParseBool(c.DefaultQuery("cascade", "false"))
	result, err := h.recurring.Deactivate(c.Request.Context(), id, cascade)
	if err != nil {
		failWith(c, h.log, "deactivate recurring task", err)
		return
	}
	respond(c, http.StatusOK, result)
}
