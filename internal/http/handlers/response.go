package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"daily-tasks/internal/repository"
	"daily-tasks/internal/service"
)

type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

func respond(c *gin.Context, status int, data interface{}) {
	c.JSON(status, envelope{Success: true, Data: data})
}

func fail(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, envelope{Success: false, Error: code, Message: message})
}

// failWith maps service and repository errors onto HTTP statuses.
func failWith(c *gin.Context, log *zap.Logger, op string, err error) {
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrInvalidAmount):
		fail(c, http.StatusBadRequest, "validation_error", clientMessage(err))
	case errors.Is(err, repository.ErrNotFound):
		fail(c, http.StatusNotFound, "not_found", "resource not found")
	case errors.Is(err, service.ErrNoCompletedTask):
		fail(c, http.StatusConflict, "no_completed_task", service.ErrNoCompletedTask.Error())
	case errors.Is(err, repository.ErrConstraintViolation):
		fail(c, http.StatusConflict, "conflict", "resource already exists")
	default:
		_ = c.Error(err)
		log.Error(op+" failed", zap.Error(err))
		fail(c, http.StatusInternalServerError, "internal_error", op+" failed")
	}
}

// clientMessage drops the sentinel prefix from validation errors.
func clientMessage(err error) string {
	msg := err.Error()
	prefix := service.ErrValidation.Error() + ": "
	if i := strings.Index(msg, prefix); i >= 0 {
		return msg[i+len(prefix):]
	}
	return msg
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		fail(c, http.StatusBadRequest, "validation_error", "a valid id is required")
		return 0, false
	}
	return uint(id), true
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		fail(c, http.StatusBadRequest, "validation_error", "invalid JSON payload")
		return false
	}
	return true
}

func queryLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil {
		return 0
	}
	return limit
}
