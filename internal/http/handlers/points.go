package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"daily-tasks/internal/service"
)

type PointsHandler struct {
	ledger *service.PointsLedger
	userID string
	log    *zap.Logger
}

func NewPointsHandler(ledger *service.PointsLedger, userID string, log *zap.Logger) *PointsHandler {
	return &PointsHandler{ledger: ledger, userID: userID, log: log}
}

type creditRequest struct {
	Points int `json:"points"`
}

func (h *PointsHandler) GetPoints(c *gin.Context) {
	account, err := h.ledger.GetAccount(c.Request.Context(), h.userID)
	if err != nil {
		failWith(c, h.log, "get points", err)
		return
	}
	respond(c, http.StatusOK, account)
}

// AddPoints is a manual adjustment and writes no history entry.
func (h *PointsHandler) AddPoints(c *gin.Context) {
	var req creditRequest
	if !bindJSON(c, &req) {
		return
	}
	account, err := h.ledger.Credit(c.Request.Context(), req.Points, h.userID)
	if err != nil {
		failWith(c, h.log, "add points", err)
		return
	}
	respond(c, http.StatusOK, account)
}

func (h *PointsHandler) History(c *gin.Context) {
	entries, err := h.ledger.History(c.Request.Context(), h.userID, queryLimit(c))
	if err != nil {
		failWith(c, h.log, "list point history", err)
		return
	}
	respond(c, http.StatusOK, entries)
}
