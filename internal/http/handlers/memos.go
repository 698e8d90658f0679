package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"daily-tasks/internal/service"
)

type MemoHandler struct {
	memos *service.MemoService
	log   *zap.Logger
}

func NewMemoHandler(memos *service.MemoService, log *zap.Logger) *MemoHandler {
	return &MemoHandler{memos: memos, log: log}
}

func (h *MemoHandler) List(c *gin.Context) {
	memos, err := h.memos.List(c.Request.Context(), c.Query("q"), c.Query("tag"))
	if err != nil {
		failWith(c, h.log, "list memos", err)
		return
	}
	respond(c, http.StatusOK, memos)
}

func (h *MemoHandler) Tags(c *gin.Context) {
	tags, err := h.memos.Tags(c.Request.Context())
	if err != nil {
		failWith(c, h.log, "list memo tags", err)
		return
	}
	respond(c, http.StatusOK, tags)
}

func (h *MemoHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	memo, err := h.memos.Get(c.Request.Context(), id)
	if err != nil {
		failWith(c, h.log, "get memo", err)
		return
	}
	respond(c, http.StatusOK, memo)
}

func (h *MemoHandler) Create(c *gin.Context) {
	var req service.MemoInput
	if !bindJSON(c, &req) {
		return
	}
	memo, err := h.memos.Create(c.Request.Context(), req)
	if err != nil {
		failWith(c, h.log, "create memo", err)
		return
	}
	respond(c, http.StatusCreated, memo)
}

func (h *MemoHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req service.MemoInput
	if !bindJSON(c, &req) {
		return
	}
	memo, err := h.memos.Update(c.Request.Context(), id, req)
	if err != nil {
		failWith(c, h.log, "update memo", err)
		return
	}
	respond(c, http.StatusOK, memo)
}

func (h *MemoHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.memos.Delete(c.Request.Context(), id); err != nil {
		failWith(c, h.log, "delete memo", err)
		return
	}
	respond(c, http.StatusOK, gin.H{"id": id})
}
