package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	customErrors "github.com/mlukyanov/task-api/internal/auth/errors"
	"github.com/mlukyanov/task-api/internal/task"
	"github.com/mlukyanov/task-api/internal/transport/http/middleware"
)

type TaskHandler struct {
	svc task.Service
}

func NewTaskHandler(svc task.Service) *TaskHandler {
	return &TaskHandler{svc: svc}
}

func (h *TaskHandler) List(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		_ = c.Error(customErrors.ErrNotAuthenticated)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	filter := task.ListFilter{
		Status: task.Status(c.Query("status")),
		Limit:  limit,
		Offset: offset,
	}

	page, err := h.svc.List(c.Request.Context(), principal.UserID, filter)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *TaskHandler) Get(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		_ = c.Error(customErrors.ErrNotAuthenticated)
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		_ = c.Error(customErrors.NewInvalidArgument("invalid task id"))
		return
	}

	t, err := h.svc.Get(c.Request.Context(), principal.UserID, id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *TaskHandler) Create(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		_ = c.Error(customErrors.ErrNotAuthenticated)
		return
	}
	var body task.CreateDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		_ = c.Error(customErrors.NewInvalidArgument(err.Error()))
		return
	}

	t, err := h.svc.Create(c.Request.Context(), principal.UserID, body)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (h *TaskHandler) Update(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		_ = c.Error(customErrors.ErrNotAuthenticated)
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		_ = c.Error(customErrors.NewInvalidArgument("invalid task id"))
		return
	}
	var body task.UpdateDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		_ = c.Error(customErrors.NewInvalidArgument(err.Error()))
		return
	}

	t, err := h.svc.Update(c.Request.Context(), principal.UserID, id, body)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *TaskHandler) Delete(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		_ = c.Error(customErrors.ErrNotAuthenticated)
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		_ = c.Error(customErrors.NewInvalidArgument("invalid task id"))
		return
	}

	if err := h.svc.Delete(c.Request.Context(), principal.UserID, id); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
