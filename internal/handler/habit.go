package handler

import (
	"errors"
	"net/http"

	"habitboard/internal/logger"
	"habitboard/internal/metrics"
	"habitboard/internal/middleware"
	"habitboard/internal/model"
	"habitboard/internal/service"

	"github.com/gin-gonic/gin"
)

type HabitHandler struct {
	svc *service.HabitService
}

func NewHabitHandler(svc *service.HabitService) *HabitHandler {
	return &HabitHandler{svc: svc}
}

// GET /api/dashboard
func (h *HabitHandler) Dashboard(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		return
	}
	data, err := h.svc.Dashboard(c.Request.Context(), userID)
	if err != nil {
		logger.Error("dashboard.failed", "user", userID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to load dashboard data"})
		return
	}
	c.JSON(http.StatusOK, data)
}

// POST /api/habits  body: {"name":"...","description":...,"color":...,"icon":...,"targetCount":...}
func (h *HabitHandler) Create(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		return
	}
	var req model.CreateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	data, err := h.svc.CreateHabit(c.Request.Context(), userID, req)
	if err != nil {
		h.fail(c, userID, "create", err, "unable to create habit")
		return
	}
	metrics.HabitMutations.WithLabelValues("create").Inc()
	c.JSON(http.StatusCreated, data)
}

// POST /api/habits/:habitId/entries  body: {"date":"YYYY-MM-DD"} (optional)
func (h *HabitHandler) ToggleEntry(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		return
	}
	var req model.ToggleEntryRequest
	// an empty body means "toggle today"
	if err := c.ShouldBindJSON(&req); err != nil {
		req = model.ToggleEntryRequest{}
	}
	data, err := h.svc.ToggleEntry(c.Request.Context(), userID, c.Param("habitId"), req.Date)
	if err != nil {
		h.fail(c, userID, "toggle", err, "unable to update habit")
		return
	}
	metrics.HabitMutations.WithLabelValues("toggle").Inc()
	c.JSON(http.StatusOK, data)
}

// POST /api/habits/:habitId/archive  body: {"archived":true|false}
func (h *HabitHandler) Archive(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		return
	}
	var req model.ArchiveHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req = model.ArchiveHabitRequest{Archived: true}
	}
	data, err := h.svc.ArchiveHabit(c.Request.Context(), userID, c.Param("habitId"), req.Archived)
	if err != nil {
		h.fail(c, userID, "archive", err, "unable to archive habit")
		return
	}
	metrics.HabitMutations.WithLabelValues("archive").Inc()
	c.JSON(http.StatusOK, data)
}

// fail maps service errors to status codes: validation 400, missing habit
// 404, everything else a generic 500 with detail kept server-side.
func (h *HabitHandler) fail(c *gin.Context, userID, op string, err error, generic string) {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Msg})
	case errors.Is(err, service.ErrHabitNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})
	default:
		logger.Error("habit."+op+".failed", "user", userID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": generic})
	}
}
