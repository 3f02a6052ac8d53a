package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/rongwang/nyayadrishti/internal/analytics"
	"github.com/rongwang/nyayadrishti/internal/export"
	"github.com/rongwang/nyayadrishti/internal/models"
	"github.com/rongwang/nyayadrishti/internal/notes"
	"github.com/rongwang/nyayadrishti/internal/service"
)

// CookieOptions control the session evidence cookie
type CookieOptions struct {
	Name   string
	Secure bool
	MaxAge time.Duration
}

// Handler handles HTTP requests
type Handler struct {
	service service.Service
	cookie  CookieOptions
	logger  *zap.Logger
}

// NewHandler creates a new Handler
func NewHandler(svc service.Service, cookie CookieOptions, logger *zap.Logger) *Handler {
	return &Handler{
		service: svc,
		cookie:  cookie,
		logger:  logger,
	}
}

// SetupRoutes sets up the API routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(RequestMetrics(h.logger))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")

	// Public routes
	api.POST("/auth/login", h.Login)
	api.GET("/auth/session", h.Session)
	api.GET("/stats", h.Stats)
	api.GET("/stats/inputs", h.Inputs)

	// Protected routes
	protected := api.Group("")
	protected.Use(AuthMiddleware(h.service, h.cookie.Name))
	{
		protected.POST("/auth/password", h.SetPassword)
		protected.POST("/auth/logout", h.Logout)

		// Everything else waits for a real password
		ready := protected.Group("")
		ready.Use(RequirePasswordSet())

		ready.POST("/admin/reload", h.Reload)
		ready.GET("/cases", h.Cases)
		ready.GET("/cases/alerts", h.Alerts)
		ready.GET("/cases/hearings", h.Hearings)
		ready.GET("/cases/export.xlsx", h.Export)

		advocate := ready.Group("")
		advocate.Use(RequireRole(models.RoleAdvocate))

		advocate.GET("/notes/:cnr", h.Note)
		advocate.PUT("/notes/:cnr", h.SetNote)
		advocate.GET("/reminders", h.Reminders)
		advocate.PUT("/reminders/:cnr", h.SetReminder)
	}
}

func (h *Handler) setEvidence(c *gin.Context, signed string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, signed, int(h.cookie.MaxAge.Seconds()), "/", "", h.cookie.Secure, true)
}

// Auth handlers
func (h *Handler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.setEvidence(c, resp.Token)
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) Session(c *gin.Context) {
	resp, err := h.service.Session(c.Request.Context(), evidence(c, h.cookie.Name))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) SetPassword(c *gin.Context) {
	var req models.SetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	resp, err := h.service.SetPassword(c.Request.Context(), principal(c), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Logout replaces the session cookie with logout evidence so the browser
// does not sign straight back in
func (h *Handler) Logout(c *gin.Context) {
	resp, err := h.service.Logout(c.Request.Context(), principal(c))
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.setEvidence(c, resp.Token)
	resp.Token = ""
	c.JSON(http.StatusOK, resp)
}

// Case handlers
func (h *Handler) Cases(c *gin.Context) {
	resp, err := h.service.Cases(c.Request.Context(), principal(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) Alerts(c *gin.Context) {
	resp, err := h.service.Alerts(c.Request.Context(), principal(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) Hearings(c *gin.Context) {
	resp, err := h.service.Hearings(c.Request.Context(), principal(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) Export(c *gin.Context) {
	data, err := h.service.ExportCases(c.Request.Context(), principal(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="cases.xlsx"`)
	c.Data(http.StatusOK, export.ContentType, data)
}

// Note handlers
func (h *Handler) Note(c *gin.Context) {
	resp, err := h.service.Note(c.Request.Context(), principal(c), c.Param("cnr"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) SetNote(c *gin.Context) {
	var req models.NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	resp, err := h.service.SetNote(c.Request.Context(), principal(c), c.Param("cnr"), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) SetReminder(c *gin.Context) {
	var req models.ReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	resp, err := h.service.SetReminder(c.Request.Context(), principal(c), c.Param("cnr"), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) Reminders(c *gin.Context) {
	resp, err := h.service.Reminders(c.Request.Context(), principal(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Stats accepts filing years as ?year=2021&year=2022 or ?year=2021,2022
func (h *Handler) Stats(c *gin.Context) {
	var filter analytics.Filter
	for _, raw := range c.QueryArray("year") {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			year, err := strconv.Atoi(part)
			if err != nil {
				c.JSON(http.StatusBadRequest, models.ErrorResponse{
					Status:  "error",
					Code:    "INVALID_REQUEST",
					Message: "Invalid year: " + part,
				})
				return
			}
			filter.Years = append(filter.Years, year)
		}
	}

	resp, err := h.service.Stats(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Inputs takes an optional ?limit= on the prediction rows, 100 by default
func (h *Handler) Inputs(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil {
		badRequest(c, err)
		return
	}

	resp, err := h.service.Inputs(c.Request.Context(), limit)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) Reload(c *gin.Context) {
	resp, err := h.service.Reload(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Status:  "error",
		Code:    "INVALID_REQUEST",
		Message: err.Error(),
	})
}

// handleError maps service errors to status codes
func (h *Handler) handleError(c *gin.Context, err error) {
	status, code := http.StatusInternalServerError, "INTERNAL_ERROR"
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		status, code = http.StatusUnauthorized, "INVALID_CREDENTIALS"
	case errors.Is(err, service.ErrUnauthorized):
		status, code = http.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrPasswordMismatch),
		errors.Is(err, notes.ErrInvalidDate):
		status, code = http.StatusBadRequest, "INVALID_REQUEST"
	case errors.Is(err, service.ErrNoCases):
		status, code = http.StatusForbidden, "NO_CASES"
	case errors.Is(err, service.ErrForbidden):
		status, code = http.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, service.ErrCaseNotFound):
		status, code = http.StatusNotFound, "CASE_NOT_FOUND"
	case errors.Is(err, service.ErrDatasetsUnavailable):
		status, code = http.StatusServiceUnavailable, "DATASETS_UNAVAILABLE"
	}

	message := err.Error()
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		message = "Internal server error"
	}
	c.JSON(status, models.ErrorResponse{
		Status:  "error",
		Code:    code,
		Message: message,
	})
}
