package reminder

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Madumtv/healthcentral-sub001/internal/handler"
	"github.com/Madumtv/healthcentral-sub001/internal/middleware"
	"github.com/Madumtv/healthcentral-sub001/internal/model"
	reminderService "github.com/Madumtv/healthcentral-sub001/internal/service/reminder"
	"github.com/Madumtv/healthcentral-sub001/pkg/errors"
)

type Handler struct {
	service reminderService.Service
}

func NewHandler(service reminderService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	reminders := r.Group("/reminders")
	{
		reminders.GET("/settings", h.GetSettings)
		reminders.PUT("/settings", h.UpdateSettings)
	}
}

func (h *Handler) GetSettings(c *gin.Context) {
	settings, err := h.service.GetSettings(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to load reminder settings"))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(settings))
}

type settingsRequest struct {
	Enabled      bool   `json:"enabled"`
	ReminderTime string `json:"reminder_time" binding:"required"`
	Channel      string `json:"channel" binding:"required"`
}

func (h *Handler) UpdateSettings(c *gin.Context) {
	var req settingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	settings := &model.ReminderSettings{
		UserID:       middleware.UserID(c),
		Enabled:      req.Enabled,
		ReminderTime: req.ReminderTime,
		Channel:      req.Channel,
	}
	if err := h.service.UpdateSettings(c.Request.Context(), settings); err != nil {
		if errors.Code(err) == errors.ErrBadRequest {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		} else {
			c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to save reminder settings"))
		}
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(settings))
}
