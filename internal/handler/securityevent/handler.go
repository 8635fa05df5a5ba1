package securityevent

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Madumtv/healthcentral-sub001/internal/handler"
	"github.com/Madumtv/healthcentral-sub001/internal/model"
	securityService "github.com/Madumtv/healthcentral-sub001/internal/service/security"
)

type Handler struct {
	service *securityService.Service
}

func NewHandler(service *securityService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/security-events", h.ListEvents)
}

func (h *Handler) ListEvents(c *gin.Context) {
	var p model.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}
	if p.PageSize <= 0 || p.PageSize > 100 {
		p.PageSize = 50
	}

	var userID *uuid.UUID
	if raw := c.Query("user_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid user_id"))
			return
		}
		userID = &id
	}

	events, err := h.service.ListEvents(c.Request.Context(), userID, p)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to list security events"))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(events))
}
