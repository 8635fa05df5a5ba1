package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Madumtv/healthcentral-sub001/internal/handler"
	"github.com/Madumtv/healthcentral-sub001/internal/model"
	authService "github.com/Madumtv/healthcentral-sub001/internal/service/auth"
)

type Handler struct {
	service *authService.Service
}

func NewHandler(service *authService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/refresh", h.Refresh)
	}
}

func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	user, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to create account"))
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(user))
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	tokens, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrTooManyAttempts):
			c.JSON(http.StatusTooManyRequests, handler.NewErrorResponse(err.Error()))
		case errors.Is(err, model.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse(err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("login failed"))
		}
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(tokens))
}

func (h *Handler) Refresh(c *gin.Context) {
	var req model.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	tokens, err := h.service.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid refresh token"))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(tokens))
}
