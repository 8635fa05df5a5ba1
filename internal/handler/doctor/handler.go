package doctor

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Madumtv/healthcentral-sub001/internal/handler"
	"github.com/Madumtv/healthcentral-sub001/internal/model"
	doctorService "github.com/Madumtv/healthcentral-sub001/internal/service/doctor"
	"github.com/Madumtv/healthcentral-sub001/internal/service/doctorsearch"
	"github.com/Madumtv/healthcentral-sub001/pkg/metrics"
)

type Handler struct {
	service  doctorService.Service
	official doctorsearch.OfficialDirectory
	events   doctorsearch.EventLogger
	logger   *zerolog.Logger
	metrics  *metrics.Metrics
}

func NewHandler(service doctorService.Service, official doctorsearch.OfficialDirectory,
	events doctorsearch.EventLogger, logger *zerolog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{
		service:  service,
		official: official,
		events:   events,
		logger:   logger,
		metrics:  m,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	doctors := r.Group("/doctors")
	{
		doctors.POST("", h.CreateDoctor)
		doctors.GET("", h.ListDoctors)
		doctors.GET("/search", h.SearchDoctors)
		doctors.POST("/promote", h.PromoteDoctor)
		doctors.GET("/:id", h.GetDoctor)
		doctors.PUT("/:id", h.UpdateDoctor)
		doctors.DELETE("/:id", h.DeleteDoctor)
	}
}

type doctorRequest struct {
	RPPSNumber string `json:"rpps_number" binding:"omitempty,rpps"`
	FirstName  string `json:"first_name" binding:"required"`
	LastName   string `json:"last_name" binding:"required"`
	Specialty  string `json:"specialty"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Phone      string `json:"phone"`
	Email      string `json:"email" binding:"omitempty,email"`
}

func (r *doctorRequest) toModel() *model.Doctor {
	return &model.Doctor{
		RPPSNumber: r.RPPSNumber,
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		Specialty:  r.Specialty,
		Address:    r.Address,
		City:       r.City,
		PostalCode: r.PostalCode,
		Phone:      r.Phone,
		Email:      r.Email,
		IsActive:   true,
	}
}

func (h *Handler) CreateDoctor(c *gin.Context) {
	var req doctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	doctor := req.toModel()
	if err := h.service.CreateDoctor(c.Request.Context(), doctor); err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to create doctor"))
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(doctor))
}

// SearchDoctors runs one search session: local store always, the official
// directory when official=true. Returns the merged, deduplicated list along
// with both raw result sets.
func (h *Handler) SearchDoctors(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("query parameter q is required"))
		return
	}

	source := "local"
	if c.Query("official") == "true" {
		source = "local+official"
	}
	start := time.Now()

	session := doctorsearch.NewSession(h.service, h.official, h.events, h.logger, h.metrics)
	session.SetQuery(query)
	session.Search(c.Request.Context())
	if source != "local" {
		session.SearchOfficial(c.Request.Context())
	}

	state := session.State()
	if h.metrics != nil {
		outcome := "hit"
		if len(state.Results) == 0 && len(state.OfficialResults) == 0 {
			outcome = "miss"
		}
		h.metrics.SearchesTotal.WithLabelValues(source, outcome).Inc()
		h.metrics.SearchLatency.WithLabelValues(source).Observe(time.Since(start).Seconds())
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"results":          state.Results,
		"official_results": state.OfficialResults,
		"merged":           session.Merged(),
	}))
}

// PromoteDoctor persists an official-registry candidate. Posting an already
// persisted record (non-empty id) is a no-op that echoes it back.
func (h *Handler) PromoteDoctor(c *gin.Context) {
	var candidate model.Doctor
	if err := c.ShouldBindJSON(&candidate); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	session := doctorsearch.NewSession(h.service, h.official, h.events, h.logger, h.metrics)
	promoted, err := session.AddSuggestedDoctor(c.Request.Context(), &candidate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to add doctor"))
		return
	}
	if promoted == nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("no candidate provided"))
		return
	}

	status := http.StatusOK
	if promoted != &candidate {
		status = http.StatusCreated
	}
	c.JSON(status, handler.NewSuccessResponse(promoted))
}

func (h *Handler) GetDoctor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid doctor ID"))
		return
	}

	doctor, err := h.service.GetDoctor(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, handler.NewErrorResponse("doctor not found"))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(doctor))
}

func (h *Handler) UpdateDoctor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid doctor ID"))
		return
	}

	var req doctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	doctor := req.toModel()
	doctor.ID = id
	if err := h.service.UpdateDoctor(c.Request.Context(), doctor); err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to update doctor"))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(doctor))
}

func (h *Handler) DeleteDoctor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid doctor ID"))
		return
	}

	if err := h.service.DeleteDoctor(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to delete doctor"))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) ListDoctors(c *gin.Context) {
	doctors, err := h.service.ListDoctors(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to list doctors"))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(doctors))
}
