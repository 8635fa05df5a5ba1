package medication

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Madumtv/healthcentral-sub001/internal/handler"
	"github.com/Madumtv/healthcentral-sub001/internal/middleware"
	"github.com/Madumtv/healthcentral-sub001/internal/model"
	medicationService "github.com/Madumtv/healthcentral-sub001/internal/service/medication"
	reminderService "github.com/Madumtv/healthcentral-sub001/internal/service/reminder"
	"github.com/Madumtv/healthcentral-sub001/pkg/errors"
)

type Handler struct {
	service   medicationService.Service
	scheduler *reminderService.Scheduler
}

func NewHandler(service medicationService.Service, scheduler *reminderService.Scheduler) *Handler {
	return &Handler{service: service, scheduler: scheduler}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	meds := r.Group("/medications")
	{
		meds.POST("", h.CreateMedication)
		meds.GET("", h.ListMedications)
		meds.GET("/:id", h.GetMedication)
		meds.PUT("/:id", h.UpdateMedication)
		meds.DELETE("/:id", h.DeleteMedication)
		meds.POST("/:id/remind", h.ScheduleReminder)
	}
}

type medicationRequest struct {
	DoctorID   *uuid.UUID `json:"doctor_id"`
	Name       string     `json:"name" binding:"required"`
	Dosage     string     `json:"dosage" binding:"required"`
	Frequency  string     `json:"frequency" binding:"required"`
	TimesOfDay []string   `json:"times_of_day"`
	StartDate  time.Time  `json:"start_date" binding:"required"`
	EndDate    *time.Time `json:"end_date"`
	Notes      string     `json:"notes"`
}

func (h *Handler) CreateMedication(c *gin.Context) {
	var req medicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	med := &model.Medication{
		UserID:     middleware.UserID(c),
		DoctorID:   req.DoctorID,
		Name:       req.Name,
		Dosage:     req.Dosage,
		Frequency:  req.Frequency,
		TimesOfDay: req.TimesOfDay,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Notes:      req.Notes,
		IsActive:   true,
	}
	if err := h.service.CreateMedication(c.Request.Context(), med); err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to create medication"))
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(med))
}

func (h *Handler) GetMedication(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid medication ID"))
		return
	}

	med, err := h.service.GetMedication(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		c.JSON(statusFor(err), handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(med))
}

func (h *Handler) UpdateMedication(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid medication ID"))
		return
	}

	var req medicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	med := &model.Medication{
		Base:       model.Base{ID: id},
		UserID:     middleware.UserID(c),
		DoctorID:   req.DoctorID,
		Name:       req.Name,
		Dosage:     req.Dosage,
		Frequency:  req.Frequency,
		TimesOfDay: req.TimesOfDay,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Notes:      req.Notes,
		IsActive:   true,
	}
	if err := h.service.UpdateMedication(c.Request.Context(), med); err != nil {
		c.JSON(statusFor(err), handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(med))
}

func (h *Handler) DeleteMedication(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid medication ID"))
		return
	}

	if err := h.service.DeleteMedication(c.Request.Context(), middleware.UserID(c), id); err != nil {
		c.JSON(statusFor(err), handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) ListMedications(c *gin.Context) {
	meds, err := h.service.ListMedications(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to list medications"))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(meds))
}

type remindRequest struct {
	DelaySeconds int `json:"delay_seconds" binding:"required,min=1"`
}

// ScheduleReminder arms a one-shot reminder for the medication. Whether it
// actually dispatches is decided at fire time from the user's settings.
func (h *Handler) ScheduleReminder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid medication ID"))
		return
	}

	var req remindRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	userID := middleware.UserID(c)
	med, err := h.service.GetMedication(c.Request.Context(), userID, id)
	if err != nil {
		c.JSON(statusFor(err), handler.NewErrorResponse(err.Error()))
		return
	}

	h.scheduler.Schedule(userID, med.Name, time.Duration(req.DelaySeconds)*time.Second)
	c.JSON(http.StatusAccepted, handler.NewSuccessResponse(gin.H{"scheduled": med.Name}))
}

func statusFor(err error) int {
	switch errors.Code(err) {
	case errors.ErrNotFound:
		return http.StatusNotFound
	case errors.ErrBadRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
