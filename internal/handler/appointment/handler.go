package appointment

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mediagenda/booking-api/internal/model"
	"github.com/mediagenda/booking-api/internal/service/booking"
	apperrors "github.com/mediagenda/booking-api/pkg/errors"
	"github.com/mediagenda/booking-api/pkg/validator"
)

const notFoundMessage = "Appointment not found"

type Handler struct {
	service *booking.Service
}

func NewHandler(service *booking.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.GET("/availability", h.GetDayAvailability)
		appointments.GET("", h.ListAppointments)
		appointments.GET("/:id", h.GetAppointment)
		appointments.POST("", h.CreateAppointment)
		appointments.DELETE("/:id", h.CancelAppointment)
	}
}

// ListAppointments returns every record, cancelled included, as a bare JSON
// array ordered by date then time.
func (h *Handler) ListAppointments(c *gin.Context) {
	appointments, err := h.service.ListAppointments(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to fetch appointments")
		return
	}
	c.JSON(http.StatusOK, appointments)
}

func (h *Handler) GetAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		// An unparseable id cannot name any record.
		c.JSON(http.StatusNotFound, gin.H{"message": notFoundMessage})
		return
	}

	apt, err := h.service.GetAppointment(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to fetch appointment")
		return
	}
	c.JSON(http.StatusOK, apt)
}

func (h *Handler) CreateAppointment(c *gin.Context) {
	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": validator.MessageFor(err)})
		return
	}

	apt, err := h.service.CreateAppointment(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to create appointment")
		return
	}
	c.JSON(http.StatusCreated, apt)
}

func (h *Handler) CancelAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": notFoundMessage})
		return
	}

	apt, err := h.service.CancelAppointment(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to cancel appointment")
		return
	}
	c.JSON(http.StatusOK, apt)
}

// GetDayAvailability returns booked and free slots for a date; it powers the
// public calendar's slot indicators.
func (h *Handler) GetDayAvailability(c *gin.Context) {
	date := c.Query("date")
	if _, err := time.Parse(model.DateFormat, date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Selecione uma data"})
		return
	}

	day, err := h.service.GetDayAvailability(c.Request.Context(), date)
	if err != nil {
		respondError(c, err, "Failed to fetch availability")
		return
	}
	c.JSON(http.StatusOK, day)
}

// respondError maps service errors to the wire contract: known AppErrors keep
// their status and message, anything else becomes an opaque 500.
func respondError(c *gin.Context, err error, fallback string) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.StatusCode(), gin.H{"message": appErr.Message})
		return
	}
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"message": fallback})
}
