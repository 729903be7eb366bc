package booking

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jwalitptl/booking-api/internal/handler"
	"github.com/jwalitptl/booking-api/internal/model"
	"github.com/jwalitptl/booking-api/internal/service/booking"
)

type Handler struct {
	service *booking.Service
}

func NewHandler(service *booking.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req model.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.RespondBindError(c, err)
		return
	}

	result, err := h.service.CreateBooking(c.Request.Context(), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(result))
}

func (h *Handler) GetBooking(c *gin.Context) {
	id, ok := h.bookingID(c)
	if !ok {
		return
	}

	result, err := h.service.GetBooking(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(result))
}

func (h *Handler) ListBookings(c *gin.Context) {
	businessID, err := uuid.Parse(c.Query("business_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid business ID"))
		return
	}

	filters := &model.BookingFilters{}
	if status := c.Query("status"); status != "" {
		filters.Status = model.BookingStatus(status)
	}

	result, err := h.service.ListBookings(c.Request.Context(), businessID, filters)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(result))
}

func (h *Handler) ConfirmBooking(c *gin.Context) {
	id, ok := h.bookingID(c)
	if !ok {
		return
	}

	var req model.ConfirmBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.RespondBindError(c, err)
		return
	}

	result, err := h.service.ConfirmBooking(c.Request.Context(), id, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(result))
}

func (h *Handler) RescheduleBooking(c *gin.Context) {
	id, ok := h.bookingID(c)
	if !ok {
		return
	}

	var req model.RescheduleBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.RespondBindError(c, err)
		return
	}

	result, err := h.service.RescheduleBooking(c.Request.Context(), id, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(result))
}

func (h *Handler) CancelBooking(c *gin.Context) {
	id, ok := h.bookingID(c)
	if !ok {
		return
	}

	var req model.CancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.RespondBindError(c, err)
		return
	}

	result, err := h.service.CancelBooking(c.Request.Context(), id, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(result))
}

func (h *Handler) StartBooking(c *gin.Context) {
	id, ok := h.bookingID(c)
	if !ok {
		return
	}

	result, err := h.service.StartBooking(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(result))
}

func (h *Handler) CompleteBooking(c *gin.Context) {
	id, ok := h.bookingID(c)
	if !ok {
		return
	}

	result, err := h.service.CompleteBooking(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(result))
}

func (h *Handler) ListBookingEvents(c *gin.Context) {
	id, ok := h.bookingID(c)
	if !ok {
		return
	}

	result, err := h.service.ListBookingEvents(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(result))
}

func (h *Handler) bookingID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid booking ID"))
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	bookings := r.Group("/bookings")
	{
		bookings.POST("", h.CreateBooking)
		bookings.GET("", h.ListBookings)
		bookings.GET("/:id", h.GetBooking)
		bookings.GET("/:id/events", h.ListBookingEvents)
		bookings.POST("/:id/confirm", h.ConfirmBooking)
		bookings.POST("/:id/reschedule", h.RescheduleBooking)
		bookings.POST("/:id/cancel", h.CancelBooking)
		bookings.POST("/:id/start", h.StartBooking)
		bookings.POST("/:id/complete", h.CompleteBooking)
	}
}
