package availability

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jwalitptl/booking-api/internal/handler"
	"github.com/jwalitptl/booking-api/internal/model"
	"github.com/jwalitptl/booking-api/internal/service/availability"
)

type Handler struct {
	service *availability.Service
}

func NewHandler(service *availability.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetAvailability(c *gin.Context) {
	businessID, err := uuid.Parse(c.Query("business_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid business ID"))
		return
	}
	serviceID, err := uuid.Parse(c.Query("service_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid service ID"))
		return
	}

	startDate, err := time.Parse("2006-01-02", c.Query("start_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid start date format"))
		return
	}

	req := &model.AvailabilityRequest{
		BusinessID:      businessID,
		ServiceID:       serviceID,
		StartDate:       startDate,
		CustomerAddress: c.Query("customer_address"),
	}

	if raw := c.Query("end_date"); raw != "" {
		endDate, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid end date format"))
			return
		}
		req.EndDate = &endDate
	}

	if raw := c.Query("preferred_technician_id"); raw != "" {
		preferred, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid preferred technician ID"))
			return
		}
		req.PreferredTechnicianID = &preferred
	}

	if raw := c.Query("exclude_technician_ids"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := uuid.Parse(strings.TrimSpace(part))
			if err != nil {
				c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid excluded technician ID"))
				return
			}
			req.ExcludeTechnicianIDs = append(req.ExcludeTechnicianIDs, id)
		}
	}

	result, err := h.service.GetAvailability(c.Request.Context(), req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(result))
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/availability", h.GetAvailability)
}
