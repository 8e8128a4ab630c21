package booking

import (
	"net/http"

	"carrental/internal/middleware"
	"carrental/internal/modules/reservation"
	"carrental/internal/pkg/daterange"
	"carrental/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes expects rg to be authenticated. Extra handlers (rate
// limiting) run before CreateBooking.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, guards ...gin.HandlerFunc) {
	rg.POST("/reservations", append(guards, h.CreateBooking)...)
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	rng, err := daterange.ParseRange(req.StartDate, req.EndDate)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "start_date and end_date must be YYYY-MM-DD with end after start")
		return
	}

	r, err := h.service.CreateBooking(c.Request.Context(), CreateBookingInput{
		UserID:    middleware.CurrentActor(c).UserID,
		VehicleID: req.VehicleID,
		StartDate: rng.Start,
		EndDate:   rng.End,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"reservation": reservation.ToResponse(r)})
}
