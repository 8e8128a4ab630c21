package reservation

import (
	"context"
	"net/http"
	"strconv"

	"carrental/internal/domain"
	"carrental/internal/middleware"
	"carrental/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/me/reservations", h.ListMine)
	rg.GET("/reservations/:id", h.Get)
	rg.GET("/reservations/ticket/:ticket", h.GetByTicket)
	rg.POST("/reservations/:id/cancel", h.Cancel)
}

// RegisterAdminRoutes expects rg to be gated by middleware.AdminOnly.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/reservations/:id/approve", h.transition(h.service.ApproveReservation))
	rg.POST("/reservations/:id/reject", h.transition(h.service.RejectReservation))
	rg.POST("/reservations/:id/start", h.transition(h.service.StartReservation))
	rg.POST("/reservations/:id/complete", h.transition(h.service.CompleteReservation))
}

func (h *Handler) ListMine(c *gin.Context) {
	actor := middleware.CurrentActor(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	list, total, err := h.service.ListForUser(c.Request.Context(), actor.UserID, limit, offset)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"reservations": ToResponses(list),
		"total":        total,
	})
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := ParseID(c)
	if !ok {
		return
	}
	r, err := h.service.GetForActor(c.Request.Context(), id, middleware.CurrentActor(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reservation": ToResponse(r)})
}

func (h *Handler) GetByTicket(c *gin.Context) {
	r, err := h.service.GetByTicket(c.Request.Context(), c.Param("ticket"), middleware.CurrentActor(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reservation": ToResponse(r)})
}

// Cancel is open to the owner of the reservation and to admins.
func (h *Handler) Cancel(c *gin.Context) {
	id, ok := ParseID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	if _, err := h.service.GetForActor(ctx, id, middleware.CurrentActor(c)); err != nil {
		response.FromError(c, err)
		return
	}

	r, err := h.service.CancelReservation(ctx, id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reservation": ToResponse(r)})
}

func (h *Handler) transition(fn func(context.Context, int64) (*domain.Reservation, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := ParseID(c)
		if !ok {
			return
		}
		r, err := fn(c.Request.Context(), id)
		if err != nil {
			response.FromError(c, err)
			return
		}
		response.Success(c, http.StatusOK, gin.H{"reservation": ToResponse(r)})
	}
}

// ParseID reads the :id path parameter and writes a 400 when it is invalid.
func ParseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid reservation ID")
		return 0, false
	}
	return id, true
}
