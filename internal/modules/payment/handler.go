package payment

import (
	"net/http"

	"carrental/internal/middleware"
	"carrental/internal/modules/reservation"
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
	rg.POST("/reservations/:id/payments", h.RecordPayment)
	rg.GET("/reservations/:id/payments", h.ListPayments)
}

func (h *Handler) RecordPayment(c *gin.Context) {
	id, ok := reservation.ParseID(c)
	if !ok {
		return
	}
	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "amount and method are required")
		return
	}

	p, err := h.service.RecordPayment(c.Request.Context(), middleware.CurrentActor(c), id, req.Amount, req.Method)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"payment": p})
}

func (h *Handler) ListPayments(c *gin.Context) {
	id, ok := reservation.ParseID(c)
	if !ok {
		return
	}
	list, err := h.service.ListPayments(c.Request.Context(), middleware.CurrentActor(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"payments": list})
}
