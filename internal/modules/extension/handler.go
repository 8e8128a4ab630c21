package extension

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
	access  AccessChecker
}

func NewHandler(service *Service, access AccessChecker) *Handler {
	return &Handler{service: service, access: access}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, guards ...gin.HandlerFunc) {
	rg.POST("/reservations/:id/extend", append(guards, h.Extend)...)
	rg.GET("/reservations/:id/extensions", h.List)
}

func (h *Handler) Extend(c *gin.Context) {
	id, ok := reservation.ParseID(c)
	if !ok {
		return
	}

	var req ExtendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	newEnd, err := daterange.Parse(req.NewEndDate)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "new_end_date must be YYYY-MM-DD")
		return
	}

	ctx := c.Request.Context()
	if _, err := h.access.GetForActor(ctx, id, middleware.CurrentActor(c)); err != nil {
		response.FromError(c, err)
		return
	}

	res, err := h.service.Extend(ctx, id, newEnd)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"extension": toExtendResponse(res)})
}

func (h *Handler) List(c *gin.Context) {
	id, ok := reservation.ParseID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	if _, err := h.access.GetForActor(ctx, id, middleware.CurrentActor(c)); err != nil {
		response.FromError(c, err)
		return
	}

	list, err := h.service.ListExtensions(ctx, id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"extensions": toExtensionResponses(list)})
}
