package catalog

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"carrental/internal/domain"
	"carrental/internal/pkg/response"
	"carrental/internal/repository"

	"github.com/gin-gonic/gin"
)

// MaintenanceSetter changes vehicle status through the reservation lifecycle.
type MaintenanceSetter interface {
	SetVehicleMaintenance(ctx context.Context, vehicleID int64, on bool) (*domain.Vehicle, error)
}

type Handler struct {
	service     *Service
	maintenance MaintenanceSetter
}

func NewHandler(service *Service, maintenance MaintenanceSetter) *Handler {
	return &Handler{service: service, maintenance: maintenance}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/vehicles", h.ListVehicles(false))
	rg.GET("/vehicles/:id", h.GetVehicle)
}

// RegisterAdminRoutes expects admin to be gated by middleware.AdminOnly.
func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	admin.GET("/vehicles", h.ListVehicles(true))
	admin.POST("/vehicles", h.CreateVehicle)
	admin.PATCH("/vehicles/:id/maintenance", h.SetMaintenance)
}

// ListVehicles handles GET /vehicles?type=&color=&min_seats=&transmission=&max_price=&q=
// Admins may pass all=true to include rented and maintenance vehicles.
func (h *Handler) ListVehicles(admin bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		f := repository.VehicleFilter{
			Type:         strings.ToLower(c.Query("type")),
			Color:        strings.ToLower(c.Query("color")),
			Transmission: c.Query("transmission"),
			Search:       strings.TrimSpace(c.Query("q")),
			IncludeAll:   admin && c.Query("all") == "true",
		}
		if v := c.Query("min_seats"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "min_seats must be a number")
				return
			}
			f.MinSeats = n
		}
		if v := c.Query("max_price"); v != "" {
			p, err := strconv.ParseFloat(v, 64)
			if err != nil {
				response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "max_price must be a number")
				return
			}
			f.MaxPrice = p
		}

		list, err := h.service.ListVehicles(c.Request.Context(), f)
		if err != nil {
			response.FromError(c, err)
			return
		}
		response.Success(c, http.StatusOK, gin.H{
			"vehicles": toVehicleResponses(list),
			"count":    len(list),
		})
	}
}

func (h *Handler) GetVehicle(c *gin.Context) {
	id, ok := parseVehicleID(c)
	if !ok {
		return
	}
	v, err := h.service.GetVehicle(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"vehicle": ToVehicleResponse(v)})
}

func (h *Handler) CreateVehicle(c *gin.Context) {
	var req CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	v, err := h.service.CreateVehicle(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"vehicle": ToVehicleResponse(v)})
}

func (h *Handler) SetMaintenance(c *gin.Context) {
	id, ok := parseVehicleID(c)
	if !ok {
		return
	}
	var req MaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "maintenance flag is required")
		return
	}
	v, err := h.maintenance.SetVehicleMaintenance(c.Request.Context(), id, *req.Maintenance)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"vehicle": ToVehicleResponse(v)})
}

func parseVehicleID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid vehicle ID")
		return 0, false
	}
	return id, true
}
