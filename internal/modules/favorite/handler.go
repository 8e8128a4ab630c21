package favorite

import (
	"net/http"
	"strconv"

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
	favorites := rg.Group("/favorites")
	{
		favorites.GET("", h.GetFavorites)
		favorites.POST("/:vehicleId", h.AddFavorite)
		favorites.DELETE("/:vehicleId", h.RemoveFavorite)
		favorites.GET("/:vehicleId/check", h.CheckFavorite)
	}
}

func (h *Handler) GetFavorites(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	actor := middleware.CurrentActor(c)
	list, total, err := h.service.List(c.Request.Context(), actor.UserID, page, perPage)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ToFavoriteListResponse(list, total, page, perPage))
}

func (h *Handler) AddFavorite(c *gin.Context) {
	vehicleID, ok := parseVehicleID(c)
	if !ok {
		return
	}
	fav, err := h.service.Add(c.Request.Context(), middleware.CurrentActor(c).UserID, vehicleID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, ToFavoriteResponse(fav))
}

func (h *Handler) RemoveFavorite(c *gin.Context) {
	vehicleID, ok := parseVehicleID(c)
	if !ok {
		return
	}
	if err := h.service.Remove(c.Request.Context(), middleware.CurrentActor(c).UserID, vehicleID); err != nil {
		response.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) CheckFavorite(c *gin.Context) {
	vehicleID, ok := parseVehicleID(c)
	if !ok {
		return
	}
	isFav, err := h.service.IsFavorite(c.Request.Context(), middleware.CurrentActor(c).UserID, vehicleID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, CheckFavoriteResponse{IsFavorite: isFav})
}

func parseVehicleID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("vehicleId"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid vehicle ID")
		return 0, false
	}
	return id, true
}
