package availability

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"carrental/internal/pkg/daterange"
	"carrental/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Checker answers availability for a vehicle, including its own status.
type Checker interface {
	CheckAvailability(ctx context.Context, vehicleID int64, start, end time.Time) (bool, error)
}

type Handler struct {
	checker Checker
}

func NewHandler(checker Checker) *Handler {
	return &Handler{checker: checker}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/vehicles/:id/availability", h.CheckAvailability)
}

// CheckAvailability answers GET /vehicles/:id/availability?start=YYYY-MM-DD&end=YYYY-MM-DD.
func (h *Handler) CheckAvailability(c *gin.Context) {
	vehicleID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || vehicleID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid vehicle ID")
		return
	}

	rng, err := daterange.ParseRange(c.Query("start"), c.Query("end"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "start and end must be YYYY-MM-DD with end after start")
		return
	}

	free, err := h.checker.CheckAvailability(c.Request.Context(), vehicleID, rng.Start, rng.End)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"vehicle_id": vehicleID,
		"start":      rng.Start.Format(daterange.Layout),
		"end":        rng.End.Format(daterange.Layout),
		"available":  free,
	})
}
