package admin

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"carrental/internal/modules/auth"
	"carrental/internal/modules/reservation"
	"carrental/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes expects admin to be gated by middleware.AdminOnly.
func (h *Handler) RegisterRoutes(admin *gin.RouterGroup) {
	admin.GET("/stats", h.GetStats)
	admin.GET("/reservations", h.ListReservations)
	admin.GET("/reservations/export", h.ExportReservations)
	admin.GET("/users", h.ListUsers)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.service.GetDashboardStats(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"stats": stats})
}

func (h *Handler) ListReservations(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	list, total, err := h.service.ListReservations(c.Request.Context(), c.Query("status"), limit, offset)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"reservations": reservation.ToResponses(list),
		"total":        total,
	})
}

func (h *Handler) ListUsers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	list, total, err := h.service.ListUsers(c.Request.Context(), limit, offset)
	if err != nil {
		response.FromError(c, err)
		return
	}
	users := make([]auth.UserPublic, 0, len(list))
	for i := range list {
		users = append(users, auth.ToUserPublic(&list[i]))
	}
	response.Success(c, http.StatusOK, gin.H{"users": users, "total": total})
}

func (h *Handler) ExportReservations(c *gin.Context) {
	var buf bytes.Buffer
	if _, err := h.service.ExportReservations(c.Request.Context(), &buf); err != nil {
		response.FromError(c, err)
		return
	}

	name := fmt.Sprintf("reservations-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
