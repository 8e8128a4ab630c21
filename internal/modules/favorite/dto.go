package favorite

import (
	"time"

	"carrental/internal/domain"
	"carrental/internal/modules/catalog"
)

type FavoriteResponse struct {
	ID        int64                    `json:"id"`
	VehicleID int64                    `json:"vehicle_id"`
	Vehicle   *catalog.VehicleResponse `json:"vehicle,omitempty"`
	CreatedAt time.Time                `json:"created_at"`
}

type FavoriteListResponse struct {
	Favorites  []FavoriteResponse `json:"favorites"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	PerPage    int                `json:"per_page"`
	TotalPages int                `json:"total_pages"`
}

type CheckFavoriteResponse struct {
	IsFavorite bool `json:"is_favorite"`
}

func ToFavoriteResponse(f *domain.Favorite) FavoriteResponse {
	resp := FavoriteResponse{
		ID:        f.ID,
		VehicleID: f.VehicleID,
		CreatedAt: f.CreatedAt,
	}
	if f.Vehicle != nil {
		v := catalog.ToVehicleResponse(f.Vehicle)
		resp.Vehicle = &v
	}
	return resp
}

func ToFavoriteListResponse(favorites []domain.Favorite, total int64, page, perPage int) FavoriteListResponse {
	items := make([]FavoriteResponse, len(favorites))
	for i := range favorites {
		items[i] = ToFavoriteResponse(&favorites[i])
	}

	totalPages := int(total) / perPage
	if int(total)%perPage > 0 {
		totalPages++
	}

	return FavoriteListResponse{
		Favorites:  items,
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages,
	}
}
