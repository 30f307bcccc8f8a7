package mapper

import (
	"restaurant-directory/modules/restaurant/dto"
	"restaurant-directory/modules/restaurant/entity"
	"strings"
)

func ToRestaurantEntity(req *dto.CreateRestaurantRequest) *entity.Restaurant {
	return &entity.Restaurant{
		Name:         strings.TrimSpace(req.Name),
		OpeningHours: strings.TrimSpace(req.OpeningHours),
	}
}

// ApplyUpdate copies the set fields of req onto r.
func ApplyUpdate(r *entity.Restaurant, req *dto.UpdateRestaurantRequest) {
	if req.Name != nil {
		r.Name = strings.TrimSpace(*req.Name)
	}
	if req.OpeningHours != nil {
		r.OpeningHours = strings.TrimSpace(*req.OpeningHours)
	}
}

func ToRestaurantResponse(r *entity.Restaurant) *dto.RestaurantResponse {
	return &dto.RestaurantResponse{
		ID:           r.ID,
		Name:         r.Name,
		Slug:         r.Slug,
		OpeningHours: r.OpeningHours,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func ToRestaurantResponses(items []entity.Restaurant) []dto.RestaurantResponse {
	responses := make([]dto.RestaurantResponse, len(items))
	for i := range items {
		responses[i] = *ToRestaurantResponse(&items[i])
	}
	return responses
}
