package scoring

import (
	"math"

	"github.com/ignatzorin/gastro-backend/internal/domain/entity"
)

// Веса процента совпадения в ленте открытых событий.
const (
	BrowseBase           = 50.0
	BrowseCuisineWeight  = 25.0
	BrowseServiceWeight  = 15.0
	BrowseCapacityWeight = 10.0
)

// BrowseScore - процент совпадения события для профессионала, просматривающего ленту.
// В отличие от Score не учитывает рейтинг и город.
func BrowseScore(event *entity.Event, profile *entity.ProfessionalProfile) int {
	sum := BrowseBase
	sum += overlapRatio(event.CuisineStyles, profile.CuisineStyles) * BrowseCuisineWeight
	sum += overlapRatio(event.ServiceTypes, profile.ServiceTypes) * BrowseServiceWeight
	if profile.MaxCapacity() >= event.GuestCount {
		sum += BrowseCapacityWeight
	}
	return clamp(int(math.Round(sum)), 0, MaxScore)
}
