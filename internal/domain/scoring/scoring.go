// Package scoring содержит чистые функции оценки совместимости события и профессионала.
package scoring

import (
	"math"
	"strings"

	"github.com/ignatzorin/gastro-backend/internal/domain/entity"
	"github.com/ignatzorin/gastro-backend/internal/domain/valueobject"
)

// Веса компонентов оценки для подбора профессионалов под событие.
const (
	CuisineWeight   = 20.0
	EventTypeWeight = 15.0
	CapacityWeight  = 15.0
	LocalityWeight  = 15.0
	BudgetWeight    = 20.0
	RatingWeight    = 15.0

	MaxScore   = 100
	MaxReasons = 3
)

// Breakdown - вклад каждого компонента до округления.
type Breakdown struct {
	Cuisine   float64 `json:"cuisine"`
	EventType float64 `json:"event_type"`
	Capacity  float64 `json:"capacity"`
	Locality  float64 `json:"locality"`
	Budget    float64 `json:"budget"`
	Rating    float64 `json:"rating"`
}

func (b Breakdown) Sum() float64 {
	return b.Cuisine + b.EventType + b.Capacity + b.Locality + b.Budget + b.Rating
}

type Result struct {
	Score     int       `json:"score"`
	Reasons   []string  `json:"reasons"`
	Breakdown Breakdown `json:"breakdown"`
}

// Score оценивает профессионала относительно события. Некорректные поля профиля дают нулевой вклад.
func Score(event *entity.Event, profile *entity.ProfessionalProfile) Result {
	var (
		b       Breakdown
		reasons []string
	)

	matched := intersect(event.CuisineStyles, profile.CuisineStyles)
	if len(event.CuisineStyles) > 0 && len(profile.CuisineStyles) > 0 {
		b.Cuisine = float64(len(matched)) / float64(len(event.CuisineStyles)) * CuisineWeight
		if len(matched) > 0 {
			reasons = append(reasons, "Especialista em "+strings.Join(matched, ", "))
		}
	}

	if profile.ServesEventType(event.EventType) {
		b.EventType = EventTypeWeight
		reasons = append(reasons, "Experiência com "+event.EventType.Label())
	}

	if profile.MaxCapacity() >= event.GuestCount {
		b.Capacity = CapacityWeight
	}

	if sameCity(event.City, profile.City) {
		b.Locality = LocalityWeight
		reasons = append(reasons, "Atende em "+strings.TrimSpace(event.City))
	}

	if budgetFits(event.MaxBudget, profile.PriceRanges) {
		b.Budget = BudgetWeight
	}

	b.Rating = clampFloat(profile.Rating, 0, 5) / 5 * RatingWeight

	if len(reasons) > MaxReasons {
		reasons = reasons[:MaxReasons]
	}
	if reasons == nil {
		reasons = []string{}
	}

	return Result{
		Score:     clamp(int(math.Round(b.Sum())), 0, MaxScore),
		Reasons:   reasons,
		Breakdown: b,
	}
}

func budgetFits(budget float64, ranges []string) bool {
	if budget <= 0 {
		return false
	}
	for _, interval := range valueobject.ParseIntervals(ranges) {
		if interval.Contains(budget) {
			return true
		}
	}
	return false
}

func sameCity(a, b string) bool {
	a = strings.TrimSpace(a)
	b = strings.TrimSpace(b)
	return a != "" && strings.EqualFold(a, b)
}

// intersect возвращает элементы want, присутствующие в have без учёта регистра, в написании want.
func intersect(want, have []string) []string {
	index := make(map[string]struct{}, len(have))
	for _, h := range have {
		index[strings.ToLower(strings.TrimSpace(h))] = struct{}{}
	}
	var result []string
	for _, w := range want {
		if _, ok := index[strings.ToLower(strings.TrimSpace(w))]; ok {
			result = append(result, w)
		}
	}
	return result
}

// overlapRatio - доля want, покрытая have. Пустой want даёт 0.
func overlapRatio(want, have []string) float64 {
	if len(want) == 0 {
		return 0
	}
	return float64(len(intersect(want, have))) / float64(len(want))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
