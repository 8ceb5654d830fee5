package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/gastro-backend/internal/domain/valueobject"
	"github.com/ignatzorin/gastro-backend/internal/pkg/apperror"
)

// ProfessionalProfile - профиль поставщика услуг, который читает движок совместимости.
// Rating, ReviewCount и CompletedEvents вычисляются и не редактируются вручную.
type ProfessionalProfile struct {
	ProfessionalID  uuid.UUID
	DisplayName     string
	CuisineStyles   []string
	EventTypes      []valueobject.EventType
	ServiceTypes    []string
	CapacityTiers   []string
	PriceRanges     []string
	City            string
	State           string
	ServiceRadiusKm int
	Rating          float64
	ReviewCount     int
	CompletedEvents int
	UpdatedAt       time.Time
}

// ProfileAttributes - редактируемая профессионалом часть профиля.
type ProfileAttributes struct {
	DisplayName     string
	CuisineStyles   []string
	EventTypes      []string
	ServiceTypes    []string
	CapacityTiers   []string
	PriceRanges     []string
	City            string
	State           string
	ServiceRadiusKm int
}

func NewProfessionalProfile(professionalID uuid.UUID, attrs ProfileAttributes, now time.Time) (*ProfessionalProfile, error) {
	p := &ProfessionalProfile{ProfessionalID: professionalID}
	if err := p.Apply(attrs, now); err != nil {
		return nil, err
	}
	return p, nil
}

// Apply перезаписывает редактируемые поля, не трогая производные агрегаты.
func (p *ProfessionalProfile) Apply(attrs ProfileAttributes, now time.Time) error {
	name := strings.TrimSpace(attrs.DisplayName)
	if name == "" {
		return apperror.New(apperror.ErrCodeValidation, "o nome de exibição é obrigatório")
	}
	if attrs.ServiceRadiusKm < 0 {
		return apperror.New(apperror.ErrCodeValidation, "o raio de atendimento não pode ser negativo")
	}

	eventTypes := make([]valueobject.EventType, 0, len(attrs.EventTypes))
	seen := make(map[valueobject.EventType]struct{}, len(attrs.EventTypes))
	for _, raw := range attrs.EventTypes {
		t := valueobject.ParseEventType(raw)
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		eventTypes = append(eventTypes, t)
	}

	p.DisplayName = name
	p.CuisineStyles = valueobject.NormalizeSet(attrs.CuisineStyles)
	p.EventTypes = eventTypes
	p.ServiceTypes = valueobject.NormalizeSet(attrs.ServiceTypes)
	p.CapacityTiers = valueobject.NormalizeSet(attrs.CapacityTiers)
	p.PriceRanges = valueobject.NormalizeSet(attrs.PriceRanges)
	p.City = strings.TrimSpace(attrs.City)
	p.State = strings.ToUpper(strings.TrimSpace(attrs.State))
	p.ServiceRadiusKm = attrs.ServiceRadiusKm
	p.UpdatedAt = now
	return nil
}

// MaxCapacity - максимальное число гостей среди заявленных уровней вместимости.
func (p *ProfessionalProfile) MaxCapacity() int {
	return valueobject.MaxCapacity(p.CapacityTiers)
}

func (p *ProfessionalProfile) ServesEventType(t valueobject.EventType) bool {
	for _, served := range p.EventTypes {
		if served == t {
			return true
		}
	}
	return false
}

// ApplyRating записывает пересчитанный рейтинг. Значение всегда берётся из полного набора отзывов.
func (p *ProfessionalProfile) ApplyRating(rating float64, reviewCount int, now time.Time) {
	p.Rating = rating
	p.ReviewCount = reviewCount
	p.UpdatedAt = now
}
