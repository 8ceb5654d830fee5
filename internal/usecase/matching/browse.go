package matching

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ignatzorin/gastro-backend/internal/domain/entity"
	"github.com/ignatzorin/gastro-backend/internal/domain/repository"
	"github.com/ignatzorin/gastro-backend/internal/domain/scoring"
	"github.com/ignatzorin/gastro-backend/internal/pkg/apperror"
	eventuc "github.com/ignatzorin/gastro-backend/internal/usecase/event"
)

// EventMatch - открытое событие с процентом совпадения для профессионала.
type EventMatch struct {
	Event        *entity.Event
	MatchPercent int
}

type RankEventsForProfessionalUseCase struct {
	eventRepo   repository.EventRepository
	profileRepo repository.ProfileRepository
}

func NewRankEventsForProfessionalUseCase(eventRepo repository.EventRepository, profileRepo repository.ProfileRepository) *RankEventsForProfessionalUseCase {
	return &RankEventsForProfessionalUseCase{eventRepo: eventRepo, profileRepo: profileRepo}
}

// Execute возвращает открытые события по убыванию процента совпадения.
// Ранжируется весь отфильтрованный набор, страница вырезается после сортировки.
// Профессионал без профиля получает базовый процент для всех событий.
func (uc *RankEventsForProfessionalUseCase) Execute(ctx context.Context, professionalID uuid.UUID, filter repository.EventFilter) ([]EventMatch, error) {
	pageFilter := eventuc.NormalizeFilter(filter)
	var (
		profile *entity.ProfessionalProfile
		events  []*entity.Event
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := uc.profileRepo.FindByID(gctx, professionalID)
		if apperror.IsNotFound(err) {
			p, err = &entity.ProfessionalProfile{ProfessionalID: professionalID}, nil
		}
		profile = p
		return err
	})
	g.Go(func() error {
		var err error
		events, err = uc.eventRepo.ListOpen(gctx, repository.EventFilter{City: filter.City, EventType: filter.EventType})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := make([]EventMatch, 0, len(events))
	for _, e := range events {
		result = append(result, EventMatch{Event: e, MatchPercent: scoring.BrowseScore(e, profile)})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].MatchPercent > result[j].MatchPercent
	})
	if pageFilter.Offset >= len(result) {
		return []EventMatch{}, nil
	}
	result = result[pageFilter.Offset:]
	if pageFilter.Limit < len(result) {
		result = result[:pageFilter.Limit]
	}
	return result, nil
}
