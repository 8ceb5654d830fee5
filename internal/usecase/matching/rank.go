package matching

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ignatzorin/gastro-backend/internal/domain/domainevent"
	"github.com/ignatzorin/gastro-backend/internal/domain/entity"
	"github.com/ignatzorin/gastro-backend/internal/domain/repository"
	"github.com/ignatzorin/gastro-backend/internal/domain/scoring"
	"github.com/ignatzorin/gastro-backend/internal/metrics"
	"github.com/ignatzorin/gastro-backend/internal/pkg/apperror"
)

const (
	DefaultTopN      = 5
	DefaultThreshold = 80
)

// Match - профессионал с оценкой совместимости и краткой сводкой профиля.
type Match struct {
	ProfessionalID  uuid.UUID
	DisplayName     string
	City            string
	Rating          float64
	ReviewCount     int
	CompletedEvents int
	Score           int
	Reasons         []string
}

type RankForEventUseCase struct {
	eventRepo   repository.EventRepository
	profileRepo repository.ProfileRepository
	topN        int
}

func NewRankForEventUseCase(eventRepo repository.EventRepository, profileRepo repository.ProfileRepository, topN int) *RankForEventUseCase {
	if topN <= 0 {
		topN = DefaultTopN
	}
	return &RankForEventUseCase{eventRepo: eventRepo, profileRepo: profileRepo, topN: topN}
}

// Execute ранжирует всех профессионалов по убыванию оценки. При равных оценках сохраняется
// порядок профилей в хранилище. topN <= 0 означает значение по умолчанию.
func (uc *RankForEventUseCase) Execute(ctx context.Context, eventID uuid.UUID, topN int) ([]Match, error) {
	if topN <= 0 {
		topN = uc.topN
	}
	_, matches, err := rankAll(ctx, uc.eventRepo, uc.profileRepo, eventID)
	if err != nil {
		return nil, err
	}
	if len(matches) > topN {
		matches = matches[:topN]
	}
	return matches, nil
}

type NotifyAboveThresholdUseCase struct {
	eventRepo   repository.EventRepository
	profileRepo repository.ProfileRepository
	threshold   int
}

func NewNotifyAboveThresholdUseCase(eventRepo repository.EventRepository, profileRepo repository.ProfileRepository, threshold int) *NotifyAboveThresholdUseCase {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &NotifyAboveThresholdUseCase{eventRepo: eventRepo, profileRepo: profileRepo, threshold: threshold}
}

// Execute отбирает профессионалов с оценкой не ниже порога. Доставку не выполняет.
func (uc *NotifyAboveThresholdUseCase) Execute(ctx context.Context, eventID uuid.UUID, actor entity.Actor, threshold int) ([]Match, error) {
	if threshold <= 0 {
		threshold = uc.threshold
	}
	event, matches, err := rankAll(ctx, uc.eventRepo, uc.profileRepo, eventID)
	if err != nil {
		return nil, err
	}
	if !event.IsOwnedBy(actor.ID) {
		return nil, apperror.ErrForbidden
	}
	if !event.AcceptsProposals() {
		return nil, apperror.ErrEventNotOpen
	}

	selected := make([]Match, 0, len(matches))
	for _, m := range matches {
		if m.Score >= threshold {
			selected = append(selected, m)
		}
	}
	return selected, nil
}

// MatchedRecords превращает отобранных профессионалов в доменные события для эмиттера.
func MatchedRecords(eventID uuid.UUID, matches []Match, at time.Time) []domainevent.Record {
	records := make([]domainevent.Record, 0, len(matches))
	for _, m := range matches {
		records = append(records, domainevent.EventMatched(m.ProfessionalID, eventID, m.Score, m.Reasons, at))
	}
	return records
}

// rankAll загружает событие и профили параллельно и возвращает все оценки по убыванию.
func rankAll(ctx context.Context, eventRepo repository.EventRepository, profileRepo repository.ProfileRepository, eventID uuid.UUID) (*entity.Event, []Match, error) {
	started := time.Now()

	var (
		event    *entity.Event
		profiles []*entity.ProfessionalProfile
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		event, err = eventRepo.FindByID(gctx, eventID)
		return err
	})
	g.Go(func() error {
		var err error
		profiles, err = profileRepo.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	matches := make([]Match, 0, len(profiles))
	for _, p := range profiles {
		result := scoring.Score(event, p)
		matches = append(matches, Match{
			ProfessionalID:  p.ProfessionalID,
			DisplayName:     p.DisplayName,
			City:            p.City,
			Rating:          p.Rating,
			ReviewCount:     p.ReviewCount,
			CompletedEvents: p.CompletedEvents,
			Score:           result.Score,
			Reasons:         result.Reasons,
		})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	metrics.RecordMatching(time.Since(started).Seconds(), len(profiles))
	return event, matches, nil
}
