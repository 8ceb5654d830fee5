package memory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/gastro-backend/internal/domain/entity"
	"github.com/ignatzorin/gastro-backend/internal/domain/repository"
	"github.com/ignatzorin/gastro-backend/internal/pkg/apperror"
)

type profileRepo struct {
	store *Store
}

func (r *profileRepo) Upsert(ctx context.Context, profile *entity.ProfessionalProfile) error {
	return r.store.write(false, func(st *state) error {
		next := cloneProfile(profile)
		if current, ok := st.profiles[profile.ProfessionalID]; ok {
			next.Rating = current.Rating
			next.ReviewCount = current.ReviewCount
			next.CompletedEvents = current.CompletedEvents
		} else {
			st.profileSeq = append(st.profileSeq, profile.ProfessionalID)
		}
		st.profiles[profile.ProfessionalID] = next
		return nil
	})
}

func (r *profileRepo) FindByID(ctx context.Context, professionalID uuid.UUID) (*entity.ProfessionalProfile, error) {
	var found *entity.ProfessionalProfile
	err := r.store.read(func(st *state) error {
		p, ok := st.profiles[professionalID]
		if !ok {
			return apperror.ErrProfileNotFound
		}
		found = cloneProfile(p)
		return nil
	})
	return found, err
}

func (r *profileRepo) List(ctx context.Context) ([]*entity.ProfessionalProfile, error) {
	var result []*entity.ProfessionalProfile
	err := r.store.read(func(st *state) error {
		result = make([]*entity.ProfessionalProfile, 0, len(st.profileSeq))
		for _, id := range st.profileSeq {
			result = append(result, cloneProfile(st.profiles[id]))
		}
		return nil
	})
	return result, err
}

// RecalculateStats читает отзывы и предложения и записывает агрегаты под одной блокировкой записи.
func (r *profileRepo) RecalculateStats(ctx context.Context, professionalID uuid.UUID, now time.Time) (repository.ProfileStats, error) {
	var stats repository.ProfileStats
	err := r.store.write(false, func(st *state) error {
		p, ok := st.profiles[professionalID]
		if !ok {
			return apperror.ErrProfileNotFound
		}

		var reviews []*entity.Review
		for _, id := range st.reviewSeq {
			if rv := st.reviews[id]; rv.ProfessionalID == professionalID {
				reviews = append(reviews, rv)
			}
		}
		completed := 0
		for _, id := range st.proposalSeq {
			if pr := st.proposals[id]; pr.ProfessionalID == professionalID && pr.IsAccepted() {
				completed++
			}
		}

		rating, count := entity.AverageRating(reviews)
		stats = repository.ProfileStats{Rating: rating, ReviewCount: count, CompletedEvents: completed, UpdatedAt: now}
		p.Rating = rating
		p.ReviewCount = count
		p.CompletedEvents = completed
		p.UpdatedAt = now
		return nil
	})
	return stats, err
}
