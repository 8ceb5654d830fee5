package memory

import (
	"context"

	"github.com/google/uuid"
	"github.com/ignatzorin/gastro-backend/internal/domain/entity"
	"github.com/ignatzorin/gastro-backend/internal/pkg/apperror"
)

type reviewRepo struct {
	store *Store
	inTx  bool
}

func (r *reviewRepo) Create(ctx context.Context, review *entity.Review) error {
	return r.store.write(r.inTx, func(st *state) error {
		for _, existing := range st.reviews {
			if existing.EventID == review.EventID {
				return apperror.ErrDuplicateReview
			}
		}
		cp := *review
		st.reviews[review.ID] = &cp
		st.reviewSeq = append(st.reviewSeq, review.ID)
		return nil
	})
}

// FindByProfessionalID возвращает отзывы от новых к старым.
func (r *reviewRepo) FindByProfessionalID(ctx context.Context, professionalID uuid.UUID) ([]*entity.Review, error) {
	var result []*entity.Review
	err := r.store.read(func(st *state) error {
		for i := len(st.reviewSeq) - 1; i >= 0; i-- {
			rv := st.reviews[st.reviewSeq[i]]
			if rv.ProfessionalID == professionalID {
				cp := *rv
				result = append(result, &cp)
			}
		}
		return nil
	})
	return result, err
}
