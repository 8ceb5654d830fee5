package persistence

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/ignatzorin/gastro-backend/internal/pkg/apperror"
)

const (
	pqUniqueViolation     = "23505"
	pqCheckViolation      = "23514"
	pqForeignKeyViolation = "23503"
)

// constraintErrors сопоставляет ограничения схемы с доменными ошибками.
var constraintErrors = map[string]error{
	"proposals_event_professional_key": apperror.ErrDuplicateProposal,
	"proposals_one_accepted_per_event": apperror.ErrProposalUnavailable,
	"reviews_event_id_key":             apperror.ErrDuplicateReview,
	"events_hire_matches_status":       apperror.ErrEventNotOpen,
}

// mapError переводит ошибку драйвера в apperror. sql.ErrNoRows превращается в notFound.
func mapError(err error, notFound error, message string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) && notFound != nil {
		return notFound
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if mapped, ok := constraintErrors[pqErr.Constraint]; ok {
			return mapped
		}
		switch pqErr.Code {
		case pqUniqueViolation, pqForeignKeyViolation:
			return apperror.Wrap(err, apperror.ErrCodeConflict, message)
		case pqCheckViolation:
			return apperror.Wrap(err, apperror.ErrCodeInvalidState, message)
		}
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperror.Wrap(err, apperror.ErrCodeDatabaseError, message)
}
