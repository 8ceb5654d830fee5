package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/ignatzorin/gastro-backend/internal/domain/entity"
	"github.com/ignatzorin/gastro-backend/internal/domain/repository"
	"github.com/ignatzorin/gastro-backend/internal/domain/valueobject"
	"github.com/ignatzorin/gastro-backend/internal/pkg/apperror"
)

type eventRepo struct {
	store *Store
	inTx  bool
}

func (r *eventRepo) Create(ctx context.Context, event *entity.Event) error {
	return r.store.write(r.inTx, func(st *state) error {
		if _, ok := st.events[event.ID]; ok {
			return apperror.New(apperror.ErrCodeConflict, "evento já existe")
		}
		st.events[event.ID] = cloneEvent(event)
		st.eventSeq = append(st.eventSeq, event.ID)
		return nil
	})
}

func (r *eventRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	var found *entity.Event
	err := r.store.read(func(st *state) error {
		e, ok := st.events[id]
		if !ok {
			return apperror.ErrEventNotFound
		}
		found = cloneEvent(e)
		return nil
	})
	return found, err
}

// FindByIDForUpdate: внутри транзакции строка уже защищена txMu.
func (r *eventRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	return r.FindByID(ctx, id)
}

func (r *eventRepo) FindByClientID(ctx context.Context, clientID uuid.UUID) ([]*entity.Event, error) {
	var result []*entity.Event
	err := r.store.read(func(st *state) error {
		for i := len(st.eventSeq) - 1; i >= 0; i-- {
			e := st.events[st.eventSeq[i]]
			if e.ClientID == clientID {
				result = append(result, cloneEvent(e))
			}
		}
		return nil
	})
	return result, err
}

func (r *eventRepo) ListOpen(ctx context.Context, filter repository.EventFilter) ([]*entity.Event, error) {
	var result []*entity.Event
	err := r.store.read(func(st *state) error {
		for _, id := range st.eventSeq {
			e := st.events[id]
			if e.Status != valueobject.EventStatusOpen {
				continue
			}
			if filter.City != "" && !strings.EqualFold(strings.TrimSpace(filter.City), e.City) {
				continue
			}
			if filter.EventType != "" && filter.EventType != e.EventType {
				continue
			}
			result = append(result, cloneEvent(e))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})
	return page(result, filter.Limit, filter.Offset), nil
}

func (r *eventRepo) UpdateStatus(ctx context.Context, event *entity.Event, expected valueobject.EventStatus) error {
	return r.store.write(r.inTx, func(st *state) error {
		current, ok := st.events[event.ID]
		if !ok {
			return apperror.ErrEventNotFound
		}
		if current.Status != expected {
			return apperror.ErrEventNotOpen
		}
		st.events[event.ID] = cloneEvent(event)
		return nil
	})
}

func (r *eventRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.store.write(r.inTx, func(st *state) error {
		if _, ok := st.events[id]; !ok {
			return apperror.ErrEventNotFound
		}
		for _, p := range st.proposals {
			if p.EventID == id {
				return apperror.New(apperror.ErrCodeConflict, "o evento ainda possui propostas")
			}
		}
		delete(st.events, id)
		st.eventSeq = removeID(st.eventSeq, id)
		return nil
	})
}

func removeID(seq []uuid.UUID, id uuid.UUID) []uuid.UUID {
	for i, v := range seq {
		if v == id {
			return append(seq[:i:i], seq[i+1:]...)
		}
	}
	return seq
}
