package matching_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/gastro-backend/internal/domain/domainevent"
	"github.com/ignatzorin/gastro-backend/internal/domain/entity"
	"github.com/ignatzorin/gastro-backend/internal/domain/repository"
	"github.com/ignatzorin/gastro-backend/internal/domain/valueobject"
	"github.com/ignatzorin/gastro-backend/internal/infrastructure/memory"
	"github.com/ignatzorin/gastro-backend/internal/pkg/apperror"
	"github.com/ignatzorin/gastro-backend/internal/usecase/matching"
)

var client = entity.Actor{ID: uuid.New(), Role: valueobject.RoleClient}

func seed(t *testing.T) (*memory.Store, *entity.Event, map[string]uuid.UUID) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	e, err := entity.NewEvent(client.ID, entity.EventAttributes{
		EventType:     "CASAMENTO",
		Date:          time.Now().AddDate(0, 2, 0),
		GuestCount:    100,
		City:          "Campinas",
		State:         "SP",
		CuisineStyles: []string{"Italiana"},
		ServiceTypes:  []string{"Buffet"},
	}, time.Now())
	require.NoError(t, err)
	require.NoError(t, store.Events().Create(ctx, e))

	ids := map[string]uuid.UUID{}
	add := func(name string, attrs entity.ProfileAttributes, rating int) {
		id := uuid.New()
		attrs.DisplayName = name
		p, err := entity.NewProfessionalProfile(id, attrs, time.Now())
		require.NoError(t, err)
		require.NoError(t, store.Profiles().Upsert(ctx, p))
		r, err := entity.NewReview(uuid.New(), uuid.New(), id, rating, "", time.Now())
		require.NoError(t, err)
		require.NoError(t, store.Reviews().Create(ctx, r))
		_, err = store.Profiles().RecalculateStats(ctx, id, time.Now())
		require.NoError(t, err)
		ids[name] = id
	}

	full := entity.ProfileAttributes{
		CuisineStyles: []string{"Italiana", "Francesa"},
		EventTypes:    []string{"CASAMENTO"},
		ServiceTypes:  []string{"buffet"},
		CapacityTiers: []string{"50-150"},
		City:          "Campinas",
	}
	add("tie-first", full, 5)
	add("weak", entity.ProfileAttributes{City: "Recife"}, 1)
	add("tie-second", full, 5)
	add("middle", entity.ProfileAttributes{CuisineStyles: []string{"italiana"}, City: "campinas"}, 5)

	return store, e, ids
}

func TestRankForEvent_OrderAndTopN(t *testing.T) {
	store, e, ids := seed(t)
	uc := matching.NewRankForEventUseCase(store.Events(), store.Profiles(), 0)

	matches, err := uc.Execute(context.Background(), e.ID, 0)
	require.NoError(t, err)
	require.Len(t, matches, 4)

	assert.Equal(t, ids["tie-first"], matches[0].ProfessionalID)
	assert.Equal(t, ids["tie-second"], matches[1].ProfessionalID)
	assert.Equal(t, ids["middle"], matches[2].ProfessionalID)
	assert.Equal(t, ids["weak"], matches[3].ProfessionalID)
	assert.Equal(t, 80, matches[0].Score)
	assert.Equal(t, 50, matches[2].Score)
	assert.Equal(t, 3, matches[3].Score)

	top, err := uc.Execute(context.Background(), e.ID, 2)
	require.NoError(t, err)
	assert.Len(t, top, 2)

	_, err = uc.Execute(context.Background(), uuid.New(), 5)
	assert.ErrorIs(t, err, apperror.ErrEventNotFound)
}

func TestNotifyAboveThreshold(t *testing.T) {
	store, e, ids := seed(t)
	uc := matching.NewNotifyAboveThresholdUseCase(store.Events(), store.Profiles(), 0)

	selected, err := uc.Execute(context.Background(), e.ID, client, 0)
	require.NoError(t, err)
	require.Len(t, selected, 2)
	assert.Equal(t, ids["tie-first"], selected[0].ProfessionalID)

	lower, err := uc.Execute(context.Background(), e.ID, client, 50)
	require.NoError(t, err)
	assert.Len(t, lower, 3)

	_, err = uc.Execute(context.Background(), e.ID, entity.Actor{ID: uuid.New(), Role: valueobject.RoleClient}, 80)
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	_, err = uc.Execute(context.Background(), uuid.New(), client, 80)
	assert.ErrorIs(t, err, apperror.ErrEventNotFound)

	records := matching.MatchedRecords(e.ID, selected, time.Now())
	require.Len(t, records, 2)
	assert.Equal(t, domainevent.KindEventMatched, records[0].Kind)
	assert.Equal(t, selected[0].ProfessionalID, records[0].RecipientID)
}

func TestRankEventsForProfessional(t *testing.T) {
	store, e, ids := seed(t)
	ctx := context.Background()
	other, err := entity.NewEvent(uuid.New(), entity.EventAttributes{
		Date:          time.Now().AddDate(0, 1, 0),
		GuestCount:    500,
		City:          "Natal",
		State:         "RN",
		CuisineStyles: []string{"Japonesa"},
	}, time.Now())
	require.NoError(t, err)
	require.NoError(t, store.Events().Create(ctx, other))

	uc := matching.NewRankEventsForProfessionalUseCase(store.Events(), store.Profiles())

	feed, err := uc.Execute(ctx, ids["tie-first"], repository.EventFilter{})
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, e.ID, feed[0].Event.ID)
	assert.Equal(t, 100, feed[0].MatchPercent)
	assert.Equal(t, 50, feed[1].MatchPercent)

	first, err := uc.Execute(ctx, ids["tie-first"], repository.EventFilter{Limit: 1})
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, e.ID, first[0].Event.ID, "ближайшее по дате событие не должно вытеснять лучшее совпадение")

	second, err := uc.Execute(ctx, ids["tie-first"], repository.EventFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, other.ID, second[0].Event.ID)

	beyond, err := uc.Execute(ctx, ids["tie-first"], repository.EventFilter{Offset: 5})
	require.NoError(t, err)
	assert.Empty(t, beyond)

	anonymous, err := uc.Execute(ctx, uuid.New(), repository.EventFilter{})
	require.NoError(t, err)
	for _, m := range anonymous {
		assert.Equal(t, 50, m.MatchPercent)
	}
}
