package event_test

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
	"github.com/ignatzorin/gastro-backend/internal/notification"
	"github.com/ignatzorin/gastro-backend/internal/pkg/apperror"
	"github.com/ignatzorin/gastro-backend/internal/usecase/event"
)

var (
	client = entity.Actor{ID: uuid.New(), Role: valueobject.RoleClient}
	admin  = entity.Actor{ID: uuid.New(), Role: valueobject.RoleAdmin}
)

func attrs() entity.EventAttributes {
	return entity.EventAttributes{
		Name:          "Aniversário 40 anos",
		EventType:     "aniversario",
		Date:          time.Now().AddDate(0, 1, 0),
		GuestCount:    60,
		City:          "Curitiba",
		State:         "PR",
		CuisineStyles: []string{"Brasileira"},
		PriceRange:    "10K_20K",
	}
}

func setup(t *testing.T) (*memory.Store, *notification.Recorder, *notification.Emitter, *entity.Event) {
	t.Helper()
	store := memory.NewStore()
	recorder := &notification.Recorder{}
	emitter := notification.NewEmitter(notification.WithSync())
	emitter.Register(recorder)

	e, err := event.NewCreateEventUseCase(store.Events()).Execute(context.Background(), client, attrs())
	require.NoError(t, err)
	return store, recorder, emitter, e
}

func addProposal(t *testing.T, store *memory.Store, eventID uuid.UUID) *entity.Proposal {
	t.Helper()
	p, err := entity.NewProposal(eventID, uuid.New(), 8000, nil, "", time.Now())
	require.NoError(t, err)
	require.NoError(t, store.Proposals().Create(context.Background(), p))
	return p
}

func TestCreateEvent(t *testing.T) {
	store := memory.NewStore()
	uc := event.NewCreateEventUseCase(store.Events())

	e, err := uc.Execute(context.Background(), client, attrs())
	require.NoError(t, err)
	assert.Equal(t, valueobject.EventStatusOpen, e.Status)
	assert.Equal(t, 20000.0, e.MaxBudget)
	assert.Equal(t, valueobject.EventTypeAniversario, e.EventType)

	_, err = uc.Execute(context.Background(), entity.Actor{ID: uuid.New(), Role: valueobject.RoleProfessional}, attrs())
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	bad := attrs()
	bad.City = ""
	_, err = uc.Execute(context.Background(), client, bad)
	assert.True(t, apperror.IsValidation(err))
}

func TestCancelEvent_RejectsPendingProposals(t *testing.T) {
	store, recorder, emitter, e := setup(t)
	first := addProposal(t, store, e.ID)
	second := addProposal(t, store, e.ID)

	cancelled, err := event.NewCancelEventUseCase(store, emitter).Execute(context.Background(), e.ID, client)
	require.NoError(t, err)
	assert.Equal(t, valueobject.EventStatusCancelled, cancelled.Status)
	assert.Nil(t, cancelled.HiredProposalID)

	for _, id := range []uuid.UUID{first.ID, second.ID} {
		p, err := store.Proposals().FindByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, valueobject.ProposalStatusRejected, p.Status)
	}

	notified := recorder.OfKind(domainevent.KindEventCancelled)
	require.Len(t, notified, 2)
	assert.ElementsMatch(t,
		[]uuid.UUID{first.ProfessionalID, second.ProfessionalID},
		[]uuid.UUID{notified[0].RecipientID, notified[1].RecipientID},
	)
}

func TestCancelEvent_TerminalStatesConflict(t *testing.T) {
	store, _, emitter, e := setup(t)
	p := addProposal(t, store, e.ID)

	err := store.WithinTx(context.Background(), func(ctx context.Context, repos repository.Repositories) error {
		_, err := event.Close(ctx, repos, e.ID, p.ID, time.Now())
		return err
	})
	require.NoError(t, err)

	uc := event.NewCancelEventUseCase(store, emitter)
	_, err = uc.Execute(context.Background(), e.ID, client)
	assert.ErrorIs(t, err, apperror.ErrEventAlreadyClosed)
	assert.True(t, apperror.IsConflict(err))

	stored, err := store.Events().FindByID(context.Background(), e.ID)
	require.NoError(t, err)
	assert.Equal(t, valueobject.EventStatusClosed, stored.Status)
	assert.True(t, stored.HasConsistentHire())
}

func TestCancelEvent_Permissions(t *testing.T) {
	store, _, emitter, e := setup(t)
	uc := event.NewCancelEventUseCase(store, emitter)

	_, err := uc.Execute(context.Background(), e.ID, entity.Actor{ID: uuid.New(), Role: valueobject.RoleClient})
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	_, err = uc.Execute(context.Background(), uuid.New(), client)
	assert.ErrorIs(t, err, apperror.ErrEventNotFound)

	cancelled, err := uc.Execute(context.Background(), e.ID, admin)
	require.NoError(t, err)
	assert.Equal(t, valueobject.EventStatusCancelled, cancelled.Status)

	_, err = uc.Execute(context.Background(), e.ID, admin)
	assert.True(t, apperror.IsConflict(err))
}

func TestDeleteEvent_AdminCascade(t *testing.T) {
	store, _, _, e := setup(t)
	p := addProposal(t, store, e.ID)
	uc := event.NewDeleteEventUseCase(store)

	assert.ErrorIs(t, uc.Execute(context.Background(), e.ID, client), apperror.ErrForbidden)
	require.NoError(t, uc.Execute(context.Background(), e.ID, admin))

	_, err := store.Events().FindByID(context.Background(), e.ID)
	assert.ErrorIs(t, err, apperror.ErrEventNotFound)
	_, err = store.Proposals().FindByID(context.Background(), p.ID)
	assert.ErrorIs(t, err, apperror.ErrProposalNotFound)
}

func TestListEvents(t *testing.T) {
	store, _, emitter, e := setup(t)
	other, err := event.NewCreateEventUseCase(store.Events()).Execute(context.Background(), client, attrs())
	require.NoError(t, err)
	_, err = event.NewCancelEventUseCase(store, emitter).Execute(context.Background(), other.ID, client)
	require.NoError(t, err)

	mine, err := event.NewListClientEventsUseCase(store.Events()).Execute(context.Background(), client.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	open, err := event.NewListOpenEventsUseCase(store.Events()).Execute(context.Background(), repository.EventFilter{})
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, e.ID, open[0].ID)

	got, err := event.NewGetEventUseCase(store.Events()).Execute(context.Background(), e.ID)
	require.NoError(t, err)
	assert.Equal(t, e.Name, got.Name)
}

func TestNormalizeFilter(t *testing.T) {
	f := event.NormalizeFilter(repository.EventFilter{Limit: 1000, Offset: -3})
	assert.Equal(t, 100, f.Limit)
	assert.Equal(t, 0, f.Offset)
	assert.Equal(t, 20, event.NormalizeFilter(repository.EventFilter{}).Limit)
}
