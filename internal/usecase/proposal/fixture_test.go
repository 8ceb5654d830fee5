package proposal_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/gastro-backend/internal/domain/entity"
	"github.com/ignatzorin/gastro-backend/internal/domain/valueobject"
	"github.com/ignatzorin/gastro-backend/internal/infrastructure/memory"
	"github.com/ignatzorin/gastro-backend/internal/notification"
	"github.com/ignatzorin/gastro-backend/internal/usecase/proposal"
)

type fixture struct {
	store    *memory.Store
	recorder *notification.Recorder
	client   entity.Actor
	event    *entity.Event

	create  *proposal.CreateProposalUseCase
	respond *proposal.RespondProposalUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	recorder := &notification.Recorder{}
	emitter := notification.NewEmitter(notification.WithSync())
	emitter.Register(recorder)

	client := entity.Actor{ID: uuid.New(), Role: valueobject.RoleClient}
	event, err := entity.NewEvent(client.ID, entity.EventAttributes{
		Name:          "Casamento Ana & Leo",
		EventType:     "CASAMENTO",
		Date:          time.Now().AddDate(0, 3, 0),
		GuestCount:    120,
		City:          "Campinas",
		State:         "SP",
		CuisineStyles: []string{"Italiana"},
	}, time.Now())
	require.NoError(t, err)
	require.NoError(t, store.Events().Create(context.Background(), event))

	return &fixture{
		store:    store,
		recorder: recorder,
		client:   client,
		event:    event,
		create:   proposal.NewCreateProposalUseCase(store, emitter),
		respond:  proposal.NewRespondProposalUseCase(store, emitter),
	}
}

func professional() entity.Actor {
	return entity.Actor{ID: uuid.New(), Role: valueobject.RoleProfessional}
}

func (f *fixture) propose(t *testing.T, price float64) *entity.Proposal {
	t.Helper()
	p, err := f.create.Execute(context.Background(), professional(), proposal.CreateProposalInput{
		EventID:    f.event.ID,
		TotalPrice: price,
		Message:    "Cardápio completo com garçons",
	})
	require.NoError(t, err)
	return p
}

func (f *fixture) reloadEvent(t *testing.T) *entity.Event {
	t.Helper()
	e, err := f.store.Events().FindByID(context.Background(), f.event.ID)
	require.NoError(t, err)
	return e
}

func (f *fixture) reloadProposal(t *testing.T, id uuid.UUID) *entity.Proposal {
	t.Helper()
	p, err := f.store.Proposals().FindByID(context.Background(), id)
	require.NoError(t, err)
	return p
}

func (f *fixture) statuses(t *testing.T) map[valueobject.ProposalStatus]int {
	t.Helper()
	all, err := f.store.Proposals().FindByEventID(context.Background(), f.event.ID)
	require.NoError(t, err)
	counts := make(map[valueobject.ProposalStatus]int)
	for _, p := range all {
		counts[p.Status]++
	}
	return counts
}
