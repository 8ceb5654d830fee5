// Package memory - транзакционное хранилище в памяти процесса для STORAGE_DRIVER=memory и тестов.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/ignatzorin/gastro-backend/internal/domain/entity"
	"github.com/ignatzorin/gastro-backend/internal/domain/repository"
)

// Store хранит все сущности. Транзакции выполняются по одной: txMu держится на всё время
// WithinTx, а при ошибке состояние восстанавливается из снимка.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex
	st   *state
}

type state struct {
	events        map[uuid.UUID]*entity.Event
	eventSeq      []uuid.UUID
	proposals     map[uuid.UUID]*entity.Proposal
	proposalSeq   []uuid.UUID
	profiles      map[uuid.UUID]*entity.ProfessionalProfile
	profileSeq    []uuid.UUID
	reviews       map[uuid.UUID]*entity.Review
	reviewSeq     []uuid.UUID
	notifications map[uuid.UUID]*entity.Notification
	notifSeq      []uuid.UUID
}

func newState() *state {
	return &state{
		events:        make(map[uuid.UUID]*entity.Event),
		proposals:     make(map[uuid.UUID]*entity.Proposal),
		profiles:      make(map[uuid.UUID]*entity.ProfessionalProfile),
		reviews:       make(map[uuid.UUID]*entity.Review),
		notifications: make(map[uuid.UUID]*entity.Notification),
	}
}

func (s *state) clone() *state {
	c := newState()
	for id, e := range s.events {
		c.events[id] = cloneEvent(e)
	}
	for id, p := range s.proposals {
		c.proposals[id] = cloneProposal(p)
	}
	for id, p := range s.profiles {
		c.profiles[id] = cloneProfile(p)
	}
	for id, r := range s.reviews {
		cp := *r
		c.reviews[id] = &cp
	}
	for id, n := range s.notifications {
		c.notifications[id] = cloneNotification(n)
	}
	c.eventSeq = append([]uuid.UUID(nil), s.eventSeq...)
	c.proposalSeq = append([]uuid.UUID(nil), s.proposalSeq...)
	c.profileSeq = append([]uuid.UUID(nil), s.profileSeq...)
	c.reviewSeq = append([]uuid.UUID(nil), s.reviewSeq...)
	c.notifSeq = append([]uuid.UUID(nil), s.notifSeq...)
	return c
}

func NewStore() *Store {
	return &Store{st: newState()}
}

// Ping нужен health-проверке; хранилище в памяти всегда доступно.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) Events() repository.EventRepository {
	return &eventRepo{store: s}
}

func (s *Store) Proposals() repository.ProposalRepository {
	return &proposalRepo{store: s}
}

func (s *Store) Profiles() repository.ProfileRepository {
	return &profileRepo{store: s}
}

func (s *Store) Reviews() repository.ReviewRepository {
	return &reviewRepo{store: s}
}

func (s *Store) Notifications() repository.NotificationRepository {
	return &notificationRepo{store: s}
}

// WithinTx реализует repository.Transactor.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repos repository.Repositories) error) (err error) {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	snapshot := s.st.clone()
	s.mu.RUnlock()

	defer func() {
		if p := recover(); p != nil {
			s.restore(snapshot)
			panic(p)
		}
		if err != nil {
			s.restore(snapshot)
		}
	}()

	if err = ctx.Err(); err != nil {
		return err
	}
	return fn(ctx, repository.Repositories{
		Events:    &eventRepo{store: s, inTx: true},
		Proposals: &proposalRepo{store: s, inTx: true},
		Reviews:   &reviewRepo{store: s, inTx: true},
	})
}

func (s *Store) restore(snapshot *state) {
	s.mu.Lock()
	s.st = snapshot
	s.mu.Unlock()
}

// write выполняет изменение состояния. Вне транзакции запись ждёт завершения активной транзакции,
// чтобы откат не потерял её.
func (s *Store) write(inTx bool, fn func(st *state) error) error {
	if !inTx {
		s.txMu.Lock()
		defer s.txMu.Unlock()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.st)
}

func (s *Store) read(fn func(st *state) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.st)
}

func cloneEvent(e *entity.Event) *entity.Event {
	c := *e
	c.CuisineStyles = append([]string(nil), e.CuisineStyles...)
	c.ServiceTypes = append([]string(nil), e.ServiceTypes...)
	if e.HiredProposalID != nil {
		id := *e.HiredProposalID
		c.HiredProposalID = &id
	}
	return &c
}

func cloneProposal(p *entity.Proposal) *entity.Proposal {
	c := *p
	if p.PricePerGuest != nil {
		v := *p.PricePerGuest
		c.PricePerGuest = &v
	}
	if p.RespondedAt != nil {
		t := *p.RespondedAt
		c.RespondedAt = &t
	}
	return &c
}

func cloneProfile(p *entity.ProfessionalProfile) *entity.ProfessionalProfile {
	c := *p
	c.CuisineStyles = append([]string(nil), p.CuisineStyles...)
	c.EventTypes = append(c.EventTypes[:0:0], p.EventTypes...)
	c.ServiceTypes = append([]string(nil), p.ServiceTypes...)
	c.CapacityTiers = append([]string(nil), p.CapacityTiers...)
	c.PriceRanges = append([]string(nil), p.PriceRanges...)
	return &c
}

func cloneNotification(n *entity.Notification) *entity.Notification {
	c := *n
	c.Payload = append(c.Payload[:0:0], n.Payload...)
	return &c
}

// page применяет limit/offset к уже упорядоченному срезу.
func page[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
