package memory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/gastro-backend/internal/domain/entity"
	"github.com/ignatzorin/gastro-backend/internal/domain/valueobject"
	"github.com/ignatzorin/gastro-backend/internal/pkg/apperror"
)

type proposalRepo struct {
	store *Store
	inTx  bool
}

func (r *proposalRepo) Create(ctx context.Context, proposal *entity.Proposal) error {
	return r.store.write(r.inTx, func(st *state) error {
		if _, ok := st.events[proposal.EventID]; !ok {
			return apperror.ErrEventNotFound
		}
		for _, p := range st.proposals {
			if p.EventID == proposal.EventID && p.ProfessionalID == proposal.ProfessionalID {
				return apperror.ErrDuplicateProposal
			}
		}
		st.proposals[proposal.ID] = cloneProposal(proposal)
		st.proposalSeq = append(st.proposalSeq, proposal.ID)
		return nil
	})
}

func (r *proposalRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Proposal, error) {
	var found *entity.Proposal
	err := r.store.read(func(st *state) error {
		p, ok := st.proposals[id]
		if !ok {
			return apperror.ErrProposalNotFound
		}
		found = cloneProposal(p)
		return nil
	})
	return found, err
}

func (r *proposalRepo) FindByEventID(ctx context.Context, eventID uuid.UUID) ([]*entity.Proposal, error) {
	return r.filter(false, func(p *entity.Proposal) bool { return p.EventID == eventID })
}

func (r *proposalRepo) FindByProfessionalID(ctx context.Context, professionalID uuid.UUID) ([]*entity.Proposal, error) {
	return r.filter(true, func(p *entity.Proposal) bool { return p.ProfessionalID == professionalID })
}

func (r *proposalRepo) FindByEventAndProfessional(ctx context.Context, eventID, professionalID uuid.UUID) (*entity.Proposal, error) {
	found, err := r.filter(false, func(p *entity.Proposal) bool {
		return p.EventID == eventID && p.ProfessionalID == professionalID
	})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, apperror.ErrProposalNotFound
	}
	return found[0], nil
}

func (r *proposalRepo) filter(newestFirst bool, match func(p *entity.Proposal) bool) ([]*entity.Proposal, error) {
	var result []*entity.Proposal
	err := r.store.read(func(st *state) error {
		for i := range st.proposalSeq {
			idx := i
			if newestFirst {
				idx = len(st.proposalSeq) - 1 - i
			}
			p := st.proposals[st.proposalSeq[idx]]
			if match(p) {
				result = append(result, cloneProposal(p))
			}
		}
		return nil
	})
	return result, err
}

func (r *proposalRepo) UpdateStatus(ctx context.Context, proposal *entity.Proposal, expected valueobject.ProposalStatus) error {
	return r.store.write(r.inTx, func(st *state) error {
		current, ok := st.proposals[proposal.ID]
		if !ok {
			return apperror.ErrProposalNotFound
		}
		if current.Status != expected {
			return apperror.ErrProposalUnavailable
		}
		if proposal.Status == valueobject.ProposalStatusAccepted {
			for _, p := range st.proposals {
				if p.EventID == proposal.EventID && p.ID != proposal.ID && p.IsAccepted() {
					return apperror.ErrProposalUnavailable
				}
			}
		}
		st.proposals[proposal.ID] = cloneProposal(proposal)
		return nil
	})
}

func (r *proposalRepo) RejectPendingByEvent(ctx context.Context, eventID uuid.UUID, exceptID *uuid.UUID, at time.Time) ([]*entity.Proposal, error) {
	var rejected []*entity.Proposal
	err := r.store.write(r.inTx, func(st *state) error {
		for _, id := range st.proposalSeq {
			p := st.proposals[id]
			if p.EventID != eventID || !p.IsPending() {
				continue
			}
			if exceptID != nil && p.ID == *exceptID {
				continue
			}
			if err := p.Reject(at); err != nil {
				return err
			}
			rejected = append(rejected, cloneProposal(p))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rejected, nil
}

func (r *proposalRepo) DeleteByEventID(ctx context.Context, eventID uuid.UUID) error {
	return r.store.write(r.inTx, func(st *state) error {
		kept := st.proposalSeq[:0:0]
		for _, id := range st.proposalSeq {
			if st.proposals[id].EventID == eventID {
				delete(st.proposals, id)
				continue
			}
			kept = append(kept, id)
		}
		st.proposalSeq = kept
		return nil
	})
}
