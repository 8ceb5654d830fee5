package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/gastro-backend/internal/domain/valueobject"
	"github.com/ignatzorin/gastro-backend/internal/interface/http/dto"
	"github.com/ignatzorin/gastro-backend/internal/interface/http/response"
	"github.com/ignatzorin/gastro-backend/internal/usecase/proposal"
)

type ProposalHandler struct {
	createProposalUC  *proposal.CreateProposalUseCase
	respondProposalUC *proposal.RespondProposalUseCase
	getProposalUC     *proposal.GetProposalUseCase
	listForEventUC    *proposal.ListEventProposalsUseCase
	listMyProposalsUC *proposal.ListMyProposalsUseCase
}

func NewProposalHandler(
	createProposalUC *proposal.CreateProposalUseCase,
	respondProposalUC *proposal.RespondProposalUseCase,
	getProposalUC *proposal.GetProposalUseCase,
	listForEventUC *proposal.ListEventProposalsUseCase,
	listMyProposalsUC *proposal.ListMyProposalsUseCase,
) *ProposalHandler {
	return &ProposalHandler{
		createProposalUC:  createProposalUC,
		respondProposalUC: respondProposalUC,
		getProposalUC:     getProposalUC,
		listForEventUC:    listForEventUC,
		listMyProposalsUC: listMyProposalsUC,
	}
}

func (h *ProposalHandler) CreateProposal(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	eventID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req dto.CreateProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "dados da requisição inválidos")
		return
	}

	created, err := h.createProposalUC.Execute(c.Request.Context(), actor, proposal.CreateProposalInput{
		EventID:       eventID,
		TotalPrice:    req.TotalPrice,
		PricePerGuest: req.PricePerGuest,
		Message:       req.Message,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToProposalResponse(created))
}

// RespondProposal обрабатывает PUT /proposals/:proposalId/respond с телом {action: accept|reject}.
func (h *ProposalHandler) RespondProposal(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	proposalID, ok := pathUUID(c, "proposalId")
	if !ok {
		return
	}

	var req dto.RespondProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "dados da requisição inválidos")
		return
	}
	action, err := valueobject.NewResponseAction(strings.ToLower(strings.TrimSpace(req.Action)))
	if err != nil {
		response.Error(c, err)
		return
	}

	updated, err := h.respondProposalUC.Execute(c.Request.Context(), proposalID, actor, action)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToProposalResponse(updated))
}

func (h *ProposalHandler) GetProposal(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	proposalID, ok := pathUUID(c, "proposalId")
	if !ok {
		return
	}

	p, err := h.getProposalUC.Execute(c.Request.Context(), proposalID, actor)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToProposalResponse(p))
}

func (h *ProposalHandler) ListEventProposals(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	eventID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	proposals, err := h.listForEventUC.Execute(c.Request.Context(), eventID, actor)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToProposalResponses(proposals))
}

func (h *ProposalHandler) ListMyProposals(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	proposals, err := h.listMyProposalsUC.Execute(c.Request.Context(), actor.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToProposalResponses(proposals))
}
