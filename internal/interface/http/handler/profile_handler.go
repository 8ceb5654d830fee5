package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/gastro-backend/internal/interface/http/dto"
	"github.com/ignatzorin/gastro-backend/internal/interface/http/response"
	"github.com/ignatzorin/gastro-backend/internal/usecase/profile"
)

type ProfileHandler struct {
	upsertUC *profile.UpsertProfileUseCase
	getUC    *profile.GetProfileUseCase
}

func NewProfileHandler(upsertUC *profile.UpsertProfileUseCase, getUC *profile.GetProfileUseCase) *ProfileHandler {
	return &ProfileHandler{upsertUC: upsertUC, getUC: getUC}
}

func (h *ProfileHandler) UpsertMyProfile(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "dados da requisição inválidos")
		return
	}

	saved, err := h.upsertUC.Execute(c.Request.Context(), actor, req.ToAttributes())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToProfileResponse(saved))
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	professionalID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	p, err := h.getUC.Execute(c.Request.Context(), professionalID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToProfileResponse(p))
}
