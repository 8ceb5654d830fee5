package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/gastro-backend/internal/interface/http/dto"
	"github.com/ignatzorin/gastro-backend/internal/interface/http/response"
	"github.com/ignatzorin/gastro-backend/internal/usecase/review"
)

type ReviewHandler struct {
	createReviewUC *review.CreateReviewUseCase
	listReviewsUC  *review.ListProfessionalReviewsUseCase
}

func NewReviewHandler(createReviewUC *review.CreateReviewUseCase, listReviewsUC *review.ListProfessionalReviewsUseCase) *ReviewHandler {
	return &ReviewHandler{createReviewUC: createReviewUC, listReviewsUC: listReviewsUC}
}

func (h *ReviewHandler) CreateReview(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	eventID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req dto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "dados da requisição inválidos")
		return
	}

	created, err := h.createReviewUC.Execute(c.Request.Context(), actor, review.CreateReviewInput{
		EventID: eventID,
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToReviewResponse(created))
}

func (h *ReviewHandler) ListProfessionalReviews(c *gin.Context) {
	professionalID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	reviews, err := h.listReviewsUC.Execute(c.Request.Context(), professionalID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToReviewResponses(reviews))
}
