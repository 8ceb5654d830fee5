package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/gastro-backend/internal/domain/domainevent"
	"github.com/ignatzorin/gastro-backend/internal/interface/http/dto"
	"github.com/ignatzorin/gastro-backend/internal/interface/http/response"
	"github.com/ignatzorin/gastro-backend/internal/logger"
	"github.com/ignatzorin/gastro-backend/internal/usecase/matching"
)

type MatchingHandler struct {
	rankUC   *matching.RankForEventUseCase
	notifyUC *matching.NotifyAboveThresholdUseCase
	emitter  domainevent.Emitter
}

func NewMatchingHandler(rankUC *matching.RankForEventUseCase, notifyUC *matching.NotifyAboveThresholdUseCase, emitter domainevent.Emitter) *MatchingHandler {
	return &MatchingHandler{rankUC: rankUC, notifyUC: notifyUC, emitter: emitter}
}

// RankMatches обрабатывает GET /events/:id/matches?top=N.
func (h *MatchingHandler) RankMatches(c *gin.Context) {
	if _, ok := requireActor(c); !ok {
		return
	}
	eventID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	matches, err := h.rankUC.Execute(c.Request.Context(), eventID, parseIntQuery(c, "top", 0))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToMatchResponses(matches))
}

// NotifyMatches отбирает профессионалов выше порога и рассылает им приглашения.
func (h *MatchingHandler) NotifyMatches(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	eventID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	matches, err := h.notifyUC.Execute(c.Request.Context(), eventID, actor, parseIntQuery(c, "threshold", 0))
	if err != nil {
		response.Error(c, err)
		return
	}

	h.emitter.Emit(c.Request.Context(), matching.MatchedRecords(eventID, matches, time.Now().UTC())...)
	logger.Log.WithFields(logrus.Fields{
		"event_id": eventID,
		"actor_id": actor.ID,
		"notified": len(matches),
	}).Info("приглашения на событие разосланы")

	response.Success(c, dto.NotifyMatchesResponse{
		Notified: len(matches),
		Matches:  dto.ToMatchResponses(matches),
	})
}
