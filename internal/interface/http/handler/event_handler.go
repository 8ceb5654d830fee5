package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/gastro-backend/internal/domain/repository"
	"github.com/ignatzorin/gastro-backend/internal/domain/valueobject"
	"github.com/ignatzorin/gastro-backend/internal/interface/http/dto"
	"github.com/ignatzorin/gastro-backend/internal/interface/http/response"
	"github.com/ignatzorin/gastro-backend/internal/usecase/event"
	"github.com/ignatzorin/gastro-backend/internal/usecase/matching"
)

type EventHandler struct {
	createEventUC *event.CreateEventUseCase
	getEventUC    *event.GetEventUseCase
	listMineUC    *event.ListClientEventsUseCase
	listOpenUC    *event.ListOpenEventsUseCase
	browseUC      *matching.RankEventsForProfessionalUseCase
	cancelEventUC *event.CancelEventUseCase
	deleteEventUC *event.DeleteEventUseCase
}

func NewEventHandler(
	createEventUC *event.CreateEventUseCase,
	getEventUC *event.GetEventUseCase,
	listMineUC *event.ListClientEventsUseCase,
	listOpenUC *event.ListOpenEventsUseCase,
	browseUC *matching.RankEventsForProfessionalUseCase,
	cancelEventUC *event.CancelEventUseCase,
	deleteEventUC *event.DeleteEventUseCase,
) *EventHandler {
	return &EventHandler{
		createEventUC: createEventUC,
		getEventUC:    getEventUC,
		listMineUC:    listMineUC,
		listOpenUC:    listOpenUC,
		browseUC:      browseUC,
		cancelEventUC: cancelEventUC,
		deleteEventUC: deleteEventUC,
	}
}

func (h *EventHandler) CreateEvent(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "dados da requisição inválidos")
		return
	}

	created, err := h.createEventUC.Execute(c.Request.Context(), actor, req.ToAttributes())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToEventResponse(created))
}

func (h *EventHandler) GetEvent(c *gin.Context) {
	eventID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	e, err := h.getEventUC.Execute(c.Request.Context(), eventID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToEventResponse(e))
}

func (h *EventHandler) ListMyEvents(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	events, err := h.listMineUC.Execute(c.Request.Context(), actor.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToEventResponses(events))
}

// ListOpenEvents отдаёт профессионалу события с процентом совпадения, остальным - просто список.
func (h *EventHandler) ListOpenEvents(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	filter := event.NormalizeFilter(repository.EventFilter{
		City:      c.Query("city"),
		EventType: valueobject.EventType(c.Query("event_type")),
		Limit:     parseIntQuery(c, "limit", 0),
		Offset:    parseIntQuery(c, "offset", 0),
	})
	if filter.EventType != "" {
		filter.EventType = valueobject.ParseEventType(string(filter.EventType))
	}

	if actor.IsProfessional() {
		matches, err := h.browseUC.Execute(c.Request.Context(), actor.ID, filter)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Paginated(c, dto.ToBrowseEventResponses(matches), len(matches), filter.Limit, filter.Offset)
		return
	}

	events, err := h.listOpenUC.Execute(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, dto.ToEventResponses(events), len(events), filter.Limit, filter.Offset)
}

func (h *EventHandler) CancelEvent(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	eventID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	cancelled, err := h.cancelEventUC.Execute(c.Request.Context(), eventID, actor)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToEventResponse(cancelled))
}

func (h *EventHandler) DeleteEvent(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	eventID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.deleteEventUC.Execute(c.Request.Context(), eventID, actor); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"deleted": true})
}
