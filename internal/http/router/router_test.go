package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/gastro-backend/internal/config"
	"github.com/ignatzorin/gastro-backend/internal/domain/entity"
	"github.com/ignatzorin/gastro-backend/internal/domain/scoring"
	"github.com/ignatzorin/gastro-backend/internal/domain/valueobject"
	"github.com/ignatzorin/gastro-backend/internal/infrastructure/memory"
	"github.com/ignatzorin/gastro-backend/internal/interface/http/handler"
	"github.com/ignatzorin/gastro-backend/internal/notification"
	"github.com/ignatzorin/gastro-backend/internal/service"
	eventuc "github.com/ignatzorin/gastro-backend/internal/usecase/event"
	"github.com/ignatzorin/gastro-backend/internal/usecase/matching"
	profileuc "github.com/ignatzorin/gastro-backend/internal/usecase/profile"
	"github.com/ignatzorin/gastro-backend/internal/usecase/proposal"
	"github.com/ignatzorin/gastro-backend/internal/usecase/review"
	"github.com/ignatzorin/gastro-backend/internal/ws"
)

type testServer struct {
	engine *gin.Engine
	tokens *service.TokenManager
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Defaults()
	cfg.AllowedOrigins = []string{"http://localhost:3000"}
	cfg.RateLimitLimit = 1000

	store := memory.NewStore()
	tokens := service.NewTokenManager("0123456789abcdef0123456789abcdef", time.Hour)
	inbox := service.NewNotificationService(store.Notifications())
	hub := ws.NewHub()

	emitter := notification.NewEmitter(notification.WithSync())
	emitter.Register(
		ws.NewNotificationSink(hub, inbox),
		review.NewRatingRecalculator(store.Profiles()),
	)

	handlers := Handlers{
		Event: handler.NewEventHandler(
			eventuc.NewCreateEventUseCase(store.Events()),
			eventuc.NewGetEventUseCase(store.Events()),
			eventuc.NewListClientEventsUseCase(store.Events()),
			eventuc.NewListOpenEventsUseCase(store.Events()),
			matching.NewRankEventsForProfessionalUseCase(store.Events(), store.Profiles()),
			eventuc.NewCancelEventUseCase(store, emitter),
			eventuc.NewDeleteEventUseCase(store),
		),
		Proposal: handler.NewProposalHandler(
			proposal.NewCreateProposalUseCase(store, emitter),
			proposal.NewRespondProposalUseCase(store, emitter),
			proposal.NewGetProposalUseCase(store.Proposals(), store.Events()),
			proposal.NewListEventProposalsUseCase(store.Proposals(), store.Events()),
			proposal.NewListMyProposalsUseCase(store.Proposals()),
		),
		Matching: handler.NewMatchingHandler(
			matching.NewRankForEventUseCase(store.Events(), store.Profiles(), cfg.MatchTopN),
			matching.NewNotifyAboveThresholdUseCase(store.Events(), store.Profiles(), cfg.MatchNotifyThreshold),
			emitter,
		),
		Review: handler.NewReviewHandler(
			review.NewCreateReviewUseCase(store, emitter),
			review.NewListProfessionalReviewsUseCase(store.Profiles(), store.Reviews()),
		),
		Profile: handler.NewProfileHandler(
			profileuc.NewUpsertProfileUseCase(store.Profiles()),
			profileuc.NewGetProfileUseCase(store.Profiles()),
		),
		Notification: handler.NewNotificationHandler(inbox),
		Health:       handler.NewHealthHandler(store),
		WS:           handler.NewWSHandler(hub, tokens, cfg.AllowedOrigins),
	}

	return &testServer{engine: SetupRouter(cfg, handlers, tokens), tokens: tokens}
}

func (s *testServer) token(t *testing.T, role valueobject.Role) (uuid.UUID, string) {
	t.Helper()
	id := uuid.New()
	token, _, err := s.tokens.IssueAccess(entity.Actor{ID: id, Role: role})
	require.NoError(t, err)
	return id, token
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) (int, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		_ = json.Unmarshal(rec.Body.Bytes(), &env)
	}
	return rec.Code, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

type idResponse struct {
	ID     uuid.UUID `json:"id"`
	Status string    `json:"status"`
}

func TestRouter_AcceptFlow(t *testing.T) {
	s := newTestServer(t)
	_, clientToken := s.token(t, valueobject.RoleClient)
	chefID, chefToken := s.token(t, valueobject.RoleProfessional)
	_, otherToken := s.token(t, valueobject.RoleProfessional)

	code, env := s.do(t, http.MethodPost, "/api/events", clientToken, map[string]any{
		"name":           "Casamento Ana & Leo",
		"event_type":     "casamento",
		"date":           time.Now().AddDate(0, 2, 0).UTC().Format(time.RFC3339),
		"guest_count":    120,
		"city":           "Campinas",
		"state":          "SP",
		"cuisine_styles": []string{"Italiana"},
		"price_range":    "20K_50K",
	})
	require.Equal(t, http.StatusCreated, code)
	event := decode[idResponse](t, env.Data)
	assert.Equal(t, "OPEN", event.Status)

	code, _ = s.do(t, http.MethodPut, "/api/professionals/me", chefToken, map[string]any{
		"display_name":   "Chef Rita",
		"cuisine_styles": []string{"italiana"},
		"event_types":    []string{"CASAMENTO"},
		"capacity_tiers": []string{"50-150"},
		"price_ranges":   []string{"20000-50000"},
		"city":           "campinas",
		"state":          "SP",
	})
	require.Equal(t, http.StatusOK, code)

	code, env = s.do(t, http.MethodGet, "/api/events/"+event.ID.String()+"/matches", clientToken, nil)
	require.Equal(t, http.StatusOK, code)
	matches := decode[[]struct {
		ProfessionalID uuid.UUID `json:"professional_id"`
		Score          int       `json:"score"`
	}](t, env.Data)
	require.Len(t, matches, 1)
	assert.Equal(t, chefID, matches[0].ProfessionalID)
	assert.Equal(t, 85, matches[0].Score)

	eventPath := "/api/events/" + event.ID.String()
	code, env = s.do(t, http.MethodPost, eventPath+"/proposals", chefToken, map[string]any{"total_price": 30000, "message": "Menu completo"})
	require.Equal(t, http.StatusCreated, code)
	chosen := decode[idResponse](t, env.Data)

	code, env = s.do(t, http.MethodPost, eventPath+"/proposals", otherToken, map[string]any{"total_price": 28000})
	require.Equal(t, http.StatusCreated, code)
	sibling := decode[idResponse](t, env.Data)

	code, env = s.do(t, http.MethodPost, eventPath+"/proposals", chefToken, map[string]any{"total_price": 1})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "CONFLICT", env.Error.Code)

	code, env = s.do(t, http.MethodPut, "/api/proposals/"+chosen.ID.String()+"/respond", otherToken, map[string]any{"action": "accept"})
	assert.Equal(t, http.StatusForbidden, code)

	code, env = s.do(t, http.MethodPut, "/api/proposals/"+chosen.ID.String()+"/respond", clientToken, map[string]any{"action": "ACCEPT"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ACCEPTED", decode[idResponse](t, env.Data).Status)

	code, env = s.do(t, http.MethodGet, eventPath, clientToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "CLOSED", decode[idResponse](t, env.Data).Status)

	code, env = s.do(t, http.MethodGet, "/api/proposals/"+sibling.ID.String(), otherToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "REJECTED", decode[idResponse](t, env.Data).Status)

	code, env = s.do(t, http.MethodPut, "/api/proposals/"+sibling.ID.String()+"/respond", clientToken, map[string]any{"action": "accept"})
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, "esta proposta não está mais disponível", env.Error.Message)

	code, env = s.do(t, http.MethodPost, eventPath+"/reviews", clientToken, map[string]any{"rating": 5, "comment": "Perfeito"})
	require.Equal(t, http.StatusCreated, code)

	code, env = s.do(t, http.MethodGet, "/api/professionals/"+chefID.String(), clientToken, nil)
	require.Equal(t, http.StatusOK, code)
	profile := decode[struct {
		Rating          float64 `json:"rating"`
		ReviewCount     int     `json:"review_count"`
		CompletedEvents int     `json:"completed_events"`
	}](t, env.Data)
	assert.Equal(t, 5.0, profile.Rating)
	assert.Equal(t, 1, profile.ReviewCount)
	assert.Equal(t, 1, profile.CompletedEvents)

	code, env = s.do(t, http.MethodGet, "/api/professionals/"+chefID.String()+"/reviews", otherToken, nil)
	require.Equal(t, http.StatusOK, code)
	reviews := decode[[]struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}](t, env.Data)
	require.Len(t, reviews, 1)
	assert.Equal(t, 5, reviews[0].Rating)
	assert.Equal(t, "Perfeito", reviews[0].Comment)

	code, env = s.do(t, http.MethodGet, "/api/notifications/unread/count", chefToken, nil)
	require.Equal(t, http.StatusOK, code)
	count := decode[struct {
		Count int `json:"count"`
	}](t, env.Data)
	assert.Equal(t, 2, count.Count) // proposal.accepted + review.created

	code, _ = s.do(t, http.MethodPut, "/api/notifications/read-all", chefToken, nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestRouter_BrowseOpenEventsForProfessional(t *testing.T) {
	s := newTestServer(t)
	_, clientToken := s.token(t, valueobject.RoleClient)
	_, chefToken := s.token(t, valueobject.RoleProfessional)

	code, _ := s.do(t, http.MethodPost, "/api/events", clientToken, map[string]any{
		"date":  time.Now().AddDate(0, 1, 0).UTC().Format(time.RFC3339),
		"city":  "Recife",
		"state": "PE",
	})
	require.Equal(t, http.StatusCreated, code)

	code, env := s.do(t, http.MethodGet, "/api/events/open", chefToken, nil)
	require.Equal(t, http.StatusOK, code)
	items := decode[[]struct {
		Name         string `json:"name"`
		MatchPercent int    `json:"match_percent"`
	}](t, env.Data)
	require.Len(t, items, 1)
	assert.Equal(t, "Evento sem título", items[0].Name)
	assert.Equal(t, int(scoring.BrowseBase), items[0].MatchPercent) // профиля нет
}

func TestRouter_AuthAndValidation(t *testing.T) {
	s := newTestServer(t)
	_, clientToken := s.token(t, valueobject.RoleClient)
	_, chefToken := s.token(t, valueobject.RoleProfessional)

	code, env := s.do(t, http.MethodGet, "/api/events/my", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.False(t, env.Success)

	code, _ = s.do(t, http.MethodGet, "/api/events/my", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, env = s.do(t, http.MethodGet, "/api/events/not-a-uuid", clientToken, nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "BAD_REQUEST", env.Error.Code)

	code, env = s.do(t, http.MethodGet, "/api/events/"+uuid.NewString(), clientToken, nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)

	code, _ = s.do(t, http.MethodPost, "/api/events", chefToken, map[string]any{
		"date":  time.Now().AddDate(0, 1, 0).UTC().Format(time.RFC3339),
		"city":  "Recife",
		"state": "PE",
	})
	assert.Equal(t, http.StatusForbidden, code)

	code, env = s.do(t, http.MethodPost, "/api/events", clientToken, map[string]any{"city": "Recife", "state": "PE"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	code, _ = s.do(t, http.MethodPut, "/api/proposals/"+uuid.NewString()+"/respond", clientToken, map[string]any{"action": "maybe"})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"healthy"`)

	rec = httptest.NewRecorder()
	s.engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "gastro_http_requests_total")
}

func TestRouter_CORSPreflight(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/events", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}
