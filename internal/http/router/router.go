package router

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/gastro-backend/internal/config"
	"github.com/ignatzorin/gastro-backend/internal/http/middleware"
	"github.com/ignatzorin/gastro-backend/internal/interface/http/handler"
	"github.com/ignatzorin/gastro-backend/internal/metrics"
)

// Handlers - набор HTTP обработчиков API.
type Handlers struct {
	Event        *handler.EventHandler
	Proposal     *handler.ProposalHandler
	Matching     *handler.MatchingHandler
	Review       *handler.ReviewHandler
	Profile      *handler.ProfileHandler
	Notification *handler.NotificationHandler
	Health       *handler.HealthHandler
	WS           *handler.WSHandler
}

func SetupRouter(cfg *config.Config, h Handlers, tokens middleware.TokenParser) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.Metrics())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", h.Health.Health)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api")
	api.GET("/ws", h.WS.Handle)

	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(tokens))
	protected.Use(middleware.MutationsOnly(middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod)))
	{
		protected.POST("/events", h.Event.CreateEvent)
		protected.GET("/events/my", h.Event.ListMyEvents)
		protected.GET("/events/open", h.Event.ListOpenEvents)
		protected.GET("/events/:id", middleware.UUIDValidator("id"), h.Event.GetEvent)
		protected.POST("/events/:id/cancel", middleware.UUIDValidator("id"), h.Event.CancelEvent)
		protected.DELETE("/events/:id", middleware.UUIDValidator("id"), h.Event.DeleteEvent)

		protected.GET("/events/:id/matches", middleware.UUIDValidator("id"), h.Matching.RankMatches)
		protected.POST("/events/:id/notify-matches", middleware.UUIDValidator("id"), h.Matching.NotifyMatches)

		protected.POST("/events/:id/proposals", middleware.UUIDValidator("id"), h.Proposal.CreateProposal)
		protected.GET("/events/:id/proposals", middleware.UUIDValidator("id"), h.Proposal.ListEventProposals)
		protected.GET("/proposals/my", h.Proposal.ListMyProposals)
		protected.GET("/proposals/:proposalId", middleware.UUIDValidator("proposalId"), h.Proposal.GetProposal)
		protected.PUT("/proposals/:proposalId/respond", middleware.UUIDValidator("proposalId"), h.Proposal.RespondProposal)

		protected.POST("/events/:id/reviews", middleware.UUIDValidator("id"), h.Review.CreateReview)

		protected.PUT("/professionals/me", h.Profile.UpsertMyProfile)
		protected.GET("/professionals/:id", middleware.UUIDValidator("id"), h.Profile.GetProfile)
		protected.GET("/professionals/:id/reviews", middleware.UUIDValidator("id"), h.Review.ListProfessionalReviews)

		protected.GET("/notifications", h.Notification.ListNotifications)
		protected.GET("/notifications/unread/count", h.Notification.CountUnread)
		protected.PUT("/notifications/read-all", h.Notification.MarkAllRead)
		protected.PUT("/notifications/:id/read", middleware.UUIDValidator("id"), h.Notification.MarkRead)
	}

	return r
}
