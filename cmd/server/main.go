package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/gastro-backend/internal/config"
	"github.com/ignatzorin/gastro-backend/internal/db"
	"github.com/ignatzorin/gastro-backend/internal/domain/repository"
	"github.com/ignatzorin/gastro-backend/internal/goroutine"
	httpRouter "github.com/ignatzorin/gastro-backend/internal/http/router"
	"github.com/ignatzorin/gastro-backend/internal/infrastructure/memory"
	"github.com/ignatzorin/gastro-backend/internal/infrastructure/persistence"
	"github.com/ignatzorin/gastro-backend/internal/interface/http/handler"
	"github.com/ignatzorin/gastro-backend/internal/logger"
	"github.com/ignatzorin/gastro-backend/internal/notification"
	"github.com/ignatzorin/gastro-backend/internal/service"
	eventuc "github.com/ignatzorin/gastro-backend/internal/usecase/event"
	"github.com/ignatzorin/gastro-backend/internal/usecase/matching"
	profileuc "github.com/ignatzorin/gastro-backend/internal/usecase/profile"
	"github.com/ignatzorin/gastro-backend/internal/usecase/proposal"
	"github.com/ignatzorin/gastro-backend/internal/usecase/review"
	"github.com/ignatzorin/gastro-backend/internal/ws"
)

// storage - выбранная реализация хранилища.
type storage struct {
	tx            repository.Transactor
	events        repository.EventRepository
	proposals     repository.ProposalRepository
	profiles      repository.ProfileRepository
	reviews       repository.ReviewRepository
	notifications repository.NotificationRepository
	pinger        handler.Pinger
	close         func() error
}

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	logger.Init(cfg.LogLevel, cfg.Env)
	appLog := logger.WithComponent("main")

	store, err := openStorage(ctx, cfg)
	if err != nil {
		appLog.WithError(err).Fatal("не удалось подготовить хранилище")
	}
	defer func() {
		if err := store.close(); err != nil {
			appLog.WithError(err).Warn("ошибка закрытия хранилища")
		}
	}()

	tokenManager := service.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL)
	notificationService := service.NewNotificationService(store.notifications)

	hub := ws.NewHub()
	goroutine.SafeGoWithContext(ctx, hub.Run)

	// Эмиттер: доставка после фиксации транзакции, подписчики в порядке регистрации.
	var emitterOpts []notification.Option
	if !cfg.NotificationAsync {
		emitterOpts = append(emitterOpts, notification.WithSync())
	}
	emitter := notification.NewEmitter(emitterOpts...)
	emitter.Register(
		ws.NewNotificationSink(hub, notificationService),
		review.NewRatingRecalculator(store.profiles),
	)

	handlers := httpRouter.Handlers{
		Event: handler.NewEventHandler(
			eventuc.NewCreateEventUseCase(store.events),
			eventuc.NewGetEventUseCase(store.events),
			eventuc.NewListClientEventsUseCase(store.events),
			eventuc.NewListOpenEventsUseCase(store.events),
			matching.NewRankEventsForProfessionalUseCase(store.events, store.profiles),
			eventuc.NewCancelEventUseCase(store.tx, emitter),
			eventuc.NewDeleteEventUseCase(store.tx),
		),
		Proposal: handler.NewProposalHandler(
			proposal.NewCreateProposalUseCase(store.tx, emitter),
			proposal.NewRespondProposalUseCase(store.tx, emitter),
			proposal.NewGetProposalUseCase(store.proposals, store.events),
			proposal.NewListEventProposalsUseCase(store.proposals, store.events),
			proposal.NewListMyProposalsUseCase(store.proposals),
		),
		Matching: handler.NewMatchingHandler(
			matching.NewRankForEventUseCase(store.events, store.profiles, cfg.MatchTopN),
			matching.NewNotifyAboveThresholdUseCase(store.events, store.profiles, cfg.MatchNotifyThreshold),
			emitter,
		),
		Review: handler.NewReviewHandler(
			review.NewCreateReviewUseCase(store.tx, emitter),
			review.NewListProfessionalReviewsUseCase(store.profiles, store.reviews),
		),
		Profile: handler.NewProfileHandler(
			profileuc.NewUpsertProfileUseCase(store.profiles),
			profileuc.NewGetProfileUseCase(store.profiles),
		),
		Notification: handler.NewNotificationHandler(notificationService),
		Health:       handler.NewHealthHandler(store.pinger),
		WS:           handler.NewWSHandler(hub, tokenManager, cfg.AllowedOrigins),
	}

	engine := httpRouter.SetupRouter(cfg, handlers, tokenManager)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Завершаем сервер при получении сигнала.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			appLog.WithError(err).Warn("ошибка остановки http сервера")
		}
	}()

	appLog.WithField("port", cfg.HTTPPort).WithField("storage", cfg.StorageDriver).Info("HTTP сервер запущен")

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		appLog.WithError(err).Fatal("сервер завершился с ошибкой")
	}

	// Дожидаемся доставки уже отправленных уведомлений.
	emitter.Wait()
	appLog.Info("сервер остановлен")
}

func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	if cfg.StorageDriver == config.StorageMemory {
		mem := memory.NewStore()
		return &storage{
			tx:            mem,
			events:        mem.Events(),
			proposals:     mem.Proposals(),
			profiles:      mem.Profiles(),
			reviews:       mem.Reviews(),
			notifications: mem.Notifications(),
			pinger:        mem,
			close:         func() error { return nil },
		}, nil
	}

	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
		_ = dbConn.Close()
		return nil, err
	}
	return postgresStorage(dbConn), nil
}

func postgresStorage(dbConn *sqlx.DB) *storage {
	return &storage{
		tx:            persistence.NewPostgresTransactor(dbConn),
		events:        persistence.NewEventRepositoryAdapter(dbConn),
		proposals:     persistence.NewProposalRepositoryAdapter(dbConn),
		profiles:      persistence.NewProfileRepositoryAdapter(dbConn),
		reviews:       persistence.NewReviewRepositoryAdapter(dbConn),
		notifications: persistence.NewNotificationRepositoryAdapter(dbConn),
		pinger:        db.NewPinger(dbConn),
		close:         dbConn.Close,
	}
}
