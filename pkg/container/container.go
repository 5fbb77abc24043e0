package container

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"library-backend/internal/config"
	infraCache "library-backend/internal/infrastructure/cache"
	"library-backend/internal/infrastructure/database"
	"library-backend/internal/infrastructure/storage"
	"library-backend/pkg/cache"
	"library-backend/pkg/jwt"

	catalogDomain "library-backend/internal/domains/catalog"
	catalogHandler "library-backend/internal/domains/catalog/handler"
	catalogRepo "library-backend/internal/domains/catalog/repository"
	catalogService "library-backend/internal/domains/catalog/service"

	circulationDomain "library-backend/internal/domains/circulation"
	circulationHandler "library-backend/internal/domains/circulation/handler"
	circulationRepo "library-backend/internal/domains/circulation/repository"
	circulationService "library-backend/internal/domains/circulation/service"

	eventDomain "library-backend/internal/domains/event"
	eventHandler "library-backend/internal/domains/event/handler"
	eventRepo "library-backend/internal/domains/event/repository"
	eventService "library-backend/internal/domains/event/service"

	notificationDomain "library-backend/internal/domains/notification"
	notificationHandler "library-backend/internal/domains/notification/handler"
	notificationRepo "library-backend/internal/domains/notification/repository"
	notificationService "library-backend/internal/domains/notification/service"

	reportingDomain "library-backend/internal/domains/reporting"
	reportingHandler "library-backend/internal/domains/reporting/handler"
	reportingService "library-backend/internal/domains/reporting/service"

	reservationDomain "library-backend/internal/domains/reservation"
	reservationHandler "library-backend/internal/domains/reservation/handler"
	reservationRepo "library-backend/internal/domains/reservation/repository"
	reservationService "library-backend/internal/domains/reservation/service"

	suggestionDomain "library-backend/internal/domains/suggestion"
	suggestionHandler "library-backend/internal/domains/suggestion/handler"
	suggestionRepo "library-backend/internal/domains/suggestion/repository"
	suggestionService "library-backend/internal/domains/suggestion/service"

	userDomain "library-backend/internal/domains/user"
	userHandler "library-backend/internal/domains/user/handler"
	userRepo "library-backend/internal/domains/user/repository"
	userService "library-backend/internal/domains/user/service"
)

// Container is the root of the dependency graph. Everything in it is a
// singleton built once at startup, in dependency order:
// config -> infrastructure -> repositories -> services -> handlers.
type Container struct {
	// Infrastructure
	Config      *config.Config
	DB          *database.PostgresDB
	Cache       cache.Cache
	Storage     *storage.MinIOStorage
	JWTManager  *jwt.Manager
	AsynqClient *asynq.Client

	// Repositories
	UserRepo         userDomain.Repository
	CatalogRepo      catalogDomain.Repository
	CirculationRepo  circulationDomain.Repository
	ReservationRepo  reservationDomain.Repository
	NotificationRepo notificationDomain.Repository
	EventRepo        eventDomain.Repository
	SuggestionRepo   suggestionDomain.Repository

	// Services
	UserService         userDomain.Service
	CatalogService      catalogDomain.Service
	CirculationService  circulationDomain.Service
	ReservationService  reservationDomain.Service
	NotificationService notificationDomain.Service
	EventService        eventDomain.Service
	SuggestionService   suggestionDomain.Service
	ReportingService    reportingDomain.Service

	// Handlers
	UserHandler         *userHandler.UserHandler
	CatalogHandler      *catalogHandler.CatalogHandler
	CirculationHandler  *circulationHandler.CirculationHandler
	ReservationHandler  *reservationHandler.ReservationHandler
	NotificationHandler *notificationHandler.NotificationHandler
	EventHandler        *eventHandler.EventHandler
	SuggestionHandler   *suggestionHandler.SuggestionHandler
	ReportingHandler    *reportingHandler.ReportingHandler
}

// NewContainer builds the whole dependency graph. Initialization order
// matters: each stage only uses what earlier stages produced.
func NewContainer() (*Container, error) {
	log.Info().Msg("🔧 Initializing DI Container...")

	c := &Container{}

	// ========================================
	// STEP 1: CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Info().Str("environment", cfg.App.Environment).Msg("✅ Config loaded")

	// ========================================
	// STEP 2: DATABASE
	// ========================================
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	c.DB = database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := c.DB.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Info().Msg("✅ PostgreSQL connected")

	// ========================================
	// STEP 3: REDIS
	// ========================================
	c.Cache = infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)

	if redisCache, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := redisCache.Connect(ctx); err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
	}
	log.Info().Msg("✅ Redis connected")

	// ========================================
	// STEP 4: OBJECT STORAGE
	// ========================================
	minioStorage, err := storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		return nil, fmt.Errorf("failed to init minio: %w", err)
	}
	c.Storage = minioStorage
	log.Info().Str("bucket", cfg.MinIO.Bucket).Msg("✅ MinIO ready")

	// ========================================
	// STEP 5: SHARED COMPONENTS
	// ========================================
	c.JWTManager = jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)

	c.AsynqClient = asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Host,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// ========================================
	// STEP 6: REPOSITORIES
	// ========================================
	c.UserRepo = userRepo.NewPostgresRepository(c.DB.Pool, c.Cache)
	c.CatalogRepo = catalogRepo.NewPostgresRepository(c.DB.Pool)
	c.CirculationRepo = circulationRepo.NewPostgresRepository(c.DB.Pool)
	c.ReservationRepo = reservationRepo.NewPostgresRepository(c.DB.Pool)
	c.NotificationRepo = notificationRepo.NewPostgresRepository(c.DB.Pool)
	c.EventRepo = eventRepo.NewPostgresRepository(c.DB.Pool)
	c.SuggestionRepo = suggestionRepo.NewPostgresRepository(c.DB.Pool)
	log.Info().Msg("✅ Repositories initialized")

	// ========================================
	// STEP 7: SERVICES
	// ========================================
	// Notification and reservation come first: circulation consumes
	// both through small interfaces.
	c.NotificationService = notificationService.NewNotificationService(c.NotificationRepo)
	c.ReservationService = reservationService.NewReservationService(c.ReservationRepo, cfg.Policy.ReservationDays)

	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager, cfg.JWT.AccessTokenExpiry)
	c.CatalogService = catalogService.NewCatalogService(c.CatalogRepo, c.Cache, c.Storage, storage.NewImageProcessor())
	c.CirculationService = circulationService.NewCirculationService(
		c.CirculationRepo,
		cfg.Policy,
		c.NotificationService,
		c.ReservationService,
	)
	c.EventService = eventService.NewEventService(c.EventRepo, c.NotificationService)
	c.SuggestionService = suggestionService.NewSuggestionService(c.SuggestionRepo, c.NotificationService)
	c.ReportingService = reportingService.NewReportingService(
		c.UserRepo,
		c.CatalogRepo,
		c.CirculationRepo,
		c.ReservationRepo,
		c.Cache,
		cfg.Policy.BorrowLimit,
	)
	log.Info().Msg("✅ Services initialized")

	// ========================================
	// STEP 8: HANDLERS
	// ========================================
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.CatalogHandler = catalogHandler.NewCatalogHandler(c.CatalogService)
	c.CirculationHandler = circulationHandler.NewCirculationHandler(c.CirculationService)
	c.ReservationHandler = reservationHandler.NewReservationHandler(c.ReservationService)
	c.NotificationHandler = notificationHandler.NewNotificationHandler(c.NotificationService)
	c.EventHandler = eventHandler.NewEventHandler(c.EventService)
	c.SuggestionHandler = suggestionHandler.NewSuggestionHandler(c.SuggestionService)
	c.ReportingHandler = reportingHandler.NewReportingHandler(c.ReportingService)
	log.Info().Msg("✅ Handlers initialized")

	log.Info().Msg("🎉 DI Container ready")
	return c, nil
}

// Cleanup releases infrastructure resources on shutdown.
func (c *Container) Cleanup() {
	log.Info().Msg("🧹 Cleaning up container resources...")

	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close asynq client")
		}
	}

	if redisCache, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := redisCache.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close redis")
		}
	}

	if c.DB != nil {
		c.DB.Close()
	}

	log.Info().Msg("✅ Cleanup complete")
}
