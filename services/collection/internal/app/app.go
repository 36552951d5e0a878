package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"collection-hub/pkg/cache"
	"collection-hub/pkg/config"
	"collection-hub/pkg/database"
	"collection-hub/pkg/jwt"
	"collection-hub/pkg/logger"
	"collection-hub/pkg/metrics"
	"collection-hub/pkg/middleware"
	"collection-hub/pkg/queue"
	"collection-hub/pkg/s3"
	collectionHTTP "collection-hub/services/collection/internal/controller/http"
	collectionCache "collection-hub/services/collection/internal/repo/cache"
	"collection-hub/services/collection/internal/repo/persistent"
	"collection-hub/services/collection/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "collection-hub/services/collection/docs" // Swagger docs
)

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	db          *gorm.DB
	redisClient *redis.Client
	s3Client    *s3.Client
	jwtService  *jwt.Service
	queueClient *queue.Client
	httpServer  *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.New()

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		return nil, err
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Warn("Failed to connect to redis: %v (continuing without cache and rate limiting)", err)
		redisClient = nil
	}

	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		log.Warn("Failed to create S3 client: %v (media uploads disabled)", err)
		s3Client = nil
	}

	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Warn("Failed to connect to RabbitMQ: %v (continuing without events)", err)
		queueClient = nil
	}

	return &App{
		cfg:         cfg,
		log:         log,
		db:          db,
		redisClient: redisClient,
		s3Client:    s3Client,
		jwtService:  jwt.NewService(cfg.JWTSecret),
		queueClient: queueClient,
	}, nil
}

// Handlers bundles the HTTP controllers mounted under /api/v1.
type Handlers struct {
	Reviews     *collectionHTTP.ReviewHandler
	Collections *collectionHTTP.CollectionHandler
	Catalog     *collectionHTTP.CatalogHandler
}

// BuildHandlers wires repositories and use cases over db. Nil clients switch
// the matching feature off.
func BuildHandlers(cfg *config.Config, log *logger.Logger, db *gorm.DB, redisClient *redis.Client, storage usecase.ObjectStorage, publisher usecase.EventPublisher) (*Handlers, error) {
	store := persistent.NewStore(db)

	catalogUseCase, err := usecase.NewCatalogUseCase(store, log)
	if err != nil {
		return nil, err
	}
	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second
	reviewUseCase := usecase.NewReviewUseCase(store, catalogUseCase, publisher, log)
	collectionUseCase := usecase.NewCollectionUseCase(store, catalogUseCase, collectionCache.NewCollectionCache(redisClient, cacheTTL, log), publisher, log)
	mediaUseCase := usecase.NewMediaUseCase(storage, log)

	return &Handlers{
		Reviews:     collectionHTTP.NewReviewHandler(reviewUseCase, log),
		Collections: collectionHTTP.NewCollectionHandler(collectionUseCase, log),
		Catalog:     collectionHTTP.NewCatalogHandler(catalogUseCase, mediaUseCase, log),
	}, nil
}

func NewRouter(cfg *config.Config, jwtService *jwt.Service, redisClient *redis.Client, h *Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), metrics.Middleware())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/metrics", metrics.Handler())

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(jwtService))
	api.Use(middleware.RateLimitMiddleware(redisClient, cfg.RateLimitPerMinute, time.Minute))

	moderators := middleware.RequireRole(jwt.RoleAdmin, jwt.RoleReviewer)
	admins := middleware.RequireRole(jwt.RoleAdmin)

	{
		api.POST("/reviews", h.Reviews.CreateDraft)
		api.GET("/reviews", h.Reviews.ListDrafts)
		api.GET("/reviews/:id", h.Reviews.GetDraft)
		api.PUT("/reviews/:id", h.Reviews.UpdateDraft)
		api.POST("/reviews/:id/approve", moderators, h.Reviews.ApproveDraft)
		api.POST("/reviews/:id/reject", moderators, h.Reviews.RejectDraft)

		api.GET("/collections", h.Collections.ListCollections)
		api.GET("/collections/:id", h.Collections.GetCollection)
		api.POST("/collections", admins, h.Collections.CreateCollection)
		api.DELETE("/collections/:id", admins, h.Collections.DeleteCollection)
		api.GET("/slugs/check", h.Collections.CheckSlug)

		api.GET("/products", h.Catalog.ListProducts)
		api.GET("/collection-types", h.Catalog.ListCollectionTypes)
		api.POST("/media", h.Catalog.UploadMedia)
	}

	return r
}

func (a *App) Run() error {
	// Typed nils must not reach the use cases as non-nil interfaces.
	var storage usecase.ObjectStorage
	if a.s3Client != nil {
		storage = a.s3Client
	}
	var publisher usecase.EventPublisher
	if a.queueClient != nil {
		publisher = a.queueClient
	}

	handlers, err := BuildHandlers(a.cfg, a.log, a.db, a.redisClient, storage, publisher)
	if err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	r := NewRouter(a.cfg, a.jwtService, a.redisClient, handlers)

	// Create HTTP server
	a.httpServer = &http.Server{
		Addr:              ":" + a.cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		a.log.Info("Collection service starting on port %s", a.cfg.ServerPort)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	return nil
}

func (a *App) Wait() {
	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	a.log.Info("Shutting down collection service...")
}

func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Stop accepting requests before closing what they depend on.
	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.log.Error("Server forced to shutdown: %v", err)
		return err
	}

	sqlDB, err := a.db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			a.log.Error("Error closing database: %v", err)
		}
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Error("Error closing Redis: %v", err)
		}
	}

	if a.queueClient != nil {
		if err := a.queueClient.Close(); err != nil {
			a.log.Error("Error closing RabbitMQ: %v", err)
		}
	}

	a.log.Info("Collection service exited")
	return nil
}
