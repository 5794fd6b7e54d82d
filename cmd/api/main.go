package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"interview-coach/internal/auth"
	"interview-coach/internal/cache"
	"interview-coach/internal/config"
	"interview-coach/internal/handlers"
	"interview-coach/internal/logger"
	"interview-coach/internal/repositories"
	"interview-coach/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Server.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := config.InitDatabase(cfg, log)
	if err != nil {
		log.Fatal("failed to initialize database", zap.Error(err))
	}

	sessionRepo := repositories.NewSessionRepository(db)
	profileRepo := repositories.NewProfileRepository(db)

	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatal("failed to create upload directory", zap.Error(err))
	}
	pdfParser := services.NewPDFParserService()

	geminiService, err := services.NewGeminiService(ctx, services.GeminiOptions{
		APIKey:          cfg.Gemini.APIKey,
		Model:           cfg.Gemini.Model,
		EmbedModel:      cfg.Gemini.EmbedModel,
		MaxOutputTokens: cfg.Gemini.MaxOutputTokens,
	}, log)
	if err != nil {
		log.Fatal("failed to initialize gemini", zap.Error(err))
	}
	log.Info("gemini initialized", zap.String("model", cfg.Gemini.Model))

	stats := &services.OutcomeStats{}
	interviewService := services.NewInterviewService(geminiService, log, stats)

	redisCache := cache.NewRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, log)
	defer redisCache.Close()
	profiles := handlers.NewProfileStore(
		profileRepo,
		cache.NewProfileCache(redisCache, cfg.Redis.ProfileTTL),
		log,
	)

	// The question bank is optional; without qdrant the indexer is not started
	// and similarity search answers 503.
	var (
		bank    services.QuestionBankService
		indexer services.Worker
	)
	if cfg.Qdrant.URL != "" {
		bank, err = initQuestionBank(ctx, cfg)
		if err != nil {
			log.Warn("question bank disabled", zap.Error(err))
		} else {
			indexer = services.NewWorker(geminiService, bank, log, cfg.Worker.Concurrency, cfg.Worker.QueueSize)
			indexer.Start(context.Background())
			log.Info("question bank enabled", zap.String("collection", cfg.Qdrant.Collection))
		}
	}

	authMiddleware := auth.NewMiddleware(auth.NewTokenService(cfg.Auth.Secret, cfg.Auth.Issuer))

	app := fiber.New(fiber.Config{
		AppName:      "Interview Coach API",
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		BodyLimit:    cfg.Server.BodyLimit,
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.FrontendURL,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	handlers.RegisterRoutes(app, handlers.Handlers{
		Health:    handlers.NewHealthHandler(stats),
		Interview: handlers.NewInterviewHandler(interviewService, profiles, indexer, geminiService, bank, log),
		Session:   handlers.NewSessionHandler(sessionRepo, log),
		Profile:   handlers.NewProfileHandler(profiles, storageService, pdfParser, cfg.Storage.MaxFileSize, log),
	}, authMiddleware)

	go func() {
		<-ctx.Done()
		log.Info("shutting down server")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Info("server starting", zap.String("addr", addr), zap.String("env", cfg.Server.Env))

	if err := app.Listen(addr); err != nil {
		log.Error("server stopped", zap.Error(err))
	}

	if indexer != nil {
		indexer.Stop()
	}
}

func initQuestionBank(ctx context.Context, cfg *config.Config) (services.QuestionBankService, error) {
	bank, err := services.NewQdrantService(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection)
	if err != nil {
		return nil, err
	}

	initCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := bank.InitCollection(initCtx); err != nil {
		return nil, err
	}
	return bank, nil
}
