package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"inkstone/internal/auth"
	"inkstone/internal/config"
	"inkstone/internal/handler"
	"inkstone/internal/middleware"
	"inkstone/internal/repository/postgres"
	postgresNovel "inkstone/internal/repository/postgres/novel"
	serviceAssist "inkstone/internal/service/assist"
	serviceNovel "inkstone/internal/service/novel"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	var logOut io.Writer = os.Stdout
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, 10)
		if err != nil {
			log.Fatalf("Failed to setup log file: %v", err)
		}
		defer logFile.Close()
		logOut = io.MultiWriter(os.Stdout, logFile)
	}

	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	jwtVerifier, err := auth.NewJWTVerifier(cfg.JWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected",
		"max_conns", 25,
		"min_conns", 5,
	)

	tables := postgres.NewTableNames(cfg.TablePrefix)

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	manuscriptRepo := postgresNovel.NewManuscriptRepository(repoConfig)
	volumeRepo := postgresNovel.NewVolumeRepository(repoConfig)
	chapterRepo := postgresNovel.NewChapterRepository(repoConfig)
	contentRepo := postgresNovel.NewContentRepository(repoConfig)
	loreRepo := postgresNovel.NewLoreRepository(repoConfig)
	projectRepo := postgresNovel.NewProjectRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool, logger)

	// Create services
	statsService := serviceNovel.NewStatsService(manuscriptRepo, chapterRepo, logger)
	manuscriptService := serviceNovel.NewManuscriptService(manuscriptRepo, projectRepo, logger)
	volumeService := serviceNovel.NewVolumeService(manuscriptRepo, volumeRepo, chapterRepo, contentRepo, statsService, txManager, logger)
	chapterService := serviceNovel.NewChapterService(manuscriptRepo, volumeRepo, chapterRepo, contentRepo, statsService, txManager, logger)
	contentService := serviceNovel.NewContentService(manuscriptRepo, volumeRepo, chapterRepo, contentRepo, statsService, txManager, logger)
	treeService := serviceNovel.NewTreeService(manuscriptRepo, volumeRepo, chapterRepo, logger)
	settingsService := serviceNovel.NewSettingsService(manuscriptRepo, volumeRepo, chapterRepo, loreRepo, projectRepo, logger)
	exportService := serviceNovel.NewExportService(contentRepo, treeService, logger)

	// Setup assist providers
	presets, err := serviceAssist.LoadPresets()
	if err != nil {
		log.Fatalf("Failed to load prompt presets: %v", err)
	}

	registry, err := serviceAssist.SetupProviders(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to setup assist providers: %v", err)
	}

	assistService := serviceAssist.NewService(
		settingsService,
		contentService,
		presets,
		registry,
		cfg.DefaultModel,
		cfg.AssistMaxTokens,
		logger,
	)

	// Create handlers
	manuscriptHandler := handler.NewManuscriptHandler(manuscriptService, logger)
	volumeHandler := handler.NewVolumeHandler(volumeService, logger)
	chapterHandler := handler.NewChapterHandler(chapterService, treeService, logger)
	contentHandler := handler.NewContentHandler(contentService, logger)
	settingsHandler := handler.NewSettingsHandler(settingsService, logger)
	exportHandler := handler.NewExportHandler(exportService, logger)
	assistHandler := handler.NewAssistHandler(assistService, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", manuscriptHandler.HealthCheck)

	// Manuscript routes
	mux.HandleFunc("GET /api/manuscripts", manuscriptHandler.ListManuscripts)
	mux.HandleFunc("POST /api/manuscripts", manuscriptHandler.CreateManuscript)
	mux.HandleFunc("GET /api/manuscripts/{id}", manuscriptHandler.GetManuscript)
	mux.HandleFunc("PATCH /api/manuscripts/{id}", manuscriptHandler.UpdateManuscript)
	mux.HandleFunc("DELETE /api/manuscripts/{id}", manuscriptHandler.DeleteManuscript)

	// Manuscript tree, settings and export
	mux.HandleFunc("GET /api/manuscripts/{id}/tree", chapterHandler.GetTree)
	mux.HandleFunc("GET /api/manuscripts/{id}/settings", settingsHandler.GetSettings)
	mux.HandleFunc("GET /api/manuscripts/{id}/export/text", exportHandler.ExportText)
	mux.HandleFunc("GET /api/manuscripts/{id}/export/markdown", exportHandler.ExportMarkdown)

	// Volume routes
	mux.HandleFunc("POST /api/volumes", volumeHandler.CreateVolume)
	mux.HandleFunc("PATCH /api/volumes/{id}", volumeHandler.UpdateVolume)
	mux.HandleFunc("DELETE /api/volumes/{id}", volumeHandler.DeleteVolume)

	// Chapter routes
	mux.HandleFunc("POST /api/chapters", chapterHandler.CreateChapter)
	mux.HandleFunc("GET /api/chapters/{id}", chapterHandler.GetChapter)
	mux.HandleFunc("PATCH /api/chapters/{id}", chapterHandler.UpdateChapter)
	mux.HandleFunc("DELETE /api/chapters/{id}", chapterHandler.DeleteChapter)
	mux.HandleFunc("POST /api/chapters/{id}/publish", chapterHandler.PublishChapter)
	mux.HandleFunc("POST /api/chapters/{id}/unpublish", chapterHandler.UnpublishChapter)

	// Content routes
	mux.HandleFunc("PUT /api/chapters/{id}/content", contentHandler.SaveContent)
	mux.HandleFunc("GET /api/chapters/{id}/content", contentHandler.GetContent)
	mux.HandleFunc("GET /api/chapters/{id}/content/versions", contentHandler.ListVersions)
	mux.HandleFunc("GET /api/chapters/{id}/content/versions/{version}", contentHandler.GetVersion)

	// Assist routes
	mux.HandleFunc("POST /api/assist/draft", assistHandler.Draft)

	// Build middleware chain
	var h http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS -> Recovery -> Auth -> Routes
	h = middleware.AuthMiddleware(jwtVerifier)(h)
	h = middleware.Recovery(logger)(h)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
