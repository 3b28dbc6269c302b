package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sitelabor/laborbook-backend-go/internal/config"
	appHTTP "github.com/sitelabor/laborbook-backend-go/internal/handler/http"
	"github.com/sitelabor/laborbook-backend-go/internal/pkg/cache"
	"github.com/sitelabor/laborbook-backend-go/internal/pkg/database"
	"github.com/sitelabor/laborbook-backend-go/internal/pkg/llm"
	"github.com/sitelabor/laborbook-backend-go/internal/pkg/storage"
	"github.com/sitelabor/laborbook-backend-go/internal/repository/postgresql"
	analysisService "github.com/sitelabor/laborbook-backend-go/internal/service/analysis"
	dailyEntryService "github.com/sitelabor/laborbook-backend-go/internal/service/dailyentry"
	dashboardService "github.com/sitelabor/laborbook-backend-go/internal/service/dashboard"
	"github.com/sitelabor/laborbook-backend-go/internal/service/file"
	laborerService "github.com/sitelabor/laborbook-backend-go/internal/service/laborer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	laborerRepo := postgresql.NewLaborerRepository(db)
	dailyEntryRepo := postgresql.NewDailyEntryRepository(db)
	transactor := postgresql.NewTransactor(db)

	var fileStorage storage.FileStorage
	uploadsDir := ""
	switch cfg.Storage.Type {
	case "local":
		local, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
		if err != nil {
			return fmt.Errorf("initialize local storage: %w", err)
		}
		fileStorage = local
		uploadsDir = local.BasePath()
	case "blob":
		fileStorage = storage.NewBlobStorage(cfg.Storage.BlobAPIURL, cfg.Storage.BlobToken, &http.Client{Timeout: 30 * time.Second})
		if !fileStorage.Available() {
			slog.Warn("BLOB_READ_WRITE_TOKEN is not set; laborer photos fall back to placeholders")
		}
	default:
		return fmt.Errorf("unsupported storage type %q", cfg.Storage.Type)
	}

	viewCache := cache.NewNoop()
	if cfg.Cache.Addr != "" {
		rdb, err := cache.Connect(ctx, cfg.Cache.Addr, cfg.Cache.Password, cfg.Cache.DB)
		if err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		defer rdb.Close()
		viewCache = cache.NewRedis(rdb, cfg.Cache.TTL)
	}

	// A nil generator makes the analysis endpoints report the model as unavailable.
	var generator llm.Generator
	if cfg.GenAI.APIKey != "" {
		gemini, err := llm.NewGeminiClient(ctx, cfg.GenAI.APIKey, cfg.GenAI.Model)
		if err != nil {
			return fmt.Errorf("initialize generative model: %w", err)
		}
		generator = gemini
		slog.Info("AI analysis enabled", "engine", gemini.Name())
	} else {
		slog.Warn("GEMINI_API_KEY is not set; AI analysis is disabled")
	}

	fileService := file.NewFileService(fileStorage)
	laborerSvc := laborerService.NewLaborerService(laborerRepo, fileService, viewCache)
	dailyEntrySvc := dailyEntryService.NewDailyEntryService(dailyEntryRepo, transactor, viewCache)
	analysisSvc := analysisService.NewAnalysisService(generator, dailyEntryRepo)
	dashboardSvc := dashboardService.NewDashboardService(laborerRepo, dailyEntryRepo, viewCache)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			FrontendURL: cfg.App.FrontendURL,
			Env:         cfg.App.Env,
			LogLevel:    cfg.SlogLevel(),
			UploadsDir:  uploadsDir,
		},
		appHTTP.NewLaborerHandler(laborerSvc),
		appHTTP.NewDailyEntryHandler(dailyEntrySvc),
		appHTTP.NewAnalysisHandler(analysisSvc),
		appHTTP.NewDashboardHandler(dashboardSvc),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("server running", "addr", server.Addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
