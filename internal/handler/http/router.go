package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

type RouterConfig struct {
	FrontendURL string
	Env         string
	LogLevel    slog.Level

	// UploadsDir is served under /uploads when photos are stored locally
	UploadsDir string
}

func NewRouter(
	cfg RouterConfig,
	laborerHandler LaborerHandler,
	dailyEntryHandler DailyEntryHandler,
	analysisHandler AnalysisHandler,
	dashboardHandler DashboardHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.LogLevel,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "laborbook"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	if cfg.UploadsDir != "" {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir))))
	}

	r.Get("/api/get-laborers-example", laborerHandler.ListExample)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/laborers", func(r chi.Router) {
			r.Get("/", laborerHandler.List)
			r.Post("/", laborerHandler.Create)
			r.Post("/delete", laborerHandler.DeleteFromForm)
			r.Get("/{id}", laborerHandler.GetByID)
			r.Delete("/{id}", laborerHandler.Delete)
		})

		r.Route("/daily-entries", func(r chi.Router) {
			r.Get("/", dailyEntryHandler.List)
			r.Post("/", dailyEntryHandler.Create)
		})

		r.Route("/analysis", func(r chi.Router) {
			r.Post("/work", analysisHandler.AnalyzeWork)
			r.Get("/daily-summary", analysisHandler.SummarizeDate)
			r.Post("/daily-summary", analysisHandler.SummarizeDailyActivity)
		})

		r.Get("/dashboard", dashboardHandler.GetDashboard)
	})
	return r
}
