package api

import (
	"context"
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"github.com/Harshitk-cp/dsfusion/internal/api/handlers"
	mw "github.com/Harshitk-cp/dsfusion/internal/api/middleware"
	"github.com/Harshitk-cp/dsfusion/internal/buildconfig"
	"github.com/Harshitk-cp/dsfusion/internal/config"
	"github.com/Harshitk-cp/dsfusion/internal/domain"
	"github.com/Harshitk-cp/dsfusion/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Pinger is satisfied by *pgxpool.Pool. A nil Pinger means samples come from
// a file and health needs no round trip.
type Pinger interface {
	Ping(ctx context.Context) error
}

// App holds the router and the counters reported by /metrics.
type App struct {
	Router    *chi.Mux
	startTime time.Time
	counters  mw.Counters
}

func NewApp(ctx context.Context, samples domain.SampleStore, source *service.EvidenceSource, db Pinger, logger *zap.Logger) *App {
	// Services
	combiner := service.NewCombinationService(logger)
	classifier := service.NewClassificationService(samples, source, combiner, logger)
	sampleSvc := service.NewSampleService(samples, source.Config(), logger)

	// Handlers
	fusionHandler := handlers.NewFusionHandler(combiner)
	classifyHandler := handlers.NewClassifyHandler(classifier, sampleSvc)

	r := chi.NewRouter()
	app := &App{
		Router:    r,
		startTime: time.Now(),
	}

	metricsCollector := mw.NewMetricsCollector(&app.counters)

	// Global middleware (order matters)
	r.Use(mw.RequestID)
	r.Use(middleware.RealIP)
	r.Use(metricsCollector.Middleware)
	r.Use(mw.Logging(logger))
	r.Use(middleware.Recoverer)
	r.Use(mw.RateLimit(ctx, config.RateLimitRPS(), config.RateLimitBurst()))

	r.Get("/health", healthHandler(db))
	r.Get("/metrics", app.metricsHandler())

	r.Route("/v1", func(r chi.Router) {
		r.Post("/combine", fusionHandler.Combine)
		r.Post("/evaluate", fusionHandler.Evaluate)
		r.Post("/classify", classifyHandler.Classify)
		r.Get("/samples/profile", classifyHandler.Profile)
	})

	return app
}

func healthHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if db != nil {
			if err := db.Ping(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				_ = json.NewEncoder(w).Encode(map[string]string{"status": "error", "error": err.Error()})
				return
			}
		}

		resp := buildconfig.VersionInfo()
		resp["status"] = "ok"
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func (app *App) metricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var memStats runtime.MemStats
		runtime.ReadMemStats(&memStats)

		uptime := time.Since(app.startTime)

		response := map[string]any{
			"uptime_seconds": uptime.Seconds(),
			"uptime_human":   uptime.Round(time.Second).String(),
			"request_count":  app.counters.Requests.Load(),
			"error_count":    app.counters.Errors.Load(),
			"rejected_count": app.counters.Rejected.Load(),
			"goroutines":     runtime.NumGoroutine(),
			"memory": map[string]any{
				"alloc_mb":       float64(memStats.Alloc) / 1024 / 1024,
				"total_alloc_mb": float64(memStats.TotalAlloc) / 1024 / 1024,
				"sys_mb":         float64(memStats.Sys) / 1024 / 1024,
				"num_gc":         memStats.NumGC,
			},
			"go_version": runtime.Version(),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}
