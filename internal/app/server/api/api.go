// GET /api/v1/health  # состояние сервиса и счетчики записей (публичный)

package api

import (
	healthAPI "linekeeper/internal/app/server/api/http/health"
	"linekeeper/internal/app/server/api/http/middleware"
	"linekeeper/internal/app/server/api/http/middleware/logger"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"
)

type Handlers struct {
	Health *healthAPI.Handler
}

// New создает *chi.Mux со всеми операциями через huma.Register
func New(stats healthAPI.StatsProvider, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()

	config := huma.DefaultConfig("Linekeeper API", "1.0.0")
	API := humachi.New(mux, config)

	h := handlers(stats, log)
	h.Health.SetupRoutes(API)

	return mux
}

func handlers(stats healthAPI.StatsProvider, log *slog.Logger) *Handlers {
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	middlewares.Add(loggerMW.Middleware())
	healthHandler := healthAPI.NewHandler(stats, log.With(slog.String("component", "health")), middlewares.GetAllAndClear())

	return &Handlers{
		Health: healthHandler,
	}
}
