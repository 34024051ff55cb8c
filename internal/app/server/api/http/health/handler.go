package health

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
	"linekeeper/internal/store"
)

const statusOK = "OK"

type StatsProvider interface {
	Stats() store.Stats
}

type Handler struct {
	stats      StatsProvider
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(stats StatsProvider, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		stats:      stats,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.healthCheckOp(), h.healthCheck)
}

func (h *Handler) healthCheck(_ context.Context, _ *Input) (*Output, error) {
	h.log.Debug("health check request received")

	st := h.stats.Stats()
	return &Output{
		Body: Response{
			Status:     statusOK,
			Lines:      st.Lines,
			Users:      st.Users,
			HasDefault: st.HasDefault,
		},
	}, nil
}
