package handler

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/atinyakov/go-post-generator/internal/app/service"
	"github.com/atinyakov/go-post-generator/internal/models"
)

type GetHandler struct {
	db     service.Pinger
	logger *zap.Logger
}

// NewGet creates a GetHandler. db may be nil when no database is configured.
func NewGet(db service.Pinger, l *zap.Logger) *GetHandler {
	return &GetHandler{
		db:     db,
		logger: l,
	}
}

// Ping reports service health, including the database when one is set.
func (h *GetHandler) Ping(res http.ResponseWriter, req *http.Request) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(req.Context(), 3*time.Second)
		defer cancel()

		if err := h.db.PingContext(ctx); err != nil {
			h.logger.Error("database ping failed", zap.Error(err))
			writeEnvelope(res, models.NewEnvelope(http.StatusInternalServerError, "", http.StatusText(http.StatusInternalServerError)))
			return
		}
	}

	writeEnvelope(res, models.NewEnvelope(http.StatusOK, "pong", "OK"))
}
