// Package server assembles the HTTP router of the post generator.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/atinyakov/go-post-generator/internal/app/handler"
	"github.com/atinyakov/go-post-generator/internal/app/service"
	"github.com/atinyakov/go-post-generator/internal/config"
	"github.com/atinyakov/go-post-generator/internal/middleware"
)

// GeneratePostRoute is the only API route of the service.
const GeneratePostRoute = "/api/post/generate-post"

// Init builds the router. db may be nil when no database is configured.
func Init(opts *config.Options, svc service.PostServiceIface, db service.Pinger, logger *zap.Logger) *chi.Mux {
	postHandler := handler.NewPost(svc, logger,
		handler.WithTypedErrors(opts.TypedErrors),
		handler.WithTimeout(opts.RequestTimeout),
	)
	getHandler := handler.NewGet(db, logger)

	r := chi.NewRouter()
	r.Use(middleware.WithRequestID)
	r.Use(middleware.WithRequestLogging(logger))
	r.Use(middleware.WithCORS(opts.CORSOrigin))
	r.Use(middleware.WithGzipResponse)

	r.Route("/api/post", func(r chi.Router) {
		r.With(middleware.WithGzipRequest).Post("/generate-post", postHandler.GeneratePost)
	})
	r.Get("/ping", getHandler.Ping)

	if opts.StaticDir != "" {
		r.Get("/*", http.FileServer(http.Dir(opts.StaticDir)).ServeHTTP)
	}

	r.MethodNotAllowed(handler.MethodNotAllowed)
	r.NotFound(handler.NotFound)

	return r
}
