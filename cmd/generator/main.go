package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"

	"github.com/atinyakov/go-post-generator/internal/app/server"
	grpcserver "github.com/atinyakov/go-post-generator/internal/app/server/grpc"
	"github.com/atinyakov/go-post-generator/internal/app/service"
	"github.com/atinyakov/go-post-generator/internal/config"
	"github.com/atinyakov/go-post-generator/internal/fetch"
	"github.com/atinyakov/go-post-generator/internal/llm"
	"github.com/atinyakov/go-post-generator/internal/logger"
	"github.com/atinyakov/go-post-generator/internal/repository"

	_ "net/http/pprof"
)

var buildVersion string
var buildDate string
var buildCommit string

const (
	pprofAddress    = "localhost:6060"
	outboundTimeout = 60 * time.Second
	shutdownTimeout = 10 * time.Second
)

func main() {
	options := config.Parse()

	fmt.Printf("Build version: %s\n", orNA(buildVersion))
	fmt.Printf("Build date: %s\n", orNA(buildDate))
	fmt.Printf("Build commit: %s\n", orNA(buildCommit))

	log := logger.New()
	defer log.Sync()

	if err := log.Init(options.LogLevel); err != nil {
		panic(err)
	}
	zapLogger := log.Log

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, options, zapLogger); err != nil {
		zapLogger.Fatal("server stopped", zap.Error(err))
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func run(ctx context.Context, options *config.Options, zapLogger *zap.Logger) error {
	client := &http.Client{Timeout: outboundTimeout}

	model, err := llm.New(ctx, llm.Config{
		Provider:    options.Provider,
		Model:       options.Model,
		Temperature: float32(options.Temperature),
		APIKey:      options.APIKey(),
		BaseURL:     options.OpenAIBaseURL,
		HTTPClient:  client,
	})
	if err != nil {
		return fmt.Errorf("create model: %w", err)
	}
	zapLogger.Info("using model", zap.String("provider", options.Provider), zap.String("model", options.Model))

	var pinger service.Pinger
	if options.DatabaseDSN != "" {
		db, err := repository.InitDB(ctx, options.DatabaseDSN, zapLogger)
		if err != nil {
			return err
		}
		defer db.Close()
		pinger = db
	}

	svc := newService(options, model, client, zapLogger)
	r := server.Init(options, svc, pinger, zapLogger)

	if options.EnablePprof {
		go func() {
			zapLogger.Info("Starting pprof server", zap.String("addr", pprofAddress))
			if err := http.ListenAndServe(pprofAddress, nil); err != nil {
				zapLogger.Error("pprof server error", zap.Error(err))
			}
		}()
	}

	var gs *grpcserver.Server
	if options.GRPCAddress != "" {
		gs = grpcserver.New(options.GRPCAddress, svc, zapLogger,
			grpcserver.WithTypedErrors(options.TypedErrors),
			grpcserver.WithTimeout(options.RequestTimeout),
		)
		go func() {
			if err := gs.Start(); err != nil {
				zapLogger.Error("gRPC server error", zap.Error(err))
			}
		}()
	}

	srv := newHTTPServer(options, r)

	errc := make(chan error, 1)
	go func() {
		if srv.TLSConfig != nil {
			zapLogger.Info("Server is running with TLS", zap.Strings("hosts", options.TLSHosts))
			errc <- srv.ListenAndServeTLS("", "")
			return
		}
		zapLogger.Info("Server is running", zap.String("address", srv.Addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if gs != nil {
			gs.GracefulStop()
		}
		return err
	case <-ctx.Done():
	}

	zapLogger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if gs != nil {
		gs.GracefulStop()
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// newService wires the crawler and the model into the pipeline.
func newService(options *config.Options, model llm.Model, client *http.Client, zapLogger *zap.Logger) *service.PostService {
	loader := fetch.New(client, zapLogger)
	if options.ExcludeDirs != nil {
		loader.ExcludeDirs = options.ExcludeDirs
	}
	if options.WrapWidth > 0 {
		loader.WrapWidth = options.WrapWidth
	}

	return service.NewPost(loader, model, zapLogger)
}

func newHTTPServer(options *config.Options, r *chi.Mux) *http.Server {
	if !options.EnableHTTPS {
		return &http.Server{
			Addr:              options.Address,
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		}
	}

	manager := &autocert.Manager{
		Cache:      autocert.DirCache("cache-dir"),
		Prompt:     autocert.AcceptTOS,
		HostPolicy: autocert.HostWhitelist(options.TLSHosts...),
	}

	return &http.Server{
		Addr:              ":443",
		Handler:           r,
		TLSConfig:         manager.TLSConfig(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}
