package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/medflow/resume-parser/internal/resume/events"
	"github.com/medflow/resume-parser/internal/resume/handler"
	"github.com/medflow/resume-parser/internal/resume/processor"
	"github.com/medflow/resume-parser/internal/resume/service"
	"github.com/medflow/resume-parser/internal/resume/storage"
	"github.com/medflow/resume-parser/pkg/config"
	"github.com/medflow/resume-parser/pkg/httputil"
	"github.com/medflow/resume-parser/pkg/i18n"
	"github.com/medflow/resume-parser/pkg/logger"
	"github.com/medflow/resume-parser/pkg/messaging"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

var (
	servePort int
	serveHost string
)

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (overrides MEDFLOW_SERVER_PORT)")
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host to bind (overrides MEDFLOW_SERVER_HOST)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	// Fails fast in production if required config is missing
	cfg, err := config.LoadWithValidation(config.ServiceName)
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Server.Port = servePort
	}
	if serveHost != "" {
		cfg.Server.Host = serveHost
	}

	log := logger.New(config.ServiceName, cfg.Server.Environment)
	log.Info().Msg("starting resume parser")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Events are optional; the service runs without a broker
	var (
		publisher    events.Publisher = events.Nop{}
		brokerHealth func() map[string]string
	)
	if cfg.RabbitMQ.Enabled {
		rmq, err := messaging.New(&cfg.RabbitMQ, log)
		if err != nil {
			return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
		}
		defer rmq.Close()

		msgPublisher, err := messaging.NewPublisher(rmq, cfg.RabbitMQ.Exchange, config.ServiceName, log)
		if err != nil {
			return err
		}
		go rmq.Watch(ctx)

		publisher = events.NewBrokerPublisher(msgPublisher, log)
		brokerHealth = rmq.Health
	}

	store := storage.NewTempStorage(cfg.Jobs.TTL)
	defer store.Close()

	svc := service.NewService(processor.DefaultRegistry(), newParser(cfg, log), store, publisher, log.WithComponent("service"))
	h := handler.NewHandler(svc, log, handler.Options{
		MaxUploadBytes: cfg.Upload.MaxBytes,
		IncludeRawText: cfg.Parser.IncludeRawText,
		BrokerHealth:   brokerHealth,
	})

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RealIP)
	r.Use(httputil.RequestID)
	r.Use(httputil.Logger(log))
	r.Use(httputil.Recoverer(log))
	r.Use(middleware.Timeout(cfg.Server.RequestTimeout))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID", "Accept-Language"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// i18n middleware - extract locale from Accept-Language header
	r.Use(i18n.Middleware)

	h.Routes(r)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
	return nil
}
