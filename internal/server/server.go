package server

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"readtag/internal/config"
	"readtag/internal/middlewares"
	"readtag/internal/readwise"
	"readtag/internal/repositories"
	"readtag/internal/services"
	"readtag/internal/validation"
)

type Server struct {
	cfg             *config.Config
	httpServer      *http.Server
	validator       *validation.Validator
	limiter         *middlewares.RateLimiter
	documentService services.DocumentService
	sessionService  services.SessionService
}

func NewServer(cfg *config.Config) *Server {
	client := readwise.New(readwise.Options{
		BaseURL:    cfg.Readwise.BaseURL,
		Timeout:    cfg.Readwise.Timeout,
		MaxRetries: cfg.Readwise.MaxRetries,
		RetryDelay: cfg.Readwise.RetryDelay,
	})
	v := validation.New()

	docRepo := repositories.NewDocumentRepository(client, v)

	s := &Server{
		cfg:             cfg,
		validator:       v,
		limiter:         middlewares.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst),
		documentService: services.NewDocumentService(docRepo),
		sessionService: services.NewSessionService(client, services.SessionOptions{
			HashKey:  []byte(cfg.Session.HashKey),
			BlockKey: []byte(cfg.Session.BlockKey),
			Secure:   cfg.Session.CookieSecure,
		}),
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  cfg.Server.IdleTimeout,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return s
}

func (s *Server) Start() error {
	log.Info().Int("port", s.cfg.Server.Port).Str("readwise", s.cfg.Readwise.BaseURL).Msg("Starting server")
	return s.httpServer.ListenAndServe()
}

func (s *Server) GracefulShutdown(done chan bool) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	log.Info().Msg("Shutting down gracefully, press Ctrl+C again to force")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown with error")
	}

	log.Info().Msg("Server exiting")
	done <- true
}
