package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/samber/do"
	"github.com/yz4230/repowatch/internal/config"
	"github.com/yz4230/repowatch/internal/repository"
	"github.com/yz4230/repowatch/internal/server/routes"
	"github.com/yz4230/repowatch/internal/usecase"
)

type Config struct {
	App    config.Config
	Logger zerolog.Logger
	// Now overrides the receipt clock. Defaults to time.Now.
	Now func() time.Time
}

type Server struct {
	e        *echo.Echo
	config   *Config
	injector *do.Injector
}

// New builds the server and connects to the record store, retrying as
// configured.
func New(ctx context.Context, config *Config) (*Server, error) {
	e := echo.New()
	e.HidePort = true
	e.HideBanner = true
	e.Server.ReadTimeout = config.App.Server.ReadTimeout
	e.Server.WriteTimeout = config.App.Server.WriteTimeout
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogRemoteIP:  true,
		LogHost:      true,
		LogMethod:    true,
		LogURI:       true,
		LogUserAgent: true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			config.Logger.Info().
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP).
				Str("host", v.Host).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("user_agent", v.UserAgent).
				Int("status", v.Status).
				Int64("latency_ms", v.Latency.Milliseconds()).
				Msg("handled request")
			return nil
		},
	}))
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			config.Logger.Error().Err(err).Bytes("stack", stack).Send()
			return err
		},
	}))
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			logger := config.Logger.With().
				Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
				Logger()
			c.SetRequest(req.WithContext(logger.WithContext(req.Context())))
			return next(c)
		}
	})

	s := &Server{e: e, config: config, injector: do.New()}
	InjectDependencies(ctx, s.injector, config)
	if _, err := do.Invoke[*repository.Database](s.injector); err != nil {
		return nil, err
	}
	s.registerRoutes()
	return s, nil
}

// InjectDependencies registers the store, repositories and use cases. The
// database is connected lazily on first invocation.
func InjectDependencies(ctx context.Context, injector *do.Injector, config *Config) {
	now := config.Now
	if now == nil {
		now = time.Now
	}

	do.ProvideValue(injector, config.App)
	do.ProvideValue(injector, usecase.Clock(now))
	do.Provide(injector, func(i *do.Injector) (*repository.Database, error) {
		return repository.NewSQLiteDB(ctx, config.App.Database, config.Logger)
	})
	do.Provide(injector, func(i *do.Injector) (repository.RecordRepository, error) {
		db := do.MustInvoke[*repository.Database](i)
		return repository.NewRecordRepository(db), nil
	})
	do.Provide(injector, usecase.NewIngestWebhookUsecase)
	do.Provide(injector, usecase.NewListRecentRecordsUsecase)
	do.Provide(injector, usecase.NewListRecordsSinceUsecase)
}

func (s *Server) registerRoutes() {
	routes.RegisterWebhook(s.injector, s.e)
	routes.RegisterRestAPI(s.injector, s.e)
	routes.RegisterMisc(s.injector, s.e)
}

// ServeHTTP lets the server be driven without a listener.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.e.ServeHTTP(w, r)
}

func (s *Server) Start() error {
	addr := s.config.App.Addr()
	s.config.Logger.Info().
		Str("addr", addr).
		Bool("signature_verification", s.config.App.VerificationEnabled()).
		Msg("starting server")
	return s.e.Start(addr)
}

// Stop drains in-flight requests and then releases the store.
func (s *Server) Stop(ctx context.Context) error {
	err := s.e.Shutdown(ctx)
	if errors.Is(err, http.ErrServerClosed) {
		err = nil
	}
	return errors.Join(err, s.injector.Shutdown())
}
